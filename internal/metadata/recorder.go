package metadata

import (
	"time"

	"go.uber.org/zap"
)

/*
Recorder captures structured conversion events.
It must not:
- perform I/O decisions
- affect control flow

Metadata is write-only.
No component may read metadata to influence conversion decisions.
*/

// MetadataSink is the write-only observability port injected into every
// pipeline stage. Components can decide whether to inject Recorder or NoopSink.
type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchURL string,
		httpStatus int,
		duration time.Duration,
		contentType string,
		retryCount int,
		method string,
	)

	RecordConversion(
		fetchURL string,
		originalSize int,
		cleanedSize int,
		markdownSize int,
	)

	RecordCache(event CacheEvent, key string, attrs []Attribute)
}

// Recorder is the zap-backed MetadataSink used by the running service.
// Events are recorded synchronously in the order they are received.
type Recorder struct {
	logger *zap.Logger
}

func NewRecorder(logger *zap.Logger) Recorder {
	return Recorder{
		logger: logger,
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	fields := []zap.Field{
		zap.Time("observed_at", observedAt),
		zap.String("package", packageName),
		zap.String("action", action),
		zap.String("cause", cause.String()),
		zap.String("details", details),
	}
	for _, attr := range attrs {
		fields = append(fields, zap.String(string(attr.Key), attr.Value))
	}
	r.logger.Error("pipeline error", fields...)
}

func (r *Recorder) RecordFetch(
	fetchURL string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
	method string,
) {
	r.logger.Info("fetch",
		zap.String("url", fetchURL),
		zap.Int("http_status", httpStatus),
		zap.Duration("duration", duration),
		zap.String("content_type", contentType),
		zap.Int("retry_count", retryCount),
		zap.String("method", method),
	)
}

func (r *Recorder) RecordConversion(
	fetchURL string,
	originalSize int,
	cleanedSize int,
	markdownSize int,
) {
	r.logger.Info("conversion",
		zap.String("url", fetchURL),
		zap.Int("original_size", originalSize),
		zap.Int("cleaned_size", cleanedSize),
		zap.Int("markdown_size", markdownSize),
	)
}

func (r *Recorder) RecordCache(event CacheEvent, key string, attrs []Attribute) {
	fields := []zap.Field{
		zap.String("event", string(event)),
		zap.String("key", key),
	}
	for _, attr := range attrs {
		fields = append(fields, zap.String(string(attr.Key), attr.Value))
	}
	r.logger.Debug("cache", fields...)
}

// NoopSink implements MetadataSink but does nothing.
// Tests inject it to keep metadata orthogonal to behavior.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordFetch(
	fetchURL string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
	method string,
) {
}

func (n *NoopSink) RecordConversion(
	fetchURL string,
	originalSize int,
	cleanedSize int,
	markdownSize int,
) {
}

func (n *NoopSink) RecordCache(event CacheEvent, key string, attrs []Attribute) {}

var _ MetadataSink = (*Recorder)(nil)
var _ MetadataSink = (*NoopSink)(nil)
