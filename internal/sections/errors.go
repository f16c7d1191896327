package sections

import (
	"fmt"

	"github.com/rohmanhakim/html2md/internal/metadata"
	"github.com/rohmanhakim/html2md/pkg/failure"
)

type SectionErrorCause string

const (
	ErrCauseNotFound        SectionErrorCause = "section not found"
	ErrCauseInvalidSelector SectionErrorCause = "invalid section selector"
	ErrCauseParseFailure    SectionErrorCause = "failed to parse document"
	ErrCauseWriteFailure    SectionErrorCause = "failed to write summary artifact"
)

type SectionError struct {
	Message   string
	Retryable bool
	Cause     SectionErrorCause
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("sections error: %s", e.Cause)
}

func (e *SectionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *SectionError) IsRetryable() bool {
	return e.Retryable
}

// mapSectionErrorToMetadataCause maps section-local error semantics
// to the canonical metadata.ErrorCause table. Observational only.
func mapSectionErrorToMetadataCause(err *SectionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNotFound, ErrCauseInvalidSelector, ErrCauseParseFailure:
		return metadata.CauseContentInvalid
	case ErrCauseWriteFailure:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
