package convert

import (
	"fmt"

	"github.com/rohmanhakim/html2md/internal/metadata"
	"github.com/rohmanhakim/html2md/pkg/failure"
)

type ConversionErrorCause string

const (
	ErrCauseParseFailure      ConversionErrorCause = "failed to parse HTML"
	ErrCauseConversionFailure ConversionErrorCause = "markdown conversion failed"
	ErrCauseEmptyResult       ConversionErrorCause = "conversion produced no content"
)

type ConversionError struct {
	Message   string
	Retryable bool
	Cause     ConversionErrorCause
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert error: %s", e.Cause)
}

func (e *ConversionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *ConversionError) IsRetryable() bool {
	return e.Retryable
}

// mapConversionErrorToMetadataCause maps converter-local error semantics
// to the canonical metadata.ErrorCause table. Observational only.
func mapConversionErrorToMetadataCause(err *ConversionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseParseFailure, ErrCauseConversionFailure, ErrCauseEmptyResult:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
