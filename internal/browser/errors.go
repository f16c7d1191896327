package browser

import (
	"fmt"

	"github.com/rohmanhakim/html2md/internal/metadata"
	"github.com/rohmanhakim/html2md/pkg/failure"
)

type BrowserErrorCause string

const (
	ErrCauseLaunchFailed    BrowserErrorCause = "browser launch failed"
	ErrCauseNavigation      BrowserErrorCause = "navigation failed"
	ErrCauseProfileNotFound BrowserErrorCause = "user profile not found"
	ErrCauseContentRead     BrowserErrorCause = "failed to read page content"
)

type BrowserError struct {
	Message   string
	Retryable bool
	Cause     BrowserErrorCause
}

func (e *BrowserError) Error() string {
	return fmt.Sprintf("browser error: %s", e.Cause)
}

func (e *BrowserError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *BrowserError) IsRetryable() bool {
	return e.Retryable
}

// mapBrowserErrorToMetadataCause maps browser-local error semantics
// to the canonical metadata.ErrorCause table. Observational only.
func mapBrowserErrorToMetadataCause(err *BrowserError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNavigation:
		return metadata.CauseNetworkFailure
	case ErrCauseProfileNotFound:
		return metadata.CausePolicyDisallow
	case ErrCauseContentRead:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
