package server

import (
	"github.com/rohmanhakim/html2md/pkg/failure"
)

// ArgsError reports an unusable tool call: missing or malformed parameters.
// Never retryable; the caller must fix the call.
type ArgsError struct {
	Message string
}

func (e *ArgsError) Error() string {
	return e.Message
}

func (e *ArgsError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func (e *ArgsError) IsRetryable() bool {
	return false
}
