package cache

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/html2md/pkg/failure"
)

// ErrEmptyResource is returned by DeriveKey when the resource identifier is empty.
var ErrEmptyResource = errors.New("resource identifier cannot be empty")

type ConfigErrorCause string

const (
	ErrCauseNonPositiveTTL ConfigErrorCause = "non-positive default ttl"
)

// ConfigError reports invalid store configuration. It is raised once, at
// construction; no partial store is returned alongside it.
type ConfigError struct {
	Message string
	Cause   ConfigErrorCause
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cache config error: %s", e.Cause)
}

func (e *ConfigError) Severity() failure.Severity {
	return failure.SeverityFatal
}
