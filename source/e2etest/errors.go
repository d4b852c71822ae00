package e2etest

import (
	"errors"
	"fmt"
)

// ErrScheduledFailure is the designed-in fault raised once the record
// threshold is reached.
var ErrScheduledFailure = errors.New("scheduled exceptional event")

// ConfigError reports a configuration the source cannot start with.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("e2e-test config: %s: %s", e.Field, e.Reason)
}

// SourceError wraps errors raised while reading and says if they're retryable.
type SourceError struct {
	Err       error
	Retryable bool
}

func (e *SourceError) Error() string {
	return e.Err.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewTerminalError wraps an error as non-retryable.
func NewTerminalError(err error) *SourceError {
	return &SourceError{
		Err:       err,
		Retryable: false,
	}
}

// IsRetryable reports whether err may be retried. Config errors and the
// scheduled failure never are.
func IsRetryable(err error) bool {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return false
	}
	var sourceErr *SourceError
	if errors.As(err, &sourceErr) {
		return sourceErr.Retryable
	}
	return true
}
