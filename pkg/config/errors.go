package config

import (
	"errors"
	"fmt"
)

// Fatal conditions. Resolution stops at the first one.
var (
	ErrMissingMandatoryOption = errors.New("mandatory option is missing")
	ErrMalformedChallenge     = errors.New("malformed challenge")
	ErrFilesystemUnavailable  = errors.New("filesystem unavailable")
	ErrMalformedRange         = errors.New("malformed address range")
	ErrNetworkUnavailable     = errors.New("network interface unavailable")
)

// ErrMissingAssetFile is reported as a warning; resolution continues.
var ErrMissingAssetFile = errors.New("file not found")

// Error carries the operator-facing diagnostic for a rejected setting.
type Error struct {
	Kind    error  // one of the sentinels above
	Field   string // option or config key
	Value   any    // offending value, nil if missing
	Message string
	Hint    string
	Err     error // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Field
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Exit statuses used by main for fatal resolution errors.
const (
	ExitFailure            = 1
	ExitMissingOption      = 2
	ExitMalformedChallenge = 3
	ExitFilesystem         = 4
	ExitMalformedRange     = 5
	ExitNetwork            = 6
)

// ExitCode maps a resolution error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrMissingMandatoryOption):
		return ExitMissingOption
	case errors.Is(err, ErrMalformedChallenge):
		return ExitMalformedChallenge
	case errors.Is(err, ErrFilesystemUnavailable):
		return ExitFilesystem
	case errors.Is(err, ErrMalformedRange):
		return ExitMalformedRange
	case errors.Is(err, ErrNetworkUnavailable):
		return ExitNetwork
	default:
		return ExitFailure
	}
}
