// Package errors collects superlog's sentinel errors and the thin wrapping
// helpers used to attach context to them, mirroring the teacher repo's own
// internal/errors package.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to the exit codes in spec.md section 6/7.
var (
	// ErrUsage marks a configuration/argument error (exit code 2).
	ErrUsage = errors.New("usage error")

	// ErrNoCommand is returned when no child command or function was
	// configured.
	ErrNoCommand = errors.New("command is required")

	// ErrBufferSizeOutOfRange is returned when a -d/-i/-b budget falls
	// outside [0, 20].
	ErrBufferSizeOutOfRange = errors.New("buffer size out of range")

	// ErrTooManyDescriptors names the condition of more than
	// MaxDescriptors output descriptors being requested. config.Setup
	// does not return it; it drops the extras with a warning instead.
	ErrTooManyDescriptors = errors.New("too many output descriptors")

	// ErrPipeFailed, ErrForkFailed and ErrExecFailed mark setup errors
	// (exit code 3).
	ErrPipeFailed = errors.New("failed to create pipe")
	ErrForkFailed = errors.New("failed to spawn child process")
	ErrExecFailed = errors.New("failed to exec child command")

	// ErrOutputOpenFailed marks the dump destination failing to open
	// (exit code 4).
	ErrOutputOpenFailed = errors.New("failed to open output file")
)

// Wrap wraps an error with additional context. Returns nil if err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with formatted context. Returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether err matches target, per errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target, per errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the error wrapped by err, if any.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
