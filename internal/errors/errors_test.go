package errors

import (
	"errors"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{
			name:     "wrap with message",
			err:      ErrOutputOpenFailed,
			msg:      "opening dump file",
			expected: "opening dump file: failed to open output file",
		},
		{
			name:     "wrap nil error",
			err:      nil,
			msg:      "should return nil",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.err, tt.msg)
			if tt.err == nil && result != nil {
				t.Errorf("expected nil, got %v", result)
			}
			if tt.err != nil && result.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result.Error())
			}
		})
	}
}

func TestWrapf(t *testing.T) {
	err := Wrapf(ErrForkFailed, "spawning %s", "child")
	expected := "spawning child: failed to spawn child process"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestIs(t *testing.T) {
	wrapped := Wrap(ErrUsage, "parsing flags")

	if !Is(wrapped, ErrUsage) {
		t.Error("expected Is to return true for wrapped error")
	}
	if Is(wrapped, ErrForkFailed) {
		t.Error("expected Is to return false for different error")
	}
}

func TestErrorUnwrapping(t *testing.T) {
	base := errors.New("base error")
	wrapped := Wrap(base, "context")

	unwrapped := Unwrap(wrapped)
	if unwrapped != base {
		t.Error("Unwrap did not return base error")
	}
}
