// Package color provides the ANSI escape sequences superlog wraps around a
// dumped line, grounded on the original C implementation's colorStart,
// colorStop and ansiColor tables.
package color

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Mode selects which field a record's color is keyed on.
type Mode int

const (
	// None disables coloring entirely.
	None Mode = iota
	// ByDescriptor colors by source file descriptor, cycling through the
	// palette.
	ByDescriptor
	// BySeverity colors by classification: debug, info, warn, error.
	BySeverity
)

// palette mirrors the original's `colors[]` table: plain 7-color ANSI
// foreground codes, black through cyan.
var palette = []string{
	"\x1b[30m", // black
	"\x1b[31m", // red
	"\x1b[32m", // green
	"\x1b[33m", // yellow
	"\x1b[34m", // blue
	"\x1b[35m", // magenta
	"\x1b[36m", // cyan
}

const reset = "\x1b[m"

// Code returns the escape code for the n'th palette entry, wrapping around.
func Code(n int) string {
	if n < 0 {
		n = -n
	}
	return palette[n%len(palette)]
}

// severityCode mirrors colorStart's SEVERITY case: 'D'->4, 'I'->2, 'W'->3,
// 'E'->1, anything else->0.
func severityCode(class byte) string {
	switch class {
	case 'D':
		return Code(4)
	case 'I':
		return Code(2)
	case 'W':
		return Code(3)
	case 'E':
		return Code(1)
	default:
		return Code(0)
	}
}

// Start returns the escape sequence to emit before a record's text, given
// the active mode, its classification byte and its source descriptor.
func Start(mode Mode, class byte, fd int) string {
	switch mode {
	case ByDescriptor:
		return Code(fd - 1)
	case BySeverity:
		return severityCode(class)
	default:
		return ""
	}
}

// Stop returns the escape sequence to emit after a record's text.
func Stop(mode Mode) string {
	if mode == None {
		return ""
	}
	return reset
}

// Wrap returns s bracketed by Start/Stop for the given mode, class and fd.
func Wrap(mode Mode, class byte, fd int, s string) string {
	if mode == None {
		return s
	}
	return fmt.Sprintf("%s%s%s", Start(mode, class, fd), s, Stop(mode))
}

// AutoDisable reports whether mode should be forced to None because out is
// not an interactive terminal. Piping a dump to a file or to another
// process should not embed raw escape sequences.
func AutoDisable(mode Mode, out *os.File) Mode {
	if mode == None {
		return None
	}
	if term.IsTerminal(int(out.Fd())) {
		return mode
	}
	return None
}

// ParseMode maps a color mode name ("none", "fd", "severity") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "none":
		return None, nil
	case "fd", "fds":
		return ByDescriptor, nil
	case "severity":
		return BySeverity, nil
	default:
		return None, fmt.Errorf("unknown color mode %q", s)
	}
}
