package supervisor

import (
	"io"

	"github.com/efalk/superlog/internal/color"
)

// BufferSpec describes one classification buffer: the substring pattern
// that routes a line into it, its single-character class tag used for
// coloring, and its byte budget in megabytes.
type BufferSpec struct {
	Pattern string
	Class   byte
	LimitMB int
}

// Config is the fully-resolved configuration for one supervised run,
// produced by internal/config.Setup from CLI flags.
type Config struct {
	// Descriptors lists the child's output file descriptors to capture.
	Descriptors []int

	// Argv is the child command to exec. If ChildFunc is set, Argv is not
	// exec'd; it is passed to ChildFunc as its argv.
	Argv []string

	// ChildFunc, when set, runs in-process (a goroutine, not a forked
	// child) instead of exec'ing Argv. It receives its output
	// descriptors pre-opened as writers, keyed by the same numbers
	// passed in Descriptors. Used by tests and by embedders that want
	// superlog's capture semantics without a real subprocess.
	ChildFunc func(argv []string, fds map[int]io.Writer) int

	// Buffers are registered with the classifier in order; the last
	// entry SHOULD carry an empty Pattern to act as the catch-all.
	Buffers []BufferSpec

	// ExcludePatterns are substrings that, when matched, cause a line to
	// be discarded before it is appended or trigger-checked (the verbose
	// echo still shows it).
	ExcludePatterns []string

	// ExcludeFiles are paths to read additional exclude patterns from.
	ExcludeFiles []string

	// TriggerPatterns arm the trigger engine; TriggerCount matches are
	// required before the TriggerContext countdown to a dump begins.
	TriggerPatterns []string
	TriggerCount    int
	TriggerContext  int

	// Verbose echoes every line (colored, pre-filter) to stdout as it
	// arrives.
	Verbose bool

	// ShowFDs and Timestamps control the merged dump's per-line prefix.
	ShowFDs    bool
	Timestamps bool

	// ColorMode selects the dump's (and verbose echo's) coloring scheme.
	ColorMode color.Mode

	// OutputPath is where the merged dump is written; empty means
	// stdout.
	OutputPath string

	// Compress zstd-compresses OutputPath's contents.
	Compress bool

	// Quiet suppresses the startup banner and informational logging.
	Quiet bool
}
