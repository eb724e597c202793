// Package config turns superlog's CLI flags into a resolved
// supervisor.Config, mirroring the teacher's own Args/Setup split scaled
// down to this program's one-process, one-invocation lifecycle: there is
// no daemon to reconfigure at runtime, so there is no env/file layer here,
// only flags and defaults.
package config

import (
	"strconv"

	"github.com/efalk/superlog/internal/color"
	"github.com/efalk/superlog/internal/constants"
	"github.com/efalk/superlog/internal/errors"
	"github.com/efalk/superlog/internal/io/logger"
	"github.com/efalk/superlog/internal/supervisor"
)

// Args is the flat set of values cmd/superlog fills in from flag.*Var
// calls before calling Setup.
type Args struct {
	Descriptors []string // raw positional descriptor numbers

	DebugMB int
	InfoMB  int
	OtherMB int

	DebugPattern   string
	InfoPattern    string
	WarnPattern    string
	ErrorPattern   string // accepted for CLI compatibility; unused, matching the source

	Verbose    bool
	ShowFDs    bool
	Timestamps bool
	ColorFDs   bool
	ColorSev   bool

	TriggerPatterns []string
	TriggerContext  int
	TriggerCount    int

	ExcludePatterns []string
	ExcludeFiles    []string

	OutputPath string
	Compress   bool
	Quiet      bool

	Argv []string
}

// Defaults returns an Args populated with superlog's documented defaults.
func Defaults() Args {
	return Args{
		DebugMB:        constants.DefaultBufferMB,
		InfoMB:         constants.DefaultBufferMB,
		OtherMB:        constants.DefaultBufferMB,
		DebugPattern:   " debug ",
		InfoPattern:    " info ",
		WarnPattern:    " warning ",
		ErrorPattern:   " error ",
		TriggerContext: constants.DefaultTriggerContext,
		TriggerCount:   constants.DefaultTriggerCount,
	}
}

// Setup validates args and resolves them into a supervisor.Config. A
// missing command returns errors.ErrNoCommand; a buffer size outside
// [0, MaxBufferMB] returns errors.ErrBufferSizeOutOfRange and a
// non-numeric descriptor returns errors.ErrUsage, each wrapped with a
// human-readable reason. More than MaxDescriptors descriptors is not an
// error: the extras are dropped with a warning.
func Setup(a Args) (supervisor.Config, error) {
	if len(a.Argv) == 0 {
		return supervisor.Config{}, errors.ErrNoCommand
	}

	if a.DebugMB < 0 || a.DebugMB > constants.MaxBufferMB ||
		a.InfoMB < 0 || a.InfoMB > constants.MaxBufferMB ||
		a.OtherMB < 0 || a.OtherMB > constants.MaxBufferMB {
		return supervisor.Config{}, errors.Wrap(errors.ErrBufferSizeOutOfRange, "one or more buffer sizes out of range")
	}

	descriptors := make([]int, 0, len(a.Descriptors))
	for _, s := range a.Descriptors {
		n, err := strconv.Atoi(s)
		if err != nil {
			return supervisor.Config{}, errors.Wrap(errors.ErrUsage, "invalid descriptor: "+s)
		}
		descriptors = append(descriptors, n)
	}
	if len(descriptors) == 0 {
		descriptors = []int{2}
	}
	if len(descriptors) > constants.MaxDescriptors {
		logger.Warn("limit of", constants.MaxDescriptors, "output fds, extras ignored")
		descriptors = descriptors[:constants.MaxDescriptors]
	}

	mode := color.None
	switch {
	case a.ColorFDs:
		mode = color.ByDescriptor
	case a.ColorSev:
		mode = color.BySeverity
	}

	cfg := supervisor.Config{
		Descriptors: descriptors,
		Argv:        a.Argv,
		Buffers: []supervisor.BufferSpec{
			{Pattern: a.DebugPattern, Class: 'D', LimitMB: a.DebugMB},
			{Pattern: a.InfoPattern, Class: 'I', LimitMB: a.InfoMB},
			{Pattern: a.WarnPattern, Class: 'W', LimitMB: a.OtherMB},
		},
		ExcludePatterns: a.ExcludePatterns,
		ExcludeFiles:    a.ExcludeFiles,
		TriggerPatterns: a.TriggerPatterns,
		TriggerCount:    a.TriggerCount,
		TriggerContext:  a.TriggerContext,
		Verbose:         a.Verbose,
		ShowFDs:         a.ShowFDs,
		Timestamps:      a.Timestamps,
		ColorMode:       mode,
		OutputPath:      a.OutputPath,
		Compress:        a.Compress,
		Quiet:           a.Quiet,
	}
	return cfg, nil
}
