// Command superlog collects output logs from another program, classifies
// and buffers each line, and dumps a merged transcript when the child
// exits, a trigger pattern fires, or SIGUSR1 arrives.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/efalk/superlog/internal/config"
	"github.com/efalk/superlog/internal/io/logger"
	"github.com/efalk/superlog/internal/supervisor"
)

const usage = `Collect output logs from another program

	usage: superlog [options] -- cmd [args]

	-h		this list
	1, 2, 3, ...	Collect output from specified fds
	-d N		Allocate N Mb for "debug" messages
	-i N		Allocate N Mb for "info" messages
	-b N		Allocate N Mb for all other messages
	-v		Also echo messages to stdout in real time
	-f		Add fd number to messages
	-t		Add timestamps to messages
	-c		Color messages by fd
	-C		Color messages by severity
	-Ts str		Add trigger; logging stops N events after the trigger
	-Tn N		Set N (default = 100)
	-Tc N		Number of times trigger needs to be seen (1)
	-dpat str	Set pattern that denotes a debug line
	-ipat str	Set pattern that denotes an info line
	-wpat str	Set pattern that denotes a warning line
	-epat str	Set pattern that denotes an error line
	-x str		Add str to ignore patterns
	-X file		Read ignore patterns from file, one per line
	-o file		output to file
	-z		compress the output file with zstd
	-q		suppress the startup banner

By default, allocates 2MB for each class of message.
By default, collects output on fd 2 (stderr)
When program exits, logs messages are dumped to stdout (or specified file)
If superlog receives SIGUSR1, it dumps the logs.
At present, the color options only work on ANSI terminals
`

// repeatedFlag accumulates -x/-X/-Ts occurrences into a slice.
type repeatedFlag struct {
	values *[]string
}

func (r repeatedFlag) String() string { return "" }
func (r repeatedFlag) Set(v string) error {
	*r.values = append(*r.values, v)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	a := config.Defaults()

	fs := flag.NewFlagSet("superlog", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	fs.IntVar(&a.DebugMB, "d", a.DebugMB, "debug buffer size in MB")
	fs.IntVar(&a.InfoMB, "i", a.InfoMB, "info buffer size in MB")
	fs.IntVar(&a.OtherMB, "b", a.OtherMB, "other buffer size in MB")
	fs.StringVar(&a.DebugPattern, "dpat", a.DebugPattern, "debug classification pattern")
	fs.StringVar(&a.InfoPattern, "ipat", a.InfoPattern, "info classification pattern")
	fs.StringVar(&a.WarnPattern, "wpat", a.WarnPattern, "warning classification pattern")
	fs.StringVar(&a.ErrorPattern, "epat", a.ErrorPattern, "error classification pattern (unused, kept for CLI compatibility)")
	fs.BoolVar(&a.Verbose, "v", false, "echo messages to stdout in real time")
	fs.BoolVar(&a.ShowFDs, "f", false, "add fd number to messages")
	fs.BoolVar(&a.Timestamps, "t", false, "add timestamps to messages")
	fs.BoolVar(&a.ColorFDs, "c", false, "color messages by fd")
	fs.BoolVar(&a.ColorSev, "C", false, "color messages by severity")
	fs.Var(repeatedFlag{&a.TriggerPatterns}, "Ts", "add trigger pattern")
	fs.IntVar(&a.TriggerContext, "Tn", a.TriggerContext, "trigger context length")
	fs.IntVar(&a.TriggerCount, "Tc", a.TriggerCount, "trigger match count required")
	fs.Var(repeatedFlag{&a.ExcludePatterns}, "x", "add exclude pattern")
	fs.Var(repeatedFlag{&a.ExcludeFiles}, "X", "read exclude patterns from file")
	fs.StringVar(&a.OutputPath, "o", "", "output file (default stdout)")
	fs.BoolVar(&a.Compress, "z", false, "compress the output file with zstd")
	fs.BoolVar(&a.Quiet, "q", false, "suppress the startup banner")

	if err := fs.Parse(argv); err != nil {
		return 2
	}

	var descriptors []string
	rest := fs.Args()
	i := 0
	for ; i < len(rest); i++ {
		if rest[i] == "--" {
			i++
			break
		}
		if !isDigits(rest[i]) {
			break
		}
		descriptors = append(descriptors, rest[i])
	}
	a.Descriptors = descriptors
	a.Argv = rest[i:]

	cfg, err := config.Setup(a)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return 2
	}

	ctx := context.Background()
	logger.Start(ctx, cfg.Quiet)
	defer logger.Flush()

	sup, err := supervisor.New(cfg)
	if err != nil {
		logger.Error(err)
		return 2
	}

	status, err := sup.Run(ctx)
	if err != nil {
		logger.Error(err)
	}
	return status
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
