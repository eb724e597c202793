// Package supervisor implements superlog's core: spawn a child, fan in its
// output descriptors, classify and buffer each line, and dump a merged
// transcript on exit, trigger, or SIGUSR1. Grounded on the original's
// SuperLog/LogParent pair.
package supervisor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/efalk/superlog/internal/buffer"
	"github.com/efalk/superlog/internal/classify"
	"github.com/efalk/superlog/internal/color"
	"github.com/efalk/superlog/internal/constants"
	"github.com/efalk/superlog/internal/dump"
	"github.com/efalk/superlog/internal/errors"
	"github.com/efalk/superlog/internal/io/line"
	"github.com/efalk/superlog/internal/io/logger"
	"github.com/efalk/superlog/internal/pattern"
	"github.com/efalk/superlog/internal/trigger"
)

// Supervisor owns all of one run's mutable state. Every field here is only
// ever touched from the single goroutine running Run's main select loop;
// the fan-in reader goroutines and the signal channel only ever hand it
// immutable values, so no locking is required, mirroring the original's
// single-threaded LogParent.
type Supervisor struct {
	cfg        Config
	classifier *classify.Classifier
	excludes   *pattern.Set
	triggers   *trigger.Engine
	triggerSet *pattern.Set
	dumper     *dump.Dumper

	seq       uint64
	triggered bool

	sink      io.Writer
	sinkClose io.Closer
}

// New builds a Supervisor from a resolved Config. It does not spawn
// anything; call Run to do that.
func New(cfg Config) (*Supervisor, error) {
	if len(cfg.Buffers) == 0 {
		return nil, errors.Wrap(errors.ErrUsage, "at least one buffer must be configured")
	}

	specs := cfg.Buffers
	if len(specs) > constants.MaxLogBuffers {
		logger.Warn("limit of", constants.MaxLogBuffers, "log buffers, extras ignored")
		specs = specs[:constants.MaxLogBuffers]
	}

	classifier := classify.New()
	for _, spec := range specs {
		classifier.Register(spec.Pattern, buffer.New(spec.Class, spec.LimitMB))
	}

	excludes := pattern.NewSet(constants.MaxExcludePatterns, "exclude")
	for _, p := range cfg.ExcludePatterns {
		excludes.Add(p)
	}
	for _, f := range cfg.ExcludeFiles {
		excludes.AddFile(f)
	}

	triggerSet := pattern.NewSet(constants.MaxTriggerPatterns, "trigger")
	for _, p := range cfg.TriggerPatterns {
		triggerSet.Add(p)
	}
	triggers := trigger.New(triggerSet, cfg.TriggerCount, cfg.TriggerContext)

	s := &Supervisor{
		cfg:        cfg,
		classifier: classifier,
		excludes:   excludes,
		triggers:   triggers,
		triggerSet: triggerSet,
		dumper: dump.New(classifier, dump.Options{
			ShowFDs:    cfg.ShowFDs,
			Timestamps: cfg.Timestamps,
			ColorMode:  cfg.ColorMode,
		}),
	}
	return s, nil
}

// Rearm resets the trigger engine's latch, letting a supervisor that has
// already fired once start watching for the trigger pattern again. The
// original never does this automatically once triggered; Rearm exists for
// an embedder that wants different behavior, not for the CLI.
func (s *Supervisor) Rearm(count, context int) {
	s.triggered = false
	s.triggers.SetParams(count, context)
}

// Run spawns the child, drives the main select loop until the child exits
// or a terminating signal arrives, then performs the final merged dump. It
// returns the process exit status to use (0 on a clean run, matching the
// original's SuperLog return value).
func (s *Supervisor) Run(ctx context.Context) (int, error) {
	sink, closer, err := s.openSink()
	if err != nil {
		return 4, err
	}
	s.sink, s.sinkClose = sink, closer
	defer func() {
		if s.sinkClose != nil {
			s.sinkClose.Close()
		}
	}()

	child, err := spawn(s.cfg)
	if err != nil {
		return 3, err
	}

	if !s.cfg.Quiet {
		logger.Info(fmt.Sprintf("begin monitoring, superlog pid = %d", os.Getpid()))
	}

	lines := make(chan line.Line, constants.LinesChannelSize)
	readCtx, cancelReads := context.WithCancel(ctx)
	defer cancelReads()

	for i, r := range child.readers {
		fd := s.cfg.Descriptors[i]
		go func(r *os.File, fd int) {
			line.Run(readCtx, r, fd, lines)
			r.Close()
		}(r, fd)
	}

	sigCh := make(chan os.Signal, constants.SignalChannelSize)
	signal.Notify(sigCh, syscall.SIGCHLD, syscall.SIGUSR1, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case l := <-lines:
			s.handleLine(l)

		case sig := <-sigCh:
			switch sig {
			case syscall.SIGCHLD:
				s.drainFinal(lines)
				logger.Info("child process has exited")
				return s.finish()
			case syscall.SIGUSR1:
				logger.Info("sigusr1, dumping logs")
				s.dump()
			case os.Interrupt, syscall.SIGTERM:
				logger.Info("caught signal, exiting")
				return s.finish()
			}

		case <-child.done:
			s.drainFinal(lines)
			logger.Info("child process has exited")
			return s.finish()

		case <-ctx.Done():
			return s.finish()
		}
	}
}

// drainFinal performs a brief, best-effort, non-blocking drain of any
// lines still in flight from the reader goroutines once the child has
// exited, addressing the open question of pipe contents buffered at exit
// that the original leaves unresolved.
func (s *Supervisor) drainFinal(lines chan line.Line) {
	timer := time.NewTimer(constants.FinalDrainTimeout)
	defer timer.Stop()
	for {
		select {
		case l := <-lines:
			s.handleLine(l)
		case <-timer.C:
			return
		}
	}
}

// handleLine implements the per-line pipeline: classify (for coloring, so
// even a soon-to-be-excluded line is colored correctly if echoed), then
// exclude, then the latched triggered state, then append, then the
// trigger engine. Appending before the trigger check (rather than the
// source's check-then-append order) is a deliberate adaptation: it is the
// only ordering under which the context countdown's final event, the one
// that actually fires the dump, is itself part of the dumped transcript
// rather than silently dropped on the triggering line.
func (s *Supervisor) handleLine(l line.Line) {
	buf := s.classifier.Classify(l.Text)

	if s.cfg.Verbose {
		fmt.Fprintln(os.Stdout, color.Wrap(s.cfg.ColorMode, buf.Class(), l.FD, l.Text))
	}

	if s.excludes.Match(l.Text) {
		return
	}
	if s.triggered {
		return
	}

	s.seq++
	buf.Append(s.seq, l.FD, l.Text)

	if s.triggers.Check(l.Text) {
		s.triggered = true
		logger.Warn("triggered, dumping logs")
		s.dump()
	}
}

func (s *Supervisor) dump() {
	if err := s.dumper.Dump(s.sink); err != nil {
		logger.Error("dump failed", err)
	}
}

func (s *Supervisor) finish() (int, error) {
	fmt.Fprintln(os.Stdout, "Finished, dumping logs")
	s.dump()
	return 0, nil
}

func (s *Supervisor) openSink() (io.Writer, io.Closer, error) {
	if s.cfg.OutputPath == "" {
		return os.Stdout, nopCloser{}, nil
	}
	w, c, err := dump.OpenSink(s.cfg.OutputPath, s.cfg.Compress)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrOutputOpenFailed, err.Error())
	}
	return w, c, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
