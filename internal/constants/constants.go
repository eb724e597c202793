// Package constants collects the numeric and sizing constants shared across
// superlog's packages, the way the teacher repo keeps its magic numbers in
// one place instead of scattered literals.
package constants

import "time"

const (
	// MaxDescriptors bounds how many child output descriptors a single
	// supervisor instance will multiplex, mirroring libsuperlog.h's MAX_FDS.
	MaxDescriptors = 8

	// MaxLogBuffers bounds how many classification buffers can be
	// registered, mirroring the original's MAX_BUFFERS.
	MaxLogBuffers = 8

	// MaxExcludePatterns bounds the exclude pattern set.
	MaxExcludePatterns = 100

	// MaxTriggerPatterns bounds the trigger pattern set, mirroring
	// MAX_TRIGGERS.
	MaxTriggerPatterns = 20

	// LineReaderScratchSize is the per-descriptor line framing scratch
	// buffer size. Must stay >= 2KiB per the line reader contract.
	LineReaderScratchSize = 4096

	// LineReaderChunkSize is how many bytes a reader goroutine asks the
	// kernel for per Read call.
	LineReaderChunkSize = 4096

	// LineCompactThreshold is how close to scratch capacity a reader must
	// be before it compacts the unread remainder toward the front.
	LineCompactThreshold = 100

	// RecordOverhead approximates the bookkeeping weight of one line
	// record (sequence, time, fd, class) when accounting against a
	// buffer's byte budget, mirroring libsuperlog.c's sizeof(*msg) term.
	RecordOverhead = 32

	// TestModeBufferBytes is the byte budget substituted for any
	// buffer allocated with a limit below 1MiB, the spec's testing aid.
	TestModeBufferBytes = 1000

	// BytesPerMiB converts a MiB buffer budget into bytes.
	BytesPerMiB = 1 << 20

	// MaxBufferMB is the largest MiB budget the CLI accepts per buffer.
	MaxBufferMB = 20

	// DefaultTriggerCount is how many trigger-pattern matches are
	// required to arm a dump, absent an explicit -Tc.
	DefaultTriggerCount = 1

	// DefaultTriggerContext is how many subsequent events are retained
	// after a trigger fires, absent an explicit -Tn.
	DefaultTriggerContext = 100

	// DefaultBufferMB is the per-class buffer budget absent an explicit
	// -d/-i/-b.
	DefaultBufferMB = 2

	// LinesChannelSize sizes the fan-in channel the line reader
	// goroutines feed and the supervisor's main loop drains.
	LinesChannelSize = 64

	// SignalChannelSize sizes the os/signal delivery channel.
	SignalChannelSize = 10

	// FinalDrainTimeout bounds the best-effort non-blocking drain
	// performed after SIGCHLD, addressing spec.md's open question about
	// pipe contents still buffered at child exit.
	FinalDrainTimeout = 50 * time.Millisecond

	// TimestampFormat is the merged dump's per-record timestamp layout.
	TimestampFormat = "2006-01-02 15:04:05 "
)
