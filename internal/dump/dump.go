// Package dump implements the merged transcript writer: a k-way merge by
// ascending sequence number across every registered buffer's retained
// records, grounded on the original's LogDump/haveMsg/oldestMsg trio.
package dump

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/efalk/superlog/internal/buffer"
	"github.com/efalk/superlog/internal/classify"
	"github.com/efalk/superlog/internal/color"
	"github.com/efalk/superlog/internal/constants"
)

// Options controls the merged transcript's formatting.
type Options struct {
	ShowFDs    bool
	Timestamps bool
	ColorMode  color.Mode
}

// Dumper writes a merged transcript of every buffer registered on a
// classifier and then clears them, ready to resume collection.
type Dumper struct {
	classifier *classify.Classifier
	opts       Options
}

// New returns a Dumper over classifier's buffers, in registration order.
func New(classifier *classify.Classifier, opts Options) *Dumper {
	return &Dumper{classifier: classifier, opts: opts}
}

// Dump performs the k-way merge and writes it to w, then clears every
// buffer. Buffers are small (bounded by their byte budget) and few
// (MaxLogBuffers), so a linear min-scan across their head cursors is
// simpler and fast enough, exactly like the original's oldestMsg loop.
func (d *Dumper) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "\nLog dump at %s\n\n", time.Now().Format(constants.TimestampFormat))

	buffers := d.classifier.Buffers()
	cursors := make([][]buffer.Record, len(buffers))
	pos := make([]int, len(buffers))
	for i, b := range buffers {
		cursors[i] = b.Records()
	}

	for {
		idx := oldest(cursors, pos)
		if idx < 0 {
			break
		}
		rec := cursors[idx][pos[idx]]
		pos[idx]++

		writeRecord(bw, rec, d.opts)
	}

	if err := bw.Flush(); err != nil {
		return err
	}

	for _, b := range buffers {
		b.Clear()
	}
	return nil
}

func writeRecord(bw *bufio.Writer, rec buffer.Record, opts Options) {
	bw.WriteString(color.Start(opts.ColorMode, rec.Class, rec.FD))
	if opts.ShowFDs {
		fmt.Fprintf(bw, "%d ", rec.FD)
	}
	if opts.Timestamps {
		bw.WriteString(rec.Time.Format(constants.TimestampFormat))
	}
	bw.WriteString(rec.Text)
	bw.WriteString(color.Stop(opts.ColorMode))
	bw.WriteByte('\n')
}

// oldest returns the index of the cursor whose next unread record has the
// smallest Seq, or -1 if every cursor is exhausted, mirroring
// oldestMsg/haveMsg combined into one pass.
func oldest(cursors [][]buffer.Record, pos []int) int {
	best := -1
	var bestSeq uint64
	for i, recs := range cursors {
		if pos[i] >= len(recs) {
			continue
		}
		seq := recs[pos[i]].Seq
		if best < 0 || seq < bestSeq {
			best = i
			bestSeq = seq
		}
	}
	return best
}
