// Package buffer implements superlog's per-class log buffer: a byte-budget
// bounded ring that retains the most recent lines routed to it, grounded on
// the original's LogBufferAppend/LogBufferDump pair. Go's garbage collector
// removes the need for the original's manual slot malloc/free/reuse dance,
// so this is reimplemented as a slice that grows until the budget is spent
// and then recycles its oldest slot in place.
package buffer

import (
	"time"

	"github.com/efalk/superlog/internal/constants"
)

// Record is one classified, buffered line.
type Record struct {
	Seq   uint64
	Time  time.Time
	FD    int
	Class byte
	Text  string
}

// Buffer is a single classification's ring of retained Records, bounded by
// a total byte budget rather than a record count.
type Buffer struct {
	class     byte
	limit     int
	used      int
	records   []Record
	head      int
	full      bool
}

// New returns a Buffer for the given classification byte, budgeted at
// limitMB megabytes. A non-positive limitMB substitutes the small test-mode
// budget rather than disabling the buffer, matching the original's
// LogBufferAlloc fallback.
func New(class byte, limitMB int) *Buffer {
	bytes := constants.TestModeBufferBytes
	if limitMB > 0 {
		bytes = limitMB * constants.BytesPerMiB
	}
	return &Buffer{class: class, limit: bytes}
}

// Class returns the buffer's classification byte.
func (b *Buffer) Class() byte {
	return b.class
}

// Append adds one record to the buffer, evicting the oldest record in place
// once the byte budget has been reached. seq is caller-assigned and shared
// across all buffers in a supervisor, so the merged dump can order strictly
// by arrival.
func (b *Buffer) Append(seq uint64, fd int, text string) {
	rec := Record{Seq: seq, Time: time.Now(), FD: fd, Class: b.class, Text: text}
	weight := constants.RecordOverhead + len(text) + 1

	if !b.full {
		b.records = append(b.records, rec)
		b.used += weight
		if b.used >= b.limit {
			b.full = true
		}
		return
	}

	// Buffer is full: the slot count is now fixed. Overwrite the oldest
	// record and advance head, exactly as the original recycles
	// lb->end->next in place rather than reallocating the ring.
	b.records[b.head] = rec
	b.head = (b.head + 1) % len(b.records)
}

// Records returns the buffer's retained records in oldest-first order.
func (b *Buffer) Records() []Record {
	if !b.full {
		out := make([]Record, len(b.records))
		copy(out, b.records)
		return out
	}
	n := len(b.records)
	out := make([]Record, n)
	for i := 0; i < n; i++ {
		out[i] = b.records[(b.head+i)%n]
	}
	return out
}

// Len reports how many records are currently retained.
func (b *Buffer) Len() int {
	return len(b.records)
}

// Clear empties the buffer, ready to resume collection after a dump.
func (b *Buffer) Clear() {
	b.records = nil
	b.used = 0
	b.head = 0
	b.full = false
}
