package dump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/efalk/superlog/internal/buffer"
	"github.com/efalk/superlog/internal/classify"
	"github.com/efalk/superlog/internal/color"
	"github.com/efalk/superlog/internal/constants"
)

func TestDumpMergesBySequenceAcrossBuffers(t *testing.T) {
	c := classify.New()
	errBuf := buffer.New('E', 2)
	infoBuf := buffer.New('I', 2)
	c.Register("ERROR", errBuf)
	c.Register("", infoBuf)

	// Interleave sequence numbers across two buffers.
	infoBuf.Append(0, 1, "info zero")
	errBuf.Append(1, 2, "error one")
	infoBuf.Append(2, 1, "info two")
	errBuf.Append(3, 2, "error three")

	var out bytes.Buffer
	d := New(c, Options{ColorMode: color.None})
	if err := d.Dump(&out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	order := []string{"info zero", "error one", "info two", "error three"}
	last := -1
	for _, want := range order {
		idx := strings.Index(text, want)
		if idx < 0 {
			t.Fatalf("expected dump to contain %q, got:\n%s", want, text)
		}
		if idx < last {
			t.Fatalf("expected %q to appear after previous record in merged order", want)
		}
		last = idx
	}
}

func TestDumpClearsAllBuffersAfterward(t *testing.T) {
	c := classify.New()
	b := buffer.New('D', 2)
	c.Register("", b)
	b.Append(0, 1, "one line")

	var out bytes.Buffer
	d := New(c, Options{ColorMode: color.None})
	if err := d.Dump(&out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Len() != 0 {
		t.Errorf("expected buffer cleared after dump, still has %d records", b.Len())
	}
}

func TestDumpIncludesFDAndTimestampWhenRequested(t *testing.T) {
	c := classify.New()
	b := buffer.New('I', 2)
	c.Register("", b)
	b.Append(0, 7, "hello")
	stamp := b.Records()[0].Time.Format(constants.TimestampFormat)

	var out bytes.Buffer
	d := New(c, Options{ShowFDs: true, Timestamps: true, ColorMode: color.None})
	if err := d.Dump(&out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "7 ") {
		t.Errorf("expected fd prefix in output, got:\n%s", text)
	}
	if !strings.Contains(text, "hello") {
		t.Errorf("expected line text in output, got:\n%s", text)
	}
	if want := "7 " + stamp + "hello\n"; !strings.Contains(text, want) {
		t.Errorf("expected fd and timestamp prefix %q in output, got:\n%s", want, text)
	}
}

func TestDumpEmptyBufferProducesHeaderOnly(t *testing.T) {
	c := classify.New()
	b := buffer.New('I', 2)
	c.Register("", b)

	var out bytes.Buffer
	d := New(c, Options{ColorMode: color.None})
	if err := d.Dump(&out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Log dump at") {
		t.Errorf("expected dump header, got:\n%s", out.String())
	}
}
