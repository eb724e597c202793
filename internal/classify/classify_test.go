package classify

import (
	"testing"

	"github.com/efalk/superlog/internal/buffer"
)

func TestClassifyFirstMatchWins(t *testing.T) {
	c := New()
	debugBuf := buffer.New('D', 2)
	errBuf := buffer.New('E', 2)
	catchAll := buffer.New('I', 2)

	c.Register("DEBUG", debugBuf)
	c.Register("ERROR", errBuf)
	c.Register("", catchAll)

	if got := c.Classify("2026-01-01 DEBUG starting up"); got != debugBuf {
		t.Error("expected DEBUG line to classify into debugBuf")
	}
	if got := c.Classify("2026-01-01 ERROR disk full"); got != errBuf {
		t.Error("expected ERROR line to classify into errBuf")
	}
	if got := c.Classify("2026-01-01 listening on :8080"); got != catchAll {
		t.Error("expected unmatched line to fall into the catch-all buffer")
	}
}

func TestClassifyFallsBackToLastWhenNoCatchAll(t *testing.T) {
	c := New()
	warnBuf := buffer.New('W', 2)
	errBuf := buffer.New('E', 2)

	c.Register("WARN", warnBuf)
	c.Register("ERROR", errBuf)

	if got := c.Classify("totally unrelated line"); got != errBuf {
		t.Error("expected unmatched line to fall into the last registered buffer")
	}
}

func TestBuffersReturnsRegistrationOrder(t *testing.T) {
	c := New()
	b1 := buffer.New('D', 2)
	b2 := buffer.New('I', 2)
	c.Register("a", b1)
	c.Register("b", b2)

	bufs := c.Buffers()
	if len(bufs) != 2 || bufs[0] != b1 || bufs[1] != b2 {
		t.Errorf("expected [b1, b2] in order, got %+v", bufs)
	}
}
