package childlog

import (
	"bytes"
	"os"
	"testing"
)

func TestInitAndPrintf(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := Init(int(w.Fd())); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Printf("hello %s\n", "world")
	w.Close()

	var buf bytes.Buffer
	buf.ReadFrom(r)
	if got := buf.String(); got != "superlog output begins\nhello world\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestPrintfNoopBeforeInit(t *testing.T) {
	mu.Lock()
	enabled = false
	mu.Unlock()
	// Should not panic or write, whether out is nil or a file left from an
	// earlier Init.
	Printf("ignored\n")
}
