// Package childlog is the optional helper a supervised child program links
// against to talk back to its superlog parent, grounded on the original's
// superlogInit/superlog/vsuperlog/superlogDump client-side API.
package childlog

import (
	"fmt"
	"os"
	"sync"
	"syscall"
)

var (
	mu      sync.Mutex
	out     *os.File
	enabled bool
)

// Init enables logging to the given file descriptor, which must already be
// open for writing — ordinarily one of the descriptors the parent
// superlog process asked to capture. Init is typically called once near
// the start of main, right after the descriptor was inherited from the
// parent.
func Init(fd int) error {
	mu.Lock()
	defer mu.Unlock()

	f := os.NewFile(uintptr(fd), fmt.Sprintf("fd %d", fd))
	if f == nil {
		enabled = false
		return fmt.Errorf("fd %d not open, childlog not enabled", fd)
	}
	out = f
	enabled = true
	fmt.Fprintln(out, "superlog output begins")
	return nil
}

// Printf writes a formatted line to the parent-captured descriptor and
// flushes immediately. It is a no-op if Init was never called or failed.
func Printf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	fmt.Fprintf(out, format, args...)
}

// Dump asks the parent superlog process to dump its captured logs now, by
// sending it SIGUSR1.
func Dump() {
	syscall.Kill(os.Getppid(), syscall.SIGUSR1)
}
