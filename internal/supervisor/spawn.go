package supervisor

import (
	"io"
	"os"
	"os/exec"

	"github.com/efalk/superlog/internal/errors"
)

// spawned is a running (or in-process simulated) child, together with the
// parent-side read ends of its output pipes, indexed the same way as the
// Config.Descriptors slice that produced them.
type spawned struct {
	readers []*os.File
	wait    func() error
	// done fires once the child is finished: either the real process
	// exited, or the ChildFunc goroutine returned.
	done chan struct{}
}

// spawn starts the child described by cfg, wiring one pipe per requested
// descriptor so the parent can read what the child writes there.
//
// For a real command, the target descriptor numbers may collide with each
// other or with the pipe's own fd numbers once duplicated into the child;
// the original C implementation resolves this by hand with dup2/dup
// collision juggling in its child() helper. os.StartProcess's
// ProcAttr.Files does the same job for us atomically: the slice's index
// *is* the child's descriptor number, so handing StartProcess a
// fds-sized-or-larger slice with the pipe write end at index
// cfg.Descriptors[i] reproduces the exact remap, collision-free, without
// any hand-written dup2 dance.
func spawn(cfg Config) (*spawned, error) {
	if cfg.ChildFunc != nil {
		return spawnFunc(cfg)
	}
	return spawnProcess(cfg)
}

func spawnProcess(cfg Config) (*spawned, error) {
	if len(cfg.Argv) == 0 {
		return nil, errors.ErrNoCommand
	}

	path, err := exec.LookPath(cfg.Argv[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrExecFailed, err.Error())
	}

	maxFD := 2
	for _, fd := range cfg.Descriptors {
		if fd > maxFD {
			maxFD = fd
		}
	}

	files := make([]*os.File, maxFD+1)
	files[0] = os.Stdin
	readers := make([]*os.File, len(cfg.Descriptors))

	for i, fd := range cfg.Descriptors {
		r, w, err := os.Pipe()
		if err != nil {
			closeAll(readers[:i])
			return nil, errors.Wrap(errors.ErrPipeFailed, err.Error())
		}
		readers[i] = r
		files[fd] = w
	}

	proc, err := os.StartProcess(path, cfg.Argv, &os.ProcAttr{Files: files})
	if err != nil {
		closeAll(readers)
		return nil, errors.Wrap(errors.ErrForkFailed, err.Error())
	}

	// The parent no longer needs the write ends; the child has its own
	// copies via fork+exec.
	for _, fd := range cfg.Descriptors {
		if f := files[fd]; f != nil {
			f.Close()
		}
	}

	done := make(chan struct{})
	go func() {
		proc.Wait()
		close(done)
	}()

	return &spawned{readers: readers, done: done}, nil
}

// spawnFunc runs cfg.ChildFunc in a goroutine instead of a real subprocess,
// piping its writes through the same descriptor plumbing a real child
// would use. This lets tests (and embedders) exercise the full capture
// pipeline without execing an external binary or forking, neither of which
// Go supports doing safely mid-process the way the original's child()
// could.
func spawnFunc(cfg Config) (*spawned, error) {
	readers := make([]*os.File, len(cfg.Descriptors))
	writers := make([]*os.File, len(cfg.Descriptors))

	for i := range cfg.Descriptors {
		r, w, err := os.Pipe()
		if err != nil {
			closeAll(readers[:i])
			return nil, errors.Wrap(errors.ErrPipeFailed, err.Error())
		}
		readers[i] = r
		writers[i] = w
	}

	fds := make(map[int]io.Writer, len(cfg.Descriptors))
	for i, fd := range cfg.Descriptors {
		fds[fd] = writers[i]
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer closeAll(writers)
		cfg.ChildFunc(cfg.Argv, fds)
	}()

	return &spawned{readers: readers, done: done}, nil
}

func closeAll(files []*os.File) {
	for _, f := range files {
		if f != nil {
			f.Close()
		}
	}
}
