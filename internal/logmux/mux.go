// Package logmux persists child process output. Each managed process gets
// one append-only log file under the configured directory, shared by its
// stdout and stderr.
package logmux

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Dir hands out per-process log writers rooted at a single directory. The
// directory is created lazily on the first open.
type Dir struct {
	path string

	mu   sync.Mutex
	made bool
}

// NewDir constructs a log sink directory at path.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Path returns the log file path for the named process.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.path, name+".log")
}

// Open returns an append-mode writer for the named process. The caller owns
// the writer and closes it when the process is reaped.
func (d *Dir) Open(name string) (io.WriteCloser, error) {
	d.mu.Lock()
	if !d.made {
		if err := os.MkdirAll(d.path, 0o755); err != nil {
			d.mu.Unlock()
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		d.made = true
	}
	d.mu.Unlock()

	f, err := os.OpenFile(d.Path(name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file for %s: %w", name, err)
	}
	return f, nil
}
