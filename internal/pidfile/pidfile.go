// Package pidfile persists the (name, pid) pairs the supervisor reports for
// spawned processes. Each process gets one <name>.pid file under the
// configured directory.
package pidfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store manages PID files under a single directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created lazily
// on the first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the PID file path for the named process.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".pid")
}

// Record writes the PID file for the named process.
func (s *Store) Record(name string, pid int) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create pid directory: %w", err)
	}
	data := strconv.Itoa(pid) + "\n"
	if err := os.WriteFile(s.Path(name), []byte(data), 0o644); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	return nil
}

// Read returns the PID recorded for the named process.
func (s *Store) Read(name string) (int, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return 0, fmt.Errorf("read pid file: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse pid file %s: %w", s.Path(name), err)
	}
	return pid, nil
}

// Remove deletes the PID file for the named process. Missing files are not
// an error.
func (s *Store) Remove(name string) error {
	if err := os.Remove(s.Path(name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes every PID file in the directory.
func (s *Store) Clear() error {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.pid"))
	if err != nil {
		return err
	}
	for _, match := range matches {
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
