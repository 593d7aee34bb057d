// Package backend abstracts where the mapping file lives. The store reads
// and writes whole files only; how the bytes reach a writable location in a
// given deployment is the backend's concern.
package backend

import (
	"fmt"
	"os"
	"path/filepath"
)

// Backend is a whole-file storage location.
type Backend interface {
	// ReadAll returns the complete content of the storage location.
	// A missing location is reported with an error wrapping os.ErrNotExist.
	ReadAll() ([]byte, error)
	// WriteAll replaces the complete content of the storage location.
	WriteAll(data []byte) error
	// Path returns the writable location, for diagnostics.
	Path() string
}

// Interface implementation guards.
var (
	_ Backend = (*LocalFS)(nil)
	_ Backend = (*Seeded)(nil)
)

// LocalFS stores the file at a writable path. Writes go to a temp file in
// the same directory which is then renamed into place, so a concurrent
// reader never observes a half-written file.
type LocalFS struct {
	path string
}

// NewLocalFS returns a LocalFS backend for the given path.
func NewLocalFS(path string) *LocalFS {
	return &LocalFS{path: path}
}

// ReadAll reads the whole file.
func (l *LocalFS) ReadAll() ([]byte, error) {
	return os.ReadFile(l.path)
}

// WriteAll atomically replaces the file content.
func (l *LocalFS) WriteAll(data []byte) error {
	dir := filepath.Dir(l.path)

	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Rename(tmp.Name(), l.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Path returns the writable location.
func (l *LocalFS) Path() string {
	return l.path
}

// Seeded wraps a LocalFS and copies a read-only bootstrap file into the
// writable location whenever the writable location is absent. Deployments
// with a read-only working directory ship the seed next to the binary and
// point the writable path at a temp directory, where files may not survive
// between accesses.
type Seeded struct {
	local    *LocalFS
	seedPath string
}

// NewSeeded returns a backend that seeds local from seedPath on access.
func NewSeeded(local *LocalFS, seedPath string) *Seeded {
	return &Seeded{local: local, seedPath: seedPath}
}

// seed copies the bootstrap file into the writable location if the writable
// location does not exist yet. Copy errors are ignored: the service starts
// from an empty table rather than failing to boot.
func (s *Seeded) seed() {
	if _, err := os.Stat(s.local.path); err == nil {
		return
	}

	data, err := os.ReadFile(s.seedPath)
	if err != nil {
		return
	}

	_ = s.local.WriteAll(data)
}

// ReadAll seeds the writable location if needed, then reads it.
func (s *Seeded) ReadAll() ([]byte, error) {
	s.seed()
	return s.local.ReadAll()
}

// WriteAll writes through to the writable location.
func (s *Seeded) WriteAll(data []byte) error {
	s.seed()
	return s.local.WriteAll(data)
}

// Path returns the writable location.
func (s *Seeded) Path() string {
	return s.local.Path()
}
