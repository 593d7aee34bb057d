// Package filestore persists the slug mapping table in a single JSON file.
//
// The whole table is reloaded on every read and rewritten on every mutation;
// mutations are serialized behind a store-scoped mutex so two concurrent
// creates can never stomp each other's write. The file is a plain JSON
// object of slug to destination pairs, pretty-printed with non-ASCII text
// emitted literally, so Khmer slugs stay readable and diffable.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/iVbk/khmerlink/internal/errs"
	"github.com/iVbk/khmerlink/internal/models"
	"github.com/iVbk/khmerlink/internal/repository/backend"
)

// FileStore is a file-backed implementation of the mapping storage.
type FileStore struct {
	// backend owns the storage location; nobody else reads or writes it.
	backend backend.Backend
	// mu serializes the load-check-insert-save sequence of mutations.
	mu sync.Mutex
}

// New creates a FileStore on top of the given backend.
func New(b backend.Backend) (*FileStore, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: backend", errs.ErrNilDependency)
	}
	return &FileStore{backend: b}, nil
}

// Load reads the table from the backend. A missing file means an empty
// table; so does unparseable content. Read failures are deliberately masked:
// the service stays available and starts over from empty state.
func (fs *FileStore) Load() models.MappingTable {
	data, err := fs.backend.ReadAll()
	if err != nil {
		return models.MappingTable{}
	}

	var table models.MappingTable
	if err = json.Unmarshal(data, &table); err != nil {
		return models.MappingTable{}
	}
	if table == nil {
		table = models.MappingTable{}
	}

	return table
}

// Save serializes the full table and replaces the persisted content.
// Unlike reads, a failed write is surfaced as *errs.StorageError.
func (fs *FileStore) Save(table models.MappingTable) error {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(table); err != nil {
		return errs.NewStorageError("encode", fs.backend.Path(), err)
	}

	if err := fs.backend.WriteAll(buf.Bytes()); err != nil {
		return errs.NewStorageError("save", fs.backend.Path(), err)
	}

	return nil
}

// Create inserts a new slug after trimming both inputs. An existing slug
// fails with ErrAlreadyExists and performs no write.
func (fs *FileStore) Create(_ context.Context, slug, destination string) error {
	slug = strings.TrimSpace(slug)
	destination = strings.TrimSpace(destination)

	if slug == "" {
		return fmt.Errorf("%w: empty slug", errs.ErrInvalidRequest)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	table := fs.Load()

	if _, taken := table[models.Slug(slug)]; taken {
		return fmt.Errorf("%s: %w", slug, errs.ErrAlreadyExists)
	}

	table[models.Slug(slug)] = models.Destination(destination)

	return fs.Save(table)
}

// Resolve returns the destination for a slug, or ErrNotFound. It reads
// without taking the mutex: the backend replaces the file atomically, so
// the worst case is a stale-but-consistent table.
func (fs *FileStore) Resolve(_ context.Context, slug models.Slug) (models.Destination, error) {
	table := fs.Load()

	destination, found := table[slug]
	if !found {
		return "", fmt.Errorf("%s: %w", slug, errs.ErrNotFound)
	}

	return destination, nil
}

// All returns the complete mapping table.
func (fs *FileStore) All(context.Context) (models.MappingTable, error) {
	return fs.Load(), nil
}

// Ping reports that there is no database behind this store.
func (fs *FileStore) Ping(context.Context) error {
	return errs.ErrDBNotConnected
}
