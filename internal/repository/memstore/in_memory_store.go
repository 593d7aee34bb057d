// Package memstore provides an in-memory implementation of the mapping
// storage. It is the fallback when neither a DSN nor a mapping file is
// configured, and the store handler tests run against.
package memstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/iVbk/khmerlink/internal/errs"
	"github.com/iVbk/khmerlink/internal/models"
)

// MappingRepository stores the slug mapping table in a map.
// It is safe for concurrent use.
type MappingRepository struct {
	// table holds the slug to destination pairs.
	table models.MappingTable
	// mu protects the table from concurrent access.
	mu sync.RWMutex
}

// New creates an empty in-memory repository.
func New() *MappingRepository {
	return &MappingRepository{table: make(models.MappingTable)}
}

// Create inserts a new slug after trimming both inputs.
// An existing slug fails with ErrAlreadyExists.
func (r *MappingRepository) Create(_ context.Context, slug, destination string) error {
	slug = strings.TrimSpace(slug)
	destination = strings.TrimSpace(destination)

	if slug == "" {
		return fmt.Errorf("%w: empty slug", errs.ErrInvalidRequest)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.table[models.Slug(slug)]; taken {
		return fmt.Errorf("%s: %w", slug, errs.ErrAlreadyExists)
	}

	r.table[models.Slug(slug)] = models.Destination(destination)

	return nil
}

// Resolve returns the destination for a slug, or ErrNotFound.
func (r *MappingRepository) Resolve(_ context.Context, slug models.Slug) (models.Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	destination, found := r.table[slug]
	if !found {
		return "", fmt.Errorf("%s: %w", slug, errs.ErrNotFound)
	}

	return destination, nil
}

// All returns a copy of the complete mapping table.
func (r *MappingRepository) All(context.Context) (models.MappingTable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table := make(models.MappingTable, len(r.table))
	for slug, destination := range r.table {
		table[slug] = destination
	}

	return table, nil
}

// Ping reports that there is no database behind this store.
func (r *MappingRepository) Ping(context.Context) error {
	return errs.ErrDBNotConnected
}
