// Package models contains the data models of the link service.
package models

import "github.com/google/uuid"

// Slug is the user-chosen label a short link is addressed by.
// It is used verbatim as the lookup key: no normalization, no character-set
// restriction, arbitrary Unicode (Khmer script included) is valid.
type Slug string

// Destination is the URL a visitor is redirected to.
type Destination string

// MappingTable is the complete slug to destination mapping.
// It is also the persisted form of the file store: a single JSON object
// whose keys are slugs and whose values are destination URLs.
type MappingTable map[Slug]Destination

// Link is a single mapping record as stored by the database backend.
type Link struct {
	ID          string      `json:"id,omitempty"`
	Slug        Slug        `json:"slug"`
	Destination Destination `json:"destination"`
}

// NewLink creates a new link record with a fresh ID.
func NewLink(slug, destination string) *Link {
	return &Link{
		ID:          uuid.NewString(),
		Slug:        Slug(slug),
		Destination: Destination(destination),
	}
}
