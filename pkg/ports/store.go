package ports

import (
	"context"

	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// CatalogueStore defines the interface for persisting built catalogues.
// Catalogues are keyed by the registry fingerprint they were built from plus
// the root type, so a stale cache is never served for a changed registry.
type CatalogueStore interface {
	// Save persists a catalogue under its fingerprint and root type.
	Save(ctx context.Context, cat *domain.Catalogue) error

	// Load retrieves the catalogue for a fingerprint and root type.
	// Returns domain.ErrCatalogueNotFound if no catalogue is stored.
	Load(ctx context.Context, fingerprint string, root schema.TypeID) (*domain.Catalogue, error)

	// Delete removes the catalogue for a fingerprint and root type.
	Delete(ctx context.Context, fingerprint string, root schema.TypeID) error

	// List returns the root types with a stored catalogue for the fingerprint.
	List(ctx context.Context, fingerprint string) ([]schema.TypeID, error)
}
