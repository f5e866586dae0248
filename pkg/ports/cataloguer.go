package ports

import (
	"context"

	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// Cataloguer defines the interface for the path-building core.
// This is the primary interface used by adapters (e.g., HTTP, MCP) so they can
// serve catalogues without binding to the concrete engine.
type Cataloguer interface {
	// Catalogue builds or retrieves the mutation-path catalogue for one root type.
	// Returns domain.ErrTypeNotFound if the root is not in the registry.
	Catalogue(ctx context.Context, root schema.TypeID) (*domain.Catalogue, error)

	// Types returns every registered type ID in lexical order.
	Types() []schema.TypeID

	// Fingerprint identifies the registry snapshot the engine serves from.
	Fingerprint() string
}
