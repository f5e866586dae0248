package ports

import (
	"context"

	"github.com/tracery-dev/tracery/pkg/schema"
)

// SchemaSource defines how the engine obtains a type registry.
// This allows the schema origin (file, memory, live reflection endpoint) to be
// decoupled from traversal.
type SchemaSource interface {
	// Fetch produces the current registry. Implementations backed by a
	// remote endpoint should honor ctx cancellation.
	Fetch(ctx context.Context) (*schema.Registry, error)
}

// Watchable defines an interface for sources that can notify about backend changes.
// This is typically used for hot-reload functionality in serve mode.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying schemas change.
	// It abstracts away the specific event details, signaling only that a refetch is required.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
