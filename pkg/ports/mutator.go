package ports

import (
	"context"

	"github.com/tracery-dev/tracery/pkg/domain"
)

// Mutator defines how a mutation is applied to a live target.
// The engine produces addressable paths and example payloads; the host
// implements this interface to carry the write over whatever transport
// the target speaks.
type Mutator interface {
	Mutate(ctx context.Context, req domain.MutationRequest) error
}
