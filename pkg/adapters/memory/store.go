package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// Store implements ports.CatalogueStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

func storeKey(fingerprint string, root schema.TypeID) string {
	return fingerprint + "/" + string(root)
}

// Save persists the catalogue in memory. The catalogue is serialized on
// write so callers can't mutate stored state through shared pointers.
func (s *Store) Save(ctx context.Context, cat *domain.Catalogue) error {
	raw, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("failed to marshal catalogue %s: %w", cat.RootType, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[storeKey(cat.Fingerprint, cat.RootType)] = raw
	return nil
}

// Load retrieves the catalogue for a fingerprint and root type.
func (s *Store) Load(ctx context.Context, fingerprint string, root schema.TypeID) (*domain.Catalogue, error) {
	s.mu.RLock()
	raw, ok := s.data[storeKey(fingerprint, root)]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrCatalogueNotFound
	}

	var cat domain.Catalogue
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalogue %s: %w", root, err)
	}
	return &cat, nil
}

// Delete removes the catalogue.
func (s *Store) Delete(ctx context.Context, fingerprint string, root schema.TypeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, storeKey(fingerprint, root))
	return nil
}

// List returns the root types stored under the fingerprint, in lexical order.
func (s *Store) List(ctx context.Context, fingerprint string) ([]schema.TypeID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := fingerprint + "/"
	roots := make([]schema.TypeID, 0)
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			roots = append(roots, schema.TypeID(strings.TrimPrefix(k, prefix)))
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	return roots, nil
}
