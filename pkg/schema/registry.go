package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// Registry maps type identifiers to their schema documents. It is the
// sole input of a traversal and is read-only while one runs: register
// everything first, then share the registry freely across goroutines.
type Registry struct {
	schemas map[TypeID]*Schema
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[TypeID]*Schema)}
}

// Register adds or replaces the schema for id. Not safe to call
// concurrently with readers.
func (r *Registry) Register(id TypeID, s *Schema) {
	r.schemas[id] = s
}

// Lookup returns the schema for id, if present.
func (r *Registry) Lookup(id TypeID) (*Schema, bool) {
	s, ok := r.schemas[id]
	return s, ok
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id TypeID) bool {
	_, ok := r.schemas[id]
	return ok
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.schemas)
}

// Types returns all registered identifiers in sorted order.
func (r *Registry) Types() []TypeID {
	ids := make([]TypeID, 0, len(r.schemas))
	for id := range r.schemas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Fingerprint returns the hex SHA-256 of the registry's canonical JSON
// encoding. Two registries with identical contents produce identical
// fingerprints; catalogue caches key on this.
func (r *Registry) Fingerprint() string {
	data, err := json.Marshal(r.schemas)
	if err != nil {
		// Schemas are plain data decoded from JSON/YAML; a marshal
		// failure means a caller stored something non-serializable.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// MarshalJSON encodes the registry as a map of type id to schema.
func (r *Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.schemas)
}

// UnmarshalJSON decodes the map form produced by MarshalJSON.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var raw map[TypeID]*Schema
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode registry: %w", err)
	}
	if raw == nil {
		raw = make(map[TypeID]*Schema)
	}
	r.schemas = raw
	return nil
}

// DecodeRegistry builds a registry from a raw map, the shape a
// reflection endpoint or a YAML document yields after generic
// unmarshalling. Unknown document fields are ignored so the dialect
// can grow without breaking older clients.
func DecodeRegistry(raw map[string]any) (*Registry, error) {
	schemas := make(map[TypeID]*Schema, len(raw))
	for id, doc := range raw {
		var s Schema
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &s,
			TagName:          "mapstructure",
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, fmt.Errorf("decoder for %q: %w", id, err)
		}
		if err := dec.Decode(doc); err != nil {
			return nil, fmt.Errorf("decode schema %q: %w", id, err)
		}
		schemas[TypeID(id)] = &s
	}
	return &Registry{schemas: schemas}, nil
}
