// Package knowledge holds curated example overrides for types whose
// correct example cannot be derived generically from schema alone.
//
// Entries are addressed by a closed set of keys: an exact type, a
// (parent type, field name) pair, or an (enum type, variant signature)
// pair. The builder consults the base before recursing; a hit is
// authoritative and short-circuits traversal of that subtree.
package knowledge

import "github.com/tracery-dev/tracery/pkg/schema"

type keyKind uint8

const (
	keyExact keyKind = iota
	keyField
	keyVariant
)

// Key addresses one knowledge entry. Keys are compared structurally;
// build them with Exact, Field or Variant.
type Key struct {
	kind  keyKind
	owner schema.TypeID
	part  string
}

// Exact keys an entry on a type identifier.
func Exact(t schema.TypeID) Key {
	return Key{kind: keyExact, owner: t}
}

// Field keys an entry on a named field of a parent type. Field entries
// are more specific than Exact entries and win over them.
func Field(parent schema.TypeID, field string) Key {
	return Key{kind: keyField, owner: parent, part: field}
}

// Variant keys an entry on an enum's variant signature, in the
// signature's canonical rendering (schema.VariantSignature.Key).
func Variant(enum schema.TypeID, signature string) Key {
	return Key{kind: keyVariant, owner: enum, part: signature}
}

// Base is the lookup table of curated examples. The zero value is not
// usable; call New or Defaults. A fully constructed Base is read-only
// and safe to share across traversals.
type Base struct {
	entries map[Key]any
}

// New returns an empty knowledge base.
func New() *Base {
	return &Base{entries: make(map[Key]any)}
}

// Set stores an example under k, replacing any previous entry. Returns
// the base for chaining during construction.
func (b *Base) Set(k Key, example any) *Base {
	b.entries[k] = example
	return b
}

// Lookup returns the curated example for k, if any. A nil base never
// matches.
func (b *Base) Lookup(k Key) (any, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.entries[k]
	return v, ok
}

// Len returns the number of entries.
func (b *Base) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}
