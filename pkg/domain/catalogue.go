package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tracery-dev/tracery/pkg/schema"
)

// ExampleGroup is one example per structural variant signature,
// published at an enum's own path. ApplicableVariants lists every
// variant name sharing the signature, not just the representative the
// example was built from.
type ExampleGroup struct {
	ApplicableVariants []string `json:"applicable_variants"`
	Signature          string   `json:"signature"`
	Example            any      `json:"example"`
}

// VariantStep is one ancestor variant selection on the way to a
// variant-guarded path: the ancestor enum's path and the variant name
// that must be selected there.
type VariantStep struct {
	Path    string `json:"path"`
	Variant string `json:"required_variant"`
}

// PathRequirement describes what it takes to reach a path that is only
// valid under specific ancestor variant selections. Example starts as
// the local value and is rewritten during the unwind until it shows the
// complete value from the root down.
type PathRequirement struct {
	Description string        `json:"description"`
	Example     any           `json:"example"`
	VariantPath []VariantStep `json:"variant_path"`
}

// DescribeVariantPath renders the human description of an ordered
// variant chain, root first.
func DescribeVariantPath(steps []VariantStep) string {
	if len(steps) == 0 {
		return ""
	}
	parts := make([]string, len(steps))
	for i, s := range steps {
		path := s.Path
		if path == "" {
			path = "the root"
		}
		parts[i] = fmt.Sprintf("%s set to variant %q", path, s.Variant)
	}
	return "Reachable only with " + strings.Join(parts, ", then ")
}

// PathEntry is one published mutation path. Exactly one of Example or
// Examples is meaningful: enum roots publish per-signature groups,
// everything else a single example.
type PathEntry struct {
	Path        string           `json:"path"`
	Description string           `json:"description"`
	Type        schema.TypeID    `json:"type"`
	Kind        PathKind         `json:"path_kind"`
	Status      MutationStatus   `json:"status"`
	Reason      MutationReason   `json:"reason,omitempty"`
	Example     any              `json:"example,omitempty"`
	Examples    []ExampleGroup   `json:"examples,omitempty"`
	Requirement *PathRequirement `json:"path_requirement,omitempty"`
}

// Catalogue is the published output of one traversal: every mutation
// path of one root type, keyed by path string. Fingerprint identifies
// the registry the catalogue was built from.
type Catalogue struct {
	RootType    schema.TypeID        `json:"root_type"`
	Fingerprint string               `json:"fingerprint,omitempty"`
	Paths       map[string]PathEntry `json:"paths"`
}

// Entry returns the published entry for path, if present.
func (c *Catalogue) Entry(path string) (PathEntry, bool) {
	e, ok := c.Paths[path]
	return e, ok
}

// Len returns the number of published paths.
func (c *Catalogue) Len() int {
	return len(c.Paths)
}

// SortedPaths returns every published path string in lexical order,
// the root first.
func (c *Catalogue) SortedPaths() []string {
	paths := make([]string, 0, len(c.Paths))
	for p := range c.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
