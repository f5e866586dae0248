// Package builder implements the mutation-path traversal: a depth-first,
// schema-driven walk that classifies each type, recurses into its
// structural children, deduplicates structurally identical enum
// variants, overrides generated examples with curated knowledge, and
// reconstructs full root-down examples for variant-guarded paths.
//
// The traversal is pure computation over an in-memory registry: no I/O,
// no shared mutable state, and a fixed depth bound that guarantees
// termination on self-referential schemas. One Builder may serve
// concurrent Build calls.
package builder
