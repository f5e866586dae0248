/*
Package domain contains the core data model of the mutation-path catalogue.

It defines the fundamental entities the builder produces and the serving
surfaces publish: path identities, mutation statuses with their reasons,
per-signature example groups, path requirements, and the catalogue itself.
This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - PathKind: Why a node exists in the traversal tree (root, struct field,
    indexed element) and how it renders into a path segment.
  - MutationStatus: Whether a path is fully, partially, or not mutable,
    with a reason when it is not fully mutable.
  - ExampleGroup: One example per structural variant signature, published
    at an enum's own path.
  - PathRequirement: The ancestor variant selections and the full
    root-down example needed to reach a variant-guarded path.
  - Catalogue: The published mapping from path string to entry.
*/
package domain
