/*
Package ports defines the driven ports (interfaces) for the tracery engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various schema backends, catalogue stores, and mutation
transports.

# Key Interfaces

  - SchemaSource: Responsible for producing a type Registry (e.g., from a file, memory, or a live reflection endpoint).
  - CatalogueStore: Responsible for persisting and loading built Catalogues.
  - Mutator: Responsible for applying a MutationRequest against a live target.
  - Cataloguer: The engine surface adapters consume (HTTP, MCP) without binding to the concrete implementation.
*/
package ports
