/*
Package tracery turns a registry of reflected type schemas into a catalogue of
addressable mutation paths, each carrying a ready-to-send example payload for a
remote reflection protocol.

It walks the registry depth-first from a chosen root type, emits one entry per
reachable location (struct fields, tuple positions, collection elements, map
entries), and classifies every entry as mutable, partially mutable, or not
mutable with a machine-readable reason.

# Concept

Tracery treats a type registry as a tree of mutation targets. The engine owns
traversal, example generation, and caching, while your application ("Host")
owns transport and the actual mutation calls. This hexagonal split lets the
same catalogue drive a CLI, an HTTP API, or an MCP server.

# Key Features

  - Deterministic Output: the same registry and root always produce the same
    catalogue, byte for byte.
  - Total Traversal: unknown types, recursion limits, and unserializable
    leaves become not-mutable entries instead of errors.
  - Curated Knowledge: opaque engine types get hand-written example payloads
    that override generic generation.
  - Fingerprinted Caching: catalogues are keyed by a canonical registry
    fingerprint, so stale caches can never leak across registry versions.

# Usage

Initialize the engine with a registry document, then request catalogues per
root type. You can use the default file source or inject a custom one.

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/tracery-dev/tracery"
	)

	func main() {
		// Initialize Engine with default settings (reads ./registry.json)
		eng, err := tracery.New("./registry.json")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		cat, err := eng.Catalogue(ctx, "demo.Sprite")
		if err != nil {
			log.Fatal(err)
		}

		for _, p := range cat.SortedPaths() {
			fmt.Printf("%-24s %s\n", p, cat.Paths[p].Status)
		}
	}

For registries served by a live process, use the remote adapter:

	src := remote.New("http://localhost:15702")
	eng, err := tracery.New("", tracery.WithSource(src))
*/
package tracery
