package graph

import (
	"fmt"
	"strings"

	"github.com/tracery-dev/tracery/pkg/domain"
)

// Overlay contains dynamic styling to layer on the structural tree.
type Overlay struct {
	// StatusColors styles every node by its mutation status.
	StatusColors bool
	// HighlightPath emphasizes one path and the walk leading to it.
	HighlightPath string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a
// catalogue. It applies semantic styling:
// - Root: ((Circle))
// - Enum (variant choice): [/Parallelogram/]
// - Indexed element: [[Subroutine]]
// - Default: [Rectangle]
// Edges into variant-guarded paths are dotted and labeled with the
// variant that must be selected on the parent. Overlay styles are
// applied if provided.
func GenerateMermaid(cat *domain.Catalogue, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	paths := cat.SortedPaths()
	for _, p := range paths {
		entry, _ := cat.Entry(p)
		safeID := nodeID(p)

		// Node Shape based on what the path addresses
		opener, closer := "[", "]"

		switch {
		case p == "":
			opener, closer = "((", "))" // Circle
		case len(entry.Examples) > 0:
			opener, closer = "[/", "/]" // Parallelogram (variant choice)
		case entry.Kind.Origin == domain.OriginIndex:
			opener, closer = "[[", "]]" // Subroutine
		}

		label := nodeLabel(cat, entry)
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))
	}

	// Edges from each path to its parent
	for _, p := range paths {
		if p == "" {
			continue
		}
		parent := parentOf(p)
		if _, ok := cat.Entry(parent); !ok {
			continue
		}
		entry, _ := cat.Entry(p)

		arrow := "-->"
		if variant := guardingVariant(entry, parent); variant != "" {
			// Escape double quotes in variant names for Mermaid labels
			safeVariant := strings.ReplaceAll(variant, "\"", "'")
			arrow = fmt.Sprintf("-. \"%s\" .->", safeVariant)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", nodeID(parent), arrow, nodeID(p)))
	}

	// Apply Overlay Styles
	if overlay != nil {
		writeOverlay(&sb, cat, overlay)
	}

	return sb.String()
}

// nodeLabel renders the visible text of a path node: the path itself,
// or the root type id for the empty path, annotated with a lock when
// the path cannot be mutated.
func nodeLabel(cat *domain.Catalogue, entry domain.PathEntry) string {
	label := entry.Path
	if entry.Path == "" {
		label = string(cat.RootType)
	}
	if entry.Status == domain.StatusNotMutable && entry.Reason != "" {
		label = fmt.Sprintf("%s <br/> 🔒 %s", label, entry.Reason)
	}
	return label
}

// guardingVariant returns the variant that must be selected on the
// parent for this path to exist, or "" when the edge is unconditional.
func guardingVariant(entry domain.PathEntry, parent string) string {
	if entry.Requirement == nil {
		return ""
	}
	for _, step := range entry.Requirement.VariantPath {
		if step.Path == parent {
			return step.Variant
		}
	}
	return ""
}

func writeOverlay(sb *strings.Builder, cat *domain.Catalogue, overlay *Overlay) {
	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	if overlay.StatusColors {
		sb.WriteString("    classDef mutable fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef partial fill:#fff8e1,stroke:#f9a825,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef frozen fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")

		for _, p := range cat.SortedPaths() {
			entry, _ := cat.Entry(p)
			class := "mutable"
			switch entry.Status {
			case domain.StatusPartiallyMutable:
				class = "partial"
			case domain.StatusNotMutable:
				class = "frozen"
			}
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", nodeID(p), class))
		}
	}

	if overlay.HighlightPath != "" {
		if _, ok := cat.Entry(overlay.HighlightPath); ok {
			sb.WriteString("    classDef onpath fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
			sb.WriteString("    classDef focus fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

			for parent := parentOf(overlay.HighlightPath); ; parent = parentOf(parent) {
				sb.WriteString(fmt.Sprintf("    class %s onpath;\n", nodeID(parent)))
				if parent == "" {
					break
				}
			}
			sb.WriteString(fmt.Sprintf("    class %s focus;\n", nodeID(overlay.HighlightPath)))
		}
	}
}

// nodeID maps a path to a Mermaid-safe identifier. The empty root path
// becomes "root"; every other path is prefixed with it.
func nodeID(path string) string {
	if path == "" {
		return "root"
	}
	return "root" + sanitizeMermaidID(path)
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}

// parentOf trims the last path segment: ".a.b" owns ".a.b.c" and the
// root owns every single-segment path.
func parentOf(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx <= 0 {
		return ""
	}
	return path[:idx]
}
