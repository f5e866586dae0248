package markdown

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tracery-dev/tracery/pkg/domain"
)

// Render produces a markdown document for one catalogue: a header with
// the root type and fingerprint, a summary table of every path, and a
// detail section per path with its example payloads.
func Render(cat *domain.Catalogue) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Mutation Paths: %s\n\n", cat.RootType))
	if cat.Fingerprint != "" {
		sb.WriteString(fmt.Sprintf("Registry fingerprint: `%s`\n\n", cat.Fingerprint))
	}
	sb.WriteString(fmt.Sprintf("%d paths published.\n\n", cat.Len()))

	paths := cat.SortedPaths()

	sb.WriteString("| Path | Type | Status |\n")
	sb.WriteString("|---|---|---|\n")
	for _, p := range paths {
		entry, _ := cat.Entry(p)
		sb.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n", displayPath(p), entry.Type, entry.Status))
	}
	sb.WriteString("\n")

	for _, p := range paths {
		entry, _ := cat.Entry(p)
		writeEntry(&sb, entry)
	}

	return sb.String()
}

func writeEntry(sb *strings.Builder, entry domain.PathEntry) {
	sb.WriteString(fmt.Sprintf("## `%s`\n\n", displayPath(entry.Path)))
	if entry.Description != "" {
		sb.WriteString(entry.Description + ".\n\n")
	}
	sb.WriteString(fmt.Sprintf("Type `%s`, status `%s`.\n\n", entry.Type, entry.Status))

	if entry.Reason != "" {
		sb.WriteString(fmt.Sprintf("Reason: `%s`.\n\n", entry.Reason))
	}

	switch {
	case len(entry.Examples) > 0:
		sb.WriteString("Example payloads by variant shape:\n\n")
		for _, g := range entry.Examples {
			sb.WriteString(fmt.Sprintf("**%s** (`%s`):\n\n", strings.Join(g.ApplicableVariants, ", "), g.Signature))
			writeFence(sb, g.Example)
		}
	case entry.Status != domain.StatusNotMutable:
		sb.WriteString("Example payload:\n\n")
		writeFence(sb, entry.Example)
	}

	if entry.Requirement != nil {
		if entry.Requirement.Description != "" {
			sb.WriteString(fmt.Sprintf("> %s\n\n", entry.Requirement.Description))
		}
		sb.WriteString("Complete value from the root:\n\n")
		writeFence(sb, entry.Requirement.Example)
	}
}

func writeFence(sb *strings.Builder, v any) {
	sb.WriteString("```json\n")
	sb.WriteString(renderJSON(v))
	sb.WriteString("\n```\n\n")
}

func renderJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}
