package cli

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// RenderTypesTable formats the registry contents as an aligned text table.
func RenderTypesTable(reg *schema.Registry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Type", "Kind"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, id := range reg.Types() {
		kind := ""
		if s, ok := reg.Lookup(id); ok {
			kind = string(s.Kind)
		}
		table.Append([]string{string(id), kind})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", reg.Len()),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// RenderPathsTable formats a catalogue as an aligned text table.
func RenderPathsTable(cat *domain.Catalogue) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Type", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	mutable := 0
	for _, p := range cat.SortedPaths() {
		entry := cat.Paths[p]
		label := p
		if label == "" {
			label = "(root)"
		}
		if entry.Status == domain.StatusMutable {
			mutable++
		}
		table.Append([]string{label, string(entry.Type), string(entry.Status)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(cat.Paths)),
		"",
		fmt.Sprintf("%d mutable", mutable),
	})

	table.Render()

	return tableBuffer.String()
}
