// Package tui renders gateway output for human terminals.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/schema"
)

// CatalogMarkdown builds the markdown document for a tool catalog, one
// section per tool with its parameters and their constraints.
func CatalogMarkdown(descriptors []domain.Descriptor) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Tools (%d)\n", len(descriptors))

	for _, d := range descriptors {
		fmt.Fprintf(&b, "\n## %s\n\n", d.Name)
		if d.Description != "" {
			fmt.Fprintf(&b, "%s\n", d.Description)
		}

		keys := d.Params.Keys()
		if len(keys) == 0 {
			b.WriteString("\nNo parameters.\n")
			continue
		}

		b.WriteString("\n")
		summary := d.Params.Summary()
		for _, key := range keys {
			fmt.Fprintf(&b, "- `%s` (%s)", key, fieldLabel(summary[key]))
			if desc := summary[key].Description; desc != "" {
				fmt.Fprintf(&b, ": %s", desc)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// fieldLabel compresses a field's kind and constraints into one label, e.g.
// "number, 4 to 8, default 4, required".
func fieldLabel(info schema.FieldInfo) string {
	parts := []string{info.Kind}

	if len(info.Values) > 0 {
		parts = append(parts, "one of "+strings.Join(info.Values, "|"))
	}
	switch {
	case info.Min != nil && info.Max != nil:
		parts = append(parts, formatBound(*info.Min)+" to "+formatBound(*info.Max))
	case info.Min != nil:
		parts = append(parts, "at least "+formatBound(*info.Min))
	case info.Max != nil:
		parts = append(parts, "at most "+formatBound(*info.Max))
	}
	if info.Default != nil {
		parts = append(parts, fmt.Sprintf("default %v", info.Default))
	}
	if info.Required {
		parts = append(parts, "required")
	}

	return strings.Join(parts, ", ")
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
