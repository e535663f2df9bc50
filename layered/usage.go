package layered

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DefaultUsageWidth is the line width RenderUsage wraps the option listing to.
const DefaultUsageWidth = 80

// RenderUsage returns the usage text for t using DefaultUsageWidth.
func RenderUsage(program string, t *Table) string {
	var sb strings.Builder
	_, _ = WriteUsage(&sb, program, t, DefaultUsageWidth)
	return sb.String()
}

// WriteUsage writes one synopsis line per layer followed by the option
// listing. Options in every layer appear on each line. A width of zero or
// less disables wrapping. It returns the number of bytes written and any
// error from w.
func WriteUsage(w io.Writer, program string, t *Table, width int) (int, error) {
	var sb strings.Builder
	sb.WriteString("Usage:\n")

	specific := t.specificLayers()
	if specific == 0 {
		writeSynopsis(&sb, program, t, LayerAll)
	} else {
		for _, i := range specific.Indexes() {
			writeSynopsis(&sb, program, t, LayerOf(i))
		}
	}

	if hasOptions(t) {
		sb.WriteString("\nOptions:\n")
		sb.WriteString(optionListing(t, specific != 0, width))
		sb.WriteString("\n")
	}
	return io.WriteString(w, sb.String())
}

// specificLayers is the union of layers named by specs that are not in every
// layer. Zero means the table has no mutually exclusive groups.
func (t *Table) specificLayers() Layer {
	var l Layer
	for i := range t.entries {
		if t.entries[i].Layer != LayerAll {
			l |= t.entries[i].Layer
		}
	}
	return l
}

func hasOptions(t *Table) bool {
	for i := range t.entries {
		if t.entries[i].Type != TypePositional {
			return true
		}
	}
	return false
}

func writeSynopsis(sb *strings.Builder, program string, t *Table, layer Layer) {
	sb.WriteString("  ")
	sb.WriteString(program)

	// Options first, then the positional placeholders of the layer.
	for i := range t.entries {
		e := &t.entries[i]
		if e.Type == TypePositional || !e.Layer.Intersects(layer) {
			continue
		}
		sb.WriteByte(' ')
		if e.Required {
			sb.WriteString(synopsisTerm(e))
		} else {
			sb.WriteString("[" + synopsisTerm(e) + "]")
		}
	}
	for i := range t.entries {
		e := &t.entries[i]
		if e.Type == TypePositional && e.Layer.Intersects(layer) {
			sb.WriteByte(' ')
			sb.WriteString(placeholder(e))
		}
	}
	sb.WriteByte('\n')
}

// synopsisTerm renders an option with its value placeholder, e.g.
// "-count N", "-level [N]" or "-files FILE...". Bool options that need no
// value render as the bare name.
func synopsisTerm(e *entry) string {
	if e.Type == TypeBool && e.Optional() {
		return e.Name
	}
	value := placeholder(e)
	if e.Unbounded() || e.MaxValues > 1 {
		value += "..."
	}
	if e.Optional() {
		value = "[" + value + "]"
	}
	return e.Name + " " + value
}

func placeholder(e *entry) string {
	if e.ValueName != "" {
		return e.ValueName
	}
	if e.Type == TypePositional {
		return e.Name
	}
	return strings.ToUpper(e.Type.String())
}

func optionListing(t *Table, showLayers bool, width int) string {
	tw := table.NewWriter()
	header := table.Row{"Option", "Description"}
	if showLayers {
		header = table.Row{"Option", "Layers", "Description"}
	}
	tw.AppendHeader(header)

	for i := range t.entries {
		e := &t.entries[i]
		if e.Type == TypePositional {
			continue
		}
		desc := e.Help
		if e.Required {
			desc = strings.TrimSpace(desc + " (required)")
		}
		if showLayers {
			tw.AppendRow(table.Row{synopsisTerm(e), e.Layer.String(), desc})
		} else {
			tw.AppendRow(table.Row{synopsisTerm(e), desc})
		}
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft}, // OPTION
		{Number: 2, Align: text.AlignLeft}, // LAYERS or DESCRIPTION
		{Number: 3, Align: text.AlignLeft}, // DESCRIPTION
	})

	style := table.StyleLight
	style.Options = table.OptionsNoBordersAndSeparators
	tw.SetStyle(style)
	if width > 0 {
		tw.SetAllowedRowLength(width)
	}
	return tw.Render()
}
