// Package help rendering functions.
// This file handles the actual rendering of help content with proper styling.

package help

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Render returns the help text in canonical section order: description, usage,
// arguments, options, subcommands, examples. Empty sections are omitted.
func (b *ContentBuilder) Render() string {
	var out strings.Builder

	if b.description != "" {
		out.WriteString(b.description + "\n\n")
	}

	if b.usage != "" {
		b.section(&out, "Usage:", [][2]string{{b.usage, ""}})
	}

	if len(b.positionals) > 0 {
		rows := make([][2]string, 0, len(b.positionals))
		for _, p := range b.positionals {
			rows = append(rows, [2]string{
				b.styles.Placeholder.Render("<" + p.Name + ">"),
				b.describe(p.Desc, p.Default, p.Required),
			})
		}

		b.section(&out, "Arguments:", rows)
	}

	if len(b.flags) > 0 {
		rows := make([][2]string, 0, len(b.flags))
		for _, f := range b.flags {
			rows = append(rows, [2]string{b.flagLabel(f), b.describe(f.Desc, f.Default, f.Required)})
		}

		b.section(&out, "Options:", rows)
	}

	if len(b.subcommands) > 0 {
		rows := make([][2]string, 0, len(b.subcommands))
		for _, s := range b.subcommands {
			rows = append(rows, [2]string{b.styles.Flag.Render(s.Name), s.Desc})
		}

		b.section(&out, b.subcommandsOf+":", rows)
	}

	if len(b.examples) > 0 {
		out.WriteString(b.styles.Header.Render("Examples:") + "\n")

		for _, ex := range b.examples {
			out.WriteString("  " + ex.Title + ":\n")
			out.WriteString("    " + ex.Code + "\n")
		}

		out.WriteString("\n")
	}

	return strings.TrimRight(out.String(), "\n") + "\n"
}

// Write renders the help text to w.
func (b *ContentBuilder) Write(w io.Writer) error {
	_, err := io.WriteString(w, b.Render())
	return err
}

func (b *ContentBuilder) describe(desc, def string, required bool) string {
	switch {
	case required:
		desc = joinNonEmpty(desc, b.styles.Muted.Render("(required)"))
	case def != "":
		desc = joinNonEmpty(desc, b.styles.Muted.Render("(default: "+def+")"))
	}

	return desc
}

func (b *ContentBuilder) flagLabel(f Flag) string {
	var names []string

	if f.Short != "" {
		names = append(names, b.styles.Flag.Render("-"+f.Short))
	}

	if f.Long != "" {
		names = append(names, b.styles.Flag.Render("--"+f.Long))
	}

	label := strings.Join(names, ", ")
	if f.Placeholder != "" {
		label += " " + b.styles.Placeholder.Render(f.Placeholder)
	}

	return label
}

// section writes a header and two aligned columns.
func (b *ContentBuilder) section(out *strings.Builder, header string, rows [][2]string) {
	out.WriteString(b.styles.Header.Render(header) + "\n")

	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(row[0]))
	}

	for _, row := range rows {
		line := "  " + row[0]
		if row[1] != "" {
			line += strings.Repeat(" ", width-lipgloss.Width(row[0])+columnGap) + row[1]
		}

		out.WriteString(line + "\n")
	}

	out.WriteString("\n")
}

// unexported constants.
const (
	columnGap = 4
)

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}

	return a + " " + b
}
