package flags

// Placeholder describes a value format for flag arguments.
type Placeholder struct {
	Name   string // Display name in help, e.g., "<file>"
	Format string // Format description, e.g., "path to an .hcl file"
}

// NeedsExplanation returns true if this placeholder has a non-obvious format.
func (p Placeholder) NeedsExplanation() bool {
	return p.Format != ""
}

// PlaceholdersUsedByFlags returns unique placeholders that need explanation
// from the given flag definitions.
func PlaceholdersUsedByFlags(defs []Def) []Placeholder {
	seen := make(map[string]bool)

	var result []Placeholder

	for _, def := range defs {
		if def.Placeholder == nil || !def.Placeholder.NeedsExplanation() {
			continue
		}

		if seen[def.Placeholder.Name] {
			continue
		}

		seen[def.Placeholder.Name] = true
		result = append(result, *def.Placeholder)
	}

	return result
}

// Exported variables.
//
//nolint:gochecknoglobals // Read-only placeholders shared by the registry.
var (
	PlaceholderFile   = Placeholder{Name: "<file>", Format: "HCL schema path or glob like schemas/**/*.hcl"}
	PlaceholderFormat = Placeholder{Name: "{text|json}"}
	PlaceholderLevel  = Placeholder{Name: "{debug|info|warn|error}"}
	PlaceholderShell  = Placeholder{Name: "{bash|zsh|fish}"}
)
