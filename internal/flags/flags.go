// Package flags provides the centralized flag registry for the rawcmd binary.
// Flag declaration, help and completion all derive from this registry.
package flags

import "strings"

// All is the complete registry of rawcmd's global flags.
//
//nolint:gochecknoglobals // Read-only flag registry, initialized once.
var All = []Def{
	{
		Long:        "schema",
		Short:       "s",
		Desc:        "HCL schema file describing the commands",
		Placeholder: &PlaceholderFile,
		TakesValue:  true,
		Env:         "RAWCMD_SCHEMA",
	},
	{
		Long:        "log-level",
		Desc:        "Minimum log level",
		Placeholder: &PlaceholderLevel,
		TakesValue:  true,
		Default:     "warn",
	},
	{
		Long:        "log-format",
		Desc:        "Log output format",
		Placeholder: &PlaceholderFormat,
		TakesValue:  true,
		Default:     "text",
	},
	{Long: "no-color", Desc: "Render help without colors"},

	// Deprecated/removed
	{Long: "plain", Desc: "Deprecated: use --no-color", Hidden: true},
	{Long: "file", Removed: "flag has been removed; use --schema instead"},
}

// Def describes a CLI flag for declaration, help and completion.
type Def struct {
	Long        string       // without "--", e.g. "schema"
	Short       string       // without "-", e.g. "s" (empty if none)
	Desc        string       // help text
	Placeholder *Placeholder // value placeholder with format info (nil if TakesValue is false)
	TakesValue  bool         // consumes next arg as value
	Default     string       // default for flags that take a value
	Env         string       // environment variable consulted when the flag is unset
	Hidden      bool         // excluded from help/completion (deprecated aliases)
	Removed     string       // non-empty = removed flag, value is error message
}

// BooleanFlags returns map of --long and -short flags that don't take values.
func BooleanFlags() map[string]bool {
	m := make(map[string]bool)

	for _, f := range All {
		if !f.TakesValue && f.Removed == "" {
			m["--"+f.Long] = true
			if f.Short != "" {
				m["-"+f.Short] = true
			}
		}
	}

	return m
}

// Find returns the flag def matching arg (e.g. "--schema", "-s"), or nil.
func Find(arg string) *Def {
	if after, ok := strings.CutPrefix(arg, "--"); ok {
		// Strip =value suffix for --flag=value forms.
		name, _, _ := strings.Cut(after, "=")

		for i := range All {
			if All[i].Long == name {
				return &All[i]
			}
		}

		return nil
	}

	if after, ok := strings.CutPrefix(arg, "-"); ok && len(after) == 1 {
		for i := range All {
			if All[i].Short == after {
				return &All[i]
			}
		}
	}

	return nil
}

// Names returns the --long and -short spellings of all visible flags.
func Names() []string {
	var out []string

	for _, f := range VisibleFlags() {
		out = append(out, "--"+f.Long)
		if f.Short != "" {
			out = append(out, "-"+f.Short)
		}
	}

	return out
}

// VisibleFlags returns all non-hidden, non-removed flags.
func VisibleFlags() []Def {
	var out []Def

	for _, f := range All {
		if !f.Hidden && f.Removed == "" {
			out = append(out, f)
		}
	}

	return out
}

// WithValues returns map of --long flags that consume next arg.
func WithValues() map[string]bool {
	m := make(map[string]bool)

	for _, f := range All {
		if f.TakesValue && f.Removed == "" {
			m["--"+f.Long] = true
		}
	}

	return m
}
