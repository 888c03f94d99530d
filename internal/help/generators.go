package help

import (
	"fmt"
	"strings"

	"github.com/toejough/rawcmd/internal/core"
)

// CommandHelp builds help for a single command. prefix holds the dispatch names of
// the enclosing commands, if any.
func CommandHelp(cmd *core.Command, prefix ...string) *ContentBuilder {
	b := New(cmd.Name).
		WithDescription(cmd.Help).
		WithUsage(Usage(cmd, prefix...))

	for i := range cmd.Args {
		arg := &cmd.Args[i]

		switch arg.Kind {
		case core.SpecPositional:
			b.AddPositionals(Positional{
				Name:     arg.Field,
				Desc:     arg.Help,
				Default:  defaultText(arg),
				Required: arg.Required(),
			})
		default:
			b.AddFlags(flagFor(arg))
		}
	}

	if cmd.Sub != nil {
		heading := "Commands"
		if cmd.Sub.Namespace.Title != "" {
			heading = cmd.Sub.Namespace.Title
		}

		b.AddSubcommands(heading, subcommandsOf(cmd.Sub.Namespace)...)
	}

	return b.AddExamples(GenerateExamples(cmd, prefix...)...)
}

// GenerateExamples creates examples from command metadata: the shortest valid call,
// and one showing up to two non-required options.
func GenerateExamples(cmd *core.Command, prefix ...string) []Example {
	base := strings.Join(append(append([]string{}, prefix...), cmd.Name), " ")

	var required []string

	var optional []string

	for i := range cmd.Args {
		arg := &cmd.Args[i]

		switch {
		case arg.Kind == core.SpecPositional && arg.Required():
			required = append(required, exampleValue(arg))
		case arg.Kind == core.SpecOption && arg.Required():
			required = append(required, optionName(arg)+" "+exampleValue(arg))
		case arg.Kind == core.SpecFlag:
			optional = append(optional, optionName(arg))
		case arg.Kind == core.SpecOption:
			optional = append(optional, optionName(arg)+" "+exampleValue(arg))
		}
	}

	if cmd.Sub != nil && !cmd.Sub.Optional && len(cmd.Sub.Namespace.Commands) > 0 {
		required = append(required, cmd.Sub.Namespace.Commands[0].Name)
	}

	basic := strings.Join(append([]string{base}, required...), " ")
	examples := []Example{{Title: "Basic usage", Code: basic}}

	if len(optional) > 0 {
		limit := min(maxExampleOptions, len(optional))
		examples = append(examples, Example{
			Title: "With options",
			Code:  basic + " " + strings.Join(optional[:limit], " "),
		})
	}

	return examples
}

// NamespaceHelp builds help listing the commands of a namespace.
func NamespaceHelp(ns *core.Namespace, description string) *ContentBuilder {
	title := ns.Title
	if title == "" {
		title = "Commands"
	}

	return New(title).
		WithDescription(description).
		AddSubcommands(title, subcommandsOf(ns)...)
}

// Usage renders a one-line synopsis such as "connect [-v] -p <port> <host>".
func Usage(cmd *core.Command, prefix ...string) string {
	parts := append(append([]string{}, prefix...), cmd.Name)

	for i := range cmd.Args {
		arg := &cmd.Args[i]

		var part string

		switch arg.Kind {
		case core.SpecFlag:
			part = "[" + optionName(arg) + "]"
		case core.SpecOption:
			part = optionName(arg) + " " + placeholder(arg)
			if !arg.Required() {
				part = "[" + part + "]"
			}
		case core.SpecPositional:
			part = "<" + arg.Field + ">"
			if !arg.Required() {
				part = "[" + part + "]"
			}
		}

		parts = append(parts, part)
	}

	if cmd.Sub != nil {
		sub := "<" + cmd.Sub.FullName() + ">"
		if cmd.Sub.Optional {
			sub = "[" + sub + "]"
		}

		parts = append(parts, sub)
	}

	return strings.Join(parts, " ")
}

// unexported constants.
const (
	maxExampleOptions = 2
)

func defaultText(arg *core.ArgSpec) string {
	if !arg.HasDefault {
		return ""
	}

	return fmt.Sprintf("%v", arg.Default)
}

func exampleValue(arg *core.ArgSpec) string {
	if arg.HasDefault {
		return defaultText(arg)
	}

	return placeholder(arg)
}

func flagFor(arg *core.ArgSpec) Flag {
	f := Flag{
		Long:     arg.Long,
		Desc:     arg.Help,
		Default:  defaultText(arg),
		Required: arg.Required(),
	}

	if arg.Short != 0 {
		f.Short = string(arg.Short)
	}

	if arg.TakesValue() {
		f.Placeholder = placeholder(arg)
	}

	return f
}

// optionName prefers the long spelling.
func optionName(arg *core.ArgSpec) string {
	if arg.Long != "" {
		return "--" + arg.Long
	}

	return "-" + string(arg.Short)
}

func placeholder(arg *core.ArgSpec) string {
	if arg.Placeholder != "" {
		return arg.Placeholder
	}

	return "<" + arg.Field + ">"
}

func subcommandsOf(ns *core.Namespace) []Subcommand {
	subs := make([]Subcommand, 0, len(ns.Commands))
	for _, cmd := range ns.Commands {
		subs = append(subs, Subcommand{Name: cmd.Name, Desc: cmd.Help})
	}

	return subs
}
