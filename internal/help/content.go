// Package help content structures.
// This file defines the data types for help content elements.

package help

// Positional represents a positional argument in command usage.
type Positional struct {
	Name     string
	Desc     string
	Default  string
	Required bool
}

// Flag represents a flag or an option that takes a value.
type Flag struct {
	Long        string
	Short       string
	Desc        string
	Placeholder string // empty for flags that take no value
	Default     string
	Required    bool
}

// Subcommand represents a subcommand entry in help output.
type Subcommand struct {
	Name string
	Desc string
}

// Example represents a usage example with title and code.
type Example struct {
	Title string
	Code  string
}

// ContentBuilder holds all help content before rendering.
// Fields are unexported; use builder methods to populate.
type ContentBuilder struct {
	title         string
	description   string
	usage         string
	positionals   []Positional
	flags         []Flag
	subcommandsOf string
	subcommands   []Subcommand
	examples      []Example
	styles        Styles
}

// New starts help content for the named command or namespace.
func New(title string) *ContentBuilder {
	return &ContentBuilder{title: title, styles: DefaultStyles()}
}

// AddExamples appends usage examples.
func (b *ContentBuilder) AddExamples(examples ...Example) *ContentBuilder {
	b.examples = append(b.examples, examples...)
	return b
}

// AddFlags appends flags and options.
func (b *ContentBuilder) AddFlags(flags ...Flag) *ContentBuilder {
	b.flags = append(b.flags, flags...)
	return b
}

// AddPositionals appends positional arguments.
func (b *ContentBuilder) AddPositionals(positionals ...Positional) *ContentBuilder {
	b.positionals = append(b.positionals, positionals...)
	return b
}

// AddSubcommands appends subcommand entries listed under heading.
func (b *ContentBuilder) AddSubcommands(heading string, subs ...Subcommand) *ContentBuilder {
	b.subcommandsOf = heading
	b.subcommands = append(b.subcommands, subs...)

	return b
}

// WithDescription sets the description shown first.
func (b *ContentBuilder) WithDescription(desc string) *ContentBuilder {
	b.description = desc
	return b
}

// WithStyles replaces the default styles.
func (b *ContentBuilder) WithStyles(styles Styles) *ContentBuilder {
	b.styles = styles
	return b
}

// WithUsage sets the usage line.
func (b *ContentBuilder) WithUsage(usage string) *ContentBuilder {
	b.usage = usage
	return b
}
