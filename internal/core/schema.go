package core

import (
	"fmt"
	"strings"
)

// ArgSpecKind identifies the kind of an argument descriptor.
type ArgSpecKind int

// ArgSpecKind values.
const (
	SpecFlag ArgSpecKind = iota
	SpecOption
	SpecPositional
)

func (k ArgSpecKind) String() string {
	switch k {
	case SpecFlag:
		return "flag"
	case SpecOption:
		return "option"
	case SpecPositional:
		return "positional"
	default:
		return fmt.Sprintf("ArgSpecKind(%d)", int(k))
	}
}

// ArgSpec describes one field of a command.
type ArgSpec struct {
	Field       string
	Kind        ArgSpecKind
	Short       rune   // 0 when there is no short name
	Long        string // without "--"; empty when there is no long name
	Help        string
	Placeholder string
	Conv        Converter
	Default     any
	HasDefault  bool
	// Optional fields are left absent (nil) instead of failing when no value is given.
	Optional bool
}

// ArgSpecOption customizes an ArgSpec built by Flag, Option or Positional.
type ArgSpecOption func(*ArgSpec)

// Command is the static schema of one command variant.
type Command struct {
	Name string
	Help string
	Args []ArgSpec
	Sub  *SubcommandSpec
	// Tuple marks positional-field construction: the result is rendered and bound by
	// declaration order instead of by field name.
	Tuple bool
}

// SubcommandSpec describes the nested command of a Command.
type SubcommandSpec struct {
	// Field names the field receiving the nested value. Empty means the nested value
	// replaces the whole payload of the command.
	Field     string
	Namespace *Namespace
	Optional  bool
	Help      string
}

// FullName returns the external name used in error messages: "--long", "-s", or the
// field name for positionals.
func (a *ArgSpec) FullName() string {
	if a.Kind == SpecPositional {
		return a.Field
	}

	if a.Long != "" {
		return "--" + a.Long
	}

	return "-" + string(a.Short)
}

// Required reports whether parsing fails when the argument is absent.
func (a *ArgSpec) Required() bool {
	return a.Kind != SpecFlag && !a.HasDefault && !a.Optional
}

// TakesValue reports whether the argument consumes a value token.
func (a *ArgSpec) TakesValue() bool {
	return a.Kind != SpecFlag
}

// FindLong returns the index of the flag or option named --name, or -1.
func (c *Command) FindLong(name string) int {
	for i := range c.Args {
		if c.Args[i].Kind != SpecPositional && c.Args[i].Long != "" && c.Args[i].Long == name {
			return i
		}
	}

	return -1
}

// FindShort returns the index of the flag or option named -r, or -1.
func (c *Command) FindShort(r rune) int {
	for i := range c.Args {
		if c.Args[i].Kind != SpecPositional && c.Args[i].Short != 0 && c.Args[i].Short == r {
			return i
		}
	}

	return -1
}

// Validate checks the invariants of a single command schema.
func (c *Command) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: command has no name", ErrInvalidSchema)
	}

	fields := make(map[string]bool)
	longs := make(map[string]bool)
	shorts := make(map[rune]bool)

	for _, arg := range c.Args {
		err := c.validateArg(arg, fields, longs, shorts)
		if err != nil {
			return err
		}
	}

	if c.Sub == nil {
		return nil
	}

	if c.Sub.Namespace == nil {
		return fmt.Errorf("%w: command %q: subcommand has no namespace", ErrInvalidSchema, c.Name)
	}

	if !c.Sub.Replaces() && fields[c.Sub.Field] {
		return fmt.Errorf("%w: command %q: duplicate field %q", ErrInvalidSchema, c.Name, c.Sub.Field)
	}

	return nil
}

func (c *Command) validateArg(
	arg ArgSpec,
	fields map[string]bool,
	longs map[string]bool,
	shorts map[rune]bool,
) error {
	if arg.Field == "" {
		return fmt.Errorf("%w: command %q: argument has no field name", ErrInvalidSchema, c.Name)
	}

	if fields[arg.Field] {
		return fmt.Errorf("%w: command %q: duplicate field %q", ErrInvalidSchema, c.Name, arg.Field)
	}

	fields[arg.Field] = true

	if arg.Kind == SpecPositional {
		if arg.Conv == nil {
			return fmt.Errorf("%w: command %q: positional %q has no converter",
				ErrInvalidSchema, c.Name, arg.Field)
		}

		return nil
	}

	if arg.Short == 0 && arg.Long == "" {
		return fmt.Errorf("%w: command %q: %s %q needs a short or long name",
			ErrInvalidSchema, c.Name, arg.Kind, arg.Field)
	}

	if arg.Kind == SpecOption && arg.Conv == nil {
		return fmt.Errorf("%w: command %q: option %q has no converter", ErrInvalidSchema, c.Name, arg.Field)
	}

	if strings.HasPrefix(arg.Long, "-") {
		return fmt.Errorf("%w: command %q: long name %q must not start with '-'",
			ErrInvalidSchema, c.Name, arg.Long)
	}

	if arg.Long != "" {
		if longs[arg.Long] {
			return fmt.Errorf("%w: command %q: duplicate option --%s", ErrInvalidSchema, c.Name, arg.Long)
		}

		longs[arg.Long] = true
	}

	if arg.Short != 0 {
		if shorts[arg.Short] {
			return fmt.Errorf("%w: command %q: duplicate option -%c", ErrInvalidSchema, c.Name, arg.Short)
		}

		shorts[arg.Short] = true
	}

	return nil
}

// FullName returns the external name of the subcommand field.
func (s *SubcommandSpec) FullName() string {
	if s.Replaces() {
		return "command"
	}

	return s.Field
}

// Replaces reports whether the nested value replaces the command's payload.
func (s *SubcommandSpec) Replaces() bool {
	return s.Field == ""
}

// AsOptional marks the argument as optional: absent values are left nil.
func AsOptional() ArgSpecOption {
	return func(a *ArgSpec) {
		a.Optional = true
	}
}

// Flag describes a boolean switch. Pass 0 or "" to omit the short or long name.
func Flag(field string, short rune, long string, opts ...ArgSpecOption) ArgSpec {
	return newArgSpec(ArgSpec{Field: field, Kind: SpecFlag, Short: short, Long: long}, opts)
}

// Option describes a named argument followed by one value.
func Option(field string, short rune, long string, conv Converter, opts ...ArgSpecOption) ArgSpec {
	return newArgSpec(ArgSpec{Field: field, Kind: SpecOption, Short: short, Long: long, Conv: conv}, opts)
}

// Positional describes an argument bound by its position.
func Positional(field string, conv Converter, opts ...ArgSpecOption) ArgSpec {
	return newArgSpec(ArgSpec{Field: field, Kind: SpecPositional, Conv: conv}, opts)
}

// WithDefault sets the value used when the argument is absent.
func WithDefault(v any) ArgSpecOption {
	return func(a *ArgSpec) {
		a.Default = v
		a.HasDefault = true
	}
}

// WithHelp sets the help text.
func WithHelp(help string) ArgSpecOption {
	return func(a *ArgSpec) {
		a.Help = help
	}
}

// WithPlaceholder sets the value placeholder shown in help, e.g. "<port>".
func WithPlaceholder(placeholder string) ArgSpecOption {
	return func(a *ArgSpec) {
		a.Placeholder = placeholder
	}
}

func newArgSpec(spec ArgSpec, opts []ArgSpecOption) ArgSpec {
	for _, opt := range opts {
		opt(&spec)
	}

	return spec
}
