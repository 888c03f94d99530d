// Package schemafile loads command namespaces from declarative HCL files.
//
// A schema file holds an optional title and a list of command blocks:
//
//	title = "Commands"
//
//	command "connect" {
//	  help = "Connect to a host"
//	  arg "verbose" {
//	    kind  = "flag"
//	    short = "v"
//	    long  = "verbose"
//	  }
//	  arg "port" {
//	    kind    = "option"
//	    short   = "p"
//	    long    = "port"
//	    type    = "u16"
//	    default = 8080
//	  }
//	  arg "host" { kind = "positional" }
//	}
//
// A command may hold one subcommand block, which nests further command blocks.
package schemafile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/toejough/rawcmd/internal/core"
)

// Exported variables.
var (
	ErrRead = errors.New("cannot read schema file")
)

// Loader reads schema files.
type Loader struct {
	Logger *slog.Logger
	// MaxDepth bounds subcommand nesting; zero means core.DefaultMaxDepth.
	MaxDepth int
}

// Load reads and validates the schema at path.
func (l Loader) Load(path string) (*core.Namespace, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return l.LoadBytes(src, path)
}

// LoadBytes parses and validates schema source. filename is used in diagnostics.
func (l Loader) LoadBytes(src []byte, filename string) (*core.Namespace, error) {
	logger := l.logger()
	logger.Debug("Loading schema", "file", filename, "bytes", len(src))

	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", core.ErrInvalidSchema, filename, diags)
	}

	var parsed hclSchemaFile

	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", core.ErrInvalidSchema, filename, diags)
	}

	ns, err := buildNamespace(parsed.Title, parsed.Commands, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	if err := ns.Validate(l.maxDepth()); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Debug("Loaded schema", "file", filename, "commands", ns.Names())

	return ns, nil
}

func (l Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return l.Logger
}

func (l Loader) maxDepth() int {
	if l.MaxDepth <= 0 {
		return core.DefaultMaxDepth
	}

	return l.MaxDepth
}

// Load reads and validates the schema at path with a silent Loader.
func Load(path string) (*core.Namespace, error) {
	return Loader{}.Load(path)
}

// LoadBytes parses and validates schema source with a silent Loader.
func LoadBytes(src []byte, filename string) (*core.Namespace, error) {
	return Loader{}.LoadBytes(src, filename)
}

// unexported constants.
const (
	defaultTitle = "Commands"
	defaultType  = "string"
)

type hclArg struct {
	Field       string         `hcl:"field,label"`
	Kind        string         `hcl:"kind"`
	Short       string         `hcl:"short,optional"`
	Long        string         `hcl:"long,optional"`
	Type        string         `hcl:"type,optional"`
	Help        string         `hcl:"help,optional"`
	Placeholder string         `hcl:"placeholder,optional"`
	Optional    bool           `hcl:"optional,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
}

type hclCommand struct {
	Name       string         `hcl:"name,label"`
	Help       string         `hcl:"help,optional"`
	Tuple      bool           `hcl:"tuple,optional"`
	Args       []*hclArg      `hcl:"arg,block"`
	Subcommand *hclSubcommand `hcl:"subcommand,block"`
}

// hclSchemaFile represents the top-level structure of a schema file for decoding.
type hclSchemaFile struct {
	Title    string        `hcl:"title,optional"`
	Commands []*hclCommand `hcl:"command,block"`
}

type hclSubcommand struct {
	// Field is empty when the nested command replaces the parent's payload.
	Field    string        `hcl:"field,optional"`
	Title    string        `hcl:"title,optional"`
	Help     string        `hcl:"help,optional"`
	Optional bool          `hcl:"optional,optional"`
	Record   bool          `hcl:"record,optional"`
	Commands []*hclCommand `hcl:"command,block"`
}

func buildArg(cmd string, a *hclArg) (core.ArgSpec, error) {
	var opts []core.ArgSpecOption

	if a.Help != "" {
		opts = append(opts, core.WithHelp(a.Help))
	}

	if a.Placeholder != "" {
		opts = append(opts, core.WithPlaceholder(a.Placeholder))
	}

	if a.Optional {
		opts = append(opts, core.AsOptional())
	}

	short, err := shortName(cmd, a)
	if err != nil {
		return core.ArgSpec{}, err
	}

	if a.Kind == core.SpecFlag.String() {
		if a.Type != "" || hasDefault(a.Default) {
			return core.ArgSpec{}, fmt.Errorf("%w: command %q: flag %q takes no type or default",
				core.ErrInvalidSchema, cmd, a.Field)
		}

		return core.Flag(a.Field, short, a.Long, opts...), nil
	}

	typeName := a.Type
	if typeName == "" {
		typeName = defaultType
	}

	conv, ok := core.ConverterFor(typeName)
	if !ok {
		return core.ArgSpec{}, fmt.Errorf("%w: command %q: field %q has unknown type %q",
			core.ErrInvalidSchema, cmd, a.Field, typeName)
	}

	def, err := defaultValue(a.Default, conv)
	if err != nil {
		return core.ArgSpec{}, fmt.Errorf("%w: command %q: default of %q: %w", core.ErrInvalidSchema, cmd, a.Field, err)
	}

	if def != nil {
		opts = append(opts, core.WithDefault(def))
	}

	switch a.Kind {
	case core.SpecOption.String():
		return core.Option(a.Field, short, a.Long, conv, opts...), nil
	case core.SpecPositional.String():
		return core.Positional(a.Field, conv, opts...), nil
	default:
		return core.ArgSpec{}, fmt.Errorf("%w: command %q: field %q has unknown kind %q",
			core.ErrInvalidSchema, cmd, a.Field, a.Kind)
	}
}

func buildCommand(c *hclCommand) (*core.Command, error) {
	cmd := &core.Command{Name: c.Name, Help: c.Help, Tuple: c.Tuple}

	for _, a := range c.Args {
		arg, err := buildArg(c.Name, a)
		if err != nil {
			return nil, err
		}

		cmd.Args = append(cmd.Args, arg)
	}

	if c.Subcommand != nil {
		sub := c.Subcommand

		ns, err := buildNamespace(sub.Title, sub.Commands, sub.Record)
		if err != nil {
			return nil, err
		}

		cmd.Sub = &core.SubcommandSpec{
			Field:     sub.Field,
			Namespace: ns,
			Optional:  sub.Optional,
			Help:      sub.Help,
		}
	}

	return cmd, nil
}

func buildNamespace(title string, commands []*hclCommand, record bool) (*core.Namespace, error) {
	if title == "" {
		title = defaultTitle
	}

	ns := core.NewNamespace(title)
	ns.Record = record

	for _, c := range commands {
		cmd, err := buildCommand(c)
		if err != nil {
			return nil, err
		}

		ns.Commands = append(ns.Commands, cmd)
	}

	return ns, nil
}

// defaultValue evaluates a literal default expression and runs its text form through
// conv, so defaults and command-line input share one conversion path. It returns nil
// when no default is set.
func defaultValue(expr hcl.Expression, conv core.Converter) (any, error) {
	if expr == nil {
		return nil, nil //nolint:nilnil // absent default
	}

	// A nil eval context is used because defaults must be literal values.
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	if val.IsNull() {
		return nil, nil //nolint:nilnil // absent default
	}

	text, err := convert.Convert(val, cty.String)
	if err != nil {
		return nil, fmt.Errorf("cannot use %s as text: %w", val.Type().FriendlyName(), err)
	}

	return conv.Convert(text.AsString())
}

func hasDefault(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}

	val, diags := expr.Value(nil)

	return !diags.HasErrors() && !val.IsNull()
}

func shortName(cmd string, a *hclArg) (rune, error) {
	if a.Short == "" {
		return 0, nil
	}

	r, size := utf8.DecodeRuneInString(a.Short)
	if size != len(a.Short) {
		return 0, fmt.Errorf("%w: command %q: short name %q of %q must be one character",
			core.ErrInvalidSchema, cmd, a.Short, a.Field)
	}

	return r, nil
}
