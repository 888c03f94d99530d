package rawcmd

import (
	"encoding"

	"github.com/toejough/rawcmd/internal/complete"
	"github.com/toejough/rawcmd/internal/core"
	"github.com/toejough/rawcmd/internal/help"
	"github.com/toejough/rawcmd/internal/schemafile"
	"github.com/toejough/rawcmd/internal/tokenize"
)

// --- Re-exported types from core ---

// Arg is one classified input token.
type Arg = core.Arg

// ArgKind classifies a single input token.
type ArgKind = core.ArgKind

// Args is a lazy, single-pass sequence of tokens.
type Args = core.Args

// ArgSpec describes one field of a command.
type ArgSpec = core.ArgSpec

// ArgSpecKind identifies flags, options and positionals.
type ArgSpecKind = core.ArgSpecKind

// ArgSpecOption customizes an ArgSpec.
type ArgSpecOption = core.ArgSpecOption

// Character is the value produced by the Char converter.
type Character = core.Character

// Command is the static schema of one command variant.
type Command = core.Command

// Converter turns the text of one token into a typed value.
type Converter = core.Converter

// ConverterFunc adapts a function to Converter.
type ConverterFunc = core.ConverterFunc

// Field is one named slot of a parsed Value.
type Field = core.Field

// Namespace is the set of commands searched by one dispatch level.
type Namespace = core.Namespace

// ParseError reports a resolver or parser failure.
type ParseError = core.ParseError

// Parser parses with a configurable nesting bound.
type Parser = core.Parser

// RawCommand is a dispatch name plus its remaining tokens.
type RawCommand = core.RawCommand

// SubcommandSpec describes the nested command of a Command.
type SubcommandSpec = core.SubcommandSpec

// Value is a parsed command.
type Value = core.Value

// ValueError reports text a converter rejected.
type ValueError = core.ValueError

// Re-export ArgKind and ArgSpecKind constants
const (
	ArgValue       = core.ArgValue
	ArgLongOption  = core.ArgLongOption
	ArgShortOption = core.ArgShortOption
	ArgDoubleDash  = core.ArgDoubleDash

	SpecFlag       = core.SpecFlag
	SpecOption     = core.SpecOption
	SpecPositional = core.SpecPositional

	DefaultMaxDepth = core.DefaultMaxDepth
)

// Re-exported errors.
//
//nolint:gochecknoglobals // aliases of the core sentinels
var (
	ErrBindTarget              = core.ErrBindTarget
	ErrBindType                = core.ErrBindType
	ErrInvalidSchema           = core.ErrInvalidSchema
	ErrInvalidValue            = core.ErrInvalidValue
	ErrMissingRequiredArgument = core.ErrMissingRequiredArgument
	ErrNestingTooDeep          = core.ErrNestingTooDeep
	ErrUnexpectedArgument      = core.ErrUnexpectedArgument
	ErrUnexpectedLongOption    = core.ErrUnexpectedLongOption
	ErrUnexpectedShortOption   = core.ErrUnexpectedShortOption
	ErrUnknownCommand          = core.ErrUnknownCommand
)

// Re-exported constructors and converters.
//
//nolint:gochecknoglobals // function aliases
var (
	AsOptional      = core.AsOptional
	DoubleDash      = core.DoubleDash
	Flag            = core.Flag
	LongOption      = core.LongOption
	NewNamespace    = core.NewNamespace
	NewRawCommand   = core.NewRawCommand
	NewRecord       = core.NewRecord
	NewSliceArgs    = core.NewSliceArgs
	Option          = core.Option
	Positional      = core.Positional
	ShortOption     = core.ShortOption
	ValueArg        = core.ValueArg
	WithDefault     = core.WithDefault
	WithHelp        = core.WithHelp
	WithPlaceholder = core.WithPlaceholder

	Bool         = core.Bool
	Char         = core.Char
	ConverterFor = core.ConverterFor
	Duration     = core.Duration
	Float        = core.Float
	Int          = core.Int
	String       = core.String
	Uint         = core.Uint

	Bind = core.Bind
)

// --- Public API ---

// Text converts through the UnmarshalText method of *T and yields a T.
func Text[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}]() Converter {
	return core.Text[T, PT]()
}

// Complete returns completion candidates for the last word of a partial line.
func Complete(ns *Namespace, line string) []string {
	return complete.Complete(ns, line)
}

// LoadSchema reads and validates an HCL schema file.
func LoadSchema(path string) (*Namespace, error) {
	return schemafile.Load(path)
}

// Parse tokenizes line and parses it against ns. Words are split on whitespace with
// shell-style quoting; "--" makes every later word a value.
func Parse(ns *Namespace, line string) (*Value, error) {
	name, rest, _ := tokenize.Split(line)

	return core.Parse(ns, core.NewRawCommand(name, rest))
}

// ParseArgs parses already split words, such as os.Args[1:], against ns.
func ParseArgs(ns *Namespace, args []string) (*Value, error) {
	if len(args) == 0 {
		return core.Parse(ns, core.NewRawCommand("", nil))
	}

	return core.Parse(ns, core.NewRawCommand(args[0], tokenize.FromWords(args[1:])))
}

// Suggest returns up to three command names of ns close to name.
func Suggest(name string, ns *Namespace) []string {
	return help.Suggest(name, ns)
}

// Usage renders help text for cmd without terminal styling.
func Usage(cmd *Command, prefix ...string) string {
	return help.CommandHelp(cmd, prefix...).WithStyles(help.PlainStyles()).Render()
}
