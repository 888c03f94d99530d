package core

import (
	"errors"
	"fmt"
)

// Exported variables.
var (
	ErrInvalidSchema           = errors.New("invalid schema")
	ErrInvalidValue            = errors.New("invalid value")
	ErrMissingRequiredArgument = errors.New("missing required argument")
	ErrNestingTooDeep          = errors.New("subcommand nesting too deep")
	ErrUnexpectedArgument      = errors.New("unexpected argument")
	ErrUnexpectedLongOption    = errors.New("unexpected long option")
	ErrUnexpectedShortOption   = errors.New("unexpected short option")
	ErrUnknownCommand          = errors.New("unknown command")
)

// ParseError reports a failure detected by the resolver or the parsing engine.
// Kind is one of the Err* sentinels; errors.Is matches against it.
type ParseError struct {
	Kind error
	// Name is the command name for ErrUnknownCommand, the external argument name for
	// ErrMissingRequiredArgument and the option name for the unexpected option kinds.
	Name string
	// Value is the offending value for ErrUnexpectedArgument.
	Value string
}

func (e *ParseError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrUnexpectedArgument):
		return fmt.Sprintf("%v: %s", e.Kind, e.Value)
	case errors.Is(e.Kind, ErrUnexpectedLongOption):
		return fmt.Sprintf("%v: --%s", e.Kind, e.Name)
	case errors.Is(e.Kind, ErrUnexpectedShortOption):
		return fmt.Sprintf("%v: -%s", e.Kind, e.Name)
	default:
		return fmt.Sprintf("%v: %s", e.Kind, e.Name)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// ValueError is returned by the built-in converters when text cannot be converted.
type ValueError struct {
	Value    string
	Expected string
	Err      error
}

func (e *ValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid value %q: expected %s: %v", e.Value, e.Expected, e.Err)
	}

	return fmt.Sprintf("invalid value %q: expected %s", e.Value, e.Expected)
}

// Is reports ErrInvalidValue so callers can match any conversion failure.
func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

func missingRequired(name string) error {
	return &ParseError{Kind: ErrMissingRequiredArgument, Name: name}
}

func unexpectedArgument(value string) error {
	return &ParseError{Kind: ErrUnexpectedArgument, Value: value}
}

func unexpectedOption(arg Arg) error {
	if arg.Kind == ArgShortOption {
		return &ParseError{Kind: ErrUnexpectedShortOption, Name: string(arg.Short)}
	}

	return &ParseError{Kind: ErrUnexpectedLongOption, Name: arg.Text}
}

func unknownCommand(name string) error {
	return &ParseError{Kind: ErrUnknownCommand, Name: name}
}
