package core

// ArgKind classifies a single input token.
type ArgKind int

// ArgKind values.
const (
	ArgValue ArgKind = iota
	ArgLongOption
	ArgShortOption
	ArgDoubleDash
)

// Arg is one classified token. Text borrows from the caller's input; it holds the
// value for ArgValue and the name without dashes for ArgLongOption. Short holds the
// option character for ArgShortOption.
type Arg struct {
	Kind  ArgKind
	Text  string
	Short rune
}

// Args is a lazy, single-pass sequence of tokens.
//
// The parser forwards the same Args to a subcommand, so implementations must keep
// their position across calls.
type Args interface {
	Next() (Arg, bool)
}

// SliceArgs is an Args cursor over a prepared slice of tokens.
type SliceArgs struct {
	args []Arg
	pos  int
}

// Next returns the next token, or false when the slice is exhausted.
func (s *SliceArgs) Next() (Arg, bool) {
	if s.pos >= len(s.args) {
		return Arg{}, false
	}

	arg := s.args[s.pos]
	s.pos++

	return arg, true
}

// String renders the token the way a user would have typed it.
func (a Arg) String() string {
	switch a.Kind {
	case ArgLongOption:
		return "--" + a.Text
	case ArgShortOption:
		return "-" + string(a.Short)
	case ArgDoubleDash:
		return "--"
	default:
		return a.Text
	}
}

// DoubleDash returns the "--" separator token.
func DoubleDash() Arg {
	return Arg{Kind: ArgDoubleDash}
}

// LongOption returns a long option token; name is given without the leading dashes.
func LongOption(name string) Arg {
	return Arg{Kind: ArgLongOption, Text: name}
}

// NewSliceArgs returns a cursor over args.
func NewSliceArgs(args ...Arg) *SliceArgs {
	return &SliceArgs{args: args}
}

// ShortOption returns a short option token.
func ShortOption(r rune) Arg {
	return Arg{Kind: ArgShortOption, Short: r}
}

// ValueArg returns a value token.
func ValueArg(text string) Arg {
	return Arg{Kind: ArgValue, Text: text}
}
