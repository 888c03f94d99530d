package core

// Parser interprets command schemas against token sequences.
// The zero value is ready to use and allows DefaultMaxDepth levels of nesting.
type Parser struct {
	// MaxDepth bounds subcommand recursion; values <= 0 mean DefaultMaxDepth.
	MaxDepth int
}

// RawCommand is a dispatch name plus the tokens that follow it.
// Args is consumed by exactly one parse.
type RawCommand struct {
	Name string
	Args Args
}

// NewRawCommand returns a RawCommand; a nil args is treated as empty.
func NewRawCommand(name string, args Args) RawCommand {
	if args == nil {
		args = NewSliceArgs()
	}

	return RawCommand{Name: name, Args: args}
}

// Parse resolves raw.Name in ns and parses raw.Args with the default Parser.
func Parse(ns *Namespace, raw RawCommand) (*Value, error) {
	return Parser{}.Parse(ns, raw)
}

// Parse resolves raw.Name in ns and parses raw.Args against the matching command.
func (p Parser) Parse(ns *Namespace, raw RawCommand) (*Value, error) {
	return p.parse(ns, raw, 1)
}

// ParseCommand parses args against cmd without resolving a name.
func (p Parser) ParseCommand(cmd *Command, args Args) (*Value, error) {
	return p.parseCommand(cmd, args, 1)
}

func (p Parser) maxDepth() int {
	if p.MaxDepth <= 0 {
		return DefaultMaxDepth
	}

	return p.MaxDepth
}

func (p Parser) parse(ns *Namespace, raw RawCommand, depth int) (*Value, error) {
	cmd, err := ns.Resolve(raw.Name)
	if err != nil {
		return nil, err
	}

	return p.parseCommand(cmd, raw.Args, depth)
}

func (p Parser) parseCommand(cmd *Command, args Args, depth int) (*Value, error) {
	if depth > p.maxDepth() {
		return nil, &ParseError{Kind: ErrNestingTooDeep, Name: cmd.Name}
	}

	if args == nil {
		args = NewSliceArgs()
	}

	ctx := &parseContext{
		parser: p,
		cmd:    cmd,
		depth:  depth,
		values: make([]any, len(cmd.Args)),
		set:    make([]bool, len(cmd.Args)),
		expect: stateNormal,
	}

	return ctx.run(args)
}

// unexported constants.
const (
	stateNormal = -1
)

// parseContext is the per-invocation state machine. expect is stateNormal or the index
// of the option whose value is awaited.
type parseContext struct {
	parser     Parser
	cmd        *Command
	depth      int
	values     []any
	set        []bool
	expect     int
	positional int
	sub        *Value
}

// finish applies flag and default fallbacks and builds the result.
func (ctx *parseContext) finish() (*Value, error) {
	cmd := ctx.cmd
	result := &Value{
		Command: cmd.Name,
		Fields:  make([]Field, 0, len(cmd.Args)),
		Tuple:   cmd.Tuple,
	}

	for i := range cmd.Args {
		spec := &cmd.Args[i]
		field := Field{Name: spec.Field}

		switch {
		case ctx.set[i]:
			field.Value, field.Set = ctx.values[i], true
		case spec.Kind == SpecFlag:
			field.Value, field.Set = false, true
		case spec.Optional:
		case spec.HasDefault:
			field.Value, field.Set = spec.Default, true
		default:
			return nil, missingRequired(spec.FullName())
		}

		result.Fields = append(result.Fields, field)
	}

	if cmd.Sub != nil {
		if ctx.sub == nil && !cmd.Sub.Optional {
			return nil, missingRequired(cmd.Sub.FullName())
		}

		result.Sub = ctx.sub
		result.SubField = cmd.Sub.Field
	}

	return result, nil
}

// option handles a long or short option name. Names are matched in every state: a
// flag returns the machine to normal and another option replaces the awaited one.
func (ctx *parseContext) option(idx int, arg Arg) error {
	if idx < 0 {
		return unexpectedOption(arg)
	}

	if ctx.cmd.Args[idx].Kind == SpecFlag {
		ctx.store(idx, true)
		ctx.expect = stateNormal

		return nil
	}

	ctx.expect = idx

	return nil
}

// positionalValue binds text to the next positional slot.
func (ctx *parseContext) positionalValue(text string) error {
	idx := ctx.positionalIndex(ctx.positional)
	ctx.positional++

	if idx < 0 {
		return unexpectedArgument(text)
	}

	v, err := ctx.cmd.Args[idx].Conv.Convert(text)
	if err != nil {
		return err
	}

	ctx.store(idx, v)

	return nil
}

// positionalIndex maps the n-th positional value to its descriptor index, or -1.
func (ctx *parseContext) positionalIndex(n int) int {
	for i := range ctx.cmd.Args {
		if ctx.cmd.Args[i].Kind != SpecPositional {
			continue
		}

		if n == 0 {
			return i
		}

		n--
	}

	return -1
}

// run consumes args until they are exhausted or a subcommand takes them over.
func (ctx *parseContext) run(args Args) (*Value, error) {
	for {
		arg, ok := args.Next()
		if !ok {
			break
		}

		done, err := ctx.step(arg, args)
		if err != nil {
			return nil, err
		}

		if done {
			break
		}
	}

	return ctx.finish()
}

// step applies one token. It reports true once a subcommand consumed the rest.
func (ctx *parseContext) step(arg Arg, rest Args) (bool, error) {
	switch arg.Kind {
	case ArgDoubleDash:
		return false, nil
	case ArgLongOption:
		return false, ctx.option(ctx.cmd.FindLong(arg.Text), arg)
	case ArgShortOption:
		return false, ctx.option(ctx.cmd.FindShort(arg.Short), arg)
	default:
		return ctx.value(arg.Text, rest)
	}
}

func (ctx *parseContext) store(idx int, v any) {
	ctx.values[idx] = v
	ctx.set[idx] = true
}

func (ctx *parseContext) subcommand(name string, rest Args) error {
	sub := ctx.cmd.Sub

	v, err := ctx.parser.parse(sub.Namespace, RawCommand{Name: name, Args: rest}, ctx.depth+1)
	if err != nil {
		return err
	}

	ctx.sub = v

	return nil
}

// value handles a value token according to the current state.
func (ctx *parseContext) value(text string, rest Args) (bool, error) {
	if ctx.expect != stateNormal {
		idx := ctx.expect

		v, err := ctx.cmd.Args[idx].Conv.Convert(text)
		if err != nil {
			return false, err
		}

		ctx.store(idx, v)
		ctx.expect = stateNormal

		return false, nil
	}

	if ctx.cmd.Sub != nil {
		return true, ctx.subcommand(text, rest)
	}

	return false, ctx.positionalValue(text)
}
