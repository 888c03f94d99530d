// Package complete produces shell completion candidates by replaying a command schema
// over a partial command line.
package complete

import (
	"slices"
	"strings"

	"github.com/toejough/rawcmd/internal/core"
	"github.com/toejough/rawcmd/internal/flags"
	"github.com/toejough/rawcmd/internal/tokenize"
)

// Complete returns the candidates for the last word of line, which starts with a
// command name of ns.
func Complete(ns *core.Namespace, line string) []string {
	words, atNewWord := tokenize.Fields(line)

	return Words(ns, words, atNewWord)
}

// Program completes a full command line of the rawcmd binary: the program word and
// global flags are skipped, subcommands lists the binary's own commands, and words after
// the parse subcommand complete against ns.
func Program(ns *core.Namespace, line string, subcommands []string) []string {
	words, atNewWord := tokenize.Fields(line)
	if len(words) == 0 || (len(words) == 1 && !atNewWord) {
		return nil
	}

	words = words[1:]

	done, prefix := splitPrefix(words, atNewWord)

	done, expecting := skipGlobalFlags(done)
	if expecting {
		return nil
	}

	if len(done) == 0 {
		if strings.HasPrefix(prefix, "-") {
			return withPrefix(flags.Names(), prefix)
		}

		return withPrefix(subcommands, prefix)
	}

	if done[0] != parseCommand {
		return nil
	}

	rest := slices.Clone(done[1:])
	if !atNewWord {
		rest = append(rest, prefix)
	}

	return Words(ns, rest, atNewWord)
}

// Words returns the candidates for the last of words. When atNewWord is true the last
// word is complete and candidates are for a new, empty word.
func Words(ns *core.Namespace, words []string, atNewWord bool) []string {
	done, prefix := splitPrefix(words, atNewWord)
	state := replay(ns, done)

	switch {
	case state.failed:
		return nil
	case state.cmd == nil:
		return withPrefix(state.ns.Names(), prefix)
	case state.expecting:
		return nil
	case state.valuesOnly:
		return nil
	case strings.HasPrefix(prefix, "-"):
		return withPrefix(optionNames(state.cmd), prefix)
	}

	var out []string
	if state.cmd.Sub != nil {
		out = withPrefix(state.cmd.Sub.Namespace.Names(), prefix)
	}

	if prefix == "" {
		out = append(out, optionNames(state.cmd)...)
	}

	return out
}

// unexported constants.
const (
	parseCommand = "parse"
)

// position is where a replay of completed words ended up.
type position struct {
	ns         *core.Namespace
	cmd        *core.Command // nil while a command name is expected from ns
	expecting  bool          // an option is waiting for its value
	valuesOnly bool
	failed     bool
}

func (p *position) enter(name string) {
	cmd, err := p.ns.Resolve(name)
	if err != nil {
		p.failed = true
		return
	}

	p.cmd = cmd
	p.expecting = false
}

func (p *position) step(arg core.Arg) {
	if p.cmd == nil {
		if arg.Kind != core.ArgValue {
			p.failed = true
			return
		}

		p.enter(arg.Text)

		return
	}

	switch arg.Kind {
	case core.ArgLongOption:
		p.expecting = takesValue(p.cmd, p.cmd.FindLong(arg.Text))
	case core.ArgShortOption:
		p.expecting = takesValue(p.cmd, p.cmd.FindShort(arg.Short))
	case core.ArgDoubleDash:
		p.valuesOnly = true
	case core.ArgValue:
		switch {
		case p.expecting:
			p.expecting = false
		case p.cmd.Sub != nil:
			p.ns = p.cmd.Sub.Namespace
			p.cmd = nil
			p.valuesOnly = false
			p.enter(arg.Text)
		}
	}
}

func optionNames(cmd *core.Command) []string {
	var out []string

	for i := range cmd.Args {
		arg := &cmd.Args[i]
		if arg.Kind == core.SpecPositional {
			continue
		}

		if arg.Long != "" {
			out = append(out, "--"+arg.Long)
		}

		if arg.Short != 0 {
			out = append(out, "-"+string(arg.Short))
		}
	}

	return out
}

func replay(ns *core.Namespace, words []string) position {
	state := position{ns: ns}
	tokens := tokenize.FromWords(words)

	for !state.failed {
		arg, ok := tokens.Next()
		if !ok {
			break
		}

		state.step(arg)
	}

	return state
}

// skipGlobalFlags drops the binary's own flags and their values from the front of args.
// expecting reports a trailing flag still waiting for its value.
func skipGlobalFlags(args []string) (rest []string, expecting bool) {
	booleans := flags.BooleanFlags()
	withValues := flags.WithValues()

	for len(args) > 0 {
		name, _, inline := strings.Cut(args[0], "=")
		if booleans[name] {
			args = args[1:]
			continue
		}

		def := flags.Find(name)
		if def == nil || !withValues["--"+def.Long] {
			return args, false
		}

		args = args[1:]
		if inline {
			continue
		}

		if len(args) == 0 {
			return nil, true
		}

		args = args[1:]
	}

	return args, false
}

func splitPrefix(words []string, atNewWord bool) (done []string, prefix string) {
	if atNewWord || len(words) == 0 {
		return words, ""
	}

	return words[:len(words)-1], words[len(words)-1]
}

func takesValue(cmd *core.Command, idx int) bool {
	return idx >= 0 && cmd.Args[idx].TakesValue()
}

func withPrefix(candidates []string, prefix string) []string {
	var out []string

	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}

	return out
}
