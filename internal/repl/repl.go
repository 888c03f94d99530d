// Package repl runs an interactive loop that parses each input line against a
// command namespace and prints the result.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/toejough/rawcmd/internal/core"
	"github.com/toejough/rawcmd/internal/help"
	"github.com/toejough/rawcmd/internal/tokenize"
)

// Session holds what the loop needs to evaluate lines.
type Session struct {
	Namespace *core.Namespace
	Parser    core.Parser
	Logger    *slog.Logger
	Styles    help.Styles
	Prompt    string
}

// New returns a session over ns with default styles and a silent logger.
func New(ns *core.Namespace) *Session {
	return &Session{
		Namespace: ns,
		Logger:    slog.New(slog.DiscardHandler),
		Styles:    help.DefaultStyles(),
	}
}

// Eval tokenizes and parses one line. ok is false for a blank line.
func (s *Session) Eval(line string) (v *core.Value, ok bool, err error) {
	name, rest, ok := tokenize.Split(line)
	if !ok {
		return nil, false, nil
	}

	v, err = s.Parser.Parse(s.Namespace, core.NewRawCommand(name, rest))

	return v, true, err
}

// ParseWords parses already split words, the first being the command name.
func (s *Session) ParseWords(words []string) (*core.Value, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty command line", core.ErrUnknownCommand)
	}

	return s.Parser.Parse(s.Namespace, core.NewRawCommand(words[0], tokenize.FromWords(words[1:])))
}

// Handle evaluates one line and writes its outcome to out. Parse errors are written,
// not returned; the returned error reports a failed write. quit is true after exit.
func (s *Session) Handle(line string, out io.Writer) (quit bool, err error) {
	word, arg, _ := strings.Cut(strings.TrimSpace(line), " ")

	switch word {
	case "":
		return false, nil
	case "exit", "quit":
		s.logger().Debug("Leaving loop")
		return true, nil
	case "help":
		return false, s.help(strings.TrimSpace(arg), out)
	}

	v, _, err := s.Eval(line)
	if err != nil {
		s.logger().Debug("Parse failed", "line", line, "error", err)
		return false, s.WriteError(line, err, out)
	}

	s.logger().Debug("Parsed", "line", line, "command", strings.Join(v.Path(), " "))

	_, err = fmt.Fprintln(out, v.String())

	return false, err
}

// Run reads lines from in until it is exhausted, exit is entered, or ctx is done.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.Prompt != "" {
			if _, err := io.WriteString(out, s.Prompt); err != nil {
				return err
			}
		}

		if !scanner.Scan() {
			return scanner.Err()
		}

		quit, err := s.Handle(scanner.Text(), out)
		if err != nil {
			return err
		}

		if quit {
			return nil
		}
	}
}

// WriteError writes parseErr for line to out, followed by close command names when a
// name failed to resolve.
func (s *Session) WriteError(line string, parseErr error, out io.Writer) error {
	if _, err := fmt.Fprintf(out, "error: %v\n", parseErr); err != nil {
		return err
	}

	var pe *core.ParseError
	if !errors.As(parseErr, &pe) || !errors.Is(pe, core.ErrUnknownCommand) {
		return nil
	}

	suggestions := help.Suggest(pe.Name, failedLevel(s.Namespace, line))
	if len(suggestions) == 0 {
		return nil
	}

	_, err := fmt.Fprintf(out, "did you mean: %s?\n", strings.Join(suggestions, ", "))

	return err
}

func (s *Session) help(pattern string, out io.Writer) error {
	if pattern == "" {
		return help.NamespaceHelp(s.Namespace, "").WithStyles(s.Styles).Write(out)
	}

	if !isGlob(pattern) {
		return s.helpFor(pattern, out)
	}

	matches, err := help.MatchCommands(s.Namespace, pattern)
	if err != nil {
		_, err = fmt.Fprintf(out, "error: %v\n", err)
		return err
	}

	if len(matches) == 0 {
		_, err = fmt.Fprintf(out, "no commands match %q\n", pattern)
		return err
	}

	for i, m := range matches {
		if i > 0 {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return err
			}
		}

		parents := strings.Split(m.Path, "/")
		parents = parents[:len(parents)-1]

		if err := help.CommandHelp(m.Command, parents...).WithStyles(s.Styles).Write(out); err != nil {
			return err
		}
	}

	return nil
}

// helpFor writes help for the single command at path ("remote/list", "remote list").
func (s *Session) helpFor(path string, out io.Writer) error {
	cmd, err := help.Find(s.Namespace, path)
	if err != nil {
		return s.WriteError(strings.ReplaceAll(path, "/", " "), err, out)
	}

	parents := strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == ' ' })

	return help.CommandHelp(cmd, parents[:len(parents)-1]...).WithStyles(s.Styles).Write(out)
}

func (s *Session) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return s.Logger
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// failedLevel follows the words of line through nested namespaces and returns the
// namespace in which a word first failed to resolve.
func failedLevel(ns *core.Namespace, line string) *core.Namespace {
	words, _ := tokenize.Fields(line)

	current := ns
	for _, word := range words {
		cmd, err := current.Resolve(word)
		if err != nil || cmd.Sub == nil {
			return current
		}

		current = cmd.Sub.Namespace
	}

	return current
}
