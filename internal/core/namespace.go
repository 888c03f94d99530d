package core

import "fmt"

// DefaultMaxDepth bounds subcommand nesting for Validate and the default Parser.
const DefaultMaxDepth = 8

// Namespace is the set of commands searched by one dispatch level.
type Namespace struct {
	Title    string
	Commands []*Command
	// Record marks a namespace built from a single command record rather than a
	// choice of variants. Resolution still matches the command name.
	Record bool
}

// NewNamespace returns a namespace holding the given command variants.
func NewNamespace(title string, commands ...*Command) *Namespace {
	return &Namespace{Title: title, Commands: commands}
}

// NewRecord returns a single-command namespace.
func NewRecord(cmd *Command) *Namespace {
	return &Namespace{Title: cmd.Name, Commands: []*Command{cmd}, Record: true}
}

// Names returns the dispatch names in declaration order.
func (n *Namespace) Names() []string {
	names := make([]string, 0, len(n.Commands))
	for _, cmd := range n.Commands {
		names = append(names, cmd.Name)
	}

	return names
}

// Resolve returns the command whose name equals name exactly.
func (n *Namespace) Resolve(name string) (*Command, error) {
	for _, cmd := range n.Commands {
		if cmd.Name == name {
			return cmd, nil
		}
	}

	return nil, unknownCommand(name)
}

// Validate checks every command reachable from n, rejecting duplicate names within a
// level, reference cycles, and trees nested deeper than maxDepth levels.
func (n *Namespace) Validate(maxDepth int) error {
	return n.validate(maxDepth, 1, map[*Namespace]bool{})
}

func (n *Namespace) validate(maxDepth, depth int, active map[*Namespace]bool) error {
	if depth > maxDepth {
		return fmt.Errorf("%w: %w: namespace %q at depth %d", ErrInvalidSchema, ErrNestingTooDeep, n.Title, depth)
	}

	if active[n] {
		return fmt.Errorf("%w: namespace %q refers to itself", ErrInvalidSchema, n.Title)
	}

	if n.Record && len(n.Commands) != 1 {
		return fmt.Errorf("%w: record namespace %q must hold exactly one command", ErrInvalidSchema, n.Title)
	}

	active[n] = true
	defer delete(active, n)

	seen := make(map[string]bool, len(n.Commands))

	for _, cmd := range n.Commands {
		if cmd == nil {
			return fmt.Errorf("%w: namespace %q holds a nil command", ErrInvalidSchema, n.Title)
		}

		if seen[cmd.Name] {
			return fmt.Errorf("%w: namespace %q: duplicate command %q", ErrInvalidSchema, n.Title, cmd.Name)
		}

		seen[cmd.Name] = true

		err := cmd.Validate()
		if err != nil {
			return err
		}

		if cmd.Sub != nil {
			err = cmd.Sub.Namespace.validate(maxDepth, depth+1, active)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
