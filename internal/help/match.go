package help

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/toejough/rawcmd/internal/core"
)

// Exported variables.
var (
	ErrBadPattern = errors.New("invalid command pattern")
)

// CommandPath is a command together with its slash-separated dispatch path.
type CommandPath struct {
	Path    string // e.g. "remote/list"
	Command *core.Command
}

// Find resolves a slash- or space-separated path ("remote/list", "remote list")
// to a command.
func Find(ns *core.Namespace, path string) (*core.Command, error) {
	names := strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == ' ' })
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrBadPattern)
	}

	current := ns

	var cmd *core.Command

	for i, name := range names {
		if current == nil {
			return nil, fmt.Errorf("%w: %q has no subcommands", core.ErrUnknownCommand, strings.Join(names[:i], "/"))
		}

		found, err := current.Resolve(name)
		if err != nil {
			return nil, err
		}

		cmd = found
		current = nil

		if found.Sub != nil {
			current = found.Sub.Namespace
		}
	}

	return cmd, nil
}

// MatchCommands walks every command reachable from ns and returns those whose
// slash-separated path matches the glob pattern ("remote/*", "**/list", "{get,set}").
// Paths are returned in declaration order, parents before children.
func MatchCommands(ns *core.Namespace, pattern string) ([]CommandPath, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}

	var out []CommandPath

	walk(ns, "", map[*core.Namespace]bool{}, func(cp CommandPath) {
		if doublestar.MatchUnvalidated(pattern, cp.Path) {
			out = append(out, cp)
		}
	})

	return out, nil
}

// walk visits every command below ns. A namespace already on the current path is not
// entered again.
func walk(ns *core.Namespace, prefix string, active map[*core.Namespace]bool, fn func(CommandPath)) {
	if ns == nil || active[ns] {
		return
	}

	active[ns] = true
	defer delete(active, ns)

	for _, cmd := range ns.Commands {
		path := cmd.Name
		if prefix != "" {
			path = prefix + "/" + cmd.Name
		}

		fn(CommandPath{Path: path, Command: cmd})

		if cmd.Sub != nil {
			walk(cmd.Sub.Namespace, path, active, fn)
		}
	}
}
