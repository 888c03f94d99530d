package schemafile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/toejough/rawcmd/internal/core"
)

// Exported variables.
var (
	ErrNoSchemaFiles  = errors.New("no schema files match")
	ErrUnmatchedBrace = errors.New("unmatched brace in pattern")
)

// LoadGlob loads every file matching the patterns ("schemas/**/*.hcl", "{a,b}.hcl")
// and merges their commands into one namespace. Files are read in lexical order; the
// first non-default title wins and duplicate command names are rejected.
func (l Loader) LoadGlob(patterns ...string) (*core.Namespace, error) {
	paths, err := matchFiles(patterns...)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSchemaFiles, strings.Join(patterns, ", "))
	}

	l.logger().Debug("Found schema files", "files", paths)

	merged := core.NewNamespace(defaultTitle)

	for _, path := range paths {
		ns, err := l.Load(path)
		if err != nil {
			return nil, err
		}

		if merged.Title == defaultTitle {
			merged.Title = ns.Title
		}

		merged.Commands = append(merged.Commands, ns.Commands...)
	}

	if err := merged.Validate(l.maxDepth()); err != nil {
		return nil, err
	}

	return merged, nil
}

// IsPattern reports whether path holds glob syntax rather than naming one file.
func IsPattern(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// matchFiles expands patterns using fish-style globs (including ** and {a,b}) and
// returns the sorted, de-duplicated matches.
func matchFiles(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)

	var matches []string

	for _, pattern := range patterns {
		pattern = filepath.Clean(pattern)
		patternFileSys, base := patternFS(pattern)

		expanded, err := expandBraces(pattern)
		if err != nil {
			return nil, err
		}

		for _, exp := range expanded {
			if base != "" {
				exp = filepath.Clean(strings.TrimPrefix(exp, base))
			}

			list, err := doublestar.Glob(patternFileSys, filepath.ToSlash(exp), doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("matching pattern %q: %w", exp, err)
			}

			for _, match := range list {
				path := filepath.FromSlash(match)
				if base != "" {
					path = filepath.Join(base, path)
				}

				if !seen[path] {
					seen[path] = true
					matches = append(matches, path)
				}
			}
		}
	}

	slices.Sort(matches)

	return matches, nil
}

func expandBraces(pattern string) ([]string, error) {
	start := strings.Index(pattern, "{")
	if start == -1 {
		return []string{pattern}, nil
	}

	depth := 0

	for idx := start; idx < len(pattern); idx++ {
		switch pattern[idx] {
		case '{':
			depth++
		case '}':
			depth--
			if depth > 0 {
				continue
			}

			before, after := pattern[:start], pattern[idx+1:]

			var result []string

			for _, part := range splitBraceOptions(pattern[start+1 : idx]) {
				expanded, err := expandBraces(before + part + after)
				if err != nil {
					return nil, err
				}

				result = append(result, expanded...)
			}

			return result, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnmatchedBrace, pattern)
}

func patternFS(pattern string) (fs.FS, string) {
	if filepath.IsAbs(pattern) {
		base := filepath.VolumeName(pattern) + string(filepath.Separator)

		return os.DirFS(base), base
	}

	return os.DirFS("."), ""
}

// splitBraceOptions splits the inside of a brace group on top-level commas.
func splitBraceOptions(content string) []string {
	var parts []string

	depth := 0
	start := 0

	for idx := range len(content) {
		switch content[idx] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, content[start:idx])
				start = idx + 1
			}
		}
	}

	return append(parts, content[start:])
}
