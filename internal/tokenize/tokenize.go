// Package tokenize splits an input line into classified argument tokens.
//
// Tokens are produced lazily. Words without quotes or escapes are returned as
// substrings of the input line, so no text is copied for them.
package tokenize

import (
	"strings"
	"unicode/utf8"

	"github.com/toejough/rawcmd/internal/core"
)

// Tokens is a lazy core.Args over one input line.
type Tokens struct {
	line       string
	pos        int
	shorts     string // remaining characters of a "-abc" group
	pending    string // value of a "--name=value" word
	hasPending bool
	valuesOnly bool // set after "--"
	words      []string
	fromWords  bool
}

// New returns a token cursor over line.
func New(line string) *Tokens {
	return &Tokens{line: line}
}

// FromWords returns a token cursor over words that are already split and unquoted,
// such as the output of Fields.
func FromWords(words []string) *Tokens {
	return &Tokens{words: words, fromWords: true}
}

// Split reads the leading dispatch name of line and returns it together with a
// cursor over the remaining tokens. ok is false for a blank line.
func Split(line string) (name string, rest *Tokens, ok bool) {
	t := New(line)

	name, _, ok = t.nextWord()
	if !ok {
		return "", t, false
	}

	return name, t, true
}

// All drains the cursor into a slice.
func (t *Tokens) All() []core.Arg {
	var out []core.Arg

	for {
		arg, ok := t.Next()
		if !ok {
			return out
		}

		out = append(out, arg)
	}
}

// Next returns the next classified token.
func (t *Tokens) Next() (core.Arg, bool) {
	if t.shorts != "" {
		r, size := utf8.DecodeRuneInString(t.shorts)
		t.shorts = t.shorts[size:]

		return core.ShortOption(r), true
	}

	if t.hasPending {
		t.hasPending = false

		return core.ValueArg(t.pending), true
	}

	word, quoted, ok := t.nextWord()
	if !ok {
		return core.Arg{}, false
	}

	if quoted || t.valuesOnly {
		return core.ValueArg(word), true
	}

	return t.classify(word), true
}

func (t *Tokens) classify(word string) core.Arg {
	switch {
	case word == "--":
		t.valuesOnly = true

		return core.DoubleDash()
	case strings.HasPrefix(word, "--"):
		name, value, found := strings.Cut(word[2:], "=")
		if found {
			t.pending, t.hasPending = value, true
		}

		return core.LongOption(name)
	case len(word) > 1 && word[0] == '-' && !isDigit(word[1]):
		r, size := utf8.DecodeRuneInString(word[1:])
		t.shorts = word[1+size:]

		return core.ShortOption(r)
	default:
		return core.ValueArg(word)
	}
}

// nextWord scans one whitespace-separated word, honoring quotes and backslash escapes.
// quoted reports whether any part of the word was quoted.
func (t *Tokens) nextWord() (word string, quoted bool, ok bool) {
	if t.fromWords {
		if len(t.words) == 0 {
			return "", false, false
		}

		word, t.words = t.words[0], t.words[1:]

		return word, false, true
	}

	for t.pos < len(t.line) && isSpace(t.line[t.pos]) {
		t.pos++
	}

	if t.pos >= len(t.line) {
		return "", false, false
	}

	start := t.pos
	plain := true

	for end := start; end < len(t.line); end++ {
		ch := t.line[end]
		if isSpace(ch) {
			break
		}

		if ch == '\\' || ch == '"' || ch == '\'' {
			plain = false

			break
		}
	}

	if plain {
		end := start
		for end < len(t.line) && !isSpace(t.line[end]) {
			end++
		}

		t.pos = end

		return t.line[start:end], false, true
	}

	return t.scanQuoted()
}

func (t *Tokens) scanQuoted() (string, bool, bool) {
	var current strings.Builder

	inSingle := false
	inDouble := false
	quoted := false

	for ; t.pos < len(t.line); t.pos++ {
		ch := t.line[t.pos]

		switch {
		case ch == '\\' && !inSingle && t.pos+1 < len(t.line):
			t.pos++
			current.WriteByte(t.line[t.pos])
		case ch == '\'' && !inDouble:
			inSingle = !inSingle
			quoted = true
		case ch == '"' && !inSingle:
			inDouble = !inDouble
			quoted = true
		case isSpace(ch) && !inSingle && !inDouble:
			return current.String(), quoted, true
		default:
			current.WriteByte(ch)
		}
	}

	return current.String(), quoted, true
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
