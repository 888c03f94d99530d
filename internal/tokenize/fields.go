package tokenize

import "strings"

// Fields splits a partial command line into words for completion. atNewWord reports
// whether the line ends outside any word, so the next completion starts a new word.
// A quoted empty word ("") is kept, as Split yields it as an empty value.
func Fields(line string) (words []string, atNewWord bool) {
	var current strings.Builder

	inSingle := false
	inDouble := false
	escaped := false
	inWord := false

	for i := range len(line) {
		ch := line[i]
		if escaped {
			current.WriteByte(ch)

			escaped = false
			inWord = true
			atNewWord = false

			continue
		}

		switch {
		case ch == '\\' && !inSingle:
			escaped = true
			atNewWord = false
		case ch == '\'' && !inDouble:
			inSingle = !inSingle
			atNewWord = false
		case ch == '"' && !inSingle:
			inDouble = !inDouble
			atNewWord = false
		case isSpace(ch) && !inSingle && !inDouble:
			if inWord {
				words = append(words, current.String())
				current.Reset()
			}

			inWord = false
			atNewWord = true

			continue
		default:
			current.WriteByte(ch)

			atNewWord = false
		}

		inWord = true
	}

	if escaped {
		current.WriteByte('\\')
	}

	if inWord {
		words = append(words, current.String())
	}

	if inSingle || inDouble {
		atNewWord = false
	}

	return words, atNewWord
}
