// Package textnorm turns free text into the cleaned token stream used for
// skill matching, similarity and keyword gap analysis.
//
// Normalization lowercases the input, replaces every character that is not an
// ASCII letter or a space with a space, splits on whitespace and drops English
// stop words. Surviving tokens keep their original relative order.
//
// Usage Example:
//
//	cleaned := textnorm.Normalize("Built REST APIs in Go, 2019-2023.")
//	// cleaned == "built rest apis go"
//
// Normalize is a pure function and is safe for concurrent use.
package textnorm

import (
	"log/slog"
	"strings"
)

// Normalize returns the cleaned form of text: lowercase letters only, stop words
// removed, tokens joined by single spaces. Empty input yields empty output.
//
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	tokens := Tokens(text)
	if len(tokens) == 0 {
		return ""
	}
	return strings.Join(tokens, " ")
}

// Tokens returns the normalized token sequence of text (order and duplicates preserved).
func Tokens(text string) []string {
	if text == "" {
		return nil
	}

	// lowercase first so A-Z survives the letter filter as a-z
	folded := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, text)

	fields := strings.Fields(folded)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}

	slog.Debug("Text normalized", "inputLength", len(text), "fields", len(fields), "tokens", len(tokens))
	return tokens
}

// Fields splits already-normalized text into its tokens.
func Fields(cleaned string) []string {
	return strings.Fields(cleaned)
}
