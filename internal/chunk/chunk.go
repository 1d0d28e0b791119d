// Package chunk splits job posting and resume text into blocks.
//
// Blocks are the unit used both for boilerplate filtering and for locating
// evidence snippets. Splitting is line-preserving: a block never merges two
// lines into one, so project detection downstream still sees the original
// line structure.
//
// Usage Example:
//
//	blocks := chunk.Split(posting, 400)
//	// paragraphs, with oversized ones broken on line boundaries
package chunk

import (
	"log/slog"
	"strings"
)

// DefaultMaxBlockSize is the block size used when callers pass a non-positive limit.
const DefaultMaxBlockSize = 400

// Paragraphs splits text on blank lines. Whitespace-only paragraphs are
// dropped and each paragraph is trimmed of surrounding spaces and tabs.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = current[:0]
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := trimSpacesOnly(line)
		if trimmed == "" {
			flush()
			continue
		}
		current = append(current, trimmed)
	}
	flush()

	return paragraphs
}

// Split breaks text into blocks of at most maxBlockSize bytes where possible.
//
// Paragraphs that fit are kept whole. Larger paragraphs are packed line by
// line; a single line longer than the limit becomes its own block rather than
// being cut mid-sentence. Very short paragraphs (headings, bullets) are merged
// into the following block so that a heading stays with its content.
func Split(text string, maxBlockSize int) []string {
	if maxBlockSize <= 0 {
		maxBlockSize = DefaultMaxBlockSize
	}

	paragraphs := Paragraphs(text)
	slog.Debug("Split called", "textLength", len(text), "paragraphs", len(paragraphs), "maxBlockSize", maxBlockSize)

	var blocks []string
	for _, p := range paragraphs {
		if len(p) <= maxBlockSize {
			blocks = append(blocks, p)
			continue
		}
		blocks = append(blocks, packLines(strings.Split(p, "\n"), maxBlockSize)...)
	}

	blocks = mergeShort(blocks, maxBlockSize, minimumBlockSize(maxBlockSize))
	if blocks == nil {
		return []string{}
	}
	return blocks
}

// packLines joins consecutive lines while they fit within maxBlockSize.
func packLines(lines []string, maxBlockSize int) []string {
	var result []string
	var current strings.Builder

	for _, line := range lines {
		needed := len(line)
		if current.Len() > 0 {
			needed++ // newline separator
		}
		if current.Len() > 0 && current.Len()+needed > maxBlockSize {
			result = append(result, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

// minimumBlockSize is 10% of the limit, never below 3 bytes.
func minimumBlockSize(maxBlockSize int) int {
	minSize := maxBlockSize / 10
	if minSize < 3 {
		minSize = 3
	}
	return minSize
}

// mergeShort folds blocks shorter than minBlockSize into the next block,
// or into the previous one when it is the last.
func mergeShort(blocks []string, maxBlockSize, minBlockSize int) []string {
	if len(blocks) <= 1 {
		return blocks
	}

	var result []string
	for i := 0; i < len(blocks); i++ {
		block := blocks[i]
		if len(block) >= minBlockSize {
			result = append(result, block)
			continue
		}

		if i+1 < len(blocks) {
			if combined := block + "\n" + blocks[i+1]; len(combined) <= maxBlockSize {
				blocks[i+1] = combined
				continue
			}
		}
		if n := len(result); n > 0 {
			if combined := result[n-1] + "\n" + block; len(combined) <= maxBlockSize {
				result[n-1] = combined
				continue
			}
		}
		result = append(result, block)
	}
	return result
}

// trimSpacesOnly removes leading and trailing spaces and tabs but preserves line breaks.
func trimSpacesOnly(s string) string {
	return strings.Trim(s, " \t")
}
