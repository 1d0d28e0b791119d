// Package evidence points at the job description passages behind each
// missing skill, so a candidate can see where a requirement came from.
package evidence

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/chriscorrea/bm25md"
	"github.com/chriscorrea/resumatch/internal/chunk"
)

// MaxSnippetRunes caps the length of a reported snippet.
const MaxSnippetRunes = 200

// Evidence is the best-ranked job description passage mentioning a skill.
type Evidence struct {
	Skill   string  `json:"skill"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// Locate finds, for each skill in missing, the job description block that
// mentions one of its aliases and ranks highest under BM25md. Skills whose
// aliases never appear in the text are omitted. Results are sorted by skill.
//
// missing maps a canonical skill name to its lowercase aliases.
func Locate(jdText string, missing map[string][]string) []Evidence {
	results := []Evidence{}
	if len(missing) == 0 {
		return results
	}

	blocks := chunk.Split(jdText, chunk.DefaultMaxBlockSize)
	if len(blocks) == 0 {
		return results
	}

	corpus := bm25md.NewCorpus()
	parser := bm25md.NewMarkdownFieldParser()
	lowered := make([]string, len(blocks))
	for i, block := range blocks {
		corpus.AddDocument(bm25md.Document{
			ID:       i,
			Fields:   parser.ParseDocument(block),
			Original: block,
		})
		lowered[i] = strings.ToLower(block)
	}

	skills := make([]string, 0, len(missing))
	for skill := range missing {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	for _, skill := range skills {
		aliases := missing[skill]
		if len(aliases) == 0 {
			aliases = []string{skill}
		}
		query := strings.Join(aliases, " ")

		best, bestScore := -1, 0.0
		for i, text := range lowered {
			if !mentionsAny(text, aliases) {
				continue
			}
			score := corpus.Score(query, i)
			if best < 0 || score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			slog.Debug("No evidence found", "skill", skill)
			continue
		}

		results = append(results, Evidence{
			Skill:   skill,
			Snippet: Snippet(blocks[best], MaxSnippetRunes),
			Score:   bestScore,
		})
	}

	slog.Debug("Evidence located", "skills", len(skills), "found", len(results), "blocks", len(blocks))
	return results
}

// Snippet flattens a block onto one line and truncates it to maxRunes,
// appending an ellipsis when text was cut.
func Snippet(block string, maxRunes int) string {
	flat := strings.Join(strings.Fields(block), " ")
	runes := []rune(flat)
	if maxRunes <= 0 || len(runes) <= maxRunes {
		return flat
	}
	return strings.TrimSpace(string(runes[:maxRunes])) + "…"
}

func mentionsAny(text string, aliases []string) bool {
	for _, alias := range aliases {
		if alias != "" && strings.Contains(text, alias) {
			return true
		}
	}
	return false
}
