// Package vocab holds the controlled vocabularies consulted by the matcher: the
// skill table (canonical skill -> surface-form aliases) and the project
// indicator keywords.
//
// Vocabularies are data. They are loaded once at startup, from the built-in
// defaults or from a YAML file, and never mutated afterwards, so a Matcher can
// be shared freely between goroutines.
//
// Usage Example:
//
//	m := vocab.NewMatcher(vocab.DefaultSkills(), vocab.DefaultProjectKeywords(), vocab.Substring)
//	skills := m.ExtractSkills(textnorm.Normalize(resume))
//	lines := m.ExtractProjectLines(resume)
package vocab

import (
	"fmt"
	"strings"
)

// SkillVocabulary maps a canonical skill name to the aliases that count as evidence of it.
type SkillVocabulary map[string][]string

// ProjectKeywords flags a line as project related when any keyword occurs in it.
type ProjectKeywords []string

// MatchMode selects how skill aliases are located in text.
type MatchMode int

const (
	// Substring matches an alias anywhere, including inside longer words ("java" in "javascript").
	Substring MatchMode = iota
	// Word matches an alias only on word boundaries.
	Word
)

// String returns the configuration name of the mode.
func (m MatchMode) String() string {
	switch m {
	case Substring:
		return "substring"
	case Word:
		return "word"
	default:
		return "unknown"
	}
}

// ParseMatchMode converts a configuration name into a MatchMode. Empty means Substring.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring":
		return Substring, nil
	case "word":
		return Word, nil
	default:
		return Substring, fmt.Errorf("unknown match mode %q (want substring or word)", s)
	}
}

// DefaultSkills returns a fresh copy of the built-in skill table.
func DefaultSkills() SkillVocabulary {
	return SkillVocabulary{
		"python":           {"python"},
		"java":             {"java"},
		"sql":              {"sql"},
		"machine learning": {"machine learning", "ml"},
		"deep learning":    {"deep learning", "dl"},
		"nlp":              {"nlp"},
		"data science":     {"data science"},
		"cloud":            {"aws", "azure", "cloud"},
		"react":            {"react"},
		"node":             {"node", "nodejs"},
		"flask":            {"flask"},
		"django":           {"django"},
		"git":              {"git"},
		"docker":           {"docker"},
	}
}

// DefaultProjectKeywords returns a fresh copy of the built-in project keywords.
func DefaultProjectKeywords() ProjectKeywords {
	return ProjectKeywords{"project", "capstone", "internship", "research"}
}
