package vocab

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

// skillEntry is one canonical skill with its prepared aliases.
type skillEntry struct {
	name     string
	aliases  []string
	patterns []*regexp.Regexp // only populated in Word mode
}

// Matcher extracts canonical skills and project lines from text.
// It is immutable after construction and safe for concurrent use.
type Matcher struct {
	skills   []skillEntry
	keywords []string
	mode     MatchMode
}

// NewMatcher prepares a matcher over the given vocabularies. Aliases and
// keywords are lowercased; blank ones are dropped. A skill with no aliases is
// matched by its canonical name.
func NewMatcher(skills SkillVocabulary, keywords ProjectKeywords, mode MatchMode) *Matcher {
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]skillEntry, 0, len(names))
	for _, name := range names {
		aliases := cleanList(skills[name])
		if len(aliases) == 0 {
			aliases = cleanList([]string{name})
		}
		if len(aliases) == 0 {
			continue
		}

		entry := skillEntry{name: name, aliases: aliases}
		if mode == Word {
			for _, alias := range aliases {
				entry.patterns = append(entry.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(alias)+`\b`))
			}
		}
		entries = append(entries, entry)
	}

	slog.Debug("Matcher created", "skills", len(entries), "projectKeywords", len(keywords), "mode", mode.String())
	return &Matcher{
		skills:   entries,
		keywords: cleanList(keywords),
		mode:     mode,
	}
}

// Mode returns the alias matching mode.
func (m *Matcher) Mode() MatchMode {
	return m.mode
}

// Aliases returns the aliases of a canonical skill, or nil if unknown.
func (m *Matcher) Aliases(skill string) []string {
	for _, e := range m.skills {
		if e.name == skill {
			return append([]string(nil), e.aliases...)
		}
	}
	return nil
}

// ExtractSkills returns the sorted canonical names for which at least one alias
// occurs in text (case-insensitively).
//
// In Substring mode this is plain containment, so "java" is found inside
// "javascript" and "ml" inside "html". Word mode avoids those false positives.
func (m *Matcher) ExtractSkills(text string) []string {
	if text == "" {
		return []string{}
	}
	lower := strings.ToLower(text)

	found := make([]string, 0)
	for _, e := range m.skills {
		if m.matches(e, lower) {
			found = append(found, e.name)
		}
	}

	slog.Debug("Skills extracted", "textLength", len(text), "found", len(found))
	return found
}

func (m *Matcher) matches(e skillEntry, lower string) bool {
	if m.mode == Word {
		for _, p := range e.patterns {
			if p.MatchString(lower) {
				return true
			}
		}
		return false
	}

	for _, alias := range e.aliases {
		if strings.Contains(lower, alias) {
			return true
		}
	}
	return false
}

// ExtractProjectLines splits text on newlines and returns the sorted distinct
// lines that contain any project keyword. Lines are case-folded and trimmed
// before matching; blank lines never match.
func (m *Matcher) ExtractProjectLines(text string) []string {
	if text == "" || len(m.keywords) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{})
	for _, line := range strings.Split(strings.ToLower(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, kw := range m.keywords {
			if strings.Contains(line, kw) {
				seen[line] = struct{}{}
				break
			}
		}
	}

	lines := make([]string, 0, len(seen))
	for line := range seen {
		lines = append(lines, line)
	}
	sort.Strings(lines)

	slog.Debug("Project lines extracted", "textLength", len(text), "lines", len(lines))
	return lines
}

// cleanList lowercases, trims and de-duplicates a list, dropping blanks.
func cleanList(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
