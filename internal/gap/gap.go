// Package gap compares what a job description asks for with what a resume
// shows: set differences over extracted skills and project lines, and a
// frequency ranking of job-description words the resume never uses.
package gap

import (
	"log/slog"
	"sort"

	"github.com/chriscorrea/resumatch/internal/textnorm"
)

// DefaultTopK is the number of missing keywords reported when no limit is given.
const DefaultTopK = 5

// Diff splits the job description's items into those the resume has (matched,
// the intersection) and those it lacks (missing, jd minus resume). Both results
// are sorted and duplicate free; together they partition the distinct jd items.
func Diff(resume, jd []string) (matched, missing []string) {
	have := make(map[string]struct{}, len(resume))
	for _, item := range resume {
		have[item] = struct{}{}
	}

	matched = make([]string, 0)
	missing = make([]string, 0)
	seen := make(map[string]struct{}, len(jd))
	for _, item := range jd {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}

		if _, ok := have[item]; ok {
			matched = append(matched, item)
		} else {
			missing = append(missing, item)
		}
	}

	sort.Strings(matched)
	sort.Strings(missing)
	return matched, missing
}

// keywordCount tracks one candidate keyword during ranking.
type keywordCount struct {
	token string
	count int
}

// TopMissingKeywords ranks the job description's tokens that never occur in the
// resume by how often they occur in the job description, and returns up to k of
// them. Ties keep first-occurrence order. Both inputs are normalized texts;
// k <= 0 selects DefaultTopK.
func TopMissingKeywords(resumeCleaned, jdCleaned string, k int) []string {
	if k <= 0 {
		k = DefaultTopK
	}

	resumeTokens := make(map[string]struct{})
	for _, tok := range textnorm.Fields(resumeCleaned) {
		resumeTokens[tok] = struct{}{}
	}

	index := make(map[string]int)
	var candidates []keywordCount
	for _, tok := range textnorm.Fields(jdCleaned) {
		if _, ok := resumeTokens[tok]; ok {
			continue
		}
		if i, ok := index[tok]; ok {
			candidates[i].count++
			continue
		}
		index[tok] = len(candidates)
		candidates = append(candidates, keywordCount{token: tok, count: 1})
	}

	// candidates are already in first-occurrence order; a stable sort keeps it for ties
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].count > candidates[j].count
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.token
	}

	slog.Debug("Missing keywords ranked", "distinctMissing", len(index), "returned", len(out), "k", k)
	return out
}
