// Package score folds the individual match signals into the aggregate ATS score
// and derives suggested job roles from a resume's skills.
//
// The aggregate is a fixed weighted sum: textual similarity carries the most
// weight, skill coverage second and project coverage least.
//
// Usage Example:
//
//	skill := score.MatchPercent(len(matched), len(jdSkills))
//	final := score.FinalScore(similarity, skill, project)
package score

import "math"

// Aggregate weights. They sum to 1 so FinalScore stays within [0, 100].
const (
	SimilarityWeight = 0.5
	SkillWeight      = 0.3
	ProjectWeight    = 0.2
)

// Round2 rounds x to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// MatchPercent returns matched/max(required, 1)*100 rounded to two decimals.
// A requirement set of size zero therefore scores 0, never NaN.
func MatchPercent(matched, required int) float64 {
	denom := required
	if denom < 1 {
		denom = 1
	}
	return Round2(float64(matched) / float64(denom) * 100)
}

// SkillMatchPercent is the share of the job description's skills that the resume covers.
func SkillMatchPercent(matchedSkills, jdSkills []string) float64 {
	return MatchPercent(len(matchedSkills), len(jdSkills))
}

// ProjectMatchPercent is the share of the job description's project lines found in the resume.
func ProjectMatchPercent(matchedLines, jdLines []string) float64 {
	return MatchPercent(len(matchedLines), len(jdLines))
}

// FinalScore combines the three percentages into the ATS score, rounded to two decimals.
func FinalScore(similarity, skillMatchPercent, projectMatchPercent float64) float64 {
	return Round2(SimilarityWeight*similarity + SkillWeight*skillMatchPercent + ProjectWeight*projectMatchPercent)
}
