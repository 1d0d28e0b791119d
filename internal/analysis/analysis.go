// Package analysis runs the resume-to-job-description matching pipeline and
// packages every signal into one Result.
//
// The pipeline is synchronous and CPU only: normalize both texts, extract skills
// and project lines, score the TF-IDF similarity, diff the extracted sets, rank
// missing keywords and fold it all into the ATS score. An Analyzer holds only
// read-only vocabularies, so one instance can serve concurrent callers.
//
// Usage Example:
//
//	res, err := analysis.Default().Analyze(resumeText, jdText)
//	if errors.Is(err, analysis.ErrInvalidInput) {
//		// one of the texts was empty
//	}
package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chriscorrea/resumatch/internal/gap"
	"github.com/chriscorrea/resumatch/internal/score"
	"github.com/chriscorrea/resumatch/internal/textnorm"
	"github.com/chriscorrea/resumatch/internal/tfidf"
	"github.com/chriscorrea/resumatch/internal/vocab"
)

// ErrInvalidInput matches any InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a required text that was empty or blank.
// No partial analysis is produced when it is returned.
type InvalidInputError struct {
	Field string // "resume" or "job description"
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s text is empty", e.Field)
}

// Is makes errors.Is(err, ErrInvalidInput) true.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Result is the complete outcome of one analysis. Set-valued fields are sorted
// and duplicate free; TopMissingKeywords is ordered by rank.
type Result struct {
	SimilarityPercent   float64 `json:"similarity_percent"`
	SkillMatchPercent   float64 `json:"skill_match_percent"`
	ProjectMatchPercent float64 `json:"project_match_percent"`
	FinalScore          float64 `json:"final_score"`

	ResumeSkills        []string `json:"resume_skills"`
	JobSkills           []string `json:"job_skills"`
	MatchedSkills       []string `json:"matched_skills"`
	MissingSkills       []string `json:"missing_skills"`
	MatchedProjectLines []string `json:"matched_project_lines"`
	MissingProjectLines []string `json:"missing_project_lines"`
	TopMissingKeywords  []string `json:"top_missing_keywords"`
	SuggestedRoles      []string `json:"suggested_roles"`

	ResumeTokens int `json:"resume_tokens"` // tokens after normalization
	JobTokens    int `json:"job_tokens"`
}

// Options tunes an Analyzer.
type Options struct {
	TopK int // number of missing keywords to report; <= 0 means gap.DefaultTopK
}

// Analyzer runs the pipeline against a fixed vocabulary.
type Analyzer struct {
	matcher *vocab.Matcher
	roles   *score.RoleSuggester
	topK    int
}

// NewAnalyzer creates an Analyzer from prepared collaborators.
func NewAnalyzer(matcher *vocab.Matcher, roles *score.RoleSuggester, opts Options) *Analyzer {
	topK := opts.TopK
	if topK <= 0 {
		topK = gap.DefaultTopK
	}
	return &Analyzer{matcher: matcher, roles: roles, topK: topK}
}

// New creates an Analyzer for a vocabulary configuration.
func New(cfg vocab.Config, opts Options) (*Analyzer, error) {
	matcher, err := cfg.Matcher()
	if err != nil {
		return nil, fmt.Errorf("failed to build matcher: %w", err)
	}
	return NewAnalyzer(matcher, cfg.RoleSuggester(), opts), nil
}

// Default returns an Analyzer over the built-in vocabulary.
func Default() *Analyzer {
	return NewAnalyzer(
		vocab.NewMatcher(vocab.DefaultSkills(), vocab.DefaultProjectKeywords(), vocab.Substring),
		score.NewRoleSuggester(nil, ""),
		Options{},
	)
}

// Matcher exposes the analyzer's vocabulary matcher.
func (a *Analyzer) Matcher() *vocab.Matcher {
	return a.matcher
}

// Analyze compares a resume with a job description. Both texts are required;
// an empty or whitespace-only text fails with *InvalidInputError before any
// work is done.
func (a *Analyzer) Analyze(resumeText, jdText string) (Result, error) {
	if strings.TrimSpace(resumeText) == "" {
		return Result{}, &InvalidInputError{Field: "resume"}
	}
	if strings.TrimSpace(jdText) == "" {
		return Result{}, &InvalidInputError{Field: "job description"}
	}

	resumeClean := textnorm.Normalize(resumeText)
	jdClean := textnorm.Normalize(jdText)

	// skills come from the cleaned text; project lines need the original line breaks
	resumeSkills := a.matcher.ExtractSkills(resumeClean)
	jdSkills := a.matcher.ExtractSkills(jdClean)
	resumeProjects := a.matcher.ExtractProjectLines(resumeText)
	jdProjects := a.matcher.ExtractProjectLines(jdText)

	similarity := tfidf.Similarity(resumeClean, jdClean)

	matchedSkills, missingSkills := gap.Diff(resumeSkills, jdSkills)
	matchedProjects, missingProjects := gap.Diff(resumeProjects, jdProjects)
	keywords := gap.TopMissingKeywords(resumeClean, jdClean, a.topK)

	skillPct := score.SkillMatchPercent(matchedSkills, jdSkills)
	projectPct := score.ProjectMatchPercent(matchedProjects, jdProjects)
	final := score.FinalScore(similarity, skillPct, projectPct)

	res := Result{
		SimilarityPercent:   similarity,
		SkillMatchPercent:   skillPct,
		ProjectMatchPercent: projectPct,
		FinalScore:          final,
		ResumeSkills:        resumeSkills,
		JobSkills:           jdSkills,
		MatchedSkills:       matchedSkills,
		MissingSkills:       missingSkills,
		MatchedProjectLines: matchedProjects,
		MissingProjectLines: missingProjects,
		TopMissingKeywords:  keywords,
		SuggestedRoles:      a.roles.Suggest(resumeSkills),
		ResumeTokens:        len(textnorm.Fields(resumeClean)),
		JobTokens:           len(textnorm.Fields(jdClean)),
	}

	slog.Debug("Analysis completed",
		"similarity", res.SimilarityPercent,
		"skillMatch", res.SkillMatchPercent,
		"projectMatch", res.ProjectMatchPercent,
		"finalScore", res.FinalScore,
		"missingSkills", len(res.MissingSkills))
	return res, nil
}

// Analyze runs the default analyzer.
func Analyze(resumeText, jdText string) (Result, error) {
	return Default().Analyze(resumeText, jdText)
}
