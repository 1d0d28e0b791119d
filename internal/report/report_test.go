package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/chriscorrea/resumatch/internal/analysis"
	"github.com/chriscorrea/resumatch/internal/evidence"
	"github.com/chriscorrea/resumatch/internal/report"
)

func sampleResult() analysis.Result {
	return analysis.Result{
		SimilarityPercent:   43.16,
		SkillMatchPercent:   66.67,
		ProjectMatchPercent: 50,
		FinalScore:          51.58,
		ResumeSkills:        []string{"machine learning", "python"},
		JobSkills:           []string{"docker", "machine learning", "python"},
		MatchedSkills:       []string{"machine learning", "python"},
		MissingSkills:       []string{"docker"},
		MatchedProjectLines: []string{"capstone project: churn model"},
		MissingProjectLines: []string{"research internship"},
		TopMissingKeywords:  []string{"looking", "engineer"},
		SuggestedRoles:      []string{"Data Scientist", "ML Engineer"},
		ResumeTokens:        5,
		JobTokens:           5,
	}
}

func sampleEvidence() []evidence.Evidence {
	return []evidence.Evidence{{Skill: "docker", Snippet: "- Docker in production", Score: 1.5}}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   report.Format
		expected string
	}{
		{report.Markdown, "Markdown"},
		{report.Text, "Text"},
		{report.JSON, "JSON"},
		{report.Format(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.format.String(); got != tt.expected {
			t.Errorf("Format(%d).String() = %q, want %q", int(tt.format), got, tt.expected)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Render(&buf, sampleResult(), sampleEvidence(), report.Markdown); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# ATS Match Report",
		"**Final score: 51.58 / 100**",
		"| Content similarity | 43.16% | 50% |",
		"| Project match | 50.00% | 20% |",
		"- **Matched:** machine learning, python",
		"- **Missing:** docker",
		"- **docker**: - Docker in production",
		"- capstone project: churn model",
		"looking, engineer",
		"- Data Scientist\n- ML Engineer",
		"_Resume tokens: 5, job description tokens: 5_",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q\n%s", want, out)
		}
	}
}

func TestRenderMarkdownWithoutEvidence(t *testing.T) {
	res := sampleResult()
	res.MatchedProjectLines = nil

	var buf bytes.Buffer
	if err := report.Render(&buf, res, nil, report.Markdown); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "Where the job description asks") {
		t.Error("evidence section should be omitted when there is no evidence")
	}
	if !strings.Contains(out, "**Matched project lines:** none") {
		t.Errorf("expected empty project list to render as none\n%s", out)
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Render(&buf, sampleResult(), sampleEvidence(), report.Text); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "#") || strings.Contains(out, "**") {
		t.Errorf("text output should not contain markdown markup\n%s", out)
	}
	for _, want := range []string{
		"ATS score:          51.58",
		"Missing skills: docker",
		"  docker: - Docker in production",
		"Missing project lines: 1",
		"Suggested roles: Data Scientist, ML Engineer",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q\n%s", want, out)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Render(&buf, sampleResult(), nil, report.JSON); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if got := decoded["final_score"]; got != 51.58 {
		t.Errorf("final_score = %v, want 51.58", got)
	}
	if got, ok := decoded["missing_skills"].([]any); !ok || len(got) != 1 || got[0] != "docker" {
		t.Errorf("missing_skills = %v, want [docker]", decoded["missing_skills"])
	}
	ev, ok := decoded["evidence"].([]any)
	if !ok {
		t.Fatalf("evidence = %v, want a JSON array", decoded["evidence"])
	}
	if len(ev) != 0 {
		t.Errorf("evidence = %v, want empty array", ev)
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Render(&buf, sampleResult(), nil, report.Format(9)); err == nil {
		t.Error("Render() with unknown format should fail")
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written on error, got %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderWriteError(t *testing.T) {
	if err := report.Render(failingWriter{}, sampleResult(), nil, report.Text); err == nil {
		t.Error("Render() should surface writer errors")
	}
}
