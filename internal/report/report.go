// Package report renders analysis results for people and machines.
// It performs no computation of its own.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chriscorrea/resumatch/internal/analysis"
	"github.com/chriscorrea/resumatch/internal/evidence"
)

// Format defines the output format for results
type Format int

const (
	// markdown output format (default)
	Markdown Format = iota
	// plaintext output format
	Text
	// JSON output format
	JSON
)

// String returns the string representation of the output
func (f Format) String() string {
	switch f {
	case Markdown:
		return "Markdown"
	case Text:
		return "Text"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// document is the JSON shape: every result field plus the evidence list.
type document struct {
	analysis.Result
	Evidence []evidence.Evidence `json:"evidence"`
}

// Render writes res and its evidence to w in the given format.
func Render(w io.Writer, res analysis.Result, ev []evidence.Evidence, format Format) error {
	var out string
	switch format {
	case Markdown:
		out = markdown(res, ev)
	case Text:
		out = text(res, ev)
	case JSON:
		if ev == nil {
			ev = []evidence.Evidence{}
		}
		data, err := json.MarshalIndent(document{Result: res, Evidence: ev}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		out = string(data) + "\n"
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func markdown(res analysis.Result, ev []evidence.Evidence) string {
	var b strings.Builder

	b.WriteString("# ATS Match Report\n\n")
	fmt.Fprintf(&b, "**Final score: %.2f / 100**\n\n", res.FinalScore)

	b.WriteString("| Signal | Score | Weight |\n|---|---|---|\n")
	fmt.Fprintf(&b, "| Content similarity | %.2f%% | 50%% |\n", res.SimilarityPercent)
	fmt.Fprintf(&b, "| Skill match | %.2f%% | 30%% |\n", res.SkillMatchPercent)
	fmt.Fprintf(&b, "| Project match | %.2f%% | 20%% |\n\n", res.ProjectMatchPercent)

	b.WriteString("## Skills\n\n")
	fmt.Fprintf(&b, "- **Matched:** %s\n", joinOrNone(res.MatchedSkills))
	fmt.Fprintf(&b, "- **Missing:** %s\n\n", joinOrNone(res.MissingSkills))

	if len(ev) > 0 {
		b.WriteString("### Where the job description asks for them\n\n")
		for _, e := range ev {
			fmt.Fprintf(&b, "- **%s**: %s\n", e.Skill, e.Snippet)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Projects\n\n")
	writeMarkdownList(&b, "Matched project lines", res.MatchedProjectLines)
	writeMarkdownList(&b, "Missing project lines", res.MissingProjectLines)

	b.WriteString("## Top missing keywords\n\n")
	fmt.Fprintf(&b, "%s\n\n", joinOrNone(res.TopMissingKeywords))

	b.WriteString("## Suggested roles\n\n")
	for _, role := range res.SuggestedRoles {
		fmt.Fprintf(&b, "- %s\n", role)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "_Resume tokens: %d, job description tokens: %d_\n", res.ResumeTokens, res.JobTokens)
	return b.String()
}

func writeMarkdownList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "**%s:**", title)
	if len(items) == 0 {
		b.WriteString(" none\n\n")
		return
	}
	b.WriteString("\n\n")
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func text(res analysis.Result, ev []evidence.Evidence) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ATS score:          %.2f\n", res.FinalScore)
	fmt.Fprintf(&b, "Content similarity: %.2f%%\n", res.SimilarityPercent)
	fmt.Fprintf(&b, "Skill match:        %.2f%%\n", res.SkillMatchPercent)
	fmt.Fprintf(&b, "Project match:      %.2f%%\n", res.ProjectMatchPercent)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Matched skills: %s\n", joinOrNone(res.MatchedSkills))
	fmt.Fprintf(&b, "Missing skills: %s\n", joinOrNone(res.MissingSkills))
	for _, e := range ev {
		fmt.Fprintf(&b, "  %s: %s\n", e.Skill, e.Snippet)
	}

	fmt.Fprintf(&b, "Matched project lines: %d\n", len(res.MatchedProjectLines))
	for _, line := range res.MatchedProjectLines {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	fmt.Fprintf(&b, "Missing project lines: %d\n", len(res.MissingProjectLines))
	for _, line := range res.MissingProjectLines {
		fmt.Fprintf(&b, "  %s\n", line)
	}

	fmt.Fprintf(&b, "Top missing keywords: %s\n", joinOrNone(res.TopMissingKeywords))
	fmt.Fprintf(&b, "Suggested roles: %s\n", joinOrNone(res.SuggestedRoles))
	fmt.Fprintf(&b, "Tokens: resume %d, job description %d\n", res.ResumeTokens, res.JobTokens)
	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
