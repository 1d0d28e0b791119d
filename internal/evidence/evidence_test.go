package evidence_test

import (
	"strings"
	"testing"

	"github.com/chriscorrea/resumatch/internal/evidence"
)

const posting = `# Platform Engineer

We run a data platform used by hundreds of analysts across the company.

## Requirements

- Strong Python and SQL skills for building reliable pipelines
- Production experience with Docker and Kubernetes clusters

## Nice to have

Some exposure to AWS or another public cloud provider.`

func TestLocate(t *testing.T) {
	missing := map[string][]string{
		"docker": {"docker"},
		"aws":    {"aws", "amazon web services"},
		"java":   {"java"},
	}

	got := evidence.Locate(posting, missing)

	if len(got) != 2 {
		t.Fatalf("Locate() returned %d results, want 2: %+v", len(got), got)
	}

	if got[0].Skill != "aws" || got[1].Skill != "docker" {
		t.Errorf("Locate() skills = [%s %s], want [aws docker]", got[0].Skill, got[1].Skill)
	}
	if !strings.Contains(got[0].Snippet, "AWS") {
		t.Errorf("aws snippet %q does not mention AWS", got[0].Snippet)
	}
	if !strings.Contains(got[1].Snippet, "Docker") {
		t.Errorf("docker snippet %q does not mention Docker", got[1].Snippet)
	}
	for _, e := range got {
		if strings.Contains(e.Snippet, "\n") {
			t.Errorf("snippet for %s spans lines: %q", e.Skill, e.Snippet)
		}
	}
}

func TestLocateEmpty(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		missing map[string][]string
	}{
		{"no missing skills", posting, nil},
		{"empty text", "", map[string][]string{"go": {"go"}}},
		{"whitespace text", " \n\n ", map[string][]string{"go": {"go"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evidence.Locate(tt.text, tt.missing)
			if got == nil {
				t.Fatal("Locate() returned nil, want empty slice")
			}
			if len(got) != 0 {
				t.Errorf("Locate() = %+v, want empty", got)
			}
		})
	}
}

func TestLocateCanonicalFallback(t *testing.T) {
	got := evidence.Locate("Experience with terraform modules.", map[string][]string{"terraform": nil})
	if len(got) != 1 || got[0].Skill != "terraform" {
		t.Fatalf("Locate() = %+v, want one terraform result", got)
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		maxRunes int
		expected string
	}{
		{"short block", "Docker and Kubernetes", 200, "Docker and Kubernetes"},
		{"flattens lines", "- Python\n- SQL", 200, "- Python - SQL"},
		{"truncates runes", "ééééé", 3, "ééé…"},
		{"trims before ellipsis", "Go and Rust", 3, "Go…"},
		{"non-positive limit", "Go and Rust", 0, "Go and Rust"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evidence.Snippet(tt.block, tt.maxRunes); got != tt.expected {
				t.Errorf("Snippet(%q, %d) = %q, want %q", tt.block, tt.maxRunes, got, tt.expected)
			}
		})
	}
}
