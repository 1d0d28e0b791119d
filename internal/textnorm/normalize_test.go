package textnorm

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "empty string",
			text: "",
			want: "",
		},
		{
			name: "only stop words",
			text: "The and of a",
			want: "",
		},
		{
			name: "mixed case and punctuation",
			text: "Python, Go & SQL!",
			want: "python go sql",
		},
		{
			name: "digits become separators",
			text: "Built REST APIs in Go, 2019-2023.",
			want: "built rest apis go",
		},
		{
			name: "newlines and tabs collapse",
			text: "machine\tlearning\n\nengineer",
			want: "machine learning engineer",
		},
		{
			name: "contraction fragments removed",
			text: "I don't know what you've done",
			want: "know done",
		},
		{
			name: "non-ascii letters become separators",
			text: "résumé naïve",
			want: "r sum na", // "ve" is a contraction fragment
		},
		{
			name: "order and duplicates preserved",
			text: "kubernetes docker kubernetes",
			want: "kubernetes docker kubernetes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.text)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Senior Go Engineer (Remote) - 5+ years with Kubernetes & AWS",
		"the THE The",
		"research project: capstone\ninternship @ ACME, 2021",
		"   leading   and trailing   ",
		"C++ / C# / .NET",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestNormalizeOutputAlphabet(t *testing.T) {
	got := Normalize("Hello, World! 123 -- foo_bar.baz\tQux")
	for _, r := range got {
		if !(r >= 'a' && r <= 'z') && r != ' ' {
			t.Fatalf("Normalize output %q contains unexpected rune %q", got, r)
		}
	}
	if strings.Contains(got, "  ") {
		t.Errorf("Normalize output %q contains consecutive spaces", got)
	}
	if strings.TrimSpace(got) != got {
		t.Errorf("Normalize output %q has leading or trailing space", got)
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Docker, docker and DOCKER")
	want := []string{"docker", "docker", "docker"}
	if len(got) != len(want) {
		t.Fatalf("Tokens() length = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tokens()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if toks := Tokens(""); len(toks) != 0 {
		t.Errorf("Tokens(\"\") = %v, want empty", toks)
	}
}

func TestIsStopWord(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"the", true},
		{"and", true},
		{"don", true},
		{"python", false},
		{"THE", false}, // callers lowercase first
		{"", false},
	}

	for _, tt := range tests {
		if got := IsStopWord(tt.token); got != tt.want {
			t.Errorf("IsStopWord(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}
