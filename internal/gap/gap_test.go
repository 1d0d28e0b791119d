package gap

import (
	"reflect"
	"testing"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name        string
		resume, jd  []string
		wantMatched []string
		wantMissing []string
	}{
		{
			name:        "both empty",
			wantMatched: []string{},
			wantMissing: []string{},
		},
		{
			name:        "full match",
			resume:      []string{"python", "machine learning"},
			jd:          []string{"machine learning", "python"},
			wantMatched: []string{"machine learning", "python"},
			wantMissing: []string{},
		},
		{
			name:        "docker missing",
			resume:      []string{"python"},
			jd:          []string{"python", "docker"},
			wantMatched: []string{"python"},
			wantMissing: []string{"docker"},
		},
		{
			name:        "resume extras are ignored",
			resume:      []string{"python", "java", "git"},
			jd:          []string{"git"},
			wantMatched: []string{"git"},
			wantMissing: []string{},
		},
		{
			name:        "duplicate jd items collapse",
			resume:      nil,
			jd:          []string{"sql", "sql"},
			wantMatched: []string{},
			wantMissing: []string{"sql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, missing := Diff(tt.resume, tt.jd)
			if !reflect.DeepEqual(matched, tt.wantMatched) {
				t.Errorf("Diff() matched = %v, want %v", matched, tt.wantMatched)
			}
			if !reflect.DeepEqual(missing, tt.wantMissing) {
				t.Errorf("Diff() missing = %v, want %v", missing, tt.wantMissing)
			}
		})
	}
}

func TestDiffPartitionsJobItems(t *testing.T) {
	resume := []string{"a", "b", "c", "x"}
	jd := []string{"b", "c", "d", "e", "b"}

	matched, missing := Diff(resume, jd)

	union := make(map[string]int)
	for _, s := range matched {
		union[s]++
	}
	for _, s := range missing {
		union[s]++
	}
	for s, n := range union {
		if n != 1 {
			t.Errorf("item %q appears in both matched and missing", s)
		}
	}

	want := map[string]int{"b": 1, "c": 1, "d": 1, "e": 1}
	if !reflect.DeepEqual(union, want) {
		t.Errorf("matched ∪ missing = %v, want %v", union, want)
	}
}

func TestTopMissingKeywords(t *testing.T) {
	tests := []struct {
		name   string
		resume string
		jd     string
		k      int
		want   []string
	}{
		{
			name:   "empty jd",
			resume: "python",
			jd:     "",
			k:      5,
			want:   []string{},
		},
		{
			name:   "nothing missing",
			resume: "python go",
			jd:     "go python go",
			k:      5,
			want:   []string{},
		},
		{
			name:   "frequency beats position",
			resume: "python",
			jd:     "agile kubernetes scrum kubernetes kubernetes python",
			k:      5,
			want:   []string{"kubernetes", "agile", "scrum"},
		},
		{
			name:   "ties keep first occurrence order",
			resume: "",
			jd:     "delta alpha charlie alpha delta bravo",
			k:      5,
			want:   []string{"delta", "alpha", "charlie", "bravo"},
		},
		{
			name:   "truncates to k",
			resume: "",
			jd:     "one two three four five six seven",
			k:      3,
			want:   []string{"one", "two", "three"},
		},
		{
			name:   "non-positive k uses default",
			resume: "",
			jd:     "one two three four five six seven",
			k:      0,
			want:   []string{"one", "two", "three", "four", "five"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopMissingKeywords(tt.resume, tt.jd, tt.k)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopMissingKeywords(%q, %q, %d) = %v, want %v", tt.resume, tt.jd, tt.k, got, tt.want)
			}
		})
	}
}

func TestTopMissingKeywordsRepeatedTokenRanksFirst(t *testing.T) {
	resume := "go engineer distributed systems"
	jd := "go engineer terraform kubernetes helm kubernetes ansible kubernetes"

	got := TopMissingKeywords(resume, jd, DefaultTopK)
	if len(got) == 0 || got[0] != "kubernetes" {
		t.Fatalf("TopMissingKeywords() = %v, want kubernetes first", got)
	}
}
