// Package app contains the core application logic for the resumatch CLI tool.
// It handles the main business logic separated from CLI concerns.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/chriscorrea/resumatch/internal/analysis"
	"github.com/chriscorrea/resumatch/internal/chunk"
	"github.com/chriscorrea/resumatch/internal/classify"
	"github.com/chriscorrea/resumatch/internal/evidence"
	"github.com/chriscorrea/resumatch/internal/extract"
	"github.com/chriscorrea/resumatch/internal/fetch"
	"github.com/chriscorrea/resumatch/internal/report"
	"github.com/chriscorrea/resumatch/internal/spinner"
	"github.com/chriscorrea/resumatch/internal/vocab"
)

// ErrBothStdin is returned when resume and job description both ask for standard input.
var ErrBothStdin = errors.New("resume and job description cannot both be read from stdin")

// warnOut receives user-facing warnings; swapped out in tests.
var warnOut io.Writer = os.Stderr

// Config holds all configuration options for the resumatch application.
type Config struct {
	ResumeSource   string // URL, file path, or "-" for stdin
	JobSource      string // URL, file path, or "-" for stdin
	VocabularyPath string // optional YAML vocabulary; empty uses the built-in one
	OutputFormat   report.Format
	TopK           int    // missing keywords to report (<= 0 uses the default)
	WordBoundary   bool   // match skill aliases as whole words
	Selector       string // CSS selector for HTML job descriptions
	IncludeAll     bool   // skip readability and boilerplate filtering
	NoEvidence     bool   // skip locating evidence for missing skills
	Quiet          bool   // suppress progress output
	Debug          bool
}

// Run executes the main resumatch application logic with the given configuration.
//
// Processing Pipeline:
// 1. Build the analyzer from the vocabulary (default or file)
// 2. Fetch and extract resume and job description concurrently
// 3. Analyze, locate evidence for missing skills and render the report
//
// ctx allows for cancellation and timeout control of fetching.
func Run(ctx context.Context, cfg Config) (string, error) {
	if strings.TrimSpace(cfg.ResumeSource) == "" {
		return "", fmt.Errorf("no resume source provided")
	}
	if strings.TrimSpace(cfg.JobSource) == "" {
		return "", fmt.Errorf("no job description source provided")
	}
	if cfg.ResumeSource == "-" && cfg.JobSource == "-" {
		return "", ErrBothStdin
	}

	analyzer, err := newAnalyzer(cfg)
	if err != nil {
		return "", err
	}

	var sp *spinner.Spinner
	if !cfg.Quiet {
		sp = spinner.ForTerminal(ctx, os.Stderr, "Fetching documents...")
		sp.Start()
		defer sp.Stop()
	}

	resumeText, jobText, err := loadDocuments(ctx, cfg)
	if err != nil {
		return "", err
	}

	if sp != nil {
		sp.Step("Scoring match...")
	}

	res, err := analyzer.Analyze(resumeText, jobText)
	if err != nil {
		return "", fmt.Errorf("analysis failed: %w", err)
	}

	var ev []evidence.Evidence
	if !cfg.NoEvidence && len(res.MissingSkills) > 0 {
		ev = evidence.Locate(jobText, missingAliases(analyzer.Matcher(), res.MissingSkills))
	}

	if sp != nil {
		sp.Done(fmt.Sprintf("Scored %.2f / 100", res.FinalScore))
	}

	var out strings.Builder
	if err := report.Render(&out, res, ev, cfg.OutputFormat); err != nil {
		return "", err
	}
	return out.String(), nil
}

// newAnalyzer loads the vocabulary and applies command line overrides.
func newAnalyzer(cfg Config) (*analysis.Analyzer, error) {
	vcfg := vocab.Default()
	if cfg.VocabularyPath != "" {
		loaded, err := vocab.Load(cfg.VocabularyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load vocabulary: %w", err)
		}
		vcfg = loaded
	}
	if cfg.WordBoundary {
		vcfg.MatchMode = vocab.Word.String()
	}

	analyzer, err := analysis.New(vcfg, analysis.Options{TopK: cfg.TopK})
	if err != nil {
		return nil, fmt.Errorf("invalid vocabulary: %w", err)
	}
	slog.Debug("Analyzer ready", "vocabulary", cfg.VocabularyPath, "matchMode", analyzer.Matcher().Mode().String(), "topK", cfg.TopK)
	return analyzer, nil
}

// loadDocuments fetches and extracts both inputs in parallel.
func loadDocuments(ctx context.Context, cfg Config) (resumeText, jobText string, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		text, err := processSource(gctx, cfg.ResumeSource, extract.Options{}, false, cfg.Quiet)
		if err != nil {
			return fmt.Errorf("failed to load resume %q: %w", cfg.ResumeSource, err)
		}
		resumeText = text
		return nil
	})

	g.Go(func() error {
		opts := extract.Options{Selector: cfg.Selector, IncludeAll: cfg.IncludeAll}
		filter := !cfg.IncludeAll && cfg.Selector == ""
		text, err := processSource(gctx, cfg.JobSource, opts, filter, cfg.Quiet)
		if err != nil {
			return fmt.Errorf("failed to load job description %q: %w", cfg.JobSource, err)
		}
		jobText = text
		return nil
	})

	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return resumeText, jobText, nil
}

// processSource fetches a single source and converts it to text. HTML pages
// are stripped of job-board boilerplate when filter is set.
func processSource(ctx context.Context, source string, opts extract.Options, filter, quiet bool) (string, error) {
	doc, err := fetch.Open(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content: %w", err)
	}
	defer doc.Close()

	if doc.Kind == fetch.HTML && (strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")) {
		opts.BaseURL, _ = url.Parse(source) // ignore parse errors, will use nil
	}

	text, err := extract.ToText(doc, doc.Kind, opts)
	if err != nil {
		return "", fmt.Errorf("failed to extract %s content: %w", doc.Kind, err)
	}

	if filter && doc.Kind == fetch.HTML {
		text = filterPosting(source, text, quiet)
	}

	slog.Debug("Source processed", "source", source, "kind", doc.Kind.String(), "length", len(text))
	return text, nil
}

// filterPosting strips boilerplate from an HTML posting, warning on stderr
// (unless quiet) when the filter had to fall back to the unfiltered text.
func filterPosting(source, text string, quiet bool) string {
	filtered, ok := stripBoilerplate(text)
	if !ok && !quiet {
		fmt.Fprintf(warnOut, "Warning: every block of %q looked like boilerplate; analyzing the unfiltered page (use --selector to pick the posting)\n", source)
	}
	return filtered
}

// stripBoilerplate removes navigation, apply bars and legal footers from a
// posting. If every block looks like boilerplate the text is returned as is
// and ok is false.
func stripBoilerplate(text string) (filtered string, ok bool) {
	blocks := chunk.Paragraphs(text)
	if len(blocks) == 0 {
		return text, true
	}
	kept := classify.NewClassifier().Filter(blocks)
	if len(kept) == 0 {
		slog.Debug("Boilerplate filter removed everything, keeping original text", "blocks", len(blocks))
		return text, false
	}
	return strings.Join(kept, "\n\n"), true
}

// missingAliases maps each missing skill to the aliases used to find it.
func missingAliases(m *vocab.Matcher, missing []string) map[string][]string {
	out := make(map[string][]string, len(missing))
	for _, skill := range missing {
		out[skill] = m.Aliases(skill)
	}
	return out
}
