package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/chriscorrea/resumatch/internal/app"
	"github.com/chriscorrea/resumatch/internal/report"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// vocabularyEnv names the environment variable holding a default vocabulary file.
const vocabularyEnv = "RESUMATCH_VOCABULARY"

// buildConfig constructs an app.Config from command flags
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	resume, _ := cmd.Flags().GetString("resume")
	jd, _ := cmd.Flags().GetString("jd")
	vocabPath, _ := cmd.Flags().GetString("vocab")
	topK, _ := cmd.Flags().GetInt("top-k")
	wordBoundary, _ := cmd.Flags().GetBool("word-boundary")
	selector, _ := cmd.Flags().GetString("selector")
	includeAll, _ := cmd.Flags().GetBool("include-all")
	noEvidence, _ := cmd.Flags().GetBool("no-evidence")
	mdFlag, _ := cmd.Flags().GetBool("md")
	textFlag, _ := cmd.Flags().GetBool("text")
	jsonFlag, _ := cmd.Flags().GetBool("json")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	// positional arguments fill in whichever of resume/jd was not given as a flag
	for _, arg := range args {
		switch {
		case resume == "":
			resume = arg
		case jd == "":
			jd = arg
		default:
			return app.Config{}, fmt.Errorf("unexpected argument %q", arg)
		}
	}

	if resume == "" || jd == "" {
		return app.Config{}, fmt.Errorf("both a resume and a job description are required")
	}
	if resume == "-" && jd == "-" {
		return app.Config{}, app.ErrBothStdin
	}

	if vocabPath == "" {
		vocabPath = os.Getenv(vocabularyEnv)
	}

	// determine output format
	var outputFormat report.Format
	switch {
	case textFlag:
		outputFormat = report.Text
	case jsonFlag:
		outputFormat = report.JSON
	case mdFlag:
		outputFormat = report.Markdown
	default:
		outputFormat = report.Markdown // default if no format flag
	}

	return app.Config{
		ResumeSource:   resume,
		JobSource:      jd,
		VocabularyPath: vocabPath,
		OutputFormat:   outputFormat,
		TopK:           topK,
		WordBoundary:   wordBoundary,
		Selector:       selector,
		IncludeAll:     includeAll,
		NoEvidence:     noEvidence,
		Quiet:          quiet,
		Debug:          debug,
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "resumatch --resume <source> --jd <source>",
	Short: "Score a resume against a job description",
	Long: `Resumatch estimates how well a resume fits a job description the way an applicant
tracking system might: content similarity, skill coverage and project coverage are combined
into one score, with the missing skills and keywords listed alongside.

Sources may be URLs, local files (text, HTML, PDF or DOCX), or "-" for standard input.

Examples:
  resumatch --resume cv.pdf --jd https://example.com/jobs/123
  resumatch cv.docx posting.html --json
  pbpaste | resumatch --resume resume.txt --jd -`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		setupLogger(config.Debug)

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.Run(ctx, config)
		if err != nil {
			return fmt.Errorf("resumatch failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

func init() {
	addFlags(rootCmd)
}

// addFlags registers the command line flags on cmd
func addFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("resume", "r", "", "Resume source (URL, file, or - for stdin)")
	cmd.Flags().StringP("jd", "j", "", "Job description source (URL, file, or - for stdin)")
	cmd.Flags().String("vocab", "", "YAML vocabulary file (default: built-in, or $"+vocabularyEnv+")")
	cmd.Flags().IntP("top-k", "k", 5, "Number of missing keywords to report")
	cmd.Flags().BoolP("word-boundary", "w", false, "Match skill aliases as whole words only")

	// job description extraction
	cmd.Flags().StringP("selector", "s", "", "CSS selector for the job posting content")
	cmd.Flags().BoolP("include-all", "i", false, "Include all page content without readability or boilerplate filtering")
	cmd.Flags().Bool("no-evidence", false, "Do not quote job description passages for missing skills")

	// output format flags
	cmd.Flags().Bool("md", false, "Output in Markdown format (default)")
	cmd.Flags().Bool("text", false, "Output in plain text format")
	cmd.Flags().Bool("json", false, "Output in JSON format")

	// output format flags are mutually exclusive
	cmd.MarkFlagsMutuallyExclusive("md", "text", "json")
	cmd.MarkFlagsMutuallyExclusive("selector", "include-all")

	// other flags
	cmd.Flags().BoolP("quiet", "q", false, "Suppress progress messages")
	cmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = cmd.Flags().MarkHidden("debug")
}

func main() {
	// a missing .env file is fine; real environment variables still apply
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
