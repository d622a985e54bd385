package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/caliperhq/go-caliper/infrastructure/extract"
	"github.com/caliperhq/go-caliper/infrastructure/llm"
	"github.com/caliperhq/go-caliper/internal/application"
)

var (
	vocabPath string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "caliper",
	Short: "Reconcile engineering requirements against test reports",
	Long: `caliper joins free-text requirements with measured test results,
normalizes units, and classifies every pairing as pass, fail or unknown.

A reasoning backend is used when an API key is present in the environment
(GROQ_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY); without one every
operation runs on deterministic pattern matching.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env file is the common case, not an error.
		_ = godotenv.Load()

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vocabPath, "vocab", "", "YAML vocabulary file overriding the built-in one")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newEngine builds the pipeline engine from flags and environment.
func newEngine() (*application.Engine, error) {
	vocab := extract.DefaultVocabulary()
	if vocabPath != "" {
		loaded, err := extract.LoadVocabulary(vocabPath)
		if err != nil {
			return nil, err
		}
		vocab = loaded
	}

	return application.NewEngine(llm.FromEnv(), vocab, nil), nil
}

// readRequirements loads and decodes a requirement CSV.
func readRequirements(path string) ([]application.RequirementRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open requirements: %w", err)
	}
	defer f.Close()
	return application.ReadRequirements(f)
}

// readTests loads and decodes a test report CSV.
func readTests(path string) ([]application.TestRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open test reports: %w", err)
	}
	defer f.Close()
	return application.ReadTestReports(f)
}

// outputFile returns the writer for --out, or stdout when the flag is
// empty. The caller owns the returned closer.
func outputFile(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { f.Close() }, nil
}
