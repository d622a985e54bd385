package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	queryRequirementsPath string
	queryTestsPath        string
)

var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Filter the validation results with a free-text question",
	Long: `query runs the validation pipeline and narrows the result table by a
free-text question, e.g.:

  caliper query "show failed door tests" --requirements reqs.csv --tests tests.csv
  caliper query "results above 5 kN" --requirements reqs.csv --tests tests.csv

A question the parser cannot place returns the full table.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}

		requirements, err := readRequirements(queryRequirementsPath)
		if err != nil {
			return err
		}
		tests, err := readTests(queryTestsPath)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		requirements = engine.ExtractRequirements(ctx, requirements)
		results := engine.Validate(ctx, requirements, tests)

		filtered, filter := engine.Query(ctx, args[0], results)
		slog.Debug("query parsed", "filter", fmt.Sprintf("%+v", filter))

		if len(filtered) == 0 && filter.Component != "" {
			if suggestion, ok := engine.SuggestComponent(filter.Component); ok && suggestion != filter.Component {
				fmt.Fprintf(os.Stderr, "no rows matched component %q; did you mean %q?\n", filter.Component, suggestion)
			}
		}

		renderResults(os.Stdout, filtered)
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryRequirementsPath, "requirements", "", "requirement CSV")
	queryCmd.Flags().StringVar(&queryTestsPath, "tests", "", "test report CSV")
	_ = queryCmd.MarkFlagRequired("requirements")
	_ = queryCmd.MarkFlagRequired("tests")
	rootCmd.AddCommand(queryCmd)
}
