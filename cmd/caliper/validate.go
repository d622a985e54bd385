package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/caliperhq/go-caliper/internal/application"
)

var (
	validateRequirementsPath string
	validateTestsPath        string
	validateOutPath          string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate test reports against requirements",
	Long: `validate extracts any missing requirement fields, joins test reports
to requirements on req_id, normalizes each measurement into the
requirement's unit and classifies every pairing as pass, fail or unknown.

With --out the result table is written as CSV; otherwise it is rendered
to stdout with a status summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}

		requirements, err := readRequirements(validateRequirementsPath)
		if err != nil {
			return err
		}
		tests, err := readTests(validateTestsPath)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		requirements = engine.ExtractRequirements(ctx, requirements)
		results := engine.Validate(ctx, requirements, tests)

		if validateOutPath != "" {
			w, closeOut, err := outputFile(validateOutPath)
			if err != nil {
				return err
			}
			defer closeOut()
			return application.WriteResults(w, results)
		}

		renderResults(os.Stdout, results)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateRequirementsPath, "requirements", "", "requirement CSV")
	validateCmd.Flags().StringVar(&validateTestsPath, "tests", "", "test report CSV")
	validateCmd.Flags().StringVar(&validateOutPath, "out", "", "write results as CSV instead of rendering")
	_ = validateCmd.MarkFlagRequired("requirements")
	_ = validateCmd.MarkFlagRequired("tests")
	rootCmd.AddCommand(validateCmd)
}
