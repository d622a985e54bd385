package main

import (
	"github.com/spf13/cobra"

	"github.com/caliperhq/go-caliper/internal/application"
)

var (
	extractRequirementsPath string
	extractOutPath          string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Fill structured requirement fields from free text",
	Long: `extract reads a requirement CSV, derives metric, comparator, value,
unit, component and condition from each row's text, and writes the table
back out. Columns already populated in the input are never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}

		records, err := readRequirements(extractRequirementsPath)
		if err != nil {
			return err
		}

		out := engine.ExtractRequirements(cmd.Context(), records)

		w, closeOut, err := outputFile(extractOutPath)
		if err != nil {
			return err
		}
		defer closeOut()

		return application.WriteRequirements(w, out)
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractRequirementsPath, "requirements", "", "requirement CSV to extract from")
	extractCmd.Flags().StringVar(&extractOutPath, "out", "", "output CSV path (default stdout)")
	_ = extractCmd.MarkFlagRequired("requirements")
	rootCmd.AddCommand(extractCmd)
}
