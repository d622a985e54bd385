package application

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/caliperhq/go-caliper/internal/domain"
)

// The CSV codec is header-keyed and column-order independent. Columns the
// reader does not recognize are ignored; columns it expects but does not
// find read as empty, so partially structured tables load without
// preprocessing.

// ReadRequirements decodes a requirement table from CSV. Only req_id is
// mandatory per row; every structured column is optional.
func ReadRequirements(r io.Reader) ([]RequirementRecord, error) {
	rows, header, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read requirements: %w", err)
	}

	records := make([]RequirementRecord, 0, len(rows))
	for i, row := range rows {
		rec := RequirementRecord{
			ReqID:    field(row, header, "req_id"),
			FreeText: field(row, header, "text"),
			Requirement: domain.Requirement{
				Metric:     field(row, header, "metric"),
				Comparator: domain.Comparator(field(row, header, "comparator")),
				Unit:       field(row, header, "unit"),
				Component:  field(row, header, "component"),
				Condition:  field(row, header, "condition"),
			},
		}

		if rec.ReqID == "" {
			return nil, fmt.Errorf("read requirements: row %d: missing req_id", i+2)
		}

		if raw := field(row, header, "value"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("read requirements: row %d: value %q: %w", i+2, raw, err)
			}
			rec.Value = &v
		}

		records = append(records, rec)
	}

	return records, nil
}

// ReadTestReports decodes a test report table from CSV. test_id, req_id
// and measured_value are mandatory per row.
func ReadTestReports(r io.Reader) ([]TestRecord, error) {
	rows, header, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read test reports: %w", err)
	}

	records := make([]TestRecord, 0, len(rows))
	for i, row := range rows {
		rec := TestRecord{
			TestID: field(row, header, "test_id"),
			ReqID:  field(row, header, "req_id"),
			TestMeasurement: domain.TestMeasurement{
				Unit:      field(row, header, "unit"),
				Component: field(row, header, "component"),
			},
		}

		if rec.TestID == "" || rec.ReqID == "" {
			return nil, fmt.Errorf("read test reports: row %d: missing test_id or req_id", i+2)
		}

		raw := field(row, header, "measured_value")
		if raw == "" {
			return nil, fmt.Errorf("read test reports: row %d: missing measured_value", i+2)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("read test reports: row %d: measured_value %q: %w", i+2, raw, err)
		}
		rec.MeasuredValue = v

		records = append(records, rec)
	}

	return records, nil
}

// WriteRequirements encodes a requirement table, typically after
// extraction has filled the structured columns.
func WriteRequirements(w io.Writer, records []RequirementRecord) error {
	cw := csv.NewWriter(w)

	headers := []string{"req_id", "text", "metric", "comparator", "value", "unit", "component", "condition"}
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write requirements: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.ReqID,
			rec.FreeText,
			rec.Metric,
			string(rec.Comparator),
			formatOptFloat(rec.Value),
			rec.Unit,
			rec.Component,
			rec.Condition,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write requirements: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteResults encodes the reconciled result table.
func WriteResults(w io.Writer, records []ResultRecord) error {
	cw := csv.NewWriter(w)

	headers := []string{"test_id", "req_id", "component", "metric", "status", "reason", "measured_norm", "target", "unit", "explanation"}
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.TestID,
			rec.ReqID,
			rec.Component,
			rec.Metric,
			string(rec.Status),
			rec.Reason,
			formatOptFloat(rec.MeasuredNorm),
			formatOptFloat(rec.Target),
			rec.Unit,
			rec.Explanation,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// readTable reads all rows and returns them with a header index keyed by
// normalized column name.
func readTable(r io.Reader) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty table: no header row")
	}

	header := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	return all[1:], header, nil
}

// field returns the named column of a row, or "" when the column is absent.
func field(row []string, header map[string]int, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
