// Package application orchestrates the engine's pipeline: requirement
// extraction, requirement/test reconciliation and query-driven filtering
// over the result table.
package application

import "github.com/caliperhq/go-caliper/internal/domain"

// RequirementRecord is one row of the requirement table: an identifier,
// the original free text and whatever structured fields are already known.
type RequirementRecord struct {
	// ReqID is the requirement's identifier, the join key against tests.
	ReqID string `json:"req_id"`

	// FreeText is the original requirement wording, the extraction input.
	FreeText string `json:"text,omitempty"`

	domain.Requirement
}

// TestRecord is one row of the test report table.
type TestRecord struct {
	// TestID identifies the test run.
	TestID string `json:"test_id"`

	// ReqID names the requirement this test exercises.
	ReqID string `json:"req_id"`

	domain.TestMeasurement
}

// ResultRecord is one row of the reconciled result table: the pairing keys
// plus the validation outcome.
type ResultRecord struct {
	// TestID identifies the test run, unique within the result table.
	TestID string `json:"test_id"`

	// ReqID names the requirement the test was checked against.
	ReqID string `json:"req_id"`

	// Component is the part under test. The test row's component wins
	// over the requirement's when both are present.
	Component string `json:"component,omitempty"`

	// Metric is the requirement's canonical metric.
	Metric string `json:"metric,omitempty"`

	domain.ValidationResult
}
