package extract

import (
	"fmt"
	"os"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// MetricAlias maps one surface form found in text to a canonical metric
// name, e.g. "shear" to "shear_strength".
type MetricAlias struct {
	Alias     string `yaml:"alias" validate:"required"`
	Canonical string `yaml:"canonical" validate:"required"`
}

// Vocabulary enumerates the finite surface forms the deterministic parsers
// recognize. Matching is first-hit in table order throughout, so entry
// order is part of the contract: longer, more specific entries belong
// before their prefixes (door_frame before door).
type Vocabulary struct {
	// Metrics are alias lookups applied with word-boundary matching in
	// requirement text and substring matching in chat queries.
	Metrics []MetricAlias `yaml:"metrics" validate:"required,min=1,dive"`

	// Components is the part vocabulary for requirement extraction,
	// matched on word boundaries.
	Components []string `yaml:"components" validate:"required,min=1"`

	// FilterComponents is the wider part vocabulary for chat queries,
	// matched as substrings after status words are stripped.
	FilterComponents []string `yaml:"filter_components" validate:"required,min=1"`
}

// DefaultVocabulary returns the built-in vocabulary covering the
// mechanical test domain the engine ships for.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Metrics: []MetricAlias{
			{Alias: "shear", Canonical: "shear_strength"},
			{Alias: "shear_strength", Canonical: "shear_strength"},
			{Alias: "gap", Canonical: "gap"},
			{Alias: "rigidity", Canonical: "rigidity"},
		},
		Components: []string{
			"door_frame", "panel", "b_pillar", "roof", "hood", "door",
		},
		FilterComponents: []string{
			"door_frame", "panel", "b_pillar", "roof", "hood", "door",
			"bumper", "trunk", "fender", "windshield", "quarter_panel",
			"spoiler", "mirror", "grille", "tailgate", "headlight",
			"antenna", "wheel_well", "fuel_door", "license_plate",
			"exhaust", "side_skirt", "sunroof", "dashboard", "console",
			"seat", "airbag", "steering", "pedal", "armrest", "cupholder",
			"visor", "handle", "vent", "trim",
		},
	}
}

// LoadVocabulary reads a vocabulary from a YAML file and validates it.
// Deployments covering other engineering domains swap the vocabulary
// without touching the matching logic.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary: %w", err)
	}

	var vocab Vocabulary
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary: %w", err)
	}

	if err := validate.Struct(vocab); err != nil {
		return Vocabulary{}, fmt.Errorf("vocabulary validation failed: %w", err)
	}

	return vocab, nil
}

// fold lowercases text with Unicode-aware case folding, the normalization
// used for all vocabulary matching.
func fold(s string) string {
	return cases.Fold().String(s)
}
