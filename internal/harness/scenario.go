package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one report test case.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Schema is inline CUE source.
	Schema string `yaml:"schema,omitempty"`

	// SchemaFile is a CUE file, relative to the scenario file.
	// Exactly one of Schema and SchemaFile must be set.
	SchemaFile string `yaml:"schema_file,omitempty"`

	// Definition is the CUE path of the type to check against, e.g. "#Config".
	Definition string `yaml:"definition"`

	// Input is the document to check. A YAML null is a valid input.
	Input yaml.Node `yaml:"input"`

	// Expect describes the report.
	Expect Expectation `yaml:"expect"`
}

// Expectation specifies the expected report.
type Expectation struct {
	// Valid asserts that the input passes validation.
	Valid bool `yaml:"valid,omitempty"`

	// First is the message expected from the first-only report.
	First string `yaml:"first,omitempty"`

	// All lists the messages expected from the exhaustive report, in order.
	All []string `yaml:"all,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative schema_file is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.SchemaFile != "" && !filepath.IsAbs(scenario.SchemaFile) {
		scenario.SchemaFile = filepath.Join(filepath.Dir(path), scenario.SchemaFile)
	}
	if scenario.SchemaFile != "" {
		if _, err := os.Stat(scenario.SchemaFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: schema file not found: %s", scenario.SchemaFile)
		}
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML. Unknown fields are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if (s.Schema == "") == (s.SchemaFile == "") {
		return fmt.Errorf("exactly one of schema and schema_file is required")
	}

	if s.Definition == "" {
		return fmt.Errorf("definition is required")
	}

	if s.Input.Kind == 0 {
		return fmt.Errorf("input is required (use null for a null document)")
	}

	e := s.Expect
	if e.Valid && (e.First != "" || len(e.All) > 0) {
		return fmt.Errorf("expect: valid cannot be combined with first or all")
	}
	if !e.Valid && e.First == "" && len(e.All) == 0 {
		return fmt.Errorf("expect: one of valid, first or all is required")
	}

	return nil
}
