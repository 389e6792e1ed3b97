package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/mismatch/internal/value"
)

// GoldenDir holds golden snapshots. It is the golden/ directory next to the
// scenarios, where mismatch test reads and writes them.
const GoldenDir = "testdata/scenarios/golden"

// ReportSnapshot captures both reports for a scenario.
// It is serialized as canonical JSON for deterministic comparison.
type ReportSnapshot struct {
	ScenarioName string   `json:"scenario_name"`
	Valid        bool     `json:"valid"`
	First        string   `json:"first,omitempty"`
	All          []string `json:"all,omitempty"`
}

// toValue converts a snapshot to a value.Object for canonical serialization.
func (s *ReportSnapshot) toValue() value.Object {
	obj := value.Object{
		"scenario_name": value.String(s.ScenarioName),
		"valid":         value.Bool(s.Valid),
	}
	if s.First != "" {
		obj["first"] = value.String(s.First)
	}
	if len(s.All) > 0 {
		all := make(value.Array, len(s.All))
		for i, msg := range s.All {
			all[i] = value.String(msg)
		}
		obj["all"] = all
	}
	return obj
}

// RunWithGolden executes a scenario and compares its report against a golden
// file stored in GoldenDir/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the report doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}

// Snapshot returns the canonical JSON golden form of a result.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	snapshot := ReportSnapshot{
		ScenarioName: scenarioName,
		Valid:        result.Valid,
		First:        result.First,
		All:          result.All,
	}
	return value.MarshalCanonical(snapshot.toValue())
}
