// Package harness runs report scenarios: a CUE schema, an input document and
// the messages the reporter is expected to produce for it.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: union_overlap
//	description: "The variant sharing a key with the input is reported"
//	schema: |
//	  #A: {a: number}
//	  #B: {b: number, c: number}
//	  #T: #A | #B
//	definition: "#T"
//	input: {c: 42}
//	expect:
//	  first: "missing required property b"
//	  all:
//	    - "missing required property b"
//
// The schema may instead live in a file next to the scenario, named by
// schema_file. An expectation of valid: true asserts that the input passes.
//
// # Golden Files
//
// RunWithGolden snapshots the full report (both modes) as canonical JSON in
// testdata/scenarios/golden/{name}.golden, the layout mismatch test expects.
// Regenerate with:
//
//	go test ./internal/harness -update
package harness
