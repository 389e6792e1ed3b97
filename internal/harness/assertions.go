package harness

import (
	"fmt"
	"slices"
	"strings"
)

// ExpectationError describes one unmet expectation.
type ExpectationError struct {
	Field    string // "valid", "first" or "all"
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *ExpectationError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

// EvaluateExpectations compares a result with the scenario's expectation
// and returns one message per unmet expectation.
func EvaluateExpectations(result *Result, expect Expectation) []string {
	var errs []string
	add := func(err error) {
		errs = append(errs, err.Error())
	}

	if expect.Valid {
		if !result.Valid {
			add(&ExpectationError{Field: "valid", Expected: "input to pass", Actual: quoteList(result.All)})
		}
		return errs
	}

	if result.Valid {
		add(&ExpectationError{Field: "valid", Expected: "input to fail", Actual: "a valid input"})
		return errs
	}

	if expect.First != "" && expect.First != result.First {
		add(&ExpectationError{Field: "first", Expected: fmt.Sprintf("%q", expect.First), Actual: fmt.Sprintf("%q", result.First)})
	}

	if expect.All != nil {
		for _, err := range compareLines(expect.All, result.All) {
			add(err)
		}
	}

	return errs
}

// compareLines reports missing and unexpected lines, and a reordering when
// both lists hold the same lines.
func compareLines(expected, actual []string) []error {
	var errs []error
	for _, line := range expected {
		if !slices.Contains(actual, line) {
			errs = append(errs, &ExpectationError{Field: "all", Expected: fmt.Sprintf("%q", line), Actual: "no such message"})
		}
	}
	for _, line := range actual {
		if !slices.Contains(expected, line) {
			errs = append(errs, &ExpectationError{Field: "all", Expected: "no such message", Actual: fmt.Sprintf("%q", line)})
		}
	}
	if len(errs) == 0 && !slices.Equal(expected, actual) {
		errs = append(errs, &ExpectationError{Field: "all", Expected: quoteList(expected), Actual: quoteList(actual)})
	}
	return errs
}

func quoteList(lines []string) string {
	quoted := make([]string, len(lines))
	for i, l := range lines {
		quoted[i] = fmt.Sprintf("%q", l)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
