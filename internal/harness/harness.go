package harness

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roach88/mismatch/internal/cueschema"
	"github.com/roach88/mismatch/internal/report"
	"github.com/roach88/mismatch/internal/schema"
	"github.com/roach88/mismatch/internal/validate"
	"github.com/roach88/mismatch/internal/value"
	"gopkg.in/yaml.v3"
)

// Harness is the scenario execution engine.
type Harness struct {
	logger   *slog.Logger
	messages report.Messages
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger routes harness and reporter debug logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// WithMessages overrides the report formatter.
func WithMessages(m report.Messages) Option {
	return func(h *Harness) {
		h.messages = m
	}
}

// New creates a harness. Logs are discarded unless WithLogger is given.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Compile the schema and look up the definition
// 2. Decode the input document
// 3. Validate and build both reports
// 4. Compare the reports with the expectation
//
// An error is returned only when the scenario cannot be executed; unmet
// expectations are recorded in the result.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	typ, err := loadType(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}

	input, err := decodeInput(&scenario.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}

	opts := []report.Option{
		report.WithLogger(h.logger),
		report.WithMessages(h.messages),
	}

	result := NewResult()
	res := validate.Decode(typ, input)
	result.Valid = res.OK()
	if !res.OK() {
		result.First, _ = report.One(res, opts...)
		result.All = report.All(res, opts...)
	}

	for _, errMsg := range EvaluateExpectations(result, scenario.Expect) {
		result.AddError(errMsg)
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"valid", result.Valid,
		"messages", len(result.All),
		"pass", result.Pass,
	)

	return result, nil
}

func loadType(s *Scenario) (schema.Type, error) {
	src, filename := []byte(s.Schema), s.Name+".cue"
	if s.SchemaFile != "" {
		data, err := os.ReadFile(s.SchemaFile)
		if err != nil {
			return nil, err
		}
		src, filename = data, s.SchemaFile
	}

	root, err := cueschema.Compile(src, filename)
	if err != nil {
		return nil, err
	}
	return cueschema.Lookup(root, s.Definition)
}

func decodeInput(node *yaml.Node) (value.Value, error) {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return nil, err
	}
	return value.FromGo(raw)
}
