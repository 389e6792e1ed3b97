package cli

import (
	"context"
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/roach88/mismatch/internal/value"
)

// ApplyQuery runs a jq expression over doc and returns its first result.
// An empty expression returns doc unchanged.
func ApplyQuery(ctx context.Context, expression string, doc value.Value) (value.Value, error) {
	if expression == "" {
		return doc, nil
	}

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("compile error: %w", err)
	}

	iter := code.RunWithContext(ctx, value.ToGo(doc))
	v, ok := iter.Next()
	if !ok {
		return nil, fmt.Errorf("query %q produced no result", expression)
	}
	if err, isErr := v.(error); isErr {
		return nil, err
	}
	return value.FromGo(v)
}
