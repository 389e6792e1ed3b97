package report

import (
	"github.com/roach88/mismatch/internal/schema"
	"github.com/roach88/mismatch/internal/validate"
	"github.com/roach88/mismatch/internal/value"
)

// pending is a failure chain waiting to be processed at the next level.
type pending struct {
	context         validate.Context
	message         string
	parentExhausted bool
}

// record is one failure chain at the current level with its head hoisted.
type record struct {
	key     string
	typ     schema.Type
	actual  value.Value
	message string
	rest    validate.Context

	// exhausted is set when every entry below the head carries the head's
	// actual value.
	exhausted bool
	// levelsUntilExhaustion is the first index at which consecutive entries
	// of the chain carry different values, or -1.
	levelsUntilExhaustion int
	parentExhausted       bool
}

func fromFailures(failures []validate.Failure) []pending {
	out := make([]pending, len(failures))
	for i, f := range failures {
		out[i] = pending{context: f.Context, message: f.Message}
	}
	return out
}

// normalize pops the head of p. Chains with nothing left are dropped.
func normalize(p pending) (record, bool) {
	if len(p.context) == 0 {
		return record{}, false
	}
	head := p.context[0]
	rest := p.context[1:]

	// Exhausted exactly when no two consecutive entries differ.
	levels := -1
	for i := 0; i+1 < len(p.context); i++ {
		if !value.Same(p.context[i].Actual, p.context[i+1].Actual) {
			levels = i
			break
		}
	}
	exhausted := levels == -1

	return record{
		key:                   head.Key,
		typ:                   head.Type,
		actual:                head.Actual,
		message:               p.message,
		rest:                  rest,
		exhausted:             exhausted,
		levelsUntilExhaustion: levels,
		parentExhausted:       p.parentExhausted,
	}, true
}

func normalizeAll(items []pending) []record {
	out := make([]record, 0, len(items))
	for _, p := range items {
		if r, ok := normalize(p); ok {
			out = append(out, r)
		}
	}
	return out
}

// branch holds the records that share a key at the current level.
type branch struct {
	key     string
	records []record
}

// next returns the chains of b for the level below.
func (b branch) next() []pending {
	out := make([]pending, len(b.records))
	for i, r := range b.records {
		out[i] = pending{context: r.rest, message: r.message, parentExhausted: r.exhausted}
	}
	return out
}

// group buckets records by key, keeping keys in first-seen order.
func group(records []record) []branch {
	var branches []branch
	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.key]
		if !ok {
			i = len(branches)
			index[r.key] = i
			branches = append(branches, branch{key: r.key})
		}
		branches[i].records = append(branches[i].records, r)
	}
	return branches
}
