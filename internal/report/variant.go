package report

import (
	"log/slog"
	"math"
	"reflect"

	"github.com/roach88/mismatch/internal/schema"
	"github.com/roach88/mismatch/internal/validate"
	"github.com/roach88/mismatch/internal/value"
)

// score ranks a union branch. Similarity decides; narrowing breaks ties.
type score struct {
	similarity float64
	narrowing  int
}

func (s score) less(o score) bool {
	if s.similarity != o.similarity {
		return s.similarity < o.similarity
	}
	return s.narrowing < o.narrowing
}

// similarity estimates how close actual is to the shape of t. Higher is
// closer; -1 means t has no shape the value can be compared with.
func similarity(t schema.Type, actual value.Value) float64 {
	if props, ok := schema.Properties(t); ok {
		if obj, isObj := actual.(value.Object); isObj {
			return objectSimilarity(props, obj)
		}
	}
	if item, ok := schema.ArrayItem(t); ok {
		if arr, isArr := actual.(value.Array); isArr {
			matched := 0
			for _, x := range arr {
				if validate.Is(item, x) {
					matched++
				}
			}
			return float64(matched)
		}
	}
	if items, ok := schema.TupleItems(t); ok {
		if arr, isArr := actual.(value.Array); isArr {
			return math.Max(0, float64(len(arr)-len(items)))
		}
	}
	return -1
}

// objectSimilarity rewards shared keys and, among shapes sharing none,
// prefers the smaller one.
func objectSimilarity(props []schema.Property, obj value.Object) float64 {
	matched := 0
	for _, p := range props {
		if obj.Has(p.Name) {
			matched++
		}
	}
	if matched == 0 {
		return 1 / float64(len(props)+1)
	}
	miss := float64(len(props) - matched)
	return 1 + float64(matched) - miss/(miss+1)
}

// measured is a similarity already computed for one (type, value) pair.
type measured struct {
	typ        schema.Type
	actual     value.Value
	similarity float64
}

// scoreBranch measures each distinct (type, value) pair of b once: the
// records of a branch usually share both.
func scoreBranch(b branch) score {
	s := score{similarity: math.Inf(-1), narrowing: math.MinInt}
	var seen []measured
	for _, r := range b.records {
		sim, ok := lookupSimilarity(seen, r)
		if !ok {
			sim = similarity(r.typ, r.actual)
			seen = append(seen, measured{typ: r.typ, actual: r.actual, similarity: sim})
		}
		s.similarity = math.Max(s.similarity, sim)
		s.narrowing = max(s.narrowing, r.levelsUntilExhaustion)
	}
	return s
}

func lookupSimilarity(seen []measured, r record) (float64, bool) {
	for _, m := range seen {
		if sameType(m.typ, r.typ) && value.Same(m.actual, r.actual) {
			return m.similarity, true
		}
	}
	return 0, false
}

// sameType compares descriptors by identity. Descriptors of incomparable
// dynamic types are never the same.
func sameType(a, b schema.Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	return ta == tb && ta.Comparable() && a == b
}

// selectVariants keeps every branch tied for the best score when the
// ambient type is a union. Other ambient types keep all branches.
func selectVariants(branches []branch, ambient schema.Type, logger *slog.Logger) []branch {
	if !schema.IsUnion(ambient) || len(branches) == 0 {
		return branches
	}

	scores := make([]score, len(branches))
	best := 0
	for i, b := range branches {
		scores[i] = scoreBranch(b)
		logger.Debug("variant scored",
			"key", b.key,
			"type", b.records[0].typ.Name(),
			"similarity", scores[i].similarity,
			"narrowing", scores[i].narrowing)
		if scores[best].less(scores[i]) {
			best = i
		}
	}

	var selected []branch
	for i, b := range branches {
		if scores[i] == scores[best] {
			selected = append(selected, b)
		}
	}
	return selected
}
