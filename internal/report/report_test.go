package report

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mismatch/internal/schema"
	"github.com/roach88/mismatch/internal/validate"
	"github.com/roach88/mismatch/internal/value"
)

func num() schema.Type { return schema.Number() }

func obj(props ...schema.Property) schema.Type { return schema.Object(props...) }

func field(name string, t schema.Type) schema.Property { return schema.Field(name, t) }

// evenA rejects objects whose "a" is an odd integer.
func evenA(v value.Value) bool {
	o, ok := v.(value.Object)
	if !ok {
		return false
	}
	n, ok := o["a"].(value.Int)
	return ok && n%2 == 0
}

func positive(v value.Value) bool {
	n, ok := v.(value.Int)
	return ok && n > 0
}

func assertReport(t *testing.T, typ schema.Type, v value.Value, wantOne string, wantAll []string, opts ...Option) {
	t.Helper()
	res := validate.Decode(typ, v)
	require.False(t, res.OK(), "value unexpectedly valid")

	got, ok := One(res, opts...)
	require.True(t, ok)
	assert.Equal(t, wantOne, got)

	if diff := cmp.Diff(wantAll, All(res, opts...)); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestReport_MissingPropertiesCombined(t *testing.T) {
	typ := obj(field("a", num()), field("b", num()), field("c", num()))

	assertReport(t, typ, value.Object{"b": value.Int(42)},
		"missing required properties a, c",
		[]string{"missing required properties a, c"})
}

func TestReport_UnionPicksOverlappingVariant(t *testing.T) {
	typ := schema.Union(
		obj(field("a", num())),
		obj(field("b", num()), field("c", num())),
	)

	assertReport(t, typ, value.Object{"c": value.Int(42)},
		"missing required property b",
		[]string{"missing required property b"})
}

func TestReport_UnionWithoutOverlapMismatchesAtRoot(t *testing.T) {
	typ := schema.Union(
		obj(field("a", num()), field("b", schema.Null())),
		obj(field("c", schema.String()), field("d", num())),
	)
	want := "expected ({ a: number, b: null } | { c: string, d: number }), got null"

	assertReport(t, typ, value.Null{}, want, []string{want})
}

func TestReport_IntersectionMissingReportedSeparately(t *testing.T) {
	typ := schema.Intersection(
		obj(field("a", num())),
		obj(field("b", schema.String())),
	)

	assertReport(t, typ, value.Object{},
		"missing required property a",
		[]string{"missing required property a", "missing required property b"})
}

func TestReport_PathSkipsUnionSegment(t *testing.T) {
	typ := obj(field("config", schema.Union(
		obj(field("server", obj(field("port", num())))),
		obj(field("file", schema.String())),
	)))
	v := value.Object{"config": value.Object{"server": value.Object{"port": value.String("80")}}}
	want := `config.server.port: expected number, got "80"`

	assertReport(t, typ, v, want, []string{want})
}

func TestReport_ArrayIndexPath(t *testing.T) {
	typ := obj(field("items", schema.Array(obj(field("name", schema.String())))))
	v := value.Object{"items": value.Array{
		value.Object{"name": value.String("ok")},
		value.Object{"name": value.Int(3)},
		value.Object{},
	}}

	assertReport(t, typ, v,
		"items[1].name: expected string, got 3",
		[]string{
			"items[1].name: expected string, got 3",
			"items[2]: missing required property name",
		})
}

func TestReport_MismatchOfWrongContainer(t *testing.T) {
	typ := obj(field("tags", schema.Array(schema.String())))
	v := value.Object{"tags": value.Object{"first": value.String("x")}}
	want := "tags: expected Array<string>, got {first}"

	assertReport(t, typ, v, want, []string{want})
}

func TestReport_LeafUnionMismatch(t *testing.T) {
	typ := obj(field("id", schema.Union(num(), schema.String())))
	want := "id: expected (number | string), got true"

	assertReport(t, typ, value.Object{"id": value.Bool(true)}, want, []string{want})
}

func TestReport_MissingUnionProperty(t *testing.T) {
	typ := obj(field("id", schema.Union(num(), schema.String())))
	want := "missing required property id"

	assertReport(t, typ, value.Object{}, want, []string{want})
}

// All variants score the same; the first one in declaration order is kept
// by One, and every tied variant is reported by All.
func TestReport_ZeroSimilarityPicksFirstVariant(t *testing.T) {
	typ := schema.Union(schema.Array(schema.String()), schema.Array(schema.Boolean()))

	assertReport(t, typ, value.Array{value.Int(1)},
		"[0]: expected string, got 1",
		[]string{"[0]: expected string, got 1", "[0]: expected boolean, got 1"})

	shapes := schema.Union(obj(field("a", num())), obj(field("b", num())))
	assertReport(t, shapes, value.Object{"c": value.Int(1)},
		"missing required property a",
		[]string{"missing required property a", "missing required property b"})
}

// Mismatches directly under an intersection are reported one segment up,
// without the member key.
func TestReport_IntersectionDropsLastSegment(t *testing.T) {
	typ := obj(field("x", schema.Intersection(
		obj(field("a", num())),
		obj(field("b", schema.String())),
	)))

	assertReport(t, typ, value.Object{"x": value.Int(5)},
		"expected { a: number }, got 5",
		[]string{"expected { a: number }, got 5", "expected { b: string }, got 5"})
}

func TestReport_IntersectionDropsLastSegmentForCustomMessage(t *testing.T) {
	typ := obj(field("x", schema.Intersection(
		schema.Refine(obj(field("a", num())), "EvenA", evenA, "a must be even"),
		obj(field("b", schema.String())),
	)))
	v := value.Object{"x": value.Object{"a": value.Int(3), "b": value.String("s")}}

	assertReport(t, typ, v, "a must be even", []string{"a must be even"})
}

func TestReport_CustomMessageAtParentLocation(t *testing.T) {
	typ := obj(field("limits", obj(field("max", schema.Refine(num(), "Positive", positive, "must be positive")))))
	v := value.Object{"limits": value.Object{"max": value.Int(-1)}}

	assertReport(t, typ, v, "limits: must be positive", []string{"limits: must be positive"})
}

func TestReport_RefinementWithoutMessageIsMismatch(t *testing.T) {
	typ := obj(field("n", schema.Refine(num(), "Positive", positive, "")))
	want := "n: expected Positive, got -4"

	assertReport(t, typ, value.Object{"n": value.Int(-4)}, want, []string{want})
}

// A union member that fails as a whole and wins the variant selection is
// still reported.
func TestReport_SelectedVariantFailingAsWhole(t *testing.T) {
	typ := schema.Union(
		schema.Refine(obj(field("a", num())), "EvenA", evenA, "a must be even"),
		obj(field("b", num())),
	)

	assertReport(t, typ, value.Object{"a": value.Int(3)}, "a must be even", []string{"a must be even"})
}

func TestReport_TupleExcessItems(t *testing.T) {
	typ := schema.Tuple(num(), schema.String())
	v := value.Array{value.Int(1), value.String("a"), value.Bool(true)}
	want := "[2]: expected never, got true"

	assertReport(t, typ, v, want, []string{want})
}

func TestReport_RecursiveType(t *testing.T) {
	var node schema.Type
	node = schema.Lazy("Node", func() schema.Type {
		return obj(field("id", num()), schema.OptionalField("next", node))
	})
	v := value.Object{"id": value.Int(1), "next": value.Object{"id": value.Int(2), "next": value.Object{}}}
	want := "next.next: missing required property id"

	assertReport(t, node, v, want, []string{want})
}

func TestReport_Success(t *testing.T) {
	res := validate.Decode(num(), value.Int(1))

	msg, ok := One(res)
	assert.False(t, ok)
	assert.Empty(t, msg)
	assert.Nil(t, All(res))
}

func TestReport_OverrideMissingOnly(t *testing.T) {
	opts := []Option{WithMessages(Messages{
		Missing: func(keys []string, path []string) string {
			return "need " + strings.Join(keys, "+")
		},
	})}

	assertReport(t,
		obj(field("a", num()), field("b", num()), field("c", num())),
		value.Object{"b": value.Int(42)},
		"need a+c", []string{"need a+c"}, opts...)

	assertReport(t,
		schema.Union(obj(field("a", num())), obj(field("b", num()), field("c", num()))),
		value.Object{"c": value.Int(42)},
		"need b", []string{"need b"}, opts...)

	mismatch := "expected ({ a: number } | { b: number }), got null"
	assertReport(t,
		schema.Union(obj(field("a", num())), obj(field("b", num()))),
		value.Null{}, mismatch, []string{mismatch}, opts...)

	custom := "limits: must be positive"
	assertReport(t,
		obj(field("limits", obj(field("max", schema.Refine(num(), "Positive", positive, "must be positive"))))),
		value.Object{"limits": value.Object{"max": value.Int(0)}},
		custom, []string{custom}, opts...)
}

func TestReport_OverridePathFeedsDefaults(t *testing.T) {
	opts := []Option{WithMessages(Messages{
		Path: func(segments []string) string { return "/" + strings.Join(segments, "/") },
	})}

	assertReport(t,
		obj(field("a", obj(field("b", num())))),
		value.Object{"a": value.Object{"b": value.String("x")}},
		`/a/b: expected number, got "x"`,
		[]string{`/a/b: expected number, got "x"`}, opts...)
}

func TestReport_LogsLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	typ := schema.Union(obj(field("a", num())), obj(field("b", num()), field("c", num())))
	res := validate.Decode(typ, value.Object{"c": value.Int(42)})
	_, ok := One(res, WithLogger(logger))
	require.True(t, ok)

	out := buf.String()
	assert.Contains(t, out, "report level")
	assert.Contains(t, out, "variant scored")
	assert.Contains(t, out, "similarity=1.5")
}

func TestReporters(t *testing.T) {
	typ := schema.Intersection(obj(field("a", num())), obj(field("b", schema.String())))
	res := validate.Decode(typ, value.Object{})

	var r Reporter = FirstReporter{}
	assert.Equal(t, []string{"missing required property a"}, r.Report(res))

	r = AllReporter{}
	assert.Equal(t, []string{"missing required property a", "missing required property b"}, r.Report(res))

	assert.Empty(t, FirstReporter{}.Report(validate.Decode(num(), value.Int(1))))
}

func TestReport_UnionOfLargeArraysScoresItemsOnce(t *testing.T) {
	const n = 1000
	calls := 0
	str := schema.Leaf("string", func(v value.Value) bool {
		calls++
		_, ok := v.(value.String)
		return ok
	})
	typ := schema.Union(
		schema.Array(obj(field("name", str))),
		schema.Array(obj(field("id", num()))),
	)

	items := make(value.Array, n)
	for i := range items {
		items[i] = value.Object{"name": value.Int(i)}
	}

	res := validate.Decode(typ, items)
	require.False(t, res.OK())

	calls = 0
	msg, ok := One(res)
	require.True(t, ok)
	assert.Equal(t, "[0].name: expected string, got 0", msg)
	assert.LessOrEqual(t, calls, n, "scoring checks each item once")
}
