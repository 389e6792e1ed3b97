// Package validate checks values against schema types and records every
// failure together with the chain of types that led to it.
package validate

import (
	"strconv"

	"github.com/roach88/mismatch/internal/schema"
	"github.com/roach88/mismatch/internal/value"
)

// ContextEntry is one step of a failure chain: the key used to reach a
// value, the type it was checked against and the value found there.
// Actual is nil when the key was absent.
type ContextEntry struct {
	Key    string
	Type   schema.Type
	Actual value.Value
}

// Context is a failure chain ordered from the root to the failing leaf.
type Context []ContextEntry

// with returns a copy of c extended by one entry. Sibling branches must not
// share a backing array.
func (c Context) with(key string, t schema.Type, actual value.Value) Context {
	out := make(Context, len(c), len(c)+1)
	copy(out, c)
	return append(out, ContextEntry{Key: key, Type: t, Actual: actual})
}

// Keys returns the key of every entry in the chain.
func (c Context) Keys() []string {
	keys := make([]string, len(c))
	for i, e := range c {
		keys[i] = e.Key
	}
	return keys
}

// Failure is a single terminal failure. Message is set by refinements that
// carry a custom message.
type Failure struct {
	Context Context
	Message string
}

// Result is the outcome of Decode.
type Result struct {
	Value  value.Value
	Errors []Failure
}

// OK reports whether validation succeeded.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Decode validates v against t. The root of every failure chain has an
// empty key.
//
// Unions record one entry per member keyed by the member index and succeed
// as soon as one member does. Intersections record one entry per member
// keyed the same way and keep the failures of all members. Objects record
// one entry per declared property; optional properties that are absent are
// skipped. Arrays and tuples record one entry per checked position. Items
// past the end of a tuple fail against schema.Never.
func Decode(t schema.Type, v value.Value) Result {
	ctx := Context{{Key: "", Type: t, Actual: v}}
	return Result{Value: v, Errors: decode(t, v, ctx)}
}

// Is reports whether v belongs to t, by the same rules as Decode.
func Is(t schema.Type, v value.Value) bool {
	return Decode(t, v).OK()
}

func fail(ctx Context) []Failure {
	return []Failure{{Context: ctx}}
}

func decode(t schema.Type, v value.Value, ctx Context) []Failure {
	if ref, ok := schema.RefinementOf(t); ok {
		if errs := decode(ref.Underlying(), v, ctx); len(errs) > 0 {
			return errs
		}
		if ref.Check(v) {
			return nil
		}
		return []Failure{{Context: ctx, Message: ref.Message()}}
	}

	if members, ok := schema.Members(t); ok {
		if len(members) == 0 {
			return fail(ctx)
		}
		var errs []Failure
		for i, m := range members {
			sub := decode(m, v, ctx.with(strconv.Itoa(i), m, v))
			if len(sub) == 0 {
				return nil
			}
			errs = append(errs, sub...)
		}
		return errs
	}

	if parts, ok := schema.Parts(t); ok {
		var errs []Failure
		for i, p := range parts {
			errs = append(errs, decode(p, v, ctx.with(strconv.Itoa(i), p, v))...)
		}
		return errs
	}

	if props, ok := schema.Properties(t); ok {
		obj, isObj := v.(value.Object)
		if !isObj {
			return fail(ctx)
		}
		var errs []Failure
		for _, p := range props {
			actual := obj[p.Name]
			if actual == nil && p.Optional {
				continue
			}
			errs = append(errs, decode(p.Type, actual, ctx.with(p.Name, p.Type, actual))...)
		}
		return errs
	}

	if item, ok := schema.ArrayItem(t); ok {
		arr, isArr := v.(value.Array)
		if !isArr {
			return fail(ctx)
		}
		var errs []Failure
		for i, x := range arr {
			errs = append(errs, decode(item, x, ctx.with(strconv.Itoa(i), item, x))...)
		}
		return errs
	}

	if items, ok := schema.TupleItems(t); ok {
		arr, isArr := v.(value.Array)
		if !isArr {
			return fail(ctx)
		}
		var errs []Failure
		for i, item := range items {
			var x value.Value
			if i < len(arr) {
				x = arr[i]
			}
			errs = append(errs, decode(item, x, ctx.with(strconv.Itoa(i), item, x))...)
		}
		for i := len(items); i < len(arr); i++ {
			errs = append(errs, fail(ctx.with(strconv.Itoa(i), schema.Never(), arr[i]))...)
		}
		return errs
	}

	if !t.Is(v) {
		return fail(ctx)
	}
	return nil
}
