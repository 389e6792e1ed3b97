package cueschema

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"

	"github.com/roach88/mismatch/internal/schema"
	"github.com/roach88/mismatch/internal/value"
)

// maxEagerDepth bounds how deep FromValue converts nested values before
// deferring to lazy conversion.
const maxEagerDepth = 32

// attrKey is the attribute carrying a custom failure message.
const attrKey = "mismatch"

// FromValue converts a CUE value into a schema type. Definitions keep their
// label as the type name.
func FromValue(v cue.Value) schema.Type {
	t := shape(v, 0)
	if name := definitionName(v); name != "" {
		return schema.Named(name, t)
	}
	return t
}

func shape(v cue.Value, depth int) schema.Type {
	op, args := expr(v)

	if op == cue.OrOp && len(args) > 1 {
		members := make([]schema.Type, len(args))
		for i, a := range args {
			members[i] = child(a, depth)
		}
		return schema.Union(members...)
	}

	if op == cue.AndOp && len(args) > 1 && allStructs(args) {
		parts := make([]schema.Type, len(args))
		for i, a := range args {
			parts[i] = child(a, depth)
		}
		return schema.Intersection(parts...)
	}

	switch v.IncompleteKind() {
	case cue.StructKind:
		if t, ok := object(v, depth); ok {
			return t
		}
	case cue.ListKind:
		if t, ok := list(v, depth); ok {
			return t
		}
	}
	return leaf(v)
}

// expr looks through single-operand expressions such as references.
func expr(v cue.Value) (cue.Op, []cue.Value) {
	op, args := v.Expr()
	for i := 0; op == cue.NoOp && len(args) == 1 && i < 4; i++ {
		op, args = args[0].Expr()
	}
	return op, args
}

func allStructs(vals []cue.Value) bool {
	for _, v := range vals {
		if v.IncompleteKind() != cue.StructKind {
			return false
		}
	}
	return true
}

func object(v cue.Value, depth int) (schema.Type, bool) {
	iter, err := v.Fields(cue.Optional(true))
	if err != nil {
		return nil, false
	}

	var props []schema.Property
	for iter.Next() {
		t := field(iter.Value(), depth)
		if iter.IsOptional() {
			props = append(props, schema.OptionalField(iter.Label(), t))
		} else {
			props = append(props, schema.Field(iter.Label(), t))
		}
	}
	return schema.Object(props...), true
}

func list(v cue.Value, depth int) (schema.Type, bool) {
	if v.Allows(cue.AnyIndex) {
		elem := v.LookupPath(cue.MakePath(cue.AnyIndex))
		if !elem.Exists() {
			return schema.Array(schema.Unknown()), true
		}
		return schema.Array(child(elem, depth)), true
	}

	iter, err := v.List()
	if err != nil {
		return nil, false
	}
	var items []schema.Type
	for iter.Next() {
		items = append(items, child(iter.Value(), depth))
	}
	return schema.Tuple(items...), true
}

// field converts a struct field, honouring @mismatch on scalar fields.
func field(v cue.Value, depth int) schema.Type {
	attr := v.Attribute(attrKey)
	if attr.Err() != nil || !isScalar(v) {
		return child(v, depth)
	}
	msg, err := attr.String(0)
	if err != nil || msg == "" {
		return child(v, depth)
	}
	return schema.Refine(kindOf(v), compact(v), member(v), msg)
}

// child converts a nested value. References to definitions, and anything
// nested too deeply, are converted lazily so recursive definitions
// terminate.
func child(v cue.Value, depth int) schema.Type {
	name := referenceName(v)
	if name == "" && depth < maxEagerDepth {
		return shape(v, depth+1)
	}
	if name == "" {
		name = compact(v)
	}
	return schema.Lazy(name, func() schema.Type { return shape(resolve(v), 0) })
}

// resolve returns the definition a reference points to, looked up from its
// root. A reference evaluated in place inside its own definition does not
// expose the definition's fields.
func resolve(v cue.Value) cue.Value {
	root, p := v.ReferencePath()
	if len(p.Selectors()) == 0 {
		return v
	}
	if def := root.LookupPath(p); def.Exists() {
		return def
	}
	return v
}

func leaf(v cue.Value) schema.Type {
	return schema.Leaf(compact(v), member(v))
}

// member reports membership by unifying the candidate with v and requiring
// a concrete result.
func member(v cue.Value) func(value.Value) bool {
	return func(x value.Value) bool {
		if x == nil {
			return false
		}
		w := v.Unify(v.Context().Encode(value.ToGo(x)))
		return w.Validate(cue.Concrete(true)) == nil
	}
}

func isScalar(v cue.Value) bool {
	k := v.IncompleteKind()
	return k&(cue.StructKind|cue.ListKind) == 0
}

// kindOf returns the plain type for the kind of a constrained scalar.
func kindOf(v cue.Value) schema.Type {
	switch v.IncompleteKind() {
	case cue.StringKind:
		return schema.String()
	case cue.IntKind:
		return schema.Int()
	case cue.FloatKind, cue.NumberKind:
		return schema.Number()
	case cue.BoolKind:
		return schema.Boolean()
	case cue.NullKind:
		return schema.Null()
	default:
		return schema.Unknown()
	}
}

func definitionName(v cue.Value) string {
	sels := v.Path().Selectors()
	if len(sels) == 0 {
		return ""
	}
	last := sels[len(sels)-1]
	if !last.IsDefinition() {
		return ""
	}
	return last.String()
}

func referenceName(v cue.Value) string {
	_, p := v.ReferencePath()
	sels := p.Selectors()
	if len(sels) == 0 {
		return ""
	}
	last := sels[len(sels)-1]
	if !last.IsDefinition() {
		return ""
	}
	return last.String()
}

// compact renders v as single-line CUE.
func compact(v cue.Value) string {
	return strings.Join(strings.Fields(fmt.Sprint(v)), " ")
}
