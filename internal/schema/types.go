package schema

import (
	"strings"

	"github.com/roach88/mismatch/internal/value"
)

// Type is a structural type descriptor.
type Type interface {
	// Name is the display name used in messages.
	Name() string
	// Is reports whether v is a member of the type.
	Is(v value.Value) bool
}

// Wrapper is implemented by types that add a name, a constraint or laziness
// on top of another type without changing its shape.
type Wrapper interface {
	Type
	Underlying() Type
}

// LeafType is a type with no inspectable structure.
type LeafType struct {
	name string
	is   func(value.Value) bool
}

func (t *LeafType) Name() string { return t.name }

func (t *LeafType) Is(v value.Value) bool { return t.is(v) }

// Leaf builds a custom leaf type from a membership predicate.
func Leaf(name string, is func(value.Value) bool) *LeafType {
	return &LeafType{name: name, is: is}
}

// Unknown accepts every defined value.
func Unknown() *LeafType {
	return Leaf("unknown", func(v value.Value) bool { return v != nil })
}

// Never rejects every value. Tuples report their excess items against it.
func Never() *LeafType {
	return Leaf("never", func(value.Value) bool { return false })
}

// Null accepts only null.
func Null() *LeafType {
	return Leaf("null", func(v value.Value) bool {
		_, ok := v.(value.Null)
		return ok
	})
}

// String accepts strings.
func String() *LeafType {
	return Leaf("string", func(v value.Value) bool {
		_, ok := v.(value.String)
		return ok
	})
}

// Number accepts any finite number.
func Number() *LeafType {
	return Leaf("number", func(v value.Value) bool {
		return value.Kind(v) == value.KindNumber
	})
}

// Int accepts whole numbers, including integral floats.
func Int() *LeafType {
	return Leaf("Int", func(v value.Value) bool {
		switch n := v.(type) {
		case value.Int:
			return true
		case value.Float:
			return float64(n) == float64(int64(n))
		}
		return false
	})
}

// Boolean accepts true and false.
func Boolean() *LeafType {
	return Leaf("boolean", func(v value.Value) bool {
		_, ok := v.(value.Bool)
		return ok
	})
}

// Literal accepts exactly lit. Its name is lit's JSON form.
func Literal(lit value.Value) *LeafType {
	name := "undefined"
	if data, err := value.MarshalCanonical(lit); err == nil {
		name = string(data)
	}
	return Leaf(name, func(v value.Value) bool { return value.Equal(lit, v) })
}

// Property is a named member of an object type.
type Property struct {
	Name     string
	Type     Type
	Optional bool
}

// Field declares a required property.
func Field(name string, t Type) Property {
	return Property{Name: name, Type: t}
}

// OptionalField declares a property that may be absent.
func OptionalField(name string, t Type) Property {
	return Property{Name: name, Type: t, Optional: true}
}

// ObjectType is a record with named properties. Undeclared keys are allowed.
type ObjectType struct {
	name  string
	props []Property
}

// Object builds an object type. Properties keep their declaration order.
func Object(props ...Property) *ObjectType {
	parts := make([]string, len(props))
	for i, p := range props {
		sep := ": "
		if p.Optional {
			sep = "?: "
		}
		parts[i] = p.Name + sep + p.Type.Name()
	}
	name := "{}"
	if len(parts) > 0 {
		name = "{ " + strings.Join(parts, ", ") + " }"
	}
	return &ObjectType{name: name, props: props}
}

func (t *ObjectType) Name() string { return t.name }

func (t *ObjectType) Is(v value.Value) bool {
	obj, ok := v.(value.Object)
	if !ok {
		return false
	}
	for _, p := range t.props {
		actual := obj[p.Name]
		if actual == nil {
			if p.Optional {
				continue
			}
			return false
		}
		if !p.Type.Is(actual) {
			return false
		}
	}
	return true
}

// ArrayType is a homogeneous list.
type ArrayType struct {
	item Type
}

// Array builds a list type whose items all belong to item.
func Array(item Type) *ArrayType {
	return &ArrayType{item: item}
}

func (t *ArrayType) Name() string { return "Array<" + t.item.Name() + ">" }

func (t *ArrayType) Is(v value.Value) bool {
	arr, ok := v.(value.Array)
	if !ok {
		return false
	}
	for _, x := range arr {
		if !t.item.Is(x) {
			return false
		}
	}
	return true
}

// TupleType is a fixed-length list with a type per position.
type TupleType struct {
	items []Type
}

// Tuple builds a tuple type. Values with extra items are rejected.
func Tuple(items ...Type) *TupleType {
	return &TupleType{items: items}
}

func (t *TupleType) Name() string { return "[" + joinNames(t.items, ", ") + "]" }

func (t *TupleType) Is(v value.Value) bool {
	arr, ok := v.(value.Array)
	if !ok || len(arr) != len(t.items) {
		return false
	}
	for i, item := range t.items {
		if !item.Is(arr[i]) {
			return false
		}
	}
	return true
}

// UnionType accepts a value belonging to any member.
type UnionType struct {
	members []Type
}

// Union builds a union. Member order is significant for reporting.
func Union(members ...Type) *UnionType {
	return &UnionType{members: members}
}

func (t *UnionType) Name() string { return "(" + joinNames(t.members, " | ") + ")" }

func (t *UnionType) Is(v value.Value) bool {
	for _, m := range t.members {
		if m.Is(v) {
			return true
		}
	}
	return false
}

// IntersectionType accepts a value belonging to every member.
type IntersectionType struct {
	members []Type
}

// Intersection builds an intersection.
func Intersection(members ...Type) *IntersectionType {
	return &IntersectionType{members: members}
}

func (t *IntersectionType) Name() string { return "(" + joinNames(t.members, " & ") + ")" }

func (t *IntersectionType) Is(v value.Value) bool {
	for _, m := range t.members {
		if !m.Is(v) {
			return false
		}
	}
	return true
}

// RefinementType narrows a base type with a predicate.
type RefinementType struct {
	name    string
	base    Type
	pred    func(value.Value) bool
	message string
}

// Refine builds a refinement. message, if non-empty, is reported instead of
// a structural mismatch when pred rejects a value.
func Refine(base Type, name string, pred func(value.Value) bool, message string) *RefinementType {
	return &RefinementType{name: name, base: base, pred: pred, message: message}
}

func (t *RefinementType) Name() string { return t.name }

func (t *RefinementType) Is(v value.Value) bool { return t.base.Is(v) && t.pred(v) }

func (t *RefinementType) Underlying() Type { return t.base }

// Check applies only the predicate.
func (t *RefinementType) Check(v value.Value) bool { return t.pred(v) }

// Message returns the custom failure message, possibly empty.
func (t *RefinementType) Message() string { return t.message }

// ReadonlyType marks a type as immutable. It has no effect on membership.
type ReadonlyType struct {
	base Type
}

// Readonly wraps base.
func Readonly(base Type) *ReadonlyType {
	return &ReadonlyType{base: base}
}

func (t *ReadonlyType) Name() string { return "Readonly<" + t.base.Name() + ">" }

func (t *ReadonlyType) Is(v value.Value) bool { return t.base.Is(v) }

func (t *ReadonlyType) Underlying() Type { return t.base }

// LazyType defers construction of its definition, which allows recursive
// types. The definition is rebuilt on every use.
type LazyType struct {
	name    string
	resolve func() Type
}

// Lazy builds a lazily resolved type.
func Lazy(name string, resolve func() Type) *LazyType {
	return &LazyType{name: name, resolve: resolve}
}

func (t *LazyType) Name() string { return t.name }

func (t *LazyType) Is(v value.Value) bool { return t.resolve().Is(v) }

func (t *LazyType) Underlying() Type { return t.resolve() }

// NamedType gives another type a display name.
type NamedType struct {
	name string
	base Type
}

// Named aliases t under name.
func Named(name string, t Type) *NamedType {
	return &NamedType{name: name, base: t}
}

func (t *NamedType) Name() string { return t.name }

func (t *NamedType) Is(v value.Value) bool { return t.base.Is(v) }

func (t *NamedType) Underlying() Type { return t.base }

func joinNames(types []Type, sep string) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name()
	}
	return strings.Join(names, sep)
}
