package value

import (
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface representing decoded input values.
// Only Null, String, Int, Float, Bool, Array, and Object implement this.
// The nil Value stands for undefined.
type Value interface {
	value() // Sealed - only these types implement it
}

// Null represents a JSON null value.
type Null struct{}

func (Null) value() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// String represents a string value.
type String string

func (String) value() {}

// Int represents an integral number.
type Int int64

func (Int) value() {}

// Float represents a non-integral number.
type Float float64

func (Float) value() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) value() {}

// Array represents an ordered list of values.
type Array []Value

func (Array) value() {}

// Object represents a map of string keys to values.
// Use SortedKeys() for deterministic iteration.
type Object map[string]Value

func (Object) value() {}

// Kind names used by Kind.
const (
	KindUndefined = "undefined"
	KindNull      = "null"
	KindString    = "string"
	KindNumber    = "number"
	KindBoolean   = "boolean"
	KindArray     = "array"
	KindObject    = "object"
)

// Kind returns the JSON kind of v. Int and Float are both "number".
func Kind(v Value) string {
	switch v.(type) {
	case nil:
		return KindUndefined
	case Null:
		return KindNull
	case String:
		return KindString
	case Int, Float:
		return KindNumber
	case Bool:
		return KindBoolean
	case Array:
		return KindArray
	case Object:
		return KindObject
	default:
		panic(fmt.Sprintf("value: unknown Value type %T", v))
	}
}

// Pair represents a key-value pair for Object construction.
type Pair struct {
	Key   string
	Value Value
}

// O is a shorthand for Pair for ergonomic construction.
// Example: NewObject(O("name", String("cart")), O("count", Int(5)))
func O(key string, v Value) Pair {
	return Pair{Key: key, Value: v}
}

// NewObject creates an Object from key-value pairs.
func NewObject(pairs ...Pair) Object {
	obj := make(Object, len(pairs))
	for _, p := range pairs {
		obj[p.Key] = p.Value
	}
	return obj
}

// NewArray creates an Array from values.
func NewArray(vals ...Value) Array {
	return Array(vals)
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings uses UTF-8 byte order, which differs outside the BMP.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// Has reports whether key is present in obj, even if its value is Null.
func (obj Object) Has(key string) bool {
	_, ok := obj[key]
	return ok
}

// compareKeysRFC8785 compares strings using UTF-16 code unit ordering
// as required by RFC 8785 (Canonical JSON).
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	// If all compared units are equal, shorter string comes first
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// MarshalJSON implements json.Marshaler for Object with sorted keys.
// NOTE: not canonical (HTML escaping applies). Use MarshalCanonical for
// comparisons.
func (obj Object) MarshalJSON() ([]byte, error) {
	return marshalCanonicalObject(obj, false)
}

// MarshalJSON implements json.Marshaler for Array.
func (arr Array) MarshalJSON() ([]byte, error) {
	return marshalCanonicalArray(arr, false)
}

// Marshal marshals a Value to JSON bytes. Undefined marshals as null.
func Marshal(v Value) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}
