package value

import (
	"reflect"

	"golang.org/x/text/unicode/norm"
)

// Equal reports whether a and b are the same value.
//
// Equality is structural: strings compare NFC-normalized, Int(1) equals
// Float(1), and two undefined values are equal. Null never equals undefined.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case String:
		bv, ok := b.(String)
		if !ok {
			return false
		}
		return av == bv || norm.NFC.String(string(av)) == norm.NFC.String(string(bv))
	case Int, Float:
		an, aok := number(a)
		bn, bok := number(b)
		return aok && bok && an == bn
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv, ok := b.(Object)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, x := range av {
			y, present := bv[k]
			if !present || !Equal(x, y) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// number widens Int and Float to float64.
func number(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Float:
		return float64(n), true
	default:
		return 0, false
	}
}

// Same is Equal with a constant-time answer for containers that share
// storage. Values handed down a validation chain are the same slices and
// maps, so comparing them never walks their elements.
func Same(a, b Value) bool {
	switch av := a.(type) {
	case Array:
		if bv, ok := b.(Array); ok && len(av) == len(bv) && len(av) > 0 && &av[0] == &bv[0] {
			return true
		}
	case Object:
		if bv, ok := b.(Object); ok && len(av) == len(bv) &&
			reflect.ValueOf(av).UnsafePointer() == reflect.ValueOf(bv).UnsafePointer() {
			return true
		}
	}
	return Equal(a, b)
}
