package schema

// maxUnwrap bounds wrapper chains so a lazy type that resolves to itself
// cannot hang a caller.
const maxUnwrap = 64

// Unwrap strips every wrapper around t. Lazy types are resolved each call.
func Unwrap(t Type) Type {
	for i := 0; i < maxUnwrap; i++ {
		w, ok := t.(Wrapper)
		if !ok {
			return t
		}
		t = w.Underlying()
	}
	return t
}

// RefinementOf returns the outermost refinement around t, looking through
// Readonly, Lazy and Named wrappers but not through other refinements.
func RefinementOf(t Type) (*RefinementType, bool) {
	for i := 0; i < maxUnwrap; i++ {
		switch w := t.(type) {
		case *RefinementType:
			return w, true
		case Wrapper:
			t = w.Underlying()
		default:
			return nil, false
		}
	}
	return nil, false
}

// IsUnion reports whether t is a union once unwrapped.
func IsUnion(t Type) bool {
	_, ok := Members(t)
	return ok
}

// Members returns the alternatives of a union type.
func Members(t Type) ([]Type, bool) {
	if t == nil {
		return nil, false
	}
	u, ok := Unwrap(t).(*UnionType)
	if !ok {
		return nil, false
	}
	return u.members, true
}

// IsIntersection reports whether t is an intersection once unwrapped.
func IsIntersection(t Type) bool {
	_, ok := Parts(t)
	return ok
}

// Parts returns the members of an intersection type.
func Parts(t Type) ([]Type, bool) {
	if t == nil {
		return nil, false
	}
	in, ok := Unwrap(t).(*IntersectionType)
	if !ok {
		return nil, false
	}
	return in.members, true
}

// Properties returns the named properties of an object-shaped type.
// Intersections merge the properties of their object-shaped members; a name
// declared twice keeps its first position and first declaration.
func Properties(t Type) ([]Property, bool) {
	return properties(t, 0)
}

func properties(t Type, depth int) ([]Property, bool) {
	if t == nil || depth > maxUnwrap {
		return nil, false
	}
	switch u := Unwrap(t).(type) {
	case *ObjectType:
		return u.props, true
	case *IntersectionType:
		var merged []Property
		seen := make(map[string]bool)
		found := false
		for _, m := range u.members {
			props, ok := properties(m, depth+1)
			if !ok {
				continue
			}
			found = true
			for _, p := range props {
				if seen[p.Name] {
					continue
				}
				seen[p.Name] = true
				merged = append(merged, p)
			}
		}
		return merged, found
	}
	return nil, false
}

// ArrayItem returns the item type of an array type.
func ArrayItem(t Type) (Type, bool) {
	if t == nil {
		return nil, false
	}
	a, ok := Unwrap(t).(*ArrayType)
	if !ok {
		return nil, false
	}
	return a.item, true
}

// TupleItems returns the positional item types of a tuple type.
func TupleItems(t Type) ([]Type, bool) {
	if t == nil {
		return nil, false
	}
	tu, ok := Unwrap(t).(*TupleType)
	if !ok {
		return nil, false
	}
	return tu.items, true
}
