package testutil

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/roach88/mismatch/internal/schema"
	"github.com/roach88/mismatch/internal/validate"
	"github.com/roach88/mismatch/internal/value"
)

// Generator produces pseudo-random schema types and values for property
// tests. The same seed always yields the same sequence.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Generator struct {
	mu   sync.Mutex
	seed uint64
	rnd  *rand.Rand
	seq  int
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	g := &Generator{seed: seed}
	g.reset()
	return g
}

// Reset rewinds the generator to its seed.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
}

func (g *Generator) reset() {
	g.rnd = rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	g.seq = 0
}

var propNames = []string{"id", "name", "kind", "count", "tags", "owner", "items", "meta"}

var literals = []value.Value{value.String("on"), value.String("off"), value.Int(7)}

// Type returns a random type nested at most depth levels deep.
func (g *Generator) Type(depth int) schema.Type {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.typ(depth)
}

func (g *Generator) typ(depth int) schema.Type {
	if depth <= 0 {
		return g.leaf()
	}
	switch g.rnd.IntN(9) {
	case 0, 1:
		return g.object(depth, g.rnd.Perm(len(propNames)))
	case 2:
		return schema.Array(g.typ(depth - 1))
	case 3:
		n := 1 + g.rnd.IntN(3)
		items := make([]schema.Type, n)
		for i := range items {
			items[i] = g.typ(depth - 1)
		}
		return schema.Tuple(items...)
	case 4, 5:
		n := 2 + g.rnd.IntN(2)
		members := make([]schema.Type, n)
		for i := range members {
			members[i] = g.typ(depth - 1)
		}
		return schema.Union(members...)
	case 6:
		perm := g.rnd.Perm(len(propNames))
		return schema.Intersection(g.object(depth, perm[:3]), g.object(depth, perm[3:6]))
	case 7:
		g.seq++
		return schema.Named(fmt.Sprintf("T%d", g.seq), g.typ(depth-1))
	default:
		return schema.Readonly(g.typ(depth - 1))
	}
}

// object builds an object type whose property names are drawn, in order,
// from the propNames indexes in names.
func (g *Generator) object(depth int, names []int) schema.Type {
	n := 1 + g.rnd.IntN(min(3, len(names)))
	props := make([]schema.Property, n)
	for i := range props {
		name := propNames[names[i]]
		t := g.typ(depth - 1)
		if g.rnd.IntN(4) == 0 {
			props[i] = schema.OptionalField(name, t)
		} else {
			props[i] = schema.Field(name, t)
		}
	}
	return schema.Object(props...)
}

func (g *Generator) leaf() schema.Type {
	switch g.rnd.IntN(7) {
	case 0:
		return schema.String()
	case 1:
		return schema.Number()
	case 2:
		return schema.Boolean()
	case 3:
		return schema.Null()
	case 4:
		return schema.Literal(literals[g.rnd.IntN(len(literals))])
	case 5:
		return schema.Refine(schema.Number(), "Positive", func(v value.Value) bool {
			switch n := v.(type) {
			case value.Int:
				return n > 0
			case value.Float:
				return n > 0
			}
			return false
		}, "must be a positive number")
	default:
		return schema.Int()
	}
}

// Conforming returns a value that belongs to t.
func (g *Generator) Conforming(t schema.Type) value.Value {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.conforming(t)
}

func (g *Generator) conforming(t schema.Type) value.Value {
	if ref, ok := schema.RefinementOf(t); ok {
		for range 16 {
			if v := g.conforming(ref.Underlying()); ref.Is(v) {
				return v
			}
		}
		return value.Int(1 + g.rnd.IntN(100))
	}
	if members, ok := schema.Members(t); ok {
		return g.conforming(members[g.rnd.IntN(len(members))])
	}
	if parts, ok := schema.Parts(t); ok {
		merged := value.Object{}
		for _, p := range parts {
			if obj, isObj := g.conforming(p).(value.Object); isObj {
				for k, v := range obj {
					if _, taken := merged[k]; !taken {
						merged[k] = v
					}
				}
			}
		}
		return merged
	}
	if props, ok := schema.Properties(t); ok {
		obj := value.Object{}
		for _, p := range props {
			if p.Optional && g.rnd.IntN(2) == 0 {
				continue
			}
			obj[p.Name] = g.conforming(p.Type)
		}
		return obj
	}
	if item, ok := schema.ArrayItem(t); ok {
		arr := make(value.Array, g.rnd.IntN(4))
		for i := range arr {
			arr[i] = g.conforming(item)
		}
		return arr
	}
	if items, ok := schema.TupleItems(t); ok {
		arr := make(value.Array, len(items))
		for i, item := range items {
			arr[i] = g.conforming(item)
		}
		return arr
	}
	for _, candidate := range g.scalars() {
		if t.Is(candidate) {
			return candidate
		}
	}
	return value.Null{}
}

func (g *Generator) scalars() []value.Value {
	out := []value.Value{
		value.String(propNames[g.rnd.IntN(len(propNames))]),
		value.Int(1 + g.rnd.IntN(100)),
		value.Float(0.5),
		value.Bool(g.rnd.IntN(2) == 0),
		value.Null{},
	}
	out = append(out, literals...)
	g.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Value returns a random value nested at most depth levels deep.
func (g *Generator) Value(depth int) value.Value {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value(depth)
}

func (g *Generator) value(depth int) value.Value {
	if depth <= 0 || g.rnd.IntN(3) == 0 {
		s := g.scalars()
		return s[0]
	}
	if g.rnd.IntN(2) == 0 {
		arr := make(value.Array, g.rnd.IntN(4))
		for i := range arr {
			arr[i] = g.value(depth - 1)
		}
		return arr
	}
	obj := value.Object{}
	for range g.rnd.IntN(4) {
		obj[propNames[g.rnd.IntN(len(propNames))]] = g.value(depth - 1)
	}
	return obj
}

// Failing returns a value that t rejects, built by breaking a conforming
// value in one place. It returns false if no such value was found.
func (g *Generator) Failing(t schema.Type) (value.Value, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for range 32 {
		v := g.mutate(g.conforming(t), 0)
		if !validate.Is(t, v) {
			return v, true
		}
	}
	for range 32 {
		if v := g.value(3); !validate.Is(t, v) {
			return v, true
		}
	}
	return nil, false
}

// mutate breaks v at a random position: a scalar is replaced, an object
// loses or changes a key, an array grows or changes an item.
func (g *Generator) mutate(v value.Value, depth int) value.Value {
	switch val := v.(type) {
	case value.Object:
		keys := val.SortedKeys()
		if len(keys) == 0 || depth > 4 {
			return g.value(1)
		}
		out := make(value.Object, len(val))
		for k, x := range val {
			out[k] = x
		}
		k := keys[g.rnd.IntN(len(keys))]
		if g.rnd.IntN(3) == 0 {
			delete(out, k)
		} else {
			out[k] = g.mutate(val[k], depth+1)
		}
		return out
	case value.Array:
		out := make(value.Array, len(val), len(val)+1)
		copy(out, val)
		if len(out) == 0 || g.rnd.IntN(3) == 0 {
			return append(out, g.value(1))
		}
		i := g.rnd.IntN(len(out))
		out[i] = g.mutate(out[i], depth+1)
		return out
	default:
		return g.value(1)
	}
}
