package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"both undefined", nil, nil, true},
		{"undefined vs null", nil, Null{}, false},
		{"null vs null", Null{}, Null{}, true},
		{"int vs float", Int(1), Float(1), true},
		{"int vs int", Int(1), Int(2), false},
		{"string NFC", String("e\u0301"), String("\u00e9"), true},
		{"string vs number", String("1"), Int(1), false},
		{"bool", Bool(true), Bool(true), true},
		{"arrays", Array{Int(1), Null{}}, Array{Int(1), Null{}}, true},
		{"array length", Array{Int(1)}, Array{Int(1), Int(1)}, false},
		{"objects", Object{"a": Int(1)}, Object{"a": Int(1)}, true},
		{"object null vs absent", Object{"a": Null{}}, Object{"b": Null{}}, false},
		{"object vs array", Object{}, Array{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a), "Equal must be symmetric")
		})
	}
}

// opaque is a Value that Equal cannot compare, so only identity matches it.
type opaque struct{}

func (opaque) value() {}

func TestSame(t *testing.T) {
	arr := Array{opaque{}, Int(1)}
	obj := Object{"x": opaque{}}

	assert.True(t, Same(arr, arr), "shared storage is the same without walking")
	assert.False(t, Equal(arr, arr))
	assert.True(t, Same(obj, obj))
	assert.False(t, Same(arr, arr[:1]), "a shorter view of the storage differs")
	assert.False(t, Same(arr, Array{opaque{}, Int(1)}))

	// Without shared storage Same falls back to Equal.
	assert.True(t, Same(Array{Int(1)}, Array{Float(1)}))
	assert.True(t, Same(Object{"a": String("é")}, Object{"a": String("é")}))
	assert.True(t, Same(Array{}, Array{}))
	assert.True(t, Same(nil, nil))
	assert.False(t, Same(nil, Null{}))
	assert.False(t, Same(Object{}, Array{}))
}
