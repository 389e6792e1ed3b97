package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateExpectations(t *testing.T) {
	failed := &Result{
		First: "a: expected int, got true",
		All:   []string{"a: expected int, got true", "missing required property b"},
	}

	tests := []struct {
		name   string
		result *Result
		expect Expectation
		want   []string
	}{
		{
			name:   "valid holds",
			result: &Result{Valid: true},
			expect: Expectation{Valid: true},
		},
		{
			name:   "valid expected but failed",
			result: failed,
			expect: Expectation{Valid: true},
			want:   []string{`valid: expected input to pass, got ["a: expected int, got true", "missing required property b"]`},
		},
		{
			name:   "failure expected but valid",
			result: &Result{Valid: true},
			expect: Expectation{First: "x"},
			want:   []string{"valid: expected input to fail, got a valid input"},
		},
		{
			name:   "first and all hold",
			result: failed,
			expect: Expectation{First: failed.First, All: failed.All},
		},
		{
			name:   "first differs",
			result: failed,
			expect: Expectation{First: "other"},
			want:   []string{`first: expected "other", got "a: expected int, got true"`},
		},
		{
			name:   "all missing and unexpected",
			result: failed,
			expect: Expectation{All: []string{"a: expected int, got true", "c"}},
			want: []string{
				`all: expected "c", got no such message`,
				`all: expected no such message, got "missing required property b"`,
			},
		},
		{
			name:   "all reordered",
			result: failed,
			expect: Expectation{All: []string{"missing required property b", "a: expected int, got true"}},
			want: []string{
				`all: expected ["missing required property b", "a: expected int, got true"], got ["a: expected int, got true", "missing required property b"]`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateExpectations(tt.result, tt.expect))
		})
	}
}

func TestResultAddError(t *testing.T) {
	r := NewResult()
	assert.True(t, r.Pass)

	r.AddError("boom")
	assert.False(t, r.Pass)
	assert.Equal(t, []string{"boom"}, r.Errors)
}
