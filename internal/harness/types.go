package harness

// Result is the outcome of a scenario run.
type Result struct {
	// Pass indicates that every expectation held.
	Pass bool `json:"pass"`

	// Valid reports whether the input passed validation.
	Valid bool `json:"valid"`

	// First is the first-only report; empty when Valid.
	First string `json:"first,omitempty"`

	// All is the exhaustive report; empty when Valid.
	All []string `json:"all,omitempty"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
