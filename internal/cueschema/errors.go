package cueschema

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Schema error codes (E200-E299)
const (
	ErrCompile  = "E201" // CUE source does not compile
	ErrNotFound = "E202" // definition path does not exist
	ErrInvalid  = "E203" // value at path is an error
	ErrLoad     = "E204" // cue/load failed or found no instance
	ErrBuild    = "E205" // instance failed to build
)

// SchemaError reports a failure to turn CUE into a schema type.
type SchemaError struct {
	Code    string
	Path    string
	Message string
	Pos     token.Pos
}

func (e *SchemaError) Error() string {
	loc := e.Code
	if e.Path != "" {
		loc += " " + e.Path
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), loc, e.Message)
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

// formatCUEError converts a CUE error into a SchemaError carrying the first
// reported position.
func formatCUEError(code, path string, err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &SchemaError{Code: code, Path: path, Message: err.Error()}
	}

	first := errs[0]
	se := &SchemaError{Code: code, Path: path, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		se.Pos = positions[0]
	}
	return se
}
