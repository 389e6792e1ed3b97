package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/token"

	"github.com/roach88/mismatch/internal/cueschema"
	"github.com/roach88/mismatch/internal/value"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path or definition not found
	ErrCodeBuildFailed = "E006" // CUE compile or build failed
	ErrCodeDataInvalid = "E007" // Data document unreadable or malformed
	ErrCodeQueryFailed = "E008" // jq query failed
)

// Outcome codes reported when a command ran but its subject failed.
const (
	ErrCodeInvalid     = "E_INVALID"
	ErrCodeTestsFailed = "E_TEST_FAILED"
)

// LoadError represents an error that occurred while loading a schema or
// a data document.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadSchema loads CUE from a single .cue file or from a package directory.
func LoadSchema(path string) (cue.Value, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return cue.Value{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schema not found: %s", path)}
	}
	if err != nil {
		return cue.Value{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing schema: %v", err), Err: err}
	}

	if !info.IsDir() {
		if filepath.Ext(path) != ".cue" {
			return cue.Value{}, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("not a CUE file: %s", path)}
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return cue.Value{}, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading schema: %v", err), Err: err}
		}
		root, err := cueschema.Compile(src, path)
		if err != nil {
			return cue.Value{}, convertSchemaError(err)
		}
		return root, nil
	}

	cueFiles, err := FindCUEFiles(path)
	if err != nil {
		return cue.Value{}, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err), Err: err}
	}
	if len(cueFiles) == 0 {
		return cue.Value{}, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}
	}

	root, err := cueschema.Load(path)
	if err != nil {
		return cue.Value{}, convertSchemaError(err)
	}
	return root, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// ReadDocument reads a JSON or YAML data file. Files named .yaml or .yml are
// parsed as YAML, .json as JSON; anything else is tried as JSON first.
func ReadDocument(path string) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading data: %v", err), Err: err}
	}

	var doc value.Value
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		doc, err = value.ParseYAML(data)
	case ".json":
		doc, err = value.ParseJSON(data)
	default:
		if doc, err = value.ParseJSON(data); err != nil {
			doc, err = value.ParseYAML(data)
		}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDataInvalid, Message: fmt.Sprintf("%s: %v", path, err), Err: err}
	}
	return doc, nil
}

// convertSchemaError maps a cueschema error onto a LoadError with position
// info.
func convertSchemaError(err error) *LoadError {
	var se *cueschema.SchemaError
	if errors.As(err, &se) {
		return &LoadError{
			Code:    MapSchemaErrorCode(se.Code),
			Message: se.Message,
			Pos:     se.Pos,
			Err:     err,
		}
	}
	return &LoadError{Code: ErrCodeGeneric, Message: err.Error(), Err: err}
}

// MapSchemaErrorCode maps a cueschema error code to a CLI error code.
func MapSchemaErrorCode(code string) string {
	switch code {
	case cueschema.ErrCompile, cueschema.ErrBuild:
		return ErrCodeBuildFailed
	case cueschema.ErrLoad:
		return ErrCodeLoadFailed
	case cueschema.ErrNotFound:
		return ErrCodeNotFound
	default:
		return ErrCodeGeneric
	}
}
