package cueschema

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/mismatch/internal/schema"
)

// Compile compiles a single CUE source. filename is used in positions.
func Compile(src []byte, filename string) (cue.Value, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return cue.Value{}, formatCUEError(ErrCompile, "", err)
	}
	return v, nil
}

// Load builds the CUE package in dir.
func Load(dir string) (cue.Value, error) {
	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return cue.Value{}, &SchemaError{Code: ErrLoad, Message: "no CUE instances loaded"}
	}

	inst := instances[0]
	if inst.Err != nil {
		return cue.Value{}, formatCUEError(ErrLoad, "", inst.Err)
	}

	v := ctx.BuildInstance(inst)
	if err := v.Err(); err != nil {
		return cue.Value{}, formatCUEError(ErrBuild, "", err)
	}
	return v, nil
}

// Lookup resolves path (for example "#Config" or "schemas.#User") in root
// and converts the value found there.
func Lookup(root cue.Value, path string) (schema.Type, error) {
	p := cue.ParsePath(path)
	if err := p.Err(); err != nil {
		return nil, &SchemaError{Code: ErrNotFound, Path: path, Message: fmt.Sprintf("invalid path: %v", err)}
	}

	v := root.LookupPath(p)
	if !v.Exists() {
		return nil, &SchemaError{Code: ErrNotFound, Path: path, Message: "no such definition", Pos: root.Pos()}
	}
	if err := v.Err(); err != nil {
		return nil, formatCUEError(ErrInvalid, path, err)
	}
	return FromValue(v), nil
}
