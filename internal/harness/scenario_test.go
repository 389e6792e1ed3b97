package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "config_mismatch.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "config_mismatch", scenario.Name)
	assert.Equal(t, "#Config", scenario.Definition)
	assert.Equal(t, filepath.Join("testdata", "schemas", "config.cue"), scenario.SchemaFile)
	assert.Equal(t, yaml.MappingNode, scenario.Input.Kind)
	assert.Len(t, scenario.Expect.All, 2)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_MissingSchemaFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	content := `
name: s
description: d
schema_file: missing.cue
definition: "#A"
input: 1
expect:
  valid: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")
}

func TestParseScenario_NullInput(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: s
description: d
schema: "#A: string"
definition: "#A"
input: null
expect:
  first: "expected string, got null"
`))
	require.NoError(t, err)
	assert.Equal(t, yaml.ScalarNode, scenario.Input.Kind)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown field",
			content: "name: s\ndescription: d\nschema: x\ndefinition: a\ninput: 1\nexpect: {valid: true}\nflow: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			content: "description: d\nschema: x\ndefinition: a\ninput: 1\nexpect: {valid: true}\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: s\nschema: x\ndefinition: a\ninput: 1\nexpect: {valid: true}\n",
			wantErr: "description is required",
		},
		{
			name:    "no schema",
			content: "name: s\ndescription: d\ndefinition: a\ninput: 1\nexpect: {valid: true}\n",
			wantErr: "exactly one of schema and schema_file",
		},
		{
			name:    "both schemas",
			content: "name: s\ndescription: d\nschema: x\nschema_file: y.cue\ndefinition: a\ninput: 1\nexpect: {valid: true}\n",
			wantErr: "exactly one of schema and schema_file",
		},
		{
			name:    "missing definition",
			content: "name: s\ndescription: d\nschema: x\ninput: 1\nexpect: {valid: true}\n",
			wantErr: "definition is required",
		},
		{
			name:    "missing input",
			content: "name: s\ndescription: d\nschema: x\ndefinition: a\nexpect: {valid: true}\n",
			wantErr: "input is required",
		},
		{
			name:    "valid with messages",
			content: "name: s\ndescription: d\nschema: x\ndefinition: a\ninput: 1\nexpect: {valid: true, first: m}\n",
			wantErr: "valid cannot be combined",
		},
		{
			name:    "empty expectation",
			content: "name: s\ndescription: d\nschema: x\ndefinition: a\ninput: 1\nexpect: {}\n",
			wantErr: "one of valid, first or all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
