package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkSchema = `
#Config: {
	name:     string
	port?:    int
	replicas: int & >0 @mismatch("replicas must be positive")
}

#Deploy: {
	services: [...#Config]
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCheckValidDocument(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.cue", checkSchema)
	data := writeFile(t, dir, "config.yaml", "name: api\nreplicas: 2\n")

	out, _, err := executeRoot(t, "check", schema, data, "--def", "#Config")
	require.NoError(t, err)
	assert.Contains(t, out, "matches #Config")
}

func TestCheckInvalidDocumentFirst(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.cue", checkSchema)
	data := writeFile(t, dir, "config.json", `{"port": "80", "replicas": 1}`)

	out, _, err := executeRoot(t, "check", schema, data, "--def", "#Config")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "does not match #Config")
	assert.Contains(t, out, `port: expected int, got "80"`)
	assert.NotContains(t, out, "missing required property name")
}

func TestCheckInvalidDocumentAll(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.cue", checkSchema)
	data := writeFile(t, dir, "config.json", `{"port": "80", "replicas": 1}`)

	out, _, err := executeRoot(t, "check", schema, data, "--def", "#Config", "--all")
	require.Error(t, err)
	assert.Contains(t, out, `port: expected int, got "80"`)
	assert.Contains(t, out, "missing required property name")
}

func TestCheckJSONOutput(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.cue", checkSchema)
	data := writeFile(t, dir, "config.json", `{"name": "api", "replicas": 0}`)

	out, _, err := executeRoot(t, "--format", "json", "check", schema, data, "--def", "#Config", "--all")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status  string      `json:"status"`
		Data    CheckResult `json:"data"`
		Error   *CLIError   `json:"error"`
		TraceID string      `json:"trace_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	assert.Equal(t, []string{"replicas must be positive"}, resp.Data.Messages)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalid, resp.Error.Code)
	assert.NotEmpty(t, resp.TraceID)
}

func TestCheckQuery(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.cue", checkSchema)
	data := writeFile(t, dir, "deploy.yaml", `
services:
  - name: api
    replicas: 1
  - replicas: 2
`)

	out, _, err := executeRoot(t, "check", schema, data, "--def", "#Config", "--query", ".services[0]")
	require.NoError(t, err)
	assert.Contains(t, out, "matches #Config")

	out, _, err = executeRoot(t, "check", schema, data, "--def", "#Config", "--query", ".services[1]")
	require.Error(t, err)
	assert.Contains(t, out, "missing required property name")

	out, _, err = executeRoot(t, "check", schema, data, "--def", "#Deploy")
	require.Error(t, err)
	assert.Contains(t, out, "services[1]: missing required property name")
}

func TestCheckVerboseLogsToStderr(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.cue", checkSchema)
	data := writeFile(t, dir, "config.json", `{"replicas": 1}`)

	out, errOut, err := executeRoot(t, "-v", "check", schema, data, "--def", "#Config")
	require.Error(t, err)
	assert.Contains(t, out, "missing required property name")
	assert.Contains(t, errOut, "report level")
	assert.NotContains(t, out, "report level")
}

func TestCheckCommandErrors(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.cue", checkSchema)
	broken := writeFile(t, dir, "broken.cue", "#Config: {")
	data := writeFile(t, dir, "config.json", `{"name": "api", "replicas": 1}`)
	garbage := writeFile(t, dir, "garbage.json", `{"name": `)

	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{"missing schema", []string{"check", filepath.Join(dir, "nope.cue"), data, "--def", "#Config"}, ErrCodeNotFound},
		{"broken schema", []string{"check", broken, data, "--def", "#Config"}, ErrCodeBuildFailed},
		{"unknown definition", []string{"check", schema, data, "--def", "#Nope"}, ErrCodeNotFound},
		{"missing data", []string{"check", schema, filepath.Join(dir, "nope.json"), "--def", "#Config"}, ErrCodeNotFound},
		{"malformed data", []string{"check", schema, garbage, "--def", "#Config"}, ErrCodeDataInvalid},
		{"bad query", []string{"check", schema, data, "--def", "#Config", "--query", ".["}, ErrCodeQueryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeRoot(t, append([]string{"--format", "json"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestCheckRequiresDefinition(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "schema.cue", checkSchema)
	data := writeFile(t, dir, "config.json", `{}`)

	_, _, err := executeRoot(t, "check", schema, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "def")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
