package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/aretw0/paramspec/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "paramspec version ")
}

func TestSchemasCommand(t *testing.T) {
	out, err := execute(t, "schemas")
	require.NoError(t, err)
	assert.Contains(t, out, "signup\n")
	assert.Contains(t, out, "  age: integer required [13, 120]")
	assert.Contains(t, out, "order\n")
	assert.Contains(t, out, "geo\n")
}

func TestCheckCommand_Accepted(t *testing.T) {
	path := testutils.WriteFile(t, "signup.yaml", `
username: ada
age: 36
role: admin
tags: [math]
newsletter: true
`)
	out, err := execute(t, "check", "signup", path)
	require.NoError(t, err)
	assert.Contains(t, out, "200 OK signup")
}

func TestCheckCommand_Rejected(t *testing.T) {
	path := testutils.WriteFile(t, "signup.json", `{"username": "ada", "age": 7, "role": "admin", "tags": null, "newsletter": false}`)
	out, err := execute(t, "check", "signup", path, "--json")
	require.ErrorIs(t, err, errRejected)

	var rep map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rep), out)
	assert.Equal(t, "BAD_PARAM_BOUNDARY", rep["code"])
	assert.Equal(t, "age", rep["key"])
}

func TestCheckCommand_Errors(t *testing.T) {
	_, err := execute(t, "check", "nope", "-")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errRejected)

	_, err = execute(t, "check", "signup", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errRejected)
}

func TestGraphCommand(t *testing.T) {
	path := testutils.WriteFile(t, "order.json", `{"sku": "x", "quantity": 500, "unit_price": 1.5, "sizes": null, "ratings": null, "express": null}`)
	out, err := execute(t, "graph", "order", path)
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, `schema_order(("order <br/> BAD_PARAM_BOUNDARY"))`)
	assert.Contains(t, out, "class param_quantity failed;")
}
