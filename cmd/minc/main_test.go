package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSuitesDefault(t *testing.T) {
	suites, err := loadSuites("testdata/samples")
	require.NoError(t, err)

	assert.Equal(t, defaultSuites, suites)
}

func TestLoadSuitesManifest(t *testing.T) {
	suites, err := loadSuites("testdata/manifest")
	require.NoError(t, err)

	require.Len(t, suites, 2)
	assert.Equal(t, suite{Name: "clean", Dir: "clean", Expect: "pass"}, suites[0])
	assert.Equal(t, suite{
		Name:          "type-faults",
		Dir:           "type-faults",
		Expect:        "fail",
		ErrorContains: "cannot assign",
	}, suites[1])
}

func TestLoadSuitesEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "manifest.yaml", "suites: []\n")

	_, err := loadSuites(dir)
	assert.ErrorContains(t, err, "no suites declared")
}

func TestRunSuiteValidSamples(t *testing.T) {
	var buf bytes.Buffer

	passed, total, err := runSuite(&buf, "testdata/samples", defaultSuites[0])
	require.NoError(t, err)

	assert.Equal(t, 3, passed)
	assert.Equal(t, 3, total)
	assert.Contains(t, buf.String(), "basics.min")
	assert.Contains(t, buf.String(), "blocks.min")
	assert.Contains(t, buf.String(), "functions.min")
	assert.Contains(t, buf.String(), "valid: 3/3 passed")
}

func TestRunSuiteInvalidSamples(t *testing.T) {
	var buf bytes.Buffer

	passed, total, err := runSuite(&buf, "testdata/samples", defaultSuites[1])
	require.NoError(t, err)

	assert.Equal(t, 4, passed)
	assert.Equal(t, 4, total)

	// The diagnostics of expected failures are echoed for inspection.
	assert.Contains(t, buf.String(), "duplicate declaration of 'x' in scope 'global'")
	assert.Contains(t, buf.String(), "use of undeclared variable 'y'")
}

func TestRunSuiteExpectationMismatch(t *testing.T) {
	var buf bytes.Buffer

	s := suite{Name: "wrong", Dir: "valid", Expect: "fail"}
	passed, total, err := runSuite(&buf, "testdata/samples", s)
	require.NoError(t, err)

	assert.Equal(t, 0, passed)
	assert.Equal(t, 3, total)
	assert.Contains(t, buf.String(), "compiled cleanly but a diagnostic was expected")
}

func TestRunSuiteErrorContains(t *testing.T) {
	var buf bytes.Buffer

	s := suite{Name: "strict", Dir: "invalid", Expect: "fail", ErrorContains: "no such message"}
	passed, total, err := runSuite(&buf, "testdata/samples", s)
	require.NoError(t, err)

	assert.Equal(t, 0, passed)
	assert.Equal(t, 4, total)
}

func TestTestCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"test", "testdata/manifest"})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "clean: 1/1 passed")
	assert.Contains(t, buf.String(), "type-faults: 1/1 passed")
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "scan.min", "int x;\n")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"scan", file})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "INT 'int' (line 1, column 1)")
	assert.Contains(t, buf.String(), "IDENTIFIER 'x' (line 1, column 5)")
	assert.Contains(t, buf.String(), "EOF")
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "parse.min", "int x;\nx = 1 + 2;\n")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"parse", "--symbols", file})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "Assign(x =)")
	assert.Contains(t, buf.String(), "BinaryOp('+')")
	assert.Contains(t, buf.String(), "Scope 'global':")
}

func TestParseCommandFault(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "bad.min", "x = 1;\n")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"parse", file})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use of undeclared variable 'x'")
}
