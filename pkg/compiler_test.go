package minlang

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilerFromReader(t *testing.T) {
	src := "int x;\nfun f(int a) = a + 1;\nx = f(41);\n"

	result, err := NewCompiler().CompileFromReader(strings.NewReader(src))
	require.NoError(t, err)

	require.Len(t, result.Program.Statements, 2)
	require.Len(t, result.Scopes, 2)
	assert.Equal(t, "global", result.Scopes[0].Name)
	assert.Equal(t, "fun f", result.Scopes[1].Name)
	assert.NotEmpty(t, result.Productions)
}

func TestCompilerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.min")
	require.NoError(t, os.WriteFile(path, []byte("int x; x = 1;\n"), 0o644))

	result, err := NewCompiler().Compile(path)
	require.NoError(t, err)
	assert.Len(t, result.Program.Statements, 1)

	_, err = NewCompiler().Compile(filepath.Join(t.TempDir(), "missing.min"))
	assert.Error(t, err)
}

func TestCompilerFirstFault(t *testing.T) {
	// The whole parse aborts on the first fault; later statements are
	// never reached.
	_, err := NewCompiler().CompileFromReader(strings.NewReader("y = 1; int y; z = (;"))

	var rerr *ReferenceError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "y", rerr.Name)
}
