package minlang

import (
	"io"
	"os"
)

// Result bundles everything a successful front-end run produces: the typed
// AST, every scope created during the parse, and the production trace.
type Result struct {
	Program     *Program
	Scopes      []*SymbolTable
	Productions []string
}

// Compiler is the front-end entry point for whole source units. It performs
// scanning, parsing, scope construction, and type checking in one pass; it
// does no lowering or code generation.
type Compiler struct{}

func NewCompiler() *Compiler {
	return &Compiler{}
}

func (c *Compiler) Compile(filename string) (*Result, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return c.compile(string(data))
}

func (c *Compiler) CompileFromReader(reader io.Reader) (*Result, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	return c.compile(string(data))
}

func (c *Compiler) compile(source string) (*Result, error) {
	p := NewParser(Scan(source))

	program, err := p.Parse()
	if err != nil {
		return nil, err
	}

	return &Result{
		Program:     program,
		Scopes:      p.Scopes(),
		Productions: p.Productions(),
	}, nil
}
