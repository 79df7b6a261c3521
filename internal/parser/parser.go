// Package parser wraps the tree-sitter parsers for JavaScript and
// TypeScript sources.
package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// Parser wraps a tree-sitter parser for one language
type Parser struct {
	parser *sitter.Parser
	isTS   bool
}

// NewParser creates a JavaScript parser
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())
	return &Parser{parser: p}
}

// NewTypeScriptParser creates a TypeScript (TSX) parser
func NewTypeScriptParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(tsx.GetLanguage())
	return &Parser{parser: p, isTS: true}
}

// ForFile selects the parser by file extension
func ForFile(filename string) *Parser {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ts", ".tsx", ".mts", ".cts":
		return NewTypeScriptParser()
	}
	return NewParser()
}

// Parse parses source and returns the syntax tree. The caller owns the
// tree and must Close it.
func (p *Parser) Parse(source []byte) (*sitter.Tree, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse source: %v", err)
	}
	return tree, nil
}

// IsTypeScript returns true for the TypeScript parser
func (p *Parser) IsTypeScript() bool {
	return p.isTS
}

// Close frees the underlying parser
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}
