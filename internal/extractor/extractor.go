// Package extractor turns a single file's source text into its import
// edges and exported symbols. Two engines implement the same interface:
// a pattern-based fast path and a tree-sitter parse-tree engine.
//
// Known limitation, shared by both engines: re-exports nested inside
// conditional or dynamically built contexts are not recognized.
package extractor

import (
	"strings"

	"github.com/ludo-technologies/depscan/domain"
)

// Engine identifies an extraction implementation
type Engine string

const (
	// EnginePattern is the regex-based fast path
	EnginePattern Engine = "pattern"

	// EngineTreeSitter is the parse-tree based engine
	EngineTreeSitter Engine = "treesitter"
)

// Extractor produces a ModuleInfo from one file's raw text
type Extractor interface {
	// Extract parses source and returns the file's import edges and
	// exported symbols, in source order. Edges are returned unresolved.
	Extract(file *domain.ModuleFile) (*domain.ModuleInfo, error)
}

// New returns the extractor for the given engine, defaulting to the
// pattern engine for unknown values
func New(engine Engine) Extractor {
	if engine == EngineTreeSitter {
		return NewTreeSitterExtractor()
	}
	return NewPatternExtractor()
}

// Node.js built-in modules (bare or node: prefixed)
var nodeBuiltins = map[string]bool{
	"assert":         true,
	"buffer":         true,
	"child_process":  true,
	"cluster":        true,
	"console":        true,
	"constants":      true,
	"crypto":         true,
	"dgram":          true,
	"dns":            true,
	"domain":         true,
	"events":         true,
	"fs":             true,
	"http":           true,
	"http2":          true,
	"https":          true,
	"module":         true,
	"net":            true,
	"os":             true,
	"path":           true,
	"perf_hooks":     true,
	"process":        true,
	"punycode":       true,
	"querystring":    true,
	"readline":       true,
	"repl":           true,
	"stream":         true,
	"string_decoder": true,
	"sys":            true,
	"timers":         true,
	"tls":            true,
	"tty":            true,
	"url":            true,
	"util":           true,
	"v8":             true,
	"vm":             true,
	"wasi":           true,
	"worker_threads": true,
	"zlib":           true,
}

// ClassifySpecifier determines where an import specifier points.
// Only relative specifiers are candidates for resolution.
func ClassifySpecifier(specifier string) domain.SpecifierClass {
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") ||
		specifier == "." || specifier == ".." {
		return domain.SpecifierRelative
	}
	if strings.HasPrefix(specifier, "/") {
		return domain.SpecifierAbsolute
	}
	if strings.HasPrefix(specifier, "node:") {
		return domain.SpecifierBuiltin
	}
	pkg := specifier
	if idx := strings.Index(specifier, "/"); idx > 0 {
		pkg = specifier[:idx]
	}
	if nodeBuiltins[pkg] {
		return domain.SpecifierBuiltin
	}
	return domain.SpecifierPackage
}
