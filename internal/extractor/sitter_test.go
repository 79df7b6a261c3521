package extractor

import (
	"testing"

	"github.com/ludo-technologies/depscan/domain"
)

func extractSitter(t *testing.T, id, source string) *domain.ModuleInfo {
	t.Helper()
	info, err := NewTreeSitterExtractor().Extract(&domain.ModuleFile{
		ID:      id,
		AbsPath: "/" + id,
		Source:  []byte(source),
	})
	if err != nil {
		t.Skipf("tree-sitter parse unavailable: %v", err)
	}
	return info
}

func TestSitterStaticImports(t *testing.T) {
	info := extractSitter(t, "a.ts", `import React from 'react';
import { parse, format as fmt } from './utils';
import * as path from 'node:path';
import './setup';
`)

	if imp := findImport(info, "react"); imp == nil || imp.Kind != domain.ImportKindDefault {
		t.Errorf("default import misread: %+v", imp)
	}
	imp := findImport(info, "./utils")
	if imp == nil || imp.Kind != domain.ImportKindNamed {
		t.Fatalf("named import misread: %+v", imp)
	}
	if len(imp.Specifiers) != 2 || imp.Specifiers[1].Local != "fmt" {
		t.Errorf("named specifiers misread: %+v", imp.Specifiers)
	}
	if imp := findImport(info, "node:path"); imp == nil || imp.Kind != domain.ImportKindNamespace || imp.Class != domain.SpecifierBuiltin {
		t.Errorf("namespace import misread: %+v", imp)
	}
	if imp := findImport(info, "./setup"); imp == nil || imp.Kind != domain.ImportKindSideEffect {
		t.Errorf("side-effect import misread: %+v", imp)
	}
}

func TestSitterIgnoresImportShapedText(t *testing.T) {
	// The advantage over the pattern engine: imports inside strings and
	// comments are not real imports
	info := extractSitter(t, "a.ts", `// import { fake } from './comment';
const doc = "import { alsoFake } from './string'";
import { real } from './real';
`)

	if findImport(info, "./comment") != nil {
		t.Error("commented-out import must be ignored")
	}
	if findImport(info, "./string") != nil {
		t.Error("import inside a string literal must be ignored")
	}
	if findImport(info, "./real") == nil {
		t.Error("real import missing")
	}
}

func TestSitterDynamicAndRequire(t *testing.T) {
	info := extractSitter(t, "a.js", `const lazy = () => import('./lazy');
const legacy = require('./legacy');
`)

	if imp := findImport(info, "./lazy"); imp == nil || imp.Kind != domain.ImportKindDynamic {
		t.Errorf("dynamic import misread: %+v", imp)
	}
	if imp := findImport(info, "./legacy"); imp == nil || imp.Kind != domain.ImportKindRequire {
		t.Errorf("require misread: %+v", imp)
	}
}

func TestSitterExportDeclarations(t *testing.T) {
	info := extractSitter(t, "a.ts", `export function handler() {}
export const config = {};
export class Service {}
export default handler;
`)

	if !hasExportName(info, "handler") || !hasExportName(info, "config") || !hasExportName(info, "Service") {
		t.Errorf("exported declarations missing: %+v", info.Exports)
	}
	if !hasExportName(info, "default") {
		t.Error("default export missing")
	}
}

func TestSitterReExports(t *testing.T) {
	info := extractSitter(t, "index.ts", `export { helper, inner as outer } from './impl';
export * from './wide';
`)

	imp := findImport(info, "./impl")
	if imp == nil || imp.Kind != domain.ImportKindReExport {
		t.Fatalf("brace re-export misread: %+v", imp)
	}
	if !hasExportName(info, "helper") || !hasExportName(info, "outer") {
		t.Errorf("forwarded names missing: %+v", info.Exports)
	}

	star := findImport(info, "./wide")
	if star == nil || star.Kind != domain.ImportKindReExport {
		t.Fatalf("star re-export misread: %+v", star)
	}
	if len(star.Specifiers) != 1 || star.Specifiers[0].Imported != "*" {
		t.Errorf("star specifier misread: %+v", star.Specifiers)
	}
}

func TestSitterTSXFile(t *testing.T) {
	info := extractSitter(t, "App.tsx", `import { useState } from 'react';

export default function App() {
  const [count] = useState(0);
  return <div>{count}</div>;
}
`)

	if findImport(info, "react") == nil {
		t.Error("import missing from TSX file")
	}
	if !hasExportName(info, "default") {
		t.Error("default export missing from TSX file")
	}
}

// hasExportName reports whether the extraction produced an export with
// the given name
func hasExportName(info *domain.ModuleInfo, name string) bool {
	for _, exp := range info.Exports {
		if exp.Name == name {
			return true
		}
	}
	return false
}
