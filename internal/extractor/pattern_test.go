package extractor

import (
	"testing"

	"github.com/ludo-technologies/depscan/domain"
)

func extractPattern(t *testing.T, source string) *domain.ModuleInfo {
	t.Helper()
	info, err := NewPatternExtractor().Extract(&domain.ModuleFile{
		ID:     "test.ts",
		Source: []byte(source),
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	return info
}

func findImport(info *domain.ModuleInfo, specifier string) *domain.Import {
	for _, imp := range info.Imports {
		if imp.Specifier == specifier {
			return imp
		}
	}
	return nil
}

func TestPatternNamedImport(t *testing.T) {
	info := extractPattern(t, `import { parse, format as fmt } from './utils';`)

	imp := findImport(info, "./utils")
	if imp == nil {
		t.Fatal("expected import of ./utils")
	}
	if imp.Kind != domain.ImportKindNamed {
		t.Errorf("expected named import, got %s", imp.Kind)
	}
	if imp.Class != domain.SpecifierRelative {
		t.Errorf("expected relative class, got %s", imp.Class)
	}
	if len(imp.Specifiers) != 2 {
		t.Fatalf("expected 2 specifiers, got %d", len(imp.Specifiers))
	}
	if imp.Specifiers[0].Imported != "parse" || imp.Specifiers[0].Local != "parse" {
		t.Errorf("unexpected first specifier: %+v", imp.Specifiers[0])
	}
	if imp.Specifiers[1].Imported != "format" || imp.Specifiers[1].Local != "fmt" {
		t.Errorf("alias not parsed: %+v", imp.Specifiers[1])
	}
}

func TestPatternDefaultImport(t *testing.T) {
	info := extractPattern(t, `import React from 'react';`)

	imp := findImport(info, "react")
	if imp == nil {
		t.Fatal("expected import of react")
	}
	if imp.Kind != domain.ImportKindDefault {
		t.Errorf("expected default import, got %s", imp.Kind)
	}
	if imp.Class != domain.SpecifierPackage {
		t.Errorf("expected package class, got %s", imp.Class)
	}
	if len(imp.Specifiers) != 1 || imp.Specifiers[0].Imported != "default" || imp.Specifiers[0].Local != "React" {
		t.Errorf("unexpected specifiers: %+v", imp.Specifiers)
	}
}

func TestPatternDefaultPlusNamedImport(t *testing.T) {
	info := extractPattern(t, `import dflt, { helper } from './mixed';`)

	imp := findImport(info, "./mixed")
	if imp == nil {
		t.Fatal("expected import of ./mixed")
	}
	if len(imp.Specifiers) != 2 {
		t.Fatalf("expected 2 specifiers, got %+v", imp.Specifiers)
	}
	if imp.Specifiers[0].Imported != "default" || imp.Specifiers[0].Local != "dflt" {
		t.Errorf("default binding wrong: %+v", imp.Specifiers[0])
	}
}

func TestPatternNamespaceImport(t *testing.T) {
	info := extractPattern(t, `import * as utils from './utils';`)

	imp := findImport(info, "./utils")
	if imp == nil {
		t.Fatal("expected import of ./utils")
	}
	if imp.Kind != domain.ImportKindNamespace {
		t.Errorf("expected namespace import, got %s", imp.Kind)
	}
	if len(imp.Specifiers) != 1 || imp.Specifiers[0].Imported != "*" || imp.Specifiers[0].Local != "utils" {
		t.Errorf("unexpected specifiers: %+v", imp.Specifiers)
	}
}

func TestPatternSideEffectImport(t *testing.T) {
	info := extractPattern(t, `import './polyfill';`)

	imp := findImport(info, "./polyfill")
	if imp == nil {
		t.Fatal("expected import of ./polyfill")
	}
	if imp.Kind != domain.ImportKindSideEffect {
		t.Errorf("expected side-effect import, got %s", imp.Kind)
	}
}

func TestPatternDynamicImport(t *testing.T) {
	info := extractPattern(t, `
const load = () => import('./lazy');
`)

	imp := findImport(info, "./lazy")
	if imp == nil {
		t.Fatal("expected dynamic import of ./lazy")
	}
	if imp.Kind != domain.ImportKindDynamic {
		t.Errorf("expected dynamic import, got %s", imp.Kind)
	}
	if imp.IsStatic() {
		t.Error("dynamic import must not be static")
	}
}

func TestPatternRequire(t *testing.T) {
	info := extractPattern(t, `const fs = require('fs');
const local = require('./local');`)

	if imp := findImport(info, "fs"); imp == nil || imp.Class != domain.SpecifierBuiltin {
		t.Errorf("expected builtin require of fs, got %+v", imp)
	}
	if imp := findImport(info, "./local"); imp == nil || imp.Kind != domain.ImportKindRequire {
		t.Errorf("expected require of ./local, got %+v", imp)
	}
}

func TestPatternReExport(t *testing.T) {
	info := extractPattern(t, `export { helper, internal as external } from './impl';`)

	imp := findImport(info, "./impl")
	if imp == nil {
		t.Fatal("expected re-export edge for ./impl")
	}
	if imp.Kind != domain.ImportKindReExport {
		t.Errorf("expected re-export kind, got %s", imp.Kind)
	}

	// Forwarded symbols surface under their outward names
	names := map[string]bool{}
	for _, exp := range info.Exports {
		if exp.ReExport {
			names[exp.Name] = true
			if exp.Source != "./impl" {
				t.Errorf("re-export source wrong: %q", exp.Source)
			}
		}
	}
	if !names["helper"] || !names["external"] {
		t.Errorf("expected forwarded exports helper and external, got %v", names)
	}
}

func TestPatternExportStar(t *testing.T) {
	info := extractPattern(t, `export * from './everything';`)

	imp := findImport(info, "./everything")
	if imp == nil || imp.Kind != domain.ImportKindReExport {
		t.Fatalf("expected re-export edge, got %+v", imp)
	}
	if len(imp.Specifiers) != 1 || imp.Specifiers[0].Imported != "*" {
		t.Errorf("expected star specifier, got %+v", imp.Specifiers)
	}
}

func TestPatternExportDeclarations(t *testing.T) {
	info := extractPattern(t, `export function parse(input: string) {}
export const VERSION = '1.0';
export class Parser {}
export interface Options {}
export type Result = string;
export async function load() {}
`)

	want := map[string]string{
		"parse":   "function",
		"VERSION": "const",
		"Parser":  "class",
		"Options": "interface",
		"Result":  "type",
		"load":    "function",
	}
	got := map[string]string{}
	for _, exp := range info.Exports {
		got[exp.Name] = exp.Declaration
	}
	for name, decl := range want {
		if got[name] != decl {
			t.Errorf("export %s: expected declaration %q, got %q", name, decl, got[name])
		}
	}
}

func TestPatternExportDefault(t *testing.T) {
	info := extractPattern(t, `export default function main() {}`)

	found := false
	for _, exp := range info.Exports {
		if exp.Name == "default" {
			found = true
		}
	}
	if !found {
		t.Error("expected an export named default")
	}
}

func TestPatternLocalBraceExport(t *testing.T) {
	info := extractPattern(t, `const a = 1;
const b = 2;
export { a, b as c };
`)

	names := map[string]bool{}
	for _, exp := range info.Exports {
		if exp.ReExport {
			t.Errorf("local brace export misread as re-export: %+v", exp)
		}
		names[exp.Name] = true
	}
	if !names["a"] || !names["c"] {
		t.Errorf("expected exports a and c, got %v", names)
	}
}

func TestPatternTypeOnlyImport(t *testing.T) {
	info := extractPattern(t, `import type { Config } from './config';`)

	imp := findImport(info, "./config")
	if imp == nil {
		t.Fatal("type-only imports still create edges")
	}
	if imp.Kind != domain.ImportKindNamed {
		t.Errorf("expected named import, got %s", imp.Kind)
	}
}

func TestPatternLineNumbers(t *testing.T) {
	info := extractPattern(t, `// header
import { a } from './a';

import { b } from './b';
`)

	if imp := findImport(info, "./a"); imp == nil || imp.Line != 2 {
		t.Errorf("expected ./a on line 2, got %+v", imp)
	}
	if imp := findImport(info, "./b"); imp == nil || imp.Line != 4 {
		t.Errorf("expected ./b on line 4, got %+v", imp)
	}
}

func TestPatternSourceOrder(t *testing.T) {
	info := extractPattern(t, `import { z } from './z';
import { a } from './a';
`)

	if len(info.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(info.Imports))
	}
	if info.Imports[0].Specifier != "./z" || info.Imports[1].Specifier != "./a" {
		t.Errorf("imports not in source order: %s, %s",
			info.Imports[0].Specifier, info.Imports[1].Specifier)
	}
}

func TestClassifySpecifier(t *testing.T) {
	cases := []struct {
		specifier string
		want      domain.SpecifierClass
	}{
		{"./a", domain.SpecifierRelative},
		{"../a/b", domain.SpecifierRelative},
		{".", domain.SpecifierRelative},
		{"/abs/path", domain.SpecifierAbsolute},
		{"react", domain.SpecifierPackage},
		{"@scope/pkg", domain.SpecifierPackage},
		{"lodash/merge", domain.SpecifierPackage},
		{"fs", domain.SpecifierBuiltin},
		{"node:path", domain.SpecifierBuiltin},
		{"fs/promises", domain.SpecifierBuiltin},
	}
	for _, tc := range cases {
		if got := ClassifySpecifier(tc.specifier); got != tc.want {
			t.Errorf("ClassifySpecifier(%q) = %s, want %s", tc.specifier, got, tc.want)
		}
	}
}
