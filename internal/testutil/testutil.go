// Package testutil provides helper functions for testing depscan components
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/depscan/domain"
)

// WriteTree writes a map of relative path -> source into dir, creating
// intermediate directories as needed, and returns dir
func WriteTree(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	for rel, src := range files {
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(abs, []byte(src), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
	return dir
}

// ModuleInfosFromSources builds extraction inputs directly from in-memory
// sources without touching the file system
func ModuleInfosFromSources(t *testing.T, extract func(*domain.ModuleFile) (*domain.ModuleInfo, error), sources map[string]string) map[string]*domain.ModuleInfo {
	t.Helper()
	infos := make(map[string]*domain.ModuleInfo, len(sources))
	for id, src := range sources {
		info, err := extract(&domain.ModuleFile{ID: id, Source: []byte(src)})
		if err != nil {
			t.Fatalf("Failed to extract %s: %v", id, err)
		}
		infos[id] = info
	}
	return infos
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertEqual fails the test if expected != actual
func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// AssertTrue fails the test if condition is false
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}

// AssertFalse fails the test if condition is true
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Error(msg)
	}
}

// AssertContains fails the test if s does not contain substr
func AssertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("Expected %q to contain %q", s, substr)
	}
}

// HasImport reports whether info contains an import of specifier with kind
func HasImport(info *domain.ModuleInfo, specifier string, kind domain.ImportKind) bool {
	for _, imp := range info.Imports {
		if imp.Specifier == specifier && imp.Kind == kind {
			return true
		}
	}
	return false
}

// HasExport reports whether info contains an export named name
func HasExport(info *domain.ModuleInfo, name string) bool {
	for _, exp := range info.Exports {
		if exp.Name == name {
			return true
		}
	}
	return false
}
