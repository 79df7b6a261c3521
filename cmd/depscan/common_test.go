package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/depscan/domain"
)

func TestRootFromArgs(t *testing.T) {
	if got := rootFromArgs(nil); got != "." {
		t.Errorf("default root = %q, want .", got)
	}
	if got := rootFromArgs([]string{"src"}); got != "src" {
		t.Errorf("root = %q, want src", got)
	}
}

func TestParseFormat(t *testing.T) {
	valid := map[string]domain.OutputFormat{
		"text": domain.OutputFormatText,
		"json": domain.OutputFormatJSON,
		"yaml": domain.OutputFormatYAML,
		"dot":  domain.OutputFormatDOT,
	}
	for in, want := range valid {
		got, err := parseFormat(in)
		if err != nil || got != want {
			t.Errorf("parseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWithOutputWriterCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	err := withOutputWriter(path, func(f *os.File) error {
		_, werr := f.WriteString("hello")
		return werr
	})
	if err != nil {
		t.Fatalf("withOutputWriter failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "hello" {
		t.Errorf("output file content = %q, err %v", data, err)
	}
}

func TestWithOutputWriterBadPath(t *testing.T) {
	err := withOutputWriter(filepath.Join(t.TempDir(), "missing", "out.txt"), func(f *os.File) error {
		return nil
	})
	if err == nil {
		t.Error("expected error for uncreatable output path")
	}
}

func TestCheckExitError(t *testing.T) {
	err := &CheckExitError{Code: 1, Message: "threshold violated"}
	if err.Error() != "threshold violated" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestContainsHelper(t *testing.T) {
	values := []string{"cycles", "dead-exports"}
	if !contains(values, "cycles") || contains(values, "impact") {
		t.Error("contains gave wrong membership")
	}
}
