// Package discover walks an analysis root and produces the set of
// module files participating in the dependency graph.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/depscan/domain"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultExtensions are the recognized source extensions, in resolver
// priority order
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mts", ".cts", ".mjs", ".cjs"}

// DefaultExcludeDirs are directory names never descended into
var DefaultExcludeDirs = []string{
	"node_modules",
	".git",
	".hg",
	".svn",
	"dist",
	"build",
	"out",
	"coverage",
	".next",
	".turbo",
	"vendor",
	"bower_components",
}

// Config controls file discovery
type Config struct {
	// Extensions are the recognized source extensions (with leading dot)
	Extensions []string

	// ExcludeDirs are directory names to skip entirely
	ExcludeDirs []string

	// RespectGitignore filters discovered files through the root .gitignore
	RespectGitignore bool
}

// DefaultConfig returns a Config with the fixed default sets
func DefaultConfig() *Config {
	return &Config{
		Extensions:  DefaultExtensions,
		ExcludeDirs: DefaultExcludeDirs,
	}
}

// Walker discovers module files under a root directory
type Walker struct {
	config     *Config
	extensions map[string]bool
	excluded   map[string]bool
}

// NewWalker creates a Walker with the given configuration
func NewWalker(config *Config) *Walker {
	if config == nil {
		config = DefaultConfig()
	}
	exts := config.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	dirs := config.ExcludeDirs
	if len(dirs) == 0 {
		dirs = DefaultExcludeDirs
	}

	w := &Walker{
		config:     config,
		extensions: make(map[string]bool, len(exts)),
		excluded:   make(map[string]bool, len(dirs)),
	}
	for _, ext := range exts {
		w.extensions[strings.ToLower(ext)] = true
	}
	for _, dir := range dirs {
		w.excluded[dir] = true
	}
	return w
}

// Discover walks root and returns all analyzable module files, keyed by
// their slash-separated root-relative path. The result order follows the
// walk and is not part of the contract.
func (w *Walker) Discover(root string) ([]*domain.ModuleFile, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, domain.NewRootNotFoundError(root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, domain.NewRootNotFoundError(root, err)
	}
	if !info.IsDir() {
		return nil, domain.NewRootNotFoundError(root, nil)
	}

	var matcher *ignore.GitIgnore
	if w.config.RespectGitignore {
		// A missing .gitignore simply disables filtering
		if m, err := ignore.CompileIgnoreFile(filepath.Join(absRoot, ".gitignore")); err == nil {
			matcher = m
		}
	}

	var files []*domain.ModuleFile
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: skip it, the run continues
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != absRoot && w.excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinks and other non-regular entries are skipped silently
		if !d.Type().IsRegular() {
			return nil
		}

		if !w.IsModuleFile(path) {
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}
		id := filepath.ToSlash(rel)

		if matcher != nil && matcher.MatchesPath(id) {
			return nil
		}

		files = append(files, &domain.ModuleFile{
			ID:      id,
			AbsPath: path,
		})
		return nil
	})
	if err != nil {
		return nil, domain.NewRootNotFoundError(root, err)
	}

	return files, nil
}

// IsModuleFile reports whether path has a recognized source extension
func (w *Walker) IsModuleFile(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

// Extensions returns the recognized extensions in priority order
func (w *Walker) Extensions() []string {
	if len(w.config.Extensions) > 0 {
		return w.config.Extensions
	}
	return DefaultExtensions
}
