// Package resolver maps relative import specifiers to files in the
// discovered set. Resolution never touches the file system: it is a
// pure function of (specifier, importing file, discovered set).
package resolver

import (
	"path"
	"strings"

	"github.com/ludo-technologies/depscan/domain"
	"github.com/ludo-technologies/depscan/internal/discover"
)

// Resolver resolves relative specifiers against an in-memory file set
type Resolver struct {
	files      map[string]bool
	extensions []string
}

// New creates a Resolver over the given module IDs. Extensions are
// tried in the given priority order; nil means the default order.
func New(fileIDs []string, extensions []string) *Resolver {
	if len(extensions) == 0 {
		extensions = discover.DefaultExtensions
	}
	files := make(map[string]bool, len(fileIDs))
	for _, id := range fileIDs {
		files[id] = true
	}
	return &Resolver{files: files, extensions: extensions}
}

// NewFromFiles creates a Resolver from discovered module files
func NewFromFiles(files []*domain.ModuleFile, extensions []string) *Resolver {
	ids := make([]string, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}
	return New(ids, extensions)
}

// Resolve maps a relative specifier imported from fromID to a module ID
// in the discovered set. The second return value is false when no
// discovered file matches. Resolution order: exact path, path plus each
// recognized extension, then a directory index file per extension.
func (r *Resolver) Resolve(specifier, fromID string) (string, bool) {
	joined := path.Join(path.Dir(fromID), specifier)
	if joined == ".." || strings.HasPrefix(joined, "../") {
		// Escapes the analysis root
		return "", false
	}

	if r.files[joined] {
		return joined, true
	}
	for _, ext := range r.extensions {
		if candidate := joined + ext; r.files[candidate] {
			return candidate, true
		}
	}
	for _, ext := range r.extensions {
		if candidate := path.Join(joined, "index"+ext); r.files[candidate] {
			return candidate, true
		}
	}
	return "", false
}

// Contains reports whether id is in the discovered set
func (r *Resolver) Contains(id string) bool {
	return r.files[id]
}
