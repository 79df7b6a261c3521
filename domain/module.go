package domain

// ImportKind represents the syntactic form of an import
type ImportKind string

const (
	// ImportKindNamed represents named imports: import { a, b as c } from 'y'
	ImportKindNamed ImportKind = "named"

	// ImportKindDefault represents default imports: import x from 'y'
	ImportKindDefault ImportKind = "default"

	// ImportKindNamespace represents namespace imports: import * as x from 'y'
	ImportKindNamespace ImportKind = "namespace"

	// ImportKindSideEffect represents side-effect imports: import 'y'
	ImportKindSideEffect ImportKind = "side_effect"

	// ImportKindReExport represents re-exports: export { a } from 'y'
	ImportKindReExport ImportKind = "re_export"

	// ImportKindDynamic represents dynamic imports: import('y')
	ImportKindDynamic ImportKind = "dynamic"

	// ImportKindRequire represents CommonJS require: require('y')
	ImportKindRequire ImportKind = "require"
)

// SpecifierClass classifies an import specifier by where it points
type SpecifierClass string

const (
	// SpecifierRelative represents relative specifiers: ./foo, ../bar
	SpecifierRelative SpecifierClass = "relative"

	// SpecifierAbsolute represents absolute path specifiers: /foo/bar
	SpecifierAbsolute SpecifierClass = "absolute"

	// SpecifierPackage represents package specifiers: lodash, react
	SpecifierPackage SpecifierClass = "package"

	// SpecifierBuiltin represents Node.js builtins: node:fs, fs
	SpecifierBuiltin SpecifierClass = "builtin"
)

// ModuleFile is a single discovered source file, identified by its
// slash-separated path relative to the analysis root
type ModuleFile struct {
	// ID is the unique identifier (slash-separated path relative to the root)
	ID string `json:"id"`

	// AbsPath is the absolute path on disk
	AbsPath string `json:"abs_path"`

	// Source is the raw file content; discarded after extraction
	Source []byte `json:"-"`
}

// ImportSpecifier represents an individual imported binding
type ImportSpecifier struct {
	// Imported is the original name from the module ("*" for namespace,
	// "default" for default imports)
	Imported string `json:"imported"`

	// Local is the bound local name (the alias when one is given)
	Local string `json:"local"`
}

// Import represents a single import edge before and after resolution
type Import struct {
	// Specifier is the raw module specifier as written in the source
	Specifier string `json:"specifier"`

	// Kind is the syntactic import form
	Kind ImportKind `json:"kind"`

	// Class classifies the specifier (relative, package, builtin, absolute)
	Class SpecifierClass `json:"class"`

	// Specifiers are the bound names; empty for namespace, dynamic,
	// require and side-effect forms
	Specifiers []ImportSpecifier `json:"specifiers,omitempty"`

	// Resolved is the target module ID, or empty when unresolved
	Resolved string `json:"resolved,omitempty"`

	// Line is the 1-based line of the import statement
	Line int `json:"line,omitempty"`
}

// IsStatic reports whether the import binds a statically known symbol set.
// Dynamic and require-style imports may reach any export of the target.
func (i *Import) IsStatic() bool {
	switch i.Kind {
	case ImportKindDynamic, ImportKindRequire:
		return false
	}
	return true
}

// Export represents a single exported symbol
type Export struct {
	// Name is the exported symbol name ("default" for default exports)
	Name string `json:"name"`

	// Declaration is the declaration form (function, class, const, ...)
	// when the export is a marked declaration
	Declaration string `json:"declaration,omitempty"`

	// ReExport is true when the symbol is forwarded from another module
	ReExport bool `json:"re_export,omitempty"`

	// Source is the re-export source specifier (empty otherwise)
	Source string `json:"source,omitempty"`

	// Line is the 1-based line of the export statement
	Line int `json:"line,omitempty"`
}

// ModuleInfo contains the extraction result for a single file
type ModuleInfo struct {
	// FileID is the module identifier (root-relative path)
	FileID string `json:"file_id"`

	// AbsPath is the absolute path of the analyzed file
	AbsPath string `json:"abs_path,omitempty"`

	// Imports are all import edges found in the file, in source order
	Imports []*Import `json:"imports"`

	// Exports are all exported symbols found in the file, in source order
	Exports []*Export `json:"exports"`
}

// ExtractionSummary provides aggregate statistics over extracted files
type ExtractionSummary struct {
	// TotalFiles is the number of files extracted
	TotalFiles int `json:"total_files"`

	// TotalImports is the total number of import edges
	TotalImports int `json:"total_imports"`

	// TotalExports is the total number of exported symbols
	TotalExports int `json:"total_exports"`

	// RelativeImports is the count of relative (resolvable) imports
	RelativeImports int `json:"relative_imports"`

	// PackageImports is the count of package/builtin imports
	PackageImports int `json:"package_imports"`

	// DynamicImports is the count of dynamic import() expressions
	DynamicImports int `json:"dynamic_imports"`

	// RequireImports is the count of CommonJS require() calls
	RequireImports int `json:"require_imports"`

	// ReExports is the count of re-export statements
	ReExports int `json:"re_exports"`
}
