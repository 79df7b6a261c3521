package extractor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ludo-technologies/depscan/domain"
)

// Pattern forms recognized by the fast path. Matching is textual: an
// import-shaped string inside a comment or string literal will misfire.
// That trade-off is intentional; the tree-sitter engine exists for
// callers that need the precise answer.
var (
	importFromRe = regexp.MustCompile(`(?m)^[ \t]*import\s+(?:type\s+)?([^'";]*?)\s*from\s*['"]([^'"]+)['"]`)

	importSideEffectRe = regexp.MustCompile(`(?m)^[ \t]*import\s*['"]([^'"]+)['"]`)

	exportBraceRe = regexp.MustCompile(`(?m)^[ \t]*export\s+(?:type\s+)?\{([^}]*)\}(?:\s*from\s*['"]([^'"]+)['"])?`)

	exportStarRe = regexp.MustCompile(`(?m)^[ \t]*export\s*\*\s*(?:as\s+([A-Za-z_$][\w$]*)\s+)?from\s*['"]([^'"]+)['"]`)

	exportDeclRe = regexp.MustCompile(`(?m)^[ \t]*export\s+(?:declare\s+)?(async\s+function\s*\*?|function\s*\*?|abstract\s+class|class|const|let|var|interface|type|enum)\s+([A-Za-z_$][\w$]*)`)

	exportDefaultRe = regexp.MustCompile(`(?m)^[ \t]*export\s+default\s+(?:async\s+)?(?:function\s*\*?|class)?\s*([A-Za-z_$][\w$]*)?`)

	dynamicImportRe = regexp.MustCompile(`\bimport\s*\(\s*['"]([^'"]+)['"]`)

	requireRe = regexp.MustCompile(`\brequire\s*\(\s*['"]([^'"]+)['"]`)
)

// PatternExtractor is the regex-based extraction engine
type PatternExtractor struct{}

// NewPatternExtractor creates a new pattern-based extractor
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

type patternMatch struct {
	offset int
	imp    *domain.Import
	exps   []*domain.Export
}

// Extract scans source text for the recognized import and export forms
func (p *PatternExtractor) Extract(file *domain.ModuleFile) (*domain.ModuleInfo, error) {
	source := string(file.Source)
	lines := newLineIndex(source)

	var matches []patternMatch

	// import ... from '...'
	for _, m := range importFromRe.FindAllStringSubmatchIndex(source, -1) {
		clause := submatch(source, m, 1)
		specifier := submatch(source, m, 2)
		imp := &domain.Import{
			Specifier: specifier,
			Class:     ClassifySpecifier(specifier),
			Line:      lines.lineAt(m[0]),
		}
		parseImportClause(clause, imp)
		matches = append(matches, patternMatch{offset: m[0], imp: imp})
	}

	// import '...'
	for _, m := range importSideEffectRe.FindAllStringSubmatchIndex(source, -1) {
		specifier := submatch(source, m, 1)
		matches = append(matches, patternMatch{offset: m[0], imp: &domain.Import{
			Specifier: specifier,
			Kind:      domain.ImportKindSideEffect,
			Class:     ClassifySpecifier(specifier),
			Line:      lines.lineAt(m[0]),
		}})
	}

	// export { ... } and export { ... } from '...'
	for _, m := range exportBraceRe.FindAllStringSubmatchIndex(source, -1) {
		entries := parseBindingList(submatch(source, m, 1))
		specifier := submatch(source, m, 2)
		line := lines.lineAt(m[0])

		match := patternMatch{offset: m[0]}
		if specifier != "" {
			// Re-export: an edge for graph purposes plus forwarded exports
			imp := &domain.Import{
				Specifier: specifier,
				Kind:      domain.ImportKindReExport,
				Class:     ClassifySpecifier(specifier),
				Line:      line,
			}
			for _, e := range entries {
				imp.Specifiers = append(imp.Specifiers, domain.ImportSpecifier{
					Imported: e.name,
					Local:    e.alias,
				})
				match.exps = append(match.exps, &domain.Export{
					Name:     e.alias,
					ReExport: true,
					Source:   specifier,
					Line:     line,
				})
			}
			match.imp = imp
		} else {
			for _, e := range entries {
				match.exps = append(match.exps, &domain.Export{
					Name: e.alias,
					Line: line,
				})
			}
		}
		matches = append(matches, match)
	}

	// export * from '...' and export * as ns from '...'
	for _, m := range exportStarRe.FindAllStringSubmatchIndex(source, -1) {
		alias := submatch(source, m, 1)
		specifier := submatch(source, m, 2)
		line := lines.lineAt(m[0])
		name := alias
		if name == "" {
			name = "*"
		}
		matches = append(matches, patternMatch{
			offset: m[0],
			imp: &domain.Import{
				Specifier:  specifier,
				Kind:       domain.ImportKindReExport,
				Class:      ClassifySpecifier(specifier),
				Specifiers: []domain.ImportSpecifier{{Imported: "*", Local: alias}},
				Line:       line,
			},
			exps: []*domain.Export{{
				Name:     name,
				ReExport: true,
				Source:   specifier,
				Line:     line,
			}},
		})
	}

	// export <declaration> <name>
	for _, m := range exportDeclRe.FindAllStringSubmatchIndex(source, -1) {
		decl := normalizeDeclaration(submatch(source, m, 1))
		name := submatch(source, m, 2)
		matches = append(matches, patternMatch{offset: m[0], exps: []*domain.Export{{
			Name:        name,
			Declaration: decl,
			Line:        lines.lineAt(m[0]),
		}}})
	}

	// export default ...
	// Importers bind the symbol "default", so that is the recorded name;
	// the declared local name (if any) is kept as the declaration hint.
	for _, m := range exportDefaultRe.FindAllStringSubmatchIndex(source, -1) {
		matches = append(matches, patternMatch{offset: m[0], exps: []*domain.Export{{
			Name: "default",
			Line: lines.lineAt(m[0]),
		}}})
	}

	// import('...')
	for _, m := range dynamicImportRe.FindAllStringSubmatchIndex(source, -1) {
		specifier := submatch(source, m, 1)
		matches = append(matches, patternMatch{offset: m[0], imp: &domain.Import{
			Specifier: specifier,
			Kind:      domain.ImportKindDynamic,
			Class:     ClassifySpecifier(specifier),
			Line:      lines.lineAt(m[0]),
		}})
	}

	// require('...')
	for _, m := range requireRe.FindAllStringSubmatchIndex(source, -1) {
		specifier := submatch(source, m, 1)
		matches = append(matches, patternMatch{offset: m[0], imp: &domain.Import{
			Specifier: specifier,
			Kind:      domain.ImportKindRequire,
			Class:     ClassifySpecifier(specifier),
			Line:      lines.lineAt(m[0]),
		}})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].offset < matches[j].offset
	})

	info := &domain.ModuleInfo{
		FileID:  file.ID,
		AbsPath: file.AbsPath,
		Imports: make([]*domain.Import, 0, len(matches)),
		Exports: make([]*domain.Export, 0, len(matches)),
	}
	for _, m := range matches {
		if m.imp != nil {
			info.Imports = append(info.Imports, m.imp)
		}
		info.Exports = append(info.Exports, m.exps...)
	}
	return info, nil
}

// binding is one entry of a { a, b as c } list
type binding struct {
	name  string // original name
	alias string // bound/exported name (same as name without "as")
}

// parseBindingList splits the inside of a brace list into bindings
func parseBindingList(list string) []binding {
	var out []binding
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		part = strings.TrimPrefix(part, "type ")
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, alias := part, part
		if idx := strings.Index(part, " as "); idx >= 0 {
			name = strings.TrimSpace(part[:idx])
			alias = strings.TrimSpace(part[idx+4:])
		}
		out = append(out, binding{name: name, alias: alias})
	}
	return out
}

// parseImportClause fills kind and specifiers from the clause between
// "import" and "from"
func parseImportClause(clause string, imp *domain.Import) {
	clause = strings.TrimSpace(clause)

	braceStart := strings.Index(clause, "{")
	braceEnd := strings.LastIndex(clause, "}")

	outer := clause
	var braced string
	if braceStart >= 0 && braceEnd > braceStart {
		braced = clause[braceStart+1 : braceEnd]
		outer = clause[:braceStart] + clause[braceEnd+1:]
	}

	hasDefault := false
	hasNamed := false
	hasNamespace := false

	// Default binding and/or namespace binding live outside the braces
	for _, part := range strings.Split(outer, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "*") {
			alias := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(strings.TrimPrefix(part, "*")), "as"))
			imp.Specifiers = append(imp.Specifiers, domain.ImportSpecifier{
				Imported: "*",
				Local:    alias,
			})
			hasNamespace = true
			continue
		}
		imp.Specifiers = append(imp.Specifiers, domain.ImportSpecifier{
			Imported: "default",
			Local:    part,
		})
		hasDefault = true
	}

	for _, e := range parseBindingList(braced) {
		imp.Specifiers = append(imp.Specifiers, domain.ImportSpecifier{
			Imported: e.name,
			Local:    e.alias,
		})
		hasNamed = true
	}

	switch {
	case hasNamespace:
		imp.Kind = domain.ImportKindNamespace
	case hasNamed:
		imp.Kind = domain.ImportKindNamed
	case hasDefault:
		imp.Kind = domain.ImportKindDefault
	default:
		imp.Kind = domain.ImportKindSideEffect
	}
}

// normalizeDeclaration collapses "async function *" variants to one token
func normalizeDeclaration(decl string) string {
	decl = strings.TrimSpace(decl)
	switch {
	case strings.Contains(decl, "function"):
		return "function"
	case strings.Contains(decl, "class"):
		return "class"
	default:
		return decl
	}
}

// lineIndex maps byte offsets to 1-based line numbers
type lineIndex struct {
	newlines []int
}

func newLineIndex(source string) *lineIndex {
	var nl []int
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			nl = append(nl, i)
		}
	}
	return &lineIndex{newlines: nl}
}

func (l *lineIndex) lineAt(offset int) int {
	return sort.SearchInts(l.newlines, offset) + 1
}

func submatch(source string, m []int, group int) string {
	start, end := m[2*group], m[2*group+1]
	if start < 0 {
		return ""
	}
	return source[start:end]
}
