package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/depscan/domain"
	"github.com/ludo-technologies/depscan/internal/parser"
)

// TreeSitterExtractor extracts imports and exports from a real parse
// tree instead of text patterns. Slower than the pattern engine but
// immune to import-shaped text inside strings and comments.
type TreeSitterExtractor struct{}

// NewTreeSitterExtractor creates a new tree-sitter based extractor
func NewTreeSitterExtractor() *TreeSitterExtractor {
	return &TreeSitterExtractor{}
}

// Extract parses the file and walks the syntax tree for import and
// export nodes
func (t *TreeSitterExtractor) Extract(file *domain.ModuleFile) (*domain.ModuleInfo, error) {
	p := parser.ForFile(file.AbsPath)
	defer p.Close()

	tree, err := p.Parse(file.Source)
	if err != nil {
		return nil, domain.NewParseError(file.ID, err)
	}
	defer tree.Close()

	info := &domain.ModuleInfo{
		FileID:  file.ID,
		AbsPath: file.AbsPath,
		Imports: make([]*domain.Import, 0),
		Exports: make([]*domain.Export, 0),
	}

	walk(tree.RootNode(), func(node *sitter.Node) bool {
		switch node.Type() {
		case "import_statement":
			if imp := t.processImport(node, file.Source); imp != nil {
				info.Imports = append(info.Imports, imp)
			}
			return false

		case "export_statement":
			t.processExport(node, file.Source, info)
			return false

		case "call_expression":
			if imp := t.processCall(node, file.Source); imp != nil {
				info.Imports = append(info.Imports, imp)
			}
		}
		return true
	})

	return info, nil
}

// walk visits node and, when fn returns true, its named children
func walk(node *sitter.Node, fn func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		walk(node.NamedChild(i), fn)
	}
}

// processImport handles import_statement nodes
func (t *TreeSitterExtractor) processImport(node *sitter.Node, source []byte) *domain.Import {
	specifier := stringValue(node.ChildByFieldName("source"), source)
	if specifier == "" {
		return nil
	}

	imp := &domain.Import{
		Specifier: specifier,
		Class:     ClassifySpecifier(specifier),
		Line:      int(node.StartPoint().Row) + 1,
	}

	hasDefault := false
	hasNamed := false
	hasNamespace := false

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			c := child.NamedChild(j)
			switch c.Type() {
			case "identifier":
				hasDefault = true
				imp.Specifiers = append(imp.Specifiers, domain.ImportSpecifier{
					Imported: "default",
					Local:    c.Content(source),
				})
			case "namespace_import":
				hasNamespace = true
				imp.Specifiers = append(imp.Specifiers, domain.ImportSpecifier{
					Imported: "*",
					Local:    firstIdentifier(c, source),
				})
			case "named_imports":
				for k := 0; k < int(c.NamedChildCount()); k++ {
					spec := c.NamedChild(k)
					if spec.Type() != "import_specifier" {
						continue
					}
					name := contentOf(spec.ChildByFieldName("name"), source)
					alias := contentOf(spec.ChildByFieldName("alias"), source)
					if alias == "" {
						alias = name
					}
					if name == "" {
						continue
					}
					hasNamed = true
					imp.Specifiers = append(imp.Specifiers, domain.ImportSpecifier{
						Imported: name,
						Local:    alias,
					})
				}
			}
		}
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
	return imp
}

// processExport handles export_statement nodes, which may produce both
// an import edge (re-exports) and export records
func (t *TreeSitterExtractor) processExport(node *sitter.Node, source []byte, info *domain.ModuleInfo) {
	line := int(node.StartPoint().Row) + 1
	specifier := stringValue(node.ChildByFieldName("source"), source)

	// export default ...
	if hasUnnamedChild(node, "default") {
		info.Exports = append(info.Exports, &domain.Export{
			Name: "default",
			Line: line,
		})
		return
	}

	if specifier != "" {
		imp := &domain.Import{
			Specifier: specifier,
			Kind:      domain.ImportKindReExport,
			Class:     ClassifySpecifier(specifier),
			Line:      line,
		}

		if clause := namedChildOfType(node, "export_clause"); clause != nil {
			// export { a, b as c } from '...'
			for i := 0; i < int(clause.NamedChildCount()); i++ {
				spec := clause.NamedChild(i)
				if spec.Type() != "export_specifier" {
					continue
				}
				name := contentOf(spec.ChildByFieldName("name"), source)
				alias := contentOf(spec.ChildByFieldName("alias"), source)
				if alias == "" {
					alias = name
				}
				if name == "" {
					continue
				}
				imp.Specifiers = append(imp.Specifiers, domain.ImportSpecifier{Imported: name, Local: alias})
				info.Exports = append(info.Exports, &domain.Export{
					Name:     alias,
					ReExport: true,
					Source:   specifier,
					Line:     line,
				})
			}
		} else {
			// export * from '...' / export * as ns from '...'
			alias := ""
			if ns := namedChildOfType(node, "namespace_export"); ns != nil {
				alias = firstIdentifier(ns, source)
			}
			name := alias
			if name == "" {
				name = "*"
			}
			imp.Specifiers = append(imp.Specifiers, domain.ImportSpecifier{Imported: "*", Local: alias})
			info.Exports = append(info.Exports, &domain.Export{
				Name:     name,
				ReExport: true,
				Source:   specifier,
				Line:     line,
			})
		}

		info.Imports = append(info.Imports, imp)
		return
	}

	// export { a, b as c } referencing local declarations
	if clause := namedChildOfType(node, "export_clause"); clause != nil {
		for i := 0; i < int(clause.NamedChildCount()); i++ {
			spec := clause.NamedChild(i)
			if spec.Type() != "export_specifier" {
				continue
			}
			name := contentOf(spec.ChildByFieldName("name"), source)
			alias := contentOf(spec.ChildByFieldName("alias"), source)
			if alias == "" {
				alias = name
			}
			if name == "" {
				continue
			}
			info.Exports = append(info.Exports, &domain.Export{Name: alias, Line: line})
		}
		return
	}

	// export <declaration>
	if decl := node.ChildByFieldName("declaration"); decl != nil {
		t.processDeclaration(decl, source, line, info)
	}
}

// processDeclaration records the names bound by an exported declaration
func (t *TreeSitterExtractor) processDeclaration(decl *sitter.Node, source []byte, line int, info *domain.ModuleInfo) {
	declKind := declarationKind(decl.Type())

	if name := contentOf(decl.ChildByFieldName("name"), source); name != "" {
		info.Exports = append(info.Exports, &domain.Export{
			Name:        name,
			Declaration: declKind,
			Line:        line,
		})
		return
	}

	// const/let/var declarations bind through variable_declarators
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		if name := contentOf(child.ChildByFieldName("name"), source); name != "" {
			info.Exports = append(info.Exports, &domain.Export{
				Name:        name,
				Declaration: declKind,
				Line:        line,
			})
		}
	}
}

// processCall handles dynamic import() and CommonJS require() calls
func (t *TreeSitterExtractor) processCall(node *sitter.Node, source []byte) *domain.Import {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return nil
	}

	var kind domain.ImportKind
	switch {
	case fn.Type() == "import" || fn.Content(source) == "import":
		kind = domain.ImportKindDynamic
	case fn.Type() == "identifier" && fn.Content(source) == "require":
		kind = domain.ImportKindRequire
	default:
		return nil
	}

	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return nil
	}
	specifier := stringValue(args.NamedChild(0), source)
	if specifier == "" {
		return nil
	}

	return &domain.Import{
		Specifier: specifier,
		Kind:      kind,
		Class:     ClassifySpecifier(specifier),
		Line:      int(node.StartPoint().Row) + 1,
	}
}

// declarationKind maps tree-sitter declaration node types to the
// declaration labels used in reports
func declarationKind(nodeType string) string {
	switch nodeType {
	case "function_declaration", "generator_function_declaration", "function_signature":
		return "function"
	case "class_declaration", "abstract_class_declaration":
		return "class"
	case "lexical_declaration", "variable_declaration":
		return "const"
	case "interface_declaration":
		return "interface"
	case "type_alias_declaration":
		return "type"
	case "enum_declaration":
		return "enum"
	}
	return nodeType
}

// stringValue returns the unquoted content of a string literal node
func stringValue(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	raw := node.Content(source)
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') || (first == '`' && last == '`') {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

func contentOf(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(source)
}

func firstIdentifier(node *sitter.Node, source []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() == "identifier" {
			return c.Content(source)
		}
	}
	return ""
}

func namedChildOfType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() == nodeType {
			return c
		}
	}
	return nil
}

func hasUnnamedChild(node *sitter.Node, token string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c != nil && !c.IsNamed() && strings.TrimSpace(c.Type()) == token {
			return true
		}
	}
	return false
}
