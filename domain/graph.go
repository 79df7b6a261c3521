package domain

import "sort"

// ModuleNode represents a node in the dependency graph
type ModuleNode struct {
	// ID is the unique identifier (root-relative path)
	ID string `json:"id"`

	// Name is the module name (filename without extension)
	Name string `json:"name"`

	// AbsPath is the full file path
	AbsPath string `json:"abs_path,omitempty"`

	// IsRoot indicates that no other module imports this one
	IsRoot bool `json:"is_root"`

	// IsLeaf indicates that this module imports nothing
	IsLeaf bool `json:"is_leaf"`

	// Exports lists the exported symbol names of this module
	Exports []string `json:"exports,omitempty"`
}

// DependencyEdge represents a resolved directed edge in the graph
type DependencyEdge struct {
	// From is the importing module ID
	From string `json:"from"`

	// To is the imported module ID
	To string `json:"to"`

	// Kind is the syntactic import form that produced the edge
	Kind ImportKind `json:"kind"`

	// Symbols are the bound local names carried by the edge
	Symbols []string `json:"symbols,omitempty"`

	// Line is the source line of the import statement
	Line int `json:"line,omitempty"`
}

// UnresolvedImport records an import specifier that could not be mapped
// to a discovered file. Expected for package and builtin specifiers.
type UnresolvedImport struct {
	// From is the importing module ID
	From string `json:"from"`

	// Specifier is the raw specifier as written
	Specifier string `json:"specifier"`

	// Kind is the syntactic import form
	Kind ImportKind `json:"kind"`

	// Class classifies the specifier
	Class SpecifierClass `json:"class"`
}

// DependencyGraph holds the forward adjacency map and its transpose.
// Invariant: reverse[B] contains an edge from A iff forward[A] contains
// the same edge to B; AddEdge maintains this by construction.
type DependencyGraph struct {
	// Nodes maps module ID to ModuleNode
	Nodes map[string]*ModuleNode `json:"nodes"`

	// Edges maps importing module ID to its outgoing edges
	Edges map[string][]*DependencyEdge `json:"edges"`

	// ReverseEdges maps imported module ID to incoming edges
	ReverseEdges map[string][]*DependencyEdge `json:"-"`

	// Unresolved lists specifiers that never entered the graph
	Unresolved []*UnresolvedImport `json:"unresolved,omitempty"`
}

// NewDependencyGraph creates a new empty DependencyGraph
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		Nodes:        make(map[string]*ModuleNode),
		Edges:        make(map[string][]*DependencyEdge),
		ReverseEdges: make(map[string][]*DependencyEdge),
	}
}

// AddNode adds a node to the graph
func (g *DependencyGraph) AddNode(node *ModuleNode) {
	if node == nil {
		return
	}
	g.Nodes[node.ID] = node
}

// AddEdge inserts the edge into the forward map and its transpose.
// Both insertions happen here and nowhere else.
func (g *DependencyGraph) AddEdge(edge *DependencyEdge) {
	if edge == nil {
		return
	}
	g.Edges[edge.From] = append(g.Edges[edge.From], edge)
	g.ReverseEdges[edge.To] = append(g.ReverseEdges[edge.To], edge)
}

// AddUnresolved records an import that did not resolve to a discovered file
func (g *DependencyGraph) AddUnresolved(u *UnresolvedImport) {
	if u == nil {
		return
	}
	g.Unresolved = append(g.Unresolved, u)
}

// GetNode returns a node by ID, or nil
func (g *DependencyGraph) GetNode(id string) *ModuleNode {
	return g.Nodes[id]
}

// GetOutgoingEdges returns all edges from a node
func (g *DependencyGraph) GetOutgoingEdges(id string) []*DependencyEdge {
	return g.Edges[id]
}

// GetIncomingEdges returns all edges to a node
func (g *DependencyGraph) GetIncomingEdges(id string) []*DependencyEdge {
	return g.ReverseEdges[id]
}

// Dependencies returns the distinct modules imported by id, sorted
func (g *DependencyGraph) Dependencies(id string) []string {
	return distinctTargets(g.Edges[id], func(e *DependencyEdge) string { return e.To })
}

// Importers returns the distinct modules importing id, sorted
func (g *DependencyGraph) Importers(id string) []string {
	return distinctTargets(g.ReverseEdges[id], func(e *DependencyEdge) string { return e.From })
}

// NodeCount returns the number of nodes in the graph
func (g *DependencyGraph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the total number of edges in the graph
func (g *DependencyGraph) EdgeCount() int {
	count := 0
	for _, edges := range g.Edges {
		count += len(edges)
	}
	return count
}

// GetAllNodeIDs returns all node IDs, sorted for deterministic iteration
func (g *DependencyGraph) GetAllNodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// UpdateNodeFlags recomputes IsRoot and IsLeaf for all nodes
func (g *DependencyGraph) UpdateNodeFlags() {
	for _, node := range g.Nodes {
		node.IsRoot = len(g.ReverseEdges[node.ID]) == 0
		node.IsLeaf = len(g.Edges[node.ID]) == 0
	}
}

func distinctTargets(edges []*DependencyEdge, key func(*DependencyEdge) string) []string {
	seen := make(map[string]bool, len(edges))
	var out []string
	for _, e := range edges {
		k := key(e)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
