package graph

// Node is one visual element of the editing surface. It carries the concept
// plus its owned resources, questions, and progress, and the current canvas
// position. Label is the derived display label and is refreshed whenever the
// underlying data changes.
type Node struct {
	ID        string
	X, Y      float64
	Label     string
	Concept   *Concept
	Resources []Resource
	Questions []Question
	Progress  Progress
}

// Edge is a directed relation between two nodes. Style is derived from Meta
// and never edited directly.
type Edge struct {
	ID     string
	Source string
	Target string
	Label  string
	Meta   EdgeMeta
	Style  EdgeStyle
}

// Graph holds the authoritative node and edge collections of one editing
// session. Nodes iterate in insertion order for deterministic serialization.
// Single writer; each mutation is atomic relative to the container.
type Graph struct {
	nodes map[string]*Node
	order []string
	edges []*Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode inserts a node. Missing progress defaults to an empty record and
// the display label is derived immediately.
func (g *Graph) AddNode(n *Node) {
	if n.Progress.ConceptID == "" {
		n.Progress = NewProgress(n.ID)
	}
	if n.Resources == nil {
		n.Resources = []Resource{}
	}
	if n.Questions == nil {
		n.Questions = []Question{}
	}
	n.Label = DisplayLabel(n)
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	result := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		if n, ok := g.nodes[id]; ok {
			result = append(result, n)
		}
	}
	return result
}

// RemoveNode deletes the node and all incident edges. Owned resources,
// questions, and progress live inside the node and are removed with it.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)

	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	filtered := g.edges[:0]
	for _, e := range g.edges {
		if e.Source != id && e.Target != id {
			filtered = append(filtered, e)
		}
	}
	g.edges = filtered
}

// AddEdge appends an edge. Duplicate edges between the same ordered pair are
// permitted; callers decide whether to reject self-loops.
func (g *Graph) AddEdge(e *Edge) {
	g.edges = append(g.edges, e)
}

// Edge returns the edge with the given id, or nil.
func (g *Graph) Edge(id string) *Edge {
	for _, e := range g.edges {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Edges returns all edges.
func (g *Graph) Edges() []*Edge {
	return g.edges
}

// RemoveEdge removes the edge with the given id. Unknown ids are a no-op.
func (g *Graph) RemoveEdge(id string) {
	for i, e := range g.edges {
		if e.ID == id {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			return
		}
	}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}
