// Package editor implements the graph editing state machine: pointer
// gestures become graph mutations, and the node/edge inspectors expose
// field-level operations on the current selection.
package editor

import (
	apperrors "concept-graph/errors"
	"concept-graph/graph"

	"go.uber.org/zap"
)

// Viewport maps screen coordinates to canvas/world coordinates for drop
// gestures that end on empty canvas space.
type Viewport struct {
	OffsetX float64
	OffsetY float64
	Zoom    float64
}

// ToWorld converts a screen point to world coordinates. A zero zoom is
// treated as 1 so an unset viewport behaves as the identity transform.
func (v Viewport) ToWorld(screenX, screenY float64) (float64, float64) {
	zoom := v.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return (screenX - v.OffsetX) / zoom, (screenY - v.OffsetY) / zoom
}

// Editor owns the authoritative graph state of one session plus the
// selection and admin flag. All mutations are synchronous; the caller
// serializes access (one writer at a time).
type Editor struct {
	g        *graph.Graph
	ids      *graph.IDGenerator
	viewport Viewport
	admin    bool

	editingNodeID string
	editingEdgeID string

	logger *zap.Logger
}

// New creates an editor with an empty graph.
func New(logger *zap.Logger, admin bool) *Editor {
	return &Editor{
		g:      graph.New(),
		ids:    &graph.IDGenerator{},
		admin:  admin,
		logger: logger,
	}
}

// Graph returns the editor's current graph.
func (e *Editor) Graph() *graph.Graph {
	return e.g
}

// Admin reports whether admin mode is active for this editor.
func (e *Editor) Admin() bool {
	return e.admin
}

// SetViewport records the current pan/zoom transform reported by the canvas.
func (e *Editor) SetViewport(v Viewport) {
	e.viewport = v
}

// EditingNode returns the node currently open in the node inspector, or nil.
func (e *Editor) EditingNode() *graph.Node {
	if e.editingNodeID == "" {
		return nil
	}
	return e.g.Node(e.editingNodeID)
}

// EditingEdge returns the edge currently open in the edge inspector, or nil.
func (e *Editor) EditingEdge() *graph.Edge {
	if e.editingEdgeID == "" {
		return nil
	}
	return e.g.Edge(e.editingEdgeID)
}

// AddConceptNode creates a concept node with default field values at the
// given world position. Used by the toolbar "add" action.
func (e *Editor) AddConceptNode(x, y float64) *graph.Node {
	id := e.ids.Next("concept")
	node := &graph.Node{
		ID: id,
		X:  x,
		Y:  y,
		Concept: &graph.Concept{
			ID:             id,
			Name:           "New Concept",
			DifficultyBand: graph.BandIntro,
			IsActive:       true,
			Version:        1,
		},
	}
	e.g.AddNode(node)
	e.logger.Debug("Added concept node", zap.String("node_id", id))
	return node
}

// Connect creates a default-metadata edge between two existing nodes from a
// drag gesture ending on a node. Self-loops are rejected; duplicate edges
// between the same ordered pair are permitted.
func (e *Editor) Connect(source, target string) (*graph.Edge, error) {
	if source == target {
		return nil, apperrors.WrapError(apperrors.ErrInvalidInput, "cannot connect a concept to itself")
	}
	if e.g.Node(source) == nil {
		return nil, apperrors.WrapErrorf(apperrors.ErrNotFound, "source node %q", source)
	}
	if e.g.Node(target) == nil {
		return nil, apperrors.WrapErrorf(apperrors.ErrNotFound, "target node %q", target)
	}

	meta := graph.DefaultEdgeMeta()
	edge := &graph.Edge{
		ID:     e.ids.Next("edge"),
		Source: source,
		Target: target,
		Label:  string(meta.RelationType),
		Meta:   meta,
		Style:  graph.StrokeFor(meta),
	}
	e.g.AddEdge(edge)
	e.logger.Debug("Connected nodes",
		zap.String("edge_id", edge.ID),
		zap.String("source", source),
		zap.String("target", target))
	return edge, nil
}

// ConnectToEmpty handles a drag gesture ending on empty canvas space:
// synthesize a new concept at the drop position, connect the origin node to
// it with a default edge, and open the node inspector on the new node.
// Admin-only.
func (e *Editor) ConnectToEmpty(source string, screenX, screenY float64) (*graph.Node, *graph.Edge, error) {
	if !e.admin {
		return nil, nil, apperrors.ErrNotAdmin
	}
	if e.g.Node(source) == nil {
		return nil, nil, apperrors.WrapErrorf(apperrors.ErrNotFound, "source node %q", source)
	}

	x, y := e.viewport.ToWorld(screenX, screenY)
	node := e.AddConceptNode(x, y)
	edge, err := e.Connect(source, node.ID)
	if err != nil {
		return nil, nil, err
	}

	e.editingNodeID = node.ID
	e.logger.Info("Created concept via edge drop",
		zap.String("node_id", node.ID),
		zap.String("source", source))
	return node, edge, nil
}

// ClickNode opens the node inspector on the clicked node.
func (e *Editor) ClickNode(id string) error {
	if e.g.Node(id) == nil {
		return apperrors.WrapErrorf(apperrors.ErrNotFound, "node %q", id)
	}
	e.editingNodeID = id
	return nil
}

// ClickEdge opens the edge inspector on the clicked edge. A no-op outside
// admin mode: read-only viewers cannot edit edges.
func (e *Editor) ClickEdge(id string) error {
	if !e.admin {
		return apperrors.ErrNotAdmin
	}
	if e.g.Edge(id) == nil {
		return apperrors.WrapErrorf(apperrors.ErrNotFound, "edge %q", id)
	}
	e.editingEdgeID = id
	return nil
}

// CloseNodeInspector clears the node selection. Edits already applied are
// kept; closing never reverts.
func (e *Editor) CloseNodeInspector() {
	e.editingNodeID = ""
}

// CloseEdgeInspector clears the edge selection.
func (e *Editor) CloseEdgeInspector() {
	e.editingEdgeID = ""
}

// RemoveNode deletes a node and cascades to its incident edges. The owned
// resources, questions, and progress are embedded in the node and removed
// with it. Admin-only.
func (e *Editor) RemoveNode(id string) error {
	if !e.admin {
		return apperrors.ErrNotAdmin
	}
	if e.g.Node(id) == nil {
		return apperrors.WrapErrorf(apperrors.ErrNotFound, "node %q", id)
	}
	e.g.RemoveNode(id)
	if e.editingNodeID == id {
		e.editingNodeID = ""
	}
	// The edge selection may have been cascaded away.
	if e.editingEdgeID != "" && e.g.Edge(e.editingEdgeID) == nil {
		e.editingEdgeID = ""
	}
	e.logger.Debug("Removed node", zap.String("node_id", id))
	return nil
}

// Export serializes the whole graph to its flat record set.
func (e *Editor) Export() graph.FlatGraph {
	return graph.Serialize(e.g)
}

// Import replaces the graph with one rebuilt from a flat record set.
// Malformed record sets are rejected whole and the current graph is kept.
func (e *Editor) Import(flat graph.FlatGraph) error {
	g, err := graph.Deserialize(flat)
	if err != nil {
		return err
	}
	e.g = g
	e.editingNodeID = ""
	e.editingEdgeID = ""
	e.logger.Info("Imported graph",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()))
	return nil
}
