package editor

import (
	"testing"

	apperrors "concept-graph/errors"
	"concept-graph/graph"

	"go.uber.org/zap"
)

func newTestEditor(t *testing.T, admin bool) *Editor {
	t.Helper()
	return New(zap.NewNop(), admin)
}

// seedPair builds the two-node starting graph c1 -> c2 used by the gesture
// tests and returns the two node ids.
func seedPair(t *testing.T, e *Editor) (string, string) {
	t.Helper()
	a := e.AddConceptNode(0, 0)
	b := e.AddConceptNode(240, 0)
	if _, err := e.Connect(a.ID, b.ID); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	return a.ID, b.ID
}

func TestConnectDefaults(t *testing.T) {
	e := newTestEditor(t, true)
	a := e.AddConceptNode(0, 0)
	b := e.AddConceptNode(240, 0)

	edge, err := e.Connect(a.ID, b.ID)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if edge.Meta.RelationType != graph.RelationPrerequisite {
		t.Errorf("RelationType = %q, want prerequisite", edge.Meta.RelationType)
	}
	if edge.Meta.Weight != 0.7 {
		t.Errorf("Weight = %v, want 0.7", edge.Meta.Weight)
	}
	if edge.Meta.Dashed {
		t.Error("Dashed = true, want false")
	}
	if edge.Meta.Color != "#5b7fb0" {
		t.Errorf("Color = %q, want #5b7fb0", edge.Meta.Color)
	}
	if edge.Label != "prerequisite" {
		t.Errorf("Label = %q, want prerequisite", edge.Label)
	}
}

func TestConnectRejectsSelfLoop(t *testing.T) {
	e := newTestEditor(t, true)
	a := e.AddConceptNode(0, 0)

	if _, err := e.Connect(a.ID, a.ID); !apperrors.IsInvalidInput(err) {
		t.Errorf("Connect(self, self) error = %v, want invalid input", err)
	}
	if e.Graph().EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0", e.Graph().EdgeCount())
	}
}

func TestConnectUnknownNodes(t *testing.T) {
	e := newTestEditor(t, true)
	a := e.AddConceptNode(0, 0)

	if _, err := e.Connect(a.ID, "ghost"); !apperrors.IsNotFound(err) {
		t.Errorf("Connect to unknown target error = %v, want not found", err)
	}
	if _, err := e.Connect("ghost", a.ID); !apperrors.IsNotFound(err) {
		t.Errorf("Connect from unknown source error = %v, want not found", err)
	}
}

func TestConnectToEmptyCreatesConceptAndOpensInspector(t *testing.T) {
	e := newTestEditor(t, true)
	src, _ := seedPair(t, e)
	e.SetViewport(Viewport{OffsetX: 100, OffsetY: 50, Zoom: 2})

	node, edge, err := e.ConnectToEmpty(src, 500, 250)
	if err != nil {
		t.Fatalf("ConnectToEmpty() error = %v", err)
	}

	if e.Graph().NodeCount() != 3 {
		t.Fatalf("NodeCount = %d, want 3", e.Graph().NodeCount())
	}
	if node.ID == src {
		t.Error("new node id collides with source")
	}
	if node.Concept.Name != "New Concept" {
		t.Errorf("Name = %q, want New Concept", node.Concept.Name)
	}
	if node.Concept.DifficultyBand != graph.BandIntro {
		t.Errorf("DifficultyBand = %q, want intro", node.Concept.DifficultyBand)
	}
	if !node.Concept.IsActive {
		t.Error("IsActive = false, want true")
	}
	if node.Concept.Version != 1 {
		t.Errorf("Version = %d, want 1", node.Concept.Version)
	}

	// Screen (500,250) through offset (100,50) and zoom 2 lands at (200,100)
	if node.X != 200 || node.Y != 100 {
		t.Errorf("drop position = (%v,%v), want (200,100)", node.X, node.Y)
	}

	if edge.Source != src || edge.Target != node.ID {
		t.Errorf("edge endpoints = %q->%q, want %q->%q", edge.Source, edge.Target, src, node.ID)
	}
	if edge.Meta != graph.DefaultEdgeMeta() {
		t.Errorf("edge meta = %+v, want defaults", edge.Meta)
	}

	editing := e.EditingNode()
	if editing == nil || editing.ID != node.ID {
		t.Error("node inspector should be open on the new node")
	}
}

func TestConnectToEmptyRequiresAdmin(t *testing.T) {
	e := newTestEditor(t, false)
	src, _ := seedPair(t, e)

	if _, _, err := e.ConnectToEmpty(src, 100, 100); !apperrors.IsNotAdmin(err) {
		t.Errorf("ConnectToEmpty() error = %v, want admin required", err)
	}
	if e.Graph().NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2 (no node created)", e.Graph().NodeCount())
	}
}

func TestClickEdgeRequiresAdmin(t *testing.T) {
	admin := newTestEditor(t, true)
	seedPair(t, admin)
	edgeID := admin.Graph().Edges()[0].ID
	if err := admin.ClickEdge(edgeID); err != nil {
		t.Errorf("admin ClickEdge() error = %v", err)
	}

	viewer := newTestEditor(t, false)
	seedPair(t, viewer)
	viewerEdge := viewer.Graph().Edges()[0].ID
	if err := viewer.ClickEdge(viewerEdge); !apperrors.IsNotAdmin(err) {
		t.Errorf("viewer ClickEdge() error = %v, want admin required", err)
	}
	if viewer.EditingEdge() != nil {
		t.Error("edge inspector opened for non-admin viewer")
	}
}

func TestClickNodeSelection(t *testing.T) {
	e := newTestEditor(t, true)
	a, _ := seedPair(t, e)

	if err := e.ClickNode(a); err != nil {
		t.Fatalf("ClickNode() error = %v", err)
	}
	if e.EditingNode().ID != a {
		t.Errorf("EditingNode = %q, want %q", e.EditingNode().ID, a)
	}

	e.CloseNodeInspector()
	if e.EditingNode() != nil {
		t.Error("EditingNode should be nil after close")
	}

	if err := e.ClickNode("ghost"); !apperrors.IsNotFound(err) {
		t.Errorf("ClickNode(ghost) error = %v, want not found", err)
	}
}

func TestRemoveNodeCascadesAndClearsSelection(t *testing.T) {
	e := newTestEditor(t, true)
	a, b := seedPair(t, e)

	if err := e.ClickNode(b); err != nil {
		t.Fatalf("ClickNode() error = %v", err)
	}
	edgeID := e.Graph().Edges()[0].ID
	if err := e.ClickEdge(edgeID); err != nil {
		t.Fatalf("ClickEdge() error = %v", err)
	}

	if err := e.RemoveNode(b); err != nil {
		t.Fatalf("RemoveNode() error = %v", err)
	}
	if e.Graph().Node(b) != nil {
		t.Error("node still present after removal")
	}
	if e.Graph().EdgeCount() != 0 {
		t.Error("incident edge survived node removal")
	}
	if e.EditingNode() != nil {
		t.Error("node selection not cleared by removal")
	}
	if e.EditingEdge() != nil {
		t.Error("edge selection not cleared by cascade")
	}
	if e.Graph().Node(a) == nil {
		t.Error("unrelated node removed")
	}
}

func TestImportReplacesGraphAndKeepsOldOnError(t *testing.T) {
	e := newTestEditor(t, true)
	seedPair(t, e)

	good := graph.FlatGraph{Concepts: []graph.Concept{{ID: "x1", Name: "X"}}}
	if err := e.Import(good); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if e.Graph().NodeCount() != 1 || e.Graph().Node("x1") == nil {
		t.Error("import did not replace the graph")
	}

	bad := graph.FlatGraph{
		Concepts: []graph.Concept{{ID: "y1", Name: "Y"}},
		Edges:    []graph.FlatEdge{{ID: "e", FromConceptID: "y1", ToConceptID: "ghost"}},
	}
	if err := e.Import(bad); !apperrors.IsMalformedGraph(err) {
		t.Errorf("Import(bad) error = %v, want malformed graph", err)
	}
	if e.Graph().Node("x1") == nil {
		t.Error("failed import should keep the previous graph")
	}
}
