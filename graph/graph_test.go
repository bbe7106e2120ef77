package graph

import "testing"

func buildTwoNodeGraph() *Graph {
	g := New()
	g.AddNode(&Node{ID: "c1", X: 10, Y: 20, Concept: &Concept{ID: "c1", Name: "A", DifficultyBand: BandIntro, IsActive: true, Version: 1}})
	g.AddNode(&Node{ID: "c2", X: 250, Y: 20, Concept: &Concept{ID: "c2", Name: "B", DifficultyBand: BandCore, IsActive: true, Version: 1}})
	meta := DefaultEdgeMeta()
	g.AddEdge(&Edge{ID: "e1", Source: "c1", Target: "c2", Label: string(meta.RelationType), Meta: meta, Style: StrokeFor(meta)})
	return g
}

func TestAddNodeDefaults(t *testing.T) {
	g := New()
	g.AddNode(&Node{ID: "c1", Concept: &Concept{ID: "c1", Name: "A"}})

	n := g.Node("c1")
	if n == nil {
		t.Fatal("node not found after AddNode")
	}
	if n.Progress.ConceptID != "c1" {
		t.Errorf("Progress.ConceptID = %q, want %q", n.Progress.ConceptID, "c1")
	}
	if n.Progress.CorrectQuestionIDs == nil || len(n.Progress.CorrectQuestionIDs) != 0 {
		t.Errorf("Progress.CorrectQuestionIDs = %v, want empty", n.Progress.CorrectQuestionIDs)
	}
	if n.Resources == nil || n.Questions == nil {
		t.Error("Resources/Questions should default to empty slices")
	}
	if n.Label != "A" {
		t.Errorf("Label = %q, want %q", n.Label, "A")
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"c3", "c1", "c2"} {
		g.AddNode(&Node{ID: id, Concept: &Concept{ID: id, Name: id}})
	}

	got := g.Nodes()
	want := []string{"c3", "c1", "c2"}
	if len(got) != len(want) {
		t.Fatalf("Nodes() returned %d nodes, want %d", len(got), len(want))
	}
	for i, n := range got {
		if n.ID != want[i] {
			t.Errorf("Nodes()[%d].ID = %q, want %q", i, n.ID, want[i])
		}
	}
}

func TestRemoveNodeCascadesEdges(t *testing.T) {
	g := buildTwoNodeGraph()
	g.AddNode(&Node{ID: "c3", Concept: &Concept{ID: "c3", Name: "C"}})
	meta := DefaultEdgeMeta()
	g.AddEdge(&Edge{ID: "e2", Source: "c2", Target: "c3", Meta: meta, Style: StrokeFor(meta)})
	g.AddEdge(&Edge{ID: "e3", Source: "c3", Target: "c1", Meta: meta, Style: StrokeFor(meta)})

	g.RemoveNode("c2")

	if g.Node("c2") != nil {
		t.Error("node c2 still present after RemoveNode")
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount = %d, want 1 (incident edges should cascade)", g.EdgeCount())
	}
	if g.Edges()[0].ID != "e3" {
		t.Errorf("surviving edge = %q, want e3", g.Edges()[0].ID)
	}
}

func TestRemoveEdge(t *testing.T) {
	g := buildTwoNodeGraph()

	g.RemoveEdge("e1")
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0", g.EdgeCount())
	}

	// Unknown id is a no-op
	g.RemoveEdge("e1")
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount after no-op removal = %d, want 0", g.EdgeCount())
	}
}

func TestDuplicateEdgesPermitted(t *testing.T) {
	g := buildTwoNodeGraph()
	meta := DefaultEdgeMeta()
	meta.RelationType = RelationReference
	g.AddEdge(&Edge{ID: "e2", Source: "c1", Target: "c2", Meta: meta, Style: StrokeFor(meta)})

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2 (duplicates between same pair allowed)", g.EdgeCount())
	}
}
