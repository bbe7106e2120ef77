package graph

import (
	apperrors "concept-graph/errors"
)

// Fallback layout for concepts saved without a position record. Columns are
// spaced so restored nodes do not overlap.
const (
	fallbackColumnSpacing = 240
	fallbackRowY          = 120
)

// FlatEdge is the storage shape of an edge: flat and self-contained with
// explicit foreign-key style references, no nesting.
type FlatEdge struct {
	ID            string       `json:"id"`
	FromConceptID string       `json:"fromConceptId"`
	ToConceptID   string       `json:"toConceptId"`
	RelationType  RelationType `json:"relationType"`
	Weight        float64      `json:"weight"`
	Dashed        bool         `json:"dashed"`
	Color         string       `json:"color"`
	Label         string       `json:"label,omitempty"`
}

// FlatGraph is the storage-friendly record set for a whole graph: six
// parallel arrays, each entity flat. This shape is the contract a
// persistence backend must honor on both write and read.
type FlatGraph struct {
	Concepts  []Concept  `json:"concepts"`
	Resources []Resource `json:"resources"`
	Questions []Question `json:"questions"`
	Progress  []Progress `json:"progress"`
	Edges     []FlatEdge `json:"edges"`
	Positions []Position `json:"positions"`
}

// normalizeMeta fills unset meta fields with the documented defaults.
func normalizeMeta(meta EdgeMeta) EdgeMeta {
	if meta.RelationType == "" {
		meta.RelationType = RelationPrerequisite
	}
	if meta.Weight == 0 {
		meta.Weight = DefaultEdgeWeight
	}
	if meta.Color == "" {
		meta.Color = DefaultEdgeColor
	}
	return meta
}

// Serialize maps the visual graph to its flat record set. Every node yields
// exactly one concept, one position, and one progress record; concept-less
// nodes get a fallback concept derived from the display label.
func Serialize(g *Graph) FlatGraph {
	flat := FlatGraph{
		Concepts:  []Concept{},
		Resources: []Resource{},
		Questions: []Question{},
		Progress:  []Progress{},
		Edges:     []FlatEdge{},
		Positions: []Position{},
	}

	for _, n := range g.Nodes() {
		concept := n.Concept
		if concept == nil {
			name := n.Label
			if name == "" {
				name = "Concept"
			}
			concept = &Concept{ID: n.ID, Name: name}
		}
		flat.Concepts = append(flat.Concepts, *concept)
		flat.Positions = append(flat.Positions, Position{ConceptID: n.ID, X: n.X, Y: n.Y})
		flat.Resources = append(flat.Resources, n.Resources...)
		flat.Questions = append(flat.Questions, n.Questions...)

		progress := n.Progress
		if progress.ConceptID == "" {
			progress = NewProgress(n.ID)
		}
		flat.Progress = append(flat.Progress, progress)
	}

	for _, e := range g.Edges() {
		meta := normalizeMeta(e.Meta)
		label := e.Label
		if label == "" {
			label = string(meta.RelationType)
		}
		flat.Edges = append(flat.Edges, FlatEdge{
			ID:            e.ID,
			FromConceptID: e.Source,
			ToConceptID:   e.Target,
			RelationType:  meta.RelationType,
			Weight:        meta.Weight,
			Dashed:        meta.Dashed,
			Color:         meta.Color,
			Label:         label,
		})
	}

	return flat
}

// Validate checks the referential integrity of a flat record set: concept
// ids must be unique, and every resource, question, progress, edge, and
// position record must reference a present concept. Violations return
// ErrMalformedGraph rather than producing a dangling visual artifact.
func Validate(flat FlatGraph) error {
	known := make(map[string]bool, len(flat.Concepts))
	for _, c := range flat.Concepts {
		if c.ID == "" {
			return apperrors.WrapError(apperrors.ErrMalformedGraph, "concept with empty id")
		}
		if known[c.ID] {
			return apperrors.WrapErrorf(apperrors.ErrMalformedGraph, "duplicate concept id %q", c.ID)
		}
		known[c.ID] = true
	}
	for _, r := range flat.Resources {
		if !known[r.ConceptID] {
			return apperrors.WrapErrorf(apperrors.ErrMalformedGraph, "resource %q references unknown concept %q", r.ID, r.ConceptID)
		}
	}
	for _, q := range flat.Questions {
		if !known[q.ConceptID] {
			return apperrors.WrapErrorf(apperrors.ErrMalformedGraph, "question %q references unknown concept %q", q.ID, q.ConceptID)
		}
	}
	for _, p := range flat.Progress {
		if !known[p.ConceptID] {
			return apperrors.WrapErrorf(apperrors.ErrMalformedGraph, "progress references unknown concept %q", p.ConceptID)
		}
	}
	for _, pos := range flat.Positions {
		if !known[pos.ConceptID] {
			return apperrors.WrapErrorf(apperrors.ErrMalformedGraph, "position references unknown concept %q", pos.ConceptID)
		}
	}
	for _, e := range flat.Edges {
		if !known[e.FromConceptID] {
			return apperrors.WrapErrorf(apperrors.ErrMalformedGraph, "edge %q references unknown source concept %q", e.ID, e.FromConceptID)
		}
		if !known[e.ToConceptID] {
			return apperrors.WrapErrorf(apperrors.ErrMalformedGraph, "edge %q references unknown target concept %q", e.ID, e.ToConceptID)
		}
	}
	return nil
}

// Deserialize rebuilds the visual graph from a flat record set. The input is
// validated first; a malformed record set is rejected whole. Edge styles are
// recomputed with the same derivation used during editing, so a freshly
// loaded graph renders identically to a freshly saved one.
func Deserialize(flat FlatGraph) (*Graph, error) {
	if err := Validate(flat); err != nil {
		return nil, err
	}

	positionByConcept := make(map[string]Position, len(flat.Positions))
	for _, pos := range flat.Positions {
		positionByConcept[pos.ConceptID] = pos
	}
	progressByConcept := make(map[string]Progress, len(flat.Progress))
	for _, p := range flat.Progress {
		progressByConcept[p.ConceptID] = p
	}
	resourcesByConcept := make(map[string][]Resource)
	for _, r := range flat.Resources {
		resourcesByConcept[r.ConceptID] = append(resourcesByConcept[r.ConceptID], r)
	}
	questionsByConcept := make(map[string][]Question)
	for _, q := range flat.Questions {
		questionsByConcept[q.ConceptID] = append(questionsByConcept[q.ConceptID], q)
	}

	g := New()
	for i, c := range flat.Concepts {
		concept := c
		node := &Node{
			ID:        c.ID,
			Concept:   &concept,
			Resources: resourcesByConcept[c.ID],
			Questions: questionsByConcept[c.ID],
		}
		if pos, ok := positionByConcept[c.ID]; ok {
			node.X, node.Y = pos.X, pos.Y
		} else {
			node.X = float64(i * fallbackColumnSpacing)
			node.Y = fallbackRowY
		}
		if progress, ok := progressByConcept[c.ID]; ok {
			node.Progress = progress
		}
		g.AddNode(node)
	}

	for _, fe := range flat.Edges {
		meta := normalizeMeta(EdgeMeta{
			RelationType: fe.RelationType,
			Weight:       fe.Weight,
			Dashed:       fe.Dashed,
			Color:        fe.Color,
		})
		label := fe.Label
		if label == "" {
			label = string(meta.RelationType)
		}
		g.AddEdge(&Edge{
			ID:     fe.ID,
			Source: fe.FromConceptID,
			Target: fe.ToConceptID,
			Label:  label,
			Meta:   meta,
			Style:  StrokeFor(meta),
		})
	}

	return g, nil
}
