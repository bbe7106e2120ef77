package editor

import (
	apperrors "concept-graph/errors"
	"concept-graph/graph"
)

// Field mutations are a closed set of typed commands, one variant per
// editable field group, applied exhaustively instead of merging untyped
// patch objects.

// ConceptCommand mutates one field group of a concept.
type ConceptCommand interface {
	applyConcept(c *graph.Concept) error
}

// SetName sets the concept display name.
type SetName struct {
	Name string
}

func (cmd SetName) applyConcept(c *graph.Concept) error {
	c.Name = cmd.Name
	return nil
}

// SetDescription sets the concept free-text description.
type SetDescription struct {
	Description string
}

func (cmd SetDescription) applyConcept(c *graph.Concept) error {
	c.Description = cmd.Description
	return nil
}

// SetDifficulty sets the difficulty band, constrained to the closed enum.
type SetDifficulty struct {
	Band graph.DifficultyBand
}

func (cmd SetDifficulty) applyConcept(c *graph.Concept) error {
	if !graph.ValidBand(cmd.Band) {
		return apperrors.WrapErrorf(apperrors.ErrInvalidInput, "unknown difficulty band %q", cmd.Band)
	}
	c.DifficultyBand = cmd.Band
	return nil
}

// EdgeCommand mutates one field group of an edge.
type EdgeCommand interface {
	applyEdge(e *graph.Edge) error
}

// SetLabel overrides the edge display label directly.
type SetLabel struct {
	Label string
}

func (cmd SetLabel) applyEdge(e *graph.Edge) error {
	e.Label = cmd.Label
	return nil
}

// SetRelationType changes the relation type and rewrites the display label
// to match. Last write wins; a custom label set earlier is overwritten.
type SetRelationType struct {
	Relation graph.RelationType
}

func (cmd SetRelationType) applyEdge(e *graph.Edge) error {
	if !graph.ValidRelation(cmd.Relation) {
		return apperrors.WrapErrorf(apperrors.ErrInvalidInput, "unknown relation type %q", cmd.Relation)
	}
	e.Meta.RelationType = cmd.Relation
	e.Label = string(cmd.Relation)
	return nil
}

// SetWeight sets the stored edge weight. The value is stored verbatim; only
// the derived stroke width is floored at render derivation.
type SetWeight struct {
	Weight float64
}

func (cmd SetWeight) applyEdge(e *graph.Edge) error {
	e.Meta.Weight = cmd.Weight
	return nil
}

// SetColor sets the stroke color.
type SetColor struct {
	Color string
}

func (cmd SetColor) applyEdge(e *graph.Edge) error {
	if cmd.Color == "" {
		return apperrors.WrapError(apperrors.ErrInvalidInput, "empty edge color")
	}
	e.Meta.Color = cmd.Color
	return nil
}

// SetDashed toggles the dashed stroke style. Visual only; no semantic effect
// on the graph.
type SetDashed struct {
	Dashed bool
}

func (cmd SetDashed) applyEdge(e *graph.Edge) error {
	e.Meta.Dashed = cmd.Dashed
	return nil
}
