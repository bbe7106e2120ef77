// Package graph holds the concept-graph data model and its flat-record
// serialization protocol. The Graph type is the authoritative in-memory
// state of one editing session; the editor package mutates it through
// well-defined operations and the codec maps it to and from the flat
// relational shape a persistence backend would store.
package graph

import "math"

// DifficultyBand classifies how advanced a concept is.
type DifficultyBand string

const (
	BandIntro   DifficultyBand = "intro"
	BandCore    DifficultyBand = "core"
	BandAdvance DifficultyBand = "advance"
)

// ValidBand reports whether b is one of the three known bands.
func ValidBand(b DifficultyBand) bool {
	switch b {
	case BandIntro, BandCore, BandAdvance:
		return true
	}
	return false
}

// RelationType classifies a directed relation between two concepts.
type RelationType string

const (
	RelationPrerequisite RelationType = "prerequisite"
	RelationOptional     RelationType = "optional"
	RelationReference    RelationType = "reference"
)

// ValidRelation reports whether r is one of the three known relation types.
func ValidRelation(r RelationType) bool {
	switch r {
	case RelationPrerequisite, RelationOptional, RelationReference:
		return true
	}
	return false
}

// Edge metadata defaults. Weight is intended to stay within [0.1, 3] but the
// stored value is never clamped; only the derived stroke width has a floor.
const (
	DefaultEdgeWeight = 0.7
	DefaultEdgeColor  = "#5b7fb0"

	minStrokeWidth = 1.5
	strokeScale    = 3
)

// Concept is a single knowledge node.
type Concept struct {
	ID             string         `json:"id"`
	TopicID        *string        `json:"topicId,omitempty"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	DifficultyBand DifficultyBand `json:"difficultyBand"`
	IsActive       bool           `json:"isActive"`
	Version        int            `json:"version"`
}

// Resource is a learning material owned by exactly one concept. Ownership is
// fixed at creation; there is no reparenting operation.
type Resource struct {
	ID         string                 `json:"id"`
	ConceptID  string                 `json:"conceptId"`
	ResType    string                 `json:"resType"`
	Title      string                 `json:"title"`
	URL        string                 `json:"url"`
	IsActive   bool                   `json:"isActive"`
	Difficulty string                 `json:"difficulty,omitempty"`
	MetaData   map[string]interface{} `json:"metaData,omitempty"`
}

// Question is an assessment item owned by exactly one concept.
type Question struct {
	ID          string `json:"id"`
	ConceptID   string `json:"conceptId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Answer      string `json:"answer,omitempty"`
}

// Progress records which questions of a concept were answered correctly.
// At most one per concept; CorrectQuestionIDs has set semantics.
type Progress struct {
	ConceptID          string   `json:"conceptId"`
	CorrectQuestionIDs []string `json:"correctQuestionIds"`
}

// NewProgress returns the default empty progress for a concept.
func NewProgress(conceptID string) Progress {
	return Progress{ConceptID: conceptID, CorrectQuestionIDs: []string{}}
}

// IsCorrect reports whether the question id is marked correct.
func (p *Progress) IsCorrect(questionID string) bool {
	for _, id := range p.CorrectQuestionIDs {
		if id == questionID {
			return true
		}
	}
	return false
}

// MarkCorrect adds the question id to the correct set. Idempotent.
func (p *Progress) MarkCorrect(questionID string) {
	if p.IsCorrect(questionID) {
		return
	}
	p.CorrectQuestionIDs = append(p.CorrectQuestionIDs, questionID)
}

// ClearCorrect removes the question id from the correct set. Removing an
// absent id is a no-op.
func (p *Progress) ClearCorrect(questionID string) {
	for i, id := range p.CorrectQuestionIDs {
		if id == questionID {
			p.CorrectQuestionIDs = append(p.CorrectQuestionIDs[:i], p.CorrectQuestionIDs[i+1:]...)
			return
		}
	}
}

// Position is the 2D layout coordinate of a concept. Purely presentational,
// persisted so layout survives a save/load round trip.
type Position struct {
	ConceptID string  `json:"conceptId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// EdgeMeta carries the stored edge attributes.
type EdgeMeta struct {
	RelationType RelationType `json:"relationType"`
	Weight       float64      `json:"weight"`
	Dashed       bool         `json:"dashed"`
	Color        string       `json:"color"`
}

// DefaultEdgeMeta returns the metadata assigned to a freshly connected edge.
func DefaultEdgeMeta() EdgeMeta {
	return EdgeMeta{
		RelationType: RelationPrerequisite,
		Weight:       DefaultEdgeWeight,
		Dashed:       false,
		Color:        DefaultEdgeColor,
	}
}

// EdgeStyle is the visual rendering derived from EdgeMeta. It is recomputed
// from the stored meta on every update and on deserialization, so a freshly
// loaded graph renders identically to a freshly saved one.
type EdgeStyle struct {
	StrokeWidth float64 `json:"strokeWidth"`
	StrokeColor string  `json:"strokeColor"`
	Dashed      bool    `json:"dashed"`
}

// StrokeFor derives the visual style from edge metadata. The stroke width is
// floored at minStrokeWidth; the stored weight itself is left untouched.
func StrokeFor(meta EdgeMeta) EdgeStyle {
	return EdgeStyle{
		StrokeWidth: math.Max(minStrokeWidth, meta.Weight*strokeScale),
		StrokeColor: meta.Color,
		Dashed:      meta.Dashed,
	}
}
