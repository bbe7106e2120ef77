// Package types holds the request and response shapes of the editor API.
package types

import "concept-graph/graph"

// SessionResponse describes a newly created or queried session.
type SessionResponse struct {
	ID    string `json:"id"`
	Admin bool   `json:"admin"`
}

// ViewportRequest reports the canvas pan/zoom transform.
type ViewportRequest struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Zoom    float64 `json:"zoom"`
}

// ConnectRequest is a drag gesture ending on an existing node.
type ConnectRequest struct {
	Source string `json:"source" binding:"required"`
	Target string `json:"target" binding:"required"`
}

// ConnectAtRequest is a drag gesture ending on empty canvas space, with the
// drop point in screen coordinates.
type ConnectAtRequest struct {
	Source  string  `json:"source" binding:"required"`
	ScreenX float64 `json:"screenX"`
	ScreenY float64 `json:"screenY"`
}

// AddNodeRequest places a new concept node at a world position.
type AddNodeRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ConceptUpdateRequest carries optional field updates for the selected
// concept. Nil fields are left untouched.
type ConceptUpdateRequest struct {
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	DifficultyBand *string `json:"difficultyBand,omitempty"`
}

// ResourceRequest carries fields for a new resource.
type ResourceRequest struct {
	ResType    string                 `json:"resType"`
	Title      string                 `json:"title"`
	URL        string                 `json:"url"`
	IsActive   bool                   `json:"isActive"`
	Difficulty string                 `json:"difficulty,omitempty"`
	MetaData   map[string]interface{} `json:"metaData,omitempty"`
}

// QuestionRequest carries fields for a new question.
type QuestionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Answer      string `json:"answer,omitempty"`
}

// ToggleCorrectRequest marks a question correct or incorrect.
type ToggleCorrectRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Correct    bool   `json:"correct"`
}

// EdgeUpdateRequest carries optional field updates for the selected edge.
// Nil fields are left untouched.
type EdgeUpdateRequest struct {
	Label        *string  `json:"label,omitempty"`
	RelationType *string  `json:"relationType,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	Color        *string  `json:"color,omitempty"`
	Dashed       *bool    `json:"dashed,omitempty"`
}

// NodeView is the render shape of one node.
type NodeView struct {
	ID        string         `json:"id"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Label     string         `json:"label"`
	Concept   *graph.Concept `json:"concept,omitempty"`
	Questions int            `json:"questions"`
	Resources int            `json:"resources"`
	PassStat  graph.PassStat `json:"passStat"`
}

// EdgeView is the render shape of one edge.
type EdgeView struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Target string          `json:"target"`
	Label  string          `json:"label"`
	Meta   graph.EdgeMeta  `json:"meta"`
	Style  graph.EdgeStyle `json:"style"`
}

// GraphView is the render shape of the whole canvas.
type GraphView struct {
	Nodes []NodeView `json:"nodes"`
	Edges []EdgeView `json:"edges"`
}

// ResourceView is a resource with its description-adjacent fields rendered.
type ResourceView struct {
	graph.Resource
	TitleHTML string `json:"titleHtml,omitempty"`
}

// NodeInspectorView is the drawer payload for a node: the concept with its
// description rendered to HTML, plus owned resources, questions, and
// progress.
type NodeInspectorView struct {
	Concept         *graph.Concept   `json:"concept"`
	DescriptionHTML string           `json:"descriptionHtml,omitempty"`
	Resources       []graph.Resource `json:"resources"`
	Questions       []graph.Question `json:"questions"`
	Progress        graph.Progress   `json:"progress"`
	PassStat        graph.PassStat   `json:"passStat"`
}

// EdgeInspectorView is the drawer payload for an edge.
type EdgeInspectorView struct {
	Edge EdgeView `json:"edge"`
}
