package editor

import (
	apperrors "concept-graph/errors"
	"concept-graph/graph"

	"go.uber.org/zap"
)

// Node inspector operations. Every mutation targets the node currently open
// in the inspector and errors when no node is selected. Changes apply
// immediately; there is no separate apply step and closing the inspector
// does not revert.

// ResourcePayload carries caller-supplied fields for a new resource.
type ResourcePayload struct {
	ResType    string
	Title      string
	URL        string
	IsActive   bool
	Difficulty string
	MetaData   map[string]interface{}
}

// QuestionPayload carries caller-supplied fields for a new question.
type QuestionPayload struct {
	Title       string
	Description string
	Answer      string
}

func (e *Editor) selectedNode() (*graph.Node, error) {
	node := e.EditingNode()
	if node == nil {
		return nil, apperrors.WrapError(apperrors.ErrNoSelection, "no node open in inspector")
	}
	return node, nil
}

func (e *Editor) selectedEdge() (*graph.Edge, error) {
	edge := e.EditingEdge()
	if edge == nil {
		return nil, apperrors.WrapError(apperrors.ErrNoSelection, "no edge open in inspector")
	}
	return edge, nil
}

// UpdateConcept applies the given field commands to the selected node's
// concept and refreshes the display label.
func (e *Editor) UpdateConcept(cmds ...ConceptCommand) error {
	node, err := e.selectedNode()
	if err != nil {
		return err
	}
	if node.Concept == nil {
		node.Concept = &graph.Concept{ID: node.ID, Version: 1}
	}
	for _, cmd := range cmds {
		if err := cmd.applyConcept(node.Concept); err != nil {
			return err
		}
	}
	node.RefreshLabel()
	return nil
}

// AddResource appends a resource owned by the selected node's concept with a
// freshly generated id. Ownership is fixed at creation.
func (e *Editor) AddResource(payload ResourcePayload) (*graph.Resource, error) {
	node, err := e.selectedNode()
	if err != nil {
		return nil, err
	}
	resource := graph.Resource{
		ID:         e.ids.Next("resource"),
		ConceptID:  node.ID,
		ResType:    payload.ResType,
		Title:      payload.Title,
		URL:        payload.URL,
		IsActive:   payload.IsActive,
		Difficulty: payload.Difficulty,
		MetaData:   payload.MetaData,
	}
	node.Resources = append(node.Resources, resource)
	e.logger.Debug("Added resource",
		zap.String("resource_id", resource.ID),
		zap.String("node_id", node.ID))
	return &resource, nil
}

// RemoveResource removes the resource with that id from the selected node.
func (e *Editor) RemoveResource(resourceID string) error {
	node, err := e.selectedNode()
	if err != nil {
		return err
	}
	for i, r := range node.Resources {
		if r.ID == resourceID {
			node.Resources = append(node.Resources[:i], node.Resources[i+1:]...)
			return nil
		}
	}
	return apperrors.WrapErrorf(apperrors.ErrNotFound, "resource %q", resourceID)
}

// AddQuestion appends a question owned by the selected node's concept with a
// freshly generated id and refreshes the display label.
func (e *Editor) AddQuestion(payload QuestionPayload) (*graph.Question, error) {
	node, err := e.selectedNode()
	if err != nil {
		return nil, err
	}
	question := graph.Question{
		ID:          e.ids.Next("question"),
		ConceptID:   node.ID,
		Title:       payload.Title,
		Description: payload.Description,
		Answer:      payload.Answer,
	}
	node.Questions = append(node.Questions, question)
	node.RefreshLabel()
	e.logger.Debug("Added question",
		zap.String("question_id", question.ID),
		zap.String("node_id", node.ID))
	return &question, nil
}

// RemoveQuestion removes the question from the selected node and cascades
// its id out of the node's progress. Progress never references a question
// the concept no longer owns.
func (e *Editor) RemoveQuestion(questionID string) error {
	node, err := e.selectedNode()
	if err != nil {
		return err
	}
	for i, q := range node.Questions {
		if q.ID == questionID {
			node.Questions = append(node.Questions[:i], node.Questions[i+1:]...)
			node.Progress.ClearCorrect(questionID)
			node.RefreshLabel()
			return nil
		}
	}
	return apperrors.WrapErrorf(apperrors.ErrNotFound, "question %q", questionID)
}

// ToggleCorrect adds or removes a question id from the selected node's
// correct set. Idempotent in both directions; only questions the node owns
// can be toggled.
func (e *Editor) ToggleCorrect(questionID string, correct bool) error {
	node, err := e.selectedNode()
	if err != nil {
		return err
	}
	owned := false
	for _, q := range node.Questions {
		if q.ID == questionID {
			owned = true
			break
		}
	}
	if !owned {
		return apperrors.WrapErrorf(apperrors.ErrNotFound, "question %q", questionID)
	}
	if correct {
		node.Progress.MarkCorrect(questionID)
	} else {
		node.Progress.ClearCorrect(questionID)
	}
	node.RefreshLabel()
	return nil
}

// Edge inspector operations.

// UpdateEdge applies the given field commands to the selected edge and
// recomputes the visual stroke style from the merged metadata.
func (e *Editor) UpdateEdge(cmds ...EdgeCommand) error {
	edge, err := e.selectedEdge()
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		if err := cmd.applyEdge(edge); err != nil {
			return err
		}
	}
	edge.Style = graph.StrokeFor(edge.Meta)
	return nil
}

// DeleteEdge removes the selected edge from the graph and closes the edge
// inspector.
func (e *Editor) DeleteEdge() error {
	edge, err := e.selectedEdge()
	if err != nil {
		return err
	}
	e.g.RemoveEdge(edge.ID)
	e.editingEdgeID = ""
	e.logger.Debug("Deleted edge", zap.String("edge_id", edge.ID))
	return nil
}
