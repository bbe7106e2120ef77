package handlers

import (
	"net/http"

	"concept-graph/editor"
	"concept-graph/graph"
	"concept-graph/store"
	"concept-graph/web/format"
	"concept-graph/web/middleware"
	"concept-graph/web/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// exportLogTag marks exported graph payloads in the log stream for
// inspection during development.
const exportLogTag = "GRAPH_EXPORT"

// GraphHandler exposes the editor session lifecycle, canvas gestures, and
// inspector operations as JSON endpoints.
type GraphHandler struct {
	sessions  *store.SessionStore
	logger    *zap.Logger
	adminMode bool
}

// NewGraphHandler creates the handler. adminMode is the flag new sessions
// are created with.
func NewGraphHandler(sessions *store.SessionStore, logger *zap.Logger, adminMode bool) *GraphHandler {
	return &GraphHandler{
		sessions:  sessions,
		logger:    logger,
		adminMode: adminMode,
	}
}

// CreateSession opens a fresh editor session with an empty graph.
func (h *GraphHandler) CreateSession(c *gin.Context) {
	session := h.sessions.Create(h.adminMode)
	c.JSON(http.StatusCreated, types.SessionResponse{
		ID:    session.ID.String(),
		Admin: session.Editor.Admin(),
	})
}

// DeleteSession discards a session and its in-memory graph.
func (h *GraphHandler) DeleteSession(c *gin.Context) {
	session := middleware.SessionFrom(c)
	h.sessions.Delete(session.ID)
	c.Status(http.StatusNoContent)
}

// GetGraph returns the render shape of the whole canvas.
func (h *GraphHandler) GetGraph(c *gin.Context) {
	session := middleware.SessionFrom(c)
	var view types.GraphView
	session.Do(func(ed *editor.Editor) error {
		view = graphView(ed.Graph())
		return nil
	})
	c.JSON(http.StatusOK, view)
}

// SetViewport records the canvas pan/zoom transform used to place nodes
// dropped on empty space.
func (h *GraphHandler) SetViewport(c *gin.Context) {
	var req types.ViewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithClientError(c, http.StatusBadRequest, "invalid viewport payload")
		return
	}
	session := middleware.SessionFrom(c)
	session.Do(func(ed *editor.Editor) error {
		ed.SetViewport(editor.Viewport{OffsetX: req.OffsetX, OffsetY: req.OffsetY, Zoom: req.Zoom})
		return nil
	})
	c.Status(http.StatusNoContent)
}

// AddNode places a new default concept node at a world position.
func (h *GraphHandler) AddNode(c *gin.Context) {
	var req types.AddNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithClientError(c, http.StatusBadRequest, "invalid node payload")
		return
	}
	session := middleware.SessionFrom(c)
	var view types.NodeView
	session.Do(func(ed *editor.Editor) error {
		view = nodeView(ed.AddConceptNode(req.X, req.Y))
		return nil
	})
	c.JSON(http.StatusCreated, view)
}

// RemoveNode deletes a node and its incident edges.
func (h *GraphHandler) RemoveNode(c *gin.Context) {
	session := middleware.SessionFrom(c)
	nodeID := c.Param("node")
	err := session.Do(func(ed *editor.Editor) error {
		return ed.RemoveNode(nodeID)
	})
	if err != nil {
		respondWithDomainError(c, err, h.logger, zap.String("node_id", nodeID))
		return
	}
	c.Status(http.StatusNoContent)
}

// Connect creates a default-metadata edge from a drag gesture ending on an
// existing node.
func (h *GraphHandler) Connect(c *gin.Context) {
	var req types.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithClientError(c, http.StatusBadRequest, "source and target are required")
		return
	}
	session := middleware.SessionFrom(c)
	var view types.EdgeView
	err := session.Do(func(ed *editor.Editor) error {
		edge, err := ed.Connect(req.Source, req.Target)
		if err != nil {
			return err
		}
		view = edgeView(edge)
		return nil
	})
	if err != nil {
		respondWithDomainError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// ConnectAt handles a drag gesture ending on empty canvas space: a new
// concept is synthesized at the drop point and connected from the origin
// node, and the node inspector opens on it.
func (h *GraphHandler) ConnectAt(c *gin.Context) {
	var req types.ConnectAtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithClientError(c, http.StatusBadRequest, "source is required")
		return
	}
	session := middleware.SessionFrom(c)
	var nodeRes types.NodeView
	var edgeRes types.EdgeView
	var inspector types.NodeInspectorView
	err := session.Do(func(ed *editor.Editor) error {
		node, edge, err := ed.ConnectToEmpty(req.Source, req.ScreenX, req.ScreenY)
		if err != nil {
			return err
		}
		nodeRes = nodeView(node)
		edgeRes = edgeView(edge)
		inspector = nodeInspectorView(node)
		return nil
	})
	if err != nil {
		respondWithDomainError(c, err, h.logger, zap.String("source", req.Source))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"node":      nodeRes,
		"edge":      edgeRes,
		"inspector": inspector,
	})
}

// SelectNode opens the node inspector on the clicked node and returns its
// drawer payload.
func (h *GraphHandler) SelectNode(c *gin.Context) {
	session := middleware.SessionFrom(c)
	nodeID := c.Param("node")
	var view types.NodeInspectorView
	err := session.Do(func(ed *editor.Editor) error {
		if err := ed.ClickNode(nodeID); err != nil {
			return err
		}
		view = nodeInspectorView(ed.EditingNode())
		return nil
	})
	if err != nil {
		respondWithDomainError(c, err, h.logger, zap.String("node_id", nodeID))
		return
	}
	c.JSON(http.StatusOK, view)
}

// SelectEdge opens the edge inspector on the clicked edge. Admin-only;
// read-only viewers get 403.
func (h *GraphHandler) SelectEdge(c *gin.Context) {
	session := middleware.SessionFrom(c)
	edgeID := c.Param("edge")
	var view types.EdgeInspectorView
	err := session.Do(func(ed *editor.Editor) error {
		if err := ed.ClickEdge(edgeID); err != nil {
			return err
		}
		view = types.EdgeInspectorView{Edge: edgeView(ed.EditingEdge())}
		return nil
	})
	if err != nil {
		respondWithDomainError(c, err, h.logger, zap.String("edge_id", edgeID))
		return
	}
	c.JSON(http.StatusOK, view)
}

// CloseNodeInspector clears the node selection without reverting edits.
func (h *GraphHandler) CloseNodeInspector(c *gin.Context) {
	session := middleware.SessionFrom(c)
	session.Do(func(ed *editor.Editor) error {
		ed.CloseNodeInspector()
		return nil
	})
	c.Status(http.StatusNoContent)
}

// CloseEdgeInspector clears the edge selection.
func (h *GraphHandler) CloseEdgeInspector(c *gin.Context) {
	session := middleware.SessionFrom(c)
	session.Do(func(ed *editor.Editor) error {
		ed.CloseEdgeInspector()
		return nil
	})
	c.Status(http.StatusNoContent)
}

// UpdateConcept applies field updates to the selected concept. Only fields
// present in the payload are touched.
func (h *GraphHandler) UpdateConcept(c *gin.Context) {
	var req types.ConceptUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithClientError(c, http.StatusBadRequest, "invalid concept payload")
		return
	}
	var cmds []editor.ConceptCommand
	if req.Name != nil {
		cmds = append(cmds, editor.SetName{Name: *req.Name})
	}
	if req.Description != nil {
		cmds = append(cmds, editor.SetDescription{Description: *req.Description})
	}
	if req.DifficultyBand != nil {
		cmds = append(cmds, editor.SetDifficulty{Band: graph.DifficultyBand(*req.DifficultyBand)})
	}

	session := middleware.SessionFrom(c)
	var view types.NodeInspectorView
	err := session.Do(func(ed *editor.Editor) error {
		if err := ed.UpdateConcept(cmds...); err != nil {
			return err
		}
		view = nodeInspectorView(ed.EditingNode())
		return nil
	})
	if err != nil {
		respondWithDomainError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddResource appends a resource to the selected concept.
func (h *GraphHandler) AddResource(c *gin.Context) {
	var req types.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithClientError(c, http.StatusBadRequest, "invalid resource payload")
		return
	}
	session := middleware.SessionFrom(c)
	var created *graph.Resource
	err := session.Do(func(ed *editor.Editor) error {
		resource, err := ed.AddResource(editor.ResourcePayload{
			ResType:    req.ResType,
			Title:      req.Title,
			URL:        req.URL,
			IsActive:   req.IsActive,
			Difficulty: req.Difficulty,
			MetaData:   req.MetaData,
		})
		if err != nil {
			return err
		}
		created = resource
		return nil
	})
	if err != nil {
		respondWithDomainError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// RemoveResource removes a resource from the selected concept.
func (h *GraphHandler) RemoveResource(c *gin.Context) {
	session := middleware.SessionFrom(c)
	resourceID := c.Param("resource")
	err := session.Do(func(ed *editor.Editor) error {
		return ed.RemoveResource(resourceID)
	})
	if err != nil {
		respondWithDomainError(c, err, h.logger, zap.String("resource_id", resourceID))
		return
	}
	c.Status(http.StatusNoContent)
}

// AddQuestion appends a question to the selected concept.
func (h *GraphHandler) AddQuestion(c *gin.Context) {
	var req types.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithClientError(c, http.StatusBadRequest, "invalid question payload")
		return
	}
	session := middleware.SessionFrom(c)
	var created *graph.Question
	err := session.Do(func(ed *editor.Editor) error {
		question, err := ed.AddQuestion(editor.QuestionPayload{
			Title:       req.Title,
			Description: req.Description,
			Answer:      req.Answer,
		})
		if err != nil {
			return err
		}
		created = question
		return nil
	})
	if err != nil {
		respondWithDomainError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// RemoveQuestion removes a question from the selected concept and its id
// from the concept's progress.
func (h *GraphHandler) RemoveQuestion(c *gin.Context) {
	session := middleware.SessionFrom(c)
	questionID := c.Param("question")
	err := session.Do(func(ed *editor.Editor) error {
		return ed.RemoveQuestion(questionID)
	})
	if err != nil {
		respondWithDomainError(c, err, h.logger, zap.String("question_id", questionID))
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleCorrect marks a question of the selected concept correct or not.
func (h *GraphHandler) ToggleCorrect(c *gin.Context) {
	var req types.ToggleCorrectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithClientError(c, http.StatusBadRequest, "questionId is required")
		return
	}
	session := middleware.SessionFrom(c)
	var stat graph.PassStat
	err := session.Do(func(ed *editor.Editor) error {
		if err := ed.ToggleCorrect(req.QuestionID, req.Correct); err != nil {
			return err
		}
		stat = ed.EditingNode().PassStat()
		return nil
	})
	if err != nil {
		respondWithDomainError(c, err, h.logger, zap.String("question_id", req.QuestionID))
		return
	}
	c.JSON(http.StatusOK, stat)
}

// UpdateEdge applies field updates to the selected edge and returns it with
// the recomputed stroke style.
func (h *GraphHandler) UpdateEdge(c *gin.Context) {
	var req types.EdgeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithClientError(c, http.StatusBadRequest, "invalid edge payload")
		return
	}
	var cmds []editor.EdgeCommand
	if req.RelationType != nil {
		cmds = append(cmds, editor.SetRelationType{Relation: graph.RelationType(*req.RelationType)})
	}
	if req.Label != nil {
		cmds = append(cmds, editor.SetLabel{Label: *req.Label})
	}
	if req.Weight != nil {
		cmds = append(cmds, editor.SetWeight{Weight: *req.Weight})
	}
	if req.Color != nil {
		cmds = append(cmds, editor.SetColor{Color: *req.Color})
	}
	if req.Dashed != nil {
		cmds = append(cmds, editor.SetDashed{Dashed: *req.Dashed})
	}

	session := middleware.SessionFrom(c)
	var view types.EdgeView
	err := session.Do(func(ed *editor.Editor) error {
		if err := ed.UpdateEdge(cmds...); err != nil {
			return err
		}
		view = edgeView(ed.EditingEdge())
		return nil
	})
	if err != nil {
		respondWithDomainError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteEdge removes the selected edge and closes the edge inspector.
func (h *GraphHandler) DeleteEdge(c *gin.Context) {
	session := middleware.SessionFrom(c)
	err := session.Do(func(ed *editor.Editor) error {
		return ed.DeleteEdge()
	})
	if err != nil {
		respondWithDomainError(c, err, h.logger)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export serializes the whole graph to its flat record set. The payload is
// also logged under a fixed tag so it can be captured during development,
// standing in for the original clipboard copy.
func (h *GraphHandler) Export(c *gin.Context) {
	session := middleware.SessionFrom(c)
	var flat graph.FlatGraph
	session.Do(func(ed *editor.Editor) error {
		flat = ed.Export()
		return nil
	})
	h.logger.Info(exportLogTag,
		zap.String("session_id", session.ID.String()),
		zap.Int("concepts", len(flat.Concepts)),
		zap.Int("edges", len(flat.Edges)))
	c.JSON(http.StatusOK, flat)
}

// Import replaces the session's graph with one rebuilt from a flat record
// set. Malformed payloads are rejected whole with 422.
func (h *GraphHandler) Import(c *gin.Context) {
	var flat graph.FlatGraph
	if err := c.ShouldBindJSON(&flat); err != nil {
		respondWithClientError(c, http.StatusBadRequest, "invalid graph payload")
		return
	}
	session := middleware.SessionFrom(c)
	var view types.GraphView
	err := session.Do(func(ed *editor.Editor) error {
		if err := ed.Import(flat); err != nil {
			return err
		}
		view = graphView(ed.Graph())
		return nil
	})
	if err != nil {
		respondWithDomainError(c, err, h.logger, zap.String("session_id", session.ID.String()))
		return
	}
	c.JSON(http.StatusOK, view)
}

// View builders.

func graphView(g *graph.Graph) types.GraphView {
	view := types.GraphView{
		Nodes: make([]types.NodeView, 0, g.NodeCount()),
		Edges: make([]types.EdgeView, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		view.Nodes = append(view.Nodes, nodeView(n))
	}
	for _, e := range g.Edges() {
		view.Edges = append(view.Edges, edgeView(e))
	}
	return view
}

func nodeView(n *graph.Node) types.NodeView {
	return types.NodeView{
		ID:        n.ID,
		X:         n.X,
		Y:         n.Y,
		Label:     n.Label,
		Concept:   n.Concept,
		Questions: len(n.Questions),
		Resources: len(n.Resources),
		PassStat:  n.PassStat(),
	}
}

func edgeView(e *graph.Edge) types.EdgeView {
	return types.EdgeView{
		ID:     e.ID,
		Source: e.Source,
		Target: e.Target,
		Label:  e.Label,
		Meta:   e.Meta,
		Style:  e.Style,
	}
}

func nodeInspectorView(n *graph.Node) types.NodeInspectorView {
	view := types.NodeInspectorView{
		Concept:   n.Concept,
		Resources: n.Resources,
		Questions: n.Questions,
		Progress:  n.Progress,
		PassStat:  n.PassStat(),
	}
	if n.Concept != nil {
		view.DescriptionHTML = format.DescriptionToHTML(n.Concept.Description)
	}
	return view
}
