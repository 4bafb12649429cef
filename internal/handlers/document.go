package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type DocumentHandler struct {
	documentService *services.DocumentService
	guard           *projectGuard
}

func NewDocumentHandler(db *gorm.DB) *DocumentHandler {
	return &DocumentHandler{
		documentService: services.NewDocumentService(db),
		guard:           newProjectGuard(db),
	}
}

func (h *DocumentHandler) requireDocument(c *gin.Context, project *models.Project) (*models.Document, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	doc, err := h.documentService.GetByID(id)
	if err != nil || doc.ProjectID != project.ID {
		response.NotFound(c, "document not found")
		return nil, false
	}
	return doc, true
}

// List returns the project's documents without bodies
// GET /api/projects/:projectId/documents
func (h *DocumentHandler) List(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}

	docs, err := h.documentService.List(project.ID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, docs)
}

// Create adds a document
// POST /api/projects/:projectId/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}

	var req services.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	doc, err := h.documentService.Create(project.ID, &req, middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Created(c, doc)
}

// GetByID returns a document with its content
// GET /api/projects/:projectId/documents/:id
func (h *DocumentHandler) GetByID(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}
	doc, ok := h.requireDocument(c, project)
	if !ok {
		return
	}
	response.Success(c, doc)
}

// Update replaces a document's title and content
// PUT /api/projects/:projectId/documents/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	doc, ok := h.requireDocument(c, project)
	if !ok {
		return
	}

	var req services.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.documentService.Update(doc.ID, &req, middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, updated)
}

// Delete removes a document
// DELETE /api/projects/:projectId/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	doc, ok := h.requireDocument(c, project)
	if !ok {
		return
	}

	if err := h.documentService.Delete(doc.ID); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "document deleted"})
}
