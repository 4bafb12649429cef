package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type BugHandler struct {
	bugService *services.BugService
	guard      *projectGuard
}

func NewBugHandler(db *gorm.DB) *BugHandler {
	return &BugHandler{
		bugService: services.NewBugService(db),
		guard:      newProjectGuard(db),
	}
}

func (h *BugHandler) requireBug(c *gin.Context, project *models.Project) (*models.BugReport, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	bug, err := h.bugService.GetByID(id)
	if err != nil || bug.ProjectID != project.ID {
		response.NotFound(c, "bug report not found")
		return nil, false
	}
	return bug, true
}

// List returns the project's bug reports
// GET /api/projects/:projectId/bugs
func (h *BugHandler) List(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}

	var req services.BugListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.bugService.List(project.ID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, resp)
}

// Create files a bug report
// POST /api/projects/:projectId/bugs
func (h *BugHandler) Create(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}

	var req services.CreateBugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	bug, err := h.bugService.Create(project.ID, &req, middleware.GetUserID(c))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, bug)
}

// GetByID returns a bug report
// GET /api/projects/:projectId/bugs/:id
func (h *BugHandler) GetByID(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}
	bug, ok := h.requireBug(c, project)
	if !ok {
		return
	}
	response.Success(c, bug)
}

// Update applies a partial edit
// PUT /api/projects/:projectId/bugs/:id
func (h *BugHandler) Update(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	bug, ok := h.requireBug(c, project)
	if !ok {
		return
	}

	var req services.UpdateBugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.bugService.Update(bug.ID, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, updated)
}

// Delete removes a bug report
// DELETE /api/projects/:projectId/bugs/:id
func (h *BugHandler) Delete(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	bug, ok := h.requireBug(c, project)
	if !ok {
		return
	}

	if err := h.bugService.Delete(bug.ID); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "bug report deleted"})
}
