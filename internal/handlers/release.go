package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type ReleaseHandler struct {
	releaseService *services.ReleaseService
	guard          *projectGuard
}

func NewReleaseHandler(db *gorm.DB) *ReleaseHandler {
	return &ReleaseHandler{
		releaseService: services.NewReleaseService(db),
		guard:          newProjectGuard(db),
	}
}

func (h *ReleaseHandler) requireRelease(c *gin.Context, project *models.Project) (*models.Release, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	release, err := h.releaseService.GetByID(id)
	if err != nil || release.ProjectID != project.ID {
		response.NotFound(c, "release not found")
		return nil, false
	}
	return release, true
}

// List returns the project's releases
// GET /api/projects/:projectId/releases
func (h *ReleaseHandler) List(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}

	releases, err := h.releaseService.List(project.ID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, releases)
}

// Create adds a planned release
// POST /api/projects/:projectId/releases
func (h *ReleaseHandler) Create(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}

	var req services.CreateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	release, err := h.releaseService.Create(project.ID, &req, middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Created(c, release)
}

// GetByID returns a release
// GET /api/projects/:projectId/releases/:id
func (h *ReleaseHandler) GetByID(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}
	release, ok := h.requireRelease(c, project)
	if !ok {
		return
	}
	response.Success(c, release)
}

// Update edits a release; moving it to released stamps the ship date
// PUT /api/projects/:projectId/releases/:id
func (h *ReleaseHandler) Update(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	release, ok := h.requireRelease(c, project)
	if !ok {
		return
	}

	var req services.UpdateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.releaseService.Update(release.ID, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, updated)
}

// Delete removes a release
// DELETE /api/projects/:projectId/releases/:id
func (h *ReleaseHandler) Delete(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	release, ok := h.requireRelease(c, project)
	if !ok {
		return
	}

	if err := h.releaseService.Delete(release.ID); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "release deleted"})
}
