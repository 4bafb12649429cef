package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	policy         *services.ProjectPolicy
	guard          *projectGuard
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
		policy:         services.NewProjectPolicy(db),
		guard:          newProjectGuard(db),
	}
}

// List returns the projects visible in the current context
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.ListForContext(
		middleware.GetUserID(c), middleware.GetWorkspaceContext(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, projects)
}

// Create creates a project in the active workspace, or a personal project
// when the user has none
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	wctx := middleware.GetWorkspaceContext(c)

	allowed, err := h.policy.CanCreate(userID, wctx)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if !allowed {
		response.Forbidden(c, "not authorized")
		return
	}

	project, err := h.projectService.Create(userID, wctx, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Created(c, project)
}

// GetByID returns a project
// GET /api/projects/:projectId
func (h *ProjectHandler) GetByID(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}
	response.Success(c, project)
}

// Users returns the people assignable within a project: workspace members,
// or the single owner for a personal project
// GET /api/projects/:projectId/users
func (h *ProjectHandler) Users(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}

	users, err := h.projectService.Users(project)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, users)
}

// Update edits a project
// PUT /api/projects/:projectId
func (h *ProjectHandler) Update(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.projectService.Update(project.ID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, updated)
}

// Delete removes a project with everything under it
// DELETE /api/projects/:projectId
func (h *ProjectHandler) Delete(c *gin.Context) {
	project, ok := h.guard.requireDelete(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(project.ID); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	services.LogInfo("Projects", "Delete", "project deleted: "+project.Name, &userID, c.ClientIP(), c.Request.UserAgent(), gin.H{"project_id": project.ID})
	response.Success(c, gin.H{"message": "project deleted"})
}
