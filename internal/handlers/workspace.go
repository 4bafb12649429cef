package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
	contextService   *services.WorkspaceContextService
	policy           *services.WorkspacePolicy
}

func NewWorkspaceHandler(db *gorm.DB) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: services.NewWorkspaceService(db),
		contextService:   services.NewWorkspaceContextService(db),
		policy:           services.NewWorkspacePolicy(db),
	}
}

// List returns the current user's workspaces with roles
// GET /api/workspaces
func (h *WorkspaceHandler) List(c *gin.Context) {
	summaries, err := h.workspaceService.ListForUser(middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, summaries)
}

// Create creates a workspace owned by the current user
// POST /api/workspaces
func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req services.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	workspace, err := h.workspaceService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Created(c, workspace)
}

// Current returns the active workspace context
// GET /api/workspaces/current
func (h *WorkspaceHandler) Current(c *gin.Context) {
	response.Success(c, middleware.GetWorkspaceContext(c))
}

// GetByID returns a workspace the user belongs to
// GET /api/workspaces/:id
func (h *WorkspaceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	allowed, err := h.policy.CanView(middleware.GetUserID(c), id)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if !allowed {
		response.Forbidden(c, "not authorized")
		return
	}

	workspace, err := h.workspaceService.GetByID(id)
	if err != nil {
		response.NotFound(c, "workspace not found")
		return
	}
	response.Success(c, workspace)
}

// Update renames a workspace
// PUT /api/workspaces/:id
func (h *WorkspaceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	allowed, err := h.policy.CanUpdate(middleware.GetUserID(c), id)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if !allowed {
		response.Forbidden(c, "not authorized")
		return
	}

	var req services.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	workspace, err := h.workspaceService.Update(id, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, workspace)
}

// Delete removes a workspace and everything in it
// DELETE /api/workspaces/:id
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	allowed, err := h.policy.CanDelete(middleware.GetUserID(c), id)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if !allowed {
		response.Forbidden(c, "not authorized")
		return
	}

	if err := h.workspaceService.Delete(id); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	services.LogInfo("Workspaces", "Delete", "workspace deleted", &userID, c.ClientIP(), c.Request.UserAgent(), gin.H{"workspace_id": id})
	response.Success(c, gin.H{"message": "workspace deleted"})
}

// Switch makes another workspace the user's active one
// POST /api/workspaces/:id/switch
func (h *WorkspaceHandler) Switch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	wctx, err := h.contextService.SwitchTo(middleware.GetUserID(c), id)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if wctx == nil {
		response.Forbidden(c, "not authorized")
		return
	}
	response.Success(c, wctx)
}

// TransferOwnership hands the workspace to another member
// POST /api/workspaces/:id/transfer
func (h *WorkspaceHandler) TransferOwnership(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	allowed, err := h.policy.CanDelete(userID, id) // owner only
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	if !allowed {
		response.Forbidden(c, "not authorized")
		return
	}

	var req services.TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.workspaceService.TransferOwnership(id, userID, &req); err != nil {
		if errors.Is(err, services.ErrNotWorkspaceMember) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "ownership transferred"})
}
