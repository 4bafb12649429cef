package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type MemberHandler struct {
	memberService *services.MemberService
	policy        *services.WorkspacePolicy
}

func NewMemberHandler(db *gorm.DB) *MemberHandler {
	return &MemberHandler{
		memberService: services.NewMemberService(db),
		policy:        services.NewWorkspacePolicy(db),
	}
}

// requireManage checks the member-management capability for the workspace
// in the route.
func (h *MemberHandler) requireManage(c *gin.Context) (uint, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return 0, false
	}
	allowed, err := h.policy.CanManageMembers(middleware.GetUserID(c), id)
	if err != nil {
		response.ServerError(c, err.Error())
		return 0, false
	}
	if !allowed {
		response.Forbidden(c, "not authorized")
		return 0, false
	}
	return id, true
}

// List returns the members of a workspace
// GET /api/workspaces/:id/members
func (h *MemberHandler) List(c *gin.Context) {
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

	members, err := h.memberService.List(id)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, members)
}

// Add invites an existing user into the workspace
// POST /api/workspaces/:id/members
func (h *MemberHandler) Add(c *gin.Context) {
	workspaceID, ok := h.requireManage(c)
	if !ok {
		return
	}

	var req services.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.Add(workspaceID, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, member)
}

// UpdateRole changes a member's role
// PUT /api/workspaces/:id/members/:memberId
func (h *MemberHandler) UpdateRole(c *gin.Context) {
	workspaceID, ok := h.requireManage(c)
	if !ok {
		return
	}
	memberID, ok := parseID(c, "memberId")
	if !ok {
		return
	}

	var req services.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.UpdateRole(workspaceID, memberID, &req)
	if err != nil {
		if errors.Is(err, services.ErrLastOwner) {
			response.BadRequest(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, member)
}

// Remove removes a member from the workspace
// DELETE /api/workspaces/:id/members/:memberId
func (h *MemberHandler) Remove(c *gin.Context) {
	workspaceID, ok := h.requireManage(c)
	if !ok {
		return
	}
	memberID, ok := parseID(c, "memberId")
	if !ok {
		return
	}

	if err := h.memberService.Remove(workspaceID, memberID); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "member removed"})
}

// Leave removes the current user's own membership
// POST /api/workspaces/:id/leave
func (h *MemberHandler) Leave(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.memberService.Leave(id, middleware.GetUserID(c)); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "left workspace"})
}
