package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type ChecklistHandler struct {
	checklistService *services.ChecklistService
	guard            *projectGuard
}

func NewChecklistHandler(db *gorm.DB) *ChecklistHandler {
	return &ChecklistHandler{
		checklistService: services.NewChecklistService(db),
		guard:            newProjectGuard(db),
	}
}

func (h *ChecklistHandler) requireChecklist(c *gin.Context, project *models.Project) (*models.Checklist, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	checklist, err := h.checklistService.GetByID(id)
	if err != nil || checklist.ProjectID != project.ID {
		response.NotFound(c, "checklist not found")
		return nil, false
	}
	return checklist, true
}

// List returns the project's checklists
// GET /api/projects/:projectId/checklists
func (h *ChecklistHandler) List(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}

	checklists, err := h.checklistService.List(project.ID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, checklists)
}

// Create adds a checklist, optionally pre-seeded with items
// POST /api/projects/:projectId/checklists
func (h *ChecklistHandler) Create(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}

	var req services.CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	checklist, err := h.checklistService.Create(project.ID, &req, middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Created(c, checklist)
}

// GetByID returns a checklist with its items
// GET /api/projects/:projectId/checklists/:id
func (h *ChecklistHandler) GetByID(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}
	checklist, ok := h.requireChecklist(c, project)
	if !ok {
		return
	}
	response.Success(c, checklist)
}

// Update renames a checklist
// PUT /api/projects/:projectId/checklists/:id
func (h *ChecklistHandler) Update(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	checklist, ok := h.requireChecklist(c, project)
	if !ok {
		return
	}

	var req services.UpdateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.checklistService.Update(checklist.ID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, updated)
}

// Delete removes a checklist and its items
// DELETE /api/projects/:projectId/checklists/:id
func (h *ChecklistHandler) Delete(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	checklist, ok := h.requireChecklist(c, project)
	if !ok {
		return
	}

	if err := h.checklistService.Delete(checklist.ID); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "checklist deleted"})
}

// AddItem appends an item
// POST /api/projects/:projectId/checklists/:id/items
func (h *ChecklistHandler) AddItem(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	checklist, ok := h.requireChecklist(c, project)
	if !ok {
		return
	}

	var req services.AddChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.checklistService.AddItem(checklist.ID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Created(c, item)
}

// UpdateItem edits, checks off or repositions an item
// PUT /api/projects/:projectId/checklists/:id/items/:itemId
func (h *ChecklistHandler) UpdateItem(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	checklist, ok := h.requireChecklist(c, project)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}

	var req services.UpdateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.checklistService.UpdateItem(checklist.ID, itemID, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, item)
}

// RemoveItem deletes an item
// DELETE /api/projects/:projectId/checklists/:id/items/:itemId
func (h *ChecklistHandler) RemoveItem(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	checklist, ok := h.requireChecklist(c, project)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}

	if err := h.checklistService.RemoveItem(checklist.ID, itemID); err != nil {
		response.NotFound(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "item removed"})
}
