package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type SuiteHandler struct {
	suiteService *services.SuiteService
	guard        *projectGuard
}

func NewSuiteHandler(db *gorm.DB) *SuiteHandler {
	return &SuiteHandler{
		suiteService: services.NewSuiteService(db),
		guard:        newProjectGuard(db),
	}
}

// Tree returns the project's suite tree with case counts
// GET /api/projects/:projectId/suites
func (h *SuiteHandler) Tree(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}

	tree, err := h.suiteService.Tree(project.ID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, tree)
}

// Create adds a suite
// POST /api/projects/:projectId/suites
func (h *SuiteHandler) Create(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}

	var req services.CreateSuiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	suite, err := h.suiteService.Create(project.ID, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, suite)
}

// Update edits or moves a suite
// PUT /api/projects/:projectId/suites/:id
func (h *SuiteHandler) Update(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	suite, err := h.suiteService.GetByID(id)
	if err != nil || suite.ProjectID != project.ID {
		response.NotFound(c, "suite not found")
		return
	}

	var req services.UpdateSuiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.suiteService.Update(id, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, updated)
}

// Delete removes a suite subtree with its cases
// DELETE /api/projects/:projectId/suites/:id
func (h *SuiteHandler) Delete(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	suite, err := h.suiteService.GetByID(id)
	if err != nil || suite.ProjectID != project.ID {
		response.NotFound(c, "suite not found")
		return
	}

	if err := h.suiteService.Delete(id); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "suite deleted"})
}
