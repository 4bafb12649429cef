package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type TestCaseHandler struct {
	caseService *services.TestCaseService
	guard       *projectGuard
}

func NewTestCaseHandler(db *gorm.DB) *TestCaseHandler {
	return &TestCaseHandler{
		caseService: services.NewTestCaseService(db),
		guard:       newProjectGuard(db),
	}
}

// List returns filtered, paginated test cases
// GET /api/projects/:projectId/cases
func (h *TestCaseHandler) List(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}

	var req services.TestCaseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.caseService.List(project.ID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, resp)
}

// Create adds a test case
// POST /api/projects/:projectId/cases
func (h *TestCaseHandler) Create(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}

	var req services.CreateTestCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	testCase, err := h.caseService.Create(project.ID, &req, middleware.GetUserID(c))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, testCase)
}

// GetByID returns a test case
// GET /api/projects/:projectId/cases/:id
func (h *TestCaseHandler) GetByID(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	testCase, err := h.caseService.GetByID(id)
	if err != nil || testCase.ProjectID != project.ID {
		response.NotFound(c, "test case not found")
		return
	}
	response.Success(c, testCase)
}

// Update applies a partial edit
// PUT /api/projects/:projectId/cases/:id
func (h *TestCaseHandler) Update(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	testCase, err := h.caseService.GetByID(id)
	if err != nil || testCase.ProjectID != project.ID {
		response.NotFound(c, "test case not found")
		return
	}

	var req services.UpdateTestCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.caseService.Update(id, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, updated)
}

// Delete removes a test case
// DELETE /api/projects/:projectId/cases/:id
func (h *TestCaseHandler) Delete(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	testCase, err := h.caseService.GetByID(id)
	if err != nil || testCase.ProjectID != project.ID {
		response.NotFound(c, "test case not found")
		return
	}

	if err := h.caseService.Delete(id); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "test case deleted"})
}

type bulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// BulkDelete removes several cases at once
// POST /api/projects/:projectId/cases/bulk-delete
func (h *TestCaseHandler) BulkDelete(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}

	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	deleted, err := h.caseService.BulkDelete(project.ID, req.IDs)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}
