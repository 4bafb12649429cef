package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type TestRunHandler struct {
	runService *services.TestRunService
	guard      *projectGuard
}

func NewTestRunHandler(db *gorm.DB) *TestRunHandler {
	return &TestRunHandler{
		runService: services.NewTestRunService(db),
		guard:      newProjectGuard(db),
	}
}

// requireRun loads the run in the route and checks it belongs to the
// guarded project.
func (h *TestRunHandler) requireRun(c *gin.Context, project *models.Project) (*models.TestRun, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	run, err := h.runService.GetByID(id)
	if err != nil || run.ProjectID != project.ID {
		response.NotFound(c, "test run not found")
		return nil, false
	}
	return run, true
}

// List returns the project's test runs
// GET /api/projects/:projectId/runs
func (h *TestRunHandler) List(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}

	var req services.TestRunListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.runService.List(project.ID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, resp)
}

// Create snapshots a new run from suites, cases or a checklist
// POST /api/projects/:projectId/runs
func (h *TestRunHandler) Create(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}

	var req services.CreateTestRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	run, err := h.runService.Create(project.ID, &req, middleware.GetUserID(c))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, run)
}

// GetByID returns a run with its cases
// GET /api/projects/:projectId/runs/:id
func (h *TestRunHandler) GetByID(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}
	run, ok := h.requireRun(c, project)
	if !ok {
		return
	}

	cases, err := h.runService.ListCases(run.ID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"run": run, "cases": cases})
}

// UpdateCaseStatus records a result for one run case
// PUT /api/projects/:projectId/runs/:id/cases/:caseId
func (h *TestRunHandler) UpdateCaseStatus(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	run, ok := h.requireRun(c, project)
	if !ok {
		return
	}
	caseID, ok := parseID(c, "caseId")
	if !ok {
		return
	}

	var req services.UpdateCaseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	runCase, err := h.runService.GetCase(run.ID, caseID)
	if err != nil {
		response.NotFound(c, "run case not found")
		return
	}

	updated, err := h.runService.UpdateCaseStatus(runCase.ID, &req, middleware.GetUserID(c))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, updated)
}

// BulkUpdateStatus records one result for many run cases at once
// POST /api/projects/:projectId/runs/:id/cases/bulk-status
func (h *TestRunHandler) BulkUpdateStatus(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	run, ok := h.requireRun(c, project)
	if !ok {
		return
	}

	var req services.BulkUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.runService.BulkUpdateStatus(run.ID, &req, middleware.GetUserID(c))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"updated": updated})
}

// Close marks a run finished
// POST /api/projects/:projectId/runs/:id/close
func (h *TestRunHandler) Close(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	run, ok := h.requireRun(c, project)
	if !ok {
		return
	}

	closed, err := h.runService.Close(run.ID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, closed)
}

// Delete removes a run with its cases
// DELETE /api/projects/:projectId/runs/:id
func (h *TestRunHandler) Delete(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	run, ok := h.requireRun(c, project)
	if !ok {
		return
	}

	if err := h.runService.Delete(run.ID); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "test run deleted"})
}
