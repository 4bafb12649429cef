package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type GenerationHandler struct {
	generationService *services.GenerationService
	guard             *projectGuard
}

func NewGenerationHandler(db *gorm.DB, generationService *services.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		guard:             newProjectGuard(db),
	}
}

// Create queues an AI draft-generation job for a suite
// POST /api/projects/:projectId/generations
func (h *GenerationHandler) Create(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}

	var req services.CreateGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	job, err := h.generationService.CreateJob(project.ID, &req, middleware.GetUserID(c))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, job)
}

// List returns the project's recent generation jobs
// GET /api/projects/:projectId/generations
func (h *GenerationHandler) List(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}

	jobs, err := h.generationService.List(project.ID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, jobs)
}

// GetByID returns one generation job for status polling
// GET /api/projects/:projectId/generations/:id
func (h *GenerationHandler) GetByID(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	job, err := h.generationService.GetByID(id)
	if err != nil || job.ProjectID != project.ID {
		response.NotFound(c, "generation job not found")
		return
	}
	response.Success(c, job)
}
