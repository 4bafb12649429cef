package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type AIConfigHandler struct {
	aiConfigService *services.AIConfigService
}

func NewAIConfigHandler(db *gorm.DB) *AIConfigHandler {
	return &AIConfigHandler{aiConfigService: services.NewAIConfigService(db)}
}

// List returns paginated AI configs with masked keys
// GET /api/ai-configs
func (h *AIConfigHandler) List(c *gin.Context) {
	var req services.AIConfigListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.aiConfigService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, resp)
}

// GetByID returns one AI config
// GET /api/ai-configs/:id
func (h *AIConfigHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	config, err := h.aiConfigService.GetByID(id)
	if err != nil {
		response.NotFound(c, "ai config not found")
		return
	}
	response.Success(c, config)
}

// Create adds an AI provider config
// POST /api/ai-configs
func (h *AIConfigHandler) Create(c *gin.Context) {
	var req services.CreateAIConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	config, err := h.aiConfigService.Create(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Created(c, config)
}

// Update edits an AI provider config
// PUT /api/ai-configs/:id
func (h *AIConfigHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateAIConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	config, err := h.aiConfigService.Update(id, &req)
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}
	response.Success(c, config)
}

// Delete removes an AI provider config
// DELETE /api/ai-configs/:id
func (h *AIConfigHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.aiConfigService.Delete(id); err != nil {
		response.NotFound(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "ai config deleted"})
}
