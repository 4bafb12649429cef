package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	projectService   *services.ProjectService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: services.NewDashboardService(db),
		projectService:   services.NewProjectService(db),
	}
}

// Stats aggregates across the projects visible in the current context
// GET /api/dashboard
func (h *DashboardHandler) Stats(c *gin.Context) {
	projects, err := h.projectService.ListForContext(
		middleware.GetUserID(c), middleware.GetWorkspaceContext(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	projectIDs := make([]uint, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}

	stats, err := h.dashboardService.GetStats(projectIDs)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, stats)
}
