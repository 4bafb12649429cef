package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
	"gorm.io/gorm"
)

const (
	ContextWorkspace = "workspace_context"
	ContextProject   = "route_project"
)

// WorkspaceContext resolves the active workspace for the authenticated
// user and stores it in the request context. Routes carrying a :projectId
// parameter get the project loaded first, so a workspace project being
// viewed overrides the user's stored workspace pointer.
//
// Must run after AuthRequired. A request without any workspace (legacy
// personal projects only) proceeds with a nil context.
func WorkspaceContext(db *gorm.DB) gin.HandlerFunc {
	resolver := services.NewWorkspaceContextService(db)

	return func(c *gin.Context) {
		userID := GetUserID(c)

		var routeProject *models.Project
		if raw := c.Param("projectId"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				response.BadRequest(c, "invalid project id")
				c.Abort()
				return
			}
			var project models.Project
			if err := db.First(&project, uint(id)).Error; err != nil {
				response.NotFound(c, "project not found")
				c.Abort()
				return
			}
			routeProject = &project
			c.Set(ContextProject, routeProject)
		}

		wctx, err := resolver.Resolve(userID, routeProject)
		if err != nil {
			response.ServerError(c, "failed to resolve workspace context")
			c.Abort()
			return
		}
		if wctx != nil {
			c.Set(ContextWorkspace, wctx)
		}

		c.Next()
	}
}

// GetWorkspaceContext returns the resolved workspace context, or nil when
// the user has no workspace.
func GetWorkspaceContext(c *gin.Context) *services.WorkspaceContext {
	if v, exists := c.Get(ContextWorkspace); exists {
		return v.(*services.WorkspaceContext)
	}
	return nil
}

// GetRouteProject returns the project loaded from the :projectId route
// parameter, or nil when the route has none.
func GetRouteProject(c *gin.Context) *models.Project {
	if v, exists := c.Get(ContextProject); exists {
		return v.(*models.Project)
	}
	return nil
}
