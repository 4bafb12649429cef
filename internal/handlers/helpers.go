package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

// parseID parses a positive integer route parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// projectGuard bundles the access checks shared by every project-scoped
// handler. Denials return a bare 403 with no entity data.
type projectGuard struct {
	policy *services.ProjectPolicy
}

func newProjectGuard(db *gorm.DB) *projectGuard {
	return &projectGuard{policy: services.NewProjectPolicy(db)}
}

// requireView loads the route project and checks view access. On failure a
// response has already been written.
func (g *projectGuard) requireView(c *gin.Context) (*models.Project, bool) {
	project := middleware.GetRouteProject(c)
	if project == nil {
		response.NotFound(c, "project not found")
		return nil, false
	}

	ok, err := g.policy.CanView(middleware.GetUserID(c), project)
	if err != nil {
		response.ServerError(c, err.Error())
		return nil, false
	}
	if !ok {
		response.Forbidden(c, "not authorized")
		return nil, false
	}
	return project, true
}

// requireEdit is requireView plus the update capability.
func (g *projectGuard) requireEdit(c *gin.Context) (*models.Project, bool) {
	project := middleware.GetRouteProject(c)
	if project == nil {
		response.NotFound(c, "project not found")
		return nil, false
	}

	ok, err := g.policy.CanUpdate(middleware.GetUserID(c), project)
	if err != nil {
		response.ServerError(c, err.Error())
		return nil, false
	}
	if !ok {
		response.Forbidden(c, "not authorized")
		return nil, false
	}
	return project, true
}

// requireDelete is requireView plus the delete capability.
func (g *projectGuard) requireDelete(c *gin.Context) (*models.Project, bool) {
	project := middleware.GetRouteProject(c)
	if project == nil {
		response.NotFound(c, "project not found")
		return nil, false
	}

	ok, err := g.policy.CanDelete(middleware.GetUserID(c), project)
	if err != nil {
		response.ServerError(c, err.Error())
		return nil, false
	}
	if !ok {
		response.Forbidden(c, "not authorized")
		return nil, false
	}
	return project, true
}
