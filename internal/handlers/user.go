package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{userService: services.NewUserService(db)}
}

// UpdateProfile edits the current user's profile
// PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(middleware.GetUserID(c), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, user)
}

// UpdatePreferences stores UI preferences
// PUT /api/users/preferences
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	var req services.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdatePreferences(middleware.GetUserID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, user)
}

// Search finds users by username or email prefix, for invitations
// GET /api/users/search?q=al&limit=10
func (h *UserHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	users, err := h.userService.Search(c.Query("q"), limit)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, users)
}
