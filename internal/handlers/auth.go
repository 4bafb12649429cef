package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/config"
	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(db, jwtCfg),
	}
}

type loginResponse struct {
	Token           string      `json:"token"`
	ExpireAt        time.Time   `json:"expire_at"`
	RefreshToken    string      `json:"refresh_token"`
	RefreshExpireAt time.Time   `json:"refresh_expire_at"`
	User            interface{} `json:"user"`
}

// Register creates an account with its starter workspace
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	services.LogInfo("Auth", "Register", "user registered: "+user.Username, &user.ID, c.ClientIP(), c.Request.UserAgent(), nil)
	response.Created(c, user)
}

// Login authenticates and returns a token pair
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(&req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		services.LogWarning("Auth", "Login", "login failed for "+req.Username+": "+err.Error(), nil, c.ClientIP(), c.Request.UserAgent(), nil)
		response.Unauthorized(c, err.Error())
		return
	}

	services.LogInfo("Auth", "Login", "user logged in: "+result.User.Username, &result.User.ID, c.ClientIP(), c.Request.UserAgent(), nil)
	response.Success(c, loginResponse{
		Token:           result.AccessToken,
		ExpireAt:        result.AccessExpireAt,
		RefreshToken:    result.RefreshToken,
		RefreshExpireAt: result.RefreshExpireAt,
		User:            result.User,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh rotates the refresh token and issues a new access token
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Refresh(req.RefreshToken, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Unauthorized(c, err.Error())
		return
	}

	response.Success(c, loginResponse{
		Token:           result.AccessToken,
		ExpireAt:        result.AccessExpireAt,
		RefreshToken:    result.RefreshToken,
		RefreshExpireAt: result.RefreshExpireAt,
	})
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout revokes the refresh token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req logoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.authService.RevokeRefreshToken(req.RefreshToken); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "logged out"})
}

// Me returns the current user
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		response.NotFound(c, "user not found")
		return
	}
	response.Success(c, user)
}

// ChangePassword changes the current user's password
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(middleware.GetUserID(c), &req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "password changed"})
}

// LDAPStatus reports whether LDAP login is available
// GET /api/auth/ldap-status
func (h *AuthHandler) LDAPStatus(c *gin.Context) {
	response.Success(c, gin.H{"enabled": h.authService.IsLDAPEnabled()})
}
