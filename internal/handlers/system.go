package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

// SystemHandler serves the operational surface: audit logs, log retention
// and directory-authentication settings.
type SystemHandler struct {
	logService    *services.SystemLogService
	configService *services.SystemConfigService
}

func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{
		logService:    services.NewSystemLogService(db),
		configService: services.NewSystemConfigService(db),
	}
}

// ListLogs returns filtered, paginated system logs
// GET /api/system/logs
func (h *SystemHandler) ListLogs(c *gin.Context) {
	var req services.SystemLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.logService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, resp)
}

// LogModules returns the distinct modules seen in the logs, for filter UIs
// GET /api/system/logs/modules
func (h *SystemHandler) LogModules(c *gin.Context) {
	modules, err := h.logService.GetModules()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, modules)
}

// GetRetention returns the log retention window in days
// GET /api/system/logs/retention
func (h *SystemHandler) GetRetention(c *gin.Context) {
	response.Success(c, gin.H{"retention_days": h.logService.GetRetentionDays()})
}

type updateRetentionRequest struct {
	RetentionDays int `json:"retention_days" binding:"required,min=1,max=3650"`
}

// UpdateRetention sets the log retention window
// PUT /api/system/logs/retention
func (h *SystemHandler) UpdateRetention(c *gin.Context) {
	var req updateRetentionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.logService.SetRetentionDays(req.RetentionDays); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"retention_days": req.RetentionDays})
}

// GetLDAPConfig returns the directory settings, bind password omitted
// GET /api/system/ldap
func (h *SystemHandler) GetLDAPConfig(c *gin.Context) {
	response.Success(c, h.configService.GetLDAPConfig())
}

// UpdateLDAPConfig applies a partial edit to the directory settings
// PUT /api/system/ldap
func (h *SystemHandler) UpdateLDAPConfig(c *gin.Context) {
	var req services.UpdateLDAPConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.configService.UpdateLDAPConfig(&req); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, h.configService.GetLDAPConfig())
}
