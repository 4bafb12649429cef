package handlers

import (
	"io"
	"mime"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/config"
	"github.com/checkmatehq/checkmate/internal/middleware"
	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/checkmatehq/checkmate/internal/services"
	"github.com/checkmatehq/checkmate/pkg/response"
)

type AttachmentHandler struct {
	attachmentService *services.AttachmentService
	guard             *projectGuard
}

func NewAttachmentHandler(db *gorm.DB, storage *config.StorageConfig) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: services.NewAttachmentService(db, storage.UploadDir, storage.MaxSizeMB),
		guard:             newProjectGuard(db),
	}
}

// ownerFromQuery reads and validates the (owner_type, owner_id) pair,
// checking the owner lives in the guarded project.
func (h *AttachmentHandler) ownerFromQuery(c *gin.Context, project *models.Project, ownerType, ownerIDRaw string) (string, uint, bool) {
	ownerID, err := strconv.ParseUint(ownerIDRaw, 10, 32)
	if err != nil || ownerID == 0 {
		response.BadRequest(c, "invalid owner_id")
		return "", 0, false
	}

	ok, err := h.attachmentService.OwnerInProject(ownerType, uint(ownerID), project.ID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return "", 0, false
	}
	if !ok {
		response.NotFound(c, "owner not found in project")
		return "", 0, false
	}
	return ownerType, uint(ownerID), true
}

// List returns the attachments of one owner entity
// GET /api/projects/:projectId/attachments?owner_type=bug_report&owner_id=7
func (h *AttachmentHandler) List(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}

	ownerType, ownerID, ok := h.ownerFromQuery(c, project, c.Query("owner_type"), c.Query("owner_id"))
	if !ok {
		return
	}

	attachments, err := h.attachmentService.List(ownerType, ownerID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, attachments)
}

// Upload stores one multipart file against an owner entity
// POST /api/projects/:projectId/attachments
func (h *AttachmentHandler) Upload(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}

	ownerType, ownerID, ok := h.ownerFromQuery(c, project, c.PostForm("owner_type"), c.PostForm("owner_id"))
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	defer f.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	attachment, err := h.attachmentService.Save(
		ownerType, ownerID, fileHeader.Filename, contentType, f, middleware.GetUserID(c))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, attachment)
}

// Download streams the stored bytes with the original file name
// GET /api/projects/:projectId/attachments/:id/download
func (h *AttachmentHandler) Download(c *gin.Context) {
	project, ok := h.guard.requireView(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	record, err := h.attachmentService.GetByID(id)
	if err != nil {
		response.NotFound(c, "attachment not found")
		return
	}
	inProject, err := h.attachmentService.OwnerInProject(record.OwnerType, record.OwnerID, project.ID)
	if err != nil || !inProject {
		response.NotFound(c, "attachment not found")
		return
	}

	attachment, reader, err := h.attachmentService.Open(id)
	if err != nil {
		response.NotFound(c, "attachment not found")
		return
	}
	defer reader.Close()

	contentType := attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": attachment.FileName}))
	c.Header("Content-Length", strconv.FormatInt(attachment.Size, 10))
	c.Header("Content-Type", contentType)
	c.Status(200)
	io.Copy(c.Writer, reader)
}

// Delete removes an attachment record and its file
// DELETE /api/projects/:projectId/attachments/:id
func (h *AttachmentHandler) Delete(c *gin.Context) {
	project, ok := h.guard.requireEdit(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	attachment, err := h.attachmentService.GetByID(id)
	if err != nil {
		response.NotFound(c, "attachment not found")
		return
	}
	inProject, err := h.attachmentService.OwnerInProject(attachment.OwnerType, attachment.OwnerID, project.ID)
	if err != nil || !inProject {
		response.NotFound(c, "attachment not found")
		return
	}

	if err := h.attachmentService.Delete(id); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "attachment deleted"})
}
