package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/checkmatehq/checkmate/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttachmentService stores uploaded files on disk and tracks them through
// the attachments table. Files are laid out as
// <uploadDir>/<yyyy>/<mm>/<uuid><ext> so the original name never touches
// the filesystem.
type AttachmentService struct {
	db        *gorm.DB
	uploadDir string
	maxBytes  int64
}

func NewAttachmentService(db *gorm.DB, uploadDir string, maxSizeMB int64) *AttachmentService {
	if maxSizeMB <= 0 {
		maxSizeMB = 20
	}
	return &AttachmentService{
		db:        db,
		uploadDir: uploadDir,
		maxBytes:  maxSizeMB << 20,
	}
}

// List returns the attachments owned by one entity.
func (s *AttachmentService) List(ownerType string, ownerID uint) ([]models.Attachment, error) {
	if !models.ValidAttachmentOwner(ownerType) {
		return nil, fmt.Errorf("invalid attachment owner type: %q", ownerType)
	}
	var attachments []models.Attachment
	if err := s.db.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("id ASC").Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// OwnerInProject reports whether the owner entity exists inside the given
// project. Used by handlers to keep attachment access project-scoped.
func (s *AttachmentService) OwnerInProject(ownerType string, ownerID, projectID uint) (bool, error) {
	var model interface{}
	switch ownerType {
	case models.AttachmentOwnerTestCase:
		model = &models.TestCase{}
	case models.AttachmentOwnerBugReport:
		model = &models.BugReport{}
	case models.AttachmentOwnerDocument:
		model = &models.Document{}
	case models.AttachmentOwnerChecklist:
		model = &models.Checklist{}
	default:
		return false, fmt.Errorf("invalid attachment owner type: %q", ownerType)
	}

	var count int64
	if err := s.db.Model(model).
		Where("id = ? AND project_id = ?", ownerID, projectID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save streams an uploaded file to disk and records it. The size limit is
// enforced while copying so oversized uploads never land fully on disk.
func (s *AttachmentService) Save(ownerType string, ownerID uint, fileName, contentType string, r io.Reader, userID uint) (*models.Attachment, error) {
	if !models.ValidAttachmentOwner(ownerType) {
		return nil, fmt.Errorf("invalid attachment owner type: %q", ownerType)
	}
	if fileName == "" {
		return nil, errors.New("file name is required")
	}

	now := time.Now()
	dir := filepath.Join(s.uploadDir, now.Format("2006"), now.Format("01"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	storagePath := filepath.Join(dir, uuid.NewString()+filepath.Ext(fileName))
	f, err := os.Create(storagePath)
	if err != nil {
		return nil, err
	}

	written, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxBytes {
		err = fmt.Errorf("file exceeds the %d MB limit", s.maxBytes>>20)
	}
	if err != nil {
		os.Remove(storagePath)
		return nil, err
	}

	attachment := models.Attachment{
		OwnerType:   ownerType,
		OwnerID:     ownerID,
		FileName:    filepath.Base(fileName),
		ContentType: contentType,
		Size:        written,
		StoragePath: storagePath,
		UploadedBy:  userID,
	}
	if err := s.db.Create(&attachment).Error; err != nil {
		os.Remove(storagePath)
		return nil, err
	}
	return &attachment, nil
}

// GetByID returns an attachment record.
func (s *AttachmentService) GetByID(id uint) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := s.db.First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// Open returns the attachment record and a reader over its stored bytes.
// The caller closes the reader.
func (s *AttachmentService) Open(id uint) (*models.Attachment, io.ReadCloser, error) {
	var attachment models.Attachment
	if err := s.db.First(&attachment, id).Error; err != nil {
		return nil, nil, err
	}
	f, err := os.Open(attachment.StoragePath)
	if err != nil {
		return nil, nil, err
	}
	return &attachment, f, nil
}

// Delete removes the record and best-effort removes the file; a missing
// file is not an error.
func (s *AttachmentService) Delete(id uint) error {
	var attachment models.Attachment
	if err := s.db.First(&attachment, id).Error; err != nil {
		return err
	}
	if err := s.db.Unscoped().Delete(&attachment).Error; err != nil {
		return err
	}
	if err := os.Remove(attachment.StoragePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
