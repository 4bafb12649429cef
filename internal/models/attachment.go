package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Attachment owner types. Attachments reference their owner through an
// explicit (owner_type, owner_id) discriminated pair rather than runtime
// type dispatch.
const (
	AttachmentOwnerTestCase  = "test_case"
	AttachmentOwnerBugReport = "bug_report"
	AttachmentOwnerDocument  = "document"
	AttachmentOwnerChecklist = "checklist"
)

// ValidAttachmentOwner reports whether t is a known owner type.
func ValidAttachmentOwner(t string) bool {
	switch t {
	case AttachmentOwnerTestCase, AttachmentOwnerBugReport, AttachmentOwnerDocument, AttachmentOwnerChecklist:
		return true
	}
	return false
}

// Attachment is a stored file owned by exactly one domain entity.
type Attachment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OwnerType   string         `gorm:"index:idx_attachment_owner;size:30;not null" json:"owner_type"`
	OwnerID     uint           `gorm:"index:idx_attachment_owner;not null" json:"owner_id"`
	FileName    string         `gorm:"size:300;not null" json:"file_name"`
	ContentType string         `gorm:"size:100" json:"content_type"`
	Size        int64          `json:"size"`
	StoragePath string         `gorm:"size:500;not null" json:"-"`
	UploadedBy  uint           `json:"uploaded_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Attachment) TableName() string { return "attachments" }

// OwnerRef formats the discriminated owner reference for logs.
func (a *Attachment) OwnerRef() string {
	return fmt.Sprintf("%s:%d", a.OwnerType, a.OwnerID)
}
