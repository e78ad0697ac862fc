package surveys

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Survey workflow statuses.
const (
	StatusDraft           = "draft"
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
)

// Survey is a questionnaire a supervisor drafts for field execution; admins
// approve it before it reaches promotors.
type Survey struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TenantID    string    `gorm:"not null;index" json:"tenant_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`

	// Question schema: [{key, label, kind, options}]
	Questions datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"questions"`

	// Workflow
	Status        string     `gorm:"default:'draft';index" json:"status"`
	CreatedBy     string     `gorm:"not null" json:"created_by"`
	ReviewedBy    *string    `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	ReviewComment string     `json:"review_comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Survey) TableName() string { return "surveys.surveys" }
