package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member links a person (by email) to exactly one organization with a role.
// Removal is a soft delete; the partial unique index keeps emails unique
// among non-deleted rows only, so a removed member can be re-onboarded.
type Member struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID       string         `gorm:"type:uuid;not null;index" json:"org_id"`
	Email       string         `gorm:"not null;uniqueIndex:idx_members_active_email,where:deleted_at IS NULL" json:"email"`
	GithubLogin string         `json:"github_login"`
	GithubID    string         `json:"github_id"`
	AvatarURL   string         `json:"avatar_url"`
	Role        string         `gorm:"not null;default:member" json:"role"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrgID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
