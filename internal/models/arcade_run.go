package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ArcadeRun struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID      string         `gorm:"type:uuid;not null;index" json:"org_id"`
	MemberID   string         `gorm:"type:uuid;not null;index" json:"member_id"`
	Level      string         `gorm:"not null" json:"level"`
	Status     string         `gorm:"not null;default:started" json:"status"` // "started", "solved", "abandoned"
	Score      int            `json:"score"`
	DurationMs int            `json:"duration_ms"`
	Payload    datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrgID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Member       Member       `gorm:"foreignKey:MemberID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (a *ArcadeRun) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
