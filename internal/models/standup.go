package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Standup struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID     string         `gorm:"type:uuid;not null;index" json:"org_id"`
	MemberID  string         `gorm:"type:uuid;not null;index" json:"member_id"`
	Date      time.Time      `gorm:"type:date;not null" json:"date"`
	Yesterday string         `json:"yesterday"`
	Today     string         `json:"today"`
	Blockers  datatypes.JSON `gorm:"type:jsonb" json:"blockers"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrgID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Member       Member       `gorm:"foreignKey:MemberID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (s *Standup) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
