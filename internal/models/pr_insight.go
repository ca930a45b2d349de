package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PRInsight struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID     string    `gorm:"type:uuid;not null;index" json:"org_id"`
	Repo      string    `gorm:"not null" json:"repo"`
	Number    int       `gorm:"not null" json:"number"`
	Title     string    `gorm:"not null" json:"title"`
	Author    string    `json:"author"`
	Status    string    `gorm:"not null;default:open" json:"status"` // "open", "merged", "closed"
	Additions int       `json:"additions"`
	Deletions int       `json:"deletions"`
	RiskScore float64   `json:"risk_score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrgID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (p *PRInsight) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
