package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kyisaiah47/springforge/internal/auth"
	"github.com/kyisaiah47/springforge/internal/models"
	"github.com/kyisaiah47/springforge/internal/types"
	"gorm.io/gorm"
)

// GormStore is the privileged persistence path for onboarding. It runs
// without per-member scoping because first-contact callers have no
// membership yet.
type GormStore struct {
	conn *gorm.DB
}

func NewGormStore(conn *gorm.DB) *GormStore {
	return &GormStore{conn: conn}
}

func (s *GormStore) FindActiveMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	var members []models.Member

	// Soft-deleted rows are excluded by gorm's DeletedAt handling. Fetch up
	// to two so a uniqueness violation surfaces as an integrity error
	// instead of silently picking one.
	err := s.conn.WithContext(ctx).
		Where("email = ?", email).
		Limit(2).
		Find(&members).Error

	if err != nil {
		return nil, err
	}

	switch len(members) {
	case 0:
		return nil, ErrMemberNotFound
	case 1:
		return &members[0], nil
	default:
		return nil, fmt.Errorf("integrity: multiple active members share email %s", email)
	}
}

func (s *GormStore) UpdateMemberProfile(ctx context.Context, member *models.Member) error {
	return s.conn.WithContext(ctx).Model(member).Updates(map[string]interface{}{
		"github_login": member.GithubLogin,
		"github_id":    member.GithubID,
		"avatar_url":   member.AvatarURL,
	}).Error
}

func (s *GormStore) CreateOrganizationWithAdmin(ctx context.Context, name string, settings models.OrganizationSettings, identity auth.Identity) (*models.Organization, *models.Member, error) {
	settingsJSON, err := json.Marshal(settings)

	if err != nil {
		return nil, nil, fmt.Errorf("encode settings: %w", err)
	}

	var org models.Organization
	var member models.Member

	// One transaction: an organization must never be observable with zero
	// memberships.
	err = s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org = models.Organization{
			Name:     name,
			Settings: settingsJSON,
		}

		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		member = models.Member{
			OrgID:       org.ID,
			Email:       identity.Email,
			GithubLogin: identity.Metadata.UserName,
			GithubID:    identity.Metadata.ProviderID,
			AvatarURL:   identity.Metadata.AvatarURL,
			Role:        types.RoleAdmin,
		}

		return tx.Create(&member).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrEmailConflict
		}
		return nil, nil, err
	}

	return &org, &member, nil
}
