package onboarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/kyisaiah47/springforge/internal/auth"
	"github.com/kyisaiah47/springforge/internal/models"
	"github.com/kyisaiah47/springforge/internal/types"
)

var (
	// ErrUnauthorized means the caller supplied no usable identity.
	ErrUnauthorized = errors.New("missing authenticated identity")

	// ErrMemberNotFound is returned by stores when no active member matches
	// an email. Soft-deleted members never match.
	ErrMemberNotFound = errors.New("member not found")

	// ErrEmailConflict is returned by stores when an insert collides with the
	// unique constraint on active member emails.
	ErrEmailConflict = errors.New("active member email already exists")
)

// Store is the persistence boundary for onboarding. CreateOrganizationWithAdmin
// must create the organization and its first membership as one atomic unit.
type Store interface {
	FindActiveMemberByEmail(ctx context.Context, email string) (*models.Member, error)
	UpdateMemberProfile(ctx context.Context, member *models.Member) error
	CreateOrganizationWithAdmin(ctx context.Context, name string, settings models.OrganizationSettings, identity auth.Identity) (*models.Organization, *models.Member, error)
}

// Result is the outcome of resolving an identity to a membership.
// Organization is set only on the first-contact path; existing members are
// assumed to already know their organization.
type Result struct {
	Member       *models.Member       `json:"member"`
	Organization *models.Organization `json:"organization,omitempty"`
	IsNewUser    bool                 `json:"is_new_user"`
}

// Resolver maps an authenticated identity to exactly one active membership,
// provisioning an organization with an admin membership on first contact.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

func (r *Resolver) Resolve(ctx context.Context, identity auth.Identity) (Result, error) {
	if identity.Email == "" {
		return Result{}, ErrUnauthorized
	}

	member, err := r.store.FindActiveMemberByEmail(ctx, identity.Email)

	if err == nil {
		return r.refreshProfile(ctx, member, identity)
	}

	if !errors.Is(err, ErrMemberNotFound) {
		return Result{}, fmt.Errorf("lookup member %s: %w", identity.Email, err)
	}

	name := fmt.Sprintf("%s's Team", identity.DisplayName())
	settings := models.OrganizationSettings{Timezone: types.DefaultTimezone}

	org, newMember, err := r.store.CreateOrganizationWithAdmin(ctx, name, settings, identity)

	if errors.Is(err, ErrEmailConflict) {
		// A concurrent first-contact call won the insert. Fall back to the
		// existing-member branch against the row it created.
		member, lookupErr := r.store.FindActiveMemberByEmail(ctx, identity.Email)
		if lookupErr != nil {
			return Result{}, fmt.Errorf("relookup after conflict for %s: %w", identity.Email, lookupErr)
		}
		return r.refreshProfile(ctx, member, identity)
	}

	if err != nil {
		return Result{}, fmt.Errorf("provision organization for %s: %w", identity.Email, err)
	}

	return Result{Member: newMember, Organization: org, IsNewUser: true}, nil
}

func (r *Resolver) refreshProfile(ctx context.Context, member *models.Member, identity auth.Identity) (Result, error) {
	member.GithubLogin = identity.Metadata.UserName
	member.GithubID = identity.Metadata.ProviderID
	member.AvatarURL = identity.Metadata.AvatarURL

	if err := r.store.UpdateMemberProfile(ctx, member); err != nil {
		return Result{}, fmt.Errorf("refresh member %s: %w", member.ID, err)
	}

	return Result{Member: member, IsNewUser: false}, nil
}
