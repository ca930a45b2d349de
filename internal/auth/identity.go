package auth

// Identity is the authenticated principal supplied by the external auth
// provider. It is carried per-request and never persisted directly; the
// onboarding resolver maps it to a Member row.
type Identity struct {
	Email    string           `json:"email"`
	Metadata IdentityMetadata `json:"user_metadata"`
}

type IdentityMetadata struct {
	FullName   string `json:"full_name"`
	UserName   string `json:"user_name"`
	ProviderID string `json:"provider_id"`
	AvatarURL  string `json:"avatar_url"`
}

// DisplayName prefers the provider-supplied full name, falling back to the
// email address when the provider sent none.
func (i Identity) DisplayName() string {
	if i.Metadata.FullName != "" {
		return i.Metadata.FullName
	}
	return i.Email
}
