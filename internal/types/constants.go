package types

import (
	"os"
	"strings"
)

const (
	ContextIdentityKey = "identity"
	ContextMemberKey   = "member"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// DefaultTimezone is applied to a newly provisioned organization when the
// caller specifies no settings.
const DefaultTimezone = "America/New_York"

// Table names used as realtime change-feed sources.
const (
	TableMembers    = "members"
	TablePRInsights = "pr_insights"
	TableStandups   = "standups"
	TableArcadeRuns = "arcade_runs"
)

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
