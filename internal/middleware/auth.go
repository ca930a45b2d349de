package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kyisaiah47/springforge/internal/auth"
	"github.com/kyisaiah47/springforge/internal/models"
	"github.com/kyisaiah47/springforge/internal/types"
	"gorm.io/gorm"
)

// RequireIdentity validates the bearer token and stores the authenticated
// identity on the request context. It does not require a membership; the
// onboarding endpoint runs with identity only.
func RequireIdentity(verifier *auth.TokenVerifier) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		identity, err := verifier.VerifyToken(parts[1])

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx.Set(types.ContextIdentityKey, identity)
		ctx.Next()
	}
}

// RequireMember resolves the identity set by RequireIdentity to an active
// member row and stores it on the request context. Identities that have not
// onboarded yet are rejected.
func RequireMember(conn *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, exists := ctx.Get(types.ContextIdentityKey)

		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		authIdentity, ok := identity.(auth.Identity)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var member models.Member

		err := conn.WithContext(ctx.Request.Context()).
			Where("email = ?", authIdentity.Email).
			First(&member).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Onboarding required"})
				return
			}
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		ctx.Set(types.ContextMemberKey, member)
		ctx.Next()
	}
}
