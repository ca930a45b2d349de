package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kyisaiah47/springforge/internal/auth"
	"github.com/kyisaiah47/springforge/internal/onboarding"
	"github.com/kyisaiah47/springforge/internal/utils"
)

// OnboardingResolver is what the onboard endpoint needs from the onboarding
// package; tests substitute a fake.
type OnboardingResolver interface {
	Resolve(ctx context.Context, identity auth.Identity) (onboarding.Result, error)
}

func Onboard(resolver OnboardingResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, err := utils.GetCurrentIdentity(ctx)

		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		result, err := resolver.Resolve(ctx.Request.Context(), identity)

		if err != nil {
			if errors.Is(err, onboarding.ErrUnauthorized) {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
				return
			}
			log.Printf("Failed to onboard %s: %v", identity.Email, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		response := gin.H{
			"member":      result.Member,
			"is_new_user": result.IsNewUser,
		}

		if result.Organization != nil {
			response["organization"] = result.Organization
		}

		ctx.JSON(http.StatusOK, response)
	}
}
