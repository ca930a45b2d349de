package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/kyisaiah47/springforge/internal/auth"
	"github.com/kyisaiah47/springforge/internal/models"
	"github.com/kyisaiah47/springforge/internal/types"
)

func GetCurrentIdentity(ctx *gin.Context) (auth.Identity, error) {
	identity, exists := ctx.Get(types.ContextIdentityKey)

	if !exists {
		return auth.Identity{}, fmt.Errorf("user not authenticated")
	}

	authIdentity, ok := identity.(auth.Identity)

	if !ok {
		return auth.Identity{}, fmt.Errorf("invalid identity type in context")
	}

	return authIdentity, nil
}

func GetCurrentMember(ctx *gin.Context) (models.Member, error) {
	member, exists := ctx.Get(types.ContextMemberKey)

	if !exists {
		return models.Member{}, fmt.Errorf("no member resolved for request")
	}

	currentMember, ok := member.(models.Member)

	if !ok {
		return models.Member{}, fmt.Errorf("invalid member type in context")
	}

	return currentMember, nil
}
