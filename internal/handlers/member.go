package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kyisaiah47/springforge/internal/models"
	"github.com/kyisaiah47/springforge/internal/utils"
	"gorm.io/gorm"
)

type MemberResponse struct {
	ID          string `json:"id"`
	OrgID       string `json:"org_id"`
	Email       string `json:"email"`
	GithubLogin string `json:"github_login"`
	AvatarURL   string `json:"avatar_url"`
	Role        string `json:"role"`
}

// ListMembers returns the active members of the caller's organization.
// Soft-deleted members are excluded by gorm's DeletedAt handling.
func ListMembers(conn *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		currentMember, err := utils.GetCurrentMember(ctx)

		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var members []models.Member

		err = conn.WithContext(ctx.Request.Context()).
			Where("org_id = ?", currentMember.OrgID).
			Order("created_at ASC").
			Find(&members).Error

		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
			return
		}

		response := make([]MemberResponse, 0, len(members))

		for _, member := range members {
			response = append(response, MemberResponse{
				ID:          member.ID,
				OrgID:       member.OrgID,
				Email:       member.Email,
				GithubLogin: member.GithubLogin,
				AvatarURL:   member.AvatarURL,
				Role:        member.Role,
			})
		}

		ctx.JSON(http.StatusOK, response)
	}
}
