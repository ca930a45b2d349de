package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kyisaiah47/springforge/internal/models"
	"github.com/kyisaiah47/springforge/internal/realtime"
	"github.com/kyisaiah47/springforge/internal/types"
	"github.com/kyisaiah47/springforge/internal/utils"
	"gorm.io/gorm"
)

type CreateStandupRequest struct {
	Date      string   `json:"date" binding:"required"` // "2006-01-02"
	Yesterday string   `json:"yesterday"`
	Today     string   `json:"today"`
	Blockers  []string `json:"blockers"`
}

func ListStandups(conn *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		currentMember, err := utils.GetCurrentMember(ctx)

		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var standups []models.Standup

		query := conn.WithContext(ctx.Request.Context()).
			Where("org_id = ?", currentMember.OrgID).
			Order("date DESC, created_at DESC")

		if date := ctx.Query("date"); date != "" {
			if _, err := time.Parse("2006-01-02", date); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
				return
			}
			query = query.Where("date = ?", date)
		}

		if err := query.Find(&standups).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve standups"})
			return
		}

		ctx.JSON(http.StatusOK, standups)
	}
}

func CreateStandup(conn *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		currentMember, err := utils.GetCurrentMember(ctx)

		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var body CreateStandupRequest

		if err := ctx.BindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		date, err := time.Parse("2006-01-02", body.Date)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}

		blockers, err := json.Marshal(body.Blockers)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		standup := models.Standup{
			OrgID:     currentMember.OrgID,
			MemberID:  currentMember.ID,
			Date:      date,
			Yesterday: body.Yesterday,
			Today:     body.Today,
			Blockers:  blockers,
		}

		if err := conn.WithContext(ctx.Request.Context()).Create(&standup).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create standup"})
			return
		}

		if err := hub.PublishRecord(types.TableStandups, realtime.EventInsert, standup); err != nil {
			log.Printf("Failed to publish standup %s: %v", standup.ID, err)
		}

		ctx.JSON(http.StatusCreated, standup)
	}
}
