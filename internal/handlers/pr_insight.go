package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kyisaiah47/springforge/internal/models"
	"github.com/kyisaiah47/springforge/internal/realtime"
	"github.com/kyisaiah47/springforge/internal/types"
	"github.com/kyisaiah47/springforge/internal/utils"
	"gorm.io/gorm"
)

type CreatePRInsightRequest struct {
	Repo      string  `json:"repo" binding:"required"`
	Number    int     `json:"number" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	Author    string  `json:"author"`
	Additions int     `json:"additions"`
	Deletions int     `json:"deletions"`
	RiskScore float64 `json:"risk_score"`
}

type UpdatePRStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open merged closed"`
}

func ListPRInsights(conn *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		currentMember, err := utils.GetCurrentMember(ctx)

		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var insights []models.PRInsight

		query := conn.WithContext(ctx.Request.Context()).
			Where("org_id = ?", currentMember.OrgID).
			Order("created_at DESC")

		if status := ctx.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		if err := query.Find(&insights).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve PR insights"})
			return
		}

		ctx.JSON(http.StatusOK, insights)
	}
}

func CreatePRInsight(conn *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		currentMember, err := utils.GetCurrentMember(ctx)

		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var body CreatePRInsightRequest

		if err := ctx.BindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		insight := models.PRInsight{
			OrgID:     currentMember.OrgID,
			Repo:      body.Repo,
			Number:    body.Number,
			Title:     body.Title,
			Author:    body.Author,
			Status:    "open",
			Additions: body.Additions,
			Deletions: body.Deletions,
			RiskScore: body.RiskScore,
		}

		if err := conn.WithContext(ctx.Request.Context()).Create(&insight).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create PR insight"})
			return
		}

		if err := hub.PublishRecord(types.TablePRInsights, realtime.EventInsert, insight); err != nil {
			log.Printf("Failed to publish PR insight %s: %v", insight.ID, err)
		}

		ctx.JSON(http.StatusCreated, insight)
	}
}

func UpdatePRStatus(conn *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		currentMember, err := utils.GetCurrentMember(ctx)

		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var body UpdatePRStatusRequest

		if err := ctx.BindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		var insight models.PRInsight
		insightID := ctx.Param("insight_id")

		err = conn.WithContext(ctx.Request.Context()).
			Where("id = ? AND org_id = ?", insightID, currentMember.OrgID).
			First(&insight).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "PR insight not found"})
			} else {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve PR insight"})
			}
			return
		}

		insight.Status = body.Status

		if err := conn.WithContext(ctx.Request.Context()).Save(&insight).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update PR insight"})
			return
		}

		if err := hub.PublishRecord(types.TablePRInsights, realtime.EventUpdate, insight); err != nil {
			log.Printf("Failed to publish PR insight %s: %v", insight.ID, err)
		}

		ctx.JSON(http.StatusOK, insight)
	}
}
