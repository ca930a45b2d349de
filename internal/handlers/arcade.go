package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kyisaiah47/springforge/internal/models"
	"github.com/kyisaiah47/springforge/internal/realtime"
	"github.com/kyisaiah47/springforge/internal/types"
	"github.com/kyisaiah47/springforge/internal/utils"
	"gorm.io/gorm"
)

type CreateArcadeRunRequest struct {
	Level      string                 `json:"level" binding:"required"`
	Status     string                 `json:"status" binding:"omitempty,oneof=started solved abandoned"`
	Score      int                    `json:"score"`
	DurationMs int                    `json:"duration_ms"`
	Payload    map[string]interface{} `json:"payload"`
}

func ListArcadeRuns(conn *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		currentMember, err := utils.GetCurrentMember(ctx)

		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var runs []models.ArcadeRun

		err = conn.WithContext(ctx.Request.Context()).
			Where("org_id = ?", currentMember.OrgID).
			Order("score DESC, created_at DESC").
			Limit(100).
			Find(&runs).Error

		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve arcade runs"})
			return
		}

		ctx.JSON(http.StatusOK, runs)
	}
}

func CreateArcadeRun(conn *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		currentMember, err := utils.GetCurrentMember(ctx)

		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var body CreateArcadeRunRequest

		if err := ctx.BindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		status := body.Status

		if status == "" {
			status = "started"
		}

		payload, err := json.Marshal(body.Payload)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		run := models.ArcadeRun{
			OrgID:      currentMember.OrgID,
			MemberID:   currentMember.ID,
			Level:      body.Level,
			Status:     status,
			Score:      body.Score,
			DurationMs: body.DurationMs,
			Payload:    payload,
		}

		if err := conn.WithContext(ctx.Request.Context()).Create(&run).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create arcade run"})
			return
		}

		if err := hub.PublishRecord(types.TableArcadeRuns, realtime.EventInsert, run); err != nil {
			log.Printf("Failed to publish arcade run %s: %v", run.ID, err)
		}

		ctx.JSON(http.StatusCreated, run)
	}
}
