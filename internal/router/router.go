package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kyisaiah47/springforge/internal/auth"
	"github.com/kyisaiah47/springforge/internal/handlers"
	"github.com/kyisaiah47/springforge/internal/middleware"
	"github.com/kyisaiah47/springforge/internal/realtime"
	"github.com/kyisaiah47/springforge/internal/types"
	"gorm.io/gorm"
)

type Deps struct {
	Conn     *gorm.DB
	Verifier *auth.TokenVerifier
	Resolver handlers.OnboardingResolver
	Hub      *realtime.Hub
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	requireIdentity := middleware.RequireIdentity(deps.Verifier)
	requireMember := middleware.RequireMember(deps.Conn)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/onboard", requireIdentity, handlers.Onboard(deps.Resolver))
		api.GET("/ws/:org_id", requireIdentity, requireMember, handlers.WebSocket(deps.Hub))

		org := api.Group("", requireIdentity, requireMember)
		{
			org.GET("/members", handlers.ListMembers(deps.Conn))

			org.GET("/standups", handlers.ListStandups(deps.Conn))
			org.POST("/standups", handlers.CreateStandup(deps.Conn, deps.Hub))

			org.GET("/pr-insights", handlers.ListPRInsights(deps.Conn))
			org.POST("/pr-insights", handlers.CreatePRInsight(deps.Conn, deps.Hub))
			org.PATCH("/pr-insights/:insight_id/status", handlers.UpdatePRStatus(deps.Conn, deps.Hub))

			org.GET("/arcade/runs", handlers.ListArcadeRuns(deps.Conn))
			org.POST("/arcade/runs", handlers.CreateArcadeRun(deps.Conn, deps.Hub))
		}
	}

	return r
}
