package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/skilltrace/skilltrace-backend/internal/middleware"
)

func wireRouter(cfg Config, handlerset Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", handlerset.Healthcheck.Healthz)

	api := router.Group("/api/v1")
	api.Use(auth.RequireAuth())
	{
		api.GET("/students/:code/transcript", handlerset.Report.GetTranscript)
		api.GET("/reports/summary", handlerset.Report.GetSummary)
		api.GET("/events/stream", handlerset.Events.Stream)

		staff := api.Group("")
		staff.Use(auth.RequireStaff())
		{
			staff.POST("/imports/scores", handlerset.Import.ImportScores)
			staff.POST("/assessments/:id/company", handlerset.Assessment.SubmitCompanyLevel)
			staff.POST("/assessments/:id/finalize", handlerset.Assessment.Finalize)
			staff.POST("/submissions/:id/lock", handlerset.Assessment.LockSubmission)
		}
	}

	return router
}
