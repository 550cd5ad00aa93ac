package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kishansingy/ielts-backend-sub000/internal/evaluation"
	"github.com/kishansingy/ielts-backend-sub000/internal/services"
	"github.com/kishansingy/ielts-backend-sub000/internal/utils"
)

type HandlerManager struct {
	evaluationHandler *EvaluationHandler
	attemptHandler    *AttemptHandler
	referenceHandler  *ReferenceHandler
}

func NewHandlerManager(
	gradingService services.GradingService,
	referenceService services.ReferenceService,
	reportService services.ReportService,
	tables *evaluation.ReferenceTables,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		evaluationHandler: NewEvaluationHandler(gradingService, logger),
		attemptHandler:    NewAttemptHandler(gradingService, reportService, logger),
		referenceHandler:  NewReferenceHandler(referenceService, tables, logger),
	}
}

// SetupRoutes sets up all API routes. Guards, typically auth, apply to /api/v1 only.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, guards ...gin.HandlerFunc) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "evaluation-service",
		})
	})

	v1 := router.Group("/api/v1", guards...)
	{
		v1.POST("/evaluations", hm.evaluationHandler.Evaluate)
		v1.POST("/scores", hm.evaluationHandler.Score)
		v1.GET("/scores", hm.attemptHandler.ListScores)

		attempts := v1.Group("/attempts")
		{
			attempts.POST("/:attempt_id/grade", hm.attemptHandler.GradeAttempt)
			attempts.GET("/:attempt_id/scores", hm.attemptHandler.GetAttemptScores)
			attempts.DELETE("/:attempt_id/scores", hm.attemptHandler.DeleteAttemptScores)
			attempts.GET("/:attempt_id/scores/export", hm.attemptHandler.ExportAttemptScores)
			attempts.GET("/:attempt_id/scores/:skill_area", hm.attemptHandler.GetSkillScore)
		}

		v1.GET("/users/:user_id/band-stats", hm.attemptHandler.GetBandStats)

		v1.GET("/reference-tables/export", hm.referenceHandler.ExportReferenceTables)
	}
}
