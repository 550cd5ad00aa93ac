package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kishansingy/ielts-backend-sub000/internal/models"
	"github.com/kishansingy/ielts-backend-sub000/internal/repositories"
	"github.com/kishansingy/ielts-backend-sub000/internal/services"
	"github.com/kishansingy/ielts-backend-sub000/internal/utils"
)

type AttemptHandler struct {
	BaseHandler
	gradingService services.GradingService
	reportService  services.ReportService
}

func NewAttemptHandler(
	gradingService services.GradingService,
	reportService services.ReportService,
	logger utils.Logger,
) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		gradingService: gradingService,
		reportService:  reportService,
	}
}

// GradeAttempt evaluates, scores and stores an attempt
// @Summary Grade attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param request body services.GradeAttemptRequest true "Questions and answers"
// @Success 200 {object} services.AttemptGradingResult
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /attempts/{attempt_id}/grade [post]
func (h *AttemptHandler) GradeAttempt(c *gin.Context) {
	attemptID := ParseStringIDParam(c, "attempt_id")
	if attemptID == "" {
		return
	}

	var req services.GradeAttemptRequest
	if !h.bindJSON(c, &req) {
		return
	}
	// An authenticated caller always grades as themselves
	if userID := c.GetString(UserIDKey); userID != "" {
		req.UserID = userID
	}

	h.LogRequest(c, "Grading attempt", "attempt_id", attemptID, "questions", len(req.Questions))

	result, err := h.gradingService.GradeAttempt(c.Request.Context(), attemptID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAttemptScores returns the stored score records of an attempt
// @Summary Get attempt scores
// @Tags attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} SuccessResponse{data=[]models.ScoreRecord}
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{attempt_id}/scores [get]
func (h *AttemptHandler) GetAttemptScores(c *gin.Context) {
	attemptID := ParseStringIDParam(c, "attempt_id")
	if attemptID == "" {
		return
	}

	records, err := h.gradingService.GetAttemptScores(c.Request.Context(), attemptID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Scores retrieved",
		Data:    records,
	})
}

// ExportAttemptScores downloads the attempt scores as a workbook
// @Summary Export attempt scores
// @Tags attempts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param attempt_id path string true "Attempt ID"
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{attempt_id}/scores/export [get]
func (h *AttemptHandler) ExportAttemptScores(c *gin.Context) {
	attemptID := ParseStringIDParam(c, "attempt_id")
	if attemptID == "" {
		return
	}

	data, err := h.reportService.ExportAttemptScores(c.Request.Context(), attemptID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	sendWorkbook(c, "attempt-"+attemptID+"-scores.xlsx", data)
}

// GetBandStats summarises the bands a user has earned per skill
// @Summary Get band statistics
// @Tags users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} SuccessResponse{data=[]repositories.BandStats}
// @Router /users/{user_id}/band-stats [get]
func (h *AttemptHandler) GetBandStats(c *gin.Context) {
	userID := ParseStringIDParam(c, "user_id")
	if userID == "" {
		return
	}

	stats, err := h.gradingService.GetBandStats(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Band statistics retrieved",
		Data:    stats,
	})
}

// GetSkillScore returns the stored score of one skill of an attempt
// @Summary Get skill score
// @Tags attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param skill_area path string true "reading or listening"
// @Success 200 {object} SuccessResponse{data=models.ScoreRecord}
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{attempt_id}/scores/{skill_area} [get]
func (h *AttemptHandler) GetSkillScore(c *gin.Context) {
	attemptID := ParseStringIDParam(c, "attempt_id")
	if attemptID == "" {
		return
	}

	record, err := h.gradingService.GetSkillScore(c.Request.Context(), attemptID, models.SkillArea(c.Param("skill_area")))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Score retrieved",
		Data:    record,
	})
}

// DeleteAttemptScores removes the stored scores of an attempt
// @Summary Delete attempt scores
// @Tags attempts
// @Param attempt_id path string true "Attempt ID"
// @Success 204
// @Router /attempts/{attempt_id}/scores [delete]
func (h *AttemptHandler) DeleteAttemptScores(c *gin.Context) {
	attemptID := ParseStringIDParam(c, "attempt_id")
	if attemptID == "" {
		return
	}

	h.LogRequest(c, "Deleting attempt scores", "attempt_id", attemptID)

	if err := h.gradingService.DeleteAttemptScores(c.Request.Context(), attemptID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListScores returns score records filtered by query parameters
// @Summary List scores
// @Tags scores
// @Produce json
// @Param user_id query string false "User ID"
// @Param skill_area query string false "reading or listening"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Param sort_by query string false "created_at, band or accuracy_percentage"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} ListResponse
// @Router /scores [get]
func (h *AttemptHandler) ListScores(c *gin.Context) {
	var filters repositories.ScoreFilters
	if userID := c.Query("user_id"); userID != "" {
		filters.UserID = &userID
	}
	if skill := c.Query("skill_area"); skill != "" {
		skillArea := models.SkillArea(skill)
		filters.SkillArea = &skillArea
	}
	filters.Limit, _ = strconv.Atoi(c.Query("limit"))
	filters.Offset, _ = strconv.Atoi(c.Query("offset"))
	filters.SortBy = c.Query("sort_by")
	filters.SortOrder = c.Query("sort_order")

	records, total, err := h.gradingService.ListScores(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Data:  records,
		Total: total,
	})
}
