package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kishansingy/ielts-backend-sub000/internal/services"
	"github.com/kishansingy/ielts-backend-sub000/internal/utils"
)

type EvaluationHandler struct {
	BaseHandler
	gradingService services.GradingService
}

func NewEvaluationHandler(gradingService services.GradingService, logger utils.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		BaseHandler:    NewBaseHandler(logger),
		gradingService: gradingService,
	}
}

// Evaluate judges answers against questions without persisting anything
// @Summary Evaluate answers
// @Tags evaluation
// @Accept json
// @Produce json
// @Param request body services.EvaluateRequest true "Questions and answers paired by index"
// @Success 200 {object} services.EvaluateResponse
// @Failure 400 {object} ErrorResponse
// @Router /evaluations [post]
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	var req services.EvaluateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Evaluating answers", "questions", len(req.Questions), "answers", len(req.Answers))

	resp, err := h.gradingService.Evaluate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Score converts a correct count into accuracy and band
// @Summary Score outcome
// @Tags evaluation
// @Accept json
// @Produce json
// @Param request body services.ScoreRequest true "Counts and skill area"
// @Success 200 {object} models.ScoreReport
// @Failure 400 {object} ErrorResponse
// @Router /scores [post]
func (h *EvaluationHandler) Score(c *gin.Context) {
	var req services.ScoreRequest
	if !h.bindJSON(c, &req) {
		return
	}

	report, err := h.gradingService.Score(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
