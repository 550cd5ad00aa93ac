package services

import (
	"time"

	"github.com/kishansingy/ielts-backend-sub000/internal/models"
)

// EvaluateRequest pairs answers with questions by index
type EvaluateRequest struct {
	Questions []models.Question `json:"questions" validate:"required,min=1,dive"`
	Answers   []string          `json:"answers"`
}

type ScoreRequest struct {
	CorrectCount int              `json:"correct_count" validate:"gte=0,ltefield=TotalCount"`
	TotalCount   int              `json:"total_count" validate:"gte=0"`
	SkillArea    models.SkillArea `json:"skill_area" validate:"required"`
}

type GradeAttemptRequest struct {
	UserID    string            `json:"user_id" validate:"max=64"`
	Questions []models.Question `json:"questions" validate:"required,min=1,dive"`
	Answers   []string          `json:"answers"`
}

type EvaluateResponse struct {
	Results  []models.EvaluationResult `json:"results"`
	Warnings map[int][]string          `json:"warnings,omitempty"`
}

type AttemptGradingResult struct {
	AttemptID string                    `json:"attempt_id"`
	UserID    string                    `json:"user_id,omitempty"`
	Results   []models.EvaluationResult `json:"results"`
	Reports   []models.ScoreReport      `json:"reports"`
	Warnings  map[int][]string          `json:"warnings,omitempty"`
	ScoredAt  time.Time                 `json:"scored_at"`
}
