package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/kishansingy/ielts-backend-sub000/internal/models"
)

type EventType string

const (
	EventAttemptScored EventType = "attempt.scored"
)

const (
	eventSource  = "evaluation-service"
	eventVersion = "1.0"
)

// ScoringEvent is the envelope for every event this service publishes
type ScoringEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type AttemptScoredEvent struct {
	AttemptID string               `json:"attempt_id"`
	UserID    string               `json:"user_id,omitempty"`
	Reports   []models.ScoreReport `json:"reports"`
	ScoredAt  time.Time            `json:"scored_at"`
}

func NewAttemptScoredEvent(attemptID, userID string, reports []models.ScoreReport, scoredAt time.Time) *ScoringEvent {
	return &ScoringEvent{
		ID:        uuid.NewString(),
		Type:      EventAttemptScored,
		Timestamp: scoredAt,
		Source:    eventSource,
		Version:   eventVersion,
		Data: AttemptScoredEvent{
			AttemptID: attemptID,
			UserID:    userID,
			Reports:   reports,
			ScoredAt:  scoredAt,
		},
		Metadata: map[string]interface{}{
			"skills": len(reports),
		},
	}
}
