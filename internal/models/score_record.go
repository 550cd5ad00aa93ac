package models

import (
	"time"

	"gorm.io/datatypes"
)

// ScoreRecord is the persisted form of a ScoreReport for one skill of one attempt.
type ScoreRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AttemptID string    `json:"attempt_id" gorm:"not null;size:64;uniqueIndex:idx_attempt_skill"`
	UserID    string    `json:"user_id" gorm:"size:64;index"`
	SkillArea SkillArea `json:"skill_area" gorm:"not null;size:16;uniqueIndex:idx_attempt_skill"`

	CorrectCount       int     `json:"correct_count"`
	TotalCount         int     `json:"total_count"`
	AccuracyPercentage float64 `json:"accuracy_percentage"`
	Band               float64 `json:"band"`

	Results datatypes.JSON `json:"results" gorm:"type:jsonb"` // []EvaluationResult

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ScoreRecord) TableName() string {
	return "score_records"
}

// Report returns the score fields of the record.
func (r *ScoreRecord) Report() ScoreReport {
	return ScoreReport{
		SkillArea:          r.SkillArea,
		CorrectCount:       r.CorrectCount,
		TotalCount:         r.TotalCount,
		AccuracyPercentage: r.AccuracyPercentage,
		Band:               r.Band,
	}
}
