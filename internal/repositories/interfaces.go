package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/kishansingy/ielts-backend-sub000/internal/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// IsNotFoundError matches both our sentinel and gorm's
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

type ScoreFilters struct {
	UserID    *string           `json:"user_id"`
	SkillArea *models.SkillArea `json:"skill_area"`
	DateFrom  *time.Time        `json:"date_from"`
	DateTo    *time.Time        `json:"date_to"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
	SortBy    string            `json:"sort_by"`    // "created_at", "band", "accuracy_percentage"
	SortOrder string            `json:"sort_order"` // "asc", "desc"
}

type BandStats struct {
	SkillArea       models.SkillArea `json:"skill_area"`
	Records         int64            `json:"records"`
	AverageBand     float64          `json:"average_band"`
	AverageAccuracy float64          `json:"average_accuracy"`
	HighestBand     float64          `json:"highest_band"`
}

// ScoreRepository persists score records. A nil tx uses the repository's own connection.
type ScoreRepository interface {
	// SaveForAttempt replaces the records of every attempt it is given, removing skills
	// the new records no longer cover
	SaveForAttempt(ctx context.Context, tx *gorm.DB, records []*models.ScoreRecord) error
	GetByAttempt(ctx context.Context, tx *gorm.DB, attemptID string) ([]*models.ScoreRecord, error)
	GetByAttemptAndSkill(ctx context.Context, tx *gorm.DB, attemptID string, skill models.SkillArea) (*models.ScoreRecord, error)
	List(ctx context.Context, tx *gorm.DB, filters ScoreFilters) ([]*models.ScoreRecord, int64, error)
	DeleteByAttempt(ctx context.Context, tx *gorm.DB, attemptID string) error

	GetBandStats(ctx context.Context, tx *gorm.DB, userID string) ([]BandStats, error)
}
