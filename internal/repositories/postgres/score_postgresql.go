package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/kishansingy/ielts-backend-sub000/internal/models"
	"github.com/kishansingy/ielts-backend-sub000/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScorePostgreSQL struct {
	db *gorm.DB
}

func NewScorePostgreSQL(db *gorm.DB) repositories.ScoreRepository {
	return &ScorePostgreSQL{db: db}
}

func (s *ScorePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}

func (s *ScorePostgreSQL) SaveForAttempt(ctx context.Context, tx *gorm.DB, records []*models.ScoreRecord) error {
	if len(records) == 0 {
		return nil
	}

	save := func(db *gorm.DB) error {
		for attemptID, skills := range skillsByAttempt(records) {
			if err := db.Where("attempt_id = ? AND skill_area NOT IN ?", attemptID, skills).
				Delete(&models.ScoreRecord{}).Error; err != nil {
				return fmt.Errorf("failed to remove stale score records: %w", err)
			}
		}

		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "attempt_id"}, {Name: "skill_area"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_id", "correct_count", "total_count", "accuracy_percentage", "band", "results", "updated_at",
			}),
		}).Create(&records).Error
		if err != nil {
			return fmt.Errorf("failed to save score records: %w", err)
		}
		return nil
	}

	if tx != nil {
		return save(tx.WithContext(ctx))
	}
	return s.db.WithContext(ctx).Transaction(save)
}

// skillsByAttempt lists the skills present per attempt. Rows for any other skill of
// those attempts are stale once the new records are written.
func skillsByAttempt(records []*models.ScoreRecord) map[string][]models.SkillArea {
	out := make(map[string][]models.SkillArea)
	for _, r := range records {
		if slices.Contains(out[r.AttemptID], r.SkillArea) {
			continue
		}
		out[r.AttemptID] = append(out[r.AttemptID], r.SkillArea)
	}
	return out
}

func (s *ScorePostgreSQL) GetByAttempt(ctx context.Context, tx *gorm.DB, attemptID string) ([]*models.ScoreRecord, error) {
	var records []*models.ScoreRecord
	if err := s.getDB(tx).WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Order("skill_area ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, repositories.ErrNotFound
	}
	return records, nil
}

func (s *ScorePostgreSQL) GetByAttemptAndSkill(ctx context.Context, tx *gorm.DB, attemptID string, skill models.SkillArea) (*models.ScoreRecord, error) {
	var record models.ScoreRecord
	err := s.getDB(tx).WithContext(ctx).
		Where("attempt_id = ? AND skill_area = ?", attemptID, skill).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

var sortableColumns = map[string]string{
	"created_at":          "created_at",
	"band":                "band",
	"accuracy_percentage": "accuracy_percentage",
}

func (s *ScorePostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.ScoreFilters) ([]*models.ScoreRecord, int64, error) {
	query := s.getDB(tx).WithContext(ctx).Model(&models.ScoreRecord{})

	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.SkillArea != nil {
		query = query.Where("skill_area = ?", *filters.SkillArea)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortableColumns[filters.SortBy]
	if !ok {
		column = "created_at"
	}
	order := "DESC"
	if filters.SortOrder == "asc" {
		order = "ASC"
	}
	query = query.Order(column + " " + order)

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var records []*models.ScoreRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (s *ScorePostgreSQL) DeleteByAttempt(ctx context.Context, tx *gorm.DB, attemptID string) error {
	return s.getDB(tx).WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Delete(&models.ScoreRecord{}).Error
}

func (s *ScorePostgreSQL) GetBandStats(ctx context.Context, tx *gorm.DB, userID string) ([]repositories.BandStats, error) {
	var stats []repositories.BandStats

	query := s.getDB(tx).WithContext(ctx).
		Model(&models.ScoreRecord{}).
		Select(`skill_area,
			COUNT(*) AS records,
			COALESCE(AVG(band), 0) AS average_band,
			COALESCE(AVG(accuracy_percentage), 0) AS average_accuracy,
			COALESCE(MAX(band), 0) AS highest_band`).
		Where("band > 0")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Group("skill_area").Order("skill_area ASC").Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
