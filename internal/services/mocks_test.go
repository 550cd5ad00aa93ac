package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kishansingy/ielts-backend-sub000/internal/cache"
	"github.com/kishansingy/ielts-backend-sub000/internal/models"
	"github.com/kishansingy/ielts-backend-sub000/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockScoreRepository is a mock implementation of ScoreRepository
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) SaveForAttempt(ctx context.Context, tx *gorm.DB, records []*models.ScoreRecord) error {
	args := m.Called(ctx, tx, records)
	return args.Error(0)
}

func (m *MockScoreRepository) GetByAttempt(ctx context.Context, tx *gorm.DB, attemptID string) ([]*models.ScoreRecord, error) {
	args := m.Called(ctx, tx, attemptID)
	records, _ := args.Get(0).([]*models.ScoreRecord)
	return records, args.Error(1)
}

func (m *MockScoreRepository) GetByAttemptAndSkill(ctx context.Context, tx *gorm.DB, attemptID string, skill models.SkillArea) (*models.ScoreRecord, error) {
	args := m.Called(ctx, tx, attemptID, skill)
	record, _ := args.Get(0).(*models.ScoreRecord)
	return record, args.Error(1)
}

func (m *MockScoreRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.ScoreFilters) ([]*models.ScoreRecord, int64, error) {
	args := m.Called(ctx, tx, filters)
	records, _ := args.Get(0).([]*models.ScoreRecord)
	return records, args.Get(1).(int64), args.Error(2)
}

func (m *MockScoreRepository) DeleteByAttempt(ctx context.Context, tx *gorm.DB, attemptID string) error {
	args := m.Called(ctx, tx, attemptID)
	return args.Error(0)
}

func (m *MockScoreRepository) GetBandStats(ctx context.Context, tx *gorm.DB, userID string) ([]repositories.BandStats, error) {
	args := m.Called(ctx, tx, userID)
	stats, _ := args.Get(0).([]repositories.BandStats)
	return stats, args.Error(1)
}

// memoryCache is a CacheService backed by a map, storing JSON like redis does
var _ cache.CacheService = (*memoryCache)(nil)

type memoryCache struct {
	entries map[string][]byte
	setErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := c.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}
