package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kishansingy/ielts-backend-sub000/internal/cache"
	"github.com/kishansingy/ielts-backend-sub000/internal/evaluation"
	"github.com/kishansingy/ielts-backend-sub000/internal/events"
	"github.com/kishansingy/ielts-backend-sub000/internal/models"
	"github.com/kishansingy/ielts-backend-sub000/internal/repositories"
	"github.com/kishansingy/ielts-backend-sub000/internal/scoring"
	"github.com/kishansingy/ielts-backend-sub000/internal/validator"
)

const maxListLimit = 100

type GradingService interface {
	Evaluate(ctx context.Context, req *EvaluateRequest) (*EvaluateResponse, error)
	Score(ctx context.Context, req *ScoreRequest) (*models.ScoreReport, error)

	GradeAttempt(ctx context.Context, attemptID string, req *GradeAttemptRequest) (*AttemptGradingResult, error)
	GetAttemptScores(ctx context.Context, attemptID string) ([]*models.ScoreRecord, error)
	GetSkillScore(ctx context.Context, attemptID string, skill models.SkillArea) (*models.ScoreRecord, error)
	DeleteAttemptScores(ctx context.Context, attemptID string) error
	ListScores(ctx context.Context, filters repositories.ScoreFilters) ([]*models.ScoreRecord, int64, error)
	GetBandStats(ctx context.Context, userID string) ([]repositories.BandStats, error)
}

// GradingDeps holds the collaborators of the grading service. Cache and
// Publisher are optional.
type GradingDeps struct {
	Evaluator  *evaluation.Evaluator
	Repository repositories.ScoreRepository
	Cache      cache.CacheService
	Publisher  events.EventPublisher
	Validator  *validator.Validator
	Logger     *slog.Logger
	CacheTTL   time.Duration
}

type gradingService struct {
	evaluator *evaluation.Evaluator
	repo      repositories.ScoreRepository
	cache     cache.CacheService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *ServiceLogger
	cacheTTL  time.Duration
	now       func() time.Time
}

func NewGradingService(deps GradingDeps) GradingService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	v := deps.Validator
	if v == nil {
		v = validator.New()
	}
	ev := deps.Evaluator
	if ev == nil {
		ev = evaluation.NewEvaluator(evaluation.WithLogger(logger))
	}

	return &gradingService{
		evaluator: ev,
		repo:      deps.Repository,
		cache:     deps.Cache,
		publisher: deps.Publisher,
		validator: v,
		logger:    NewServiceLogger(logger, "grading"),
		cacheTTL:  deps.CacheTTL,
		now:       time.Now,
	}
}

func (s *gradingService) Evaluate(ctx context.Context, req *EvaluateRequest) (*EvaluateResponse, error) {
	if req == nil {
		return nil, ErrValidationFailed
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	results, err := s.evaluator.EvaluateBatchParallel(ctx, req.Answers, req.Questions)
	if err != nil {
		return nil, err
	}

	return &EvaluateResponse{
		Results:  results,
		Warnings: s.validator.Question().InspectBatch(req.Questions),
	}, nil
}

func (s *gradingService) Score(ctx context.Context, req *ScoreRequest) (*models.ScoreReport, error) {
	if req == nil {
		return nil, ErrValidationFailed
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if scoring.BandTable(req.SkillArea) == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSkill, req.SkillArea)
	}

	report := scoring.Score(req.CorrectCount, req.TotalCount, req.SkillArea)
	return &report, nil
}

func (s *gradingService) GradeAttempt(ctx context.Context, attemptID string, req *GradeAttemptRequest) (result *AttemptGradingResult, err error) {
	start := s.now()
	defer func() {
		s.logger.LogOperation(ctx, "grade_attempt", attemptID, time.Since(start), err)
	}()

	attemptID = strings.TrimSpace(attemptID)
	if attemptID == "" {
		return nil, NewValidationError("attempt_id", "attempt_id is required", attemptID)
	}
	if req == nil {
		return nil, ErrValidationFailed
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	warnings := s.validator.Question().InspectBatch(req.Questions)
	s.logger.LogQuestionWarnings(ctx, attemptID, warnings)

	results, err := s.evaluator.EvaluateBatchParallel(ctx, req.Answers, req.Questions)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrEmptySubmission
	}

	records, reports, err := buildRecords(attemptID, req.UserID, results)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveForAttempt(ctx, nil, records); err != nil {
		return nil, fmt.Errorf("failed to save scores: %w", err)
	}

	s.cacheRecords(ctx, attemptID, records)

	scoredAt := s.now()
	s.publishScored(ctx, attemptID, req.UserID, reports, scoredAt)

	return &AttemptGradingResult{
		AttemptID: attemptID,
		UserID:    req.UserID,
		Results:   results,
		Reports:   reports,
		Warnings:  warnings,
		ScoredAt:  scoredAt,
	}, nil
}

// buildRecords produces one score record per skill present in results,
// in order of first appearance.
func buildRecords(attemptID, userID string, results []models.EvaluationResult) ([]*models.ScoreRecord, []models.ScoreReport, error) {
	outcomes := scoring.AggregateBySkill(results)
	records := make([]*models.ScoreRecord, 0, len(outcomes))
	reports := make([]models.ScoreReport, 0, len(outcomes))

	for _, outcome := range outcomes {
		report := scoring.ScoreOutcome(outcome)

		skillResults := make([]models.EvaluationResult, 0, outcome.TotalCount)
		for _, r := range results {
			if r.SkillArea == outcome.SkillArea {
				skillResults = append(skillResults, r)
			}
		}
		payload, err := json.Marshal(skillResults)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode results: %w", err)
		}

		records = append(records, &models.ScoreRecord{
			AttemptID:          attemptID,
			UserID:             userID,
			SkillArea:          report.SkillArea,
			CorrectCount:       report.CorrectCount,
			TotalCount:         report.TotalCount,
			AccuracyPercentage: report.AccuracyPercentage,
			Band:               report.Band,
			Results:            payload,
		})
		reports = append(reports, report)
	}

	return records, reports, nil
}

func (s *gradingService) GetAttemptScores(ctx context.Context, attemptID string) ([]*models.ScoreRecord, error) {
	if strings.TrimSpace(attemptID) == "" {
		return nil, NewValidationError("attempt_id", "attempt_id is required", attemptID)
	}

	if s.cache != nil {
		var cached []*models.ScoreRecord
		err := s.cache.Get(ctx, cache.AttemptScoresKey(attemptID), &cached)
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
		if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Logger().WarnContext(ctx, "Score cache read failed", "attempt_id", attemptID, "error", err)
		}
	}

	records, err := s.repo.GetByAttempt(ctx, nil, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	s.cacheRecords(ctx, attemptID, records)
	return records, nil
}

func (s *gradingService) GetSkillScore(ctx context.Context, attemptID string, skill models.SkillArea) (*models.ScoreRecord, error) {
	if !skill.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSkill, skill)
	}

	record, err := s.repo.GetByAttemptAndSkill(ctx, nil, attemptID, skill)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to load score: %w", err)
	}
	return record, nil
}

func (s *gradingService) DeleteAttemptScores(ctx context.Context, attemptID string) error {
	if strings.TrimSpace(attemptID) == "" {
		return NewValidationError("attempt_id", "attempt_id is required", attemptID)
	}

	if err := s.repo.DeleteByAttempt(ctx, nil, attemptID); err != nil {
		return fmt.Errorf("failed to delete scores: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.AttemptScoresKey(attemptID)); err != nil {
			s.logger.Logger().WarnContext(ctx, "Score cache invalidation failed", "attempt_id", attemptID, "error", err)
		}
	}
	return nil
}

// ListScores caps page size at maxListLimit
func (s *gradingService) ListScores(ctx context.Context, filters repositories.ScoreFilters) ([]*models.ScoreRecord, int64, error) {
	if filters.SkillArea != nil && !filters.SkillArea.IsValid() {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnsupportedSkill, *filters.SkillArea)
	}
	if filters.Limit <= 0 || filters.Limit > maxListLimit {
		filters.Limit = maxListLimit
	}

	records, total, err := s.repo.List(ctx, nil, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list scores: %w", err)
	}
	return records, total, nil
}

func (s *gradingService) GetBandStats(ctx context.Context, userID string) ([]repositories.BandStats, error) {
	stats, err := s.repo.GetBandStats(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load band statistics: %w", err)
	}
	return stats, nil
}

func (s *gradingService) cacheRecords(ctx context.Context, attemptID string, records []*models.ScoreRecord) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, cache.AttemptScoresKey(attemptID), records, s.cacheTTL); err != nil {
		s.logger.Logger().WarnContext(ctx, "Score cache write failed", "attempt_id", attemptID, "error", err)
	}
}

func (s *gradingService) publishScored(ctx context.Context, attemptID, userID string, reports []models.ScoreReport, scoredAt time.Time) {
	if s.publisher == nil {
		return
	}
	event := events.NewAttemptScoredEvent(attemptID, userID, reports, scoredAt)
	if err := s.publisher.PublishScoringEvent(ctx, event); err != nil {
		s.logger.Logger().ErrorContext(ctx, "Failed to publish attempt scored event",
			"attempt_id", attemptID,
			"event_id", event.ID,
			"error", err)
	}
}
