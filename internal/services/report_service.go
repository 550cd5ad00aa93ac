package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kishansingy/ielts-backend-sub000/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	scoresSheet  = "Scores"
	answersSheet = "Answers"
)

type ReportService interface {
	// ExportAttemptScores renders the stored scores of an attempt as an XLSX workbook
	ExportAttemptScores(ctx context.Context, attemptID string) ([]byte, error)
}

type reportService struct {
	grading GradingService
	logger  *slog.Logger
}

func NewReportService(grading GradingService, logger *slog.Logger) ReportService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &reportService{
		grading: grading,
		logger:  logger.With("service", "report"),
	}
}

func (s *reportService) ExportAttemptScores(ctx context.Context, attemptID string) ([]byte, error) {
	records, err := s.grading.GetAttemptScores(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", scoresSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if _, err := f.NewSheet(answersSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	scoreHeaders := []interface{}{"Attempt ID", "User ID", "Skill", "Correct", "Total", "Accuracy (%)", "Band"}
	if err := f.SetSheetRow(scoresSheet, "A1", &scoreHeaders); err != nil {
		return nil, fmt.Errorf("failed to write Excel headers: %w", err)
	}
	answerHeaders := []interface{}{"Skill", "Question ID", "Your Answer", "Correct Answers", "Correct", "Explanation"}
	if err := f.SetSheetRow(answersSheet, "A1", &answerHeaders); err != nil {
		return nil, fmt.Errorf("failed to write Excel headers: %w", err)
	}

	answerRow := 2
	for i, record := range records {
		var band interface{} = record.Band
		if !record.Report().Scoreable() {
			band = "-"
		}
		row := []interface{}{
			record.AttemptID,
			record.UserID,
			string(record.SkillArea),
			record.CorrectCount,
			record.TotalCount,
			record.AccuracyPercentage,
			band,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(scoresSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write Excel row: %w", err)
		}

		var results []models.EvaluationResult
		if len(record.Results) > 0 {
			if err := json.Unmarshal(record.Results, &results); err != nil {
				s.logger.WarnContext(ctx, "Stored results could not be decoded",
					"attempt_id", attemptID,
					"skill_area", record.SkillArea,
					"error", err)
				continue
			}
		}
		for _, result := range results {
			verdict := "No"
			if result.IsCorrect {
				verdict = "Yes"
			}
			row := []interface{}{
				string(result.SkillArea),
				result.QuestionID,
				result.UserAnswer,
				strings.Join(result.CorrectAnswers, ", "),
				verdict,
				result.Explanation,
			}
			cell, _ := excelize.CoordinatesToCellName(1, answerRow)
			if err := f.SetSheetRow(answersSheet, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write Excel row: %w", err)
			}
			answerRow++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.InfoContext(ctx, "Attempt scores exported",
		"attempt_id", attemptID,
		"skills", len(records),
		"answers", answerRow-2)

	return buf.Bytes(), nil
}
