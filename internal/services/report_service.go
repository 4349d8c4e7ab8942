package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/hirelens/interview-service/internal/models"
	"github.com/hirelens/interview-service/internal/repositories"
)

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		logger: logger,
	}
}

// GetReport returns the stored score report of a submitted session.
func (s *reportService) GetReport(ctx context.Context, sessionID uint) (*ScoreReport, error) {
	result, err := s.repo.Result().GetBySession(ctx, nil, sessionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotSubmitted
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return resultToReport(result)
}

func (s *reportService) GetReportForCandidate(ctx context.Context, candidateID, sessionID uint) (*ScoreReport, error) {
	session, err := s.repo.Session().GetByID(ctx, nil, sessionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session.CandidateID != candidateID {
		return nil, NewPermissionError(candidateID, sessionID, "report", "read", "session belongs to another candidate")
	}
	return s.GetReport(ctx, sessionID)
}

func (s *reportService) ListBySet(ctx context.Context, setID uint, filters repositories.ResultFilters) ([]*models.Result, int64, error) {
	if _, err := s.repo.QuestionSet().GetByID(ctx, nil, setID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, 0, ErrQuestionSetNotFound
		}
		return nil, 0, fmt.Errorf("failed to get question set: %w", err)
	}
	return s.repo.Result().ListBySet(ctx, nil, setID, filters)
}

// ExportExcel renders all results of a question set into an xlsx
// workbook for offline review.
func (s *reportService) ExportExcel(ctx context.Context, setID uint) ([]byte, error) {
	set, err := s.repo.QuestionSet().GetByID(ctx, nil, setID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionSetNotFound
		}
		return nil, fmt.Errorf("failed to get question set: %w", err)
	}

	results, _, err := s.repo.Result().ListBySet(ctx, nil, setID, repositories.ResultFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Results"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Session ID", "Candidate", "Email", "Correct", "Total", "Percentage", "Passed", "Graded At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, result := range results {
		values := []interface{}{
			result.SessionID,
			result.Session.Candidate.FullName,
			result.Session.Candidate.Email,
			result.CorrectCount,
			result.TotalQuestions,
			result.Percentage,
			result.Passed,
			result.GradedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("results exported", "set_id", setID, "title", set.Title, "rows", len(results))
	return buf.Bytes(), nil
}

func resultToReport(result *models.Result) (*ScoreReport, error) {
	var details []AnswerDetail
	if len(result.Details) > 0 {
		if err := json.Unmarshal(result.Details, &details); err != nil {
			return nil, fmt.Errorf("failed to decode result details: %w", err)
		}
	}

	return &ScoreReport{
		SessionID:    result.SessionID,
		Total:        result.TotalQuestions,
		CorrectCount: result.CorrectCount,
		Percentage:   result.Percentage,
		Passed:       result.Passed,
		Details:      details,
	}, nil
}
