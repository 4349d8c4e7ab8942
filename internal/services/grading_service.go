package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hirelens/interview-service/internal/models"
	"github.com/hirelens/interview-service/internal/repositories"
)

type gradingService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewGradingService(repo repositories.Repository, logger *slog.Logger) GradingService {
	return &gradingService{
		repo:   repo,
		logger: logger,
	}
}

// Grade recomputes a session's score from its stored answers. It is a
// pure read: calling it twice yields identical reports.
func (s *gradingService) Grade(ctx context.Context, sessionID uint) (*ScoreReport, error) {
	session, err := s.repo.Session().GetByIDWithAnswers(ctx, nil, sessionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if !session.IsCompleted {
		return nil, ErrSessionNotSubmitted
	}

	questions, err := s.repo.Question().GetBySet(ctx, nil, session.QuestionSetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	answers := make(map[uint]string, len(session.Answers))
	for _, a := range session.Answers {
		answers[a.QuestionID] = a.RawText
	}

	report := buildScoreReport(sessionID, questions, answers)

	s.logger.Debug("session graded",
		"session_id", sessionID,
		"correct", report.CorrectCount,
		"total", report.Total,
		"passed", report.Passed)

	return report, nil
}

// gradeQuestions grades a session in memory without touching the
// database, for callers that already hold the questions and answers.
func gradeQuestions(sessionID uint, questions []*models.Question, answers map[uint]string) *ScoreReport {
	return buildScoreReport(sessionID, questions, answers)
}
