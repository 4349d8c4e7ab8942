package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/hirelens/interview-service/internal/events"
	"github.com/hirelens/interview-service/internal/models"
	"github.com/hirelens/interview-service/internal/repositories"
)

type sessionService struct {
	repo             repositories.Repository
	logger           *slog.Logger
	publisher        events.EventPublisher
	singleInProgress bool
}

func NewSessionService(repo repositories.Repository, logger *slog.Logger, publisher events.EventPublisher, singleInProgress bool) SessionService {
	return &sessionService{
		repo:             repo,
		logger:           logger,
		publisher:        publisher,
		singleInProgress: singleInProgress,
	}
}

// Start opens a test session for a candidate on a question set. A
// candidate who already completed the set cannot start again. When
// single in-progress mode is on, an open session is returned instead
// of creating another.
func (s *sessionService) Start(ctx context.Context, candidateID, setID uint) (*models.TestSession, error) {
	set, err := s.repo.QuestionSet().GetByID(ctx, nil, setID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionSetNotFound
		}
		return nil, fmt.Errorf("failed to get question set: %w", err)
	}
	if !set.IsActive {
		return nil, ErrQuestionSetInactive
	}

	completed, err := s.repo.Session().HasCompleted(ctx, nil, candidateID, setID)
	if err != nil {
		return nil, fmt.Errorf("failed to check completed sessions: %w", err)
	}
	if completed {
		return nil, ErrSessionAlreadyCompleted
	}

	if s.singleInProgress {
		open, err := s.repo.Session().FindInProgress(ctx, nil, candidateID, setID)
		if err != nil {
			return nil, fmt.Errorf("failed to check open sessions: %w", err)
		}
		if open != nil {
			return open, nil
		}
	}

	session := &models.TestSession{
		CandidateID:   candidateID,
		QuestionSetID: setID,
		StartedAt:     time.Now(),
	}

	err = s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		return r.Session().Create(ctx, nil, session)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("session started", "session_id", session.ID, "candidate_id", candidateID, "set_id", setID)

	if s.publisher != nil {
		event := events.NewSessionStartedEvent(session.ID, candidateID, setID, session.StartedAt)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish session started event", "session_id", session.ID, "error", err)
		}
	}

	return session, nil
}

// Submit records the candidate's answers, grades the session and
// persists the result, all in one transaction. Answers are immutable
// once stored; a second submit fails with a conflict.
func (s *sessionService) Submit(ctx context.Context, candidateID, sessionID uint, answers map[uint]string) (*ScoreReport, error) {
	session, err := s.repo.Session().GetByID(ctx, nil, sessionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.CandidateID != candidateID {
		return nil, NewPermissionError(candidateID, sessionID, "session", "submit", "session belongs to another candidate")
	}
	if session.IsCompleted {
		return nil, ErrSessionAlreadyCompleted
	}

	questions, err := s.repo.Question().GetBySet(ctx, nil, session.QuestionSetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	report := gradeQuestions(sessionID, questions, answers)

	detailsJSON, err := json.Marshal(report.Details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result details: %w", err)
	}

	now := time.Now()

	err = s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		rows := make([]*models.SubmittedAnswer, 0, len(questions))
		for _, q := range questions {
			rows = append(rows, &models.SubmittedAnswer{
				SessionID:  sessionID,
				QuestionID: q.ID,
				RawText:    answers[q.ID],
			})
		}
		if err := r.SubmittedAnswer().CreateBatch(ctx, nil, rows); err != nil {
			return fmt.Errorf("failed to store answers: %w", err)
		}

		session.IsCompleted = true
		session.SubmittedAt = &now
		if err := r.Session().Update(ctx, nil, session); err != nil {
			return fmt.Errorf("failed to complete session: %w", err)
		}

		result := &models.Result{
			SessionID:      sessionID,
			CorrectCount:   report.CorrectCount,
			TotalQuestions: report.Total,
			Percentage:     report.Percentage,
			Passed:         report.Passed,
			Details:        datatypes.JSON(detailsJSON),
			GradedAt:       now,
		}
		if err := r.Result().Create(ctx, nil, result); err != nil {
			return fmt.Errorf("failed to store result: %w", err)
		}

		return nil
	})
	if err != nil {
		// The partial unique index on completed sessions closes the
		// race between two concurrent submits for the same set.
		if repositories.IsDuplicateError(err) {
			return nil, ErrSessionAlreadyCompleted
		}
		return nil, err
	}

	s.logger.Info("session submitted",
		"session_id", sessionID,
		"candidate_id", candidateID,
		"correct", report.CorrectCount,
		"total", report.Total,
		"passed", report.Passed)

	if s.publisher != nil {
		event := events.NewSessionSubmittedEvent(sessionID, candidateID, session.QuestionSetID, now,
			report.CorrectCount, report.Total, report.Percentage, report.Passed)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish session submitted event", "session_id", sessionID, "error", err)
		}
	}

	return report, nil
}

func (s *sessionService) GetByID(ctx context.Context, candidateID, sessionID uint) (*models.TestSession, error) {
	session, err := s.repo.Session().GetByID(ctx, nil, sessionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if candidateID != 0 && session.CandidateID != candidateID {
		return nil, NewPermissionError(candidateID, sessionID, "session", "read", "session belongs to another candidate")
	}
	return session, nil
}

// GetQuestions returns the session's questions with correct answers
// stripped so they can be shown to the candidate.
func (s *sessionService) GetQuestions(ctx context.Context, candidateID, sessionID uint) ([]*models.Question, error) {
	session, err := s.GetByID(ctx, candidateID, sessionID)
	if err != nil {
		return nil, err
	}

	questions, err := s.repo.Question().GetBySet(ctx, nil, session.QuestionSetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	for _, q := range questions {
		q.CorrectAnswer = nil
	}
	return questions, nil
}

func (s *sessionService) List(ctx context.Context, filters repositories.SessionFilters) ([]*models.TestSession, int64, error) {
	return s.repo.Session().List(ctx, nil, filters)
}
