package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hirelens/interview-service/internal/events"
	"github.com/hirelens/interview-service/internal/models"
	"github.com/hirelens/interview-service/internal/repositories"
	"github.com/hirelens/interview-service/internal/validator"
)

type questionSetService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewQuestionSetService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) QuestionSetService {
	return &questionSetService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *questionSetService) Create(ctx context.Context, req CreateQuestionSetRequest, creatorID uint) (*models.QuestionSet, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	set := &models.QuestionSet{
		Title:       req.Title,
		IsActive:    true,
		CreatedByID: creatorID,
	}

	if err := s.repo.QuestionSet().Create(ctx, nil, set); err != nil {
		return nil, fmt.Errorf("failed to create question set: %w", err)
	}

	s.logger.Info("question set created", "set_id", set.ID, "title", set.Title, "created_by", creatorID)

	if s.publisher != nil {
		event := events.NewQuestionSetCreatedEvent(set.ID, set.Title, creatorID)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish question set created event", "set_id", set.ID, "error", err)
		}
	}

	return set, nil
}

func (s *questionSetService) GetByID(ctx context.Context, id uint) (*models.QuestionSet, error) {
	set, err := s.repo.QuestionSet().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionSetNotFound
		}
		return nil, fmt.Errorf("failed to get question set: %w", err)
	}
	return set, nil
}

func (s *questionSetService) GetWithQuestions(ctx context.Context, id uint) (*models.QuestionSet, error) {
	set, err := s.repo.QuestionSet().GetByIDWithQuestions(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionSetNotFound
		}
		return nil, fmt.Errorf("failed to get question set: %w", err)
	}
	return set, nil
}

func (s *questionSetService) List(ctx context.Context, filters repositories.QuestionSetFilters) ([]*models.QuestionSet, int64, error) {
	return s.repo.QuestionSet().List(ctx, nil, filters)
}

func (s *questionSetService) SetActive(ctx context.Context, id uint, active bool) (*models.QuestionSet, error) {
	set, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set.IsActive = active
	if err := s.repo.QuestionSet().Update(ctx, nil, set); err != nil {
		return nil, fmt.Errorf("failed to update question set: %w", err)
	}

	s.logger.Info("question set activation changed", "set_id", id, "is_active", active)
	return set, nil
}

// Delete removes a question set and its questions. Sets with completed
// sessions are immutable and cannot be deleted.
func (s *questionSetService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	completed, err := s.repo.Session().CountCompletedBySet(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("failed to count completed sessions: %w", err)
	}
	if completed > 0 {
		return ErrQuestionSetInUse
	}

	if err := s.repo.QuestionSet().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete question set: %w", err)
	}

	s.logger.Info("question set deleted", "set_id", id)
	return nil
}
