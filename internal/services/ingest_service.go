package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/hirelens/interview-service/internal/models"
	"github.com/hirelens/interview-service/internal/parser"
	"github.com/hirelens/interview-service/internal/repositories"
	"github.com/hirelens/interview-service/internal/validator"
)

// TextExtractor pulls plain text out of a PDF file.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

type ingestService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	extractor TextExtractor
}

func NewIngestService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, extractor TextExtractor) IngestService {
	return &ingestService{
		repo:      repo,
		logger:    logger,
		validator: v,
		extractor: extractor,
	}
}

func (s *ingestService) IngestQuestionsPDF(ctx context.Context, setID uint, pdfPath string) (*IngestReport, error) {
	raw, err := s.extractor.ExtractText(ctx, pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract question text: %w", err)
	}
	return s.IngestQuestionsText(ctx, setID, raw)
}

func (s *ingestService) IngestAnswerKeyPDF(ctx context.Context, setID uint, pdfPath string) (*IngestReport, error) {
	raw, err := s.extractor.ExtractText(ctx, pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract answer key text: %w", err)
	}
	return s.IngestAnswerKeyText(ctx, setID, raw)
}

// IngestQuestionsText segments raw text into numbered questions and
// stores them. Ordinals already present in the set are skipped.
func (s *ingestService) IngestQuestionsText(ctx context.Context, setID uint, raw string) (*IngestReport, error) {
	if _, err := s.repo.QuestionSet().GetByID(ctx, nil, setID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionSetNotFound
		}
		return nil, fmt.Errorf("failed to get question set: %w", err)
	}

	segments, overwritten := parser.Split(raw)
	if len(segments) == 0 {
		s.logger.Warn("no numbered segments found in question text", "set_id", setID)
	}

	parsed := parser.BuildQuestions(segments)
	report := &IngestReport{SetID: setID, Overwritten: overwritten}

	err := s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		existing, err := r.Question().GetBySet(ctx, nil, setID)
		if err != nil {
			return fmt.Errorf("failed to load existing questions: %w", err)
		}
		taken := make(map[int]bool, len(existing))
		for _, q := range existing {
			taken[q.Ordinal] = true
		}

		var toCreate []*models.Question
		for _, p := range parsed {
			if taken[p.Ordinal] {
				report.Skipped++
				continue
			}

			q := &models.Question{
				QuestionSetID: setID,
				Ordinal:       p.Ordinal,
				Text:          p.Text,
				Prompt:        p.Prompt,
				Kind:          models.QuestionPlain,
			}
			if p.IsMultipleChoice() {
				q.Kind = models.QuestionMultipleChoice
				encoded, err := json.Marshal(p.Options)
				if err != nil {
					return fmt.Errorf("failed to encode options: %w", err)
				}
				q.Options = datatypes.JSON(encoded)
			}
			toCreate = append(toCreate, q)
		}

		if err := r.Question().CreateBatch(ctx, nil, toCreate); err != nil {
			return fmt.Errorf("failed to store questions: %w", err)
		}
		report.Created = len(toCreate)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("questions ingested",
		"set_id", setID,
		"created", report.Created,
		"skipped", report.Skipped,
		"overwritten", report.Overwritten)

	return report, nil
}

// IngestAnswerKeyText segments raw text into numbered answers and
// attaches each to the question with the same ordinal. Answers whose
// ordinal has no question are counted as skipped, not failed.
func (s *ingestService) IngestAnswerKeyText(ctx context.Context, setID uint, raw string) (*IngestReport, error) {
	if _, err := s.repo.QuestionSet().GetByID(ctx, nil, setID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionSetNotFound
		}
		return nil, fmt.Errorf("failed to get question set: %w", err)
	}

	segments, overwritten := parser.Split(raw)
	report := &IngestReport{SetID: setID, Overwritten: overwritten}

	err := s.repo.WithTransaction(ctx, func(r repositories.Repository) error {
		questions, err := r.Question().GetBySet(ctx, nil, setID)
		if err != nil {
			return fmt.Errorf("failed to load questions: %w", err)
		}
		byOrdinal := make(map[int]*models.Question, len(questions))
		for _, q := range questions {
			byOrdinal[q.Ordinal] = q
		}

		for _, seg := range segments {
			q, ok := byOrdinal[seg.Ordinal]
			if !ok {
				report.Skipped++
				continue
			}

			answer := seg.Body
			if q.Kind == models.QuestionMultipleChoice {
				if err := s.validator.Var(answer, "option_letter"); err != nil {
					s.logger.Warn("answer key entry for multiple choice question does not start with an option letter",
						"set_id", setID,
						"ordinal", seg.Ordinal)
				}
			}
			q.CorrectAnswer = &answer
			if err := r.Question().Update(ctx, nil, q); err != nil {
				return fmt.Errorf("failed to attach answer to question %d: %w", q.Ordinal, err)
			}
			report.Matched++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("answer key ingested",
		"set_id", setID,
		"matched", report.Matched,
		"skipped", report.Skipped,
		"overwritten", report.Overwritten)

	return report, nil
}
