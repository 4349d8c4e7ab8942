package services

import (
	"context"
	"time"

	"github.com/hirelens/interview-service/internal/models"
	"github.com/hirelens/interview-service/internal/repositories"
)

// ===== REQUEST / RESPONSE DTOS =====

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type CreateQuestionSetRequest struct {
	Title string `json:"title" validate:"required,min=3,max=255"`
}

// IngestReport summarizes one PDF ingestion pass.
type IngestReport struct {
	SetID       uint `json:"set_id"`
	Created     int  `json:"created"`     // questions created
	Matched     int  `json:"matched"`     // answer keys attached to existing questions
	Skipped     int  `json:"skipped"`     // answer keys with no matching ordinal
	Overwritten int  `json:"overwritten"` // duplicate ordinals replaced during segmentation
}

// AnswerDetail is the per-question breakdown of a graded session.
type AnswerDetail struct {
	QuestionID      uint     `json:"question_id"`
	Ordinal         int      `json:"ordinal"`
	QuestionText    string   `json:"question_text"`
	CandidateAnswer string   `json:"candidate_answer"`
	CorrectAnswer   string   `json:"correct_answer"`
	IsCorrect       bool     `json:"is_correct"`
	Similarity      *float64 `json:"similarity,omitempty"`
}

// ScoreReport is the full outcome of grading a session.
type ScoreReport struct {
	SessionID    uint           `json:"session_id"`
	Total        int            `json:"total"`
	CorrectCount int            `json:"correct_count"`
	Percentage   float64        `json:"percentage"`
	Passed       bool           `json:"passed"`
	Details      []AnswerDetail `json:"details"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	ValidateToken(tokenString string) (*TokenClaims, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type QuestionSetService interface {
	Create(ctx context.Context, req CreateQuestionSetRequest, creatorID uint) (*models.QuestionSet, error)
	GetByID(ctx context.Context, id uint) (*models.QuestionSet, error)
	GetWithQuestions(ctx context.Context, id uint) (*models.QuestionSet, error)
	List(ctx context.Context, filters repositories.QuestionSetFilters) ([]*models.QuestionSet, int64, error)
	SetActive(ctx context.Context, id uint, active bool) (*models.QuestionSet, error)
	Delete(ctx context.Context, id uint) error
}

type IngestService interface {
	IngestQuestionsPDF(ctx context.Context, setID uint, pdfPath string) (*IngestReport, error)
	IngestAnswerKeyPDF(ctx context.Context, setID uint, pdfPath string) (*IngestReport, error)
	IngestQuestionsText(ctx context.Context, setID uint, raw string) (*IngestReport, error)
	IngestAnswerKeyText(ctx context.Context, setID uint, raw string) (*IngestReport, error)
}

type GradingService interface {
	// Grade recomputes the score for a submitted session from its stored
	// answers. It never reads or writes persisted results.
	Grade(ctx context.Context, sessionID uint) (*ScoreReport, error)
}

type SessionService interface {
	Start(ctx context.Context, candidateID, setID uint) (*models.TestSession, error)
	Submit(ctx context.Context, candidateID, sessionID uint, answers map[uint]string) (*ScoreReport, error)
	GetByID(ctx context.Context, candidateID, sessionID uint) (*models.TestSession, error)
	GetQuestions(ctx context.Context, candidateID, sessionID uint) ([]*models.Question, error)
	List(ctx context.Context, filters repositories.SessionFilters) ([]*models.TestSession, int64, error)
}

type ReportService interface {
	GetReport(ctx context.Context, sessionID uint) (*ScoreReport, error)
	GetReportForCandidate(ctx context.Context, candidateID, sessionID uint) (*ScoreReport, error)
	ListBySet(ctx context.Context, setID uint, filters repositories.ResultFilters) ([]*models.Result, int64, error)
	ExportExcel(ctx context.Context, setID uint) ([]byte, error)
}

// ServiceManager provides access to all services
type ServiceManager interface {
	Auth() AuthService
	QuestionSet() QuestionSetService
	Ingest() IngestService
	Grading() GradingService
	Session() SessionService
	Report() ReportService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
