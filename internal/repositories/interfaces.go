package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hirelens/interview-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type QuestionSetFilters struct {
	IsActive    *bool      `json:"is_active"`
	CreatedByID *uint      `json:"created_by_id"`
	DateFrom    *time.Time `json:"date_from"`
	DateTo      *time.Time `json:"date_to"`
	Limit       int        `json:"limit"`
	Offset      int        `json:"offset"`
	SortBy      string     `json:"sort_by"`    // "created_at", "title"
	SortOrder   string     `json:"sort_order"` // "asc", "desc"
}

type SessionFilters struct {
	CandidateID   *uint      `json:"candidate_id"`
	QuestionSetID *uint      `json:"question_set_id"`
	IsCompleted   *bool      `json:"is_completed"`
	DateFrom      *time.Time `json:"date_from"`
	DateTo        *time.Time `json:"date_to"`
	Limit         int        `json:"limit"`
	Offset        int        `json:"offset"`
	SortBy        string     `json:"sort_by"`
	SortOrder     string     `json:"sort_order"`
}

type ResultFilters struct {
	QuestionSetID *uint  `json:"question_set_id"`
	Passed        *bool  `json:"passed"`
	Limit         int    `json:"limit"`
	Offset        int    `json:"offset"`
	SortBy        string `json:"sort_by"`
	SortOrder     string `json:"sort_order"`
}

// ===== SUB-REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
}

type QuestionSetRepository interface {
	Create(ctx context.Context, tx *gorm.DB, set *models.QuestionSet) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuestionSet, error)
	GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.QuestionSet, error)
	Update(ctx context.Context, tx *gorm.DB, set *models.QuestionSet) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, filters QuestionSetFilters) ([]*models.QuestionSet, int64, error)
}

type QuestionRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, questions []*models.Question) error
	GetBySet(ctx context.Context, tx *gorm.DB, setID uint) ([]*models.Question, error)
	Update(ctx context.Context, tx *gorm.DB, question *models.Question) error
}

type SessionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, session *models.TestSession) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.TestSession, error)
	GetByIDWithAnswers(ctx context.Context, tx *gorm.DB, id uint) (*models.TestSession, error)
	Update(ctx context.Context, tx *gorm.DB, session *models.TestSession) error
	List(ctx context.Context, tx *gorm.DB, filters SessionFilters) ([]*models.TestSession, int64, error)
	HasCompleted(ctx context.Context, tx *gorm.DB, candidateID, setID uint) (bool, error)
	FindInProgress(ctx context.Context, tx *gorm.DB, candidateID, setID uint) (*models.TestSession, error)
	CountCompletedBySet(ctx context.Context, tx *gorm.DB, setID uint) (int64, error)
}

type SubmittedAnswerRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, answers []*models.SubmittedAnswer) error
}

type ResultRepository interface {
	Create(ctx context.Context, tx *gorm.DB, result *models.Result) error
	GetBySession(ctx context.Context, tx *gorm.DB, sessionID uint) (*models.Result, error)
	ListBySet(ctx context.Context, tx *gorm.DB, setID uint, filters ResultFilters) ([]*models.Result, int64, error)
}

// ===== ERROR HELPERS =====

func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err comes from a unique constraint
// violation. The string fallback covers drivers that do not translate
// postgres error codes.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}
