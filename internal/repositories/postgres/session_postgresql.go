package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hirelens/interview-service/internal/cache"
	"github.com/hirelens/interview-service/internal/models"
	"github.com/hirelens/interview-service/internal/repositories"
)

type SessionPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewSessionPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.SessionRepository {
	return &SessionPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (s *SessionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}

func (s *SessionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, session *models.TestSession) error {
	db := s.getDB(tx)
	return db.WithContext(ctx).Create(session).Error
}

func (s *SessionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.TestSession, error) {
	db := s.getDB(tx)
	cacheKey := fmt.Sprintf("session:%d", id)
	var session models.TestSession

	err := s.cacheManager.Fast.CacheOrExecute(ctx, cacheKey, &session, cache.FastCacheConfig.TTL, func() (interface{}, error) {
		var dbSession models.TestSession
		if err := db.WithContext(ctx).First(&dbSession, id).Error; err != nil {
			return nil, err
		}
		return &dbSession, nil
	})

	return &session, err
}

func (s *SessionPostgreSQL) GetByIDWithAnswers(ctx context.Context, tx *gorm.DB, id uint) (*models.TestSession, error) {
	db := s.getDB(tx)
	var session models.TestSession
	if err := db.WithContext(ctx).
		Preload("Candidate").
		Preload("QuestionSet").
		Preload("Answers").
		First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionPostgreSQL) Update(ctx context.Context, tx *gorm.DB, session *models.TestSession) error {
	db := s.getDB(tx)
	if err := db.WithContext(ctx).Save(session).Error; err != nil {
		return err
	}
	s.cacheManager.InvalidateSession(ctx, session.ID)
	return nil
}

func (s *SessionPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.SessionFilters) ([]*models.TestSession, int64, error) {
	db := s.getDB(tx)
	var sessions []*models.TestSession
	var total int64

	query := db.WithContext(ctx).Model(&models.TestSession{})
	query = s.helpers.ApplySessionFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = s.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Preload("Candidate").Preload("QuestionSet").Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (s *SessionPostgreSQL) HasCompleted(ctx context.Context, tx *gorm.DB, candidateID, setID uint) (bool, error) {
	db := s.getDB(tx)
	var count int64
	err := db.WithContext(ctx).
		Model(&models.TestSession{}).
		Where("candidate_id = ? AND question_set_id = ? AND is_completed = ?", candidateID, setID, true).
		Count(&count).Error
	return count > 0, err
}

func (s *SessionPostgreSQL) FindInProgress(ctx context.Context, tx *gorm.DB, candidateID, setID uint) (*models.TestSession, error) {
	db := s.getDB(tx)
	var session models.TestSession
	err := db.WithContext(ctx).
		Where("candidate_id = ? AND question_set_id = ? AND is_completed = ?", candidateID, setID, false).
		Order("started_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (s *SessionPostgreSQL) CountCompletedBySet(ctx context.Context, tx *gorm.DB, setID uint) (int64, error) {
	db := s.getDB(tx)
	var count int64
	err := db.WithContext(ctx).
		Model(&models.TestSession{}).
		Where("question_set_id = ? AND is_completed = ?", setID, true).
		Count(&count).Error
	return count, err
}
