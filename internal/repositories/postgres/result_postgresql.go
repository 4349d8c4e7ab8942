package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hirelens/interview-service/internal/cache"
	"github.com/hirelens/interview-service/internal/models"
	"github.com/hirelens/interview-service/internal/repositories"
)

type SubmittedAnswerPostgreSQL struct {
	db *gorm.DB
}

func NewSubmittedAnswerPostgreSQL(db *gorm.DB) repositories.SubmittedAnswerRepository {
	return &SubmittedAnswerPostgreSQL{db: db}
}

func (a *SubmittedAnswerPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}

func (a *SubmittedAnswerPostgreSQL) CreateBatch(ctx context.Context, tx *gorm.DB, answers []*models.SubmittedAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	db := a.getDB(tx)
	return db.WithContext(ctx).Create(&answers).Error
}

type ResultPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewResultPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ResultRepository {
	return &ResultPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (r *ResultPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ResultPostgreSQL) Create(ctx context.Context, tx *gorm.DB, result *models.Result) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(result).Error; err != nil {
		return err
	}
	r.cacheManager.InvalidateSession(ctx, result.SessionID)
	return nil
}

func (r *ResultPostgreSQL) GetBySession(ctx context.Context, tx *gorm.DB, sessionID uint) (*models.Result, error) {
	db := r.getDB(tx)
	cacheKey := fmt.Sprintf("session:%d", sessionID)
	var result models.Result

	err := r.cacheManager.Result.CacheOrExecute(ctx, cacheKey, &result, cache.ResultCacheConfig.TTL, func() (interface{}, error) {
		var dbResult models.Result
		if err := db.WithContext(ctx).
			Where("session_id = ?", sessionID).
			First(&dbResult).Error; err != nil {
			return nil, err
		}
		return &dbResult, nil
	})

	return &result, err
}

func (r *ResultPostgreSQL) ListBySet(ctx context.Context, tx *gorm.DB, setID uint, filters repositories.ResultFilters) ([]*models.Result, int64, error) {
	db := r.getDB(tx)
	var results []*models.Result
	var total int64

	query := db.WithContext(ctx).
		Model(&models.Result{}).
		Joins("JOIN test_sessions ON test_sessions.id = results.session_id").
		Where("test_sessions.question_set_id = ?", setID)

	if filters.Passed != nil {
		query = query.Where("results.passed = ?", *filters.Passed)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filters.SortBy
	if sortBy != "percentage" && sortBy != "graded_at" {
		sortBy = "graded_at"
	}
	sortOrder := "DESC"
	if filters.SortOrder == "asc" || filters.SortOrder == "ASC" {
		sortOrder = "ASC"
	}
	query = query.Order("results." + sortBy + " " + sortOrder)

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Preload("Session").Preload("Session.Candidate").Find(&results).Error; err != nil {
		return nil, 0, err
	}

	return results, total, nil
}
