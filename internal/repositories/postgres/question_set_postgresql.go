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

type QuestionSetPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewQuestionSetPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.QuestionSetRepository {
	return &QuestionSetPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (q *QuestionSetPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return q.db
}

func (q *QuestionSetPostgreSQL) Create(ctx context.Context, tx *gorm.DB, set *models.QuestionSet) error {
	db := q.getDB(tx)
	if err := db.WithContext(ctx).Create(set).Error; err != nil {
		return err
	}
	q.cacheManager.InvalidateQuestionSet(ctx, set.ID)
	return nil
}

func (q *QuestionSetPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuestionSet, error) {
	db := q.getDB(tx)
	cacheKey := fmt.Sprintf("id:%d", id)
	var set models.QuestionSet

	err := q.cacheManager.QuestionSet.CacheOrExecute(ctx, cacheKey, &set, cache.QuestionSetCacheConfig.TTL, func() (interface{}, error) {
		var dbSet models.QuestionSet
		if err := db.WithContext(ctx).First(&dbSet, id).Error; err != nil {
			return nil, err
		}
		return &dbSet, nil
	})

	return &set, err
}

func (q *QuestionSetPostgreSQL) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.QuestionSet, error) {
	db := q.getDB(tx)
	var set models.QuestionSet
	if err := db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordinal ASC")
		}).
		First(&set, id).Error; err != nil {
		return nil, err
	}
	return &set, nil
}

func (q *QuestionSetPostgreSQL) Update(ctx context.Context, tx *gorm.DB, set *models.QuestionSet) error {
	db := q.getDB(tx)
	if err := db.WithContext(ctx).Save(set).Error; err != nil {
		return err
	}
	q.cacheManager.InvalidateQuestionSet(ctx, set.ID)
	return nil
}

func (q *QuestionSetPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := q.getDB(tx)
	if err := db.WithContext(ctx).Select("Questions").Delete(&models.QuestionSet{ID: id}).Error; err != nil {
		return err
	}
	q.cacheManager.InvalidateQuestionSet(ctx, id)
	return nil
}

func (q *QuestionSetPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.QuestionSetFilters) ([]*models.QuestionSet, int64, error) {
	db := q.getDB(tx)
	var sets []*models.QuestionSet
	var total int64

	query := db.WithContext(ctx).Model(&models.QuestionSet{})
	query = q.helpers.ApplyQuestionSetFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = q.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Find(&sets).Error; err != nil {
		return nil, 0, err
	}

	return sets, total, nil
}
