package db

import (
	"context"

	"github.com/shamaiem10/Vytal/internal/models"
	"gorm.io/gorm"
)

type DiaryRepository struct {
	database *gorm.DB
}

func NewDiaryRepository(database *gorm.DB) *DiaryRepository {
	return &DiaryRepository{database: database}
}

func (repo *DiaryRepository) Create(ctx context.Context, entry *models.DiaryEntry) error {
	return repo.database.WithContext(ctx).Create(entry).Error
}

// ListNewestFirst returns entries ordered by date then time, newest first.
// A nil userID lists the whole diary.
func (repo *DiaryRepository) ListNewestFirst(ctx context.Context, userID *uint) ([]models.DiaryEntry, error) {
	entries := make([]models.DiaryEntry, 0)
	if err := scopeToUser(repo.database.WithContext(ctx), userID).
		Order("date DESC, time DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListOldestFirst returns up to limit entries ordered by date ascending.
// A limit of zero or less means no limit.
func (repo *DiaryRepository) ListOldestFirst(ctx context.Context, userID *uint, limit int) ([]models.DiaryEntry, error) {
	query := scopeToUser(repo.database.WithContext(ctx), userID).Order("date ASC, time ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	entries := make([]models.DiaryEntry, 0)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *DiaryRepository) FindLatest(ctx context.Context, userID *uint) (models.DiaryEntry, bool, error) {
	entry := models.DiaryEntry{}
	result := scopeToUser(repo.database.WithContext(ctx), userID).
		Order("date DESC, time DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DiaryEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DiaryEntry{}, false, nil
	}
	return entry, true, nil
}

func scopeToUser(query *gorm.DB, userID *uint) *gorm.DB {
	if userID == nil {
		return query
	}
	return query.Where("user_id = ?", *userID)
}
