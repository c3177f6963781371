package db

import (
	"context"

	"github.com/shamaiem10/Vytal/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) Create(ctx context.Context, user *models.User) error {
	return repo.database.WithContext(ctx).Create(user).Error
}

func (repo *UserRepository) FindByID(ctx context.Context, userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var matched int64
	if err := repo.database.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}
