package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shamaiem10/Vytal/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AccountUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type AccountService struct {
	users AccountUserRepository
	cost  int
}

func NewAccountService(users AccountUserRepository) *AccountService {
	return &AccountService{users: users, cost: bcrypt.DefaultCost}
}

// WithHashCost lowers the bcrypt cost; tests use bcrypt.MinCost.
func (service *AccountService) WithHashCost(cost int) *AccountService {
	service.cost = cost
	return service
}

func (service *AccountService) Register(ctx context.Context, name string, email string, password string) (uint, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return 0, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	exists, err := service.users.ExistsByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	if exists {
		return 0, ErrDuplicateEmail
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), service.cost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
	}
	if err := service.users.Create(ctx, &user); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return user.ID, nil
}

func (service *AccountService) Login(ctx context.Context, email string, password string) (uint, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return 0, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := service.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrInvalidCredentials
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return 0, ErrInvalidCredentials
	}
	return user.ID, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
