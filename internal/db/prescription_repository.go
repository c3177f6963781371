package db

import (
	"context"

	"github.com/shamaiem10/Vytal/internal/models"
	"gorm.io/gorm"
)

type PrescriptionRepository struct {
	database *gorm.DB
}

func NewPrescriptionRepository(database *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{database: database}
}

// Create inserts one row per call; callers persisting several medicines get
// no transaction around them.
func (repo *PrescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	return repo.database.WithContext(ctx).Create(prescription).Error
}

func (repo *PrescriptionRepository) ListNewestFirst(ctx context.Context) ([]models.Prescription, error) {
	prescriptions := make([]models.Prescription, 0)
	if err := repo.database.WithContext(ctx).
		Order("upload_date DESC, id DESC").
		Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	return prescriptions, nil
}
