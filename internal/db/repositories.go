package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	Diary         *DiaryRepository
	Prescriptions *PrescriptionRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Diary:         NewDiaryRepository(database),
		Prescriptions: NewPrescriptionRepository(database),
	}
}
