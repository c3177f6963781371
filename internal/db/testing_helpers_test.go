package db

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/shamaiem10/Vytal/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDBAt(t, filepath.Join(t.TempDir(), "vytal-test.db"))
}

func openTestDBAt(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	log := logrus.New()
	log.Out = io.Discard

	database, err := OpenSQLite(databasePath, log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func createTestUser(t *testing.T, repos *Repositories, email string) models.User {
	t.Helper()

	user := models.User{Name: "Test User", Email: email, PasswordHash: "hash"}
	if err := repos.Users.Create(context.Background(), &user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func floatPtr(value float64) *float64 {
	return &value
}
