package services

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/shamaiem10/Vytal/internal/db"
	"github.com/shamaiem10/Vytal/internal/models"
	"github.com/sirupsen/logrus"
)

func newTestRepositories(t *testing.T) *db.Repositories {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "services.db"), quietLogger())
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
	return db.NewRepositories(database)
}

func createUser(t *testing.T, repos *db.Repositories, email string) uint {
	t.Helper()

	user := models.User{Name: "Diary Owner", Email: email, PasswordHash: "hash"}
	if err := repos.Users.Create(context.Background(), &user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user.ID
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

func floatPtr(value float64) *float64 {
	return &value
}

func uintPtr(value uint) *uint {
	return &value
}

type stubCompleter struct {
	response string
	err      error
	prompts  []string
}

func (stub *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	stub.prompts = append(stub.prompts, prompt)
	return stub.response, stub.err
}
