package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shamaiem10/Vytal/internal/models"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type DiaryRepository interface {
	Create(ctx context.Context, entry *models.DiaryEntry) error
	ListNewestFirst(ctx context.Context, userID *uint) ([]models.DiaryEntry, error)
	ListOldestFirst(ctx context.Context, userID *uint, limit int) ([]models.DiaryEntry, error)
	FindLatest(ctx context.Context, userID *uint) (models.DiaryEntry, bool, error)
}

type DiaryUserReader interface {
	FindByID(ctx context.Context, userID uint) (models.User, error)
}

// DiaryInput carries the recognised diary fields after transport decoding.
// Symptoms arrive as a list; a single free-text value is a one-item list.
type DiaryInput struct {
	UserID   *uint
	Date     string
	Time     string
	Mood     string
	Symptoms []string
	Sugar    *float64
	BP       string
	HR       *float64
	Temp     *float64
	Notes    string
}

type DiaryService struct {
	entries  DiaryRepository
	users    DiaryUserReader
	location *time.Location
	now      func() time.Time
}

func NewDiaryService(entries DiaryRepository, users DiaryUserReader, location *time.Location) *DiaryService {
	if location == nil {
		location = time.UTC
	}
	return &DiaryService{
		entries:  entries,
		users:    users,
		location: location,
		now:      time.Now,
	}
}

func (service *DiaryService) AddEntry(ctx context.Context, input DiaryInput) (models.DiaryEntry, error) {
	if input.UserID == nil {
		return models.DiaryEntry{}, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if _, err := service.users.FindByID(ctx, *input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DiaryEntry{}, ErrUserNotFound
		}
		return models.DiaryEntry{}, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	vitals := []struct {
		name  string
		value *float64
	}{{"sugar", input.Sugar}, {"hr", input.HR}, {"temp", input.Temp}}
	for _, vital := range vitals {
		if vital.value != nil && !isFinite(*vital.value) {
			return models.DiaryEntry{}, fmt.Errorf("%w: %s must be a finite number", ErrValidation, vital.name)
		}
	}

	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = service.now().In(service.location).Format(dateLayout)
	}

	entry := models.DiaryEntry{
		UserID:   *input.UserID,
		Date:     date,
		Time:     strings.TrimSpace(input.Time),
		Mood:     strings.TrimSpace(input.Mood),
		Symptoms: JoinSymptoms(input.Symptoms),
		Sugar:    input.Sugar,
		BP:       strings.TrimSpace(input.BP),
		HR:       input.HR,
		Temp:     input.Temp,
		Notes:    input.Notes,
	}
	if err := service.entries.Create(ctx, &entry); err != nil {
		return models.DiaryEntry{}, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return entry, nil
}

func (service *DiaryService) ListEntries(ctx context.Context, userID *uint) ([]models.DiaryEntry, error) {
	entries, err := service.entries.ListNewestFirst(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return entries, nil
}

func (service *DiaryService) LatestEntry(ctx context.Context, userID *uint) (models.DiaryEntry, error) {
	entry, found, err := service.entries.FindLatest(ctx, userID)
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	if !found {
		return models.DiaryEntry{}, ErrNotFound
	}
	return entry, nil
}

func (service *DiaryService) Analyze(ctx context.Context, userID uint) (DiaryAnalysis, error) {
	entries, err := service.entries.ListOldestFirst(ctx, &userID, 0)
	if err != nil {
		return DiaryAnalysis{}, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	if len(entries) == 0 {
		return DiaryAnalysis{}, ErrNotFound
	}
	return AnalyzeDiary(entries), nil
}

// JoinSymptoms flattens a symptom list into the stored comma-joined text.
func JoinSymptoms(symptoms []string) string {
	cleaned := make([]string, 0, len(symptoms))
	for _, symptom := range symptoms {
		if trimmed := strings.TrimSpace(symptom); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, ", ")
}
