package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shamaiem10/Vytal/internal/llm"
	"github.com/shamaiem10/Vytal/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	summaryEntryLimit = 30
	notRecorded       = "not recorded"
)

const summaryPrompt = `Analyze the following personal health diary and respond strictly in JSON with the keys
"summary" (a short overview), "insights" (a list of observations) and "recommendations" (a list of suggestions).

Diary:
%s`

type AISummary struct {
	Period          string `json:"period"`
	Summary         any    `json:"summary"`
	Insights        any    `json:"insights"`
	Recommendations []any  `json:"recommendations"`
}

type SummaryDiaryReader interface {
	ListOldestFirst(ctx context.Context, userID *uint, limit int) ([]models.DiaryEntry, error)
}

type SummaryService struct {
	diary SummaryDiaryReader
	llm   ChatCompleter
	log   *logrus.Logger
}

func NewSummaryService(diary SummaryDiaryReader, completer ChatCompleter, log *logrus.Logger) *SummaryService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SummaryService{diary: diary, llm: completer, log: log}
}

// Summarize asks the model to summarise the earliest diary entries.
func (service *SummaryService) Summarize(ctx context.Context, userID *uint) (AISummary, error) {
	entries, err := service.diary.ListOldestFirst(ctx, userID, summaryEntryLimit)
	if err != nil {
		return AISummary{}, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	if len(entries) == 0 {
		return AISummary{}, ErrNoData
	}

	sentences := lo.Map(entries, func(entry models.DiaryEntry, _ int) string {
		return DescribeEntry(entry)
	})
	raw, err := service.llm.Complete(ctx, fmt.Sprintf(summaryPrompt, strings.Join(sentences, "\n")))
	if err != nil {
		return AISummary{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	summary := ParseSummary(raw)
	summary.Period = entries[0].Date + " to " + entries[len(entries)-1].Date
	return summary, nil
}

// ParseSummary decodes the model's JSON object, degrading to the raw text as
// the summary when nothing can be decoded. Recommendations is always a list.
func ParseSummary(raw string) AISummary {
	var decoded map[string]any
	if err := llm.DecodeObject(raw, &decoded); err != nil || decoded == nil {
		return AISummary{Summary: raw, Insights: []any{}, Recommendations: []any{}}
	}

	summary := AISummary{
		Summary:         decoded["summary"],
		Insights:        decoded["insights"],
		Recommendations: []any{},
	}
	if summary.Insights == nil {
		summary.Insights = []any{}
	}
	if recommendations, ok := decoded["recommendations"].([]any); ok {
		summary.Recommendations = recommendations
	}
	return summary
}

// DescribeEntry renders one diary entry as a sentence for the model.
func DescribeEntry(entry models.DiaryEntry) string {
	bloodPressure := notRecorded
	if systolic, diastolic, ok := ParseBloodPressure(entry.BP); ok {
		bloodPressure = formatNumber(systolic) + "/" + formatNumber(diastolic) + " mmHg"
	}

	mood := strings.TrimSpace(entry.Mood)
	if mood == "" {
		mood = notRecorded
	}

	symptoms := strings.TrimSpace(entry.Symptoms)
	if symptoms == "" {
		symptoms = "no symptoms reported"
	}

	return fmt.Sprintf(
		"On %s, mood was %s, blood pressure was %s, heart rate was %s, sugar level was %s, symptoms: %s.",
		entry.Date,
		mood,
		bloodPressure,
		optionalNumber(entry.HR, " bpm"),
		optionalNumber(entry.Sugar, " mg/dL"),
		symptoms,
	)
}

func optionalNumber(value *float64, unit string) string {
	if value == nil {
		return notRecorded
	}
	return formatNumber(*value) + unit
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
