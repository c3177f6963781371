package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shamaiem10/Vytal/internal/models"
)

const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

type ChartData struct {
	Dates     []string  `json:"dates"`
	Sugar     []float64 `json:"sugar"`
	Systolic  []float64 `json:"systolic"`
	Diastolic []float64 `json:"diastolic"`
	HR        []float64 `json:"hr"`
	Temp      []float64 `json:"temp"`
	Moods     []string  `json:"moods"`
}

type DiarySummaries struct {
	AvgSugar     *float64 `json:"avg_sugar"`
	AvgHR        *float64 `json:"avg_hr"`
	AvgTemp      *float64 `json:"avg_temp"`
	AvgSystolic  *float64 `json:"avg_systolic"`
	AvgDiastolic *float64 `json:"avg_diastolic"`
	CommonMood   *string  `json:"common_mood"`
}

type DiaryTrends struct {
	SugarTrend *string `json:"sugar_trend"`
	HRTrend    *string `json:"hr_trend"`
	TempTrend  *string `json:"temp_trend"`
	BPTrend    *string `json:"bp_trend"`
}

type DiaryAnalysis struct {
	ChartData ChartData      `json:"chart_data"`
	Summaries DiarySummaries `json:"summaries"`
	Trends    DiaryTrends    `json:"trends"`
}

// AnalyzeDiary builds chart series, averages and endpoint trends from
// entries ordered by date ascending. Value series drop nulls, so they are not
// positionally aligned with Dates.
func AnalyzeDiary(entries []models.DiaryEntry) DiaryAnalysis {
	sugar := presentValues(entries, func(entry models.DiaryEntry) *float64 { return entry.Sugar })
	hr := presentValues(entries, func(entry models.DiaryEntry) *float64 { return entry.HR })
	temp := presentValues(entries, func(entry models.DiaryEntry) *float64 { return entry.Temp })

	systolic := make([]float64, 0, len(entries))
	diastolic := make([]float64, 0, len(entries))
	for _, entry := range entries {
		sys, dia, ok := ParseBloodPressure(entry.BP)
		if !ok {
			continue
		}
		systolic = append(systolic, sys)
		diastolic = append(diastolic, dia)
	}

	moods := lo.FilterMap(entries, func(entry models.DiaryEntry, _ int) (string, bool) {
		return entry.Mood, strings.TrimSpace(entry.Mood) != ""
	})

	return DiaryAnalysis{
		ChartData: ChartData{
			Dates:     lo.Map(entries, func(entry models.DiaryEntry, _ int) string { return entry.Date }),
			Sugar:     sugar,
			Systolic:  systolic,
			Diastolic: diastolic,
			HR:        hr,
			Temp:      temp,
			Moods:     moods,
		},
		Summaries: DiarySummaries{
			AvgSugar:     RoundedMean(sugar),
			AvgHR:        RoundedMean(hr),
			AvgTemp:      RoundedMean(temp),
			AvgSystolic:  RoundedMean(systolic),
			AvgDiastolic: RoundedMean(diastolic),
			CommonMood:   MostCommon(moods),
		},
		Trends: DiaryTrends{
			SugarTrend: EndpointTrend(sugar),
			HRTrend:    EndpointTrend(hr),
			TempTrend:  EndpointTrend(temp),
			BPTrend:    EndpointTrend(systolic),
		},
	}
}

// ParseBloodPressure splits a "systolic/diastolic" reading of two finite
// numbers. Anything else, including an empty string, reports ok=false.
func ParseBloodPressure(raw string) (float64, float64, bool) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	systolic, ok := parseFinite(parts[0])
	if !ok {
		return 0, 0, false
	}
	diastolic, ok := parseFinite(parts[1])
	if !ok {
		return 0, 0, false
	}
	return systolic, diastolic, true
}

func parseFinite(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !isFinite(value) {
		return 0, false
	}
	return value, true
}

func isFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// RoundedMean is the arithmetic mean rounded to two decimals, nil when empty.
func RoundedMean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	mean := lo.Sum(values) / float64(len(values))
	rounded := math.Round(mean*100) / 100
	return &rounded
}

// EndpointTrend compares the last value with the first. It is not a
// regression: [70, 90, 71] is still increasing.
func EndpointTrend(values []float64) *string {
	if len(values) < 2 {
		return nil
	}
	trend := TrendDecreasing
	if values[len(values)-1] > values[0] {
		trend = TrendIncreasing
	}
	return &trend
}

// MostCommon returns the most frequent value; ties go to the value seen first.
func MostCommon(values []string) *string {
	if len(values) == 0 {
		return nil
	}

	counts := lo.CountValues(values)
	best := values[0]
	for _, value := range values {
		if counts[value] > counts[best] {
			best = value
		}
	}
	return &best
}

func presentValues(entries []models.DiaryEntry, pick func(models.DiaryEntry) *float64) []float64 {
	return lo.FilterMap(entries, func(entry models.DiaryEntry, _ int) (float64, bool) {
		value := pick(entry)
		if value == nil {
			return 0, false
		}
		return *value, true
	})
}
