package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bikramkgupta/care-circle-journal/models"
)

// InsightGenerator produces the natural-language summary and structured
// insights for a window of entries. Two implementations exist: the hosted
// Gradient endpoint and a deterministic local mock. The implementation is
// chosen once at startup; the summary service additionally falls back to the
// mock whenever the hosted generator fails.
type InsightGenerator interface {
	GenerateDailySummary(ctx context.Context, profileName, date string, entries []models.Entry) (*SummaryResult, error)
	GenerateInsights(ctx context.Context, req InsightsRequest) (*SummaryResult, error)
}

type SummaryResult struct {
	SummaryText string
	Insights    json.RawMessage
	ModelName   string
}

type DailyInsights struct {
	Positives          []string `json:"positives"`
	Concerns           []string `json:"concerns"`
	Flags              []string `json:"flags"`
	BehavioralPatterns []string `json:"behavioral_patterns"`
}

type PeriodInsights struct {
	Patterns     []string `json:"patterns"`
	Correlations []string `json:"correlations"`
	Suggestions  []string `json:"suggestions"`
}

// EntryAggregates are the simple statistics computed by the summary service
// over a period window and handed to the generator.
type EntryAggregates struct {
	Total        int
	CountsByType map[models.EntryType]int
	MeanMood     float64
	HasMood      bool
	Symptoms     []string
}

type InsightsRequest struct {
	ProfileName string
	PeriodType  models.PeriodType
	StartDate   string
	EndDate     string
	Entries     []models.Entry
	Aggregates  EntryAggregates
}

func entriesText(entries []models.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("[%s] %s: %s", e.Timestamp.UTC().Format("3:04 PM"), e.Type, e.FreeText)
		if e.MoodScore != nil {
			line += fmt.Sprintf(" (mood: %d/5)", *e.MoodScore)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func buildDailyPrompt(profileName, date string, entries []models.Entry) string {
	return fmt.Sprintf(`You are a caregiver assistant analyzing daily observations for %s.

Here are the entries for %s:
%s

Please provide:
1. A brief 2-4 sentence summary of the day
2. A JSON object with:
   - positives: array of 1-3 positive observations or wins
   - concerns: array of 0-2 concerns to monitor
   - flags: array of any urgent items requiring attention (usually empty)
   - behavioral_patterns: array of any notable patterns observed

Respond in this exact format:
SUMMARY: [your summary here]
JSON: {"positives": [...], "concerns": [...], "flags": [...], "behavioral_patterns": [...]}`,
		profileName, date, entriesText(entries))
}

func buildInsightsPrompt(req InsightsRequest) string {
	agg := req.Aggregates

	byType := make([]string, 0, len(agg.CountsByType))
	for _, t := range []models.EntryType{
		models.EntryNote, models.EntrySleep, models.EntryMeal,
		models.EntrySymptom, models.EntryActivity, models.EntryMedication,
	} {
		if n, ok := agg.CountsByType[t]; ok {
			byType = append(byType, fmt.Sprintf("%s: %d", t, n))
		}
	}

	avgMood := "N/A"
	if agg.HasMood {
		avgMood = fmt.Sprintf("%.1f", agg.MeanMood)
	}
	symptoms := "None"
	if len(agg.Symptoms) > 0 {
		symptoms = strings.Join(agg.Symptoms, ", ")
	}
	period := strings.ToLower(string(req.PeriodType))

	return fmt.Sprintf(`You are a caregiver assistant analyzing %s patterns for %s.

Period: %s to %s
Total entries: %d
Entry breakdown: %s
Average mood score: %s/5
Symptoms reported: %s

Please analyze these patterns and provide:
1. A 2-3 sentence summary of the %s patterns
2. A JSON object with:
   - patterns: array of 2-3 notable patterns observed
   - correlations: array of any correlations (e.g., "poor sleep correlates with lower mood")
   - suggestions: array of 1-2 suggestions to discuss with clinicians

Respond in this exact format:
SUMMARY: [your summary here]
JSON: {"patterns": [...], "correlations": [...], "suggestions": [...]}`,
		period, req.ProfileName, req.StartDate, req.EndDate,
		agg.Total, strings.Join(byType, ", "), avgMood, symptoms, period)
}
