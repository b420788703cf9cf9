package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bikramkgupta/care-circle-journal/models"
)

func TestMockGeneratorDailySummary(t *testing.T) {
	ctx := context.Background()
	gen := NewMockGenerator()

	entries := []models.Entry{
		{Type: models.EntryMeal, MoodScore: intPtr(4)},
		{Type: models.EntrySymptom, MoodScore: intPtr(4)},
	}

	first, err := gen.GenerateDailySummary(ctx, "Alex", "2024-01-10", entries)
	require.NoError(t, err)
	second, err := gen.GenerateDailySummary(ctx, "Alex", "2024-01-10", entries)
	require.NoError(t, err)

	// Same input, same output, every time.
	require.Equal(t, first.SummaryText, second.SummaryText)
	require.JSONEq(t, string(first.Insights), string(second.Insights))

	require.Equal(t, mockModelName, first.ModelName)
	require.Contains(t, first.SummaryText, "Alex")
	require.Contains(t, first.SummaryText, "2024-01-10")
	require.Contains(t, first.SummaryText, "good day")
	require.Contains(t, first.SummaryText, "symptoms noted")

	var insights DailyInsights
	require.NoError(t, json.Unmarshal(first.Insights, &insights))
	require.Contains(t, insights.Positives, "Maintained regular meal schedule")
	require.NotEmpty(t, insights.Concerns)
}

func TestMockGeneratorDayKind(t *testing.T) {
	ctx := context.Background()
	gen := NewMockGenerator()

	low, err := gen.GenerateDailySummary(ctx, "Alex", "2024-01-10", []models.Entry{
		{Type: models.EntryNote, MoodScore: intPtr(2)},
	})
	require.NoError(t, err)
	require.Contains(t, low.SummaryText, "challenging day")

	noMood, err := gen.GenerateDailySummary(ctx, "Alex", "2024-01-10", []models.Entry{
		{Type: models.EntryNote},
	})
	require.NoError(t, err)
	require.Contains(t, noMood.SummaryText, "varied day")
}

func TestMockGeneratorInsights(t *testing.T) {
	ctx := context.Background()
	gen := NewMockGenerator()

	weekly, err := gen.GenerateInsights(ctx, InsightsRequest{
		ProfileName: "Alex",
		PeriodType:  models.PeriodWeekly,
		Aggregates:  EntryAggregates{Total: 12},
	})
	require.NoError(t, err)
	require.Contains(t, weekly.SummaryText, "weekly period")
	require.Contains(t, weekly.SummaryText, "12 entries")

	monthly, err := gen.GenerateInsights(ctx, InsightsRequest{
		PeriodType: models.PeriodMonthly,
		Aggregates: EntryAggregates{Total: 40},
	})
	require.NoError(t, err)
	require.Contains(t, monthly.SummaryText, "monthly period")

	var insights PeriodInsights
	require.NoError(t, json.Unmarshal(weekly.Insights, &insights))
	require.NotEmpty(t, insights.Patterns)
	require.NotEmpty(t, insights.Correlations)
	require.NotEmpty(t, insights.Suggestions)
}

func gradientReply(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestGradientGeneratorDailySummary(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		gradientReply("SUMMARY: Alex slept well and ate three meals.\nJSON: {\"positives\": [\"slept well\"], \"concerns\": [], \"flags\": [], \"behavioral_patterns\": []}")(w, r)
	}))
	defer srv.Close()

	gen := NewGradientGenerator(srv.URL, "test-key", "llama3.3-70b-instruct", 5*time.Second)
	result, err := gen.GenerateDailySummary(context.Background(), "Alex", "2024-01-10", []models.Entry{
		{Type: models.EntrySleep, Timestamp: time.Date(2024, 1, 10, 7, 0, 0, 0, time.UTC), FreeText: "slept 8h"},
	})
	require.NoError(t, err)

	require.Equal(t, "/chat/completions", gotPath)
	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "llama3.3-70b-instruct", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	require.Contains(t, gotReq.Messages[0].Content, "Alex")
	require.Contains(t, gotReq.Messages[0].Content, "SLEEP")

	require.Equal(t, "Alex slept well and ate three meals.", result.SummaryText)
	require.Equal(t, "llama3.3-70b-instruct", result.ModelName)

	var insights DailyInsights
	require.NoError(t, json.Unmarshal(result.Insights, &insights))
	require.Equal(t, []string{"slept well"}, insights.Positives)
}

func TestGradientGeneratorRejectsMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(gradientReply("I had trouble with that request, sorry."))
	defer srv.Close()

	gen := NewGradientGenerator(srv.URL, "test-key", "llama3.3-70b-instruct", 5*time.Second)
	_, err := gen.GenerateDailySummary(context.Background(), "Alex", "2024-01-10", nil)
	require.Error(t, err)
}

func TestGradientGeneratorAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream busy", http.StatusInternalServerError)
	}))
	defer srv.Close()

	gen := NewGradientGenerator(srv.URL, "test-key", "llama3.3-70b-instruct", 5*time.Second)
	_, err := gen.GenerateInsights(context.Background(), InsightsRequest{PeriodType: models.PeriodWeekly})
	require.Error(t, err)
}

func TestParseResponse(t *testing.T) {
	var insights DailyInsights
	summary, raw, err := parseResponse(
		"SUMMARY: A calm day.\nJSON: {\"positives\": [\"p\"], \"concerns\": [], \"flags\": [], \"behavioral_patterns\": []}",
		&insights)
	require.NoError(t, err)
	require.Equal(t, "A calm day.", summary)
	require.Equal(t, []string{"p"}, insights.Positives)
	require.NotEmpty(t, raw)

	// Without the SUMMARY label the whole content stands in for it.
	var more DailyInsights
	summary, _, err = parseResponse(
		"The day went fine. JSON: {\"positives\": [], \"concerns\": [], \"flags\": [], \"behavioral_patterns\": []}",
		&more)
	require.NoError(t, err)
	require.Contains(t, summary, "The day went fine.")

	_, _, err = parseResponse("no structured content here", &more)
	require.Error(t, err)
}
