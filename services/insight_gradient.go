package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/bikramkgupta/care-circle-journal/models"
)

var (
	summaryPattern = regexp.MustCompile(`(?s)SUMMARY:\s*(.+?)\s*(?:JSON:|$)`)
	jsonPattern    = regexp.MustCompile(`(?s)JSON:\s*(\{.+\})`)
)

// GradientGenerator calls a hosted OpenAI-compatible chat-completions
// endpoint. Errors and unparseable responses surface as errors; the summary
// service recovers by falling back to the mock generator.
type GradientGenerator struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewGradientGenerator(baseURL, apiKey, model string, timeout time.Duration) *GradientGenerator {
	return &GradientGenerator{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *GradientGenerator) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       g.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gradient request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("gradient api error: %s", resp.Status)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode gradient response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("gradient response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// parseResponse extracts the SUMMARY and JSON blocks the prompt asks for.
// The insights block must unmarshal into the expected shape; anything else
// is treated as an unusable response.
func parseResponse(content string, insights interface{}) (string, json.RawMessage, error) {
	jsonMatch := jsonPattern.FindStringSubmatch(content)
	if jsonMatch == nil {
		return "", nil, fmt.Errorf("response missing JSON block")
	}
	if err := json.Unmarshal([]byte(jsonMatch[1]), insights); err != nil {
		return "", nil, fmt.Errorf("parse insights JSON: %w", err)
	}
	raw, err := json.Marshal(insights)
	if err != nil {
		return "", nil, err
	}

	summary := content
	if m := summaryPattern.FindStringSubmatch(content); m != nil {
		summary = strings.TrimSpace(m[1])
	} else if len(summary) > 300 {
		summary = summary[:300]
	}
	return summary, raw, nil
}

func (g *GradientGenerator) GenerateDailySummary(ctx context.Context, profileName, date string, entries []models.Entry) (*SummaryResult, error) {
	content, err := g.complete(ctx, buildDailyPrompt(profileName, date, entries))
	if err != nil {
		return nil, err
	}
	var insights DailyInsights
	summary, raw, err := parseResponse(content, &insights)
	if err != nil {
		return nil, err
	}
	return &SummaryResult{SummaryText: summary, Insights: raw, ModelName: g.model}, nil
}

func (g *GradientGenerator) GenerateInsights(ctx context.Context, req InsightsRequest) (*SummaryResult, error) {
	content, err := g.complete(ctx, buildInsightsPrompt(req))
	if err != nil {
		return nil, err
	}
	var insights PeriodInsights
	summary, raw, err := parseResponse(content, &insights)
	if err != nil {
		return nil, err
	}
	return &SummaryResult{SummaryText: summary, Insights: raw, ModelName: g.model}, nil
}
