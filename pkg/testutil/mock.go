package testutil

import (
	"context"

	"github.com/vriksha-lab/backend/internal/domain/insight"
	"github.com/vriksha-lab/backend/internal/entity"
)

// MockAI answers with the configured funcs. A nil func answers a fixed,
// successful value.
type MockAI struct {
	AnalyzeFunc  func(ctx context.Context, input insight.AnalysisInput) (insight.Analysis, error)
	ForecastFunc func(ctx context.Context, status entity.HealthStatus, weather entity.Weather) (insight.Forecast, error)
	CaptionFunc  func(ctx context.Context, imageURL string) (string, error)
	ChatFunc     func(ctx context.Context, text, imageURL string) (string, error)

	Calls int
}

func (m *MockAI) Analyze(ctx context.Context, input insight.AnalysisInput) (insight.Analysis, error) {
	m.Calls++
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, input)
	}
	return insight.Analysis{Status: entity.Healthy, Confidence: 0.9, Recommendation: "Keep watering weekly."}, nil
}

func (m *MockAI) Forecast(ctx context.Context, status entity.HealthStatus, weather entity.Weather) (insight.Forecast, error) {
	m.Calls++
	if m.ForecastFunc != nil {
		return m.ForecastFunc(ctx, status, weather)
	}
	return insight.Forecast{Percentage: 5, Direction: insight.Increase, Explanation: "Good conditions."}, nil
}

func (m *MockAI) SuggestCaption(ctx context.Context, imageURL string) (string, error) {
	m.Calls++
	if m.CaptionFunc != nil {
		return m.CaptionFunc(ctx, imageURL)
	}
	return "Growing strong!", nil
}

func (m *MockAI) Chat(ctx context.Context, text, imageURL string) (string, error) {
	m.Calls++
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, text, imageURL)
	}
	return "Water it in the evening.", nil
}

// MockWeather answers the same weather everywhere.
type MockWeather struct {
	Weather entity.Weather
	Err     error
}

func (m MockWeather) Current(ctx context.Context, location entity.Location) (entity.Weather, error) {
	return m.Weather, m.Err
}
