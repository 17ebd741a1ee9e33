package insight

import (
	"context"

	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

const (
	FallbackRecommendation = "AI analysis failed. Please assess manually."
	FallbackExplanation    = "Could not generate an AI forecast at this time."
	FallbackCaption        = "Enjoying a beautiful day with my sapling! 🌿"
	FallbackChat           = "I'm having a little trouble connecting right now. Please try again later."
)

// fallbackAI never fails: every error of the wrapped AI is logged and replaced
// by a neutral answer. A cancelled context is still reported as an error so
// the caller stops.
type fallbackAI struct {
	ai AI
}

func WithFallback(ai AI) AI {
	return &fallbackAI{ai: ai}
}

func (f *fallbackAI) Analyze(ctx context.Context, input AnalysisInput) (Analysis, error) {
	result, err := f.ai.Analyze(ctx, input)
	if err != nil {
		if ctx.Err() != nil {
			return Analysis{}, ctx.Err()
		}

		xcontext.Logger(ctx).Warnf("Cannot analyze sapling, use fallback: %v", err)
		return Analysis{Status: entity.Healthy, Confidence: 0, Recommendation: FallbackRecommendation}, nil
	}
	return result, nil
}

func (f *fallbackAI) Forecast(ctx context.Context, status entity.HealthStatus, weather entity.Weather) (Forecast, error) {
	result, err := f.ai.Forecast(ctx, status, weather)
	if err != nil {
		if ctx.Err() != nil {
			return Forecast{}, ctx.Err()
		}

		xcontext.Logger(ctx).Warnf("Cannot forecast health, use fallback: %v", err)
		return Forecast{Percentage: 0, Direction: Increase, Explanation: FallbackExplanation}, nil
	}
	return result, nil
}

func (f *fallbackAI) SuggestCaption(ctx context.Context, imageURL string) (string, error) {
	result, err := f.ai.SuggestCaption(ctx, imageURL)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		xcontext.Logger(ctx).Warnf("Cannot suggest caption, use fallback: %v", err)
		return FallbackCaption, nil
	}
	return result, nil
}

func (f *fallbackAI) Chat(ctx context.Context, text, imageURL string) (string, error) {
	result, err := f.ai.Chat(ctx, text, imageURL)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		xcontext.Logger(ctx).Warnf("Cannot chat with assistant, use fallback: %v", err)
		return FallbackChat, nil
	}
	return result, nil
}

// offlineAI answers when no AI gateway is configured.
type offlineAI struct{}

func Offline() AI {
	return offlineAI{}
}

func (offlineAI) Analyze(context.Context, AnalysisInput) (Analysis, error) {
	return Analysis{Status: entity.Healthy, Recommendation: "API Key not configured. Please assess manually."}, nil
}

func (offlineAI) Forecast(context.Context, entity.HealthStatus, entity.Weather) (Forecast, error) {
	return Forecast{Direction: Increase, Explanation: "API Key not configured."}, nil
}

func (offlineAI) SuggestCaption(context.Context, string) (string, error) {
	return "My beautiful sapling! 🌱", nil
}

func (offlineAI) Chat(context.Context, string, string) (string, error) {
	return "I'm sorry, the AI assistant is currently offline as the API key is not configured.", nil
}

// fallbackGeolocator answers the fallback position when the primary
// geolocator fails.
type fallbackGeolocator struct {
	primary  Geolocator
	fallback StaticGeolocator
}

func WithFallbackLocation(primary Geolocator, location entity.Location) Geolocator {
	return &fallbackGeolocator{primary: primary, fallback: StaticGeolocator{Location: location}}
}

func (g *fallbackGeolocator) Locate(ctx context.Context) (entity.Location, error) {
	location, err := g.primary.Locate(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return entity.Location{}, ctx.Err()
		}

		xcontext.Logger(ctx).Warnf("Cannot locate caller, use fallback: %v", err)
		return g.fallback.Locate(ctx)
	}
	return location, nil
}
