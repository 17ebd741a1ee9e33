// Package insight talks to the collaborators that produce information the
// store cannot derive itself: the AI gateway, geolocation and weather.
//
// None of these calls touch the store. Callers make them first and only
// then apply the result with a store mutation, so a failed or cancelled call
// leaves the store untouched.
package insight

import (
	"context"

	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/pkg/enum"
)

type Direction string

var (
	Increase = enum.New(Direction("increase"), "increase")
	Decrease = enum.New(Direction("decrease"), "decrease")
)

type AnalysisInput struct {
	ImageURL         string
	Weather          entity.Weather
	Soil             string
	PreviousImageURL string
}

type Analysis struct {
	Status         entity.HealthStatus `json:"status"`
	Confidence     float64             `json:"confidence"`
	Recommendation string              `json:"recommendation"`
}

type Forecast struct {
	Percentage  float64   `json:"percentage"`
	Direction   Direction `json:"direction"`
	Explanation string    `json:"explanation"`
}

type Analyzer interface {
	Analyze(ctx context.Context, input AnalysisInput) (Analysis, error)
}

type Forecaster interface {
	Forecast(ctx context.Context, status entity.HealthStatus, weather entity.Weather) (Forecast, error)
}

type Captioner interface {
	SuggestCaption(ctx context.Context, imageURL string) (string, error)
}

type Assistant interface {
	Chat(ctx context.Context, text, imageURL string) (string, error)
}

type Geolocator interface {
	Locate(ctx context.Context) (entity.Location, error)
}

type WeatherProvider interface {
	Current(ctx context.Context, location entity.Location) (entity.Weather, error)
}

// AI groups every capability of the AI gateway.
type AI interface {
	Analyzer
	Forecaster
	Captioner
	Assistant
}
