package insight

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/pkg/errorx"
)

const (
	SoilWet    = "Wet"
	SoilMoist  = "Moist"
	SoilDry    = "Dry"
	SoilNormal = "Normal"
)

// MockWeather produces plausible weather that only depends on the location
// and the calendar day, so repeated calls on the same day agree.
type MockWeather struct {
	now func() time.Time
}

func NewMockWeather(now func() time.Time) *MockWeather {
	if now == nil {
		now = time.Now
	}
	return &MockWeather{now: now}
}

func (w *MockWeather) Current(ctx context.Context, location entity.Location) (entity.Weather, error) {
	if err := ctx.Err(); err != nil {
		return entity.Weather{}, err
	}

	if !location.Valid() {
		return entity.Weather{}, errorx.New(errorx.ValidationFailed, "Invalid location %v", location)
	}

	h := fnv.New32a()
	day := w.now().UTC().Format(time.DateOnly)
	h.Write([]byte(day))
	seed := h.Sum32()

	// Warmer near the equator, with a small daily swing.
	temp := 38 - math.Abs(location.Latitude)*0.4 + float64(seed%7)
	humidity := 30 + math.Mod(math.Abs(location.Longitude)+float64(seed%40), 60)
	rainfall := 0.0
	if seed%3 != 0 {
		rainfall = float64((seed >> 4) % 25)
	}

	return entity.Weather{
		Temperature: math.Round(temp),
		Humidity:    math.Round(humidity),
		Rainfall:    rainfall,
	}, nil
}

// SoilCondition infers the soil from the weather.
func SoilCondition(weather entity.Weather) string {
	switch {
	case weather.Rainfall > 15:
		return SoilWet
	case weather.Rainfall > 5:
		return SoilMoist
	case weather.Rainfall == 0 && (weather.Temperature >= 32 || weather.Humidity < 35):
		return SoilDry
	default:
		return SoilNormal
	}
}

// StaticGeolocator always answers the same position. It serves as the
// fallback when the gateway cannot locate the caller.
type StaticGeolocator struct {
	Location entity.Location
}

func (g StaticGeolocator) Locate(ctx context.Context) (entity.Location, error) {
	if err := ctx.Err(); err != nil {
		return entity.Location{}, err
	}
	return g.Location, nil
}
