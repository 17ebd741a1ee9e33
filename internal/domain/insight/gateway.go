package insight

import (
	"context"
	"strings"
	"time"

	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/pkg/api"
	"github.com/vriksha-lab/backend/pkg/enum"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

type analyzeRequest struct {
	ImageURL         string  `structs:"image_url"`
	PreviousImageURL string  `structs:"previous_image_url,omitempty"`
	Temperature      float64 `structs:"temp"`
	Humidity         float64 `structs:"humidity"`
	Rainfall         float64 `structs:"rainfall"`
	Soil             string  `structs:"soil"`
}

type analyzeResponse struct {
	Status         string  `mapstructure:"status"`
	Confidence     float64 `mapstructure:"confidence"`
	Recommendation string  `mapstructure:"recommendation"`
}

type forecastRequest struct {
	Status      string  `structs:"status"`
	Temperature float64 `structs:"temp"`
	Humidity    float64 `structs:"humidity"`
	Rainfall    float64 `structs:"rainfall"`
}

type forecastResponse struct {
	Percentage  float64 `mapstructure:"percentage"`
	Direction   string  `mapstructure:"direction"`
	Explanation string  `mapstructure:"explanation"`
}

type textRequest struct {
	Text     string `structs:"text,omitempty"`
	ImageURL string `structs:"image_url,omitempty"`
}

type textResponse struct {
	Text string `mapstructure:"text"`
}

type locateResponse struct {
	Latitude  float64 `mapstructure:"lat"`
	Longitude float64 `mapstructure:"lng"`
}

// Gateway calls an AI gateway that speaks JSON over HTTP. Every endpoint
// answers with a single JSON object.
type Gateway struct {
	apiGenerator api.Generator
	apiKey       string
	timeout      time.Duration
}

func NewGateway(apiGenerator api.Generator, apiKey string, timeout time.Duration) *Gateway {
	return &Gateway{apiGenerator: apiGenerator, apiKey: apiKey, timeout: timeout}
}

func (g *Gateway) Analyze(ctx context.Context, input AnalysisInput) (Analysis, error) {
	var resp analyzeResponse
	err := g.post(ctx, "/analyze", analyzeRequest{
		ImageURL:         input.ImageURL,
		PreviousImageURL: input.PreviousImageURL,
		Temperature:      input.Weather.Temperature,
		Humidity:         input.Weather.Humidity,
		Rainfall:         input.Weather.Rainfall,
		Soil:             input.Soil,
	}, &resp)
	if err != nil {
		return Analysis{}, err
	}

	status, err := enum.ToEnum[entity.HealthStatus](resp.Status)
	if err != nil {
		xcontext.Logger(ctx).Warnf("AI gateway returned an unknown status: %s", resp.Status)
		return Analysis{}, errorx.New(errorx.ExternalService, "AI returned an unknown status")
	}

	if resp.Confidence < 0 || resp.Confidence > 1 {
		return Analysis{}, errorx.New(errorx.ExternalService, "AI returned an invalid confidence")
	}

	return Analysis{
		Status:         status,
		Confidence:     resp.Confidence,
		Recommendation: strings.TrimSpace(resp.Recommendation),
	}, nil
}

func (g *Gateway) Forecast(ctx context.Context, status entity.HealthStatus, weather entity.Weather) (Forecast, error) {
	var resp forecastResponse
	err := g.post(ctx, "/forecast", forecastRequest{
		Status:      string(status),
		Temperature: weather.Temperature,
		Humidity:    weather.Humidity,
		Rainfall:    weather.Rainfall,
	}, &resp)
	if err != nil {
		return Forecast{}, err
	}

	direction, err := enum.ToEnum[Direction](strings.ToLower(resp.Direction))
	if err != nil {
		return Forecast{}, errorx.New(errorx.ExternalService, "AI returned an unknown direction")
	}

	return Forecast{
		Percentage:  resp.Percentage,
		Direction:   direction,
		Explanation: strings.TrimSpace(resp.Explanation),
	}, nil
}

func (g *Gateway) SuggestCaption(ctx context.Context, imageURL string) (string, error) {
	var resp textResponse
	if err := g.post(ctx, "/caption", textRequest{ImageURL: imageURL}, &resp); err != nil {
		return "", err
	}

	return g.text(resp)
}

func (g *Gateway) Chat(ctx context.Context, text, imageURL string) (string, error) {
	var resp textResponse
	if err := g.post(ctx, "/chat", textRequest{Text: text, ImageURL: imageURL}, &resp); err != nil {
		return "", err
	}

	return g.text(resp)
}

// Locate asks the gateway to resolve the caller's position from the incoming
// request's address.
func (g *Gateway) Locate(ctx context.Context) (entity.Location, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	client := g.apiGenerator.New("/locate")
	if req := xcontext.HTTPRequest(ctx); req != nil {
		client = client.Header("X-Forwarded-For", req.RemoteAddr)
	}

	resp, err := client.GET(ctx, api.Bearer(g.apiKey))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot call geolocation: %v", err)
		return entity.Location{}, errorx.New(errorx.ExternalService, "Geolocation is unavailable")
	}

	var result locateResponse
	if err := g.decode(ctx, resp, &result); err != nil {
		return entity.Location{}, err
	}

	location := entity.Location{Latitude: result.Latitude, Longitude: result.Longitude}
	if !location.Valid() {
		return entity.Location{}, errorx.New(errorx.ExternalService, "Geolocation returned an invalid position")
	}

	return location, nil
}

func (g *Gateway) text(resp textResponse) (string, error) {
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", errorx.New(errorx.ExternalService, "AI returned an empty answer")
	}
	return text, nil
}

func (g *Gateway) post(ctx context.Context, path string, req any, out any) error {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	resp, err := g.apiGenerator.New(path).
		Body(api.NewJSON(req)).
		POST(ctx, api.Bearer(g.apiKey))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot call AI gateway %s: %v", path, err)
		return errorx.New(errorx.ExternalService, "AI service is unavailable")
	}

	return g.decode(ctx, resp, out)
}

func (g *Gateway) decode(ctx context.Context, resp *api.Response, out any) error {
	if !resp.OK() {
		xcontext.Logger(ctx).Warnf("AI gateway answered %d: %s", resp.Code, resp.RawBody)
		return errorx.New(errorx.ExternalService, "AI service answered with status %d", resp.Code)
	}

	body, err := resp.JSON()
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read AI gateway response: %v", err)
		return errorx.New(errorx.ExternalService, "AI service returned an invalid response")
	}

	if err := body.Decode(out); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot decode AI gateway response: %v", err)
		return errorx.New(errorx.ExternalService, "AI service returned an invalid response")
	}

	return nil
}

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}
