package domain

import (
	"context"
	"strings"
	"time"

	"github.com/vriksha-lab/backend/internal/common"
	"github.com/vriksha-lab/backend/internal/domain/analytics"
	"github.com/vriksha-lab/backend/internal/domain/insight"
	"github.com/vriksha-lab/backend/internal/domain/store"
	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/pkg/enum"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

const notEnoughDataExplanation = "Not enough data for a forecast."

type SaplingDomain interface {
	GetSaplings(context.Context, *model.GetSaplingsRequest) (*model.GetSaplingsResponse, error)
	GetMySaplings(context.Context, *model.GetMySaplingsRequest) (*model.GetMySaplingsResponse, error)
	GetSapling(context.Context, *model.GetSaplingRequest) (*model.GetSaplingResponse, error)
	AnalyzePhoto(context.Context, *model.AnalyzePhotoRequest) (*model.AnalyzePhotoResponse, error)
	Register(context.Context, *model.RegisterSaplingRequest) (*model.RegisterSaplingResponse, error)
	SubmitUpdate(context.Context, *model.SubmitUpdateRequest) (*model.SubmitUpdateResponse, error)
	Delete(context.Context, *model.DeleteSaplingRequest) (*model.DeleteSaplingResponse, error)
	GetForecast(context.Context, *model.GetForecastRequest) (*model.GetForecastResponse, error)
}

type saplingDomain struct {
	store     *store.Store
	ai        insight.AI
	weather   insight.WeatherProvider
	geolocate insight.Geolocator
}

// NewSaplingDomain expects ai to be wrapped with insight.WithFallback so that
// an unavailable gateway never blocks a submission.
func NewSaplingDomain(
	store *store.Store,
	ai insight.AI,
	weather insight.WeatherProvider,
	geolocate insight.Geolocator,
) *saplingDomain {
	return &saplingDomain{
		store:     store,
		ai:        ai,
		weather:   weather,
		geolocate: geolocate,
	}
}

func (d *saplingDomain) GetSaplings(
	ctx context.Context, req *model.GetSaplingsRequest,
) (*model.GetSaplingsResponse, error) {
	filter := analytics.SaplingFilter{Query: req.Query, LostOnly: req.LostOnly}
	if req.Status != "" {
		if req.Status == string(analytics.NoData) {
			filter.Status = analytics.NoData
		} else {
			status, err := enum.ToEnum[entity.HealthStatus](req.Status)
			if err != nil {
				return nil, errorx.New(errorx.BadRequest, "Invalid health status %s", req.Status)
			}
			filter.Status = status
		}
	}

	users := d.store.GetAllUsers()
	saplings := analytics.FilterSaplings(d.store.GetAllSaplings(), users, filter)

	names := userNames(users)
	resp := &model.GetSaplingsResponse{Saplings: make([]model.Sapling, 0, len(saplings))}
	for _, s := range saplings {
		resp.Saplings = append(resp.Saplings, convertSapling(s, names))
	}
	return resp, nil
}

func (d *saplingDomain) GetMySaplings(
	ctx context.Context, req *model.GetMySaplingsRequest,
) (*model.GetMySaplingsResponse, error) {
	names := userNames(d.store.GetAllUsers())
	saplings := d.store.GetSaplingsByGuardian(xcontext.RequestUserID(ctx))

	resp := &model.GetMySaplingsResponse{Saplings: make([]model.Sapling, 0, len(saplings))}
	for _, s := range saplings {
		resp.Saplings = append(resp.Saplings, convertSapling(s, names))
	}
	return resp, nil
}

func (d *saplingDomain) GetSapling(
	ctx context.Context, req *model.GetSaplingRequest,
) (*model.GetSaplingResponse, error) {
	s, err := d.store.GetSapling(req.SaplingID)
	if err != nil {
		return nil, domainError(ctx, "get sapling", err)
	}

	resp := model.GetSaplingResponse(convertSapling(s, userNames(d.store.GetAllUsers())))
	return &resp, nil
}

// AnalyzePhoto previews what a submission would record, without touching the
// store.
func (d *saplingDomain) AnalyzePhoto(
	ctx context.Context, req *model.AnalyzePhotoRequest,
) (*model.AnalyzePhotoResponse, error) {
	var location entity.Location
	var previousImageURL string
	if req.SaplingID != "" {
		s, err := d.store.GetSapling(req.SaplingID)
		if err != nil {
			return nil, domainError(ctx, "get sapling", err)
		}

		location = s.Location
		if last, ok := s.LastUpdate(); ok {
			previousImageURL = last.ImageURL
		}
	} else {
		var err error
		location, err = d.locate(ctx, req.Latitude, req.Longitude)
		if err != nil {
			return nil, err
		}
	}

	obs, err := d.observe(ctx, location, req.ImageURL, previousImageURL)
	if err != nil {
		return nil, err
	}

	return &model.AnalyzePhotoResponse{
		Status:         string(obs.analysis.Status),
		Confidence:     obs.analysis.Confidence,
		Recommendation: obs.analysis.Recommendation,
		Weather:        *convertWeather(&obs.weather),
		SoilCondition:  obs.soil,
		Location:       model.Location{Latitude: location.Latitude, Longitude: location.Longitude},
	}, nil
}

func (d *saplingDomain) Register(
	ctx context.Context, req *model.RegisterSaplingRequest,
) (*model.RegisterSaplingResponse, error) {
	if strings.TrimSpace(req.Species) == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a species")
	}

	guardian, err := d.store.GetUser(xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, domainError(ctx, "get guardian", err)
	}

	location, err := d.locate(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	obs, err := d.observe(ctx, location, req.ImageURL, "")
	if err != nil {
		return nil, err
	}

	s, err := d.store.AddSapling(ctx, store.AddSaplingParams{
		Species:        req.Species,
		Location:       &location,
		GuardianID:     guardian.ID,
		ImageURL:       req.ImageURL,
		Recommendation: obs.analysis.Recommendation,
		Confidence:     obs.confidence(),
		Weather:        &obs.weather,
		SoilCondition:  obs.soil,
	})
	if err != nil {
		return nil, domainError(ctx, "add sapling", err)
	}

	return &model.RegisterSaplingResponse{
		Sapling: convertSapling(s, map[string]string{guardian.ID: guardian.Name}),
	}, nil
}

func (d *saplingDomain) SubmitUpdate(
	ctx context.Context, req *model.SubmitUpdateRequest,
) (*model.SubmitUpdateResponse, error) {
	var status entity.HealthStatus
	if req.Status != "" {
		var err error
		status, err = enum.ToEnum[entity.HealthStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid health status %s", req.Status)
		}
	}

	s, err := d.store.GetSapling(req.SaplingID)
	if err != nil {
		return nil, domainError(ctx, "get sapling", err)
	}

	// A replay needs no new observation.
	if req.SubmissionKey != "" {
		for _, u := range s.Updates {
			if u.SubmissionKey == req.SubmissionKey {
				return &model.SubmitUpdateResponse{Update: convertSaplingUpdate(u)}, nil
			}
		}
	}

	var previousImageURL string
	if last, ok := s.LastUpdate(); ok {
		previousImageURL = last.ImageURL
	}

	obs, err := d.observe(ctx, s.Location, req.ImageURL, previousImageURL)
	if err != nil {
		return nil, err
	}

	if status == "" {
		status = obs.analysis.Status
	}

	u, err := d.store.AddSaplingUpdate(ctx, store.AddUpdateParams{
		SaplingID:      s.ID,
		Status:         status,
		ImageURL:       req.ImageURL,
		UserID:         xcontext.RequestUserID(ctx),
		Recommendation: obs.analysis.Recommendation,
		Confidence:     obs.confidence(),
		Weather:        &obs.weather,
		SoilCondition:  obs.soil,
		SubmissionKey:  req.SubmissionKey,
	})
	if err != nil {
		return nil, domainError(ctx, "add sapling update", err)
	}

	return &model.SubmitUpdateResponse{Update: convertSaplingUpdate(u)}, nil
}

func (d *saplingDomain) Delete(
	ctx context.Context, req *model.DeleteSaplingRequest,
) (*model.DeleteSaplingResponse, error) {
	if err := d.store.DeleteSapling(ctx, req.SaplingID); err != nil {
		return nil, domainError(ctx, "delete sapling", err)
	}

	return &model.DeleteSaplingResponse{}, nil
}

func (d *saplingDomain) GetForecast(
	ctx context.Context, req *model.GetForecastRequest,
) (*model.GetForecastResponse, error) {
	s, err := d.store.GetSapling(req.SaplingID)
	if err != nil {
		return nil, domainError(ctx, "get sapling", err)
	}

	last, ok := s.LastUpdate()
	if !ok || last.Weather == nil {
		return &model.GetForecastResponse{
			Direction:   string(insight.Increase),
			Explanation: notEnoughDataExplanation,
		}, nil
	}

	start := time.Now()
	forecast, err := d.ai.Forecast(ctx, last.Status, *last.Weather)
	observeAI("forecast", start)
	if err != nil {
		return nil, domainError(ctx, "forecast", err)
	}

	return &model.GetForecastResponse{
		Percentage:  forecast.Percentage,
		Direction:   string(forecast.Direction),
		Explanation: forecast.Explanation,
	}, nil
}

type observation struct {
	weather  entity.Weather
	soil     string
	analysis insight.Analysis
}

// confidence is nil when the analysis did not produce a usable one.
func (o observation) confidence() *float64 {
	if o.analysis.Confidence <= 0 {
		return nil
	}
	c := o.analysis.Confidence
	return &c
}

// observe gathers the weather, the soil and the AI analysis of a photo. It
// runs before any store mutation.
func (d *saplingDomain) observe(
	ctx context.Context, location entity.Location, imageURL, previousImageURL string,
) (observation, error) {
	if imageURL == "" {
		return observation{}, errorx.New(errorx.BadRequest, "Require an image")
	}

	weather, err := d.weather.Current(ctx, location)
	if err != nil {
		return observation{}, domainError(ctx, "get weather", err)
	}
	soil := insight.SoilCondition(weather)

	start := time.Now()
	analysis, err := d.ai.Analyze(ctx, insight.AnalysisInput{
		ImageURL:         imageURL,
		Weather:          weather,
		Soil:             soil,
		PreviousImageURL: previousImageURL,
	})
	observeAI("analyze", start)
	if err != nil {
		return observation{}, domainError(ctx, "analyze photo", err)
	}

	return observation{weather: weather, soil: soil, analysis: analysis}, nil
}

func (d *saplingDomain) locate(ctx context.Context, lat, lng *float64) (entity.Location, error) {
	if lat != nil && lng != nil {
		location := entity.Location{Latitude: *lat, Longitude: *lng}
		if !location.Valid() {
			return entity.Location{}, errorx.New(errorx.BadRequest, "Invalid location %v", location)
		}
		return location, nil
	}

	location, err := d.geolocate.Locate(ctx)
	if err != nil {
		return entity.Location{}, domainError(ctx, "locate", err)
	}
	return location, nil
}

func observeAI(operation string, start time.Time) {
	common.PromHistograms[common.AIRequestDurationSeconds].
		WithLabelValues(operation).
		Observe(time.Since(start).Seconds())
}
