package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vriksha-lab/backend/internal/domain/insight"
	"github.com/vriksha-lab/backend/internal/domain/store"
	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/testutil"
)

var (
	testWeather  = entity.Weather{Temperature: 30, Humidity: 50, Rainfall: 0}
	testLocation = entity.Location{Latitude: 12.97, Longitude: 77.59}
)

func newTestSaplingDomain(s *store.Store, ai insight.AI) *saplingDomain {
	return NewSaplingDomain(
		s,
		ai,
		testutil.MockWeather{Weather: testWeather},
		insight.StaticGeolocator{Location: testLocation},
	)
}

func floatPtr(f float64) *float64 {
	return &f
}

func saplingIDs(saplings []model.Sapling) []string {
	ids := []string{}
	for _, s := range saplings {
		ids = append(ids, s.ID)
	}
	return ids
}

func Test_saplingDomain_GetSaplings(t *testing.T) {
	d := newTestSaplingDomain(testutil.NewDemoStore(), &testutil.MockAI{})

	tests := []struct {
		name    string
		req     *model.GetSaplingsRequest
		want    []string
		wantErr error
	}{
		{name: "all", req: &model.GetSaplingsRequest{}, want: []string{"sapling-1", "sapling-2", "sapling-3", "sapling-4"}},
		{name: "species", req: &model.GetSaplingsRequest{Query: "NEEM"}, want: []string{"sapling-1"}},
		{name: "guardian name", req: &model.GetSaplingsRequest{Query: "arjun"}, want: []string{"sapling-2"}},
		{name: "lost only", req: &model.GetSaplingsRequest{LostOnly: true}, want: []string{"sapling-3"}},
		{name: "status", req: &model.GetSaplingsRequest{Status: "Damaged"}, want: []string{"sapling-2"}},
		{name: "no match", req: &model.GetSaplingsRequest{Query: "oak"}, want: []string{}},
		{
			name:    "invalid status",
			req:     &model.GetSaplingsRequest{Status: "Thriving"},
			wantErr: errorx.New(errorx.BadRequest, "Invalid health status Thriving"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := d.GetSaplings(testutil.MockContext(), tt.req)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, saplingIDs(resp.Saplings))
		})
	}
}

func Test_saplingDomain_GetSaplings_CurrentStatus(t *testing.T) {
	d := newTestSaplingDomain(testutil.NewDemoStore(), &testutil.MockAI{})

	resp, err := d.GetSaplings(testutil.MockContext(), &model.GetSaplingsRequest{})
	require.NoError(t, err)
	require.Equal(t, "Healthy", resp.Saplings[0].CurrentStatus)
	require.Equal(t, "Priya Sharma", resp.Saplings[0].GuardianName)
	require.Equal(t, "Lost", resp.Saplings[2].CurrentStatus)
	require.Len(t, resp.Saplings[0].Updates, 3)
}

func Test_saplingDomain_GetMySaplings(t *testing.T) {
	d := newTestSaplingDomain(testutil.NewDemoStore(), &testutil.MockAI{})

	resp, err := d.GetMySaplings(testutil.MockContextWithUserID("user-1"), &model.GetMySaplingsRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{"sapling-1", "sapling-4"}, saplingIDs(resp.Saplings))
}

func Test_saplingDomain_Register(t *testing.T) {
	s := testutil.NewDemoStore()
	ai := &testutil.MockAI{}
	d := newTestSaplingDomain(s, ai)
	ctx := testutil.MockContextWithUserID("user-4")

	resp, err := d.Register(ctx, &model.RegisterSaplingRequest{
		Species:   "Ashoka",
		ImageURL:  "http://img/ashoka.png",
		Latitude:  floatPtr(28.6),
		Longitude: floatPtr(77.2),
	})
	require.NoError(t, err)
	require.Equal(t, "Ashoka", resp.Sapling.Species)
	require.Equal(t, "user-4", resp.Sapling.GuardianID)
	require.Equal(t, model.Location{Latitude: 28.6, Longitude: 77.2}, resp.Sapling.Location)
	require.Equal(t, "Healthy", resp.Sapling.CurrentStatus)
	require.Len(t, resp.Sapling.Updates, 1)

	first := resp.Sapling.Updates[0]
	require.Equal(t, "Keep watering weekly.", first.Recommendation)
	require.Equal(t, 0.9, *first.Confidence)
	require.Equal(t, &model.Weather{Temperature: 30, Humidity: 50, Rainfall: 0}, first.Weather)
	require.Equal(t, insight.SoilNormal, first.SoilCondition)

	// Registration earns nothing.
	u, err := s.GetUser("user-4")
	require.NoError(t, err)
	require.Equal(t, 150, u.Points)
	require.Len(t, s.GetAllSaplings(), 5)
}

func Test_saplingDomain_Register_Geolocates(t *testing.T) {
	d := newTestSaplingDomain(testutil.NewDemoStore(), &testutil.MockAI{})

	resp, err := d.Register(testutil.MockContextWithUserID("user-4"), &model.RegisterSaplingRequest{
		Species:  "Ashoka",
		ImageURL: "http://img/ashoka.png",
	})
	require.NoError(t, err)
	require.Equal(t, model.Location{Latitude: testLocation.Latitude, Longitude: testLocation.Longitude}, resp.Sapling.Location)
}

func Test_saplingDomain_Register_Invalid(t *testing.T) {
	s := testutil.NewDemoStore()
	ai := &testutil.MockAI{}
	d := newTestSaplingDomain(s, ai)
	version := s.Version()

	tests := []struct {
		name    string
		userID  string
		req     *model.RegisterSaplingRequest
		wantErr errorx.Code
	}{
		{
			name:    "blank species",
			userID:  "user-4",
			req:     &model.RegisterSaplingRequest{Species: "  ", ImageURL: "http://img"},
			wantErr: errorx.BadRequest,
		},
		{
			name:    "unknown guardian",
			userID:  "ghost",
			req:     &model.RegisterSaplingRequest{Species: "Neem", ImageURL: "http://img"},
			wantErr: errorx.NotFound,
		},
		{
			name:    "out of range location",
			userID:  "user-4",
			req:     &model.RegisterSaplingRequest{Species: "Neem", ImageURL: "http://img", Latitude: floatPtr(95), Longitude: floatPtr(0)},
			wantErr: errorx.BadRequest,
		},
		{
			name:    "missing image",
			userID:  "user-4",
			req:     &model.RegisterSaplingRequest{Species: "Neem"},
			wantErr: errorx.BadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Register(testutil.MockContextWithUserID(tt.userID), tt.req)
			require.True(t, errorx.Is(err, tt.wantErr), err)
		})
	}

	require.Zero(t, ai.Calls)
	require.Equal(t, version, s.Version())
}

func Test_saplingDomain_Register_AIFailure(t *testing.T) {
	ai := &testutil.MockAI{
		AnalyzeFunc: func(ctx context.Context, input insight.AnalysisInput) (insight.Analysis, error) {
			return insight.Analysis{}, errorx.New(errorx.ExternalService, "AI service is unavailable")
		},
	}
	d := newTestSaplingDomain(testutil.NewDemoStore(), insight.WithFallback(ai))

	resp, err := d.Register(testutil.MockContextWithUserID("user-4"), &model.RegisterSaplingRequest{
		Species:  "Ashoka",
		ImageURL: "http://img/ashoka.png",
	})
	require.NoError(t, err)
	require.Equal(t, insight.FallbackRecommendation, resp.Sapling.Updates[0].Recommendation)
	require.Nil(t, resp.Sapling.Updates[0].Confidence)
}

func Test_saplingDomain_SubmitUpdate(t *testing.T) {
	s := testutil.NewDemoStore()
	d := newTestSaplingDomain(s, &testutil.MockAI{})

	resp, err := d.SubmitUpdate(testutil.MockContextWithUserID("user-2"), &model.SubmitUpdateRequest{
		SaplingID: "sapling-4",
		ImageURL:  "http://img/gulmohar2.png",
		Status:    "Needs Water",
	})
	require.NoError(t, err)
	require.Equal(t, "Needs Water", resp.Update.Status)
	require.Equal(t, "user-2", resp.Update.SubmittedBy)

	// The guardian earns the reward, not the submitter.
	guardian, err := s.GetUser("user-1")
	require.NoError(t, err)
	require.Equal(t, 1260, guardian.Points)

	submitter, err := s.GetUser("user-2")
	require.NoError(t, err)
	require.Equal(t, 820, submitter.Points)

	notices := s.GetNotificationsForUser("user-1")
	require.Len(t, notices, 2)
	require.Equal(t, "water-"+resp.Update.ID, notices[1].ID)
}

func Test_saplingDomain_SubmitUpdate_StatusFromAnalysis(t *testing.T) {
	var input insight.AnalysisInput
	ai := &testutil.MockAI{
		AnalyzeFunc: func(ctx context.Context, in insight.AnalysisInput) (insight.Analysis, error) {
			input = in
			return insight.Analysis{Status: entity.Damaged, Confidence: 0.7, Recommendation: "Stake it."}, nil
		},
	}
	d := newTestSaplingDomain(testutil.NewDemoStore(), ai)

	resp, err := d.SubmitUpdate(testutil.MockContextWithUserID("user-1"), &model.SubmitUpdateRequest{
		SaplingID: "sapling-1",
		ImageURL:  "http://img/neem4.png",
	})
	require.NoError(t, err)
	require.Equal(t, "Damaged", resp.Update.Status)
	require.Equal(t, 0.7, *resp.Update.Confidence)
	require.Equal(t, "https://picsum.photos/seed/neem3/400/300", input.PreviousImageURL)
	require.Equal(t, testWeather, input.Weather)
	require.Equal(t, insight.SoilNormal, input.Soil)
}

func Test_saplingDomain_SubmitUpdate_Replay(t *testing.T) {
	s := testutil.NewDemoStore()
	ai := &testutil.MockAI{}
	d := newTestSaplingDomain(s, ai)
	ctx := testutil.MockContextWithUserID("user-1")
	req := &model.SubmitUpdateRequest{
		SaplingID:     "sapling-4",
		ImageURL:      "http://img/gulmohar2.png",
		Status:        "Healthy",
		SubmissionKey: "retry-1",
	}

	first, err := d.SubmitUpdate(ctx, req)
	require.NoError(t, err)
	calls, version := ai.Calls, s.Version()

	second, err := d.SubmitUpdate(ctx, req)
	require.NoError(t, err)
	require.Equal(t, first.Update.ID, second.Update.ID)
	require.Equal(t, calls, ai.Calls)
	require.Equal(t, version, s.Version())

	u, err := s.GetUser("user-1")
	require.NoError(t, err)
	require.Equal(t, 1260, u.Points)
}

func Test_saplingDomain_SubmitUpdate_Invalid(t *testing.T) {
	s := testutil.NewDemoStore()
	d := newTestSaplingDomain(s, &testutil.MockAI{})
	version := s.Version()

	_, err := d.SubmitUpdate(testutil.MockContextWithUserID("user-1"), &model.SubmitUpdateRequest{
		SaplingID: "sapling-404", ImageURL: "http://img",
	})
	require.True(t, errorx.Is(err, errorx.NotFound))

	_, err = d.SubmitUpdate(testutil.MockContextWithUserID("user-1"), &model.SubmitUpdateRequest{
		SaplingID: "sapling-1", ImageURL: "http://img", Status: "Thriving",
	})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	require.Equal(t, version, s.Version())
}

func Test_saplingDomain_SubmitUpdate_Cancelled(t *testing.T) {
	s := testutil.NewDemoStore()
	d := newTestSaplingDomain(s, &testutil.MockAI{})
	version := s.Version()

	ctx, cancel := context.WithCancel(testutil.MockContextWithUserID("user-1"))
	cancel()

	_, err := d.SubmitUpdate(ctx, &model.SubmitUpdateRequest{
		SaplingID: "sapling-4", ImageURL: "http://img", Status: "Healthy",
	})
	require.Error(t, err)
	require.Equal(t, version, s.Version())

	u, err := s.GetUser("user-1")
	require.NoError(t, err)
	require.Equal(t, 1250, u.Points)
}

func Test_saplingDomain_Delete(t *testing.T) {
	s := testutil.NewDemoStore()
	d := newTestSaplingDomain(s, &testutil.MockAI{})
	ctx := testutil.MockContextWithUserID("user-admin")

	_, err := d.Delete(ctx, &model.DeleteSaplingRequest{SaplingID: "sapling-3"})
	require.NoError(t, err)

	_, err = d.Delete(ctx, &model.DeleteSaplingRequest{SaplingID: "sapling-3"})
	require.True(t, errorx.Is(err, errorx.NotFound))
	require.Len(t, s.GetAllSaplings(), 3)
}

func Test_saplingDomain_GetForecast(t *testing.T) {
	s := testutil.NewDemoStore()
	var gotStatus entity.HealthStatus
	ai := &testutil.MockAI{
		ForecastFunc: func(ctx context.Context, status entity.HealthStatus, weather entity.Weather) (insight.Forecast, error) {
			gotStatus = status
			return insight.Forecast{Percentage: 12, Direction: insight.Decrease, Explanation: "Heat wave."}, nil
		},
	}
	d := newTestSaplingDomain(s, ai)
	ctx := testutil.MockContextWithUserID("user-2")

	resp, err := d.GetForecast(ctx, &model.GetForecastRequest{SaplingID: "sapling-2"})
	require.NoError(t, err)
	require.Equal(t, &model.GetForecastResponse{Percentage: 12, Direction: "decrease", Explanation: "Heat wave."}, resp)
	require.Equal(t, entity.Damaged, gotStatus)

	bare, err := s.AddSapling(context.Background(), store.AddSaplingParams{
		Species: "Teak", Location: &testLocation, GuardianID: "user-2",
	})
	require.NoError(t, err)

	resp, err = d.GetForecast(ctx, &model.GetForecastRequest{SaplingID: bare.ID})
	require.NoError(t, err)
	require.Equal(t, notEnoughDataExplanation, resp.Explanation)
	require.Equal(t, "increase", resp.Direction)

	_, err = d.GetForecast(ctx, &model.GetForecastRequest{SaplingID: "sapling-404"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func Test_saplingDomain_GetForecast_Failure(t *testing.T) {
	ai := &testutil.MockAI{
		ForecastFunc: func(ctx context.Context, status entity.HealthStatus, weather entity.Weather) (insight.Forecast, error) {
			return insight.Forecast{}, errors.New("connection reset")
		},
	}
	d := newTestSaplingDomain(testutil.NewDemoStore(), ai)

	_, err := d.GetForecast(testutil.MockContext(), &model.GetForecastRequest{SaplingID: "sapling-1"})
	require.Equal(t, errorx.Unknown, err)
}

func Test_saplingDomain_AnalyzePhoto(t *testing.T) {
	s := testutil.NewDemoStore()
	d := newTestSaplingDomain(s, &testutil.MockAI{})
	version := s.Version()

	resp, err := d.AnalyzePhoto(testutil.MockContextWithUserID("user-1"), &model.AnalyzePhotoRequest{
		ImageURL: "http://img/new.png",
	})
	require.NoError(t, err)
	require.Equal(t, "Healthy", resp.Status)
	require.Equal(t, insight.SoilNormal, resp.SoilCondition)
	require.Equal(t, model.Location{Latitude: testLocation.Latitude, Longitude: testLocation.Longitude}, resp.Location)
	require.Equal(t, version, s.Version())
}
