package domain

import (
	"context"
	"time"

	"github.com/vriksha-lab/backend/internal/domain/analytics"
	"github.com/vriksha-lab/backend/internal/domain/ranking"
	"github.com/vriksha-lab/backend/internal/domain/store"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

const topVolunteersCount = 10

type DashboardDomain interface {
	GetDashboard(context.Context, *model.GetDashboardRequest) (*model.GetDashboardResponse, error)
	GetVolunteerStats(context.Context, *model.GetVolunteerStatsRequest) (*model.GetVolunteerStatsResponse, error)
}

type dashboardDomain struct {
	store  *store.Store
	ranker *ranking.Ranker
}

func NewDashboardDomain(store *store.Store, ranker *ranking.Ranker) *dashboardDomain {
	return &dashboardDomain{store: store, ranker: ranker}
}

func (d *dashboardDomain) GetDashboard(
	ctx context.Context, req *model.GetDashboardRequest,
) (*model.GetDashboardResponse, error) {
	loc, err := xcontext.Configs(ctx).Location.Load()
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot load time zone, use UTC: %v", err)
		loc = time.UTC
	}

	// Every view is computed from the same snapshot.
	snap := d.store.Export()

	summary := analytics.DashboardSummary(snap.Saplings, snap.Users)
	resp := &model.GetDashboardResponse{
		TotalSaplings:    summary.TotalSaplings,
		SurvivalRate:     summary.SurvivalRate,
		FollowUpRate:     summary.FollowUpRate,
		ActiveVolunteers: summary.ActiveVolunteers,
		Distribution:     []model.StatusCount{},
		Trend:            []model.TrendPoint{},
		Rainfall:         []model.RainfallBin{},
		TopVolunteers:    []model.User{},
	}

	for _, c := range analytics.HealthDistribution(snap.Saplings) {
		resp.Distribution = append(resp.Distribution, model.StatusCount{Status: string(c.Status), Count: c.Count})
	}

	for _, p := range analytics.HealthTrend(snap.Saplings, loc) {
		resp.Trend = append(resp.Trend, model.TrendPoint{
			Date:         p.Date,
			Label:        p.Label,
			AverageScore: p.AverageScore,
			Count:        p.Count,
		})
	}

	for _, b := range analytics.RainfallSurvival(snap.Saplings) {
		resp.Rainfall = append(resp.Rainfall, model.RainfallBin{
			Name:         b.Name,
			Total:        b.Total,
			Survived:     b.Survived,
			SurvivalRate: b.SurvivalRate,
		})
	}

	for _, s := range d.ranker.Top(snap.Users, topVolunteersCount) {
		resp.TopVolunteers = append(resp.TopVolunteers, convertStanding(s))
	}

	return resp, nil
}

func (d *dashboardDomain) GetVolunteerStats(
	ctx context.Context, req *model.GetVolunteerStatsRequest,
) (*model.GetVolunteerStatsResponse, error) {
	snap := d.store.Export()

	userID := xcontext.RequestUserID(ctx)
	standing, ok := d.ranker.StandingOf(snap.Users, userID)
	if !ok {
		u, err := d.store.GetUser(userID)
		if err != nil {
			return nil, domainError(ctx, "get user", err)
		}
		standing = ranking.Standing{User: u, Level: d.ranker.Level(u.Points), Badges: []ranking.Badge{}}
	}

	stats := analytics.VolunteerStatsOf(standing.User, snap.Saplings)
	return &model.GetVolunteerStatsResponse{
		SaplingCount:    stats.SaplingCount,
		NeedsWaterCount: stats.NeedsWaterCount,
		Points:          stats.Points,
		Standing:        convertStanding(standing),
	}, nil
}
