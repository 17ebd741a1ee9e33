package domain

import (
	"context"

	"github.com/vriksha-lab/backend/internal/domain/ranking"
	"github.com/vriksha-lab/backend/internal/domain/store"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

const defaultLeaderboardLimit = 50

type LeaderboardDomain interface {
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetMyStanding(context.Context, *model.GetMyStandingRequest) (*model.GetMyStandingResponse, error)
}

type leaderboardDomain struct {
	store  *store.Store
	ranker *ranking.Ranker
}

func NewLeaderboardDomain(store *store.Store, ranker *ranking.Ranker) *leaderboardDomain {
	return &leaderboardDomain{store: store, ranker: ranker}
}

func (d *leaderboardDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must not be negative")
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultLeaderboardLimit
	}

	standings := d.ranker.Top(d.store.GetAllUsers(), limit)
	resp := &model.GetLeaderboardResponse{Standings: make([]model.User, 0, len(standings))}
	for _, s := range standings {
		resp.Standings = append(resp.Standings, convertStanding(s))
	}
	return resp, nil
}

func (d *leaderboardDomain) GetMyStanding(
	ctx context.Context, req *model.GetMyStandingRequest,
) (*model.GetMyStandingResponse, error) {
	standing, ok := d.ranker.StandingOf(d.store.GetAllUsers(), xcontext.RequestUserID(ctx))
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found volunteer standing")
	}

	resp := model.GetMyStandingResponse(convertStanding(standing))
	return &resp, nil
}
