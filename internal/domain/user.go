package domain

import (
	"context"

	"github.com/vriksha-lab/backend/internal/domain/ranking"
	"github.com/vriksha-lab/backend/internal/domain/store"
	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/pkg/enum"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

type UserDomain interface {
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
}

type userDomain struct {
	store  *store.Store
	ranker *ranking.Ranker
}

func NewUserDomain(store *store.Store, ranker *ranking.Ranker) *userDomain {
	return &userDomain{store: store, ranker: ranker}
}

// Login is a lookup, not an authentication. Administrators get the first
// admin account. Volunteers are found by name and fall back to the first
// volunteer when the name is empty or unknown.
func (d *userDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	role := entity.RoleVolunteer
	if req.Role != "" {
		var err error
		role, err = enum.ToEnum[entity.Role](req.Role)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
		}
	}

	users := d.store.GetAllUsers()
	if role == entity.RoleAdmin {
		for _, u := range users {
			if u.Role == entity.RoleAdmin {
				return &model.LoginResponse{User: convertUser(u)}, nil
			}
		}
		return nil, errorx.New(errorx.NotFound, "Not found any administrator")
	}

	if req.Name != "" {
		u, err := d.store.FindUserByName(req.Name)
		if err == nil && u.IsVolunteer() {
			return d.loginResponse(users, u), nil
		}
	}

	for _, u := range users {
		if u.IsVolunteer() {
			xcontext.Logger(ctx).Debugf("Unknown volunteer %q, log in as %s", req.Name, u.ID)
			return d.loginResponse(users, u), nil
		}
	}

	return nil, errorx.New(errorx.NotFound, "Could not find a user with the name: %s", req.Name)
}

func (d *userDomain) loginResponse(users []entity.User, u entity.User) *model.LoginResponse {
	standing, ok := d.ranker.StandingOf(users, u.ID)
	if !ok {
		return &model.LoginResponse{User: convertUser(u)}
	}
	return &model.LoginResponse{User: convertStanding(standing)}
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	u, err := d.store.GetUser(userID)
	if err != nil {
		return nil, domainError(ctx, "get user", err)
	}

	if standing, ok := d.ranker.StandingOf(d.store.GetAllUsers(), u.ID); ok {
		resp := model.GetUserResponse(convertStanding(standing))
		return &resp, nil
	}

	resp := model.GetUserResponse(convertUser(u))
	return &resp, nil
}
