package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vriksha-lab/backend/internal/domain/ranking"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/testutil"
)

func newTestRanker() *ranking.Ranker {
	return ranking.NewRankerFromConfig(testutil.MockConfigs().Gamification)
}

func Test_userDomain_Login(t *testing.T) {
	d := NewUserDomain(testutil.NewDemoStore(), newTestRanker())

	tests := []struct {
		name    string
		req     *model.LoginRequest
		wantID  string
		wantErr error
	}{
		{
			name:   "admin",
			req:    &model.LoginRequest{Role: "ADMIN"},
			wantID: "user-admin",
		},
		{
			name:   "volunteer by name ignoring case",
			req:    &model.LoginRequest{Name: "arjun mehta"},
			wantID: "user-2",
		},
		{
			name:   "unknown name falls back to the first volunteer",
			req:    &model.LoginRequest{Name: "Zed"},
			wantID: "user-1",
		},
		{
			name:   "admin name does not log in as volunteer",
			req:    &model.LoginRequest{Name: "Admin", Role: "VOLUNTEER"},
			wantID: "user-1",
		},
		{
			name:    "invalid role",
			req:     &model.LoginRequest{Role: "OWNER"},
			wantErr: errorx.New(errorx.BadRequest, "Invalid role OWNER"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := d.Login(testutil.MockContext(), tt.req)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantID, resp.User.ID)
		})
	}
}

func Test_userDomain_Login_Standing(t *testing.T) {
	d := NewUserDomain(testutil.NewDemoStore(), newTestRanker())

	resp, err := d.Login(testutil.MockContext(), &model.LoginRequest{Name: "Priya Sharma"})
	require.NoError(t, err)
	require.Equal(t, 1, resp.User.Rank)
	require.Equal(t, "Forest Hero", resp.User.Level)
	require.Equal(t, []model.Badge{
		{ID: "top_rank", Title: "Rank #1"},
		{ID: "high_scorer", Title: "Growth Hero"},
	}, resp.User.Badges)
}

func Test_userDomain_GetUser(t *testing.T) {
	d := NewUserDomain(testutil.NewDemoStore(), newTestRanker())

	resp, err := d.GetUser(testutil.MockContextWithUserID("user-2"), &model.GetUserRequest{})
	require.NoError(t, err)
	require.Equal(t, "Arjun Mehta", resp.Name)
	require.Equal(t, 2, resp.Rank)
	require.Equal(t, "Eco Guardian", resp.Level)

	resp, err = d.GetUser(testutil.MockContextWithUserID("user-2"), &model.GetUserRequest{UserID: "user-admin"})
	require.NoError(t, err)
	require.Equal(t, "ADMIN", resp.Role)
	require.Zero(t, resp.Rank)

	_, err = d.GetUser(testutil.MockContextWithUserID("ghost"), &model.GetUserRequest{})
	require.True(t, errorx.Is(err, errorx.NotFound))
}
