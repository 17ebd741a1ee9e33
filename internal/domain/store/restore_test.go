package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/pkg/errorx"
)

func TestStore_Restore(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	snap := DemoSnapshot(now)

	require.NoError(t, f.store.Restore(context.Background(), snap))
	require.Equal(t, 1, f.notifications())
	require.Equal(t, snap.Clone(), f.store.Export())

	u, err := f.store.GetUser(DemoVolunteerID)
	require.NoError(t, err)
	require.Equal(t, 1250, u.Points)

	// The restored snapshot is a private copy.
	snap.Saplings[0].Updates[0].Status = entity.Lost
	s, _ := f.store.GetSapling(snap.Saplings[0].ID)
	require.Equal(t, entity.Healthy, s.Updates[0].Status)
}

func TestStore_RestoreRejectsInvalidSnapshots(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	testCases := []struct {
		name   string
		mutate func(snap *entity.Snapshot)
	}{
		{
			name:   "duplicated user",
			mutate: func(snap *entity.Snapshot) { snap.Users = append(snap.Users, snap.Users[0]) },
		},
		{
			name:   "unknown role",
			mutate: func(snap *entity.Snapshot) { snap.Users[0].Role = "GUEST" },
		},
		{
			name:   "negative points",
			mutate: func(snap *entity.Snapshot) { snap.Users[0].Points = -1 },
		},
		{
			name:   "unknown status",
			mutate: func(snap *entity.Snapshot) { snap.Saplings[0].Updates[0].Status = "Thriving" },
		},
		{
			name: "updates out of order",
			mutate: func(snap *entity.Snapshot) {
				u := snap.Saplings[0].Updates
				u[0], u[len(u)-1] = u[len(u)-1], u[0]
			},
		},
		{
			name:   "missing post id",
			mutate: func(snap *entity.Snapshot) { snap.Posts[0].ID = "" },
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			u := f.volunteer(t, "Existing")
			notices := f.notifications()

			snap := DemoSnapshot(now)
			tt.mutate(&snap)

			err := f.store.Restore(context.Background(), snap)
			require.True(t, errorx.Is(err, errorx.ValidationFailed))
			require.Equal(t, notices, f.notifications())
			require.Equal(t, []entity.User{u}, f.store.GetAllUsers())
		})
	}
}

func TestStore_RestoreDedupesLikes(t *testing.T) {
	f := newFixture(t)
	snap := DemoSnapshot(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
	snap.Posts[0].Likes = []string{"user-2", "user-2", "user-3"}

	require.NoError(t, f.store.Restore(context.Background(), snap))

	for _, p := range f.store.GetSocialFeed() {
		if p.ID == snap.Posts[0].ID {
			require.Equal(t, []string{"user-2", "user-3"}, p.Likes)
		}
	}
}

func TestStore_GetNotificationsForUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	guardian := f.volunteer(t, "Priya")
	other := f.volunteer(t, "Arjun")

	healthy := f.sapling(t, guardian.ID)
	thirsty := f.sapling(t, guardian.ID)
	f.sapling(t, other.ID)

	require.Empty(t, f.store.GetNotificationsForUser(guardian.ID))

	dry, err := f.store.AddSaplingUpdate(ctx, AddUpdateParams{SaplingID: thirsty.ID, Status: entity.NeedsWater})
	require.NoError(t, err)

	notices := f.store.GetNotificationsForUser(guardian.ID)
	require.Len(t, notices, 1)
	require.Equal(t, "water-"+dry.ID, notices[0].ID)
	require.Equal(t, entity.SeverityWarning, notices[0].Severity)
	require.Equal(t, thirsty.ID, notices[0].SaplingID)

	watered, err := f.store.AddSaplingUpdate(ctx, AddUpdateParams{SaplingID: thirsty.ID, Status: entity.Healthy})
	require.NoError(t, err)
	lost, err := f.store.AddSaplingUpdate(ctx, AddUpdateParams{SaplingID: healthy.ID, Status: entity.Lost})
	require.NoError(t, err)

	notices = f.store.GetNotificationsForUser(guardian.ID)
	require.Len(t, notices, 2)
	require.Equal(t, "lost-"+lost.ID, notices[0].ID)
	require.Equal(t, entity.SeverityInfo, notices[0].Severity)
	require.Equal(t, "recovered-"+watered.ID, notices[1].ID)
	require.Equal(t, entity.SeveritySuccess, notices[1].Severity)

	require.Empty(t, f.store.GetNotificationsForUser(other.ID))
}
