package ranking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vriksha-lab/backend/config"
	"github.com/vriksha-lab/backend/internal/entity"
)

func volunteer(id string, points int) entity.User {
	return entity.User{ID: id, Name: id, Role: entity.RoleVolunteer, Points: points}
}

func newTestRanker() *Ranker {
	return NewRankerFromConfig(config.GamificationConfigs{
		GuardianPoints:   500,
		HeroPoints:       1000,
		HighScorerPoints: 1000,
	})
}

func TestLevelFor(t *testing.T) {
	thresholds := []int{500, 1000}

	require.Equal(t, Novice, LevelFor(0, thresholds))
	require.Equal(t, Novice, LevelFor(499, thresholds))
	require.Equal(t, Guardian, LevelFor(500, thresholds))
	require.Equal(t, Guardian, LevelFor(999, thresholds))
	require.Equal(t, Hero, LevelFor(1000, thresholds))
	require.Equal(t, Hero, LevelFor(1_000_000, thresholds))
	require.Equal(t, Novice, LevelFor(1_000_000, nil))
}

func TestLevelJSON(t *testing.T) {
	b, err := json.Marshal(Guardian)
	require.NoError(t, err)
	require.Equal(t, `"Eco Guardian"`, string(b))

	var l Level
	require.NoError(t, json.Unmarshal([]byte(`"Forest Hero"`), &l))
	require.Equal(t, Hero, l)
	require.Error(t, json.Unmarshal([]byte(`"Sapling Lord"`), &l))
}

func TestBadgeTitle(t *testing.T) {
	require.Equal(t, "Rank #1", TopRank.Title())
	require.Equal(t, "Growth Hero", HighScorer.Title())
}

func TestRanker_Rank(t *testing.T) {
	users := []entity.User{
		volunteer("user-1", 250),
		{ID: "admin", Role: entity.RoleAdmin, Points: 5000},
		volunteer("user-2", 1200),
		volunteer("user-3", 600),
		volunteer("user-4", 600),
		volunteer("user-5", 0),
	}

	r := newTestRanker()
	standings := r.Rank(users)
	require.Len(t, standings, 5)

	var order []string
	for i, s := range standings {
		order = append(order, s.User.ID)
		require.Equal(t, i+1, s.Rank)
	}
	// Ties keep the input order.
	require.Equal(t, []string{"user-2", "user-3", "user-4", "user-1", "user-5"}, order)

	require.Equal(t, Hero, standings[0].Level)
	require.Equal(t, []Badge{TopRank, HighScorer}, standings[0].Badges)
	require.Equal(t, Guardian, standings[1].Level)
	require.Empty(t, standings[1].Badges)
	require.Equal(t, Novice, standings[4].Level)

	// Higher points always rank strictly better.
	for i := range standings {
		for j := range standings {
			if standings[i].User.Points > standings[j].User.Points {
				require.Less(t, standings[i].Rank, standings[j].Rank)
			}
		}
	}

	// Recomputing yields identical output.
	require.Equal(t, standings, r.Rank(users))
}

func TestRanker_TopRankWithoutHighScore(t *testing.T) {
	standings := newTestRanker().Rank([]entity.User{volunteer("user-1", 10)})
	require.True(t, standings[0].HasBadge(TopRank))
	require.False(t, standings[0].HasBadge(HighScorer))
}

func TestRanker_StandingOfAndTop(t *testing.T) {
	users := []entity.User{
		volunteer("user-1", 10),
		volunteer("user-2", 30),
		volunteer("user-3", 20),
		{ID: "admin", Role: entity.RoleAdmin},
	}
	r := newTestRanker()

	s, ok := r.StandingOf(users, "user-3")
	require.True(t, ok)
	require.Equal(t, 2, s.Rank)

	_, ok = r.StandingOf(users, "admin")
	require.False(t, ok)

	top := r.Top(users, 2)
	require.Len(t, top, 2)
	require.Equal(t, "user-2", top[0].User.ID)
	require.Len(t, r.Top(users, 10), 3)

	require.Equal(t, Guardian, r.Level(700))
	require.Empty(t, r.Rank(nil))
}
