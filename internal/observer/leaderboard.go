package observer

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/vriksha-lab/backend/pkg/xredis"
)

// LeaderboardMirror keeps a Redis sorted set of volunteer points, so other
// services can read the leaderboard without calling the API. The store stays
// the source of truth; the set is rebuilt on every flush.
type LeaderboardMirror struct {
	*coalescer

	source Source
	redis  xredis.Client
	key    string
}

func NewLeaderboardMirror(source Source, redis xredis.Client, key string) *LeaderboardMirror {
	m := &LeaderboardMirror{source: source, redis: redis, key: key}
	m.coalescer = newCoalescer("leaderboard", m.sync)
	return m
}

func (m *LeaderboardMirror) sync(ctx context.Context) error {
	members := []redis.Z{}
	for _, u := range m.source.GetAllUsers() {
		if u.IsVolunteer() {
			members = append(members, redis.Z{Score: float64(u.Points), Member: u.ID})
		}
	}

	return m.redis.ReplaceSortedSet(ctx, m.key, members...)
}
