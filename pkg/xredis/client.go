// Package xredis wraps the few Redis commands the leaderboard mirror needs.
package xredis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client interface {
	// ReplaceSortedSet swaps the whole content of a sorted set in one
	// transaction, so readers never see it half written.
	ReplaceSortedSet(ctx context.Context, key string, members ...redis.Z) error

	// TopScores returns at most n members, highest score first.
	TopScores(ctx context.Context, key string, n int) ([]redis.Z, error)

	// Rank returns the 1-based position of member, or false if it is not in
	// the set.
	Rank(ctx context.Context, key, member string) (int, bool, error)

	Close() error
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context, addr string) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolSize:        5,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) ReplaceSortedSet(ctx context.Context, key string, members ...redis.Z) error {
	_, err := c.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(members) > 0 {
			pipe.ZAdd(ctx, key, members...)
		}
		return nil
	})
	return err
}

func (c *client) TopScores(ctx context.Context, key string, n int) ([]redis.Z, error) {
	if n <= 0 {
		return []redis.Z{}, nil
	}
	return c.redisClient.ZRevRangeWithScores(ctx, key, 0, int64(n-1)).Result()
}

func (c *client) Rank(ctx context.Context, key, member string) (int, bool, error) {
	rank, err := c.redisClient.ZRevRank(ctx, key, member).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return int(rank) + 1, true, nil
}

func (c *client) Close() error {
	return c.redisClient.Close()
}
