package testutil

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type MockRedisClient struct {
	ExistFunc               func(ctx context.Context, key string) (bool, error)
	DelFunc                 func(ctx context.Context, key ...string) error
	ZAddFunc                func(ctx context.Context, key string, z redis.Z) error
	ZIncrByFunc             func(ctx context.Context, key string, incr int64, member string) error
	ZRevRangeWithScoresFunc func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
	ZRevRankFunc            func(ctx context.Context, key string, member string) (uint64, error)
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	return false, nil
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	return nil
}

func (m *MockRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	if m.ZAddFunc != nil {
		return m.ZAddFunc(ctx, key, z)
	}

	return nil
}

func (m *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	if m.ZIncrByFunc != nil {
		return m.ZIncrByFunc(ctx, key, incr, member)
	}

	return nil
}

func (m *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	if m.ZRevRangeWithScoresFunc != nil {
		return m.ZRevRangeWithScoresFunc(ctx, key, offset, limit)
	}

	return nil, nil
}

func (m *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	if m.ZRevRankFunc != nil {
		return m.ZRevRankFunc(ctx, key, member)
	}

	return 0, nil
}

// InMemoryLeaderboard keeps sorted set semantics in a map, enough for the
// leaderboard paths tests exercise.
type InMemoryLeaderboard struct {
	Scores map[string]int64
	loaded bool
}

func NewInMemoryLeaderboard() *InMemoryLeaderboard {
	return &InMemoryLeaderboard{Scores: map[string]int64{}}
}

func (l *InMemoryLeaderboard) Exist(ctx context.Context, key string) (bool, error) {
	return l.loaded, nil
}

func (l *InMemoryLeaderboard) Del(ctx context.Context, key ...string) error {
	l.Scores = map[string]int64{}
	l.loaded = false
	return nil
}

func (l *InMemoryLeaderboard) ZAdd(ctx context.Context, key string, z redis.Z) error {
	l.Scores[z.Member.(string)] = int64(z.Score)
	l.loaded = true
	return nil
}

func (l *InMemoryLeaderboard) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	l.Scores[member] += incr
	return nil
}

func (l *InMemoryLeaderboard) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	result := []redis.Z{}
	for member, score := range l.Scores {
		result = append(result, redis.Z{Member: member, Score: float64(score)})
	}

	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].Score > result[i].Score {
				result[i], result[j] = result[j], result[i]
			}
		}
	}

	if offset >= len(result) {
		return []redis.Z{}, nil
	}

	end := offset + limit
	if end > len(result) {
		end = len(result)
	}

	return result[offset:end], nil
}

func (l *InMemoryLeaderboard) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	all, _ := l.ZRevRangeWithScores(ctx, key, 0, len(l.Scores))
	for i, z := range all {
		if z.Member == member {
			return uint64(i), nil
		}
	}

	return 0, redis.Nil
}

