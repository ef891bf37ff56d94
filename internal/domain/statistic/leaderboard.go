package statistic

import (
	"context"

	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/questdrop/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const redisKeyLeaderboard = "leaderboard:points"

type Leaderboard interface {
	GetLeaderboard(ctx context.Context, offset, limit int) ([]model.LeaderboardEntry, error)
	GetRank(ctx context.Context, walletAddress string) (uint64, error)
	ChangePoints(ctx context.Context, walletAddress string, value int64) error
	Invalidate(ctx context.Context) error
}

type leaderboard struct {
	participantRepo repository.ParticipantRepository
	redisClient     xredis.Client
}

func New(
	participantRepo repository.ParticipantRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{participantRepo: participantRepo, redisClient: redisClient}
}

func (l *leaderboard) GetLeaderboard(
	ctx context.Context, offset, limit int,
) ([]model.LeaderboardEntry, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, redisKeyLeaderboard, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.LeaderboardEntry{}
	for i, z := range results {
		entries = append(entries, model.LeaderboardEntry{
			Rank:          offset + i + 1,
			WalletAddress: z.Member.(string),
			TotalPoints:   uint64(z.Score),
		})
	}

	return entries, nil
}

func (l *leaderboard) GetRank(ctx context.Context, walletAddress string) (uint64, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		return 0, err
	}

	rank, err := l.redisClient.ZRevRank(ctx, redisKeyLeaderboard, walletAddress)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get rev rank redis: %v", err)
		return 0, nil
	}

	return rank + 1, nil
}

func (l *leaderboard) ChangePoints(ctx context.Context, walletAddress string, value int64) error {
	ok, err := l.redisClient.Exist(ctx, redisKeyLeaderboard)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	// Nothing to bump if the board is not cached yet, the next read loads
	// the fresh totals from database anyway.
	if !ok {
		return nil
	}

	if err := l.redisClient.ZIncrBy(ctx, redisKeyLeaderboard, value, walletAddress); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot incr redis: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (l *leaderboard) Invalidate(ctx context.Context) error {
	return l.redisClient.Del(ctx, redisKeyLeaderboard)
}

func (l *leaderboard) ensureLoaded(ctx context.Context) error {
	ok, err := l.redisClient.Exist(ctx, redisKeyLeaderboard)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	if ok {
		return nil
	}

	// Rebuild the sorted set from database. A bounded scan is enough, the
	// board only ever serves the top slice.
	participants, err := l.participantRepo.GetList(ctx, 0, 1000)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load participants: %v", err)
		return errorx.Unknown
	}

	for _, p := range participants {
		err := l.redisClient.ZAdd(ctx, redisKeyLeaderboard, redis.Z{
			Score:  float64(p.Points),
			Member: p.WalletAddress,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
