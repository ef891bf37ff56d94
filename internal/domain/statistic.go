package domain

import (
	"context"
	"strings"

	"github.com/questdrop/backend/internal/domain/statistic"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
)

const maxLeaderboardLimit = 100

type StatisticDomain interface {
	GetUserPoints(ctx context.Context, req *model.GetUserPointsRequest) (*model.GetUserPointsResponse, error)
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type statisticDomain struct {
	participantRepo repository.ParticipantRepository
	leaderboard     statistic.Leaderboard
}

func NewStatisticDomain(
	participantRepo repository.ParticipantRepository,
	leaderboard statistic.Leaderboard,
) *statisticDomain {
	return &statisticDomain{participantRepo: participantRepo, leaderboard: leaderboard}
}

// GetUserPoints returns the total of one wallet. Unknown wallets are not an
// error, they simply have zero points.
func (d *statisticDomain) GetUserPoints(
	ctx context.Context, req *model.GetUserPointsRequest,
) (*model.GetUserPointsResponse, error) {
	if req.Wallet == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields")
	}

	walletAddress := strings.ToLower(req.Wallet)
	participant, err := d.participantRepo.Get(ctx, walletAddress)
	if err != nil {
		if repository.IsNotFound(err) {
			return &model.GetUserPointsResponse{WalletAddress: walletAddress}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get the participant: %v", err)
		return nil, errorx.Unknown
	}

	// Rank is best effort, a wallet off the cached board simply has none.
	rank, err := d.leaderboard.GetRank(ctx, walletAddress)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get the rank: %v", err)
	}

	return &model.GetUserPointsResponse{
		WalletAddress: participant.WalletAddress,
		TotalPoints:   participant.Points,
		Rank:          rank,
	}, nil
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	if req.Limit <= 0 {
		req.Limit = 10
	}
	if req.Limit > maxLeaderboardLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum of limit")
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	entries, err := d.leaderboard.GetLeaderboard(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	// The cached board only has wallets and scores, names come from the
	// participant rows.
	for i := range entries {
		participant, err := d.participantRepo.Get(ctx, entries[i].WalletAddress)
		if err != nil {
			continue
		}
		entries[i].Name = participant.Name
	}

	return &model.GetLeaderboardResponse{Leaderboard: entries}, nil
}
