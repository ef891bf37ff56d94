package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/questdrop/backend/internal/domain/statistic"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/testutil"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_statisticDomain_GetUserPoints(t *testing.T) {
	ctx := testutil.MockContext()
	participantRepo := repository.NewParticipantRepository()

	require.NoError(t, xcontext.DB(ctx).Create(&entity.Participant{
		WalletAddress: "0xabc",
		Points:        250,
		Quests:        3,
	}).Error)

	d := NewStatisticDomain(participantRepo, statistic.New(participantRepo, testutil.NewInMemoryLeaderboard()))

	resp, err := d.GetUserPoints(ctx, &model.GetUserPointsRequest{Wallet: "0xABC"})
	require.NoError(t, err)
	require.Equal(t, "0xabc", resp.WalletAddress)
	require.Equal(t, uint64(250), resp.TotalPoints)
	require.Equal(t, uint64(1), resp.Rank)

	// Unknown wallets have zero points, not an error.
	resp, err = d.GetUserPoints(ctx, &model.GetUserPointsRequest{Wallet: "0xdef"})
	require.NoError(t, err)
	require.Equal(t, uint64(0), resp.TotalPoints)
	require.Equal(t, uint64(0), resp.Rank)

	_, err = d.GetUserPoints(ctx, &model.GetUserPointsRequest{})
	require.Equal(t, errorx.New(errorx.BadRequest, "Missing required fields"), err)
}

func Test_statisticDomain_GetUserPoints_Rank(t *testing.T) {
	ctx := testutil.MockContext()
	participantRepo := repository.NewParticipantRepository()

	wallets := []entity.Participant{
		{WalletAddress: "0xaaa", Points: 300},
		{WalletAddress: "0xbbb", Points: 100},
		{WalletAddress: "0xccc", Points: 200},
	}
	for i := range wallets {
		require.NoError(t, xcontext.DB(ctx).Create(&wallets[i]).Error)
	}

	d := NewStatisticDomain(participantRepo, statistic.New(participantRepo, testutil.NewInMemoryLeaderboard()))

	resp, err := d.GetUserPoints(ctx, &model.GetUserPointsRequest{Wallet: "0xccc"})
	require.NoError(t, err)
	require.Equal(t, uint64(200), resp.TotalPoints)
	require.Equal(t, uint64(2), resp.Rank)

	resp, err = d.GetUserPoints(ctx, &model.GetUserPointsRequest{Wallet: "0xbbb"})
	require.NoError(t, err)
	require.Equal(t, uint64(3), resp.Rank)
}

func Test_statisticDomain_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	participantRepo := repository.NewParticipantRepository()

	wallets := []entity.Participant{
		{WalletAddress: "0xaaa", Name: "alice", Points: 300},
		{WalletAddress: "0xbbb", Name: "bob", Points: 100},
		{WalletAddress: "0xccc", Points: 200},
	}
	for i := range wallets {
		require.NoError(t, xcontext.DB(ctx).Create(&wallets[i]).Error)
	}

	d := NewStatisticDomain(participantRepo, statistic.New(participantRepo, testutil.NewInMemoryLeaderboard()))

	resp, err := d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Leaderboard, 3)

	require.Equal(t, 1, resp.Leaderboard[0].Rank)
	require.Equal(t, "0xaaa", resp.Leaderboard[0].WalletAddress)
	require.Equal(t, "alice", resp.Leaderboard[0].Name)
	require.Equal(t, uint64(300), resp.Leaderboard[0].TotalPoints)

	require.Equal(t, 2, resp.Leaderboard[1].Rank)
	require.Equal(t, "0xccc", resp.Leaderboard[1].WalletAddress)

	require.Equal(t, 3, resp.Leaderboard[2].Rank)
	require.Equal(t, "0xbbb", resp.Leaderboard[2].WalletAddress)

	_, err = d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Limit: 1000})
	require.Equal(t, errorx.New(errorx.BadRequest, "Exceeded the maximum of limit"), err)
}

func Test_statisticDomain_GetLeaderboard_Pagination(t *testing.T) {
	ctx := testutil.MockContext()
	participantRepo := repository.NewParticipantRepository()

	for i := 0; i < 5; i++ {
		require.NoError(t, xcontext.DB(ctx).Create(&entity.Participant{
			WalletAddress: uuid.NewString(),
			Points:        uint64((i + 1) * 100),
		}).Error)
	}

	d := NewStatisticDomain(participantRepo, statistic.New(participantRepo, testutil.NewInMemoryLeaderboard()))

	resp, err := d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Leaderboard, 2)
	require.Equal(t, 3, resp.Leaderboard[0].Rank)
	require.Equal(t, uint64(300), resp.Leaderboard[0].TotalPoints)
	require.Equal(t, 4, resp.Leaderboard[1].Rank)
	require.Equal(t, uint64(200), resp.Leaderboard[1].TotalPoints)
}
