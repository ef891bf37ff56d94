package domain

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"github.com/questdrop/backend/internal/domain/questverify"
	"github.com/questdrop/backend/internal/domain/statistic"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/enum"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
)

type ClaimedQuestDomain interface {
	Verify(ctx context.Context, req *model.VerifyQuestRequest) (*model.VerifyQuestResponse, error)
	GetCompleted(ctx context.Context, req *model.GetCompletedQuestsRequest) (*model.GetCompletedQuestsResponse, error)
}

type claimedQuestDomain struct {
	claimedQuestRepo repository.ClaimedQuestRepository
	questRepo        repository.QuestRepository
	participantRepo  repository.ParticipantRepository
	verifierFactory  questverify.Factory
	leaderboard      statistic.Leaderboard

	// Serializes completions per wallet so a burst of identical requests
	// cannot award the same quest twice.
	walletLocks *xsync.MapOf[string, *walletLock]
}

// walletLock is evicted from the map once its last holder releases it. A
// waiter that acquires an evicted lock must retry with a fresh one.
type walletLock struct {
	mu      sync.Mutex
	evicted bool
}

func NewClaimedQuestDomain(
	claimedQuestRepo repository.ClaimedQuestRepository,
	questRepo repository.QuestRepository,
	participantRepo repository.ParticipantRepository,
	verifierFactory questverify.Factory,
	leaderboard statistic.Leaderboard,
) *claimedQuestDomain {
	return &claimedQuestDomain{
		claimedQuestRepo: claimedQuestRepo,
		questRepo:        questRepo,
		participantRepo:  participantRepo,
		verifierFactory:  verifierFactory,
		leaderboard:      leaderboard,
		walletLocks:      xsync.NewMapOf[*walletLock](),
	}
}

func (d *claimedQuestDomain) Verify(
	ctx context.Context, req *model.VerifyQuestRequest,
) (*model.VerifyQuestResponse, error) {
	if req.QuestID == "" || req.Platform == "" || req.WalletAddress == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields")
	}

	platform, err := enum.ToEnum[entity.Platform](req.Platform)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid platform")
	}

	walletAddress := strings.ToLower(req.WalletAddress)

	lock := d.lockWallet(walletAddress)
	defer d.unlockWallet(walletAddress, lock)

	_, err = d.claimedQuestRepo.GetByWalletAndQuest(ctx, walletAddress, req.QuestID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Quest already completed")
	}
	if !repository.IsNotFound(err) {
		xcontext.Logger(ctx).Errorf("Cannot get the claimed quest: %v", err)
		return nil, errorx.Unknown
	}

	verifier, err := d.verifierFactory.NewVerifier(ctx, platform, verificationProof(req))
	if err != nil {
		return nil, err
	}

	if err := verifier.Verify(ctx, walletAddress); err != nil {
		return nil, err
	}

	points := xcontext.Configs(ctx).Quest.DefaultPoints
	if quest, err := d.questRepo.GetByID(ctx, req.QuestID); err == nil {
		points = quest.Points
	} else if !repository.IsNotFound(err) {
		xcontext.Logger(ctx).Errorf("Cannot get the quest: %v", err)
		return nil, errorx.Unknown
	}

	err = xcontext.WithDBTransaction(ctx, func(ctx context.Context) error {
		err := d.claimedQuestRepo.Create(ctx, &entity.ClaimedQuest{
			Base:          entity.Base{ID: uuid.NewString()},
			WalletAddress: walletAddress,
			QuestID:       req.QuestID,
			Platform:      platform,
			Points:        points,
		})
		if err != nil {
			return err
		}

		return d.participantRepo.IncreasePoints(ctx, walletAddress, points)
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record the completion: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.leaderboard.ChangePoints(ctx, walletAddress, int64(points)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot bump the leaderboard: %v", err)
		// Drop the cached board rather than serve a stale total, the next
		// read rebuilds it from database.
		if err := d.leaderboard.Invalidate(ctx); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate the leaderboard: %v", err)
		}
	}

	participant, err := d.participantRepo.Get(ctx, walletAddress)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the participant: %v", err)
		return nil, errorx.Unknown
	}

	return &model.VerifyQuestResponse{
		Success:       true,
		PointsAwarded: points,
		TotalPoints:   participant.Points,
		Message:       fmt.Sprintf("Quest completed successfully! Earned %d points.", points),
	}, nil
}

func (d *claimedQuestDomain) GetCompleted(
	ctx context.Context, req *model.GetCompletedQuestsRequest,
) (*model.GetCompletedQuestsResponse, error) {
	if req.Wallet == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields")
	}

	claimed, err := d.claimedQuestRepo.GetListByWallet(ctx, strings.ToLower(req.Wallet))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get claimed quests: %v", err)
		return nil, errorx.Unknown
	}

	questIDs := []string{}
	for _, c := range claimed {
		questIDs = append(questIDs, c.QuestID)
	}

	return &model.GetCompletedQuestsResponse{QuestIDs: questIDs}, nil
}

// lockWallet takes the per-wallet mutex, retrying when it raced with an
// eviction.
func (d *claimedQuestDomain) lockWallet(walletAddress string) *walletLock {
	for {
		lock, _ := d.walletLocks.LoadOrStore(walletAddress, &walletLock{})
		lock.mu.Lock()
		if !lock.evicted {
			return lock
		}
		lock.mu.Unlock()
	}
}

// unlockWallet releases the mutex and evicts it from the map so the map does
// not grow with every wallet ever seen. The entry in the map is always the
// held lock itself until this eviction.
func (d *claimedQuestDomain) unlockWallet(walletAddress string, lock *walletLock) {
	lock.evicted = true
	d.walletLocks.Delete(walletAddress)
	lock.mu.Unlock()
}

// verificationProof collects the platform proof fields of the request into
// the untyped shape verifiers decode from.
func verificationProof(req *model.VerifyQuestRequest) map[string]any {
	proof := map[string]any{}
	if req.DiscordUserID != "" {
		proof["discordUserId"] = req.DiscordUserID
	}
	if req.DiscordUsername != "" {
		proof["discordUsername"] = req.DiscordUsername
	}
	if req.TwitterHandle != "" {
		proof["twitterHandle"] = req.TwitterHandle
	}
	if req.TelegramUserID != "" {
		proof["telegramUserId"] = req.TelegramUserID
	}
	return proof
}
