package repository

import (
	"context"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
)

type ClaimedQuestRepository interface {
	Create(ctx context.Context, data *entity.ClaimedQuest) error
	GetByWalletAndQuest(ctx context.Context, walletAddress, questID string) (*entity.ClaimedQuest, error)
	GetListByWallet(ctx context.Context, walletAddress string) ([]entity.ClaimedQuest, error)
	Count(ctx context.Context) (int64, error)
}

type claimedQuestRepository struct{}

func NewClaimedQuestRepository() *claimedQuestRepository {
	return &claimedQuestRepository{}
}

func (r *claimedQuestRepository) Create(ctx context.Context, data *entity.ClaimedQuest) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *claimedQuestRepository) GetByWalletAndQuest(
	ctx context.Context, walletAddress, questID string,
) (*entity.ClaimedQuest, error) {
	result := &entity.ClaimedQuest{}
	if err := xcontext.DB(ctx).
		Take(result, "wallet_address=? AND quest_id=?", walletAddress, questID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *claimedQuestRepository) GetListByWallet(
	ctx context.Context, walletAddress string,
) ([]entity.ClaimedQuest, error) {
	result := []entity.ClaimedQuest{}
	if err := xcontext.DB(ctx).
		Where("wallet_address=?", walletAddress).
		Order("created_at asc").
		Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *claimedQuestRepository) Count(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.ClaimedQuest{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}
