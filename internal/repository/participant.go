package repository

import (
	"context"
	"errors"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ParticipantRepository interface {
	Get(ctx context.Context, walletAddress string) (*entity.Participant, error)
	Upsert(ctx context.Context, data *entity.Participant) error
	IncreasePoints(ctx context.Context, walletAddress string, points uint64) error
	GetList(ctx context.Context, offset, limit int) ([]entity.Participant, error)
}

type participantRepository struct{}

func NewParticipantRepository() *participantRepository {
	return &participantRepository{}
}

func (r *participantRepository) Get(ctx context.Context, walletAddress string) (*entity.Participant, error) {
	var result entity.Participant
	if err := xcontext.DB(ctx).
		Take(&result, "wallet_address=?", walletAddress).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *participantRepository) Upsert(ctx context.Context, data *entity.Participant) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "wallet_address"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).
		Create(data).Error
}

// IncreasePoints bumps the denormalized totals of one participant. The row is
// created first if the wallet has never been seen.
func (r *participantRepository) IncreasePoints(
	ctx context.Context, walletAddress string, points uint64,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Participant{}).
		Where("wallet_address=?", walletAddress).
		Updates(map[string]any{
			"points": gorm.Expr("points+?", points),
			"quests": gorm.Expr("quests+1"),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return xcontext.DB(ctx).Create(&entity.Participant{
			WalletAddress: walletAddress,
			Points:        points,
			Quests:        1,
		}).Error
	}

	return nil
}

func (r *participantRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Participant, error) {
	result := []entity.Participant{}
	if err := xcontext.DB(ctx).
		Order("points desc, wallet_address asc").
		Offset(offset).
		Limit(limit).
		Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// IsNotFound lets callers branch on missing rows without importing gorm
// everywhere.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
