package repository

import (
	"context"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
)

type QuestRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Quest, error)
	GetList(ctx context.Context) ([]entity.Quest, error)
}

type questRepository struct{}

func NewQuestRepository() *questRepository {
	return &questRepository{}
}

func (r *questRepository) GetByID(ctx context.Context, id string) (*entity.Quest, error) {
	result := &entity.Quest{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) GetList(ctx context.Context) ([]entity.Quest, error) {
	result := []entity.Quest{}
	if err := xcontext.DB(ctx).
		Where("status=?", entity.QuestActive).
		Order("id asc").
		Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
