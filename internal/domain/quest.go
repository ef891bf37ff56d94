package domain

import (
	"context"

	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
)

type QuestDomain interface {
	GetList(ctx context.Context, req *model.GetListQuestRequest) (*model.GetListQuestResponse, error)
}

type questDomain struct {
	questRepo repository.QuestRepository
}

func NewQuestDomain(questRepo repository.QuestRepository) *questDomain {
	return &questDomain{questRepo: questRepo}
}

func (d *questDomain) GetList(
	ctx context.Context, req *model.GetListQuestRequest,
) (*model.GetListQuestResponse, error) {
	quests, err := d.questRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quests: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Quest{}
	for _, q := range quests {
		result = append(result, model.Quest{
			ID:       q.ID,
			Platform: string(q.Platform),
			Title:    q.Title,
			Points:   q.Points,
		})
	}

	return &model.GetListQuestResponse{Quests: result}, nil
}
