package migration

import (
	"context"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

func Migrate(ctx context.Context) error {
	if err := AutoMigrate(ctx); err != nil {
		return err
	}

	return seedQuests(ctx)
}

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.Quest{},
		&entity.ClaimedQuest{},
		&entity.Participant{},
	)
}

// seedQuests registers the default quest catalog. Existing rows are kept so
// operators can tune titles or points without a migration fight.
func seedQuests(ctx context.Context) error {
	quests := []entity.Quest{
		{
			Base:     entity.Base{ID: "1"},
			Platform: entity.PlatformTwitter,
			Status:   entity.QuestActive,
			Title:    "Follow us on Twitter",
			Points:   100,
		},
		{
			Base:     entity.Base{ID: "2"},
			Platform: entity.PlatformDiscord,
			Status:   entity.QuestActive,
			Title:    "Join our Discord server",
			Points:   100,
		},
		{
			Base:     entity.Base{ID: "3"},
			Platform: entity.PlatformTelegram,
			Status:   entity.QuestActive,
			Title:    "Join our Telegram channel",
			Points:   100,
		},
	}

	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&quests).Error
}
