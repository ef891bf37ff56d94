package testutil

import (
	"context"
	"time"

	"github.com/gorilla/sessions"
	"github.com/questdrop/backend/config"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/migration"
	"github.com/questdrop/backend/pkg/authenticator"
	"github.com/questdrop/backend/pkg/logger"
	"github.com/questdrop/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		ApiServer: config.ServerConfigs{
			AppOrigin: "http://localhost:3000",
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "questdrop_session",
		},
		Quest: config.QuestConfigs{
			DefaultPoints:    100,
			HandshakeTimeout: time.Minute,
			Twitter: config.TwitterConfigs{
				TargetHandle: "questdrop",
			},
			Discord: config.DiscordConfigs{
				ClientID:     "discord-client-id",
				ClientSecret: "discord-client-secret",
				RedirectURI:  "http://localhost:3000/discord-callback",
				BotToken:     "discord-bot-token",
				GuildID:      "guild-id",
			},
			Telegram: config.TelegramConfigs{
				BotToken: "telegram-bot-token",
				ChatID:   "@questdrop",
			},
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.ERROR))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration))
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.Migrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}
