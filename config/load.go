package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Load builds the configuration from an optional toml file, with environment
// variables taking precedence over file values.
func Load(path string) (Configs, error) {
	cfg := defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	overrideFromEnv(&cfg)
	return cfg, nil
}

func defaults() Configs {
	return Configs{
		Env: "local",
		ApiServer: ServerConfigs{
			Host:      "localhost",
			Port:      "8080",
			AppOrigin: "http://localhost:3000",
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 24 * time.Hour,
			},
		},
		Session: SessionConfigs{
			Name: "auth_session",
		},
		Quest: QuestConfigs{
			DefaultPoints:    100,
			HandshakeTimeout: 2 * time.Minute,
		},
	}
}

func overrideFromEnv(cfg *Configs) {
	setenv(&cfg.Env, "ENV")

	setenv(&cfg.Database.Host, "MYSQL_HOST")
	setenv(&cfg.Database.Port, "MYSQL_PORT")
	setenv(&cfg.Database.Database, "MYSQL_DATABASE")
	setenv(&cfg.Database.User, "MYSQL_USER")
	setenv(&cfg.Database.Password, "MYSQL_PASSWORD")

	setenv(&cfg.ApiServer.Host, "HOST")
	setenv(&cfg.ApiServer.Port, "PORT")
	setenv(&cfg.ApiServer.AppOrigin, "APP_ORIGIN")

	setenv(&cfg.Auth.TokenSecret, "TOKEN_SECRET")
	setenv(&cfg.Session.Secret, "SESSION_SECRET")

	setenv(&cfg.Quest.Twitter.TargetHandle, "TWITTER_TARGET_HANDLE")
	setenv(&cfg.Quest.Discord.ClientID, "DISCORD_CLIENT_ID")
	setenv(&cfg.Quest.Discord.ClientSecret, "DISCORD_CLIENT_SECRET")
	setenv(&cfg.Quest.Discord.RedirectURI, "DISCORD_REDIRECT_URI")
	setenv(&cfg.Quest.Discord.BotToken, "DISCORD_BOT_TOKEN")
	setenv(&cfg.Quest.Discord.GuildID, "DISCORD_SERVER_ID")
	setenv(&cfg.Quest.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setenv(&cfg.Quest.Telegram.ChatID, "TELEGRAM_CHAT_ID")

	setenv(&cfg.Redis.Addr, "REDIS_ADDR")
}

func setenv(target *string, name string) {
	if value, ok := os.LookupEnv(name); ok {
		*target = value
	}
}
