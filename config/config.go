package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs `toml:"database"`
	ApiServer ServerConfigs   `toml:"api_server"`
	Auth      AuthConfigs     `toml:"auth"`
	Session   SessionConfigs  `toml:"session"`
	Quest     QuestConfigs    `toml:"quest"`
	Redis     RedisConfigs    `toml:"redis"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`

	// AppOrigin is the origin of the web client. Cross-window handshake
	// messages from any other origin are dropped.
	AppOrigin string `toml:"app_origin"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type SessionConfigs struct {
	Secret string `toml:"secret"`
	Name   string `toml:"name"`
}

type QuestConfigs struct {
	// DefaultPoints is awarded for quests without a configured point value.
	DefaultPoints uint64 `toml:"default_points"`

	// HandshakeTimeout bounds how long an OAuth popup attempt may stay
	// pending before it is resolved as abandoned.
	HandshakeTimeout time.Duration `toml:"handshake_timeout"`

	Twitter  TwitterConfigs  `toml:"twitter"`
	Discord  DiscordConfigs  `toml:"discord"`
	Telegram TelegramConfigs `toml:"telegram"`
}

type TwitterConfigs struct {
	// APIEndpoints point to the internal twitter resolver service.
	APIEndpoints []string `toml:"api_endpoints"`

	// TargetHandle is the account the follow quest checks against.
	TargetHandle string `toml:"target_handle"`
}

type DiscordConfigs struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`

	BotToken string `toml:"bot_token"`
	GuildID  string `toml:"guild_id"`
}

type TelegramConfigs struct {
	BotToken string `toml:"bot_token"`
	ChatID   string `toml:"chat_id"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}
