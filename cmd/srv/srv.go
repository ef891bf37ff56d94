package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/sessions"
	"github.com/questdrop/backend/config"
	"github.com/questdrop/backend/internal/domain"
	"github.com/questdrop/backend/internal/domain/handshake"
	"github.com/questdrop/backend/internal/domain/questverify"
	"github.com/questdrop/backend/internal/domain/statistic"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/api/discord"
	"github.com/questdrop/backend/pkg/api/telegram"
	"github.com/questdrop/backend/pkg/api/twitter"
	"github.com/questdrop/backend/pkg/authenticator"
	"github.com/questdrop/backend/pkg/logger"
	"github.com/questdrop/backend/pkg/router"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/questdrop/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs
	logger  logger.Logger

	db          *gorm.DB
	redisClient xredis.Client

	discordEndpoint  discord.IEndpoint
	telegramEndpoint telegram.IEndpoint
	twitterEndpoint  twitter.IEndpoint

	questRepo        repository.QuestRepository
	claimedQuestRepo repository.ClaimedQuestRepository
	participantRepo  repository.ParticipantRepository

	leaderboard statistic.Leaderboard
	coordinator *handshake.Coordinator

	oauth2Domain       domain.OAuth2Domain
	claimedQuestDomain domain.ClaimedQuestDomain
	questDomain        domain.QuestDomain
	statisticDomain    domain.StatisticDomain
	walletAuthDomain   domain.WalletAuthDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}
	if _, err := os.Stat(configPath); err != nil {
		configPath = ""
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(err)
	}

	s.configs = &cfg
	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadRedis() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadEndpoint() {
	s.discordEndpoint = discord.New(s.configs.Quest.Discord)
	s.telegramEndpoint = telegram.New(s.configs.Quest.Telegram)
	s.twitterEndpoint = twitter.New(s.configs.Quest.Twitter)
}

func (s *srv) loadAuth() {
	tokenEngine := authenticator.NewTokenEngine[model.AccessToken](
		s.configs.Auth.TokenSecret,
		s.configs.Auth.AccessToken.Expiration,
	)
	s.ctx = xcontext.WithTokenEngine(s.ctx, tokenEngine)

	sessionStore := sessions.NewCookieStore([]byte(s.configs.Session.Secret))
	s.ctx = xcontext.WithSessionStore(s.ctx, sessionStore)
}

func (s *srv) loadRepos() {
	s.questRepo = repository.NewQuestRepository()
	s.claimedQuestRepo = repository.NewClaimedQuestRepository()
	s.participantRepo = repository.NewParticipantRepository()
}

func (s *srv) loadDomains() {
	s.leaderboard = statistic.New(s.participantRepo, s.redisClient)
	s.coordinator = handshake.NewCoordinator(
		s.configs.ApiServer.AppOrigin,
		s.configs.Quest.HandshakeTimeout,
	)

	verifierFactory := questverify.NewFactory(
		s.discordEndpoint,
		s.telegramEndpoint,
		s.twitterEndpoint,
	)

	s.oauth2Domain = domain.NewOAuth2Domain(
		s.discordEndpoint, s.coordinator, s.configs.ApiServer.AppOrigin)
	s.claimedQuestDomain = domain.NewClaimedQuestDomain(
		s.claimedQuestRepo, s.questRepo, s.participantRepo, verifierFactory, s.leaderboard)
	s.questDomain = domain.NewQuestDomain(s.questRepo)
	s.statisticDomain = domain.NewStatisticDomain(s.participantRepo, s.leaderboard)
	s.walletAuthDomain = domain.NewWalletAuthDomain(s.participantRepo)
}
