package main

import (
	"net/http"

	"github.com/questdrop/backend/internal/middleware"
	"github.com/questdrop/backend/pkg/router"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadEndpoint()
	s.loadAuth()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{s.configs.ApiServer.AppOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: corsHandler.Handler(s.router.Handler()),
	}

	s.logger.Infof("Starting server on %s", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())
	s.router.Before(middleware.WithRequestUser())

	// Auth API
	authRouter := s.router.Branch()
	authRouter.AddCloser(middleware.HandleSaveSession())
	{
		router.GET(authRouter, "/api/wallet/login", s.walletAuthDomain.Login)
		router.POST(authRouter, "/api/v1/auth/wallet", s.walletAuthDomain.Verify)
	}

	// Discord OAuth2 API
	router.POST(s.router, "/api/discord/token", s.oauth2Domain.ExchangeToken)
	router.GET(s.router, "/api/discord/begin", s.oauth2Domain.BeginHandshake)
	router.Websocket(s.router, "/api/discord/await", s.oauth2Domain.Await)
	router.GET(s.router, "/discord-callback", s.oauth2Domain.Callback)

	// Quest API
	router.GET(s.router, "/api/quests", s.questDomain.GetList)
	router.POST(s.router, "/api/quests/verify", s.claimedQuestDomain.Verify)
	router.GET(s.router, "/api/quests/completed", s.claimedQuestDomain.GetCompleted)

	// Statistic API
	router.GET(s.router, "/api/user/points", s.statisticDomain.GetUserPoints)
	router.GET(s.router, "/api/leaderboard", s.statisticDomain.GetLeaderboard)

	// Private API
	privateRouter := s.router.Branch()
	privateRouter.Before(middleware.Authenticate())
	{
		router.GET(privateRouter, "/api/user/me", s.walletAuthDomain.Me)
	}
}
