package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "questdrop"
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Description: `Serves the quest, oauth2 and leaderboard apis.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database and seed the quest catalog",
			Description: `Creates or updates the database schema, then seeds the default quests.`,
		},
	}

	s.app = app
}
