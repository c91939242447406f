package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "Scavhunt"
	s.app.Usage = "Victoria BC scavenger hunt backend"
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Used to serve the hunt, payment and leaderboard http apis.`,
		},
		{
			Action:      s.startRealtime,
			Name:        "realtime",
			Usage:       "Start service realtime",
			Flags:       []cli.Flag{},
			Category:    "Websocket",
			Description: `Used to direct connection to client via websocket, it broadcasts progress, leaderboard and hunt events.`,
		},
		{
			Action:    s.startSeed,
			Name:      "seed",
			Usage:     "Seed a hunt with its locations and clues",
			ArgsUsage: "[huntFile]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "file",
					Aliases: []string{"f"},
					Usage:   "TOML hunt definition, the Victoria BC hunt is used if empty",
				},
			},
			Category:    "Database",
			Description: `Used to create an active hunt in an empty database.`,
		},
	}
}
