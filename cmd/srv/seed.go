package main

import (
	"github.com/scavhunt/backend/internal/domain/seed"
	"github.com/scavhunt/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startSeed(cctx *cli.Context) error {
	defer s.close()
	if err := s.bootstrap(); err != nil {
		return err
	}

	s.loadRepos()

	path := cctx.String("file")
	if path == "" {
		path = cctx.Args().First()
	}

	var def *seed.Definition
	var err error
	if path == "" {
		def, err = seed.Default()
	} else {
		def, err = seed.LoadFile(path)
	}
	if err != nil {
		return err
	}

	result, err := seed.NewSeeder(s.huntRepo, s.locationRepo, s.clueRepo).Run(s.ctx, def)
	if err != nil {
		return err
	}

	logger := xcontext.Logger(s.ctx)
	logger.Infof("Created hunt %s: %s", result.Hunt.ID, result.Hunt.Title)
	for _, location := range result.Locations {
		logger.Infof("Created location %s: %s", location.ID, location.Name)
	}
	for _, clue := range result.Clues {
		logger.Infof("Created clue #%d %s: %s", clue.Sequence, clue.ID, clue.Title)
	}

	logger.Infof("Database seeded successfully")
	return nil
}
