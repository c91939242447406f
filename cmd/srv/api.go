package main

import (
	"github.com/scavhunt/backend/internal/middleware"
	"github.com/scavhunt/backend/pkg/prometheus"
	"github.com/scavhunt/backend/pkg/router"
	"github.com/scavhunt/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	defer s.close()
	if err := s.bootstrap(); err != nil {
		return err
	}

	if err := s.loadRedisClient(); err != nil {
		return err
	}

	s.loadRepos()
	s.loadDomains()

	cfg := xcontext.Configs(s.ctx)
	return s.serve(cfg.ApiServer, s.loadRouter().Handler(cfg.ApiServer))
}

func (s *srv) loadRouter() *router.Router {
	defaultRouter := router.New(s.ctx)
	defaultRouter.AddCloser(middleware.Logger())
	defaultRouter.AddCloser(middleware.Prometheus())

	// Public API.
	router.GET(defaultRouter, "/getActiveHunt", s.huntDomain.GetActiveHunt)
	router.GET(defaultRouter, "/getLeaderboard", s.huntDomain.GetLeaderboard)
	router.POST(defaultRouter, "/createPayment", s.huntDomain.CreatePayment)

	defaultRouter.Handle("GET /metrics", prometheus.NewHandler())
	return defaultRouter
}
