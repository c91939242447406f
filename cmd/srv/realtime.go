package main

import (
	"context"
	"fmt"

	"github.com/scavhunt/backend/internal/domain/huntclaim"
	"github.com/scavhunt/backend/internal/domain/realtime/hub"
	"github.com/scavhunt/backend/internal/middleware"
	"github.com/scavhunt/backend/pkg/kafka"
	"github.com/scavhunt/backend/pkg/prometheus"
	"github.com/scavhunt/backend/pkg/pubsub"
	"github.com/scavhunt/backend/pkg/router"
	"github.com/scavhunt/backend/pkg/xcontext"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

func (s *srv) startRealtime(*cli.Context) error {
	defer s.close()
	if err := s.bootstrap(); err != nil {
		return err
	}

	if err := s.loadRedisClient(); err != nil {
		return err
	}

	s.loadRepos()
	s.loadDomains()

	huntHub, err := hub.New(s.ctx)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, huntHub.Close)

	broadcaster, err := s.newBroadcaster(huntHub)
	if err != nil {
		return err
	}

	realtimeServer := hub.NewServer(
		huntHub,
		broadcaster,
		s.progressDomain,
		huntclaim.NewArbiter(s.huntRepo, s.userRepo),
	)

	cfg := xcontext.Configs(s.ctx)
	defaultRouter := router.New(s.ctx)
	defaultRouter.AddCloser(middleware.Logger())
	router.Websocket(defaultRouter, "/ws", realtimeServer.ServeWS)
	defaultRouter.Handle("GET /metrics", prometheus.NewHandler())

	return s.serve(cfg.RealtimeServer, defaultRouter.Handler(cfg.RealtimeServer))
}

// newBroadcaster fans events out through kafka when it is configured, so
// sessions connected to other instances receive them too.
func (s *srv) newBroadcaster(huntHub *hub.Hub) (hub.Broadcaster, error) {
	cfg := xcontext.Configs(s.ctx).Kafka
	if !cfg.Enabled() {
		xcontext.Logger(s.ctx).Infof("Kafka is not configured, events are delivered to this instance only")
		return hub.NewLocalBroadcaster(huntHub), nil
	}

	instanceID := uuid.NewString()
	publisher, err := kafka.NewPublisher(instanceID, cfg.Brokers())
	if err != nil {
		return nil, fmt.Errorf("create kafka publisher: %w", err)
	}
	s.closers = append(s.closers, func() error { return publisher.Stop(context.Background()) })

	broadcaster := hub.NewKafkaBroadcaster(huntHub, publisher, cfg.BroadcastTopic)

	// Every instance needs every event, so each one consumes with its own
	// group.
	var subscriber pubsub.Subscriber
	subscriber, err = kafka.NewSubscriber(
		fmt.Sprintf("%s-%s", cfg.GroupPrefix, instanceID),
		cfg.Brokers(),
		[]string{cfg.BroadcastTopic},
		broadcaster.Subscribe,
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka subscriber: %w", err)
	}
	s.closers = append(s.closers, func() error { return subscriber.Stop(context.Background()) })

	subscriber.Subscribe(s.ctx)
	xcontext.Logger(s.ctx).Infof("Subscribed to topic %s", cfg.BroadcastTopic)

	return broadcaster, nil
}
