package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/scavhunt/backend/pkg/pubsub"
	"github.com/scavhunt/backend/pkg/xcontext"

	"github.com/Shopify/sarama"
)

type subscriber struct {
	groupID     string
	brokerAddrs []string
	topics      []string
	client      sarama.ConsumerGroup
	handler     pubsub.SubscribeHandler
}

// NewSubscriber creates a consumer group subscriber. Every message of topics
// is passed to handler. Fresh groups start at the newest offset, so a
// restarted instance does not replay events that were meant for connections
// which no longer exist.
func NewSubscriber(
	groupID string,
	brokerAddrs []string,
	topics []string,
	handler pubsub.SubscribeHandler,
) (*subscriber, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	client, err := sarama.NewConsumerGroup(brokerAddrs, groupID, config)
	if err != nil {
		return nil, err
	}

	return &subscriber{
		groupID:     groupID,
		brokerAddrs: brokerAddrs,
		topics:      topics,
		client:      client,
		handler:     handler,
	}, nil
}

func (g *subscriber) Stop(ctx context.Context) error {
	return g.client.Close()
}

func (g *subscriber) Subscribe(ctx context.Context) {
	consumer := consumerGroupHandler{
		ready: make(chan bool),
		fn:    g.handler,
	}

	go func() {
		for {
			// Consume returns on every server-side rebalance, the session
			// needs to be recreated to get the new claims.
			if err := g.client.Consume(ctx, g.topics, &consumer); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}

				xcontext.Logger(ctx).Errorf("Error from consumer: %v", err)
			}

			if ctx.Err() != nil {
				return
			}

			consumer.ready = make(chan bool)
		}
	}()

	select {
	case <-consumer.ready:
	case <-ctx.Done():
	}
}

type consumerGroupHandler struct {
	ready chan bool
	fn    pubsub.SubscribeHandler
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

func (h *consumerGroupHandler) Cleanup(session sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			session.MarkMessage(message, "")
			h.fn(session.Context(), &pubsub.Pack{
				Key: message.Key,
				Msg: message.Value,
			}, timestampOf(message))

		case <-session.Context().Done():
			return nil
		}
	}
}

func timestampOf(message *sarama.ConsumerMessage) time.Time {
	if message.Timestamp.IsZero() {
		return time.Now()
	}

	return message.Timestamp
}
