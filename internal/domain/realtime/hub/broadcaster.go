package hub

import (
	"context"
	"encoding/json"
	"time"

	"github.com/scavhunt/backend/internal/domain/realtime/event"
	"github.com/scavhunt/backend/pkg/pubsub"
	"github.com/scavhunt/backend/pkg/xcontext"
)

// Broadcaster fans an event out to the sessions selected by its metadata,
// wherever they are connected.
type Broadcaster interface {
	Broadcast(ctx context.Context, req *event.EventRequest) error
}

type localBroadcaster struct {
	hub *Hub
}

// NewLocalBroadcaster delivers to the sessions of this process only.
func NewLocalBroadcaster(hub *Hub) *localBroadcaster {
	return &localBroadcaster{hub: hub}
}

func (b *localBroadcaster) Broadcast(ctx context.Context, req *event.EventRequest) error {
	b.hub.Deliver(ctx, req)
	return nil
}

type kafkaBroadcaster struct {
	hub       *Hub
	publisher pubsub.Publisher
	topic     string
}

// NewKafkaBroadcaster publishes every event to topic. Each instance consumes
// the topic with its own consumer group and passes messages to Subscribe, so
// every instance delivers every event to its own sessions.
func NewKafkaBroadcaster(hub *Hub, publisher pubsub.Publisher, topic string) *kafkaBroadcaster {
	return &kafkaBroadcaster{hub: hub, publisher: publisher, topic: topic}
}

func (b *kafkaBroadcaster) Broadcast(ctx context.Context, req *event.EventRequest) error {
	msg, err := json.Marshal(req)
	if err != nil {
		return err
	}

	return b.publisher.Publish(ctx, b.topic, &pubsub.Pack{
		Key: []byte(req.Metadata.HuntID),
		Msg: msg,
	})
}

// Subscribe is the pubsub.SubscribeHandler which delivers published events to
// the local sessions.
func (b *kafkaBroadcaster) Subscribe(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var req event.EventRequest
	if err := json.Unmarshal(pack.Msg, &req); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal event request: %v", err)
		return
	}

	b.hub.Deliver(ctx, &req)
}
