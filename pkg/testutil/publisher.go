package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/scavhunt/backend/pkg/errorx"
	"github.com/scavhunt/backend/pkg/pubsub"
)

type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return errorx.New(errorx.NotImplemented, "Not implemented")
}

// LoopbackPubSub delivers every published pack to the registered handlers
// synchronously, standing in for a broker in tests.
type LoopbackPubSub struct {
	mutex    sync.RWMutex
	handlers map[string][]pubsub.SubscribeHandler
}

func NewLoopbackPubSub() *LoopbackPubSub {
	return &LoopbackPubSub{handlers: map[string][]pubsub.SubscribeHandler{}}
}

func (l *LoopbackPubSub) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	l.mutex.RLock()
	handlers := l.handlers[topic]
	l.mutex.RUnlock()

	for _, handler := range handlers {
		handler(ctx, pack, time.Now())
	}

	return nil
}

func (l *LoopbackPubSub) Handle(topic string, handler pubsub.SubscribeHandler) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.handlers[topic] = append(l.handlers[topic], handler)
}
