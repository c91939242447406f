package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/scavhunt/backend/pkg/xredis"
)

type MockRedisClient struct {
	SetFunc func(ctx context.Context, key, value string, ttl time.Duration) error
	GetFunc func(ctx context.Context, key string) (string, error)
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}

	return nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	return "", xredis.ErrNotFound
}

// MemoryRedisClient is an in-process xredis.Client. TTLs are ignored.
type MemoryRedisClient struct {
	mutex sync.Mutex
	data  map[string]string
}

func NewMemoryRedisClient() *MemoryRedisClient {
	return &MemoryRedisClient{data: map[string]string{}}
}

func (m *MemoryRedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.data[key] = value
	return nil
}

func (m *MemoryRedisClient) Get(ctx context.Context, key string) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	value, ok := m.data[key]
	if !ok {
		return "", xredis.ErrNotFound
	}

	return value, nil
}
