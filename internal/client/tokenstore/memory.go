package tokenstore

import (
	"context"
	"sync"
)

// Memory keeps the session in process memory. It is used with the
// "memory" store driver and in tests.
type Memory struct {
	mu       sync.RWMutex
	tokenKey string
	values   map[string][]byte
}

func NewMemory(tokenKey string) *Memory {
	return &Memory{tokenKey: tokenKey, values: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context) (string, bool) {
	v, ok := m.Load(ctx, m.tokenKey)
	if !ok || len(v) == 0 {
		return "", false
	}
	return string(v), true
}

func (m *Memory) Set(ctx context.Context, token string) {
	if token == "" {
		m.Clear(ctx)
		return
	}
	m.Save(ctx, m.tokenKey, []byte(token))
}

func (m *Memory) Clear(ctx context.Context) {
	m.Reset(ctx)
}

func (m *Memory) IsAuthenticated(ctx context.Context) bool {
	_, ok := m.Get(ctx)
	return ok
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

func (m *Memory) Save(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
}

func (m *Memory) Reset(_ context.Context, keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, m.tokenKey)
	for _, k := range keys {
		delete(m.values, k)
	}
}
