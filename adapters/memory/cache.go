// Package memory is the in-process interfaces.Cache used when no redis address is configured.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"myfleet/helpers"
	"myfleet/interfaces"
	"myfleet/service"
)

type entry[T any] struct {
	item    T
	expires time.Time
}

type memoryCache[T any] struct {
	clock interfaces.TimeProvider

	mu    sync.RWMutex
	items map[string]entry[T]
}

// NewCache creates an empty cache. Expiry is evaluated against clock on every read.
func NewCache[T any](clock interfaces.TimeProvider) *memoryCache[T] {
	return &memoryCache[T]{
		clock: helpers.NilPanic(clock, "memory.cache.go: clock is required"),
		items: make(map[string]entry[T]),
	}
}

func (m *memoryCache[T]) WriteValue(_ context.Context, key string, item T, ttlMs int) error {
	e := entry[T]{item: item}
	if ttlMs > 0 {
		e.expires = m.clock.Now().Add(time.Duration(ttlMs) * time.Millisecond)
	}

	m.mu.Lock()
	m.items[key] = e
	m.mu.Unlock()
	return nil
}

func (m *memoryCache[T]) ReadValue(_ context.Context, key string) (T, error) {
	now := m.clock.Now()

	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()

	if !ok || e.expired(now) {
		var zero T
		return zero, service.NewEntityNotFoundError(fmt.Sprintf("key '%s' not found", key), nil)
	}
	return e.item, nil
}

// ListAllValues drops expired entries while collecting the live ones.
func (m *memoryCache[T]) ListAllValues(_ context.Context) ([]T, error) {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]T, 0, len(m.items))
	for k, e := range m.items {
		if e.expired(now) {
			delete(m.items, k)
			continue
		}
		items = append(items, e.item)
	}
	if len(items) == 0 {
		return nil, service.NewEntityNotFoundError("Entity not found", nil)
	}
	return items, nil
}

func (e entry[T]) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}
