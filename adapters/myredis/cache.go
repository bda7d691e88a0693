package myredis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"myfleet/helpers"
	"myfleet/service"

	"github.com/go-redis/redis/v8"
)

// scanBatch is the COUNT hint passed to SCAN when listing keys.
const scanBatch = 100

type redisCache[T any] struct {
	client    redis.UniversalClient
	prefix    string
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
}

// NewCache creates a redis implementation of interfaces.Cache. Every key is stored as
// "<prefix>:<key>". Panics on a nil client or codec and on an empty prefix.
func NewCache[T any](client redis.UniversalClient, prefix string, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) *redisCache[T] {
	return &redisCache[T]{
		client:    helpers.NilPanic(client, "myredis.cache.go: client is required"),
		prefix:    helpers.StrPanic(prefix, "myredis.cache.go: prefix is required"),
		marshal:   helpers.NilPanic(marshal, "myredis.cache.go: marshal is required"),
		unmarshal: helpers.NilPanic(unmarshal, "myredis.cache.go: unmarshal is required"),
	}
}

func (r *redisCache[T]) WriteValue(ctx context.Context, key string, item T, ttlMs int) error {
	bytes, err := r.marshal(item)
	if err != nil {
		return service.NewInternalServerError("Redis marshal item error", fmt.Errorf("can't marshal item of type %T, err: %w", item, err))
	}

	var ttl time.Duration
	if ttlMs > 0 {
		ttl = time.Duration(ttlMs) * time.Millisecond
	}
	if err := r.client.Set(ctx, r.generateKey(key), bytes, ttl).Err(); err != nil {
		return service.NewInternalServerError("Redis write key error", fmt.Errorf("can't write item of type %T to redis (key='%s'), err: %w", item, key, err))
	}

	return nil
}

func (r *redisCache[T]) ReadValue(ctx context.Context, key string) (T, error) {
	var zero T
	bytes, err := r.client.Get(ctx, r.generateKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, service.NewEntityNotFoundError(fmt.Sprintf("key '%s' not found", key), nil)
	}
	if err != nil {
		return zero, service.NewInternalServerError("Redis read key error", fmt.Errorf("can't read key '%s', err: %w", key, err))
	}

	item, err := r.unmarshal(bytes)
	if err != nil {
		return zero, service.NewInternalServerError("Redis unmarshal item error", fmt.Errorf("can't unmarshal key '%s' into %T, err: %w", key, zero, err))
	}
	return item, nil
}

// ListAllValues walks the prefix with SCAN, then fetches the values in one MGET. Keys that
// expire between the two calls and values that fail to decode are skipped.
func (r *redisCache[T]) ListAllValues(ctx context.Context) ([]T, error) {
	var fullKeys []string
	iter := r.client.Scan(ctx, 0, r.prefix+":*", scanBatch).Iterator()
	for iter.Next(ctx) {
		if strings.HasPrefix(iter.Val(), r.prefix+":") {
			fullKeys = append(fullKeys, iter.Val())
		}
	}
	if err := iter.Err(); err != nil {
		return nil, service.NewInternalServerError("Redis scan keys error", fmt.Errorf("redis scan '%s:*' error, err: %w", r.prefix, err))
	}
	if len(fullKeys) == 0 {
		return nil, service.NewEntityNotFoundError("Entity not found", nil)
	}

	values, err := r.client.MGet(ctx, fullKeys...).Result()
	if err != nil {
		return nil, service.NewInternalServerError("Redis get values error", fmt.Errorf("redis mget of %d keys error, err: %w", len(fullKeys), err))
	}

	items := make([]T, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		item, err := r.unmarshal([]byte(s))
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, service.NewEntityNotFoundError("Entity not found", nil)
	}

	return items, nil
}

func (r *redisCache[T]) generateKey(key string) string {
	return r.prefix + ":" + key
}
