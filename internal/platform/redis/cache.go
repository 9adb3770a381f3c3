// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

/*
ReadThrough serves a JSON-encoded value from Redis, loading and storing it on a miss.

Description: Cache faults never fail the read. A nil client, an unreachable
server or a corrupt payload all fall back to load, and the failure is logged
at warn level. Errors from load are returned unchanged and nothing is cached.

Parameters:
  - context: stdctx.Context
  - client: *redis.Client (nil disables caching)
  - key: string
  - ttl: time.Duration
  - logger: *slog.Logger
  - load: func(stdctx.Context) (T, error)

Returns:
  - T: Cached or freshly loaded value
  - error: Errors from load only
*/
func ReadThrough[T any](context stdctx.Context, client *redis.Client, key string, ttl time.Duration, logger *slog.Logger, load func(stdctx.Context) (T, error)) (T, error) {
	if client == nil {
		return load(context)
	}

	// 1. Try the cache
	raw, err := client.Get(context, key).Bytes()
	switch {
	case err == nil:
		var cached T
		jsonErr := json.Unmarshal(raw, &cached)
		if jsonErr == nil {
			return cached, nil
		}
		logger.WarnContext(context, "cache_payload_corrupt", slog.String("key", key), slog.String("error", jsonErr.Error()))
	case errors.Is(err, redis.Nil):
		// Miss
	default:
		logger.WarnContext(context, "cache_read_failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	// 2. Load from the source of truth
	value, err := load(context)
	if err != nil {
		return value, err
	}

	// 3. Store for the next reader
	payload, err := json.Marshal(value)
	if err != nil {
		logger.WarnContext(context, "cache_encode_failed", slog.String("key", key), slog.String("error", err.Error()))
		return value, nil
	}
	if err := client.Set(context, key, payload, ttl).Err(); err != nil {
		logger.WarnContext(context, "cache_write_failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return value, nil
}

// Invalidate drops the given keys. A nil client is a no-op.
func Invalidate(context stdctx.Context, client *redis.Client, keys ...string) error {
	if client == nil || len(keys) == 0 {
		return nil
	}
	return client.Del(context, keys...).Err()
}
