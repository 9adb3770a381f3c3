// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/cinedex/internal/platform/constants"
	"github.com/taibuivan/cinedex/internal/platform/redis"
)

// CachedRepository decorates a [Repository] with a Redis read-through cache.
type CachedRepository struct {
	next   Repository
	client *goredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository wraps next. A nil client turns the cache off.
func NewCachedRepository(next Repository, client *goredis.Client, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{next: next, client: client, ttl: ttl, logger: logger}
}

/*
List serves the genre list from Redis, falling back to the wrapped repository.

Parameters:
  - context: context.Context

Returns:
  - []Genre: Genres ordered by name
  - error: Errors from the wrapped repository only
*/
func (repository *CachedRepository) List(context context.Context) ([]Genre, error) {
	return redis.ReadThrough(context, repository.client, constants.RedisKeyGenres, repository.ttl, repository.logger, repository.next.List)
}

// Invalidate drops the cached list so the next read goes to the store.
func (repository *CachedRepository) Invalidate(context context.Context) error {
	return redis.Invalidate(context, repository.client, constants.RedisKeyGenres)
}
