// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

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

// List serves the category list from Redis, falling back to the wrapped repository.
func (repository *CachedRepository) List(context context.Context) ([]Category, error) {
	return redis.ReadThrough(context, repository.client, constants.RedisKeyCategories, repository.ttl, repository.logger, repository.next.List)
}

// Invalidate drops the cached list.
func (repository *CachedRepository) Invalidate(context context.Context) error {
	return redis.Invalidate(context, repository.client, constants.RedisKeyCategories)
}
