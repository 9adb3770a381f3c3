// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cinedex/internal/core/genre"
)

type stubRepository struct {
	genres []genre.Genre
	err    error
	calls  int
}

func (s *stubRepository) List(context.Context) ([]genre.Genre, error) {
	s.calls++
	return s.genres, s.err
}

func TestHelpers(t *testing.T) {
	genres := []genre.Genre{{ID: "g1", Name: "Drama"}, {ID: "g2", Name: "Horror"}}

	assert.Equal(t, []string{"g1", "g2"}, genre.IDs(genres))
	assert.Empty(t, genre.IDs(nil))
	assert.True(t, genre.Contains(genres, "g2"))
	assert.False(t, genre.Contains(genres, "g3"))
}

/*
TestCachedRepository_Fallback verifies that an unreachable cache still serves
the list from the wrapped repository.
*/
func TestCachedRepository_Fallback(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	next := &stubRepository{genres: []genre.Genre{{ID: "g1", Name: "Drama"}}}
	repo := genre.NewCachedRepository(next, client, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	got, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, next.genres, got)
	assert.Equal(t, 1, next.calls)
}

/*
TestCachedRepository_Disabled verifies passthrough with no client, including errors.
*/
func TestCachedRepository_Disabled(t *testing.T) {
	sentinel := errors.New("boom")
	next := &stubRepository{err: sentinel}
	repo := genre.NewCachedRepository(next, nil, time.Minute, slog.Default())

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, repo.Invalidate(context.Background()))
}
