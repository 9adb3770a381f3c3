// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie_test

import (
	"context"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cinedex/internal/core/movie"
	"github.com/taibuivan/cinedex/internal/platform/apperr"
)

func newBreaker(next movie.Gateway) *movie.BreakerGateway {
	return movie.NewBreakerGateway(next, movie.BreakerSettings{
		Name:        "test-gateway",
		MaxFailures: 3,
		OpenTimeout: time.Minute,
	}, discardLogger())
}

/*
TestBreakerGateway_OpensOnTransport verifies the breaker trips after
consecutive transport failures and then fails fast.
*/
func TestBreakerGateway_OpensOnTransport(t *testing.T) {
	stub := newStubGateway()
	stub.fail("FetchItems", errTransport)
	gateway := newBreaker(stub)

	for i := 0; i < 3; i++ {
		_, err := gateway.FetchItems(context.Background())
		assert.True(t, apperr.IsCode(err, apperr.CodeTransport))
	}
	require.Equal(t, gobreaker.StateOpen, gateway.State())

	// Open: the store is not called
	err := gateway.DeleteItem(context.Background(), "a")
	assert.True(t, apperr.IsCode(err, apperr.CodeTransport))
	assert.Zero(t, stub.count("DeleteItem"))
	assert.Equal(t, 3, stub.count("FetchItems"))
}

/*
TestBreakerGateway_IgnoresDomainErrors verifies that validation and not-found
answers keep the breaker closed.
*/
func TestBreakerGateway_IgnoresDomainErrors(t *testing.T) {
	stub := newStubGateway()
	stub.fail("InsertItem", apperr.ValidationError("rejected"))
	gateway := newBreaker(stub)

	for i := 0; i < 5; i++ {
		_, err := gateway.InsertItem(context.Background(), movie.Patch{})
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

		_, err = gateway.UpdateItem(context.Background(), "missing", movie.Patch{})
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	}

	assert.Equal(t, gobreaker.StateClosed, gateway.State())
	assert.Equal(t, 5, stub.count("InsertItem"))
}

func TestBreakerGateway_PassesResults(t *testing.T) {
	stub := newStubGateway()
	gateway := newBreaker(stub)

	item, err := gateway.InsertItem(context.Background(), validFields("Alpha").Patch())
	require.NoError(t, err)
	require.NoError(t, gateway.SetItemGenres(context.Background(), item.ID, []string{genreDrama.ID}))

	genres, err := gateway.ItemGenres(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Len(t, genres, 1)

	items, err := gateway.FetchItems(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)

	reference, err := gateway.FetchGenres(context.Background())
	require.NoError(t, err)
	assert.Len(t, reference, 3)

	categories, err := gateway.FetchCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}
