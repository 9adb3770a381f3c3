// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/taibuivan/cinedex/internal/core/category"
	"github.com/taibuivan/cinedex/internal/core/genre"
	"github.com/taibuivan/cinedex/internal/platform/apperr"
	"github.com/taibuivan/cinedex/internal/platform/metrics"
)

// BreakerSettings configures [BreakerGateway].
type BreakerSettings struct {
	Name        string
	MaxFailures uint32        // Consecutive transport failures before opening
	OpenTimeout time.Duration // How long the breaker stays open before probing
}

// BreakerGateway guards a [Gateway] with a circuit breaker.
//
// Only TRANSPORT_ERROR results count as failures. Validation and not-found
// answers prove the store is reachable and keep the breaker closed. While
// open, every call fails fast with TRANSPORT_ERROR.
type BreakerGateway struct {
	next    Gateway
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerGateway wraps next with a breaker built from settings.
func NewBreakerGateway(next Gateway, settings BreakerSettings, logger *slog.Logger) *BreakerGateway {
	maxFailures := settings.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("gateway_breaker_state_changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !apperr.IsCode(err, apperr.CodeTransport)
		},
	})

	return &BreakerGateway{next: next, breaker: breaker}
}

// State reports the breaker state.
func (gateway *BreakerGateway) State() gobreaker.State {
	return gateway.breaker.State()
}

func (gateway *BreakerGateway) FetchItems(context context.Context) ([]Movie, error) {
	return guard(gateway.breaker, func() ([]Movie, error) { return gateway.next.FetchItems(context) })
}

func (gateway *BreakerGateway) FetchGenres(context context.Context) ([]genre.Genre, error) {
	return guard(gateway.breaker, func() ([]genre.Genre, error) { return gateway.next.FetchGenres(context) })
}

func (gateway *BreakerGateway) FetchCategories(context context.Context) ([]category.Category, error) {
	return guard(gateway.breaker, func() ([]category.Category, error) { return gateway.next.FetchCategories(context) })
}

func (gateway *BreakerGateway) InsertItem(context context.Context, fields Patch) (Movie, error) {
	return guard(gateway.breaker, func() (Movie, error) { return gateway.next.InsertItem(context, fields) })
}

func (gateway *BreakerGateway) UpdateItem(context context.Context, id string, fields Patch) (Movie, error) {
	return guard(gateway.breaker, func() (Movie, error) { return gateway.next.UpdateItem(context, id, fields) })
}

func (gateway *BreakerGateway) DeleteItem(context context.Context, id string) error {
	_, err := guard(gateway.breaker, func() (struct{}, error) { return struct{}{}, gateway.next.DeleteItem(context, id) })
	return err
}

func (gateway *BreakerGateway) SetItemGenres(context context.Context, id string, genreIDs []string) error {
	_, err := guard(gateway.breaker, func() (struct{}, error) {
		return struct{}{}, gateway.next.SetItemGenres(context, id, genreIDs)
	})
	return err
}

func (gateway *BreakerGateway) ItemGenres(context context.Context, id string) ([]genre.Genre, error) {
	return guard(gateway.breaker, func() ([]genre.Genre, error) { return gateway.next.ItemGenres(context, id) })
}

// guard runs call through the breaker and maps rejections to TRANSPORT_ERROR.
func guard[T any](breaker *gobreaker.CircuitBreaker, call func() (T, error)) (T, error) {
	result, err := breaker.Execute(func() (interface{}, error) {
		return call()
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		var zero T
		return zero, apperr.Transport(fmt.Errorf("gateway breaker %s: %w", breaker.Name(), err))
	}

	value, _ := result.(T)
	return value, err
}
