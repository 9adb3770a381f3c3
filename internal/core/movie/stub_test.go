// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cinedex/internal/core/category"
	"github.com/taibuivan/cinedex/internal/core/genre"
	"github.com/taibuivan/cinedex/internal/core/movie"
	"github.com/taibuivan/cinedex/internal/platform/apperr"
)

// # Fixtures

var (
	genreAction = genre.Genre{ID: "g-action", Name: "Action"}
	genreDrama  = genre.Genre{ID: "g-drama", Name: "Drama"}
	genreHorror = genre.Genre{ID: "g-horror", Name: "Horror"}

	errTransport = apperr.Transport(errors.New("connection reset by peer"))
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// validFields returns a form that passes every local rule.
func validFields(title string) movie.WriteFields {
	return movie.WriteFields{
		Title:       title,
		Description: "A story",
		Country:     "Japan",
		ReleaseYear: 2020,
		Type:        movie.TypeMovie,
		Rating:      7.5,
		GenreIDs:    []string{genreDrama.ID},
	}
}

// # Gateway Stub

// stubGateway is an in-memory store that counts calls and fails on demand.
type stubGateway struct {
	mu         sync.Mutex
	order      []string
	items      map[string]movie.Movie
	links      map[string][]string
	genres     []genre.Genre
	categories []category.Category
	calls      map[string]int
	failures   map[string]error
	nextID     int

	// clearBeforeFail makes a failing SetItemGenres drop the links first,
	// like a DELETE that landed before the INSERT batch failed.
	clearBeforeFail bool
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		items:      make(map[string]movie.Movie),
		links:      make(map[string][]string),
		genres:     []genre.Genre{genreAction, genreDrama, genreHorror},
		categories: []category.Category{{ID: "c1", Name: "Japan", Kind: category.KindCountry}},
		calls:      make(map[string]int),
		failures:   make(map[string]error),
	}
}

// put stores an item directly, bypassing call counters.
func (s *stubGateway) put(item movie.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		s.order = append(s.order, item.ID)
	}
	s.links[item.ID] = genre.IDs(item.Genres)
	item.Genres = nil
	s.items[item.ID] = item
}

func (s *stubGateway) fail(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = err
}

func (s *stubGateway) count(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *stubGateway) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := 0
	for _, n := range s.calls {
		sum += n
	}
	return sum
}

func (s *stubGateway) enter(method string) error {
	s.calls[method]++
	return s.failures[method]
}

func (s *stubGateway) resolve(id string) []genre.Genre {
	resolved := make([]genre.Genre, 0)
	for _, g := range s.genres {
		if slices.Contains(s.links[id], g.ID) {
			resolved = append(resolved, g)
		}
	}
	return resolved
}

func (s *stubGateway) FetchItems(context.Context) ([]movie.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("FetchItems"); err != nil {
		return nil, err
	}
	items := make([]movie.Movie, 0, len(s.order))
	for _, id := range s.order {
		item := s.items[id]
		item.Genres = s.resolve(id)
		items = append(items, item)
	}
	return items, nil
}

func (s *stubGateway) FetchGenres(context.Context) ([]genre.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("FetchGenres"); err != nil {
		return nil, err
	}
	return slices.Clone(s.genres), nil
}

func (s *stubGateway) FetchCategories(context.Context) ([]category.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("FetchCategories"); err != nil {
		return nil, err
	}
	return slices.Clone(s.categories), nil
}

func (s *stubGateway) InsertItem(_ context.Context, fields movie.Patch) (movie.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("InsertItem"); err != nil {
		return movie.Movie{}, err
	}
	s.nextID++
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	item := fields.ApplyTo(movie.Movie{ID: fmt.Sprintf("m-%d", s.nextID), CreatedAt: now, UpdatedAt: now})
	item.Genres = make([]genre.Genre, 0)
	s.order = append(s.order, item.ID)
	s.items[item.ID] = item
	return item, nil
}

func (s *stubGateway) UpdateItem(_ context.Context, id string, fields movie.Patch) (movie.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateItem"); err != nil {
		return movie.Movie{}, err
	}
	current, ok := s.items[id]
	if !ok {
		return movie.Movie{}, apperr.NotFound("Movie")
	}
	item := fields.ApplyTo(current)
	item.UpdatedAt = current.UpdatedAt.Add(time.Minute)
	s.items[id] = item
	item.Genres = nil
	return item, nil
}

func (s *stubGateway) DeleteItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeleteItem"); err != nil {
		return err
	}
	if _, ok := s.items[id]; !ok {
		return apperr.NotFound("Movie")
	}
	delete(s.items, id)
	delete(s.links, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}

func (s *stubGateway) SetItemGenres(_ context.Context, id string, genreIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("SetItemGenres"); err != nil {
		if s.clearBeforeFail {
			s.links[id] = nil
		}
		return err
	}
	s.links[id] = slices.Clone(genreIDs)
	return nil
}

func (s *stubGateway) ItemGenres(_ context.Context, id string) ([]genre.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ItemGenres"); err != nil {
		return nil, err
	}
	return s.resolve(id), nil
}

// # Recorder Stub

type outcome struct {
	operation string
	result    string
}

type stubRecorder struct {
	mu       sync.Mutex
	outcomes []outcome
	size     int
}

func (r *stubRecorder) Mutation(operation, result string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome{operation: operation, result: result})
}

func (r *stubRecorder) CatalogSize(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.size = count
}

func (r *stubRecorder) last() outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.outcomes) == 0 {
		return outcome{}
	}
	return r.outcomes[len(r.outcomes)-1]
}

// # Harness

type harness struct {
	gateway  *stubGateway
	catalog  *movie.Catalog
	recorder *stubRecorder
	service  *movie.Service
}

// newHarness seeds the stub store with items and loads the catalog from it.
func newHarness(t *testing.T, items ...movie.Movie) *harness {
	t.Helper()

	gateway := newStubGateway()
	for _, item := range items {
		gateway.put(item)
	}

	catalog := movie.NewCatalog()
	recorder := &stubRecorder{}
	service := movie.NewService(gateway, catalog, recorder, discardLogger())

	require.NoError(t, service.Refresh(context.Background()))

	// Seeding and loading are not part of the behaviour under test.
	gateway.mu.Lock()
	gateway.calls = make(map[string]int)
	gateway.mu.Unlock()

	return &harness{gateway: gateway, catalog: catalog, recorder: recorder, service: service}
}
