// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cinedex/internal/core/movie"
	"github.com/taibuivan/cinedex/internal/platform/apperr"
)

type listBody struct {
	Data  []movie.Movie `json:"data"`
	Total int           `json:"total"`
}

type itemBody struct {
	Data movie.Movie `json:"data"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func newRouter(h *harness) http.Handler {
	handler := movie.NewHandler(h.service, 5)
	router := chi.NewRouter()
	router.Mount("/movies", handler.Routes())
	handler.RegisterReferenceRoutes(router)
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))
	return out
}

/*
TestHandler_ListMovies verifies query criteria reach the derive step.
*/
func TestHandler_ListMovies(t *testing.T) {
	h := newHarness(t, sample()...)
	router := newRouter(h)

	recorder := serve(router, http.MethodGet, "/movies/?country=South+Korea&sort=year_asc", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decode[listBody](t, recorder)
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, []string{"4", "2", "3"}, ids(body.Data))
}

func TestHandler_ListMovies_BadCriteria(t *testing.T) {
	h := newHarness(t)
	recorder := serve(newRouter(h), http.MethodGet, "/movies/?sort=title", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, apperr.CodeValidation, decode[errorBody](t, recorder).Code)
}

func TestHandler_Featured(t *testing.T) {
	h := newHarness(t, sample()...)

	recorder := serve(newRouter(h), http.MethodGet, "/movies/featured?limit=2", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []string{"1", "2"}, ids(decode[listBody](t, recorder).Data))
}

func TestHandler_GetMovie_NotFound(t *testing.T) {
	h := newHarness(t)
	recorder := serve(newRouter(h), http.MethodGet, "/movies/missing", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_Trailer(t *testing.T) {
	withTrailer := heldMovie("a", "Alpha", 8)
	withTrailer.TrailerURL = "https://youtu.be/dQw4w9WgXcQ"
	h := newHarness(t, withTrailer, heldMovie("b", "Beta", 8))
	router := newRouter(h)

	recorder := serve(router, http.MethodGet, "/movies/a/trailer", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	trailer := decode[struct{ Data movie.Trailer }](t, recorder).Data
	assert.Equal(t, "dQw4w9WgXcQ", trailer.VideoID)

	recorder = serve(router, http.MethodGet, "/movies/b/trailer", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestHandler_CreateMovie verifies form defaults and the 201 response.
*/
func TestHandler_CreateMovie(t *testing.T) {
	h := newHarness(t)
	body := `{"title":"Alpha","country":"Japan","rating":7,"genre_ids":["g-drama"]}`

	recorder := serve(newRouter(h), http.MethodPost, "/movies/", body)

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	created := decode[itemBody](t, recorder).Data
	assert.Equal(t, movie.TypeMovie, created.Type)
	assert.NotZero(t, created.ReleaseYear)
	assert.Equal(t, 1, h.catalog.Len())
}

func TestHandler_CreateMovie_Partial(t *testing.T) {
	h := newHarness(t)
	h.gateway.fail("SetItemGenres", errTransport)
	body := `{"title":"Alpha","country":"Japan","release_year":2020,"genre_ids":["g-drama"]}`

	recorder := serve(newRouter(h), http.MethodPost, "/movies/", body)

	require.Equal(t, http.StatusMultiStatus, recorder.Code)
	assert.Equal(t, apperr.CodePartialRelation, decode[errorBody](t, recorder).Code)
	assert.Equal(t, 1, h.catalog.Len())
}

func TestHandler_CreateMovie_InvalidJSON(t *testing.T) {
	h := newHarness(t)
	recorder := serve(newRouter(h), http.MethodPost, "/movies/", "{")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Zero(t, h.gateway.total())
}

/*
TestHandler_UpdateMovie verifies a partial body keeps unspecified fields and genres.
*/
func TestHandler_UpdateMovie(t *testing.T) {
	h := newHarness(t, heldMovie("a", "Alpha", 8, genreDrama))

	recorder := serve(newRouter(h), http.MethodPatch, "/movies/a", `{"rating":9.5}`)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	updated := decode[itemBody](t, recorder).Data
	assert.Equal(t, 9.5, updated.Rating)
	assert.Equal(t, "Alpha", updated.Title)
	assert.Len(t, updated.Genres, 1)
	assert.Zero(t, h.gateway.count("SetItemGenres"))
}

func TestHandler_DeleteMovie(t *testing.T) {
	h := newHarness(t, heldMovie("a", "Alpha", 8))

	recorder := serve(newRouter(h), http.MethodDelete, "/movies/a", "")

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Zero(t, h.catalog.Len())
}

func TestHandler_ToggleMovie(t *testing.T) {
	h := newHarness(t, heldMovie("a", "Alpha", 8))
	router := newRouter(h)

	recorder := serve(router, http.MethodPost, "/movies/a/toggle/watch_later", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, decode[itemBody](t, recorder).Data.WatchLater)

	recorder = serve(router, http.MethodPost, "/movies/a/toggle/pinned", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_ReferenceData(t *testing.T) {
	h := newHarness(t)
	router := newRouter(h)

	recorder := serve(router, http.MethodGet, "/genres", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":3`)

	recorder = serve(router, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"countries":[{"id":"c1"`)

	recorder = serve(router, http.MethodPost, "/catalog/refresh", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}
