// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/cinedex/internal/core/category"
	"github.com/taibuivan/cinedex/internal/platform/apperr"
	requestutil "github.com/taibuivan/cinedex/internal/platform/request"
	"github.com/taibuivan/cinedex/internal/platform/respond"
)

// # Handler Implementation

// Handler exposes the catalog over JSON.
//
// Reads are served from the in-memory catalog; writes go through the
// [Service] so the catalog only moves after the store confirms.
type Handler struct {
	service       *Service
	featuredLimit int
}

// NewHandler constructs a movie [Handler].
func NewHandler(service *Service, featuredLimit int) *Handler {
	return &Handler{service: service, featuredLimit: featuredLimit}
}

// Trailer is the player payload for an item's trailer.
type Trailer struct {
	VideoID  string `json:"video_id"`
	EmbedURL string `json:"embed_url"`
}

// Routes returns a [chi.Router] with the item endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Browsing
	router.Get("/", handler.listMovies)
	router.Get("/featured", handler.listFeatured)
	router.Get("/{id}", handler.getMovie)
	router.Get("/{id}/trailer", handler.getTrailer)

	// ## Mutations
	router.Post("/", handler.createMovie)
	router.Patch("/{id}", handler.updateMovie)
	router.Delete("/{id}", handler.deleteMovie)
	router.Post("/{id}/toggle/{flag}", handler.toggleMovie)

	return router
}

// RegisterReferenceRoutes adds the genre, category and refresh endpoints.
func (handler *Handler) RegisterReferenceRoutes(router chi.Router) {
	router.Get("/genres", handler.listGenres)
	router.Get("/categories", handler.listCategories)
	router.Post("/catalog/refresh", handler.refreshCatalog)
}

// # Browsing

func (handler *Handler) listMovies(writer http.ResponseWriter, request *http.Request) {
	criteria, err := ParseCriteria(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	visible := Derive(handler.service.Catalog().Items(), criteria)
	respond.List(writer, visible, len(visible))
}

func (handler *Handler) listFeatured(writer http.ResponseWriter, request *http.Request) {
	limit := requestutil.QueryInt(request, "limit", handler.featuredLimit)
	featured := Featured(handler.service.Catalog().Items(), limit)
	respond.List(writer, featured, len(featured))
}

func (handler *Handler) getMovie(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.Get(requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) getTrailer(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.Get(requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID, ok := TrailerID(item.TrailerURL)
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Trailer"))
		return
	}

	respond.OK(writer, Trailer{VideoID: videoID, EmbedURL: EmbedURL(videoID)})
}

// # Mutations

func (handler *Handler) createMovie(writer http.ResponseWriter, request *http.Request) {
	fields := NewWriteFields(time.Now())
	if err := requestutil.DecodeJSON(request, &fields); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Create(request.Context(), fields)
	if writePartial(writer, item, err) {
		return
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

// updateMovie applies a partial body over the held item; genre_ids is only
// synced when present in the body.
func (handler *Handler) updateMovie(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var fields WriteFields
	if held, ok := handler.service.Catalog().Get(id); ok {
		fields = EditFields(held)
	}
	fields.GenreIDs = nil

	if err := requestutil.DecodeJSON(request, &fields); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Update(request.Context(), id, fields)
	if writePartial(writer, item, err) {
		return
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) deleteMovie(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) toggleMovie(writer http.ResponseWriter, request *http.Request) {
	flag := Flag(requestutil.Param(request, "flag"))

	item, err := handler.service.Toggle(request.Context(), flag, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

// # Reference Data

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres := handler.service.Catalog().Genres()
	respond.List(writer, genres, len(genres))
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, category.Partition(handler.service.Catalog().Categories()))
}

func (handler *Handler) refreshCatalog(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Refresh(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"items": handler.service.Catalog().Len()})
}

// writePartial renders a committed-but-incomplete save and reports whether it did.
func writePartial(writer http.ResponseWriter, item Movie, err error) bool {
	if !apperr.IsCode(err, apperr.CodePartialRelation) {
		return false
	}
	respond.Partial(writer, item, apperr.As(err))
	return true
}
