// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/taibuivan/cinedex/internal/core/genre"
	"github.com/taibuivan/cinedex/internal/platform/apperr"
	"github.com/taibuivan/cinedex/internal/platform/constants"
	"github.com/taibuivan/cinedex/internal/platform/validate"
)

// # Operations

const (
	OpRefresh = "refresh"
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpToggle  = "toggle"
)

// Recorder receives the outcome of every coordinator operation.
type Recorder interface {
	Mutation(operation, outcome string, elapsed time.Duration)
	CatalogSize(count int)
}

type noopRecorder struct{}

func (noopRecorder) Mutation(string, string, time.Duration) {}
func (noopRecorder) CatalogSize(int)                        {}

// # Service Layer

// Service coordinates writes between the remote store and the local [Catalog].
//
// The catalog only changes after the store confirms a write. The one
// exception is an item the store reports as missing, which is dropped
// locally so the view stops offering it.
type Service struct {
	gateway  Gateway
	catalog  *Catalog
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs the coordinator. A nil recorder disables metrics.
func NewService(gateway Gateway, catalog *Catalog, recorder Recorder, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Service{
		gateway:  gateway,
		catalog:  catalog,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Catalog returns the catalog this service keeps in sync.
func (service *Service) Catalog() *Catalog {
	return service.catalog
}

// Get returns a held item or NOT_FOUND.
func (service *Service) Get(id string) (Movie, error) {
	item, ok := service.catalog.Get(id)
	if !ok {
		return Movie{}, apperr.NotFound(resourceMovie)
	}
	return item, nil
}

// # Loading

/*
Refresh reloads items, genres and categories from the store.

Description: The catalog is replaced only if all three reads succeed, so a
failed refresh leaves the previous snapshot in place.

Parameters:
  - context: context.Context

Returns:
  - error: TRANSPORT_ERROR if any read failed
*/
func (service *Service) Refresh(context context.Context) (err error) {
	started := time.Now()
	defer func() { service.observe(context, OpRefresh, "", started, err) }()

	items, err := service.gateway.FetchItems(context)
	if err != nil {
		return err
	}

	genres, err := service.gateway.FetchGenres(context)
	if err != nil {
		return err
	}

	categories, err := service.gateway.FetchCategories(context)
	if err != nil {
		return err
	}

	service.catalog.ReplaceAll(items)
	service.catalog.SetGenres(genres)
	service.catalog.SetCategories(categories)

	service.logger.InfoContext(context, "catalog_refreshed",
		slog.Int("items", len(items)),
		slog.Int("genres", len(genres)),
		slog.Int("categories", len(categories)),
	)

	return nil
}

// # Mutations

/*
Create validates and stores a new item, then links its genres.

Description: Invalid input is rejected before any store call. Once the
insert commits the item is always added to the catalog; if the genre links
cannot be written it is added without genres and PARTIAL_RELATION_FAILURE is
returned alongside it.

Parameters:
  - context: context.Context
  - fields: WriteFields

Returns:
  - Movie: The committed item (also set on PARTIAL_RELATION_FAILURE)
  - error: VALIDATION_ERROR, TRANSPORT_ERROR or PARTIAL_RELATION_FAILURE
*/
func (service *Service) Create(context context.Context, fields WriteFields) (item Movie, err error) {
	started := time.Now()
	defer func() { service.observe(context, OpCreate, item.ID, started, err) }()

	// 1. Local validation
	if err := service.validate(fields, true); err != nil {
		return Movie{}, err
	}

	// 2. Scalar insert
	item, err = service.gateway.InsertItem(context, fields.Patch())
	if err != nil {
		return Movie{}, err
	}

	// 3. Relation sync
	genres, relationErr := service.syncGenres(context, item.ID, fields.GenreIDs)
	if relationErr != nil {
		item.Genres = make([]genre.Genre, 0)
		service.catalog.Upsert(item)
		return item, apperr.PartialRelation(relationErr)
	}

	item.Genres = genres
	service.catalog.Upsert(item)
	return item, nil
}

/*
Update writes an edited item back to the store.

Description: Genres are only synced when fields.GenreIDs is non-nil;
otherwise the held genres are kept. If the scalar write succeeds but the
genre links fail, the catalog gets the committed scalars with the genres it
held before and PARTIAL_RELATION_FAILURE is returned. A NOT_FOUND from the
store drops the stale local copy.

Parameters:
  - context: context.Context
  - id: string
  - fields: WriteFields

Returns:
  - Movie: The committed item (also set on PARTIAL_RELATION_FAILURE)
  - error: VALIDATION_ERROR, NOT_FOUND, TRANSPORT_ERROR or PARTIAL_RELATION_FAILURE
*/
func (service *Service) Update(context context.Context, id string, fields WriteFields) (item Movie, err error) {
	started := time.Now()
	defer func() { service.observe(context, OpUpdate, id, started, err) }()

	if err := service.validate(fields, fields.GenreIDs != nil); err != nil {
		return Movie{}, err
	}

	prior, held := service.catalog.Get(id)

	committed, err := service.gateway.UpdateItem(context, id, fields.Patch())
	if err != nil {
		service.dropIfMissing(id, err)
		return Movie{}, err
	}

	priorGenres := func() []genre.Genre {
		if held {
			return prior.Genres
		}
		return service.resolveGenres(context, id)
	}

	// Scalars only
	if fields.GenreIDs == nil {
		committed.Genres = priorGenres()
		service.catalog.Upsert(committed)
		return committed, nil
	}

	genres, relationErr := service.syncGenres(context, id, fields.GenreIDs)
	if relationErr != nil {
		// The failed write may have cleared the links remotely
		current, readErr := service.gateway.ItemGenres(context, id)
		if readErr != nil {
			current = priorGenres()
		}
		committed.Genres = current
		service.catalog.Upsert(committed)
		return committed, apperr.PartialRelation(relationErr)
	}

	committed.Genres = genres
	service.catalog.Upsert(committed)
	return committed, nil
}

/*
Delete removes an item from the store and the catalog.

Description: An item the store no longer knows is treated as deleted.
Any other failure leaves the catalog untouched.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: TRANSPORT_ERROR on store failure
*/
func (service *Service) Delete(context context.Context, id string) (err error) {
	started := time.Now()
	defer func() { service.observe(context, OpDelete, id, started, err) }()

	if err := service.gateway.DeleteItem(context, id); err != nil && !apperr.IsCode(err, apperr.CodeNotFound) {
		return err
	}

	service.catalog.Remove(id)
	return nil
}

/*
Toggle flips one marker on a held item.

Description: The current value is read from the catalog and only the
negated flag is sent. On success only that flag changes locally, so edits
that landed meanwhile are kept. Two toggles of the same flag in flight race
and the last completion wins.

Parameters:
  - context: context.Context
  - flag: Flag
  - id: string

Returns:
  - Movie: The item after the flip
  - error: VALIDATION_ERROR, NOT_FOUND or TRANSPORT_ERROR
*/
func (service *Service) Toggle(context context.Context, flag Flag, id string) (item Movie, err error) {
	started := time.Now()
	defer func() { service.observe(context, OpToggle, id, started, err) }()

	if !flag.IsValid() {
		return Movie{}, validate.RequiredError("flag", "Must be one of: favorite, watched, watch_later")
	}

	current, ok := service.catalog.Get(id)
	if !ok {
		return Movie{}, apperr.NotFound(resourceMovie)
	}

	patch := FlagPatch(flag, !current.Flag(flag))
	committed, err := service.gateway.UpdateItem(context, id, patch)
	if err != nil {
		service.dropIfMissing(id, err)
		return Movie{}, err
	}

	// Re-read so concurrent edits survive; a concurrent delete wins.
	latest, ok := service.catalog.Get(id)
	if !ok {
		return patch.ApplyTo(current), nil
	}

	item = patch.ApplyTo(latest)
	if !committed.UpdatedAt.IsZero() {
		item.UpdatedAt = committed.UpdatedAt
	}
	service.catalog.Upsert(item)
	return item, nil
}

// # Helpers

func (service *Service) validate(fields WriteFields, requireGenres bool) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, fields.Title).MaxLen(FieldTitle, fields.Title, constants.MaxTitleLength)
	validator.Required(FieldCountry, fields.Country)

	// Release year
	if fields.ReleaseYear == 0 {
		validator.Custom(FieldReleaseYear, true, "This field is required")
	} else {
		validator.Range(FieldReleaseYear, fields.ReleaseYear, constants.MinReleaseYear, service.now().Year())
	}

	validator.Custom(FieldRating, math.IsNaN(fields.Rating), "Must be a number")
	validator.FloatRange(FieldRating, fields.Rating, constants.MinRating, constants.MaxRating)
	validator.OneOf(FieldType, string(fields.Type), string(TypeMovie), string(TypeSeries))
	validator.URL(FieldPosterURL, fields.PosterURL).URL(FieldTrailerURL, fields.TrailerURL)

	if requireGenres {
		validator.Custom(FieldGenreIDs, len(fields.GenreIDs) == 0, "Select at least one genre")
	}

	return validator.Err()
}

// syncGenres writes the relation and resolves it for display. If the write
// succeeded but the read back failed, genres are resolved from the held
// reference list instead.
func (service *Service) syncGenres(context context.Context, id string, genreIDs []string) ([]genre.Genre, error) {
	if err := service.gateway.SetItemGenres(context, id, genreIDs); err != nil {
		return nil, err
	}

	genres, err := service.gateway.ItemGenres(context, id)
	if err == nil {
		return genres, nil
	}

	service.logger.WarnContext(context, "item_genres_resolve_failed",
		slog.String("id", id),
		slog.String("error", err.Error()),
	)

	reference := service.catalog.Genres()
	resolved := make([]genre.Genre, 0, len(genreIDs))
	for _, g := range reference {
		for _, wanted := range genreIDs {
			if g.ID == wanted {
				resolved = append(resolved, g)
				break
			}
		}
	}
	return resolved, nil
}

// resolveGenres reads the relation for an item that is not held locally.
func (service *Service) resolveGenres(context context.Context, id string) []genre.Genre {
	genres, err := service.gateway.ItemGenres(context, id)
	if err != nil {
		return make([]genre.Genre, 0)
	}
	return genres
}

func (service *Service) dropIfMissing(id string, err error) {
	if apperr.IsCode(err, apperr.CodeNotFound) {
		service.catalog.Remove(id)
	}
}

func (service *Service) observe(context context.Context, operation, id string, started time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = strings.ToLower(apperr.CodeOf(err))
	}

	service.recorder.Mutation(operation, outcome, time.Since(started))
	service.recorder.CatalogSize(service.catalog.Len())

	if err != nil {
		service.logger.WarnContext(context, "mutation_failed",
			slog.String("operation", operation),
			slog.String("id", id),
			slog.String("outcome", outcome),
			slog.String("error", err.Error()),
		)
		return
	}

	service.logger.DebugContext(context, "mutation_committed",
		slog.String("operation", operation),
		slog.String("id", id),
	)
}
