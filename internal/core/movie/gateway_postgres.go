// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	stdctx "context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/cinedex/internal/core/category"
	"github.com/taibuivan/cinedex/internal/core/genre"
	"github.com/taibuivan/cinedex/internal/platform/apperr"
	"github.com/taibuivan/cinedex/internal/platform/database/schema"
	"github.com/taibuivan/cinedex/internal/platform/dberr"
	"github.com/taibuivan/cinedex/pkg/slice"
	"github.com/taibuivan/cinedex/pkg/uuid"
)

const resourceMovie = "Movie"

// PostgresGateway implements [Gateway] on the catalog schema.
//
// Genre and category reads are delegated to their repositories so that a
// cached repository can sit in front of the store.
type PostgresGateway struct {
	pool       *pgxpool.Pool
	genres     genre.Repository
	categories category.Repository
	timeout    time.Duration
}

// NewPostgresGateway constructs the gateway. A positive timeout bounds every call.
func NewPostgresGateway(pool *pgxpool.Pool, genres genre.Repository, categories category.Repository, timeout time.Duration) *PostgresGateway {
	return &PostgresGateway{
		pool:       pool,
		genres:     genres,
		categories: categories,
		timeout:    timeout,
	}
}

// # Reads

/*
FetchItems loads the whole catalog with genres resolved.

Description: Genres are aggregated with json_agg in a correlated sub-query,
so the catalog hydrates in a single round trip.

Parameters:
  - context: stdctx.Context

Returns:
  - []Movie: Items ordered by creation time
  - error: TRANSPORT_ERROR on store failure
*/
func (gateway *PostgresGateway) FetchItems(context stdctx.Context) ([]Movie, error) {
	context, cancel := gateway.bound(context)
	defer cancel()

	m := schema.CatalogMovie
	query := fmt.Sprintf(`
		SELECT %s,
			COALESCE((
				SELECT json_agg(json_build_object('id', g.%s, 'name', g.%s) ORDER BY g.%s)
				FROM %s g
				JOIN %s mg ON g.%s = mg.%s
				WHERE mg.%s = m.%s
			), '[]') AS genres
		FROM %s m
		ORDER BY m.%s ASC, m.%s ASC
	`,
		qualified("m", m.Columns()),
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Name,
		schema.CatalogGenre.Table,
		schema.CatalogMovieGenre.Table, schema.CatalogGenre.ID, schema.CatalogMovieGenre.GenreID,
		schema.CatalogMovieGenre.MovieID, m.ID,
		m.Table,
		m.CreatedAt, m.ID,
	)

	rows, err := gateway.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, resourceMovie)
	}
	defer rows.Close()

	items := make([]Movie, 0)
	for rows.Next() {
		var (
			item       Movie
			genresJSON []byte
		)
		if err := rows.Scan(append(scanTargets(&item), &genresJSON)...); err != nil {
			return nil, dberr.Wrap(err, resourceMovie)
		}
		if err := json.Unmarshal(genresJSON, &item.Genres); err != nil {
			return nil, apperr.Transport(fmt.Errorf("postgres: failed to unmarshal genres: %w", err))
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceMovie)
	}

	return items, nil
}

// FetchGenres delegates to the genre repository.
func (gateway *PostgresGateway) FetchGenres(context stdctx.Context) ([]genre.Genre, error) {
	context, cancel := gateway.bound(context)
	defer cancel()

	genres, err := gateway.genres.List(context)
	return genres, dberr.Wrap(err, "Genres")
}

// FetchCategories delegates to the category repository.
func (gateway *PostgresGateway) FetchCategories(context stdctx.Context) ([]category.Category, error) {
	context, cancel := gateway.bound(context)
	defer cancel()

	categories, err := gateway.categories.List(context)
	return categories, dberr.Wrap(err, "Categories")
}

// ItemGenres resolves the genres currently linked to an item, ordered by name.
func (gateway *PostgresGateway) ItemGenres(context stdctx.Context, id string) ([]genre.Genre, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceMovie)
	}

	context, cancel := gateway.bound(context)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT g.%s, g.%s
		FROM %s g
		JOIN %s mg ON g.%s = mg.%s
		WHERE mg.%s = $1
		ORDER BY g.%s ASC
	`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name,
		schema.CatalogGenre.Table,
		schema.CatalogMovieGenre.Table, schema.CatalogGenre.ID, schema.CatalogMovieGenre.GenreID,
		schema.CatalogMovieGenre.MovieID,
		schema.CatalogGenre.Name,
	)

	rows, err := gateway.pool.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "Genres")
	}
	defer rows.Close()

	genres := make([]genre.Genre, 0)
	for rows.Next() {
		var g genre.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, dberr.Wrap(err, "Genres")
		}
		genres = append(genres, g)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Genres")
	}

	return genres, nil
}

// # Writes

/*
InsertItem stores a new item under a fresh UUIDv7.

Description: Nil patch fields are written as their zero value and the
store's NOT NULL and CHECK constraints have the final word.

Parameters:
  - context: stdctx.Context
  - fields: Patch

Returns:
  - Movie: The committed row, without genres
  - error: VALIDATION_ERROR on constraint rejection, TRANSPORT_ERROR otherwise
*/
func (gateway *PostgresGateway) InsertItem(context stdctx.Context, fields Patch) (Movie, error) {
	context, cancel := gateway.bound(context)
	defer cancel()

	m := schema.CatalogMovie
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s
	`,
		m.Table,
		m.ID, m.Title, m.Description, m.Country, m.ReleaseYear, m.Type, m.Rating,
		m.IsFavorite, m.IsWatched, m.WatchLater, m.PosterURL, m.TrailerURL,
		strings.Join(m.Columns(), ", "),
	)

	values := fields.ApplyTo(Movie{})

	var item Movie
	err := gateway.pool.QueryRow(context, query,
		uuid.New(), values.Title, values.Description, values.Country, values.ReleaseYear, values.Type, values.Rating,
		values.IsFavorite, values.IsWatched, values.WatchLater, values.PosterURL, values.TrailerURL,
	).Scan(scanTargets(&item)...)
	if err != nil {
		return Movie{}, dberr.Wrap(err, resourceMovie)
	}

	item.Genres = make([]genre.Genre, 0)
	return item, nil
}

/*
UpdateItem writes the non-nil patch fields over an existing row.

Description: Builds a PATCH-style SET list so untouched columns keep their
stored value. updatedat is always refreshed.

Parameters:
  - context: stdctx.Context
  - id: string
  - fields: Patch

Returns:
  - Movie: The committed row, without genres
  - error: NOT_FOUND if id does not exist
*/
func (gateway *PostgresGateway) UpdateItem(context stdctx.Context, id string, fields Patch) (Movie, error) {
	if !uuid.Valid(id) {
		return Movie{}, apperr.NotFound(resourceMovie)
	}

	context, cancel := gateway.bound(context)
	defer cancel()

	m := schema.CatalogMovie

	var queryBuilder strings.Builder
	fmt.Fprintf(&queryBuilder, "UPDATE %s SET %s = NOW()", m.Table, m.UpdatedAt)

	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		fmt.Fprintf(&queryBuilder, ", %s = $%d", column, len(args))
	}

	if fields.Title != nil {
		set(m.Title, *fields.Title)
	}
	if fields.Description != nil {
		set(m.Description, *fields.Description)
	}
	if fields.Country != nil {
		set(m.Country, *fields.Country)
	}
	if fields.ReleaseYear != nil {
		set(m.ReleaseYear, *fields.ReleaseYear)
	}
	if fields.Type != nil {
		set(m.Type, *fields.Type)
	}
	if fields.Rating != nil {
		set(m.Rating, *fields.Rating)
	}
	if fields.IsFavorite != nil {
		set(m.IsFavorite, *fields.IsFavorite)
	}
	if fields.IsWatched != nil {
		set(m.IsWatched, *fields.IsWatched)
	}
	if fields.WatchLater != nil {
		set(m.WatchLater, *fields.WatchLater)
	}
	if fields.PosterURL != nil {
		set(m.PosterURL, *fields.PosterURL)
	}
	if fields.TrailerURL != nil {
		set(m.TrailerURL, *fields.TrailerURL)
	}

	args = append(args, id)
	fmt.Fprintf(&queryBuilder, " WHERE %s = $%d RETURNING %s", m.ID, len(args), strings.Join(m.Columns(), ", "))

	var item Movie
	if err := gateway.pool.QueryRow(context, queryBuilder.String(), args...).Scan(scanTargets(&item)...); err != nil {
		return Movie{}, dberr.Wrap(err, resourceMovie)
	}

	return item, nil
}

// DeleteItem removes an item. Genre links go with it through ON DELETE CASCADE.
func (gateway *PostgresGateway) DeleteItem(context stdctx.Context, id string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound(resourceMovie)
	}

	context, cancel := gateway.bound(context)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogMovie.Table, schema.CatalogMovie.ID)

	result, err := gateway.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceMovie)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(resourceMovie)
	}

	return nil
}

/*
SetItemGenres replaces an item's genre links.

Description: Runs as two statements on the pool, a DELETE of every existing
link followed by a batched INSERT, with no enclosing transaction. A failure
in the second leg leaves the item with no genres until the next save.
Duplicate ids are collapsed.

Parameters:
  - context: stdctx.Context
  - id: string
  - genreIDs: []string (complete desired set)

Returns:
  - error: VALIDATION_ERROR for unknown genre ids, TRANSPORT_ERROR otherwise
*/
func (gateway *PostgresGateway) SetItemGenres(context stdctx.Context, id string, genreIDs []string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound(resourceMovie)
	}

	context, cancel := gateway.bound(context)
	defer cancel()

	mg := schema.CatalogMovieGenre

	// 1. Clear existing links
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, mg.Table, mg.MovieID)
	if _, err := gateway.pool.Exec(context, deleteQuery, id); err != nil {
		return dberr.Wrap(err, "Genre links")
	}

	ids := slice.Dedupe(genreIDs)
	if len(ids) == 0 {
		return nil
	}

	// 2. Insert the desired set
	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, mg.Table, mg.MovieID, mg.GenreID)
	batch := &pgx.Batch{}
	for _, genreID := range ids {
		batch.Queue(insertQuery, id, genreID)
	}

	if err := gateway.pool.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, "Genre links")
	}

	return nil
}

// # Helpers

func (gateway *PostgresGateway) bound(context stdctx.Context) (stdctx.Context, stdctx.CancelFunc) {
	if gateway.timeout <= 0 {
		return context, func() {}
	}
	return stdctx.WithTimeout(context, gateway.timeout)
}

// scanTargets lists the destinations for [schema.CatalogMovieTable.Columns] in order.
func scanTargets(item *Movie) []any {
	return []any{
		&item.ID, &item.Title, &item.Description, &item.Country, &item.ReleaseYear, &item.Type, &item.Rating,
		&item.IsFavorite, &item.IsWatched, &item.WatchLater, &item.PosterURL, &item.TrailerURL,
		&item.CreatedAt, &item.UpdatedAt,
	}
}

func qualified(alias string, columns []string) string {
	return strings.Join(slice.Map(columns, func(column string) string { return alias + "." + column }), ", ")
}
