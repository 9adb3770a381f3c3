// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"

	"github.com/taibuivan/cinedex/internal/core/category"
	"github.com/taibuivan/cinedex/internal/core/genre"
)

// Gateway is the boundary to the remote catalog store.
//
// # Errors
//
// Implementations return [apperr.AppError] values only:
//
//   - VALIDATION_ERROR: the store rejected the submitted fields.
//   - NOT_FOUND: the target id does not exist remotely.
//   - TRANSPORT_ERROR: network, timeout, server fault or an open breaker.
type Gateway interface {
	// FetchItems returns every item with its genres resolved, oldest first.
	FetchItems(context context.Context) ([]Movie, error)

	// FetchGenres returns the genre reference list.
	FetchGenres(context context.Context) ([]genre.Genre, error)

	// FetchCategories returns the category reference list.
	FetchCategories(context context.Context) ([]category.Category, error)

	// InsertItem stores a new item and returns it with its assigned id.
	// The returned item carries no genres.
	InsertItem(context context.Context, fields Patch) (Movie, error)

	// UpdateItem writes the non-nil patch fields and returns the committed row.
	// The returned item carries no genres.
	UpdateItem(context context.Context, id string, fields Patch) (Movie, error)

	// DeleteItem removes the item and its genre links.
	DeleteItem(context context.Context, id string) error

	// SetItemGenres replaces the item's genre links with genreIDs.
	// The replacement is not atomic: a failure may leave no links at all.
	SetItemGenres(context context.Context, id string, genreIDs []string) error

	// ItemGenres resolves the item's current genre links.
	ItemGenres(context context.Context, id string) ([]genre.Genre, error)
}
