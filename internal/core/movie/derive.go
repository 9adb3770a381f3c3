// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/taibuivan/cinedex/pkg/slice"
)

/*
Derive computes the visible list for the given criteria.

Description: Filters are combined with AND, then the result is stably sorted,
so items that tie on the sort key keep their catalog order. The input slice is
never modified and the same input always yields the same output.

Parameters:
  - items: []Movie (the full catalog in arrival order)
  - criteria: Criteria

Returns:
  - []Movie: A fresh, reordered subset of items
*/
func Derive(items []Movie, criteria Criteria) []Movie {
	// Casers are stateful and not shared across goroutines.
	fold := cases.Fold()
	needle := fold.String(criteria.Search)

	visible := slice.Filter(items, func(m Movie) bool {
		return matchesSearch(fold, m, needle) &&
			matchesGenre(m, criteria.GenreID) &&
			matchesType(m, criteria.Type) &&
			matchesWatchStatus(m, criteria.WatchStatus) &&
			matchesCountry(m, criteria.Country) &&
			matchesYear(m, criteria.Year)
	})

	if compare := comparator(criteria.Sort); compare != nil {
		slices.SortStableFunc(visible, compare)
	}

	return visible
}

// # Predicates

func matchesSearch(fold cases.Caser, m Movie, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(fold.String(m.Title), needle) ||
		strings.Contains(fold.String(m.Description), needle)
}

func matchesGenre(m Movie, genreID string) bool {
	return genreID == "" || m.HasGenre(genreID)
}

func matchesType(m Movie, kind Type) bool {
	return kind == "" || m.Type == kind
}

func matchesWatchStatus(m Movie, status WatchStatus) bool {
	switch status {
	case WatchStatusWatched:
		return m.IsWatched
	case WatchStatusWatchLater:
		return m.WatchLater
	case WatchStatusUnwatched:
		return !m.IsWatched
	}
	return true
}

func matchesCountry(m Movie, country string) bool {
	return country == "" || m.Country == country
}

func matchesYear(m Movie, year int) bool {
	return year == 0 || m.ReleaseYear == year
}

// # Ordering

// comparator returns nil for unknown keys, which keeps arrival order.
func comparator(key SortKey) func(a, b Movie) int {
	switch key {
	case SortRatingDesc:
		return func(a, b Movie) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortRatingAsc:
		return func(a, b Movie) int { return cmp.Compare(a.Rating, b.Rating) }
	case SortYearDesc:
		return func(a, b Movie) int { return cmp.Compare(b.ReleaseYear, a.ReleaseYear) }
	case SortYearAsc:
		return func(a, b Movie) int { return cmp.Compare(a.ReleaseYear, b.ReleaseYear) }
	}
	return nil
}
