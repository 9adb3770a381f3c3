// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/taibuivan/cinedex/internal/platform/apperr"
	"github.com/taibuivan/cinedex/internal/platform/constants"
)

// # Filter Enums

// WatchStatus narrows the list by the watched and watch-later markers.
type WatchStatus string

const (
	WatchStatusAny        WatchStatus = ""
	WatchStatusWatched    WatchStatus = "watched"
	WatchStatusWatchLater WatchStatus = "watch_later"
	WatchStatusUnwatched  WatchStatus = "unwatched"
)

// IsValid reports whether s is a recognised [WatchStatus].
func (s WatchStatus) IsValid() bool {
	switch s {
	case WatchStatusAny, WatchStatusWatched, WatchStatusWatchLater, WatchStatusUnwatched:
		return true
	}
	return false
}

// SortKey selects the ordering of the derived list.
type SortKey string

const (
	SortRatingDesc SortKey = "rating_desc"
	SortRatingAsc  SortKey = "rating_asc"
	SortYearDesc   SortKey = "year_desc"
	SortYearAsc    SortKey = "year_asc"
)

// IsValid reports whether k is a recognised [SortKey].
func (k SortKey) IsValid() bool {
	switch k {
	case SortRatingDesc, SortRatingAsc, SortYearDesc, SortYearAsc:
		return true
	}
	return false
}

// # Criteria

// Filter field names accepted by [Criteria.With] and the list endpoint.
const (
	FilterSearch      = "search"
	FilterGenre       = "genre"
	FilterType        = "type"
	FilterWatchStatus = "watch_status"
	FilterCountry     = "country"
	FilterYear        = "year"
	FilterSort        = "sort"
)

var filterFields = []string{
	FilterSearch, FilterGenre, FilterType, FilterWatchStatus, FilterCountry, FilterYear, FilterSort,
}

// Criteria is the user's current filter and sort selection.
//
// Every field always holds a value. The empty string and zero are the
// "no filter" sentinels; Sort is never empty once built by [DefaultCriteria].
type Criteria struct {
	Search      string      `json:"search"`
	GenreID     string      `json:"genre"`
	Type        Type        `json:"type"`
	WatchStatus WatchStatus `json:"watch_status"`
	Country     string      `json:"country"`
	Year        int         `json:"year"`
	Sort        SortKey     `json:"sort"`
}

// DefaultCriteria returns the initial selection: no filters, highest rated first.
func DefaultCriteria() Criteria {
	return Criteria{Sort: SortRatingDesc}
}

/*
With returns a copy of c with one field changed.

Description: An empty value resets the field to its sentinel, and resetting
sort restores rating_desc. Unknown fields and malformed values are rejected
and c is returned unchanged alongside the error.

Parameters:
  - field: string (one of the Filter* names)
  - value: string (raw user input)

Returns:
  - Criteria: The updated selection, or c on error
  - error: apperr.ValidationError for unknown fields or bad values
*/
func (c Criteria) With(field, value string) (Criteria, error) {
	next := c

	switch field {
	case FilterSearch:
		next.Search = value

	case FilterGenre:
		next.GenreID = strings.TrimSpace(value)

	case FilterType:
		kind := Type(strings.TrimSpace(value))
		if kind != "" && !kind.IsValid() {
			return c, invalidFilter(field, "Must be one of: movie, series")
		}
		next.Type = kind

	case FilterWatchStatus:
		status := WatchStatus(strings.TrimSpace(value))
		if !status.IsValid() {
			return c, invalidFilter(field, "Must be one of: watched, watch_later, unwatched")
		}
		next.WatchStatus = status

	case FilterCountry:
		next.Country = strings.TrimSpace(value)

	case FilterYear:
		raw := strings.TrimSpace(value)
		if raw == "" {
			next.Year = 0
			break
		}
		year, err := strconv.Atoi(raw)
		if err != nil || year < constants.MinReleaseYear {
			return c, invalidFilter(field, "Must be a release year")
		}
		next.Year = year

	case FilterSort:
		key := SortKey(strings.TrimSpace(value))
		if key == "" {
			key = SortRatingDesc
		}
		if !key.IsValid() {
			return c, invalidFilter(field, "Must be one of: rating_desc, rating_asc, year_desc, year_asc")
		}
		next.Sort = key

	default:
		return c, invalidFilter(field, "Unknown filter")
	}

	return next, nil
}

// ParseCriteria builds a selection from URL query values. Parameters that are
// not filter fields are ignored.
func ParseCriteria(values url.Values) (Criteria, error) {
	criteria := DefaultCriteria()
	for _, field := range filterFields {
		if !values.Has(field) {
			continue
		}
		var err error
		if criteria, err = criteria.With(field, values.Get(field)); err != nil {
			return DefaultCriteria(), err
		}
	}
	return criteria, nil
}

func invalidFilter(field, message string) error {
	return apperr.ValidationError("Invalid filter", apperr.FieldError{Field: field, Message: message})
}
