// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package movie is the catalog core of Cinedex.

It holds the in-memory mirror of the remote catalog, derives the visible list
from user-chosen criteria, and coordinates every write against the remote
store so that local state only moves after the store confirms.

Core Responsibility:

  - Catalog: Thread-safe snapshot of items, genres and filter categories.
  - Derive: Pure filter and sort of the catalog for a given [Criteria].
  - Gateway: The remote store boundary, including the item to genre relation.
  - Service: Create, update, delete and flag toggles with relation sync.
*/
package movie

import (
	"slices"
	"time"

	"github.com/taibuivan/cinedex/internal/core/genre"
	"github.com/taibuivan/cinedex/pkg/pointer"
)

// # Domain Enums

// Type distinguishes single features from episodic series.
type Type string

const (
	TypeMovie  Type = "movie"
	TypeSeries Type = "series"
)

// IsValid reports whether t is a recognised [Type].
func (t Type) IsValid() bool {
	return t == TypeMovie || t == TypeSeries
}

// Flag names one of the three independent boolean markers on a [Movie].
type Flag string

const (
	FlagFavorite   Flag = "favorite"
	FlagWatched    Flag = "watched"
	FlagWatchLater Flag = "watch_later"
)

// IsValid reports whether f is a recognised [Flag].
func (f Flag) IsValid() bool {
	switch f {
	case FlagFavorite, FlagWatched, FlagWatchLater:
		return true
	}
	return false
}

// # Field Names

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCountry     = "country"
	FieldReleaseYear = "release_year"
	FieldType        = "type"
	FieldRating      = "rating"
	FieldPosterURL   = "poster_url"
	FieldTrailerURL  = "trailer_url"
	FieldGenreIDs    = "genre_ids"
)

// # Core Entities

// Movie is one catalog item, either a movie or a series.
type Movie struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Country     string        `json:"country"`
	ReleaseYear int           `json:"release_year"`
	Type        Type          `json:"type"`
	Rating      float64       `json:"rating"`
	IsFavorite  bool          `json:"is_favorite"`
	IsWatched   bool          `json:"is_watched"`
	WatchLater  bool          `json:"watch_later"`
	PosterURL   string        `json:"poster_url"`
	TrailerURL  string        `json:"trailer_url"`
	Genres      []genre.Genre `json:"genres"` // Last persisted relation set
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Flag returns the current value of the given marker.
func (m Movie) Flag(flag Flag) bool {
	switch flag {
	case FlagFavorite:
		return m.IsFavorite
	case FlagWatched:
		return m.IsWatched
	case FlagWatchLater:
		return m.WatchLater
	}
	return false
}

// HasGenre reports whether the item carries the genre with the given id.
func (m Movie) HasGenre(id string) bool {
	return genre.Contains(m.Genres, id)
}

// # Write Shapes

// WriteFields is the create/edit form payload.
//
// A nil GenreIDs means the relation is not part of the edit. A non-nil slice,
// even an empty one, is the complete desired genre set.
type WriteFields struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Country     string   `json:"country"`
	ReleaseYear int      `json:"release_year"`
	Type        Type     `json:"type"`
	Rating      float64  `json:"rating"`
	IsFavorite  bool     `json:"is_favorite"`
	IsWatched   bool     `json:"is_watched"`
	WatchLater  bool     `json:"watch_later"`
	PosterURL   string   `json:"poster_url"`
	TrailerURL  string   `json:"trailer_url"`
	GenreIDs    []string `json:"genre_ids"`
}

// NewWriteFields returns the blank create form: a movie released this year.
func NewWriteFields(now time.Time) WriteFields {
	return WriteFields{
		Type:        TypeMovie,
		ReleaseYear: now.Year(),
		GenreIDs:    []string{},
	}
}

// EditFields prefills the edit form from a held item.
func EditFields(m Movie) WriteFields {
	return WriteFields{
		Title:       m.Title,
		Description: m.Description,
		Country:     m.Country,
		ReleaseYear: m.ReleaseYear,
		Type:        m.Type,
		Rating:      m.Rating,
		IsFavorite:  m.IsFavorite,
		IsWatched:   m.IsWatched,
		WatchLater:  m.WatchLater,
		PosterURL:   m.PosterURL,
		TrailerURL:  m.TrailerURL,
		GenreIDs:    genre.IDs(m.Genres),
	}
}

// Patch returns a patch that sets every scalar field.
func (w WriteFields) Patch() Patch {
	return Patch{
		Title:       pointer.To(w.Title),
		Description: pointer.To(w.Description),
		Country:     pointer.To(w.Country),
		ReleaseYear: pointer.To(w.ReleaseYear),
		Type:        pointer.To(w.Type),
		Rating:      pointer.To(w.Rating),
		IsFavorite:  pointer.To(w.IsFavorite),
		IsWatched:   pointer.To(w.IsWatched),
		WatchLater:  pointer.To(w.WatchLater),
		PosterURL:   pointer.To(w.PosterURL),
		TrailerURL:  pointer.To(w.TrailerURL),
	}
}

// Patch is a partial scalar update. Nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	Country     *string
	ReleaseYear *int
	Type        *Type
	Rating      *float64
	IsFavorite  *bool
	IsWatched   *bool
	WatchLater  *bool
	PosterURL   *string
	TrailerURL  *string
}

// FlagPatch returns a patch that sets exactly one marker.
func FlagPatch(flag Flag, value bool) Patch {
	var patch Patch
	switch flag {
	case FlagFavorite:
		patch.IsFavorite = pointer.To(value)
	case FlagWatched:
		patch.IsWatched = pointer.To(value)
	case FlagWatchLater:
		patch.WatchLater = pointer.To(value)
	}
	return patch
}

// IsEmpty reports whether the patch sets no field.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// ApplyTo returns m with every non-nil patch field written over it.
// Identity, genres and timestamps are never touched.
func (p Patch) ApplyTo(m Movie) Movie {
	m.Title = pointer.Fallback(p.Title, m.Title)
	m.Description = pointer.Fallback(p.Description, m.Description)
	m.Country = pointer.Fallback(p.Country, m.Country)
	m.ReleaseYear = pointer.Fallback(p.ReleaseYear, m.ReleaseYear)
	m.Type = pointer.Fallback(p.Type, m.Type)
	m.Rating = pointer.Fallback(p.Rating, m.Rating)
	m.IsFavorite = pointer.Fallback(p.IsFavorite, m.IsFavorite)
	m.IsWatched = pointer.Fallback(p.IsWatched, m.IsWatched)
	m.WatchLater = pointer.Fallback(p.WatchLater, m.WatchLater)
	m.PosterURL = pointer.Fallback(p.PosterURL, m.PosterURL)
	m.TrailerURL = pointer.Fallback(p.TrailerURL, m.TrailerURL)
	m.Genres = slices.Clone(m.Genres)
	return m
}
