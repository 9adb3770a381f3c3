// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"slices"
	"sync"

	"github.com/taibuivan/cinedex/internal/core/category"
	"github.com/taibuivan/cinedex/internal/core/genre"
)

// Catalog is the in-memory mirror of the remote catalog.
//
// # Concurrency
//
// Writers build a new slice and swap it under the lock; readers always get
// copies. A reader therefore sees either the state before a mutation or the
// state after it, never a mix.
type Catalog struct {
	mu         sync.RWMutex
	items      []Movie
	genres     []genre.Genre
	categories []category.Category
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		items:      make([]Movie, 0),
		genres:     make([]genre.Genre, 0),
		categories: make([]category.Category, 0),
	}
}

// # Writers

// ReplaceAll swaps the item list. Repeated ids keep their first occurrence.
func (catalog *Catalog) ReplaceAll(items []Movie) {
	next := make([]Movie, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, m := range items {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		next = append(next, detach(m))
	}

	catalog.mu.Lock()
	catalog.items = next
	catalog.mu.Unlock()
}

// Upsert replaces the item with the same id in place, or appends it.
func (catalog *Catalog) Upsert(item Movie) {
	item = detach(item)

	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	next := slices.Clone(catalog.items)
	if index := indexOf(next, item.ID); index >= 0 {
		next[index] = item
	} else {
		next = append(next, item)
	}
	catalog.items = next
}

// Remove drops the item with the given id. Unknown ids are a no-op.
func (catalog *Catalog) Remove(id string) {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	index := indexOf(catalog.items, id)
	if index < 0 {
		return
	}
	catalog.items = slices.Delete(slices.Clone(catalog.items), index, index+1)
}

// SetGenres swaps the genre reference list.
func (catalog *Catalog) SetGenres(genres []genre.Genre) {
	next := slices.Clone(genres)
	if next == nil {
		next = make([]genre.Genre, 0)
	}

	catalog.mu.Lock()
	catalog.genres = next
	catalog.mu.Unlock()
}

// SetCategories swaps the category reference list.
func (catalog *Catalog) SetCategories(categories []category.Category) {
	next := slices.Clone(categories)
	if next == nil {
		next = make([]category.Category, 0)
	}

	catalog.mu.Lock()
	catalog.categories = next
	catalog.mu.Unlock()
}

// # Readers

// Items returns a copy of all items in arrival order.
func (catalog *Catalog) Items() []Movie {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	items := make([]Movie, len(catalog.items))
	for i, m := range catalog.items {
		items[i] = detach(m)
	}
	return items
}

// Get returns a copy of the item with the given id.
func (catalog *Catalog) Get(id string) (Movie, bool) {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	index := indexOf(catalog.items, id)
	if index < 0 {
		return Movie{}, false
	}
	return detach(catalog.items[index]), true
}

// Genres returns a copy of the genre reference list.
func (catalog *Catalog) Genres() []genre.Genre {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	return slices.Clone(catalog.genres)
}

// Categories returns a copy of the category reference list.
func (catalog *Catalog) Categories() []category.Category {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	return slices.Clone(catalog.categories)
}

// Len returns the number of items.
func (catalog *Catalog) Len() int {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	return len(catalog.items)
}

// # Helpers

func indexOf(items []Movie, id string) int {
	return slices.IndexFunc(items, func(m Movie) bool { return m.ID == id })
}

// detach gives m its own genre slice so callers cannot alias catalog memory.
func detach(m Movie) Movie {
	if m.Genres == nil {
		m.Genres = make([]genre.Genre, 0)
	} else {
		m.Genres = slices.Clone(m.Genres)
	}
	return m
}
