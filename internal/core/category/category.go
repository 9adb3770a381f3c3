// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package category holds the browsable filter categories shown next to the catalog.

Each category belongs to exactly one kind. The presentation layer renders one
group per kind, so [Partition] splits the flat list while keeping store order.
*/
package category

// Kind names the filter dimension a category belongs to.
type Kind string

const (
	KindCountry Kind = "country"
	KindYear    Kind = "year"
	KindGenre   Kind = "genre"
	KindType    Kind = "type"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindCountry, KindYear, KindGenre, KindType:
		return true
	}
	return false
}

// Category is one browsable filter value such as a country or a decade.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"type"`
}

// Groups is the category list split by kind.
type Groups struct {
	Countries []Category `json:"countries"`
	Years     []Category `json:"years"`
	Genres    []Category `json:"genres"`
	Types     []Category `json:"types"`
}

// Partition splits categories by kind, preserving input order within each
// group. Categories of an unknown kind are dropped.
func Partition(categories []Category) Groups {
	groups := Groups{
		Countries: make([]Category, 0),
		Years:     make([]Category, 0),
		Genres:    make([]Category, 0),
		Types:     make([]Category, 0),
	}

	for _, c := range categories {
		switch c.Kind {
		case KindCountry:
			groups.Countries = append(groups.Countries, c)
		case KindYear:
			groups.Years = append(groups.Years, c)
		case KindGenre:
			groups.Genres = append(groups.Genres, c)
		case KindType:
			groups.Types = append(groups.Types, c)
		}
	}

	return groups
}
