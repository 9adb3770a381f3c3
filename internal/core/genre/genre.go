// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package genre holds the genre reference list used to classify catalog items.
package genre

// Genre is a named classification label attached to movies and series.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IDs returns the identifiers of the given genres in order.
func IDs(genres []Genre) []string {
	ids := make([]string, len(genres))
	for i, g := range genres {
		ids[i] = g.ID
	}
	return ids
}

// Contains reports whether any genre in the list has the given id.
func Contains(genres []Genre, id string) bool {
	for _, g := range genres {
		if g.ID == id {
			return true
		}
	}
	return false
}
