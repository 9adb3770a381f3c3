package schema

// CatalogMovieTable represents the 'catalog.movie' table
type CatalogMovieTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Country     string
	ReleaseYear string
	Type        string
	Rating      string
	IsFavorite  string
	IsWatched   string
	WatchLater  string
	PosterURL   string
	TrailerURL  string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogMovie is the schema definition for catalog.movie
var CatalogMovie = CatalogMovieTable{
	Table:       "catalog.movie",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Country:     "country",
	ReleaseYear: "releaseyear",
	Type:        "type",
	Rating:      "rating",
	IsFavorite:  "isfavorite",
	IsWatched:   "iswatched",
	WatchLater:  "watchlater",
	PosterURL:   "posterurl",
	TrailerURL:  "trailerurl",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns the scalar columns in scan order.
func (t CatalogMovieTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Country, t.ReleaseYear, t.Type, t.Rating,
		t.IsFavorite, t.IsWatched, t.WatchLater, t.PosterURL, t.TrailerURL,
		t.CreatedAt, t.UpdatedAt,
	}
}
