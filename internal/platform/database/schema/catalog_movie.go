package schema

// CatalogMovieTable represents the 'catalog.movie' table
type CatalogMovieTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Year        string
	PosterURL   string
	IsTop       string
	DirectorID  string
	CreatedAt   string
}

// CatalogMovie is the schema definition for catalog.movie
var CatalogMovie = CatalogMovieTable{
	Table:       "catalog.movie",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Year:        "year",
	PosterURL:   "posterurl",
	IsTop:       "istop",
	DirectorID:  "directorid",
	CreatedAt:   "createdat",
}

// Columns returns all standard column names
func (t CatalogMovieTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Year, t.PosterURL, t.IsTop, t.DirectorID, t.CreatedAt,
	}
}
