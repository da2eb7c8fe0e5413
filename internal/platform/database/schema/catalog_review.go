package schema

// CatalogReviewTable represents the 'catalog.review' table
type CatalogReviewTable struct {
	Table      string
	ID         string
	MovieID    string
	AuthorName string
	Rating     string
	Text       string
	IsActive   string
	CreatedAt  string
}

// CatalogReview is the schema definition for catalog.review
var CatalogReview = CatalogReviewTable{
	Table:      "catalog.review",
	ID:         "id",
	MovieID:    "movieid",
	AuthorName: "authorname",
	Rating:     "rating",
	Text:       "text",
	IsActive:   "isactive",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t CatalogReviewTable) Columns() []string {
	return []string{
		t.ID, t.MovieID, t.AuthorName, t.Rating, t.Text, t.IsActive, t.CreatedAt,
	}
}
