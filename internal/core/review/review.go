// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review implements audience reviews and the movie rating aggregate.

Reviews are written by signed-in users, carry a 1..5 star rating, and are
moderated out of band by toggling their active flag. Only active reviews are
listed and counted towards the average.
*/
package review

import "time"

// # Domain Entities

// Review is one user's opinion about a movie.
type Review struct {
	ID      int64 `json:"id"`
	MovieID int64 `json:"movie_id"`
	// AuthorName is the author's username at submission time. It is not a
	// foreign key, so renaming an account does not rewrite past reviews.
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Board is everything the movie page shows about its reviews.
type Board struct {
	Reviews       []*Review `json:"reviews"`
	AverageRating float64   `json:"average_rating"`
	ReviewsCount  int       `json:"reviews_count"`
}

// SubmitInput is the review form as posted from the movie page.
type SubmitInput struct {
	// Rating is nil when the field was missing or not a number.
	Rating *int   `form:"rating"`
	Text   string `form:"text"`
}

// # Constraints

const (
	// MinRating and MaxRating bound the star rating.
	MinRating = 1
	MaxRating = 5

	// AuthorNameMaxLength matches the column width.
	AuthorNameMaxLength = 100
)

// Global field names for validation
const (
	FieldRating = "rating"
	FieldText   = "text"
)
