// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package movie implements the movie catalog and its curated top list.

Architecture:

  - Service: Browsing, search and manager-only creation.
  - TopList: The bounded featured set (at most [TopListCapacity] movies).
  - Handler: The index, detail, top-five and add pages.

Movies are create-only. The only mutable attribute is the featured flag,
which only [TopList] changes.
*/
package movie

import "time"

// # Domain Entities

// Movie is one catalog entry.
type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Year        int       `json:"year"`
	PosterURL   *string   `json:"poster_url"`
	IsTop       bool      `json:"is_top"`
	Director    *Person   `json:"director"`
	Actors      []Person  `json:"actors"`
	CreatedAt   time.Time `json:"created_at"`
}

// Person is a director or actor as shown on a movie page.
type Person struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Filter narrows the movie listing.
type Filter struct {
	// Query matches title, actor names or director name, case-insensitively.
	Query string
}

// CreateInput is the manager-submitted form for a new movie.
type CreateInput struct {
	Title       string  `form:"title"`
	Description string  `form:"description"`
	Year        *int    `form:"year"`
	PosterURL   string  `form:"poster"`
	DirectorID  *int64  `form:"director"`
	ActorIDs    []int64 `form:"actors"`
}

// # Constraints

const (
	// TitleMaxLength matches the column width.
	TitleMaxLength = 200

	// MinYear is the year of the first motion picture.
	MinYear = 1888
	MaxYear = 2100
)

// Global field names for validation
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldYear        = "year"
	FieldPoster      = "poster"
	FieldDirector    = "director"
	FieldActors      = "actors"
	FieldMovieID     = "movie_id"
	FieldAction      = "action"
)
