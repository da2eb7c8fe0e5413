// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package director manages the film directors of the catalog.

Directors are create-only: managers add them, everyone can browse them and
their filmography.
*/
package director

// Director is a person credited with directing one or more movies.
type Director struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Bio      string  `json:"bio"`
	PhotoURL *string `json:"photo_url"`
}

// MovieSummary is the slice of a movie shown on a director's page.
type MovieSummary struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	PosterURL *string `json:"poster_url"`
	IsTop     bool    `json:"is_top"`
}

// Detail is a director together with their filmography, newest first.
type Detail struct {
	Director *Director      `json:"director"`
	Movies   []MovieSummary `json:"movies"`
}

// CreateInput is the manager-submitted form for a new director.
type CreateInput struct {
	Name     string `form:"name"`
	Bio      string `form:"bio"`
	PhotoURL string `form:"photo"`
}

// Global field names for validation
const (
	FieldName  = "name"
	FieldBio   = "bio"
	FieldPhoto = "photo"
)

// NameMaxLength bounds the display name.
const NameMaxLength = 100
