// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package actor manages the cast members of the catalog.

Actors are create-only: managers add them, everyone can browse them and
their filmography.
*/
package actor

// Actor is a person appearing in one or more movies.
type Actor struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Bio      string  `json:"bio"`
	PhotoURL *string `json:"photo_url"`
}

// MovieSummary is the slice of a movie shown on an actor's page.
type MovieSummary struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	PosterURL *string `json:"poster_url"`
	IsTop     bool    `json:"is_top"`
}

// Detail is an actor together with their filmography, newest first.
type Detail struct {
	Actor *Actor      `json:"actor"`
	Movies   []MovieSummary `json:"movies"`
}

// CreateInput is the manager-submitted form for a new actor.
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
