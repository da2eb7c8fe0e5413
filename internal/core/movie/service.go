// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/kinoteka/internal/platform/sec"
	"github.com/taibuivan/kinoteka/internal/platform/validate"
)

// Service implements catalog browsing and manager-only movie creation.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a movie service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
List returns a page of movies, newest first, optionally filtered by a query
over titles, actor names and director names.

Returns:
  - []*Movie: The requested page
  - int: Total number of matching movies
  - error: Storage failures
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Movie, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return service.repo.List(context, filter, limit, offset)
}

// Get returns the movie with its director and cast.
func (service *Service) Get(context context.Context, id int64) (*Movie, error) {
	return service.repo.Get(context, id)
}

// Exists reports whether the movie exists. It satisfies review.MovieLookup.
func (service *Service) Exists(context context.Context, id int64) (bool, error) {
	return service.repo.Exists(context, id)
}

// Count returns the total number of movies in the catalog.
func (service *Service) Count(context context.Context) (int, error) {
	return service.repo.Count(context)
}

/*
Create adds a movie to the catalog. Only managers may do so.

Parameters:
  - context: context.Context
  - identity: sec.Identity (must be a manager)
  - input: CreateInput

Returns:
  - *Movie: The persisted movie (never featured)
  - error: Forbidden, ValidationError or storage errors
*/
func (service *Service) Create(context context.Context, identity sec.Identity, input CreateInput) (*Movie, error) {
	if err := sec.RequireManager(identity); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	poster := strings.TrimSpace(input.PosterURL)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, TitleMaxLength)
	if input.Year == nil {
		validator.Custom(FieldYear, true, "This field is required")
	} else {
		validator.Range(FieldYear, *input.Year, MinYear, MaxYear)
	}
	validator.URL(FieldPoster, poster)
	validator.Custom(FieldDirector, input.DirectorID != nil && *input.DirectorID <= 0, "Select a valid director")
	for _, actorID := range input.ActorIDs {
		if actorID <= 0 {
			validator.Custom(FieldActors, true, "Select valid actors")
			break
		}
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	movie := &Movie{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Year:        *input.Year,
		Actors:      []Person{},
	}
	if poster != "" {
		movie.PosterURL = &poster
	}
	if input.DirectorID != nil {
		movie.Director = &Person{ID: *input.DirectorID}
	}

	if err := service.repo.Create(context, movie, input.ActorIDs); err != nil {
		return nil, err
	}

	service.logger.Info("movie_created",
		slog.Int64("movie_id", movie.ID),
		slog.String("title", movie.Title),
		slog.String("user_id", identity.UserID),
	)
	return movie, nil
}
