// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
	"github.com/taibuivan/kinoteka/internal/platform/validate"
)

// Service implements the review submission and listing use cases.
type Service struct {
	repo   Repository
	movies MovieLookup
	logger *slog.Logger
	clock  func() time.Time
}

// NewService constructs a review service.
func NewService(repo Repository, movies MovieLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		movies: movies,
		logger: logger,
		clock:  time.Now,
	}
}

// WithClock overrides the submission timestamp source.
func (service *Service) WithClock(clock func() time.Time) *Service {
	service.clock = clock
	return service
}

/*
Board returns the active reviews of a movie with their average rating.

Parameters:
  - context: context.Context
  - movieID: int64

Returns:
  - *Board: Reviews newest first, average and count
  - error: Storage failures
*/
func (service *Service) Board(context context.Context, movieID int64) (*Board, error) {
	reviews, err := service.repo.ListActive(context, movieID)
	if err != nil {
		return nil, err
	}

	return Summarize(reviews), nil
}

/*
Submit validates and stores a review written by identity.

Description: The author name is taken from the identity, never from the form.
Nothing is persisted unless every check passes.

Parameters:
  - context: context.Context
  - identity: sec.Identity (must be authenticated)
  - movieID: int64
  - input: SubmitInput

Returns:
  - *Review: The stored review
  - error: Unauthorized, NotFound, ValidationError or storage errors
*/
func (service *Service) Submit(context context.Context, identity sec.Identity, movieID int64, input SubmitInput) (*Review, error) {
	if err := sec.RequireAuthenticated(identity, "Log in to leave a review"); err != nil {
		return nil, err
	}

	exists, err := service.movies.Exists(context, movieID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Movie")
	}

	text := strings.TrimSpace(input.Text)

	validator := &validate.Validator{}
	if input.Rating == nil {
		validator.Custom(FieldRating, true, "This field is required")
	} else {
		validator.Range(FieldRating, *input.Rating, MinRating, MaxRating)
	}
	validator.Required(FieldText, text)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	authorName := identity.Username
	if len([]rune(authorName)) > AuthorNameMaxLength {
		authorName = string([]rune(authorName)[:AuthorNameMaxLength])
	}

	review := &Review{
		MovieID:    movieID,
		AuthorName: authorName,
		Rating:     *input.Rating,
		Text:       text,
		IsActive:   true,
		CreatedAt:  service.clock(),
	}

	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_submitted",
		slog.Int64("review_id", review.ID),
		slog.Int64("movie_id", movieID),
		slog.String("user_id", identity.UserID),
		slog.Int("rating", review.Rating),
	)
	return review, nil
}

// CountByAuthor returns the number of reviews written under authorName.
func (service *Service) CountByAuthor(context context.Context, authorName string) (int, error) {
	return service.repo.CountByAuthor(context, authorName)
}

/*
SetActive hides or restores a review. Used by the admin CLI.

Returns:
  - error: apperr.NotFound for unknown reviews
*/
func (service *Service) SetActive(context context.Context, id int64, active bool) error {
	if err := service.repo.SetActive(context, id, active); err != nil {
		return err
	}

	service.logger.Info("review_moderated", slog.Int64("review_id", id), slog.Bool("active", active))
	return nil
}
