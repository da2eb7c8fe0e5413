// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package director

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/kinoteka/internal/platform/sec"
	"github.com/taibuivan/kinoteka/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, limit, offset int) ([]*Director, int, error) {
	return service.repo.List(context, limit, offset)
}

/*
Get returns the director and their movies, newest first.

Returns:
  - *Detail: Director with filmography
  - error: apperr.NotFound for unknown IDs
*/
func (service *Service) Get(context context.Context, id int64) (*Detail, error) {
	director, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	movies, err := service.repo.ListMovies(context, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Director: director, Movies: movies}, nil
}

/*
Create adds a director to the catalog. Only managers may do so.

Returns:
  - *Director: The persisted entity
  - error: apperr.Forbidden, validation or storage errors
*/
func (service *Service) Create(context context.Context, identity sec.Identity, input CreateInput) (*Director, error) {
	if err := sec.RequireManager(identity); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	photo := strings.TrimSpace(input.PhotoURL)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, NameMaxLength)
	validator.URL(FieldPhoto, photo)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	director := &Director{Name: name, Bio: strings.TrimSpace(input.Bio)}
	if photo != "" {
		director.PhotoURL = &photo
	}

	if err := service.repo.Create(context, director); err != nil {
		return nil, err
	}

	service.logger.Info("director_created",
		slog.Int64("director_id", director.ID),
		slog.String("name", director.Name),
		slog.String("user_id", identity.UserID),
	)
	return director, nil
}
