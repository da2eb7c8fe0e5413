// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package actor

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

func (service *Service) List(context context.Context, limit, offset int) ([]*Actor, int, error) {
	return service.repo.List(context, limit, offset)
}

/*
Get returns the actor and their movies, newest first.

Returns:
  - *Detail: Actor with filmography
  - error: apperr.NotFound for unknown IDs
*/
func (service *Service) Get(context context.Context, id int64) (*Detail, error) {
	actor, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	movies, err := service.repo.ListMovies(context, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Actor: actor, Movies: movies}, nil
}

/*
Create adds an actor to the catalog. Only managers may do so.

Returns:
  - *Actor: The persisted entity
  - error: apperr.Forbidden, validation or storage errors
*/
func (service *Service) Create(context context.Context, identity sec.Identity, input CreateInput) (*Actor, error) {
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

	actor := &Actor{Name: name, Bio: strings.TrimSpace(input.Bio)}
	if photo != "" {
		actor.PhotoURL = &photo
	}

	if err := service.repo.Create(context, actor); err != nil {
		return nil, err
	}

	service.logger.Info("actor_created",
		slog.Int64("actor_id", actor.ID),
		slog.String("name", actor.Name),
		slog.String("user_id", identity.UserID),
	)
	return actor, nil
}
