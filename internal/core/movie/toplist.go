// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
	"github.com/taibuivan/kinoteka/internal/platform/validate"
)

// TopListCapacity is the maximum number of featured movies.
const TopListCapacity = 5

// Action is a top-list transition requested from a page form.
type Action string

const (
	ActionAddToTop      Action = "add_to_top"
	ActionRemoveFromTop Action = "remove_from_top"
)

// FeatureOutcome reports what [Repository.Feature] did.
type FeatureOutcome int

const (
	// FeatureApplied means the flag was set.
	FeatureApplied FeatureOutcome = iota + 1
	// FeatureAlreadyTop means the movie was featured already; nothing changed.
	FeatureAlreadyTop
	// FeatureCapacityReached means the set is full; nothing changed.
	FeatureCapacityReached
)

// Transition describes a completed top-list change for the confirmation message.
type Transition struct {
	Movie   *Movie `json:"movie"`
	Action  Action `json:"action"`
	Changed bool   `json:"changed"`
	Message string `json:"message"`
}

// TopList guards the featured set and its capacity.
type TopList struct {
	repo     Repository
	capacity int
	logger   *slog.Logger
}

// NewTopList constructs the top-list manager with [TopListCapacity].
func NewTopList(repo Repository, logger *slog.Logger) *TopList {
	return &TopList{
		repo:     repo,
		capacity: TopListCapacity,
		logger:   logger,
	}
}

// Capacity returns the maximum size of the featured set.
func (list *TopList) Capacity() int {
	return list.capacity
}

// Count returns the current size of the featured set.
func (list *TopList) Count(context context.Context) (int, error) {
	return list.repo.CountTop(context)
}

// Movies returns the featured movies, newest first.
func (list *TopList) Movies(context context.Context) ([]*Movie, error) {
	return list.repo.ListTop(context)
}

/*
Apply dispatches a form action to [TopList.Promote] or [TopList.Demote].

Returns:
  - *Transition: The completed change
  - error: ValidationError for unknown actions, plus Promote/Demote errors
*/
func (list *TopList) Apply(context context.Context, identity sec.Identity, movieID int64, action string) (*Transition, error) {
	switch Action(action) {
	case ActionAddToTop:
		return list.Promote(context, identity, movieID)
	case ActionRemoveFromTop:
		return list.Demote(context, identity, movieID)
	default:
		return nil, validate.RequiredError(FieldAction, "Unknown top list action")
	}
}

/*
Promote adds a movie to the featured set.

Description: A movie that is already featured is reported as a successful
no-op. A full set is reported as CapacityExceeded and nothing changes.

Parameters:
  - context: context.Context
  - identity: sec.Identity (must be a manager)
  - movieID: int64

Returns:
  - *Transition: The completed change
  - error: Forbidden, NotFound, CapacityExceeded or storage errors
*/
func (list *TopList) Promote(context context.Context, identity sec.Identity, movieID int64) (*Transition, error) {
	if err := sec.RequireManager(identity); err != nil {
		return nil, err
	}

	movie, err := list.repo.Get(context, movieID)
	if err != nil {
		return nil, err
	}

	outcome, err := list.repo.Feature(context, movieID, list.capacity)
	if err != nil {
		return nil, err
	}

	switch outcome {
	case FeatureCapacityReached:
		list.logger.Info("top_list_full", slog.Int64("movie_id", movieID), slog.String("user_id", identity.UserID))
		return nil, apperr.CapacityExceeded(fmt.Sprintf("The top list can hold at most %d movies.", list.capacity))

	case FeatureAlreadyTop:
		return &Transition{
			Movie:   movie,
			Action:  ActionAddToTop,
			Message: fmt.Sprintf("%q is already in the top list.", movie.Title),
		}, nil
	}

	movie.IsTop = true
	list.logger.Info("top_list_promoted", slog.Int64("movie_id", movieID), slog.String("user_id", identity.UserID))

	return &Transition{
		Movie:   movie,
		Action:  ActionAddToTop,
		Changed: true,
		Message: fmt.Sprintf("%q added to the top list!", movie.Title),
	}, nil
}

/*
Demote removes a movie from the featured set. It never fails for an existing
movie, whether or not it was featured.

Returns:
  - *Transition: The completed change
  - error: Forbidden, NotFound or storage errors
*/
func (list *TopList) Demote(context context.Context, identity sec.Identity, movieID int64) (*Transition, error) {
	if err := sec.RequireManager(identity); err != nil {
		return nil, err
	}

	movie, err := list.repo.Get(context, movieID)
	if err != nil {
		return nil, err
	}

	if err := list.repo.Unfeature(context, movieID); err != nil {
		return nil, err
	}

	changed := movie.IsTop
	movie.IsTop = false

	if changed {
		list.logger.Info("top_list_demoted", slog.Int64("movie_id", movieID), slog.String("user_id", identity.UserID))
	}

	return &Transition{
		Movie:   movie,
		Action:  ActionRemoveFromTop,
		Changed: changed,
		Message: fmt.Sprintf("%q removed from the top list!", movie.Title),
	}, nil
}
