// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import "context"

// Repository defines the data access contract for movies.
type Repository interface {

	/*
		List returns a page of movies ordered by year, newest first.

		Parameters:
		  - context: context.Context
		  - filter: Filter (an empty query matches everything)
		  - limit, offset: int

		Returns:
		  - []*Movie: Movies with their director, without actors
		  - int: Total number of matching movies
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Movie, int, error)

	/*
		ListTop returns the featured movies ordered by year, newest first.
	*/
	ListTop(context context.Context) ([]*Movie, error)

	/*
		Get returns the movie with its director and actors.

		Returns:
		  - *Movie: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	Get(context context.Context, id int64) (*Movie, error)

	/*
		Exists reports whether a movie with the given ID exists.
	*/
	Exists(context context.Context, id int64) (bool, error)

	/*
		Create persists a movie with its cast in one transaction.

		Parameters:
		  - context: context.Context
		  - movie: *Movie (ID and CreatedAt are filled in)
		  - actorIDs: []int64

		Returns:
		  - error: Validation (unknown director/actor) or persistence failures
	*/
	Create(context context.Context, movie *Movie, actorIDs []int64) error

	/*
		Count returns the total number of movies.
	*/
	Count(context context.Context) (int, error)

	/*
		CountTop returns the number of featured movies.
	*/
	CountTop(context context.Context) (int, error)

	/*
		Feature marks the movie as featured unless the featured set is full.

		Description: The count check and the update happen atomically, so
		concurrent promotions can never exceed capacity.

		Returns:
		  - FeatureOutcome: What happened
		  - error: apperr.NotFound or database failures
	*/
	Feature(context context.Context, id int64, capacity int) (FeatureOutcome, error)

	/*
		Unfeature clears the featured flag. Clearing an unset flag is not an error.

		Returns:
		  - error: apperr.NotFound or database failures
	*/
	Unfeature(context context.Context, id int64) error
}
