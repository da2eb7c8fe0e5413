// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package actor

import "context"

// Repository defines the data access contract for actors.
type Repository interface {

	/*
		List returns a page of actors ordered by name.

		Returns:
		  - []*Actor: The requested page
		  - int: Total number of actors
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Actor, int, error)

	/*
		Get returns the actor with the given ID.

		Returns:
		  - *Actor: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	Get(context context.Context, id int64) (*Actor, error)

	/*
		ListMovies returns the actor's movies ordered by year, newest first.
	*/
	ListMovies(context context.Context, actorID int64) ([]MovieSummary, error)

	/*
		Create persists a new actor and fills in its ID.
	*/
	Create(context context.Context, actor *Actor) error
}
