// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package director

import "context"

// Repository defines the data access contract for directors.
type Repository interface {

	/*
		List returns a page of directors ordered by name.

		Returns:
		  - []*Director: The requested page
		  - int: Total number of directors
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Director, int, error)

	/*
		Get returns the director with the given ID.

		Returns:
		  - *Director: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	Get(context context.Context, id int64) (*Director, error)

	/*
		ListMovies returns the director's movies ordered by year, newest first.
	*/
	ListMovies(context context.Context, directorID int64) ([]MovieSummary, error)

	/*
		Create persists a new director and fills in its ID.
	*/
	Create(context context.Context, director *Director) error
}
