// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

// Repository defines the data access contract for reviews.
type Repository interface {

	/*
		ListActive returns the active reviews of a movie, newest first.

		Parameters:
		  - context: context.Context
		  - movieID: int64

		Returns:
		  - []*Review: Active reviews only
		  - error: Database retrieval failures
	*/
	ListActive(context context.Context, movieID int64) ([]*Review, error)

	/*
		Create persists a new review and fills in its ID.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, review *Review) error

	/*
		CountByAuthor returns how many reviews carry the given author name.

		Parameters:
		  - context: context.Context
		  - authorName: string

		Returns:
		  - int: Number of reviews, active or not
		  - error: Database retrieval failures
	*/
	CountByAuthor(context context.Context, authorName string) (int, error)

	/*
		SetActive flips the moderation flag of one review.

		Returns:
		  - error: apperr.NotFound if no such review exists
	*/
	SetActive(context context.Context, id int64, active bool) error
}

// MovieLookup reports whether a movie exists. Implemented by the movie service.
type MovieLookup interface {
	Exists(context context.Context, movieID int64) (bool, error)
}
