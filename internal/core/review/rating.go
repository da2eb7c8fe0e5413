// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

/*
Average returns the arithmetic mean of ratings rounded to one decimal place.

Rounding is half away from zero and is computed on integers, so 4.25 becomes
4.3 exactly as PostgreSQL ROUND(AVG(x)::numeric, 1) would report it. An empty
slice yields 0.
*/
func Average(ratings []int) float64 {
	count := len(ratings)
	if count == 0 {
		return 0
	}

	sum := 0
	for _, rating := range ratings {
		sum += rating
	}

	// Tenths, rounded half away from zero. Ratings are positive.
	scaled := 10 * sum
	tenths := scaled / count
	if 2*(scaled%count) >= count {
		tenths++
	}

	return float64(tenths) / 10
}

/*
Summarize builds the movie page board from a list of reviews.

Inactive reviews are dropped before counting, so callers may pass the raw list.
*/
func Summarize(reviews []*Review) *Board {
	active := make([]*Review, 0, len(reviews))
	ratings := make([]int, 0, len(reviews))

	for _, review := range reviews {
		if !review.IsActive {
			continue
		}
		active = append(active, review)
		ratings = append(ratings, review.Rating)
	}

	return &Board{
		Reviews:       active,
		AverageRating: Average(ratings),
		ReviewsCount:  len(active),
	}
}
