// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kinoteka/internal/core/review"
)

/*
TestAverage verifies the mean and its one-decimal rounding.
*/
func TestAverage(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"No ratings", nil, 0},
		{"Single", []int{4}, 4.0},
		{"Whole mean", []int{5, 3}, 4.0},
		{"Repeating decimal", []int{5, 4, 4}, 4.3},
		{"Rounds down", []int{1, 1, 2}, 1.3},
		{"Half rounds up", []int{4, 4, 5, 4}, 4.3},
		{"Exact tenth", []int{1, 2, 2, 2, 2}, 1.8},
		{"Two thirds", []int{1, 2, 2}, 1.7},
		{"All fives", []int{5, 5, 5, 5, 5, 5}, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, review.Average(tt.ratings))
		})
	}
}

/*
TestSummarize verifies that inactive reviews never count.
*/
func TestSummarize(t *testing.T) {
	reviews := []*review.Review{
		{ID: 3, Rating: 5, IsActive: true},
		{ID: 2, Rating: 1, IsActive: false},
		{ID: 1, Rating: 4, IsActive: true},
	}

	board := review.Summarize(reviews)

	assert.Equal(t, 4.5, board.AverageRating)
	assert.Equal(t, 2, board.ReviewsCount)
	assert.Equal(t, int64(3), board.Reviews[0].ID)
	assert.Equal(t, int64(1), board.Reviews[1].ID)

	empty := review.Summarize(nil)
	assert.Equal(t, 0.0, empty.AverageRating)
	assert.Zero(t, empty.ReviewsCount)
	assert.NotNil(t, empty.Reviews)
}
