// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kinoteka/internal/core/review"
	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
	"github.com/taibuivan/kinoteka/pkg/pointer"
)

// # Fakes

type memoryRepository struct {
	reviews []*review.Review
}

func (m *memoryRepository) ListActive(_ context.Context, movieID int64) ([]*review.Review, error) {
	result := []*review.Review{}
	for i := len(m.reviews) - 1; i >= 0; i-- {
		if r := m.reviews[i]; r.MovieID == movieID && r.IsActive {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *memoryRepository) Create(_ context.Context, r *review.Review) error {
	r.ID = int64(len(m.reviews) + 1)
	m.reviews = append(m.reviews, r)
	return nil
}

func (m *memoryRepository) CountByAuthor(_ context.Context, authorName string) (int, error) {
	count := 0
	for _, r := range m.reviews {
		if r.AuthorName == authorName {
			count++
		}
	}
	return count, nil
}

func (m *memoryRepository) SetActive(_ context.Context, id int64, active bool) error {
	for _, r := range m.reviews {
		if r.ID == id {
			r.IsActive = active
			return nil
		}
	}
	return apperr.NotFound("Review")
}

type knownMovies map[int64]bool

func (k knownMovies) Exists(_ context.Context, id int64) (bool, error) {
	return k[id], nil
}

// # Helpers

var (
	alice     = sec.Identity{UserID: "u-alice", Username: "alice", Email: "alice@example.com", Authenticated: true}
	fixedTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
)

func newService(repo *memoryRepository) *review.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return review.NewService(repo, knownMovies{1: true}, logger).WithClock(func() time.Time { return fixedTime })
}

// # Tests

/*
TestSubmit_Rejections verifies that nothing is stored for invalid submissions.
*/
func TestSubmit_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		identity sec.Identity
		movieID  int64
		input    review.SubmitInput
		status   int
		field    string
	}{
		{"Anonymous", sec.Anonymous, 1, review.SubmitInput{Rating: pointer.To(4), Text: "Great"}, http.StatusUnauthorized, ""},
		{"Unknown movie", alice, 99, review.SubmitInput{Rating: pointer.To(4), Text: "Great"}, http.StatusNotFound, ""},
		{"Missing rating", alice, 1, review.SubmitInput{Text: "Great"}, http.StatusBadRequest, review.FieldRating},
		{"Rating too high", alice, 1, review.SubmitInput{Rating: pointer.To(6), Text: "Great"}, http.StatusBadRequest, review.FieldRating},
		{"Rating too low", alice, 1, review.SubmitInput{Rating: pointer.To(0), Text: "Great"}, http.StatusBadRequest, review.FieldRating},
		{"Blank text", alice, 1, review.SubmitInput{Rating: pointer.To(3), Text: "  "}, http.StatusBadRequest, review.FieldText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryRepository{}
			_, err := newService(repo).Submit(context.Background(), tt.identity, tt.movieID, tt.input)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.status, appError.HTTPStatus)
			if tt.field != "" {
				require.NotEmpty(t, appError.Details)
				assert.Equal(t, tt.field, appError.Details[0].Field)
			}
			assert.Empty(t, repo.reviews)
		})
	}
}

/*
TestSubmit_Persists verifies the stored review and the resulting board.
*/
func TestSubmit_Persists(t *testing.T) {
	repo := &memoryRepository{}
	service := newService(repo)

	stored, err := service.Submit(context.Background(), alice, 1, review.SubmitInput{Rating: pointer.To(4), Text: " Great "})
	require.NoError(t, err)

	assert.Equal(t, "alice", stored.AuthorName)
	assert.Equal(t, 4, stored.Rating)
	assert.Equal(t, "Great", stored.Text)
	assert.True(t, stored.IsActive)
	assert.Equal(t, fixedTime, stored.CreatedAt)

	board, err := service.Board(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, board.AverageRating)
	assert.Equal(t, 1, board.ReviewsCount)

	count, err := service.CountByAuthor(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

/*
TestSetActive verifies that hidden reviews leave the average.
*/
func TestSetActive(t *testing.T) {
	repo := &memoryRepository{}
	service := newService(repo)
	ctx := context.Background()

	first, err := service.Submit(ctx, alice, 1, review.SubmitInput{Rating: pointer.To(1), Text: "Meh"})
	require.NoError(t, err)
	_, err = service.Submit(ctx, alice, 1, review.SubmitInput{Rating: pointer.To(5), Text: "Changed my mind"})
	require.NoError(t, err)

	board, _ := service.Board(ctx, 1)
	assert.Equal(t, 3.0, board.AverageRating)

	require.NoError(t, service.SetActive(ctx, first.ID, false))

	board, _ = service.Board(ctx, 1)
	assert.Equal(t, 5.0, board.AverageRating)
	assert.Equal(t, 1, board.ReviewsCount)

	err = service.SetActive(ctx, 42, false)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
