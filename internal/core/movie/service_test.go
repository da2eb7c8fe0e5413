// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kinoteka/internal/core/movie"
	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
	"github.com/taibuivan/kinoteka/pkg/pointer"
)

/*
TestCreate verifies the manager gate and field validation.
*/
func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		identity sec.Identity
		input    movie.CreateInput
		status   int
		field    string
	}{
		{"Anonymous", sec.Anonymous, movie.CreateInput{Title: "Solaris", Year: pointer.To(1972)}, http.StatusForbidden, ""},
		{"Regular user", alice, movie.CreateInput{Title: "Solaris", Year: pointer.To(1972)}, http.StatusForbidden, ""},
		{"Missing title", manager, movie.CreateInput{Year: pointer.To(1972)}, http.StatusBadRequest, movie.FieldTitle},
		{"Missing year", manager, movie.CreateInput{Title: "Solaris"}, http.StatusBadRequest, movie.FieldYear},
		{"Year out of range", manager, movie.CreateInput{Title: "Solaris", Year: pointer.To(1500)}, http.StatusBadRequest, movie.FieldYear},
		{"Bad poster", manager, movie.CreateInput{Title: "Solaris", Year: pointer.To(1972), PosterURL: "javascript:alert(1)"}, http.StatusBadRequest, movie.FieldPoster},
		{"Bad director", manager, movie.CreateInput{Title: "Solaris", Year: pointer.To(1972), DirectorID: pointer.To(int64(-1))}, http.StatusBadRequest, movie.FieldDirector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepository()
			_, err := movie.NewService(repo, discardLogger()).Create(context.Background(), tt.identity, tt.input)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.status, appError.HTTPStatus)
			if tt.field != "" {
				assert.Equal(t, tt.field, appError.Details[0].Field)
			}
			assert.Zero(t, repo.writes)
		})
	}

	t.Run("Manager", func(t *testing.T) {
		repo := newMemoryRepository()
		created, err := movie.NewService(repo, discardLogger()).Create(context.Background(), manager, movie.CreateInput{
			Title:      " Solaris ",
			Year:       pointer.To(1972),
			DirectorID: pointer.To(int64(3)),
			ActorIDs:   []int64{4, 5},
		})

		require.NoError(t, err)
		assert.Equal(t, "Solaris", created.Title)
		assert.False(t, created.IsTop, "new movies are never featured")
		assert.Equal(t, int64(3), created.Director.ID)
		assert.Equal(t, [][]int64{{4, 5}}, repo.created)
	})
}

/*
TestList verifies ordering and the search filter.
*/
func TestList(t *testing.T) {
	repo := newMemoryRepository(
		&movie.Movie{ID: 1, Title: "Stalker", Year: 1979, Director: &movie.Person{ID: 1, Name: "Andrei Tarkovsky"}},
		&movie.Movie{ID: 2, Title: "Mirror", Year: 1975, Director: &movie.Person{ID: 1, Name: "Andrei Tarkovsky"}},
		&movie.Movie{ID: 3, Title: "Brother", Year: 1997, Actors: []movie.Person{{ID: 9, Name: "Sergei Bodrov"}}},
	)
	service := movie.NewService(repo, discardLogger())

	all, total, err := service.List(context.Background(), movie.Filter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []int64{3, 1, 2}, ids(all))

	byDirector, _, err := service.List(context.Background(), movie.Filter{Query: " tarkovsky "}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(byDirector))

	byActor, _, err := service.List(context.Background(), movie.Filter{Query: "BODROV"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(byActor))
}

func ids(movies []*movie.Movie) []int64 {
	result := make([]int64, 0, len(movies))
	for _, m := range movies {
		result = append(result, m.ID)
	}
	return result
}
