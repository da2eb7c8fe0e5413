// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package actor_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kinoteka/internal/core/actor"
	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
)

type fakeRepository struct {
	actors []*actor.Actor
	movies    map[int64][]actor.MovieSummary
}

func (f *fakeRepository) List(_ context.Context, limit, offset int) ([]*actor.Actor, int, error) {
	end := offset + limit
	if end > len(f.actors) {
		end = len(f.actors)
	}
	if offset > end {
		offset = end
	}
	return f.actors[offset:end], len(f.actors), nil
}

func (f *fakeRepository) Get(_ context.Context, id int64) (*actor.Actor, error) {
	for _, d := range f.actors {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, apperr.NotFound("Actor")
}

func (f *fakeRepository) ListMovies(_ context.Context, id int64) ([]actor.MovieSummary, error) {
	return f.movies[id], nil
}

func (f *fakeRepository) Create(_ context.Context, d *actor.Actor) error {
	d.ID = int64(len(f.actors) + 1)
	f.actors = append(f.actors, d)
	return nil
}

var (
	manager = sec.Identity{UserID: "u1", Username: "boss", Authenticated: true, Staff: true}
	member  = sec.Identity{UserID: "u2", Username: "alice", Authenticated: true}
)

func newService(repo actor.Repository) *actor.Service {
	return actor.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestCreate verifies the manager gate and the form validation.
*/
func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		identity sec.Identity
		input    actor.CreateInput
		status   int
	}{
		{"Anonymous", sec.Anonymous, actor.CreateInput{Name: "Solonitsyn"}, http.StatusForbidden},
		{"Regular user", member, actor.CreateInput{Name: "Solonitsyn"}, http.StatusForbidden},
		{"Missing name", manager, actor.CreateInput{Name: "   "}, http.StatusBadRequest},
		{"Name too long", manager, actor.CreateInput{Name: strings.Repeat("x", 101)}, http.StatusBadRequest},
		{"Bad photo", manager, actor.CreateInput{Name: "Solonitsyn", PhotoURL: "ftp://x"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			_, err := newService(repo).Create(context.Background(), tt.identity, tt.input)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.status, appError.HTTPStatus)
			assert.Empty(t, repo.actors, "nothing may be persisted")
		})
	}

	t.Run("Manager", func(t *testing.T) {
		repo := &fakeRepository{}
		created, err := newService(repo).Create(context.Background(), manager, actor.CreateInput{
			Name:     "  Anatoly Solonitsyn ",
			Bio:      "Soviet actor",
			PhotoURL: "https://img.example/solonitsyn.jpg",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, "Anatoly Solonitsyn", created.Name)
		require.NotNil(t, created.PhotoURL)
		assert.Len(t, repo.actors, 1)
	})
}

/*
TestGet verifies that the detail bundles the filmography.
*/
func TestGet(t *testing.T) {
	repo := &fakeRepository{
		actors: []*actor.Actor{{ID: 7, Name: "Toshiro Mifune"}},
		movies: map[int64][]actor.MovieSummary{
			7: {{ID: 2, Title: "Yojimbo", Year: 1961}, {ID: 1, Title: "Seven Samurai", Year: 1954}},
		},
	}

	detail, err := newService(repo).Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Toshiro Mifune", detail.Actor.Name)
	assert.Len(t, detail.Movies, 2)

	_, err = newService(repo).Get(context.Background(), 99)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
