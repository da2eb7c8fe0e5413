// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/kinoteka/internal/core/movie"
	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
)

// memoryRepository is an in-memory [movie.Repository] that honors the capacity atomically.
type memoryRepository struct {
	mu      sync.Mutex
	movies  map[int64]*movie.Movie
	nextID  int64
	writes  int
	created [][]int64
}

func newMemoryRepository(movies ...*movie.Movie) *memoryRepository {
	repo := &memoryRepository{movies: make(map[int64]*movie.Movie)}
	for _, m := range movies {
		repo.movies[m.ID] = m
		if m.ID > repo.nextID {
			repo.nextID = m.ID
		}
	}
	return repo
}

func (m *memoryRepository) sorted(keep func(*movie.Movie) bool) []*movie.Movie {
	result := []*movie.Movie{}
	for _, item := range m.movies {
		if keep(item) {
			clone := *item
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year > result[j].Year
		}
		return result[i].ID > result[j].ID
	})
	return result
}

func (m *memoryRepository) List(_ context.Context, filter movie.Filter, limit, offset int) ([]*movie.Movie, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	query := strings.ToLower(filter.Query)
	matches := m.sorted(func(item *movie.Movie) bool {
		if query == "" || strings.Contains(strings.ToLower(item.Title), query) {
			return true
		}
		if item.Director != nil && strings.Contains(strings.ToLower(item.Director.Name), query) {
			return true
		}
		for _, actor := range item.Actors {
			if strings.Contains(strings.ToLower(actor.Name), query) {
				return true
			}
		}
		return false
	})

	total := len(matches)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matches[offset:end], total, nil
}

func (m *memoryRepository) ListTop(_ context.Context) ([]*movie.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(item *movie.Movie) bool { return item.IsTop }), nil
}

func (m *memoryRepository) Get(_ context.Context, id int64) (*movie.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.movies[id]
	if !ok {
		return nil, apperr.NotFound("Movie")
	}
	clone := *item
	return &clone, nil
}

func (m *memoryRepository) Exists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.movies[id]
	return ok, nil
}

func (m *memoryRepository) Create(_ context.Context, item *movie.Movie, actorIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.writes++
	item.ID = m.nextID
	clone := *item
	m.movies[item.ID] = &clone
	m.created = append(m.created, actorIDs)
	return nil
}

func (m *memoryRepository) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.movies), nil
}

func (m *memoryRepository) CountTop(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countTop(), nil
}

func (m *memoryRepository) countTop() int {
	count := 0
	for _, item := range m.movies {
		if item.IsTop {
			count++
		}
	}
	return count
}

func (m *memoryRepository) Feature(_ context.Context, id int64, capacity int) (movie.FeatureOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.movies[id]
	if !ok {
		return 0, apperr.NotFound("Movie")
	}
	if item.IsTop {
		return movie.FeatureAlreadyTop, nil
	}
	if m.countTop() >= capacity {
		return movie.FeatureCapacityReached, nil
	}

	item.IsTop = true
	m.writes++
	return movie.FeatureApplied, nil
}

func (m *memoryRepository) Unfeature(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.movies[id]
	if !ok {
		return apperr.NotFound("Movie")
	}
	item.IsTop = false
	m.writes++
	return nil
}

// # Fixtures

var (
	manager = sec.Identity{UserID: "u-boss", Username: "boss", Authenticated: true, Staff: true}
	alice   = sec.Identity{UserID: "u-alice", Username: "alice", Authenticated: true}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// catalog builds count movies with IDs 1..count and years 2000+ID.
func catalog(count int) []*movie.Movie {
	movies := make([]*movie.Movie, 0, count)
	for i := 1; i <= count; i++ {
		movies = append(movies, &movie.Movie{ID: int64(i), Title: "Movie " + string(rune('A'+i-1)), Year: 2000 + i})
	}
	return movies
}
