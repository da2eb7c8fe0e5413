// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package director

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/kinoteka/internal/platform/database/schema"
	"github.com/taibuivan/kinoteka/internal/platform/dberr"
)

const resourceName = "Director"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Director, int, error) {
	director := schema.CatalogDirector

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, director.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC, %s ASC
		LIMIT $1 OFFSET $2
	`,
		director.ID, director.Name, director.Bio, director.PhotoURL,
		director.Table,
		director.Name, director.ID,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	directors := make([]*Director, 0, limit)
	for rows.Next() {
		d := &Director{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Bio, &d.PhotoURL); err != nil {
			return nil, 0, dberr.Wrap(err, resourceName)
		}
		directors = append(directors, d)
	}

	return directors, total, dberr.Wrap(rows.Err(), resourceName)
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (*Director, error) {
	director := schema.CatalogDirector

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		director.ID, director.Name, director.Bio, director.PhotoURL,
		director.Table, director.ID,
	)

	d := &Director{}
	if err := repository.db.QueryRow(context, query, id).Scan(&d.ID, &d.Name, &d.Bio, &d.PhotoURL); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	return d, nil
}

func (repository *PostgresRepository) ListMovies(context context.Context, directorID int64) ([]MovieSummary, error) {
	movie := schema.CatalogMovie

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC
	`,
		movie.ID, movie.Title, movie.Year, movie.PosterURL, movie.IsTop,
		movie.Table, movie.DirectorID,
		movie.Year, movie.ID,
	)

	rows, err := repository.db.Query(context, query, directorID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	movies := []MovieSummary{}
	for rows.Next() {
		var m MovieSummary
		if err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.PosterURL, &m.IsTop); err != nil {
			return nil, dberr.Wrap(err, resourceName)
		}
		movies = append(movies, m)
	}

	return movies, dberr.Wrap(rows.Err(), resourceName)
}

func (repository *PostgresRepository) Create(context context.Context, d *Director) error {
	director := schema.CatalogDirector

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s
	`,
		director.Table, director.Name, director.Bio, director.PhotoURL,
		director.ID,
	)

	err := repository.db.QueryRow(context, query, d.Name, d.Bio, d.PhotoURL).Scan(&d.ID)
	return dberr.Wrap(err, resourceName)
}
