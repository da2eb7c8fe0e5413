// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package actor

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/kinoteka/internal/platform/database/schema"
	"github.com/taibuivan/kinoteka/internal/platform/dberr"
)

const resourceName = "Actor"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Actor, int, error) {
	actor := schema.CatalogActor

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, actor.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC, %s ASC
		LIMIT $1 OFFSET $2
	`,
		actor.ID, actor.Name, actor.Bio, actor.PhotoURL,
		actor.Table,
		actor.Name, actor.ID,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	actors := make([]*Actor, 0, limit)
	for rows.Next() {
		d := &Actor{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Bio, &d.PhotoURL); err != nil {
			return nil, 0, dberr.Wrap(err, resourceName)
		}
		actors = append(actors, d)
	}

	return actors, total, dberr.Wrap(rows.Err(), resourceName)
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (*Actor, error) {
	actor := schema.CatalogActor

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		actor.ID, actor.Name, actor.Bio, actor.PhotoURL,
		actor.Table, actor.ID,
	)

	d := &Actor{}
	if err := repository.db.QueryRow(context, query, id).Scan(&d.ID, &d.Name, &d.Bio, &d.PhotoURL); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	return d, nil
}

func (repository *PostgresRepository) ListMovies(context context.Context, actorID int64) ([]MovieSummary, error) {
	movie := schema.CatalogMovie
	cast := schema.CatalogMovieActor

	query := fmt.Sprintf(`
		SELECT m.%s, m.%s, m.%s, m.%s, m.%s
		FROM %s m
		JOIN %s c ON c.%s = m.%s
		WHERE c.%s = $1
		ORDER BY m.%s DESC, m.%s DESC
	`,
		movie.ID, movie.Title, movie.Year, movie.PosterURL, movie.IsTop,
		movie.Table,
		cast.Table, cast.MovieID, movie.ID,
		cast.ActorID,
		movie.Year, movie.ID,
	)

	rows, err := repository.db.Query(context, query, actorID)
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

func (repository *PostgresRepository) Create(context context.Context, d *Actor) error {
	actor := schema.CatalogActor

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s
	`,
		actor.Table, actor.Name, actor.Bio, actor.PhotoURL,
		actor.ID,
	)

	err := repository.db.QueryRow(context, query, d.Name, d.Bio, d.PhotoURL).Scan(&d.ID)
	return dberr.Wrap(err, resourceName)
}
