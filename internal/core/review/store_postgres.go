// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/kinoteka/internal/platform/database/schema"
	"github.com/taibuivan/kinoteka/internal/platform/dberr"
)

const resourceName = "Review"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListActive(context context.Context, movieID int64) ([]*Review, error) {
	review := schema.CatalogReview

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s
		ORDER BY %s DESC, %s DESC
	`,
		review.ID, review.MovieID, review.AuthorName, review.Rating, review.Text, review.IsActive, review.CreatedAt,
		review.Table,
		review.MovieID, review.IsActive,
		review.CreatedAt, review.ID,
	)

	rows, err := repository.db.Query(context, query, movieID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		r := &Review{}
		if err := rows.Scan(&r.ID, &r.MovieID, &r.AuthorName, &r.Rating, &r.Text, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, resourceName)
		}
		reviews = append(reviews, r)
	}

	return reviews, dberr.Wrap(rows.Err(), resourceName)
}

func (repository *PostgresRepository) Create(context context.Context, r *Review) error {
	review := schema.CatalogReview

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`,
		review.Table, review.MovieID, review.AuthorName, review.Rating, review.Text, review.IsActive, review.CreatedAt,
		review.ID,
	)

	err := repository.db.QueryRow(context, query,
		r.MovieID, r.AuthorName, r.Rating, r.Text, r.IsActive, r.CreatedAt,
	).Scan(&r.ID)

	return dberr.Wrap(err, resourceName)
}

func (repository *PostgresRepository) CountByAuthor(context context.Context, authorName string) (int, error) {
	review := schema.CatalogReview

	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, review.Table, review.AuthorName)

	var total int
	if err := repository.db.QueryRow(context, query, authorName).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, resourceName)
	}

	return total, nil
}

func (repository *PostgresRepository) SetActive(context context.Context, id int64, active bool) error {
	review := schema.CatalogReview

	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, review.Table, review.IsActive, review.ID)

	cmd, err := repository.db.Exec(context, query, id, active)
	if err != nil {
		return dberr.Wrap(err, resourceName)
	}

	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceName)
	}
	return nil
}
