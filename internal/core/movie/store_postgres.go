// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/kinoteka/internal/platform/database/schema"
	"github.com/taibuivan/kinoteka/internal/platform/dberr"
	"github.com/taibuivan/kinoteka/internal/platform/postgres"
)

const resourceName = "Movie"

// topListLockKey serializes every featured-flag promotion across the cluster.
const topListLockKey int64 = 0x6b696e6f746f70 // "kinotop"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectColumns lists the movie columns plus the director, aliased m and d.
func selectColumns() string {
	movie := schema.CatalogMovie
	director := schema.CatalogDirector

	return fmt.Sprintf(`m.%s, m.%s, m.%s, m.%s, m.%s, m.%s, m.%s, d.%s, d.%s`,
		movie.ID, movie.Title, movie.Description, movie.Year, movie.PosterURL, movie.IsTop, movie.CreatedAt,
		director.ID, director.Name,
	)
}

// fromClause joins the optional director.
func fromClause() string {
	movie := schema.CatalogMovie
	director := schema.CatalogDirector

	return fmt.Sprintf(`%s m LEFT JOIN %s d ON d.%s = m.%s`,
		movie.Table, director.Table, director.ID, movie.DirectorID,
	)
}

func scanMovie(row pgx.Row) (*Movie, error) {
	m := &Movie{Actors: []Person{}}

	var (
		directorID   *int64
		directorName *string
	)

	if err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Year, &m.PosterURL, &m.IsTop, &m.CreatedAt, &directorID, &directorName); err != nil {
		return nil, err
	}

	if directorID != nil && directorName != nil {
		m.Director = &Person{ID: *directorID, Name: *directorName}
	}

	return m, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Movie, int, error) {
	movie := schema.CatalogMovie
	director := schema.CatalogDirector
	actor := schema.CatalogActor
	cast := schema.CatalogMovieActor

	where := ""
	args := []any{}

	if query := strings.TrimSpace(filter.Query); query != "" {
		// EXISTS keeps the result distinct without a GROUP BY.
		where = fmt.Sprintf(`
		WHERE m.%s ILIKE $1
		   OR d.%s ILIKE $1
		   OR EXISTS (
		        SELECT 1 FROM %s c JOIN %s a ON a.%s = c.%s
		        WHERE c.%s = m.%s AND a.%s ILIKE $1
		   )`,
			movie.Title,
			director.Name,
			cast.Table, actor.Table, actor.ID, cast.ActorID,
			cast.MovieID, movie.ID, actor.Name,
		)
		args = append(args, "%"+escapeLike(query)+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s %s`, fromClause(), where)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		%s
		ORDER BY m.%s DESC, m.%s DESC
		LIMIT $%s OFFSET $%s
	`,
		selectColumns(), fromClause(), where,
		movie.Year, movie.ID,
		strconv.Itoa(len(args)+1), strconv.Itoa(len(args)+2),
	)
	args = append(args, limit, offset)

	movies, err := repository.queryMovies(context, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

func (repository *PostgresRepository) ListTop(context context.Context) ([]*Movie, error) {
	movie := schema.CatalogMovie

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE m.%s
		ORDER BY m.%s DESC, m.%s DESC
	`,
		selectColumns(), fromClause(),
		movie.IsTop,
		movie.Year, movie.ID,
	)

	return repository.queryMovies(context, query)
}

func (repository *PostgresRepository) queryMovies(context context.Context, query string, args ...any) ([]*Movie, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	movies := []*Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceName)
		}
		movies = append(movies, m)
	}

	return movies, dberr.Wrap(rows.Err(), resourceName)
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (*Movie, error) {
	movie := schema.CatalogMovie
	actor := schema.CatalogActor
	cast := schema.CatalogMovieActor

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE m.%s = $1`, selectColumns(), fromClause(), movie.ID)

	m, err := scanMovie(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	castQuery := fmt.Sprintf(`
		SELECT a.%s, a.%s
		FROM %s c
		JOIN %s a ON a.%s = c.%s
		WHERE c.%s = $1
		ORDER BY a.%s ASC
	`,
		actor.ID, actor.Name,
		cast.Table,
		actor.Table, actor.ID, cast.ActorID,
		cast.MovieID,
		actor.Name,
	)

	rows, err := repository.db.Query(context, castQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	for rows.Next() {
		var person Person
		if err := rows.Scan(&person.ID, &person.Name); err != nil {
			return nil, dberr.Wrap(err, resourceName)
		}
		m.Actors = append(m.Actors, person)
	}

	return m, dberr.Wrap(rows.Err(), resourceName)
}

func (repository *PostgresRepository) Exists(context context.Context, id int64) (bool, error) {
	movie := schema.CatalogMovie

	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, movie.Table, movie.ID)
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resourceName)
	}

	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, m *Movie, actorIDs []int64) error {
	movie := schema.CatalogMovie
	cast := schema.CatalogMovieActor

	var directorID *int64
	if m.Director != nil {
		directorID = &m.Director.ID
	}

	insertMovie := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING %s, %s
	`,
		movie.Table, movie.Title, movie.Description, movie.Year, movie.PosterURL, movie.IsTop, movie.DirectorID,
		movie.ID, movie.CreatedAt,
	)

	insertCast := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`, cast.Table, cast.MovieID, cast.ActorID)

	err := postgres.InTx(context, repository.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(context, insertMovie, m.Title, m.Description, m.Year, m.PosterURL, directorID).Scan(&m.ID, &m.CreatedAt); err != nil {
			return err
		}

		if len(actorIDs) == 0 {
			return nil
		}

		_, err := tx.Exec(context, insertCast, m.ID, actorIDs)
		return err
	})

	return dberr.Wrap(err, resourceName)
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CatalogMovie.Table)
	if err := repository.db.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, resourceName)
	}
	return total, nil
}

func (repository *PostgresRepository) CountTop(context context.Context) (int, error) {
	return countTop(context, repository.db)
}

func countTop(context context.Context, db interface {
	QueryRow(context.Context, string, ...any) pgx.Row
}) (int, error) {
	movie := schema.CatalogMovie

	var total int
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, movie.Table, movie.IsTop)
	if err := db.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, resourceName)
	}
	return total, nil
}

/*
Feature sets the featured flag under a transaction-scoped advisory lock.

The lock makes the read-count-then-update sequence atomic with respect to
every other promotion, closing the race two managers would otherwise have.
*/
func (repository *PostgresRepository) Feature(context context.Context, id int64, capacity int) (FeatureOutcome, error) {
	movie := schema.CatalogMovie

	outcome := FeatureApplied

	err := postgres.InTx(context, repository.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, `SELECT pg_advisory_xact_lock($1)`, topListLockKey); err != nil {
			return err
		}

		var isTop bool
		current := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, movie.IsTop, movie.Table, movie.ID)
		if err := tx.QueryRow(context, current, id).Scan(&isTop); err != nil {
			return err
		}

		if isTop {
			outcome = FeatureAlreadyTop
			return nil
		}

		featured, err := countTop(context, tx)
		if err != nil {
			return err
		}

		if featured >= capacity {
			outcome = FeatureCapacityReached
			return nil
		}

		update := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1`, movie.Table, movie.IsTop, movie.ID)
		_, err = tx.Exec(context, update, id)
		return err
	})

	if err != nil {
		return 0, dberr.Wrap(err, resourceName)
	}

	return outcome, nil
}

func (repository *PostgresRepository) Unfeature(context context.Context, id int64) error {
	movie := schema.CatalogMovie

	query := fmt.Sprintf(`UPDATE %s SET %s = FALSE WHERE %s = $1`, movie.Table, movie.IsTop, movie.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceName)
	}

	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceName)
	}
	return nil
}

// escapeLike neutralizes LIKE wildcards typed by the user.
func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
