// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/database/schema"
	"github.com/taibuivan/kinoteka/internal/platform/dberr"
	"github.com/taibuivan/kinoteka/internal/platform/postgres"
)

const (
	resourceUser   = "User"
	resourceSocial = "Social account"
)

// # Account Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// queryRower is satisfied by both the pool and a transaction.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func selectAccount() string {
	account := schema.UserAccount
	return fmt.Sprintf(`SELECT %s FROM %s`, strings.Join(account.Columns(), ", "), account.Table)
}

func scanAccount(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsStaff,
		&user.IsActive,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser)
	}
	return user, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, selectAccount(), schema.UserAccount.ID)
	return scanAccount(repository.db.QueryRow(context, query, id))
}

func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`%s WHERE LOWER(%s) = LOWER($1)`, selectAccount(), schema.UserAccount.Email)
	return scanAccount(repository.db.QueryRow(context, query, email))
}

func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, selectAccount(), schema.UserAccount.Username)
	return scanAccount(repository.db.QueryRow(context, query, username))
}

func (repository *PostgresRepository) UsernameExists(context context.Context, username string) (bool, error) {
	account := schema.UserAccount

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, account.Table, account.Username)

	var exists bool
	if err := repository.db.QueryRow(context, query, username).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resourceUser)
	}
	return exists, nil
}

/*
Create persists a new account into users.account.

Timestamps are initialized when not provided.

Returns:
  - error: ErrDuplicateUsername, ErrDuplicateEmail or storage errors
*/
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	return insertAccount(context, repository.db, user)
}

func insertAccount(context context.Context, db queryRower, user *User) error {
	account := schema.UserAccount

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = user.CreatedAt

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`,
		account.Table,
		account.ID, account.Username, account.Email, account.PasswordHash,
		account.IsStaff, account.IsActive, account.CreatedAt, account.UpdatedAt,
		account.ID,
	)

	err := db.QueryRow(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsStaff,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	switch {
	case err == nil:
		return nil
	case dberr.IsUniqueViolation(err, schema.UserAccount.UsernameKey):
		return ErrDuplicateUsername
	case dberr.IsUniqueViolation(err, schema.UserAccount.EmailKey):
		return ErrDuplicateEmail
	default:
		return dberr.Wrap(err, resourceUser)
	}
}

func (repository *PostgresRepository) TouchLogin(context context.Context, userID string, at time.Time) error {
	account := schema.UserAccount

	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $2 WHERE %s = $1`,
		account.Table, account.LastLoginAt, account.UpdatedAt, account.ID,
	)

	if _, err := repository.db.Exec(context, query, userID, at); err != nil {
		return dberr.Wrap(err, resourceUser)
	}
	return nil
}

func (repository *PostgresRepository) SetStaff(context context.Context, username string, staff bool) error {
	account := schema.UserAccount

	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		account.Table, account.IsStaff, account.UpdatedAt, account.Username,
	)

	tag, err := repository.db.Exec(context, query, username, staff)
	if err != nil {
		return dberr.Wrap(err, resourceUser)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}
	return nil
}

// # Social Logins

func (repository *PostgresRepository) FindSocial(context context.Context, provider, uid string) (*SocialAccount, error) {
	social := schema.UserSocialAccount

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		social.ID, social.UserID, social.Provider, social.UID, social.ExtraData, social.CreatedAt,
		social.Table,
		social.Provider, social.UID,
	)

	account := &SocialAccount{}
	err := repository.db.QueryRow(context, query, provider, uid).Scan(
		&account.ID,
		&account.UserID,
		&account.Provider,
		&account.UID,
		&account.ExtraData,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, resourceSocial)
	}
	return account, nil
}

func (repository *PostgresRepository) LinkSocial(context context.Context, account *SocialAccount) error {
	return insertSocial(context, repository.db, account)
}

func insertSocial(context context.Context, db queryRower, account *SocialAccount) error {
	social := schema.UserSocialAccount

	if account.ExtraData == nil {
		account.ExtraData = map[string]any{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		social.Table,
		social.UserID, social.Provider, social.UID, social.ExtraData,
		social.ID, social.CreatedAt,
	)

	err := db.QueryRow(context, query,
		account.UserID, account.Provider, account.UID, account.ExtraData,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceSocial)
	}
	return nil
}

// CreateWithSocial inserts the account and its provider link in one transaction.
func (repository *PostgresRepository) CreateWithSocial(context context.Context, user *User, account *SocialAccount) error {
	return postgres.InTx(context, repository.db, func(tx pgx.Tx) error {
		if err := insertAccount(context, tx, user); err != nil {
			return err
		}
		account.UserID = user.ID
		return insertSocial(context, tx, account)
	})
}
