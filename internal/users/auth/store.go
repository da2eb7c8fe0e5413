// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"time"
)

// Unique-constraint failures reported by [Repository.Create] so the service
// can attach them to the right form field.
var (
	ErrDuplicateUsername = errors.New("auth: username already exists")
	ErrDuplicateEmail    = errors.New("auth: email already exists")
)

// # Account Data Access

// Repository defines the data access contract for accounts and social logins.
type Repository interface {

	// FindByID returns the account with the given ID.
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email, compared case-insensitively.
	FindByEmail(context context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(context context.Context, username string) (*User, error)

	// UsernameExists reports whether the username is taken.
	UsernameExists(context context.Context, username string) (bool, error)

	/*
		Create persists a brand-new account.

		Returns:
		  - error: [ErrDuplicateUsername], [ErrDuplicateEmail] or storage failures
	*/
	Create(context context.Context, user *User) error

	// TouchLogin records a successful login.
	TouchLogin(context context.Context, userID string, at time.Time) error

	// SetStaff grants or revokes the manager privilege.
	SetStaff(context context.Context, username string, staff bool) error

	// # Social Logins

	// FindSocial returns the link for a provider identity.
	FindSocial(context context.Context, provider, uid string) (*SocialAccount, error)

	// LinkSocial attaches a provider identity to an existing account.
	LinkSocial(context context.Context, account *SocialAccount) error

	// CreateWithSocial persists a new account and its provider link atomically.
	CreateWithSocial(context context.Context, user *User, account *SocialAccount) error
}
