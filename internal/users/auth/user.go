// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the account workflow of the catalog.

It covers registration, credential login, third-party (OAuth) sign-in with
association by email, the profile page and the staff privilege that makes an
account a manager.

# Architecture

  - Service: Registration, login, OAuth provisioning and identity resolution.
  - Repository: Postgres storage for accounts and their linked social logins.
  - Handler: HTML-form endpoints under /accounts/ backed by the session manager.
*/
package auth

import (
	"time"

	"github.com/taibuivan/kinoteka/internal/platform/sec"
)

// # Domain Entities

// User is a registered account.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	IsStaff      bool       `json:"is_staff"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HasPassword reports whether the account can log in with credentials.
// Accounts provisioned through OAuth start without one.
func (user *User) HasPassword() bool {
	return user.PasswordHash != ""
}

// Identity returns the request-scoped snapshot of the account.
func (user *User) Identity() sec.Identity {
	return sec.Identity{
		UserID:        user.ID,
		Username:      user.Username,
		Email:         user.Email,
		Authenticated: true,
		Staff:         user.IsStaff,
	}
}

// SocialAccount links a local account to an external provider identity.
type SocialAccount struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"user_id"`
	Provider  string         `json:"provider"`
	UID       string         `json:"uid"`
	ExtraData map[string]any `json:"extra_data"`
	CreatedAt time.Time      `json:"created_at"`
}

// ExternalIdentity is what an OAuth provider tells us about the person signing in.
type ExternalIdentity struct {
	Provider string
	UID      string
	Login    string
	Email    string
	Extra    map[string]any
}

// Profile is the data shown on the account page.
type Profile struct {
	User         *User `json:"user"`
	MoviesCount  int   `json:"user_movies"`
	ReviewsCount int   `json:"user_reviews"`
}

// # Inputs

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Username  string `form:"username"`
	Email     string `form:"email"`
	Password1 string `form:"password1"`
	Password2 string `form:"password2"`
}

// LoginInput is the credential login form. Login accepts a username or an email.
type LoginInput struct {
	Login    string `form:"username"`
	Password string `form:"password"`
}

// CreateUserInput provisions an account out of band.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Staff    bool
}

// # Field Identifiers

const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldPassword1 = "password1"
	FieldPassword2 = "password2"
)

// # Limits

const (
	UsernameMaxLength = 150
	PasswordMinLength = 8

	// ProviderYandex is the only configured OAuth provider.
	ProviderYandex = "yandex"
)
