// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
	"github.com/taibuivan/kinoteka/internal/platform/validate"
	"github.com/taibuivan/kinoteka/pkg/slug"
	"github.com/taibuivan/kinoteka/pkg/uuid"
)

// # Contracts

// WelcomeNotifier sends the welcome message after a registration.
// Implementations must not block the caller.
type WelcomeNotifier interface {
	Welcome(username, email string)
}

// MovieCounter reports the size of the catalog for the profile page.
type MovieCounter interface {
	Count(context context.Context) (int, error)
}

// ReviewCounter reports how many reviews an author has written.
type ReviewCounter interface {
	CountByAuthor(context context.Context, authorName string) (int, error)
}

// Messages shared by the form handlers.
const (
	msgInvalidCredentials = "Please enter a correct username and password."
	msgInactiveAccount    = "This account is inactive."
	msgDuplicateEmail     = "A user with this email already exists."
	msgDuplicateUsername  = "A user with that username already exists."
)

// # Definitions & Constructors

// Service implements the account workflow.
type Service struct {
	repo    Repository
	welcome WelcomeNotifier
	movies  MovieCounter
	reviews ReviewCounter
	logger  *slog.Logger
	clock   func() time.Time
}

// NewService constructs the account service.
func NewService(repo Repository, welcome WelcomeNotifier, movies MovieCounter, reviews ReviewCounter, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		welcome: welcome,
		movies:  movies,
		reviews: reviews,
		logger:  logger,
		clock:   time.Now,
	}
}

// WithClock overrides the time source used for login timestamps.
func (service *Service) WithClock(clock func() time.Time) *Service {
	service.clock = clock
	return service
}

// # Registration Flow

/*
Register validates and persists a new account, then schedules the welcome mail.

The mail is dispatched in the background; a delivery failure never affects
the returned account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: The created account
  - error: VALIDATION_ERROR with field details, or storage failures
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).
		MaxLen(FieldUsername, username, UsernameMaxLength).
		Username(FieldUsername, username)
	validator.Required(FieldEmail, email)
	if email != "" {
		validator.Email(FieldEmail, email)
	}
	validatePassword(validator, FieldPassword1, input.Password1)
	validator.Custom(FieldPassword2, input.Password1 != input.Password2, "The two password fields didn't match.")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.checkAvailable(context, username, email); err != nil {
		return nil, err
	}

	user, err := service.create(context, username, email, input.Password1, false)
	if err != nil {
		return nil, err
	}

	service.welcome.Welcome(user.Username, user.Email)

	service.logger.InfoContext(context, "user_registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

/*
CreateUser provisions an account out of band, optionally as a manager.

No welcome mail is sent.
*/
func (service *Service) CreateUser(context context.Context, input CreateUserInput) (*User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).
		MaxLen(FieldUsername, username, UsernameMaxLength).
		Username(FieldUsername, username)
	validator.Required(FieldEmail, email)
	if email != "" {
		validator.Email(FieldEmail, email)
	}
	validatePassword(validator, FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.checkAvailable(context, username, email); err != nil {
		return nil, err
	}

	return service.create(context, username, email, input.Password, input.Staff)
}

// SetStaff grants or revokes the manager privilege of an account.
func (service *Service) SetStaff(context context.Context, username string, staff bool) error {
	if err := service.repo.SetStaff(context, username, staff); err != nil {
		return err
	}

	service.logger.InfoContext(context, "user_staff_changed",
		slog.String("username", username),
		slog.Bool("staff", staff),
	)
	return nil
}

func validatePassword(validator *validate.Validator, field, password string) {
	validator.Required(field, password)
	if password == "" {
		return
	}
	validator.MinLen(field, password, PasswordMinLength)
	validator.Custom(field, isNumeric(password), "This password is entirely numeric.")
}

func isNumeric(value string) bool {
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return value != ""
}

// checkAvailable reports taken usernames and emails as field errors.
func (service *Service) checkAvailable(context context.Context, username, email string) error {
	validator := &validate.Validator{}

	if _, err := service.repo.FindByUsername(context, username); err == nil {
		validator.Custom(FieldUsername, true, msgDuplicateUsername)
	} else if !isNotFound(err) {
		return err
	}

	if _, err := service.repo.FindByEmail(context, email); err == nil {
		validator.Custom(FieldEmail, true, msgDuplicateEmail)
	} else if !isNotFound(err) {
		return err
	}

	return validator.Err()
}

func (service *Service) create(context context.Context, username, email, password string, staff bool) (*User, error) {
	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		IsStaff:      staff,
		IsActive:     true,
	}

	// A concurrent registration can still win the race after checkAvailable.
	if err := service.repo.Create(context, user); err != nil {
		return nil, duplicateToValidation(err)
	}

	return user, nil
}

func duplicateToValidation(err error) error {
	switch {
	case errors.Is(err, ErrDuplicateUsername):
		return validate.RequiredError(FieldUsername, msgDuplicateUsername)
	case errors.Is(err, ErrDuplicateEmail):
		return validate.RequiredError(FieldEmail, msgDuplicateEmail)
	default:
		return err
	}
}

func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.Code == "NOT_FOUND"
}

// # Authentication Flow

/*
Login checks credentials and records the login time.

Login accepts either the username or the email address. Unknown accounts and
wrong passwords produce the same error.

Returns:
  - *User: The authenticated account
  - error: UNAUTHORIZED for bad credentials or inactive accounts
*/
func (service *Service) Login(context context.Context, input LoginInput) (*User, error) {
	login := strings.TrimSpace(input.Login)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, login).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.repo.FindByUsername(context, login)
	if isNotFound(err) && strings.Contains(login, "@") {
		user, err = service.repo.FindByEmail(context, login)
	}
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, err
	}

	if !user.HasPassword() || !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized(msgInactiveAccount)
	}

	service.touchLogin(context, user)
	return user, nil
}

func (service *Service) touchLogin(context context.Context, user *User) {
	now := service.clock().UTC()
	if err := service.repo.TouchLogin(context, user.ID, now); err != nil {
		service.logger.WarnContext(context, "user_touch_login_failed", slog.Any("error", err))
		return
	}
	user.LastLoginAt = &now
}

/*
ResolveIdentity loads the identity snapshot for a session's user ID.

Deleted and deactivated accounts resolve to [sec.Anonymous].
*/
func (service *Service) ResolveIdentity(context context.Context, userID string) (sec.Identity, error) {

	// A tampered or stale session value never reaches the uuid column
	if !uuid.Valid(userID) {
		return sec.Anonymous, nil
	}

	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		if isNotFound(err) {
			return sec.Anonymous, nil
		}
		return sec.Anonymous, err
	}

	if !user.IsActive {
		return sec.Anonymous, nil
	}

	return user.Identity(), nil
}

// # Third-Party Login

/*
CompleteOAuth maps a provider identity to a local account.

Resolution order:
 1. An existing link for (provider, uid) logs that account in.
 2. An account with the same email is linked and logged in.
 3. Otherwise a password-less account is created with a unique username.

Returns:
  - *User: The account to log in
  - error: UNAUTHORIZED for inactive accounts, or storage failures
*/
func (service *Service) CompleteOAuth(context context.Context, external ExternalIdentity) (*User, error) {
	if external.Provider == "" || external.UID == "" {
		return nil, apperr.Unauthorized("The provider did not identify the account.")
	}

	user, err := service.resolveExternal(context, external)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized(msgInactiveAccount)
	}

	service.touchLogin(context, user)
	return user, nil
}

func (service *Service) resolveExternal(context context.Context, external ExternalIdentity) (*User, error) {
	link, err := service.repo.FindSocial(context, external.Provider, external.UID)
	if err == nil {
		return service.repo.FindByID(context, link.UserID)
	}
	if !isNotFound(err) {
		return nil, err
	}

	social := &SocialAccount{
		Provider:  external.Provider,
		UID:       external.UID,
		ExtraData: external.Extra,
	}

	// Associate by email.
	if external.Email != "" {
		user, err := service.repo.FindByEmail(context, external.Email)
		if err == nil {
			social.UserID = user.ID
			if err := service.repo.LinkSocial(context, social); err != nil {
				return nil, err
			}

			service.logger.InfoContext(context, "social_account_associated",
				slog.String("user_id", user.ID),
				slog.String("provider", external.Provider),
			)
			return user, nil
		}
		if !isNotFound(err) {
			return nil, err
		}
	}

	username, err := service.uniqueUsername(context, external)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:       uuid.New(),
		Username: username,
		Email:    external.Email,
		IsActive: true,
	}
	if err := service.repo.CreateWithSocial(context, user, social); err != nil {
		return nil, duplicateToValidation(err)
	}

	service.logger.InfoContext(context, "social_account_created",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("provider", external.Provider),
	)
	return user, nil
}

// usernameAttempts bounds the numeric suffixes tried before falling back to a random one.
const usernameAttempts = 50

func (service *Service) uniqueUsername(context context.Context, external ExternalIdentity) (string, error) {
	base := slug.From(external.Login)
	if base == "" {
		local, _, _ := strings.Cut(external.Email, "@")
		base = slug.From(local)
	}
	if base == "" {
		base = "user"
	}
	if len(base) > UsernameMaxLength-12 {
		base = base[:UsernameMaxLength-12]
	}

	candidate := base
	for attempt := 2; attempt <= usernameAttempts+1; attempt++ {
		exists, err := service.repo.UsernameExists(context, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, attempt)
	}

	suffix, err := sec.GenerateSecureToken(6)
	if err != nil {
		return "", err
	}
	return base + "-" + suffix, nil
}

// # Profile

/*
Profile returns the account page data.

MoviesCount is the size of the whole catalog, ReviewsCount the reviews the
account has signed with its username.
*/
func (service *Service) Profile(context context.Context, userID string) (*Profile, error) {
	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	movies, err := service.movies.Count(context)
	if err != nil {
		return nil, err
	}

	reviews, err := service.reviews.CountByAuthor(context, user.Username)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, MoviesCount: movies, ReviewsCount: reviews}, nil
}
