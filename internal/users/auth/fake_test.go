// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
	"github.com/taibuivan/kinoteka/internal/users/auth"
)

func TestMain(m *testing.M) {
	sec.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

// memoryRepository is an in-memory [auth.Repository].
type memoryRepository struct {
	mu      sync.Mutex
	users   map[string]*auth.User
	socials []*auth.SocialAccount
}

func newMemoryRepository(users ...*auth.User) *memoryRepository {
	repo := &memoryRepository{users: make(map[string]*auth.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (m *memoryRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := m.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := m.FindByUsername(ctx, username)
	return err == nil, nil
}

func (m *memoryRepository) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(user)
}

func (m *memoryRepository) insert(user *auth.User) error {
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return auth.ErrDuplicateUsername
		}
		// account_email_key is partial: empty emails never collide
		if user.Email != "" && strings.EqualFold(existing.Email, user.Email) {
			return auth.ErrDuplicateEmail
		}
	}

	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memoryRepository) TouchLogin(_ context.Context, userID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := m.users[userID]; ok {
		user.LastLoginAt = &at
	}
	return nil
}

func (m *memoryRepository) SetStaff(_ context.Context, username string, staff bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Username == username {
			user.IsStaff = staff
			return nil
		}
	}
	return apperr.NotFound("User")
}

func (m *memoryRepository) FindSocial(_ context.Context, provider, uid string) (*auth.SocialAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, social := range m.socials {
		if social.Provider == provider && social.UID == uid {
			clone := *social
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Social account")
}

func (m *memoryRepository) LinkSocial(_ context.Context, account *auth.SocialAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account.ID = int64(len(m.socials) + 1)
	clone := *account
	m.socials = append(m.socials, &clone)
	return nil
}

func (m *memoryRepository) CreateWithSocial(_ context.Context, user *auth.User, account *auth.SocialAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.insert(user); err != nil {
		return err
	}
	account.UserID = user.ID
	account.ID = int64(len(m.socials) + 1)
	clone := *account
	m.socials = append(m.socials, &clone)
	return nil
}

func (m *memoryRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// recordingNotifier captures welcome requests.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *recordingNotifier) Welcome(username, email string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, username+" <"+email+">")
}

type fixedCounter struct {
	movies  int
	reviews map[string]int
}

func (c fixedCounter) Count(context.Context) (int, error) { return c.movies, nil }

func (c fixedCounter) CountByAuthor(_ context.Context, author string) (int, error) {
	return c.reviews[author], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
