// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kinoteka/internal/core/movie"
	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/users/auth"
)

// # Fakes

type fakeMigrator struct {
	ups   int
	downs []int
	err   error
}

func (m *fakeMigrator) Up() error {
	m.ups++
	return m.err
}

func (m *fakeMigrator) Down(steps int) error {
	m.downs = append(m.downs, steps)
	return m.err
}

type fakeAccounts struct {
	created []auth.CreateUserInput
	staff   map[string]bool
	err     error
}

func (a *fakeAccounts) CreateUser(_ context.Context, input auth.CreateUserInput) (*auth.User, error) {
	if a.err != nil {
		return nil, a.err
	}
	a.created = append(a.created, input)
	return &auth.User{ID: "0190-user", Username: input.Username, Email: input.Email, IsStaff: input.Staff, IsActive: true}, nil
}

func (a *fakeAccounts) SetStaff(_ context.Context, username string, staff bool) error {
	if a.err != nil {
		return a.err
	}
	if a.staff == nil {
		a.staff = map[string]bool{}
	}
	a.staff[username] = staff
	return nil
}

type fakeReviews struct {
	active map[int64]bool
}

func (r *fakeReviews) SetActive(_ context.Context, id int64, active bool) error {
	if _, ok := r.active[id]; !ok {
		return apperr.NotFound("Review")
	}
	r.active[id] = active
	return nil
}

type fakeTop struct {
	movies []*movie.Movie
}

func (t *fakeTop) Movies(context.Context) ([]*movie.Movie, error) { return t.movies, nil }
func (t *fakeTop) Capacity() int                                  { return 5 }

type harness struct {
	env      *Env
	migrator *fakeMigrator
	accounts *fakeAccounts
	reviews  *fakeReviews
	connects int
	released int
}

func newHarness() *harness {
	h := &harness{
		migrator: &fakeMigrator{},
		accounts: &fakeAccounts{},
		reviews:  &fakeReviews{active: map[int64]bool{7: true}},
	}
	h.env = &Env{
		Migrator: h.migrator,
		Accounts: h.accounts,
		Reviews:  h.reviews,
		Top: &fakeTop{movies: []*movie.Movie{
			{ID: 1, Title: "Stalker", Year: 1979},
			{ID: 2, Title: "Solaris", Year: 1972},
		}},
	}
	return h
}

func (h *harness) connect(context.Context) (*Env, func(), error) {
	h.connects++
	return h.env, func() { h.released++ }, nil
}

// run executes the root command with args and returns stdout.
func (h *harness) run(args ...string) (string, error) {
	cmd := NewRootCommand(h.connect)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// # Structure

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(newHarness().connect)

	assert.Equal(t, "kinotekactl", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(newHarness().connect)

	paths := [][]string{
		{"migrate", "up"},
		{"migrate", "down"},
		{"user", "create"},
		{"user", "staff"},
		{"review", "set-active"},
		{"top", "list"},
	}
	for _, path := range paths {
		found, _, err := cmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}

func TestInvalidFormat(t *testing.T) {
	h := newHarness()

	_, err := h.run("--format", "yaml", "top", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Zero(t, h.connects)
}

// # Commands

func TestMigrate(t *testing.T) {
	h := newHarness()

	out, err := h.run("migrate", "up")
	require.NoError(t, err)
	assert.Equal(t, "migrations applied\n", out)
	assert.Equal(t, 1, h.migrator.ups)

	out, err = h.run("migrate", "down", "--steps", "2")
	require.NoError(t, err)
	assert.Equal(t, "rolled back 2 migration(s)\n", out)
	assert.Equal(t, []int{2}, h.migrator.downs)
	assert.Equal(t, h.connects, h.released)
}

func TestMigrate_Errors(t *testing.T) {
	h := newHarness()

	_, err := h.run("migrate", "down", "--steps", "0")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Zero(t, h.connects)

	h.migrator.err = errors.New("dirty database version 3")
	_, err = h.run("migrate", "up")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestUserCreate(t *testing.T) {
	h := newHarness()

	out, err := h.run("user", "create", "boss", "--email", "boss@example.com", "--password", "correct-horse", "--staff")

	require.NoError(t, err)
	assert.Equal(t, "created boss (0190-user) staff=true\n", out)
	require.Len(t, h.accounts.created, 1)
	assert.Equal(t, auth.CreateUserInput{Username: "boss", Email: "boss@example.com", Password: "correct-horse", Staff: true}, h.accounts.created[0])
}

func TestUserCreate_JSON(t *testing.T) {
	h := newHarness()

	out, err := h.run("--format", "json", "user", "create", "alice", "--email", "alice@example.com", "--password", "correct-horse")
	require.NoError(t, err)

	var user map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password_hash")
}

func TestUserCreate_Refused(t *testing.T) {
	h := newHarness()
	h.accounts.err = apperr.ValidationError("Invalid account details",
		apperr.FieldError{Field: "email", Message: "A user with this email already exists."})

	_, err := h.run("user", "create", "alice", "--email", "alice@example.com", "--password", "correct-horse")

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "email: A user with this email already exists.")
}

func TestUserCreate_MissingFlags(t *testing.T) {
	h := newHarness()

	_, err := h.run("user", "create", "alice")

	require.Error(t, err)
	assert.Zero(t, h.connects)
}

func TestUserStaff(t *testing.T) {
	h := newHarness()

	_, err := h.run("user", "staff", "alice")
	require.NoError(t, err)
	assert.True(t, h.accounts.staff["alice"])

	out, err := h.run("user", "staff", "alice", "--revoke")
	require.NoError(t, err)
	assert.Equal(t, "alice staff=false\n", out)
	assert.False(t, h.accounts.staff["alice"])
}

func TestReviewSetActive(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{name: "hide", args: []string{"review", "set-active", "7", "--active=false"}, wantOut: "review 7 active=false\n"},
		{name: "restore", args: []string{"review", "set-active", "7"}, wantOut: "review 7 active=true\n"},
		{name: "unknown", args: []string{"review", "set-active", "99"}, wantCode: ExitFailure},
		{name: "bad id", args: []string{"review", "set-active", "abc"}, wantCode: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()

			out, err := h.run(tt.args...)

			assert.Equal(t, tt.wantCode, GetExitCode(err))
			if tt.wantOut != "" {
				assert.Equal(t, tt.wantOut, out)
			}
		})
	}
}

func TestTopList(t *testing.T) {
	h := newHarness()

	out, err := h.run("top", "list")
	require.NoError(t, err)
	assert.Equal(t, "2/5 featured\n  #1 Stalker (1979)\n  #2 Solaris (1972)\n", out)

	out, err = h.run("--format", "json", "top", "list")
	require.NoError(t, err)

	var payload struct {
		Count    int `json:"count"`
		Capacity int `json:"capacity"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, 2, payload.Count)
	assert.Equal(t, 5, payload.Capacity)
}
