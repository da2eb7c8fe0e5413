// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements kinotekactl, the out-of-band administration tool.

It covers what the site itself does not expose: schema migrations, account
provisioning, granting the manager privilege, review moderation and a quick
look at the top list.

Commands receive their dependencies through an [Env] opened lazily by a
[Connector], so help output and flag errors never touch the database.
*/
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/taibuivan/kinoteka/internal/core/movie"
	"github.com/taibuivan/kinoteka/internal/users/auth"
)

// # Contracts

// Migrator applies or rolls back schema migrations.
type Migrator interface {
	Up() error
	Down(steps int) error
}

// AccountAdmin manages accounts.
type AccountAdmin interface {
	CreateUser(ctx context.Context, input auth.CreateUserInput) (*auth.User, error)
	SetStaff(ctx context.Context, username string, staff bool) error
}

// ReviewModerator hides and restores reviews.
type ReviewModerator interface {
	SetActive(ctx context.Context, id int64, active bool) error
}

// TopReader reads the featured movies.
type TopReader interface {
	Movies(ctx context.Context) ([]*movie.Movie, error)
	Capacity() int
}

// Env bundles the services the commands operate on.
type Env struct {
	Migrator Migrator
	Accounts AccountAdmin
	Reviews  ReviewModerator
	Top      TopReader
}

// Connector opens an [Env]. The returned function releases its resources.
type Connector func(ctx context.Context) (*Env, func(), error)

// # Root Command

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string // "json" | "text"

	connect Connector
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the kinotekactl root command.
func NewRootCommand(connect Connector) *cobra.Command {
	opts := &RootOptions{connect: connect}

	cmd := &cobra.Command{
		Use:           "kinotekactl",
		Short:         "Kinoteka administration",
		Long:          "Administration tool for the Kinoteka movie catalog: migrations, accounts, moderation.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newUserCommand(opts))
	cmd.AddCommand(newReviewCommand(opts))
	cmd.AddCommand(newTopCommand(opts))

	return cmd
}

// withEnv opens the environment for the duration of fn.
func (opts *RootOptions) withEnv(cmd *cobra.Command, fn func(ctx context.Context, env *Env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	env, release, err := opts.connect(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "connect", err)
	}
	defer release()

	return fn(ctx, env)
}
