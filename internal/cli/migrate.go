// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEnv(cmd, func(_ context.Context, env *Env) error {
				if err := env.Migrator.Up(); err != nil {
					return WrapExitError(ExitCommandError, "migrate up", err)
				}
				return newPrinter(opts, cmd).result(map[string]string{"status": "ok"}, "migrations applied")
			})
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("--steps must be positive, got %d", steps)}
			}
			return opts.withEnv(cmd, func(_ context.Context, env *Env) error {
				if err := env.Migrator.Down(steps); err != nil {
					return WrapExitError(ExitCommandError, "migrate down", err)
				}
				return newPrinter(opts, cmd).result(map[string]int{"rolled_back": steps}, "rolled back %d migration(s)", steps)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	return cmd
}
