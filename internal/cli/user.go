// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/taibuivan/kinoteka/internal/users/auth"
)

func newUserCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	cmd.AddCommand(newUserCreateCommand(opts))
	cmd.AddCommand(newUserStaffCommand(opts))

	return cmd
}

func newUserCreateCommand(opts *RootOptions) *cobra.Command {
	var input auth.CreateUserInput

	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an account, optionally with the manager privilege",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Username = args[0]

			return opts.withEnv(cmd, func(ctx context.Context, env *Env) error {
				user, err := env.Accounts.CreateUser(ctx, input)
				if err != nil {
					return refusal("user create", err)
				}

				return newPrinter(opts, cmd).result(user, "created %s (%s) staff=%t", user.Username, user.ID, user.IsStaff)
			})
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&input.Password, "password", "", "initial password (required)")
	cmd.Flags().BoolVar(&input.Staff, "staff", false, "grant the manager privilege")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUserStaffCommand(opts *RootOptions) *cobra.Command {
	var revoke bool

	cmd := &cobra.Command{
		Use:   "staff <username>",
		Short: "Grant (or with --revoke, remove) the manager privilege",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			return opts.withEnv(cmd, func(ctx context.Context, env *Env) error {
				if err := env.Accounts.SetStaff(ctx, username, !revoke); err != nil {
					return refusal("user staff", err)
				}

				payload := map[string]any{"username": username, "staff": !revoke}
				return newPrinter(opts, cmd).result(payload, "%s staff=%t", username, !revoke)
			})
		},
	}

	cmd.Flags().BoolVar(&revoke, "revoke", false, "remove the privilege instead of granting it")

	return cmd
}
