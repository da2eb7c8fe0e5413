// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newReviewCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Moderate reviews",
	}

	var active bool
	setActive := &cobra.Command{
		Use:   "set-active <review-id>",
		Short: "Show or hide a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("invalid review id %q", args[0])}
			}

			return opts.withEnv(cmd, func(ctx context.Context, env *Env) error {
				if err := env.Reviews.SetActive(ctx, id, active); err != nil {
					return refusal("review set-active", err)
				}

				payload := map[string]any{"id": id, "is_active": active}
				return newPrinter(opts, cmd).result(payload, "review %d active=%t", id, active)
			})
		},
	}
	setActive.Flags().BoolVar(&active, "active", true, "whether the review is visible")
	cmd.AddCommand(setActive)

	return cmd
}
