// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/kinoteka/internal/core/movie"
)

func newTopCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Inspect the top list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the featured movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEnv(cmd, func(ctx context.Context, env *Env) error {
				movies, err := env.Top.Movies(ctx)
				if err != nil {
					return refusal("top list", err)
				}

				payload := struct {
					Movies   []*movie.Movie `json:"movies"`
					Count    int            `json:"count"`
					Capacity int            `json:"capacity"`
				}{movies, len(movies), env.Top.Capacity()}

				var text strings.Builder
				fmt.Fprintf(&text, "%d/%d featured", len(movies), env.Top.Capacity())
				for _, m := range movies {
					fmt.Fprintf(&text, "\n  #%d %s (%d)", m.ID, m.Title, m.Year)
				}

				return newPrinter(opts, cmd).result(payload, "%s", text.String())
			})
		},
	})

	return cmd
}
