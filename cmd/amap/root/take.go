package root

import (
	"context"

	"github.com/spf13/cobra"
)

func newTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <id>",
		Short: "Accept a quest from the backlog",
		Args:  requireArg("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.finish(cmd, s.Take(ctx, args[0]))
		},
	}
}

func newUntakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untake <id>",
		Short: "Return an active quest to the backlog",
		Args:  requireArg("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.finish(cmd, s.Untake(ctx, args[0]))
		},
	}
}
