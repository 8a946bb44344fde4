package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"adventuremap/internal/ui"
)

func newRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a quest",
		Args:    requireArg("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			t, ok := s.Task(args[0])
			if ok && !yes {
				if !confirm(cmd, fmt.Sprintf("Remove %q?", t.Title)) {
					return errors.New("cancelled")
				}
			}
			return s.finish(cmd, s.Remove(ctx, args[0]))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func newDupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dup <id>",
		Short: "Copy a quest into the backlog",
		Args:  requireArg("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.DuplicateTask(ctx, args[0])
			if t.ID != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("new id "+t.ID))
			}
			return s.finish(cmd, err)
		},
	}
}

func newRepeatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repeat <id>",
		Short: "Toggle the repeatable marker on a quest",
		Args:  requireArg("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			_, err = s.ToggleRepeatable(ctx, args[0])
			return s.finish(cmd, err)
		},
	}
}
