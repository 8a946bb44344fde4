package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"adventuremap/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete an active quest",
		Args:  requireArg("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.Complete(ctx, args[0])
			if res != nil {
				label := ui.IconDone + " Quest complete"
				if res.Boss {
					label = ui.IconSword + " Boss defeated"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					ui.Good.Render(label),
					xpLine("+", res.XPAwarded, res.LevelBefore, res.LevelAfter),
					ui.Muted.Render(fmt.Sprintf("%s streak %d", ui.IconFire, res.Streak)))
			}
			return s.finish(cmd, err)
		},
	}

	return cmd
}

func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <id>",
		Short: "Reopen a completed quest",
		Long: `Move a completed quest back to the active column.

This will:
- Clear its completion date
- Deduct the XP it awarded (never below zero)

The streak and today's region completions are left as they are.`,
		Args: requireArg("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.Undo(ctx, args[0])
			if res != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
					ui.Warn.Render(ui.IconLoop+" Reopened"),
					xpLine("-", res.XPDeducted, res.LevelBefore, res.LevelAfter))
			}
			return s.finish(cmd, err)
		},
	}

	return cmd
}
