package root

import (
	"context"

	"github.com/spf13/cobra"

	"adventuremap/internal/config"
	"adventuremap/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive quest board and map",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			// The board owns the terminal; log lines would tear the layout.
			config.Silence()
			return tui.RunBoard(ctx, s.Session, s.drain(), cmd.OutOrStdout())
		},
	}

	return cmd
}
