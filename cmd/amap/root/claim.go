package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"adventuremap/internal/engine"
	"adventuremap/internal/ui"
)

func newClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "claim <daily|weekly|monthly>",
		Short:     "Claim a reward you have earned",
		Args:      requireArg("reward"),
		ValidArgs: []string{"daily", "weekly", "monthly"},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := engine.ParseReward(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if !s.Eligibility().Allows(r) {
				printEvents(cmd.OutOrStdout(), s.drain(), nil)
				return fmt.Errorf("the %s reward is not available yet (see amap status)", r)
			}
			res, err := s.Claim(ctx, r)
			if res != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
					ui.Gold.Render(ui.IconTrophy+" Claimed"),
					xpLine("+", res.XPAwarded, res.LevelBefore, res.LevelAfter))
			}
			return s.finish(cmd, err)
		},
	}

	return cmd
}
