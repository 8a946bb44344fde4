package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"adventuremap/internal/quest"
	"adventuremap/internal/ui"
)

func newAddCmd() *cobra.Command {
	var region string
	var isBoss bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest to the backlog",
		Args:  requireArg("title"),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := quest.ParseRegion(region)
			if err != nil {
				return err
			}

			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.AddTask(ctx, r, args[0], isBoss)
			if err == nil || t.ID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.KindIcon(t.IsBoss), ui.RegionText(t.Region, s.Config().RegionName(t.Region)), ui.Muted.Render(t.ID))
			}
			return s.finish(cmd, err)
		},
	}

	cmd.Flags().StringVarP(&region, "region", "r", string(quest.RegionForest), "Region (forest|mountains|ocean|kingdom)")
	cmd.Flags().BoolVarP(&isBoss, "boss", "b", false, "Make this quest a boss")

	return cmd
}
