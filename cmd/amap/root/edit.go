package root

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"adventuremap/internal/engine"
	"adventuremap/internal/quest"
)

func newEditCmd() *cobra.Command {
	var title, region, description string
	var isBoss bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a quest's title, region, boss flag or description",
		Args:  requireArg("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p engine.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				p.Title = &title
			}
			if flags.Changed("region") {
				r, err := quest.ParseRegion(region)
				if err != nil {
					return err
				}
				p.Region = &r
			}
			if flags.Changed("boss") {
				p.IsBoss = &isBoss
			}
			if flags.Changed("description") {
				p.Description = &description
			}
			if p.IsEmpty() {
				return errors.New("nothing to change: pass --title, --region, --boss or --description")
			}

			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			_, err = s.UpdateTask(ctx, args[0], p)
			return s.finish(cmd, err)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&region, "region", "r", "", "New region")
	cmd.Flags().BoolVarP(&isBoss, "boss", "b", false, "Boss flag (--boss=false to clear)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")

	return cmd
}
