package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"adventuremap/internal/engine"
	"adventuremap/internal/quest"
	"adventuremap/internal/storage"
	"adventuremap/internal/ui"
)

func newConfigCmd() *cobra.Command {
	var name string
	var regionNames map[string]string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the adventure and region names",
		Example: `  amap config
  amap config --name "Job Hunt" --region-name forest="Applications" --region-name kingdom="Interviews"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p engine.ConfigPatch
			if cmd.Flags().Changed("name") {
				p.AdventureName = &name
			}
			if len(regionNames) > 0 {
				p.RegionNames = make(map[quest.Region]string, len(regionNames))
				for k, v := range regionNames {
					r, err := quest.ParseRegion(k)
					if err != nil {
						return err
					}
					p.RegionNames[r] = v
				}
			}

			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if p.AdventureName != nil || p.RegionNames != nil {
				_, err = s.UpdateConfig(ctx, p)
			}
			if err := s.finish(cmd, err); err != nil {
				return err
			}

			c := s.Config()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.LabelValue("Adventure", c.Title()))
			for _, r := range quest.Regions {
				fmt.Fprintf(out, "- %s %s %s\n", ui.RegionIcon(r), ui.RegionText(r, c.RegionName(r)), ui.Muted.Render("("+r.Key()+")"))
			}

			keys, err := storage.NewSlotRepo(s.db).Keys(ctx)
			if err != nil {
				return err
			}
			slots := make([]string, len(keys))
			for i, k := range keys {
				slots[i] = k
				if k == cfg.SlotKey {
					slots[i] = ui.Good.Render(k + " (current)")
				}
			}
			fmt.Fprintln(out, ui.LabelValue("Slots", strings.Join(slots, ", ")))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Adventure name (empty restores the default)")
	cmd.Flags().StringToStringVar(&regionNames, "region-name", nil, "Region display name, e.g. forest=Applications (repeatable)")

	return cmd
}
