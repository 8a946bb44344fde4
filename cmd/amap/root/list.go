package root

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"adventuremap/internal/quest"
	"adventuremap/internal/ui"
)

func newListCmd() *cobra.Command {
	var status string
	var region string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests by column",
		RunE: func(cmd *cobra.Command, args []string) error {
			var wantStatus quest.Status
			if status != "" {
				st, err := quest.ParseStatus(status)
				if err != nil {
					return err
				}
				wantStatus = st
			}
			var wantRegion quest.Region
			if region != "" {
				r, err := quest.ParseRegion(region)
				if err != nil {
					return err
				}
				wantRegion = r
			}

			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			printEvents(cmd.OutOrStdout(), s.drain(), nil)

			out := cmd.OutOrStdout()
			board := s.Board()
			cfg := s.Config()
			fmt.Fprintln(out, ui.Heading(ui.IconMap, cfg.Title()))

			titles := map[quest.Status]string{
				quest.StatusTodo:       "Quest Backlog",
				quest.StatusInProgress: "Active Quests",
				quest.StatusDone:       "Completed",
			}
			for _, st := range quest.Statuses {
				if wantStatus != "" && st != wantStatus {
					continue
				}
				var tasks []quest.Task
				for _, t := range board.Column(st) {
					if wantRegion == "" || t.Region == wantRegion {
						tasks = append(tasks, t)
					}
				}
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s (%d)", titles[st], len(tasks))))
				if len(tasks) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("  (empty)"))
				}
				for _, t := range tasks {
					printTaskLine(out, t, cfg)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Only this status (todo|inprogress|done)")
	cmd.Flags().StringVarP(&region, "region", "r", "", "Only this region")

	return cmd
}

func printTaskLine(w io.Writer, t quest.Task, cfg quest.Config) {
	extra := ""
	if t.IsBoss {
		extra += " " + ui.BadgeBoss
	}
	if t.ShouldDuplicate {
		extra += " " + ui.IconLoop
	}
	if t.Status == quest.StatusDone && t.CompletionDate != "" {
		extra += " " + ui.Muted.Render(t.CompletionDate)
	}
	fmt.Fprintf(w, "- %s %s %s%s %s\n",
		ui.KindIcon(t.IsBoss),
		t.Title,
		ui.RegionText(t.Region, "("+cfg.RegionName(t.Region)+")"),
		extra,
		ui.Muted.Render(t.ID))
}

// xpLine reads like "+10 XP" and mentions a level change when there was one.
func xpLine(sign string, xp, before, after int) string {
	line := ui.XP(xp)
	if sign != "" {
		line = ui.Gold.Render(sign) + line
	}
	if after != before {
		line += ui.Muted.Render(fmt.Sprintf(" (level %d → %d)", before, after))
	}
	return line
}
