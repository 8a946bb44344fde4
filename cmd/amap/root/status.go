package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"adventuremap/internal/engine"
	"adventuremap/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, streak, region progress and rewards",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			printEvents(out, s.drain(), nil)

			st := s.Stats()
			lvl := s.Level()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, s.Config().Title()))
			fmt.Fprintln(out, ui.LabelValue("Level", lvl.Level))
			if lvl.Level >= engine.MaxLevel {
				fmt.Fprintln(out, ui.LabelValue("Total XP", ui.XP(st.TotalXP)+" "+ui.Muted.Render("(top level)")))
			} else {
				toNext := lvl.XPForNext - st.TotalXP
				fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%s %s %s", ui.XP(st.TotalXP),
					bar(lvl.Progress(st.TotalXP), 20),
					ui.Muted.Render(fmt.Sprintf("(next at %s, %s to go)", ui.Number(lvl.XPForNext), ui.Number(toNext))))))
			}
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d", ui.IconFire, st.Streak)))
			fmt.Fprintln(out, ui.LabelValue("Save", saveText(s.Resumed(), s.Resets())))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("🧭 This week"))
			for _, p := range s.RegionProgress() {
				fmt.Fprintf(out, "- %s %s %s %d/%d\n", ui.RegionIcon(p.Region),
					ui.RegionText(p.Region, p.Name), bar(p.Ratio(), 10), p.Completed, p.Total)
			}
			sum := s.Summary()
			fmt.Fprintf(out, "- %s %d/%d\n", ui.Key.Render("Quests completed:"), sum.Completed, sum.Quests)
			fmt.Fprintf(out, "- %s %d/%d\n", ui.Key.Render("Bosses defeated:"), sum.BossesDefeated, sum.Bosses)
			fmt.Fprintln(out, "")

			e := s.Eligibility()
			fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" Rewards"))
			fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Daily:"), readyStr(e.Daily, "complete a quest in every region today"))
			fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Weekly:"), readyStr(e.Weekly, "defeat every boss"))
			fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Monthly:"), readyStr(e.Monthly,
				fmt.Sprintf("gain %d levels since level %d", engine.MonthlyLevelGain, st.LastMonthLevel)))
			fmt.Fprintln(out, "")

			checker := engine.NewAchievementChecker(s.Snapshot())
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("🎖️ Achievements (%d/%d)", checker.CountEarned(), checker.CountTotal())))
			for _, a := range checker.GetAchievements() {
				if a.Earned {
					fmt.Fprintf(out, "- %s %s %s\n", a.Icon, a.Name, ui.Muted.Render(a.Description))
				}
			}
			return nil
		},
	}

	return cmd
}

// saveText says whether the adventure was resumed and what the calendar
// rollovers changed on the way in.
func saveText(resumed bool, r engine.ResetReport) string {
	if !resumed {
		return ui.Muted.Render("new adventure")
	}
	parts := []string{"resumed (slot " + cfg.SlotKey + ")"}
	if r.StreakLost > 0 {
		parts = append(parts, fmt.Sprintf("%d-day streak ended", r.StreakLost))
	}
	if r.WeekRolled {
		parts = append(parts, fmt.Sprintf("new week: %d bosses removed, %d returned", r.BossesRemoved, r.BossesReset))
	}
	return strings.Join(parts, ", ")
}

func readyStr(ok bool, hint string) string {
	if ok {
		return ui.Good.Render("ready to claim")
	}
	return ui.Muted.Render(hint)
}

func bar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
