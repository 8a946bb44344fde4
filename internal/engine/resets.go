package engine

import (
	"time"

	"adventuremap/internal/quest"
)

// WeekLength is how many calendar days a boss week lasts.
const WeekLength = 7

type ResetReport struct {
	StreakLost    int
	WeekStarted   bool
	WeekRolled    bool
	BossesRemoved int
	BossesReset   int
	MonthRolled   bool
}

// ApplyResets runs the calendar rollovers on a freshly loaded document.
// today must be local midnight; its location decides what "local" means.
func ApplyResets(doc *quest.Document, today time.Time) ResetReport {
	var rep ResetReport
	loc := today.Location()
	st := &doc.Stats

	// The monthly snapshot reads the level before bosses are touched.
	levelAtLoad := LevelForXP(st.TotalXP).Level

	last, ok := quest.ParseDay(st.LastCompletedDate, loc)
	if gap := quest.DaysBetween(last, today); !ok || (gap != 0 && gap != 1) {
		if st.Streak > 0 {
			rep.StreakLost = st.Streak
		}
		st.Streak = 0
	}

	start, ok := quest.ParseDay(st.CurrentWeekStartDate, loc)
	if !ok {
		st.CurrentWeekStartDate = quest.Day(today)
		rep.WeekStarted = true
	} else if quest.DaysBetween(start, today) >= WeekLength {
		kept := doc.Tasks[:0]
		for _, t := range doc.Tasks {
			if t.IsBoss {
				switch t.Status {
				case quest.StatusDone:
					rep.BossesRemoved++
					continue
				case quest.StatusInProgress:
					t.Status = quest.StatusTodo
					rep.BossesReset++
				}
			}
			kept = append(kept, t)
		}
		doc.Tasks = kept
		st.CurrentWeekStartDate = quest.Day(today)
		rep.WeekRolled = true
	}

	claim, claimed := quest.ParseDay(st.LastMonthlyClaim, loc)
	if !claimed {
		claim = time.Date(1970, time.January, 1, 0, 0, 0, 0, loc)
	}
	if claim.Year() != today.Year() || claim.Month() != today.Month() {
		if claimed {
			st.LastMonthLevel = levelAtLoad
		}
		st.MonthlyRewardClaimed = false
		rep.MonthRolled = true
	}
	return rep
}
