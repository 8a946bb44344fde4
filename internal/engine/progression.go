package engine

import (
	"fmt"
	"strings"
	"time"

	"adventuremap/internal/quest"
)

type Reward string

const (
	RewardDaily   Reward = "daily"
	RewardWeekly  Reward = "weekly"
	RewardMonthly Reward = "monthly"
)

var Rewards = []Reward{RewardDaily, RewardWeekly, RewardMonthly}

func ParseReward(input string) (Reward, error) {
	r := Reward(strings.ToLower(strings.TrimSpace(input)))
	switch r {
	case RewardDaily, RewardWeekly, RewardMonthly:
		return r, nil
	}
	return "", fmt.Errorf("invalid reward: %q (want daily, weekly or monthly)", input)
}

// XP returns the fixed award for claiming r.
func (r Reward) XP() int {
	switch r {
	case RewardDaily:
		return DailyRewardXP
	case RewardWeekly:
		return WeeklyRewardXP
	default:
		return MonthlyRewardXP
	}
}

type Eligibility struct {
	Daily   bool
	Weekly  bool
	Monthly bool
}

func (e Eligibility) Allows(r Reward) bool {
	switch r {
	case RewardDaily:
		return e.Daily
	case RewardWeekly:
		return e.Weekly
	case RewardMonthly:
		return e.Monthly
	}
	return false
}

// ApplyCompletionStreak extends the streak the first time a quest is
// completed on a given day. Further completions the same day change nothing.
func ApplyCompletionStreak(stats *quest.Stats, today string) {
	if stats.LastCompletedDate == today {
		return
	}
	stats.Streak++
	stats.LastCompletedDate = today
}

// RecordDailyCompletion adds region to today's completion set, starting a
// fresh set when the stored one belongs to another day.
func RecordDailyCompletion(stats *quest.Stats, today string, region quest.Region) {
	dc := &stats.DailyCompletions
	if dc.Date != today {
		dc.Date = today
		dc.Regions = nil
	}
	if !dc.Has(region) {
		dc.Regions = append(dc.Regions, region)
	}
}

// RewardEligibility decides which rewards may be claimed right now.
func RewardEligibility(stats quest.Stats, completedBosses, totalBosses, level int, today string) Eligibility {
	allRegions := true
	for _, r := range quest.Regions {
		if !stats.DailyCompletions.Has(r) {
			allRegions = false
			break
		}
	}
	return Eligibility{
		Daily:   stats.DailyCompletions.Date == today && allRegions && stats.DailyRewardClaimed != today,
		Weekly:  totalBosses > 0 && completedBosses == totalBosses,
		Monthly: level-stats.LastMonthLevel >= MonthlyLevelGain && !stats.MonthlyRewardClaimed,
	}
}

// ApplyClaim awards r's XP and sets its marker. It does not check
// eligibility; callers consult RewardEligibility first.
func ApplyClaim(stats *quest.Stats, r Reward, now time.Time) int {
	xp := r.XP()
	stats.TotalXP += xp
	switch r {
	case RewardDaily:
		stats.DailyRewardClaimed = quest.Day(now)
	case RewardMonthly:
		stats.MonthlyRewardClaimed = true
		stats.LastMonthlyClaim = now.Format(time.RFC3339)
	}
	return xp
}
