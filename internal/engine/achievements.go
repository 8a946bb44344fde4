package engine

import (
	"adventuremap/internal/quest"
)

// Achievement represents a badge the adventurer can earn.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker derives badges from a document. Nothing is stored:
// badges follow the current quests and stats.
type AchievementChecker struct {
	tasks []quest.Task
	stats quest.Stats
}

func NewAchievementChecker(doc quest.Document) *AchievementChecker {
	return &AchievementChecker{tasks: doc.Tasks, stats: doc.Stats}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	sum := Summarize(c.tasks)
	finished := sum.Completed + sum.BossesDefeated
	level := LevelForXP(c.stats.TotalXP).Level

	return []Achievement{
		// Level milestones
		c.earned("getting_started", "Getting Started", "Reach level 3", "🌿", level >= 3),
		c.earned("on_the_path", "On the Path", "Reach level 5", "🌳", level >= 5),
		c.earned("seasoned", "Seasoned Adventurer", "Reach level 10", "⭐", level >= 10),
		c.earned("legend", "Legend", "Reach the top level", "💫", level >= MaxLevel),

		// Quest milestones
		c.earned("first_quest", "First Quest", "Complete 1 quest", "✓", finished >= 1),
		c.earned("productive", "Productive", "Complete 10 quests", "📋", finished >= 10),
		c.earned("achiever", "Achiever", "Complete 50 quests", "🏅", finished >= 50),

		// Bosses
		c.earned("boss_slayer", "Boss Slayer", "Defeat a boss", "⚔️", sum.BossesDefeated >= 1),
		c.earned("clean_sweep", "Clean Sweep", "Defeat every boss on the map", "👑", sum.Bosses > 0 && sum.BossesDefeated == sum.Bosses),

		// Streaks
		c.earned("on_a_roll", "On a Roll", "Keep a 3-day streak", "🔥", c.stats.Streak >= 3),
		c.earned("unstoppable", "Unstoppable", "Keep a 7-day streak", "🌋", c.stats.Streak >= 7),
		c.earned("explorer", "Explorer", "Complete a quest in every region in one day", "🧭", c.allRegionsInOneDay()),
	}
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

// CountTotal returns total number of achievements.
func (c *AchievementChecker) CountTotal() int {
	return len(c.GetAchievements())
}

func (c *AchievementChecker) earned(id, name, desc, icon string, ok bool) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: ok}
}

// allRegionsInOneDay ignores the date: the badge sticks until the next
// completion starts a new day's set.
func (c *AchievementChecker) allRegionsInOneDay() bool {
	for _, r := range quest.Regions {
		if !c.stats.DailyCompletions.Has(r) {
			return false
		}
	}
	return true
}

// Achievements evaluates badges for the current session.
func (s *Session) Achievements() []Achievement {
	return NewAchievementChecker(s.doc).GetAchievements()
}
