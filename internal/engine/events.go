package engine

import (
	"fmt"
	"hash/fnv"

	"adventuremap/internal/quest"
)

type EventKind string

const (
	EventStatusChanged EventKind = "status-changed"
	EventLevelChanged  EventKind = "level-changed"
	EventCelebration   EventKind = "celebration"
	EventNotice        EventKind = "notice"
)

type Category string

const (
	CategoryQuest   Category = "quest"
	CategoryBoss    Category = "boss"
	CategoryLevelUp Category = "levelup"
	CategoryReward  Category = "reward"
)

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Event is a notification for the presentation layer. Which fields are set
// depends on Kind.
type Event struct {
	Kind     EventKind
	TaskID   string
	Status   quest.Status
	Level    int
	Message  string
	Category Category
	Severity Severity
}

type Listener func(Event)

func statusChanged(id string, s quest.Status) Event {
	return Event{Kind: EventStatusChanged, TaskID: id, Status: s}
}

func levelChanged(level int) Event {
	return Event{Kind: EventLevelChanged, Level: level}
}

func celebration(c Category, msg string) Event {
	return Event{Kind: EventCelebration, Category: c, Message: msg}
}

func notice(sev Severity, format string, args ...any) Event {
	return Event{Kind: EventNotice, Severity: sev, Message: fmt.Sprintf(format, args...)}
}

var questCheers = []string{
	"Quest Complete!",
	"Nicely done!",
	"Another one off the map!",
	"Onward, adventurer!",
}

var bossCheers = []string{
	"BOSS DEFEATED!",
	"The boss has fallen!",
	"Victory over the boss!",
}

// cheer picks a line for id deterministically so replays read the same.
func cheer(lines []string, id string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return lines[h.Sum32()%uint32(len(lines))]
}

func completionCelebration(t quest.Task, xp int) Event {
	if t.IsBoss {
		return celebration(CategoryBoss, fmt.Sprintf("%s +%d XP", cheer(bossCheers, t.ID), xp))
	}
	return celebration(CategoryQuest, fmt.Sprintf("%s +%d XP", cheer(questCheers, t.ID), xp))
}

func rewardCelebration(r Reward) Event {
	switch r {
	case RewardDaily:
		return celebration(CategoryReward, fmt.Sprintf("Daily reward claimed! +%d XP", DailyRewardXP))
	case RewardWeekly:
		return celebration(CategoryReward, fmt.Sprintf("Weekly chest opened! +%d XP", WeeklyRewardXP))
	default:
		return celebration(CategoryReward, "Monthly reward unlocked! Go celebrate your victory, you've earned it!")
	}
}
