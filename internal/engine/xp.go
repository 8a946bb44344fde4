package engine

const (
	// QuestXP is awarded for completing a regular quest.
	QuestXP = 10
	// BossXP is awarded for defeating a boss.
	BossXP = 25

	DailyRewardXP   = 19
	WeeklyRewardXP  = 100
	MonthlyRewardXP = 0

	// MonthlyLevelGain is how many levels must be gained since the last
	// monthly snapshot before the monthly reward opens.
	MonthlyLevelGain = 5
)

// LevelThresholds holds the cumulative XP at which each level starts.
// Index 0 is level 1.
var LevelThresholds = []int{0, 100, 250, 450, 700, 1000, 1350, 1750, 2200, 2700, 3250, 3850, 4500, 5200, 5950, 6750}

// MaxLevel is the highest level the table defines.
var MaxLevel = len(LevelThresholds)

type LevelInfo struct {
	Level int
	// XPForCurrent is the threshold the current level started at.
	XPForCurrent int
	// XPForNext is the threshold of the next level. At MaxLevel it equals
	// XPForCurrent, so progress reads as full.
	XPForNext int
}

// Progress returns the fraction of the way to the next level, in [0, 1].
func (l LevelInfo) Progress(xp int) float64 {
	span := l.XPForNext - l.XPForCurrent
	if span <= 0 {
		return 1
	}
	p := float64(xp-l.XPForCurrent) / float64(span)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// LevelForXP maps total XP to a level: 1 plus the thresholds reached after
// the first, capped at MaxLevel.
func LevelForXP(xp int) LevelInfo {
	if xp < 0 {
		xp = 0
	}
	i := 0
	for i+1 < len(LevelThresholds) && xp >= LevelThresholds[i+1] {
		i++
	}
	next := LevelThresholds[i]
	if i+1 < len(LevelThresholds) {
		next = LevelThresholds[i+1]
	}
	return LevelInfo{
		Level:        i + 1,
		XPForCurrent: LevelThresholds[i],
		XPForNext:    next,
	}
}

// TaskXP is the fixed award for a quest.
func TaskXP(isBoss bool) int {
	if isBoss {
		return BossXP
	}
	return QuestXP
}
