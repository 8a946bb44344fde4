package engine

import (
	"adventuremap/internal/quest"
)

// RegionProgress is sprint progress for one region: done quests out of all
// quests that have left the backlog. Bosses are tracked separately and do
// not count.
type RegionProgress struct {
	Region    quest.Region
	Name      string
	Completed int
	Total     int
}

func (p RegionProgress) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// SprintProgress computes RegionProgress for every region in board order.
func SprintProgress(tasks []quest.Task, cfg quest.Config) []RegionProgress {
	out := make([]RegionProgress, len(quest.Regions))
	for i, r := range quest.Regions {
		out[i] = RegionProgress{Region: r, Name: cfg.RegionName(r)}
	}
	for _, t := range tasks {
		if t.Status == quest.StatusTodo || t.IsBoss {
			continue
		}
		for i := range out {
			if out[i].Region != t.Region {
				continue
			}
			out[i].Total++
			if t.Status == quest.StatusDone {
				out[i].Completed++
			}
		}
	}
	return out
}

// Board groups quests by status, keeping list order within each column.
type Board struct {
	Todo       []quest.Task
	InProgress []quest.Task
	Done       []quest.Task
}

func (b Board) Column(s quest.Status) []quest.Task {
	switch s {
	case quest.StatusTodo:
		return b.Todo
	case quest.StatusInProgress:
		return b.InProgress
	case quest.StatusDone:
		return b.Done
	}
	return nil
}

func GroupByStatus(tasks []quest.Task) Board {
	var b Board
	for _, t := range tasks {
		switch t.Status {
		case quest.StatusTodo:
			b.Todo = append(b.Todo, t)
		case quest.StatusInProgress:
			b.InProgress = append(b.InProgress, t)
		case quest.StatusDone:
			b.Done = append(b.Done, t)
		}
	}
	return b
}

// Summary counts regular quests and bosses apart; Quests and Completed
// never include bosses.
type Summary struct {
	Quests         int
	Completed      int
	Bosses         int
	BossesDefeated int
}

func Summarize(tasks []quest.Task) Summary {
	var s Summary
	for _, t := range tasks {
		done := t.Status == quest.StatusDone
		if t.IsBoss {
			s.Bosses++
			if done {
				s.BossesDefeated++
			}
			continue
		}
		s.Quests++
		if done {
			s.Completed++
		}
	}
	return s
}

// Snapshot returns a copy of the document safe to keep across mutations.
func (s *Session) Snapshot() quest.Document {
	return s.doc.Clone()
}

// Task returns the quest with id, or false.
func (s *Session) Task(id string) (quest.Task, bool) {
	i := s.doc.Find(id)
	if i < 0 {
		return quest.Task{}, false
	}
	return s.doc.Tasks[i], true
}

func (s *Session) Tasks() []quest.Task {
	return s.doc.Clone().Tasks
}

func (s *Session) Stats() quest.Stats {
	return s.doc.Clone().Stats
}

func (s *Session) Config() quest.Config {
	return s.doc.Config
}

func (s *Session) Level() LevelInfo {
	return LevelForXP(s.doc.Stats.TotalXP)
}

func (s *Session) RegionProgress() []RegionProgress {
	return SprintProgress(s.doc.Tasks, s.doc.Config)
}

func (s *Session) Board() Board {
	return GroupByStatus(s.doc.Clone().Tasks)
}

func (s *Session) Summary() Summary {
	return Summarize(s.doc.Tasks)
}

func (s *Session) Eligibility() Eligibility {
	sum := s.Summary()
	return RewardEligibility(s.doc.Stats, sum.BossesDefeated, sum.Bosses, s.Level().Level, s.todayString())
}
