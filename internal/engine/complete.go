package engine

import (
	"context"

	"adventuremap/internal/quest"
)

// Complete finishes an active quest: it stamps today's date, awards XP,
// extends the streak and records the region for the daily reward.
func (s *Session) Complete(ctx context.Context, id string) (*CompleteResult, error) {
	i, err := s.lookup(id, quest.StatusInProgress)
	if err != nil {
		return nil, err
	}
	levelBefore := s.level
	today := s.todayString()

	t := &s.doc.Tasks[i]
	t.Status = quest.StatusDone
	t.CompletionDate = today
	xp := TaskXP(t.IsBoss)

	st := &s.doc.Stats
	st.TotalXP += xp
	ApplyCompletionStreak(st, today)
	RecordDailyCompletion(st, today, t.Region)

	err = s.commit(ctx, "complete", statusChanged(id, t.Status), completionCelebration(*t, xp))
	return &CompleteResult{
		TaskID:      id,
		XPAwarded:   xp,
		LevelBefore: levelBefore,
		LevelAfter:  s.level,
		LevelUp:     s.level > levelBefore,
		Boss:        t.IsBoss,
		Streak:      st.Streak,
	}, err
}

// Undo puts a finished quest back on the map and takes its XP back.
// Streak and daily completions stay as they are.
func (s *Session) Undo(ctx context.Context, id string) (*UndoResult, error) {
	i, err := s.lookup(id, quest.StatusDone)
	if err != nil {
		return nil, err
	}
	levelBefore := s.level

	t := &s.doc.Tasks[i]
	t.Status = quest.StatusInProgress
	t.CompletionDate = ""

	xp := TaskXP(t.IsBoss)
	st := &s.doc.Stats
	if xp > st.TotalXP {
		xp = st.TotalXP
	}
	st.TotalXP -= xp

	err = s.commit(ctx, "undo",
		statusChanged(id, t.Status),
		notice(SeverityInfo, "Quest '%s' is active again. -%d XP", t.Title, xp))
	return &UndoResult{
		TaskID:      id,
		XPDeducted:  xp,
		LevelBefore: levelBefore,
		LevelAfter:  s.level,
	}, err
}

// Claim awards reward r. Eligibility is not re-checked here: callers read
// Eligibility first and only offer rewards it allows.
func (s *Session) Claim(ctx context.Context, r Reward) (*ClaimResult, error) {
	if _, err := ParseReward(string(r)); err != nil {
		return nil, &ValidationError{Field: "reward", Msg: err.Error()}
	}
	levelBefore := s.level
	xp := ApplyClaim(&s.doc.Stats, r, s.now())
	err := s.commit(ctx, "claim "+string(r), rewardCelebration(r))
	return &ClaimResult{
		Reward:      r,
		XPAwarded:   xp,
		LevelBefore: levelBefore,
		LevelAfter:  s.level,
		LevelUp:     s.level > levelBefore,
	}, err
}

func (s *Session) ClaimDaily(ctx context.Context) (*ClaimResult, error) {
	return s.Claim(ctx, RewardDaily)
}

func (s *Session) ClaimWeekly(ctx context.Context) (*ClaimResult, error) {
	return s.Claim(ctx, RewardWeekly)
}

func (s *Session) ClaimMonthly(ctx context.Context) (*ClaimResult, error) {
	return s.Claim(ctx, RewardMonthly)
}
