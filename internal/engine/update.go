package engine

import (
	"context"

	"adventuremap/internal/quest"
)

// Take accepts a todo quest onto the map.
func (s *Session) Take(ctx context.Context, id string) error {
	return s.move(ctx, "take", id, quest.StatusTodo, quest.StatusInProgress,
		"Quest accepted! It has been added to your Adventure Map.")
}

// Untake returns an active quest to the backlog.
func (s *Session) Untake(ctx context.Context, id string) error {
	return s.move(ctx, "untake", id, quest.StatusInProgress, quest.StatusTodo,
		"Quest returned to the backlog.")
}

func (s *Session) move(ctx context.Context, op, id string, from, to quest.Status, msg string) error {
	i, err := s.lookup(id, from)
	if err != nil {
		return err
	}
	s.doc.Tasks[i].Status = to
	return s.commit(ctx, op, statusChanged(id, to), notice(SeverityInfo, "%s", msg))
}

// ToggleRepeatable flips the repeat marker and returns its new value.
func (s *Session) ToggleRepeatable(ctx context.Context, id string) (bool, error) {
	i, err := s.lookup(id, "")
	if err != nil {
		return false, err
	}
	t := &s.doc.Tasks[i]
	t.ShouldDuplicate = !t.ShouldDuplicate
	on := t.ShouldDuplicate
	msg := "Quest will no longer repeat."
	if on {
		msg = "Quest marked as repeatable."
	}
	return on, s.commit(ctx, "repeat", notice(SeverityInfo, "%s", msg))
}

// UpdateTask edits a quest's content. Status, id and dates are not touched.
func (s *Session) UpdateTask(ctx context.Context, id string, p TaskPatch) (quest.Task, error) {
	if p.IsEmpty() {
		return quest.Task{}, &ValidationError{Field: "patch", Msg: "nothing to update"}
	}
	var title string
	if p.Title != nil {
		t, err := normalizeTitle(*p.Title)
		if err != nil {
			return quest.Task{}, err
		}
		title = t
	}
	if p.Region != nil {
		if err := validRegion(*p.Region); err != nil {
			return quest.Task{}, err
		}
	}
	i, err := s.lookup(id, "")
	if err != nil {
		return quest.Task{}, err
	}

	t := &s.doc.Tasks[i]
	if p.Title != nil {
		t.Title = title
	}
	if p.Region != nil {
		t.Region = *p.Region
	}
	if p.IsBoss != nil {
		t.IsBoss = *p.IsBoss
	}
	if p.Description != nil {
		t.Description = normalizeText(*p.Description)
	}
	out := *t
	return out, s.commit(ctx, "update", notice(SeverityInfo, "Quest '%s' updated.", out.Title))
}

// UpdateConfig changes the adventure and region display names.
func (s *Session) UpdateConfig(ctx context.Context, p ConfigPatch) (quest.Config, error) {
	for r := range p.RegionNames {
		if err := validRegion(r); err != nil {
			return quest.Config{}, err
		}
	}
	c := &s.doc.Config
	if p.AdventureName != nil {
		c.AdventureName = normalizeText(*p.AdventureName)
	}
	for r, name := range p.RegionNames {
		name = normalizeText(name)
		switch r {
		case quest.RegionForest:
			c.Region1Name = name
		case quest.RegionMountains:
			c.Region2Name = name
		case quest.RegionOcean:
			c.Region3Name = name
		case quest.RegionKingdom:
			c.Region4Name = name
		}
	}
	return *c, s.commit(ctx, "config", notice(SeverityInfo, "Map settings saved."))
}
