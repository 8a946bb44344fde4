package engine

import (
	"context"

	"adventuremap/internal/quest"
)

// AddTask puts a new todo quest at the end of the list.
func (s *Session) AddTask(ctx context.Context, region quest.Region, title string, isBoss bool) (quest.Task, error) {
	t, err := normalizeTitle(title)
	if err != nil {
		return quest.Task{}, err
	}
	if err := validRegion(region); err != nil {
		return quest.Task{}, err
	}

	task := quest.Task{
		ID:     s.newID(),
		Region: region,
		Title:  t,
		Status: quest.StatusTodo,
		IsBoss: isBoss,
	}
	s.doc.Tasks = append(s.doc.Tasks, task)
	err = s.commit(ctx, "add",
		statusChanged(task.ID, task.Status),
		notice(SeverityInfo, "New quest added: %s", task.Title))
	return task, err
}

// DuplicateTask copies a quest's content into a fresh todo quest.
func (s *Session) DuplicateTask(ctx context.Context, id string) (quest.Task, error) {
	i, err := s.lookup(id, "")
	if err != nil {
		return quest.Task{}, err
	}
	src := s.doc.Tasks[i]
	task := quest.Task{
		ID:          s.newID(),
		Region:      src.Region,
		Title:       src.Title,
		Status:      quest.StatusTodo,
		IsBoss:      src.IsBoss,
		Description: src.Description,
	}
	s.doc.Tasks = append(s.doc.Tasks, task)
	err = s.commit(ctx, "duplicate",
		statusChanged(task.ID, task.Status),
		notice(SeverityInfo, "Quest '%s' duplicated.", task.Title))
	return task, err
}

// Remove deletes a quest in any status. XP already earned is kept.
func (s *Session) Remove(ctx context.Context, id string) error {
	i, err := s.lookup(id, "")
	if err != nil {
		return err
	}
	title := s.doc.Tasks[i].Title
	s.doc.Tasks = append(s.doc.Tasks[:i], s.doc.Tasks[i+1:]...)
	return s.commit(ctx, "remove", notice(SeverityInfo, "Quest '%s' removed.", title))
}
