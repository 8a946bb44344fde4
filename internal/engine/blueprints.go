package engine

import (
	"context"

	"adventuremap/internal/csvcodec"
	"adventuremap/internal/quest"
)

// LoadTemplate replaces the session with the starter quests. Stats start
// over; display names are kept.
func (s *Session) LoadTemplate(ctx context.Context) error {
	return s.loadStarter(ctx, "template", s.doc.Config, "Template loaded! Accept a quest to begin.")
}

// LoadSample is LoadTemplate with the themed job-hunt names.
func (s *Session) LoadSample(ctx context.Context) error {
	return s.loadStarter(ctx, "sample", csvcodec.SampleConfig(), "Sample adventure loaded!")
}

func (s *Session) loadStarter(ctx context.Context, op string, cfg quest.Config, msg string) error {
	tasks, err := csvcodec.ParseNewQuests(csvcodec.Template(), s.newID)
	if err != nil {
		return err
	}
	s.replace(quest.Document{Tasks: tasks, Config: cfg})
	evs := append(s.rebase(), notice(SeverityInfo, "%s", msg))
	return s.commit(ctx, op, evs...)
}
