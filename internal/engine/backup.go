package engine

import (
	"context"

	"github.com/rs/zerolog/log"

	"adventuremap/internal/csvcodec"
	"adventuremap/internal/quest"
)

// ImportCSV loads quests from CSV text. Add mode appends fresh todo quests;
// overwrite mode replaces tasks and stats, and config when the text has a
// CONFIG section. A parse error leaves the session untouched.
func (s *Session) ImportCSV(ctx context.Context, text string, mode ImportMode) (*ImportResult, error) {
	switch mode {
	case ImportAdd:
		tasks, err := csvcodec.ParseNewQuests(text, s.newID)
		if err != nil {
			s.emit(notice(SeverityError, "Import failed: %v", err))
			return nil, err
		}
		s.doc.Tasks = append(s.doc.Tasks, tasks...)
		evs := make([]Event, 0, len(tasks)+1)
		for _, t := range tasks {
			evs = append(evs, statusChanged(t.ID, t.Status))
		}
		evs = append(evs, notice(SeverityInfo, "Imported %d new quests!", len(tasks)))
		log.Info().Int("quests", len(tasks)).Msg("imported quests")
		return &ImportResult{Mode: mode, Added: len(tasks)}, s.commit(ctx, "import", evs...)

	case ImportOverwrite:
		backup, err := csvcodec.Parse(text, s.newID)
		if err != nil {
			s.emit(notice(SeverityError, "Restore failed: %v", err))
			return nil, err
		}
		cfg := s.doc.Config
		if backup.HasConfig {
			cfg = backup.Doc.Config
		}
		s.replace(quest.Document{Tasks: backup.Doc.Tasks, Stats: backup.Doc.Stats, Config: cfg})
		log.Info().Int("quests", len(backup.Doc.Tasks)).Bool("config", backup.HasConfig).Msg("restored backup")
		evs := append(s.rebase(), notice(SeverityInfo, "Successfully restored from backup!"))
		return &ImportResult{Mode: mode, Added: len(backup.Doc.Tasks), HasConfig: backup.HasConfig},
			s.commit(ctx, "restore", evs...)
	}
	return nil, &ValidationError{Field: "mode", Msg: "want add or overwrite, got " + string(mode)}
}

// ExportCSV renders the whole session as a backup.
func (s *Session) ExportCSV() string {
	return csvcodec.Write(s.doc)
}

func (s *Session) replace(doc quest.Document) {
	if doc.Tasks == nil {
		doc.Tasks = []quest.Task{}
	}
	s.doc = doc
}
