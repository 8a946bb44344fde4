package root

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"adventuremap/internal/engine"
	"adventuremap/internal/storage"
	"adventuremap/internal/ui"
)

// session is an engine session bound to its database, collecting the
// events it emits so the command can print them afterwards.
type session struct {
	*engine.Session
	db     *sql.DB
	events []engine.Event
}

func (s *session) Close() {
	_ = s.db.Close()
}

func (s *session) drain() []engine.Event {
	out := s.events
	s.events = nil
	return out
}

func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return storage.DefaultDBPath()
}

func openDB(ctx context.Context) (*sql.DB, error) {
	path, err := resolveDBPath()
	if err != nil {
		return nil, err
	}
	return storage.Open(ctx, path)
}

// openSession resumes the saved adventure. A damaged or unreadable slot is
// reported as a warning and the command continues on the empty session.
func openSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	db, err := openDB(ctx)
	if err != nil {
		return nil, err
	}
	s := &session{db: db}
	slot := storage.NewSlot(db, cfg.SlotKey)
	sess, err := engine.Open(ctx, slot, engine.WithListener(func(ev engine.Event) {
		s.events = append(s.events, ev)
	}))
	if err != nil {
		// An unreadable slot stops the command; a corrupt one was already
		// cleared and the empty session is usable.
		var pe *engine.PersistenceError
		if !engine.IsNonFatal(err) || (errors.As(err, &pe) && pe.Op == "load") {
			_ = db.Close()
			return nil, fmt.Errorf("open saved adventure: %w", err)
		}
		warn(cmd.ErrOrStderr(), err)
	}
	s.Session = sess
	return s, nil
}

// finish prints what the session announced and folds a non-fatal error
// into a warning.
func (s *session) finish(cmd *cobra.Command, err error) error {
	printEvents(cmd.OutOrStdout(), s.drain(), err)
	if err != nil && engine.IsNonFatal(err) {
		warn(cmd.ErrOrStderr(), err)
		return nil
	}
	return err
}

// printEvents writes celebrations and notices. A notice repeating err is
// skipped; the error is printed on its own.
func printEvents(w io.Writer, events []engine.Event, err error) {
	for _, ev := range events {
		if err != nil && ev.Kind == engine.EventNotice && ev.Message == err.Error() {
			continue
		}
		switch ev.Kind {
		case engine.EventCelebration:
			if ev.Category == engine.CategoryLevelUp {
				fmt.Fprintf(w, "%s %s\n", ui.BadgeLevelUp, ui.Gold.Render(ev.Message))
				continue
			}
			fmt.Fprintln(w, ui.Gold.Render(ui.IconSparkle+" "+ev.Message))
		case engine.EventNotice:
			switch ev.Severity {
			case engine.SeverityWarn:
				fmt.Fprintln(w, ui.Warn.Render(ui.IconWarn+" "+ev.Message))
			case engine.SeverityInfo:
				fmt.Fprintln(w, ev.Message)
			}
		}
	}
}

func warn(w io.Writer, err error) {
	var corrupt *engine.CorruptSessionError
	if errors.As(err, &corrupt) {
		fmt.Fprintln(w, ui.Warn.Render(ui.IconWarn+" saved adventure was unreadable and has been reset: "+corrupt.Err.Error()))
		return
	}
	fmt.Fprintln(w, ui.Warn.Render(ui.IconWarn+" "+err.Error()))
}

func requireArg(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
