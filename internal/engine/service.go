package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"adventuremap/internal/quest"
)

// SnapshotStore is the durable slot a session is saved to. Load returns
// nil, nil when nothing has been saved yet.
type SnapshotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type Option func(*Session)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithLocation sets the zone calendar days are counted in.
func WithLocation(loc *time.Location) Option {
	return func(s *Session) { s.loc = loc }
}

// WithIDs replaces the id generator for new quests.
func WithIDs(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// WithListener subscribes l before Open runs, so reset notices reach it.
func WithListener(l Listener) Option {
	return func(s *Session) { s.listeners = append(s.listeners, l) }
}

func newTaskID() string {
	return "task-" + uuid.NewString()
}

// Session owns one adventure document. It is not safe for concurrent use.
type Session struct {
	doc       quest.Document
	store     SnapshotStore
	clock     Clock
	loc       *time.Location
	newID     func() string
	listeners []Listener

	level     int
	announced int
	resumed   bool
	resets    ResetReport
	// loadErr is set when the slot could not be read. Saving is refused so
	// the unread document is never replaced by this one.
	loadErr error
}

// NewSession returns an empty session saving to store. store may be nil
// for a purely in-memory session.
func NewSession(store SnapshotStore, opts ...Option) *Session {
	s := &Session{
		doc:       quest.Document{Tasks: []quest.Task{}},
		store:     store,
		clock:     ClockFunc(time.Now),
		loc:       time.Local,
		newID:     newTaskID,
		level:     1,
		announced: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open resumes the session saved in store. The returned session is always
// usable; a non-nil error is either a *PersistenceError or a
// *CorruptSessionError describing what was lost. When the slot cannot be
// read the session never saves, so the stored document survives.
func Open(ctx context.Context, store SnapshotStore, opts ...Option) (*Session, error) {
	s := NewSession(store, opts...)
	if store == nil {
		return s, nil
	}

	data, err := store.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("load session")
		s.loadErr = err
		s.emit(notice(SeverityError, "Could not read saved progress: %v. Changes will not be saved.", err))
		return s, &PersistenceError{Op: "load", Err: err}
	}
	if data == nil {
		s.emit(notice(SeverityInfo, "No saved data found. Load the template or sample quests to begin."))
		return s, nil
	}

	doc, err := decodeDocument(data)
	if err != nil {
		log.Warn().Err(err).Msg("discarding corrupt session")
		if cerr := store.Clear(ctx); cerr != nil {
			log.Error().Err(cerr).Msg("clear corrupt session")
		}
		s.emit(notice(SeverityError, "Saved progress was corrupt and has been cleared."))
		return s, &CorruptSessionError{Err: err}
	}

	s.doc = doc
	s.resumed = true
	s.resets = ApplyResets(&s.doc, s.today())
	s.level = LevelForXP(s.doc.Stats.TotalXP).Level
	s.announced = s.level

	if s.resets.StreakLost > 0 {
		s.emit(notice(SeverityWarn, "Your %d-day streak has ended. Complete a quest today to start a new one.", s.resets.StreakLost))
	}
	if s.resets.WeekRolled {
		s.emit(notice(SeverityInfo, "A new week has begun! Bosses have been reset (%d removed, %d returned to the map).",
			s.resets.BossesRemoved, s.resets.BossesReset))
	}
	log.Debug().
		Int("tasks", len(s.doc.Tasks)).
		Int("xp", s.doc.Stats.TotalXP).
		Bool("week_rolled", s.resets.WeekRolled).
		Msg("session resumed")

	return s, s.persist(ctx, "resume")
}

func decodeDocument(data []byte) (quest.Document, error) {
	var doc quest.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return quest.Document{}, err
	}
	if err := doc.Normalize(); err != nil {
		return quest.Document{}, err
	}
	if doc.Tasks == nil {
		doc.Tasks = []quest.Task{}
	}
	return doc, nil
}

// Resumed reports whether Open found a saved document.
func (s *Session) Resumed() bool { return s.resumed }

// Resets returns what the calendar rollovers changed when the session opened.
func (s *Session) Resets() ResetReport { return s.resets }

// Subscribe registers l for every later event.
func (s *Session) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Session) emit(evs ...Event) {
	for _, ev := range evs {
		for _, l := range s.listeners {
			l(ev)
		}
	}
}

func (s *Session) now() time.Time {
	return s.clock.Now().In(s.loc)
}

func (s *Session) today() time.Time {
	return quest.Midnight(s.clock.Now(), s.loc)
}

func (s *Session) todayString() string {
	return quest.Day(s.today())
}

// commit finishes a mutation: level events, save, then notifications.
// Events go out even when the save fails.
func (s *Session) commit(ctx context.Context, op string, evs ...Event) error {
	evs = append(evs, s.levelEvents()...)
	err := s.persist(ctx, op)
	if err != nil {
		evs = append(evs, notice(SeverityError, "Progress could not be saved: %v", err))
	}
	s.emit(evs...)
	return err
}

func (s *Session) levelEvents() []Event {
	lvl := LevelForXP(s.doc.Stats.TotalXP).Level
	var evs []Event
	if lvl != s.level {
		s.level = lvl
		evs = append(evs, levelChanged(lvl))
	}
	if lvl > s.announced {
		s.announced = lvl
		evs = append(evs, celebration(CategoryLevelUp, fmt.Sprintf("LEVEL UP! You are now Level %d!", lvl)))
	}
	return evs
}

// rebase adopts the current level without celebrating it. Used when the
// whole document is replaced.
func (s *Session) rebase() []Event {
	lvl := LevelForXP(s.doc.Stats.TotalXP).Level
	var evs []Event
	if lvl != s.level {
		evs = append(evs, levelChanged(lvl))
	}
	s.level, s.announced = lvl, lvl
	return evs
}

func (s *Session) persist(ctx context.Context, op string) error {
	if s.store == nil {
		return nil
	}
	if s.loadErr != nil {
		log.Warn().Str("op", op).Msg("save skipped: slot was never read")
		return &PersistenceError{Op: op, Err: fmt.Errorf("saved progress was not read: %w", s.loadErr)}
	}
	data, err := json.Marshal(s.doc)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if err := s.store.Save(ctx, data); err != nil {
		log.Error().Err(err).Str("op", op).Msg("save session")
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

// lookup finds id, requiring status want unless want is empty.
func (s *Session) lookup(id string, want quest.Status) (int, error) {
	i := s.doc.Find(id)
	if i < 0 || (want != "" && s.doc.Tasks[i].Status != want) {
		err := &NotFoundError{ID: id, Want: want}
		log.Warn().Str("id", id).Str("want", string(want)).Msg("stale quest reference")
		s.emit(notice(SeverityWarn, "%s", err.Error()))
		return -1, err
	}
	return i, nil
}

func normalizeTitle(title string) (string, error) {
	t := normalizeText(title)
	if t == "" {
		return "", &ValidationError{Field: "title", Msg: "quest title is required"}
	}
	return t, nil
}

// normalizeText trims s and folds line breaks, the form all stored text
// takes.
func normalizeText(s string) string {
	return strings.TrimSpace(quest.SingleLine(s))
}

func validRegion(r quest.Region) error {
	if !r.IsValid() {
		return &ValidationError{Field: "region", Msg: "unknown region " + string(r)}
	}
	return nil
}
