package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"adventuremap/internal/engine"
	"adventuremap/internal/quest"
)

func TestProgressBar(t *testing.T) {
	if got := progressBar(0, 0, 5); got != "[-----]" {
		t.Fatalf("empty=%q", got)
	}
	if got := progressBar(5, 10, 10); got != "[#####-----]" {
		t.Fatalf("half=%q", got)
	}
	if got := progressBar(20, 10, 4); got != "[####]" {
		t.Fatalf("overflow=%q", got)
	}
	if got := progressBar(-1, 10, 1); got != "[---]" {
		t.Fatalf("min width=%q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("pad=%q", got)
	}
	if got := padRight("drachen", 4); got != "drac" {
		t.Fatalf("cut=%q", got)
	}
	if got := padRight("été", 4); got != "été " {
		t.Fatalf("runes=%q", got)
	}
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends msg and, when run is set, executes the returned command and
// feeds its result back.
func press(t *testing.T, m tea.Model, msg tea.Msg, run bool) boardModel {
	t.Helper()
	m, cmd := m.Update(msg)
	if run {
		if cmd == nil {
			t.Fatalf("expected a command for %v", msg)
		}
		m, _ = m.Update(cmd())
	}
	return m.(boardModel)
}

func newTestModel(t *testing.T) (boardModel, *engine.Session) {
	t.Helper()
	n := 0
	now := time.Date(2024, time.May, 15, 10, 0, 0, 0, time.UTC)
	sess := engine.NewSession(nil,
		engine.WithClock(engine.ClockFunc(func() time.Time { return now })),
		engine.WithLocation(time.UTC),
		engine.WithIDs(func() string { n++; return fmt.Sprintf("q-%d", n) }),
	)
	m := newBoardModel(context.Background(), sess, nil)
	next, _ := m.Update(m.Init()())
	return next.(boardModel), sess
}

func TestBoardQuestLifecycle(t *testing.T) {
	m, sess := newTestModel(t)
	if m.busy || m.snap == nil {
		t.Fatalf("model not loaded")
	}

	m = press(t, m, keys("a"), false)
	if m.mode != modeAdd {
		t.Fatalf("mode=%v", m.mode)
	}
	m = press(t, m, keys("Slay the dragon"), false)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlB}, false)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, true)

	tasks := sess.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Slay the dragon" || !tasks[0].IsBoss || tasks[0].Region != quest.RegionForest {
		t.Fatalf("tasks=%+v", tasks)
	}
	if m.mode != modeBrowse || len(m.snap.board.Todo) != 1 {
		t.Fatalf("mode=%v board=%+v", m.mode, m.snap.board)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, true)
	if got, _ := sess.Task("q-1"); got.Status != quest.StatusInProgress {
		t.Fatalf("status=%s", got.Status)
	}

	m = press(t, m, keys("l"), false)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, true)
	if xp := sess.Stats().TotalXP; xp != engine.BossXP {
		t.Fatalf("xp=%d", xp)
	}
	if m.cheer == "" {
		t.Fatalf("expected a celebration")
	}

	// Daily needs every region; weekly is open once all bosses fall.
	m = press(t, m, keys("1"), false)
	if !strings.Contains(m.lastLog, "not available") || m.busy {
		t.Fatalf("daily claim log=%q busy=%v", m.lastLog, m.busy)
	}
	m = press(t, m, keys("2"), true)
	if xp := sess.Stats().TotalXP; xp != engine.BossXP+engine.WeeklyRewardXP {
		t.Fatalf("xp after weekly=%d", xp)
	}

	m = press(t, m, keys("l"), false)
	m = press(t, m, keys("x"), false)
	if m.mode != modeConfirmRemove {
		t.Fatalf("mode=%v", m.mode)
	}
	m = press(t, m, keys("n"), false)
	if len(sess.Tasks()) != 1 {
		t.Fatalf("remove should have been cancelled")
	}
	m = press(t, m, keys("x"), false)
	m = press(t, m, keys("y"), true)
	if len(sess.Tasks()) != 0 {
		t.Fatalf("tasks=%+v", sess.Tasks())
	}

	if v := m.View(); !strings.Contains(v, "Level") {
		t.Fatalf("view missing header:\n%s", v)
	}
}

func TestBoardAddCancelAndRegionCycle(t *testing.T) {
	m, sess := newTestModel(t)
	m = press(t, m, keys("a"), false)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, false)
	if quest.Regions[m.addRegion] != quest.RegionMountains {
		t.Fatalf("region=%s", quest.Regions[m.addRegion])
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, false)
	if m.mode != modeAdd || !strings.Contains(m.lastLog, "empty") {
		t.Fatalf("empty title accepted: mode=%v log=%q", m.mode, m.lastLog)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, false)
	if m.mode != modeBrowse || len(sess.Tasks()) != 0 {
		t.Fatalf("cancel failed")
	}
}

func TestBoardMapTab(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keys("a"), false)
	m = press(t, m, keys("Chart the bay"), false)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, true)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, false)
	if m.tab != tabMap {
		t.Fatalf("tab=%v", m.tab)
	}
	if v := m.View(); !strings.Contains(v, "UPPERCASE = boss") {
		t.Fatalf("map legend missing:\n%s", v)
	}
}
