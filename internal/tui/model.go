package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"adventuremap/internal/engine"
	"adventuremap/internal/quest"
	"adventuremap/internal/ui"
	"adventuremap/internal/worldmap"
)

type tab int

const (
	tabBoard tab = iota
	tabMap
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeConfirmRemove
)

// snapshot is everything View needs, copied out of the session so that
// rendering never touches it while a command runs.
type snapshot struct {
	doc      quest.Document
	level    engine.LevelInfo
	elig     engine.Eligibility
	progress []engine.RegionProgress
	board    engine.Board
}

func takeSnapshot(s *engine.Session) snapshot {
	return snapshot{
		doc:      s.Snapshot(),
		level:    s.Level(),
		elig:     s.Eligibility(),
		progress: s.RegionProgress(),
		board:    s.Board(),
	}
}

// eventLog collects session events during one command.
type eventLog struct {
	events []engine.Event
}

func (l *eventLog) listen(ev engine.Event) { l.events = append(l.events, ev) }

func (l *eventLog) drain() []engine.Event {
	out := l.events
	l.events = nil
	return out
}

type boardModel struct {
	ctx  context.Context
	sess *engine.Session
	log  *eventLog

	width  int
	height int

	snap   *snapshot
	tab    tab
	mode   mode
	column int
	cursor [3]int

	input     textinput.Model
	addRegion int
	addBoss   bool

	busy    bool
	lastLog string
	cheer   string
	err     error
}

type loadedMsg struct {
	snap   snapshot
	events []engine.Event
}

type opDoneMsg struct {
	label  string
	snap   snapshot
	events []engine.Event
	err    error
}

var columns = []quest.Status{quest.StatusTodo, quest.StatusInProgress, quest.StatusDone}

func newBoardModel(ctx context.Context, sess *engine.Session, pending []engine.Event) boardModel {
	l := &eventLog{events: pending}
	sess.Subscribe(l.listen)

	ti := textinput.New()
	ti.Placeholder = "Quest title"
	ti.CharLimit = 200
	ti.Width = 40

	return boardModel{
		ctx:     ctx,
		sess:    sess,
		log:     l,
		input:   ti,
		busy:    true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{snap: takeSnapshot(m.sess), events: m.log.drain()}
	}
}

// opCmd runs one session operation off the update loop. Only one runs at
// a time: Update ignores keys while busy.
func (m boardModel) opCmd(label string, op func(ctx context.Context, s *engine.Session) error) tea.Cmd {
	return func() tea.Msg {
		err := op(m.ctx, m.sess)
		return opDoneMsg{label: label, snap: takeSnapshot(m.sess), events: m.log.drain(), err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, msg.Width/2)
		return m, nil
	case loadedMsg:
		m.busy = false
		m.snap = &msg.snap
		m.absorb(msg.events)
		m.clampCursors()
		return m, nil
	case opDoneMsg:
		m.busy = false
		m.snap = &msg.snap
		m.absorb(msg.events)
		if msg.err != nil {
			if engine.IsNonFatal(msg.err) {
				m.lastLog = ui.IconWarn + " " + msg.label + " applied but not saved: " + msg.err.Error()
			} else {
				m.lastLog = ui.IconError + " " + msg.label + " failed: " + msg.err.Error()
			}
		}
		m.clampCursors()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg)
		case modeConfirmRemove:
			return m.updateConfirmRemove(msg.String())
		}
		if m.busy {
			return m, nil
		}
		return m.updateBrowse(msg.String())
	}
	return m, nil
}

// absorb turns session events into the status line and celebration banner.
func (m *boardModel) absorb(events []engine.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case engine.EventCelebration:
			m.cheer = ev.Message
			if ev.Category == engine.CategoryLevelUp {
				m.cheer = ui.BadgeLevelUp + " " + ev.Message
			}
		case engine.EventNotice:
			switch ev.Severity {
			case engine.SeverityError:
				m.lastLog = ui.IconError + " " + ev.Message
			case engine.SeverityWarn:
				m.lastLog = ui.IconWarn + " " + ev.Message
			default:
				m.lastLog = ev.Message
			}
		}
	}
}

func (m boardModel) updateBrowse(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "esc":
		return m, tea.Quit
	case "tab":
		if m.tab == tabBoard {
			m.tab = tabMap
		} else {
			m.tab = tabBoard
		}
		return m, nil
	case "r":
		m.busy = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case "left", "h":
		if m.column > 0 {
			m.column--
		}
		return m, nil
	case "right", "l":
		if m.column < len(columns)-1 {
			m.column++
		}
		return m, nil
	case "up", "k":
		if m.cursor[m.column] > 0 {
			m.cursor[m.column]--
		}
		return m, nil
	case "down", "j":
		if m.cursor[m.column] < len(m.currentColumn())-1 {
			m.cursor[m.column]++
		}
		return m, nil
	case "a":
		m.mode = modeAdd
		m.input.SetValue("")
		m.addBoss = false
		m.lastLog = "New quest: type a title, tab to change region, ctrl+b for boss, enter to save."
		return m, m.input.Focus()
	case "1", "2", "3":
		return m.claim(engine.Rewards[key[0]-'1'])
	}

	t, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	id := t.ID
	switch key {
	case "enter", " ":
		switch t.Status {
		case quest.StatusTodo:
			return m.run("Accept", func(ctx context.Context, s *engine.Session) error { return s.Take(ctx, id) })
		case quest.StatusInProgress:
			return m.run("Complete", func(ctx context.Context, s *engine.Session) error {
				_, err := s.Complete(ctx, id)
				return err
			})
		}
	case "u":
		switch t.Status {
		case quest.StatusInProgress:
			return m.run("Return", func(ctx context.Context, s *engine.Session) error { return s.Untake(ctx, id) })
		case quest.StatusDone:
			return m.run("Undo", func(ctx context.Context, s *engine.Session) error {
				_, err := s.Undo(ctx, id)
				return err
			})
		}
	case "d":
		return m.run("Duplicate", func(ctx context.Context, s *engine.Session) error {
			_, err := s.DuplicateTask(ctx, id)
			return err
		})
	case "p":
		return m.run("Repeat", func(ctx context.Context, s *engine.Session) error {
			_, err := s.ToggleRepeatable(ctx, id)
			return err
		})
	case "x", "delete":
		m.mode = modeConfirmRemove
		m.lastLog = fmt.Sprintf("Remove %q? (y/n)", t.Title)
	}
	return m, nil
}

func (m boardModel) run(label string, op func(ctx context.Context, s *engine.Session) error) (tea.Model, tea.Cmd) {
	m.busy = true
	m.cheer = ""
	m.lastLog = label + "…"
	return m, m.opCmd(label, op)
}

// claim only offers a reward the session currently allows; Claim itself
// does not check.
func (m boardModel) claim(r engine.Reward) (tea.Model, tea.Cmd) {
	if m.snap == nil || !m.snap.elig.Allows(r) {
		m.lastLog = fmt.Sprintf("The %s reward is not available yet.", r)
		return m, nil
	}
	return m.run("Claim "+string(r), func(ctx context.Context, s *engine.Session) error {
		if !s.Eligibility().Allows(r) {
			return fmt.Errorf("%s reward is no longer available", r)
		}
		_, err := s.Claim(ctx, r)
		return err
	})
}

func (m boardModel) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		m.lastLog = "Cancelled."
		return m, nil
	case "tab":
		m.addRegion = (m.addRegion + 1) % len(quest.Regions)
		return m, nil
	case "ctrl+b":
		m.addBoss = !m.addBoss
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.lastLog = "Quest title cannot be empty."
			return m, nil
		}
		region, boss := quest.Regions[m.addRegion], m.addBoss
		m.mode = modeBrowse
		m.input.Blur()
		m.column = 0
		return m.run("Add", func(ctx context.Context, s *engine.Session) error {
			_, err := s.AddTask(ctx, region, title, boss)
			return err
		})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m boardModel) updateConfirmRemove(key string) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	t, ok := m.selectedTask()
	if !ok || (key != "y" && key != "Y") || m.busy {
		m.lastLog = "Kept."
		return m, nil
	}
	id := t.ID
	return m.run("Remove", func(ctx context.Context, s *engine.Session) error { return s.Remove(ctx, id) })
}

func (m boardModel) currentColumn() []quest.Task {
	if m.snap == nil {
		return nil
	}
	return m.snap.board.Column(columns[m.column])
}

func (m boardModel) selectedTask() (quest.Task, bool) {
	col := m.currentColumn()
	i := m.cursor[m.column]
	if i < 0 || i >= len(col) {
		return quest.Task{}, false
	}
	return col[i], true
}

func (m *boardModel) clampCursors() {
	if m.snap == nil {
		return
	}
	for i, s := range columns {
		n := len(m.snap.board.Column(s))
		if m.cursor[i] >= n {
			m.cursor[i] = n - 1
		}
		if m.cursor[i] < 0 {
			m.cursor[i] = 0
		}
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.snap == nil {
		return "Adventure Map: loading…"
	}

	var body string
	if m.tab == tabMap {
		body = m.renderMap()
	} else {
		body = m.renderBoard()
	}
	return m.renderHeader() + "\n\n" + m.renderProgress() + "\n\n" + body + "\n" + m.renderFooter()
}

func (m boardModel) renderHeader() string {
	st := m.snap.doc.Stats
	lvl := m.snap.level
	bar := progressBar(st.TotalXP-lvl.XPForCurrent, lvl.XPForNext-lvl.XPForCurrent, 30)
	if lvl.Level == engine.MaxLevel {
		bar = progressBar(1, 1, 30)
	}
	title := ui.Heading(ui.IconMap, m.snap.doc.Config.Title())
	return fmt.Sprintf("%s  Level %d  %s %s  %s %d",
		title, lvl.Level, ui.XP(st.TotalXP), bar, ui.IconFire, st.Streak)
}

func (m boardModel) renderProgress() string {
	var parts []string
	for _, p := range m.snap.progress {
		label := fmt.Sprintf("%s %s %d/%d", ui.RegionIcon(p.Region), p.Name, p.Completed, p.Total)
		parts = append(parts, ui.RegionStyle(p.Region).Render(label)+" "+progressBar(p.Completed, p.Total, 10))
	}

	e := m.snap.elig
	rewards := []string{
		rewardText("1", ui.IconPotion+" daily", e.Daily),
		rewardText("2", ui.IconCrown+" weekly", e.Weekly),
		rewardText("3", ui.IconScroll+" monthly", e.Monthly),
	}
	return strings.Join(parts, "   ") + "\n" + ui.Key.Render("Rewards:") + " " + strings.Join(rewards, "  ")
}

func rewardText(key, label string, ready bool) string {
	if ready {
		return ui.Gold.Render("[" + key + "] " + label + " ready!")
	}
	return ui.Dim.Render(label)
}

func (m boardModel) renderBoard() string {
	colW := 30
	if m.width > 0 {
		colW = max(20, (m.width-4)/3)
	}
	titles := []string{"Quest Backlog", "Active Quests", "Completed"}

	var cols []string
	for i, s := range columns {
		tasks := m.snap.board.Column(s)
		lines := []string{ui.PanelTitle.Render(fmt.Sprintf("%s (%d)", titles[i], len(tasks)))}
		if len(tasks) == 0 {
			lines = append(lines, ui.Muted.Render("(empty)"))
		}
		for j, t := range tasks {
			marker := "  "
			if t.IsBoss {
				marker = "! "
			}
			if t.ShouldDuplicate {
				marker = marker[:1] + "↻"
			}
			text := padRight(marker+t.Title, colW-4)
			switch {
			case i == m.column && j == m.cursor[i] && m.mode != modeAdd:
				text = ui.SelectedRow.Render(text)
			case s == quest.StatusDone:
				text = ui.Dim.Render(text)
			default:
				text = ui.RegionStyle(t.Region).Render(text)
			}
			lines = append(lines, text)
		}
		cols = append(cols, ui.Panel.Width(colW).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m boardModel) renderMap() string {
	w, h := 60, 18
	if m.width > 0 {
		w = max(20, m.width-4)
	}
	if m.height > 0 {
		h = max(8, m.height-14)
	}
	grid := worldmap.Render(m.snap.doc.Tasks, m.snap.level.Level, w, h)

	sel, _ := m.selectedTask()
	var b strings.Builder
	for r, row := range grid.Rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteString(cellStyle(c, sel.ID).Render(string(c.Rune)))
		}
	}
	legend := ui.Muted.Render("Mountains ^  Kingdom .  Forest \"  Ocean ~   UPPERCASE = boss")
	return ui.Panel.Render(b.String()) + "\n" + legend
}

func cellStyle(c worldmap.Cell, selected string) lipgloss.Style {
	if c.TaskID == "" {
		return ui.RegionStyle(c.Region).Faint(true)
	}
	if c.TaskID == selected {
		return ui.SelectedRow
	}
	switch c.Status {
	case quest.StatusDone:
		return ui.Good
	case quest.StatusInProgress:
		return ui.RegionStyle(c.Region).Bold(true)
	default:
		return ui.Dim
	}
}

func (m boardModel) renderFooter() string {
	var out []string
	if m.mode == modeAdd {
		boss := "no"
		if m.addBoss {
			boss = ui.BadgeBoss
		}
		r := quest.Regions[m.addRegion]
		out = append(out, fmt.Sprintf("%s %s  region: %s  boss: %s",
			ui.IconPlus, m.input.View(), ui.RegionText(r, m.snap.doc.Config.RegionName(r)), boss))
	}
	if m.cheer != "" {
		out = append(out, ui.Gold.Render(ui.IconSparkle+" "+m.cheer))
	}
	out = append(out, m.lastLog)
	out = append(out, ui.Muted.Render(fmt.Sprintf(
		"←/→ column  ↑/↓ move  enter accept/complete  u undo  a add  d dup  p repeat  x remove  1-3 claim  tab map  q quit  (%s)",
		time.Now().Format("15:04"))))
	return strings.Join(out, "\n")
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
