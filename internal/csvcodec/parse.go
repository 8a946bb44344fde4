package csvcodec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"adventuremap/internal/quest"
)

const (
	SectionTasks  = "TASKS"
	SectionStats  = "STATS"
	SectionConfig = "CONFIG"
)

// ParseError reports a malformed section or row. Line is 1-based; 0 means
// the problem concerns the document as a whole.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line <= 0 {
		return "csv: " + e.Msg
	}
	return fmt.Sprintf("csv line %d: %s", e.Line, e.Msg)
}

// IDFunc mints ids for rows that arrive without one.
type IDFunc func() string

// Backup is the result of a full (overwrite) parse.
type Backup struct {
	Doc quest.Document
	// HasConfig is set when the text carried a CONFIG section.
	HasConfig bool
}

// Column positions used when a TASKS section has no header row.
var (
	backupColumns = []string{"region", "task", "status", "isboss", "id", "description", "completiondate", "repeatable"}
	addColumns    = []string{"region", "task", "isboss", "description"}
)

type line struct {
	no   int
	text string
}

// splitLines trims every line and drops blanks and single-# comments.
func splitLines(text string) []line {
	raw := strings.Split(text, "\n")
	out := make([]line, 0, len(raw))
	for i, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if strings.HasPrefix(l, "#") && !strings.HasPrefix(l, "##") {
			continue
		}
		out = append(out, line{no: i + 1, text: l})
	}
	return out
}

func sectionName(l string) string {
	return strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(l, "##")))
}

func readRecord(l line) ([]string, error) {
	r := csv.NewReader(strings.NewReader(l.text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rec, err := r.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &ParseError{Line: l.no, Msg: pe.Err.Error()}
		}
		return nil, &ParseError{Line: l.no, Msg: err.Error()}
	}
	return rec, nil
}

// columnKey normalizes a header cell: "Is_Boss" and "is boss" both become "isboss".
func columnKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", "", " ", "", "-", "").Replace(s)
	if s == "title" {
		return "task"
	}
	return s
}

type columns map[string]int

func positional(names []string) columns {
	c := make(columns, len(names))
	for i, n := range names {
		c[n] = i
	}
	return c
}

func headerColumns(rec []string) columns {
	c := make(columns, len(rec))
	for i, cell := range rec {
		key := columnKey(cell)
		if _, dup := c[key]; !dup {
			c[key] = i
		}
	}
	return c
}

func isHeader(rec []string, first string) bool {
	return len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), first)
}

func (c columns) has(name string) bool {
	_, ok := c[name]
	return ok
}

func (c columns) get(rec []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func isTrue(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "TRUE")
}

// Parse reads a full backup: tasks with their status and ids, stats, and
// optionally config. Any malformed row fails the whole parse.
func Parse(text string, newID IDFunc) (*Backup, error) {
	out := &Backup{Doc: quest.Document{Tasks: []quest.Task{}}}
	seen := map[string]bool{}
	section := ""
	sawTasks := false
	var cols columns

	for _, l := range splitLines(text) {
		if strings.HasPrefix(l.text, "##") {
			section = sectionName(l.text)
			cols = nil
			switch section {
			case SectionTasks:
				sawTasks = true
			case SectionConfig:
				out.HasConfig = true
			}
			continue
		}

		switch section {
		case "":
			return nil, &ParseError{Line: l.no, Msg: "data row outside of a section"}
		case SectionTasks:
			rec, err := readRecord(l)
			if err != nil {
				return nil, err
			}
			if cols == nil {
				if isHeader(rec, "region") {
					cols = headerColumns(rec)
					continue
				}
				cols = positional(backupColumns)
			}
			t, err := backupTask(l.no, rec, cols, newID)
			if err != nil {
				return nil, err
			}
			if seen[t.ID] {
				return nil, &ParseError{Line: l.no, Msg: fmt.Sprintf("duplicate id %q", t.ID)}
			}
			seen[t.ID] = true
			out.Doc.Tasks = append(out.Doc.Tasks, t)
		case SectionStats:
			rec, err := readRecord(l)
			if err != nil {
				return nil, err
			}
			if isHeader(rec, "metric") {
				continue
			}
			if err := applyStat(&out.Doc.Stats, l.no, rec); err != nil {
				return nil, err
			}
		case SectionConfig:
			rec, err := readRecord(l)
			if err != nil {
				return nil, err
			}
			if isHeader(rec, "key") {
				continue
			}
			applyConfig(&out.Doc.Config, rec)
		default:
			// Unknown sections are skipped so newer files still load.
		}
	}

	if !sawTasks {
		return nil, &ParseError{Msg: "missing ## TASKS section"}
	}
	return out, nil
}

func backupTask(lineNo int, rec []string, cols columns, newID IDFunc) (quest.Task, error) {
	if len(rec) < 2 {
		return quest.Task{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("expected at least 2 fields, got %d", len(rec))}
	}
	region, err := quest.ParseRegion(cols.get(rec, "region"))
	if err != nil {
		return quest.Task{}, &ParseError{Line: lineNo, Msg: err.Error()}
	}
	title := strings.TrimSpace(cols.get(rec, "task"))
	if title == "" {
		return quest.Task{}, &ParseError{Line: lineNo, Msg: "missing task title"}
	}

	status := quest.StatusTodo
	if cols.has("status") {
		raw := cols.get(rec, "status")
		if strings.TrimSpace(raw) == "" {
			return quest.Task{}, &ParseError{Line: lineNo, Msg: "missing status"}
		}
		if status, err = quest.ParseStatus(raw); err != nil {
			return quest.Task{}, &ParseError{Line: lineNo, Msg: err.Error()}
		}
	}

	id := strings.TrimSpace(cols.get(rec, "id"))
	if id == "" {
		id = newID()
	}

	return quest.Task{
		ID:              id,
		Region:          region,
		Title:           title,
		Status:          status,
		IsBoss:          isTrue(cols.get(rec, "isboss")),
		Description:     cols.get(rec, "description"),
		CompletionDate:  strings.TrimSpace(cols.get(rec, "completiondate")),
		ShouldDuplicate: isTrue(cols.get(rec, "repeatable")),
	}, nil
}

func applyStat(s *quest.Stats, lineNo int, rec []string) error {
	if len(rec) < 2 {
		// A bare metric carries no value; the browser export skipped these too.
		return nil
	}
	metric := strings.TrimSpace(rec[0])
	value := strings.TrimSpace(rec[1])

	switch metric {
	case "streak":
		s.Streak = nonNegative(number(value))
	case "totalXP":
		s.TotalXP = nonNegative(number(value))
	case "lastMonthLevel":
		s.LastMonthLevel = nonNegative(number(value))
	case "lastCompletedDate":
		s.LastCompletedDate = value
	case "currentWeekStartDate":
		s.CurrentWeekStartDate = value
	case "lastMonthlyClaim":
		s.LastMonthlyClaim = value
	case "dailyRewardClaimed":
		s.DailyRewardClaimed = value
	case "monthlyRewardClaimed":
		s.MonthlyRewardClaimed = strings.EqualFold(value, "true") || value == "1"
	case "dailyCompletions":
		dc, err := parseDailyCompletions(value)
		if err != nil {
			return &ParseError{Line: lineNo, Msg: err.Error()}
		}
		s.DailyCompletions = dc
	}
	return nil
}

// number coerces the way the browser app did: anything non-numeric is 0.
func number(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// parseDailyCompletions reads "2024-05-01;Forest;Ocean".
func parseDailyCompletions(s string) (quest.DailyCompletions, error) {
	if s == "" {
		return quest.DailyCompletions{}, nil
	}
	parts := strings.Split(s, ";")
	dc := quest.DailyCompletions{Date: strings.TrimSpace(parts[0])}
	for _, p := range parts[1:] {
		if strings.TrimSpace(p) == "" {
			continue
		}
		r, err := quest.ParseRegion(p)
		if err != nil {
			return quest.DailyCompletions{}, fmt.Errorf("dailyCompletions: %w", err)
		}
		if !dc.Has(r) {
			dc.Regions = append(dc.Regions, r)
		}
	}
	return dc, nil
}

func applyConfig(c *quest.Config, rec []string) {
	if len(rec) < 2 {
		return
	}
	value := rec[1]
	switch strings.TrimSpace(rec[0]) {
	case "AdventureName":
		c.AdventureName = value
	case "Region1_Name":
		c.Region1Name = value
	case "Region2_Name":
		c.Region2Name = value
	case "Region3_Name":
		c.Region3Name = value
	case "Region4_Name":
		c.Region4Name = value
	}
}

// ParseNewQuests reads quests for "add" imports. Only region, title, boss
// flag and description are used; every quest comes back as a fresh todo.
func ParseNewQuests(text string, newID IDFunc) ([]quest.Task, error) {
	lines := splitLines(text)
	sectioned := false
	for _, l := range lines {
		if strings.HasPrefix(l.text, "##") {
			sectioned = true
			break
		}
	}

	var out []quest.Task
	section := ""
	var cols columns
	for _, l := range lines {
		if strings.HasPrefix(l.text, "##") {
			section = sectionName(l.text)
			cols = nil
			continue
		}
		if sectioned && section != SectionTasks {
			continue
		}

		rec, err := readRecord(l)
		if err != nil {
			return nil, err
		}
		if cols == nil {
			if isHeader(rec, "region") {
				cols = headerColumns(rec)
				continue
			}
			cols = positional(addColumns)
		}
		if len(rec) < 2 {
			return nil, &ParseError{Line: l.no, Msg: fmt.Sprintf("expected at least 2 fields, got %d", len(rec))}
		}
		region, err := quest.ParseRegion(cols.get(rec, "region"))
		if err != nil {
			return nil, &ParseError{Line: l.no, Msg: err.Error()}
		}
		title := strings.TrimSpace(cols.get(rec, "task"))
		if title == "" {
			return nil, &ParseError{Line: l.no, Msg: "missing task title"}
		}
		out = append(out, quest.Task{
			ID:          newID(),
			Region:      region,
			Title:       title,
			Status:      quest.StatusTodo,
			IsBoss:      isTrue(cols.get(rec, "isboss")),
			Description: cols.get(rec, "description"),
		})
	}
	return out, nil
}
