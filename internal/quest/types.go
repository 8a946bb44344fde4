package quest

import (
	"fmt"
	"strings"
)

type Region string

const (
	RegionForest    Region = "Forest"
	RegionMountains Region = "Mountains"
	RegionOcean     Region = "Ocean"
	RegionKingdom   Region = "Kingdom"
)

// Regions lists the canonical regions in board order.
var Regions = []Region{RegionForest, RegionMountains, RegionOcean, RegionKingdom}

// legacyRegions maps retired region names to their replacement.
var legacyRegions = map[string]Region{
	"village": RegionOcean,
}

func (r Region) IsValid() bool {
	switch r {
	case RegionForest, RegionMountains, RegionOcean, RegionKingdom:
		return true
	default:
		return false
	}
}

// Key is the lowercase form used for map zones and CLI flags.
func (r Region) Key() string {
	return strings.ToLower(string(r))
}

// ParseRegion matches a region name case-insensitively and folds legacy names.
func ParseRegion(input string) (Region, error) {
	s := strings.TrimSpace(input)
	for _, r := range Regions {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	if r, ok := legacyRegions[strings.ToLower(s)]; ok {
		return r, nil
	}
	return "", fmt.Errorf("invalid region: %q", input)
}

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusDone       Status = "done"
)

// Statuses lists the board columns in order. "review" exists in old board
// groupings but nothing ever moves a quest there, so it is not accepted.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

func ParseStatus(input string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(input)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid status: %q", input)
	}
	return s, nil
}

type Task struct {
	ID              string `json:"id"`
	Region          Region `json:"region"`
	Title           string `json:"task"`
	Status          Status `json:"status"`
	IsBoss          bool   `json:"isBoss"`
	Description     string `json:"description"`
	CompletionDate  string `json:"completionDate"`
	ShouldDuplicate bool   `json:"shouldDuplicate"`
}

// DailyCompletions tracks which regions saw a completed quest on Date.
type DailyCompletions struct {
	Date    string   `json:"date"`
	Regions []Region `json:"regions"`
}

func (d DailyCompletions) Has(r Region) bool {
	for _, got := range d.Regions {
		if got == r {
			return true
		}
	}
	return false
}

// Stats carries progression counters. Date fields hold "" for unset.
type Stats struct {
	Streak               int              `json:"streak"`
	TotalXP              int              `json:"totalXP"`
	LastCompletedDate    string           `json:"lastCompletedDate"`
	CurrentWeekStartDate string           `json:"currentWeekStartDate"`
	MonthlyRewardClaimed bool             `json:"monthlyRewardClaimed"`
	LastMonthLevel       int              `json:"lastMonthLevel"`
	LastMonthlyClaim     string           `json:"lastMonthlyClaim"`
	DailyRewardClaimed   string           `json:"dailyRewardClaimed"`
	DailyCompletions     DailyCompletions `json:"dailyCompletions"`
}

type Config struct {
	AdventureName string `json:"AdventureName"`
	Region1Name   string `json:"Region1_Name"`
	Region2Name   string `json:"Region2_Name"`
	Region3Name   string `json:"Region3_Name"`
	Region4Name   string `json:"Region4_Name"`
}

const DefaultAdventureName = "My Adventure Map"

// Title returns the adventure name, falling back to the default.
func (c Config) Title() string {
	if strings.TrimSpace(c.AdventureName) == "" {
		return DefaultAdventureName
	}
	return c.AdventureName
}

// RegionName returns the display name configured for r.
func (c Config) RegionName(r Region) string {
	var name string
	switch r {
	case RegionForest:
		name = c.Region1Name
	case RegionMountains:
		name = c.Region2Name
	case RegionOcean:
		name = c.Region3Name
	case RegionKingdom:
		name = c.Region4Name
	}
	if strings.TrimSpace(name) == "" {
		return string(r)
	}
	return name
}

// Document is the whole persisted store. JSON keys follow the browser
// payload so an exported localStorage value can be restored as-is.
type Document struct {
	Tasks  []Task `json:"allTasks"`
	Stats  Stats  `json:"stats"`
	Config Config `json:"config"`
}

// Clone returns a deep copy safe to hand to renderers.
func (d Document) Clone() Document {
	out := d
	if d.Tasks != nil {
		out.Tasks = make([]Task, len(d.Tasks))
		copy(out.Tasks, d.Tasks)
	}
	if d.Stats.DailyCompletions.Regions != nil {
		out.Stats.DailyCompletions.Regions = append([]Region(nil), d.Stats.DailyCompletions.Regions...)
	}
	return out
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// SingleLine folds line breaks to spaces. Stored text never spans lines, so
// every record fits on one CSV line and a backup reads back unchanged.
func SingleLine(s string) string {
	return lineBreaks.Replace(s)
}

// Normalize folds legacy region names and line breaks, and checks the task
// invariants.
func (d *Document) Normalize() error {
	seen := make(map[string]bool, len(d.Tasks))
	for i := range d.Tasks {
		t := &d.Tasks[i]
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("task %d: missing id", i)
		}
		if seen[t.ID] {
			return fmt.Errorf("task %d: duplicate id %q", i, t.ID)
		}
		seen[t.ID] = true

		r, err := ParseRegion(string(t.Region))
		if err != nil {
			return fmt.Errorf("task %s: %w", t.ID, err)
		}
		t.Region = r

		s, err := ParseStatus(string(t.Status))
		if err != nil {
			return fmt.Errorf("task %s: %w", t.ID, err)
		}
		t.Status = s
		t.Title = SingleLine(t.Title)
		t.Description = SingleLine(t.Description)
	}

	c := &d.Config
	for _, name := range []*string{&c.AdventureName, &c.Region1Name, &c.Region2Name, &c.Region3Name, &c.Region4Name} {
		*name = SingleLine(*name)
	}

	var regions []Region
	for _, raw := range d.Stats.DailyCompletions.Regions {
		r, err := ParseRegion(string(raw))
		if err != nil {
			return fmt.Errorf("daily completions: %w", err)
		}
		regions = append(regions, r)
	}
	d.Stats.DailyCompletions.Regions = regions

	if d.Stats.TotalXP < 0 {
		d.Stats.TotalXP = 0
	}
	if d.Stats.Streak < 0 {
		d.Stats.Streak = 0
	}
	return nil
}

// Find returns the index of the task with id, or -1.
func (d Document) Find(id string) int {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
