package engine

import (
	"fmt"
	"strings"

	"adventuremap/internal/quest"
)

type CompleteResult struct {
	TaskID      string
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	Boss        bool
	Streak      int
}

type UndoResult struct {
	TaskID      string
	XPDeducted  int
	LevelBefore int
	LevelAfter  int
}

type ClaimResult struct {
	Reward      Reward
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
}

// TaskPatch edits a quest. Nil fields are left alone.
type TaskPatch struct {
	Title       *string
	Region      *quest.Region
	IsBoss      *bool
	Description *string
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Region == nil && p.IsBoss == nil && p.Description == nil
}

// ConfigPatch edits display names. Nil fields are left alone.
type ConfigPatch struct {
	AdventureName *string
	RegionNames   map[quest.Region]string
}

type ImportMode string

const (
	ImportAdd       ImportMode = "add"
	ImportOverwrite ImportMode = "overwrite"
)

func ParseImportMode(input string) (ImportMode, error) {
	m := ImportMode(strings.ToLower(strings.TrimSpace(input)))
	switch m {
	case ImportAdd, ImportOverwrite:
		return m, nil
	case "":
		return ImportAdd, nil
	}
	return "", fmt.Errorf("invalid import mode: %q (want add or overwrite)", input)
}

type ImportResult struct {
	Mode ImportMode
	// Added counts new quests; for overwrite it is the size of the restored list.
	Added     int
	HasConfig bool
}
