package csvcodec

import (
	"strconv"
	"strings"

	"adventuremap/internal/quest"
)

const crlf = "\r\n"

// TasksHeader is the column order Write emits and Parse assumes when a
// TASKS section has no header row.
const TasksHeader = "Region,Task,Status,Is_Boss,ID,Description,CompletionDate,Repeatable"

// StatKeys lists every stats metric in export order.
var StatKeys = []string{
	"streak",
	"totalXP",
	"lastCompletedDate",
	"currentWeekStartDate",
	"monthlyRewardClaimed",
	"lastMonthLevel",
	"lastMonthlyClaim",
	"dailyRewardClaimed",
	"dailyCompletions",
}

// quoted always wraps s in double quotes, doubling any inside.
func quoted(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// cell quotes s only when a reader would otherwise split or trim it.
func cell(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") || strings.TrimSpace(s) != s {
		return quoted(s)
	}
	return s
}

// flat keeps a record on one line. Session text is already single-line,
// so this only matters for documents built outside a session.
func flat(s string) string {
	return quest.SingleLine(s)
}

func boolCell(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// Write serializes doc as a backup that Parse reads back unchanged.
func Write(doc quest.Document) string {
	var b strings.Builder
	b.WriteString("# --- Your Adventure Map Backup ---" + crlf)
	b.WriteString("# This file contains all your current quests and stats." + crlf)

	b.WriteString("## " + SectionTasks + crlf)
	b.WriteString(TasksHeader + crlf)
	for _, t := range doc.Tasks {
		fields := []string{
			cell(string(t.Region)),
			quoted(flat(t.Title)),
			cell(string(t.Status)),
			boolCell(t.IsBoss),
			cell(t.ID),
			quoted(flat(t.Description)),
			cell(t.CompletionDate),
			boolCell(t.ShouldDuplicate),
		}
		b.WriteString(strings.Join(fields, ",") + crlf)
	}

	b.WriteString(crlf + "## " + SectionStats + crlf)
	b.WriteString("Metric,Value" + crlf)
	for _, key := range StatKeys {
		b.WriteString(key + "," + cell(statValue(doc.Stats, key)) + crlf)
	}

	b.WriteString(crlf + "## " + SectionConfig + crlf)
	b.WriteString("Key,Value" + crlf)
	cfg := doc.Config
	for _, kv := range [][2]string{
		{"AdventureName", cfg.AdventureName},
		{"Region1_Name", cfg.Region1Name},
		{"Region2_Name", cfg.Region2Name},
		{"Region3_Name", cfg.Region3Name},
		{"Region4_Name", cfg.Region4Name},
	} {
		b.WriteString(kv[0] + "," + quoted(flat(kv[1])) + crlf)
	}
	return b.String()
}

func statValue(s quest.Stats, key string) string {
	switch key {
	case "streak":
		return strconv.Itoa(s.Streak)
	case "totalXP":
		return strconv.Itoa(s.TotalXP)
	case "lastCompletedDate":
		return s.LastCompletedDate
	case "currentWeekStartDate":
		return s.CurrentWeekStartDate
	case "monthlyRewardClaimed":
		return strconv.FormatBool(s.MonthlyRewardClaimed)
	case "lastMonthLevel":
		return strconv.Itoa(s.LastMonthLevel)
	case "lastMonthlyClaim":
		return s.LastMonthlyClaim
	case "dailyRewardClaimed":
		return s.DailyRewardClaimed
	case "dailyCompletions":
		if s.DailyCompletions.Date == "" && len(s.DailyCompletions.Regions) == 0 {
			return ""
		}
		parts := []string{s.DailyCompletions.Date}
		for _, r := range s.DailyCompletions.Regions {
			parts = append(parts, string(r))
		}
		return strings.Join(parts, ";")
	}
	return ""
}
