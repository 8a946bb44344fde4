package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"adventuremap/internal/quest"
)

// Adventure Map theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconMap     = "🗺️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconSword   = "⚔️"
	IconLoop    = "🔁"
	IconScroll  = "📜"
	IconFire    = "🔥"
	IconPotion  = "🧪"
	IconCrown   = "👑"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold

	cForest    = lipgloss.Color("28")
	cMountains = lipgloss.Color("250")
	cOcean     = lipgloss.Color("33")
	cKingdom   = lipgloss.Color("178")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeBoss    = lipgloss.NewStyle().Bold(true).Foreground(cBad).Render("BOSS")
)

var regionColors = map[quest.Region]lipgloss.Color{
	quest.RegionForest:    cForest,
	quest.RegionMountains: cMountains,
	quest.RegionOcean:     cOcean,
	quest.RegionKingdom:   cKingdom,
}

var regionIcons = map[quest.Region]string{
	quest.RegionForest:    "🌲",
	quest.RegionMountains: "⛰️",
	quest.RegionOcean:     "🌊",
	quest.RegionKingdom:   "🏰",
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(s quest.Status) string {
	switch s {
	case quest.StatusDone:
		return Good.Render("done")
	case quest.StatusInProgress:
		return H2.Render("active")
	case quest.StatusTodo:
		return Warn.Render("todo")
	default:
		return Muted.Render(string(s))
	}
}

func RegionIcon(r quest.Region) string {
	if icon, ok := regionIcons[r]; ok {
		return icon
	}
	return IconMap
}

// RegionStyle colors text in the region's map color.
func RegionStyle(r quest.Region) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(regionColors[r])
}

func RegionText(r quest.Region, name string) string {
	return RegionStyle(r).Bold(true).Render(name)
}

func KindIcon(isBoss bool) string {
	if isBoss {
		return IconSword
	}
	return IconScroll
}

var printer = message.NewPrinter(localeTag())

// localeTag reads LC_ALL or LANG ("de_DE.UTF-8"), defaulting to English.
func localeTag() language.Tag {
	for _, key := range []string{"LC_ALL", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		v = strings.SplitN(v, ".", 2)[0]
		if tag, err := language.Parse(strings.ReplaceAll(v, "_", "-")); err == nil {
			return tag
		}
	}
	return language.English
}

// Number groups digits for the user's locale.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// XP renders an XP amount, e.g. "1,350 XP".
func XP(n int) string {
	return Gold.Render(Number(n) + " XP")
}
