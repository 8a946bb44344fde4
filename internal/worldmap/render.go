package worldmap

import (
	"strings"

	"adventuremap/internal/quest"
)

// Cell is one character of the rendered map.
type Cell struct {
	Rune   rune
	Region quest.Region
	// TaskID is empty for plain terrain.
	TaskID string
	Status quest.Status
	IsBoss bool
}

type Grid struct {
	Width  int
	Height int
	Rows   [][]Cell
}

var terrain = map[quest.Region]rune{
	quest.RegionForest:    '"',
	quest.RegionMountains: '^',
	quest.RegionOcean:     '~',
	quest.RegionKingdom:   '.',
}

// Glyphs per region, indexed by placement variant.
var glyphs = map[quest.Region][]rune{
	quest.RegionForest:    {'t', 'y', 'f', 'p'},
	quest.RegionMountains: {'m', 'n', 'a', 'v'},
	quest.RegionOcean:     {'c', 's', 'o', 'w'},
	quest.RegionKingdom:   {'h', 'k', 'b', 'r'},
}

var bossGlyphs = map[quest.Region]rune{
	quest.RegionForest:    'T',
	quest.RegionMountains: 'M',
	quest.RegionOcean:     'O',
	quest.RegionKingdom:   'K',
}

// Render draws every task onto a w x h grid covering all four islands.
// Mountains sit top-left, Kingdom top-right, Forest bottom-left and Ocean
// bottom-right. When two quests land on one cell a boss wins, otherwise
// the later quest does.
func Render(tasks []quest.Task, level, w, h int) Grid {
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	g := Grid{Width: w, Height: h, Rows: make([][]Cell, h)}
	for row := range g.Rows {
		g.Rows[row] = make([]Cell, w)
		for col := range g.Rows[row] {
			r := quadrant(col, row, w, h)
			g.Rows[row][col] = Cell{Rune: terrain[r], Region: r}
		}
	}

	span := IslandSize(level)
	for _, t := range tasks {
		p, ok := Place(t, level)
		if !ok {
			continue
		}
		col := scale(p.X, span, w)
		row := scale(p.Z, span, h)
		cur := g.Rows[row][col]
		if cur.TaskID != "" && cur.IsBoss && !t.IsBoss {
			continue
		}
		g.Rows[row][col] = Cell{
			Rune:   glyph(t, p.Variant),
			Region: t.Region,
			TaskID: t.ID,
			Status: t.Status,
			IsBoss: t.IsBoss,
		}
	}
	return g
}

func quadrant(col, row, w, h int) quest.Region {
	left, top := col < w/2, row < h/2
	switch {
	case left && top:
		return quest.RegionMountains
	case !left && top:
		return quest.RegionKingdom
	case left:
		return quest.RegionForest
	default:
		return quest.RegionOcean
	}
}

// scale maps a world coordinate in [-span, span] onto [0, n).
func scale(v, span float64, n int) int {
	i := int((v + span) / (2 * span) * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func glyph(t quest.Task, variant int) rune {
	if t.IsBoss {
		return bossGlyphs[t.Region]
	}
	return glyphs[t.Region][variant]
}

func (g Grid) String() string {
	var b strings.Builder
	for i, row := range g.Rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteRune(c.Rune)
		}
	}
	return b.String()
}

// Find returns the cell position of a task, if it was drawn.
func (g Grid) Find(taskID string) (row, col int, ok bool) {
	for r, cells := range g.Rows {
		for c, cell := range cells {
			if cell.TaskID == taskID {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
