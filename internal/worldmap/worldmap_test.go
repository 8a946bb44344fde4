package worldmap

import (
	"math"
	"strings"
	"testing"

	"adventuremap/internal/quest"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSeed(t *testing.T) {
	if got := Seed(""); got != BaseSeed {
		t.Fatalf("Seed(\"\")=%d, want %d", got, BaseSeed)
	}
	if got := Seed("abc"); got != 352+97+98+99 {
		t.Fatalf("Seed(abc)=%d", got)
	}
}

func TestPlace(t *testing.T) {
	task := quest.Task{ID: "abc", Region: quest.RegionMountains, IsBoss: true}
	p, ok := Place(task, 1)
	if !ok {
		t.Fatalf("Place: not placed")
	}
	// seed 646, island 27, area 10.8
	if !near(p.LocalX, (0.46-0.5)*21.6) || !near(p.LocalZ, (6.0/80-0.5)*21.6) {
		t.Fatalf("local=(%v,%v)", p.LocalX, p.LocalZ)
	}
	if !near(p.X, -13.5+p.LocalX) || !near(p.Z, -13.5+p.LocalZ) {
		t.Fatalf("world=(%v,%v)", p.X, p.Z)
	}
	if p.Scale != BossScale || p.Variant != 646%4 {
		t.Fatalf("scale=%v variant=%d", p.Scale, p.Variant)
	}

	again, _ := Place(task, 1)
	if again != p {
		t.Fatalf("placement not stable: %+v vs %+v", again, p)
	}
	grown, _ := Place(task, 5)
	if math.Abs(grown.LocalX) <= math.Abs(p.LocalX) {
		t.Fatalf("island did not grow with level")
	}

	if _, ok := Place(quest.Task{ID: "x", Region: "Desert"}, 1); ok {
		t.Fatalf("unknown region should not be placed")
	}
}

func TestPlacementStaysInQuadrant(t *testing.T) {
	for _, r := range quest.Regions {
		cx, cz := ZoneCenter(r, 3)
		for _, id := range []string{"a", "task-1", "zzzzzz", "q-42"} {
			p, _ := Place(quest.Task{ID: id, Region: r}, 3)
			if math.Signbit(p.X) != math.Signbit(cx) || math.Signbit(p.Z) != math.Signbit(cz) {
				t.Fatalf("%s/%s left its island: (%v,%v)", r, id, p.X, p.Z)
			}
		}
	}
}

func TestRender(t *testing.T) {
	tasks := []quest.Task{
		{ID: "f1", Region: quest.RegionForest, Status: quest.StatusInProgress},
		{ID: "k1", Region: quest.RegionKingdom, Status: quest.StatusDone, IsBoss: true},
		{ID: "lost", Region: "Desert"},
	}
	g := Render(tasks, 2, 40, 16)
	if g.Width != 40 || g.Height != 16 || len(g.Rows) != 16 {
		t.Fatalf("grid %dx%d", g.Width, g.Height)
	}
	lines := strings.Split(g.String(), "\n")
	if len(lines) != 16 || len([]rune(lines[0])) != 40 {
		t.Fatalf("string shape %d lines", len(lines))
	}

	row, col, ok := g.Find("f1")
	if !ok || col >= 20 || row < 8 {
		t.Fatalf("forest quest at (%d,%d), want bottom-left", row, col)
	}
	row, col, ok = g.Find("k1")
	if !ok || col < 20 || row >= 8 {
		t.Fatalf("kingdom boss at (%d,%d), want top-right", row, col)
	}
	if g.Rows[row][col].Rune != 'K' {
		t.Fatalf("boss glyph=%q", g.Rows[row][col].Rune)
	}
	if _, _, ok := g.Find("lost"); ok {
		t.Fatalf("unknown region drawn")
	}

	if Render(tasks, 2, 40, 16).String() != g.String() {
		t.Fatalf("render is not deterministic")
	}
}

func TestRenderTerrain(t *testing.T) {
	g := Render(nil, 1, 4, 2)
	if got := g.String(); got != `^^..`+"\n"+`""~~` {
		t.Fatalf("terrain=%q", got)
	}
}
