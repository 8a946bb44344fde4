// Package worldmap lays quests out on the four-island adventure map.
// Positions depend only on the quest id and the player level, so the map
// looks the same every time it is drawn.
package worldmap

import (
	"adventuremap/internal/quest"
)

const (
	BaseSeed       = 352
	BaseIslandSize = 25
	// GrowthPerLevel is how much each island's side grows per level.
	GrowthPerLevel = 2
	// placementShare keeps objects off the island's edge.
	placementShare = 0.8
	BossScale      = 2.0
)

// Seed is BaseSeed plus the sum of the id's code points.
func Seed(id string) int {
	seed := BaseSeed
	for _, r := range id {
		seed += int(r)
	}
	return seed
}

// IslandSize is the side length of one region's island at level.
func IslandSize(level int) float64 {
	if level < 1 {
		level = 1
	}
	return float64(BaseIslandSize + GrowthPerLevel*level)
}

// ZoneCenter returns the world position of a region's island center.
func ZoneCenter(r quest.Region, level int) (x, z float64) {
	off := IslandSize(level) / 2
	switch r {
	case quest.RegionForest:
		return -off, off
	case quest.RegionMountains:
		return -off, -off
	case quest.RegionOcean:
		return off, off
	default:
		return off, -off
	}
}

type Placement struct {
	TaskID string
	Region quest.Region
	// LocalX and LocalZ are offsets from the island center.
	LocalX float64
	LocalZ float64
	// X and Z are world coordinates.
	X       float64
	Z       float64
	Scale   float64
	Variant int
}

// Place positions t on its region's island. ok is false for a task whose
// region is not on the map.
func Place(t quest.Task, level int) (p Placement, ok bool) {
	if !t.Region.IsValid() {
		return Placement{}, false
	}
	seed := Seed(t.ID)
	area := IslandSize(level) / 2 * placementShare

	p = Placement{
		TaskID:  t.ID,
		Region:  t.Region,
		LocalX:  (float64(seed%100)/100 - 0.5) * 2 * area,
		LocalZ:  (float64(seed%80)/80 - 0.5) * 2 * area,
		Scale:   1,
		Variant: seed % 4,
	}
	if t.IsBoss {
		p.Scale = BossScale
	}
	cx, cz := ZoneCenter(t.Region, level)
	p.X, p.Z = cx+p.LocalX, cz+p.LocalZ
	return p, true
}
