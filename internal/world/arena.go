package world

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/linguaquest/internal/geom"
	"github.com/samdwyer/linguaquest/internal/telemetry"
)

// Config holds arena size, hazard layout and hazard effects.
type Config struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	IcePatches   int `yaml:"icePatches"`
	DriftPatches int `yaml:"driftPatches"`
	Pillars      int `yaml:"pillars"`
	PatchMinSize int `yaml:"patchMinSize"`
	PatchMaxSize int `yaml:"patchMaxSize"`

	IceSlipFactor     float64 `yaml:"iceSlipFactor"`     // Slip seconds per unit of patch edge
	IceReleasesOnExit bool    `yaml:"iceReleasesOnExit"` // Leaving ice ends the slip
	DriftTripDuration float64 `yaml:"driftTripDuration"`
	WallCancelsSlip   bool    `yaml:"wallCancelsSlip"` // Walls stop a slide instead of bouncing it
}

// DefaultConfig returns the stock arena.
func DefaultConfig() Config {
	return Config{
		Width:             26,
		Height:            16,
		IcePatches:        4,
		DriftPatches:      3,
		Pillars:           4,
		PatchMinSize:      2,
		PatchMaxSize:      4,
		IceSlipFactor:     1.5,
		IceReleasesOnExit: true,
		DriftTripDuration: 0.8,
		WallCancelsSlip:   false,
	}
}

// clearRadius keeps hazards away from the arena center, where the player starts.
const clearRadius = 3

// Arena is the tile map. Row 0 is the bottom row; world space is y-up
// with the arena centered on the origin, one tile per world unit.
type Arena struct {
	Width   int
	Height  int
	Tiles   [][]Tile // Indexed [y][x]
	Patches []Patch
	Origin  geom.Vec // World position of the bottom-left corner of tile (0, 0)

	cfg Config
	rng *rand.Rand
}

// NewArena creates a walled arena with an open snow floor.
func NewArena(cfg Config, rng *rand.Rand) *Arena {
	w, h := max(cfg.Width, 3), max(cfg.Height, 3)
	tiles := make([][]Tile, h)
	for y := range tiles {
		tiles[y] = make([]Tile, w)
		for x := range tiles[y] {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				tiles[y][x] = TileWall
			} else {
				tiles[y][x] = TileFloor
			}
		}
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Arena{
		Width:  w,
		Height: h,
		Tiles:  tiles,
		Origin: geom.V(-float64(w)/2, -float64(h)/2),
		cfg:    cfg,
		rng:    rng,
	}
}

// Generate scatters pillars, ice patches and drifts.
func (a *Arena) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "arena.generate")
	defer span.End()

	startTime := time.Now()

	for i := 0; i < a.cfg.IcePatches; i++ {
		a.placePatch(TileIce)
	}
	for i := 0; i < a.cfg.DriftPatches; i++ {
		a.placePatch(TileDrift)
	}
	pillars := 0
	for i := 0; i < a.cfg.Pillars; i++ {
		if a.placePillar() {
			pillars++
		}
	}

	span.SetAttributes(
		attribute.Int("arena.width", a.Width),
		attribute.Int("arena.height", a.Height),
		attribute.Int("arena.patch_count", len(a.Patches)),
		attribute.Int("arena.pillar_count", pillars),
		attribute.Int64("arena.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// placePatch tries random spots until the patch fits clear of the others.
func (a *Arena) placePatch(kind Tile) bool {
	lo := max(a.cfg.PatchMinSize, 1)
	hi := max(a.cfg.PatchMaxSize, lo)

	for attempt := 0; attempt < 50; attempt++ {
		w := lo + a.rng.Intn(hi-lo+1)
		h := lo + a.rng.Intn(hi-lo+1)
		if w > a.Width-2 || h > a.Height-2 {
			continue
		}
		p := Patch{
			Kind:   kind,
			X:      1 + a.rng.Intn(a.Width-1-w),
			Y:      1 + a.rng.Intn(a.Height-1-h),
			Width:  w,
			Height: h,
		}
		if !a.clearOf(p) {
			continue
		}
		a.Patches = append(a.Patches, p)
		for y := p.Y; y < p.Y+p.Height; y++ {
			for x := p.X; x < p.X+p.Width; x++ {
				a.Tiles[y][x] = kind
			}
		}
		return true
	}
	return false
}

func (a *Arena) clearOf(p Patch) bool {
	for _, other := range a.Patches {
		if p.Intersects(other) {
			return false
		}
	}
	cx, cy := a.Width/2, a.Height/2
	spawn := Patch{X: cx - clearRadius, Y: cy - clearRadius, Width: clearRadius * 2, Height: clearRadius * 2}
	return !p.Intersects(spawn)
}

func (a *Arena) placePillar() bool {
	for attempt := 0; attempt < 50; attempt++ {
		x := 2 + a.rng.Intn(max(a.Width-4, 1))
		y := 2 + a.rng.Intn(max(a.Height-4, 1))
		if a.TileAt(x, y) != TileFloor {
			continue
		}
		if abs(x-a.Width/2) <= clearRadius && abs(y-a.Height/2) <= clearRadius {
			continue
		}
		a.Tiles[y][x] = TileWall
		return true
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// TileAt returns the tile at the given cell. Outside the map is wall.
func (a *Arena) TileAt(x, y int) Tile {
	if x < 0 || x >= a.Width || y < 0 || y >= a.Height {
		return TileWall
	}
	return a.Tiles[y][x]
}

// IsPassable returns true if the given cell can be walked on.
func (a *Arena) IsPassable(x, y int) bool {
	return a.TileAt(x, y).IsPassable()
}

// CellAt returns the cell containing a world position.
func (a *Arena) CellAt(pos geom.Vec) (int, int) {
	local := pos.Sub(a.Origin)
	return int(math.Floor(local.X())), int(math.Floor(local.Y()))
}

// CellCenter returns the world position of a cell's center.
func (a *Arena) CellCenter(x, y int) geom.Vec {
	return a.Origin.Add(geom.V(float64(x)+0.5, float64(y)+0.5))
}

// TileAtPos returns the tile under a world position.
func (a *Arena) TileAtPos(pos geom.Vec) Tile {
	return a.TileAt(a.CellAt(pos))
}

// PassableAt reports whether a world position is walkable.
func (a *Arena) PassableAt(pos geom.Vec) bool {
	return a.TileAtPos(pos).IsPassable()
}

// PatchAt returns the patch under a world position.
func (a *Arena) PatchAt(pos geom.Vec) (Patch, bool) {
	x, y := a.CellAt(pos)
	for _, p := range a.Patches {
		if p.Contains(x, y) {
			return p, true
		}
	}
	return Patch{}, false
}

// IceSlipDuration returns how long entering a patch makes the player slip.
func (a *Arena) IceSlipDuration(p Patch) float64 {
	return p.Edge() * a.cfg.IceSlipFactor
}

// Bounds returns the world rectangle inside the border walls.
func (a *Arena) Bounds() geom.Rect {
	return geom.Rect{
		Min: a.Origin.Add(geom.V(1, 1)),
		Max: a.Origin.Add(geom.V(float64(a.Width-1), float64(a.Height-1))),
	}
}

// RandomFloor returns the center of a random plain floor cell at least
// minDist from avoid. Falls back to the arena center.
func (a *Arena) RandomFloor(avoid geom.Vec, minDist float64) geom.Vec {
	for attempt := 0; attempt < 100; attempt++ {
		x := 1 + a.rng.Intn(max(a.Width-2, 1))
		y := 1 + a.rng.Intn(max(a.Height-2, 1))
		if a.TileAt(x, y) != TileFloor {
			continue
		}
		pos := a.CellCenter(x, y)
		if geom.Dist(pos, avoid) >= minDist {
			return pos
		}
	}
	return a.CellCenter(a.Width/2, a.Height/2)
}

// Config returns the arena tuning.
func (a *Arena) Config() Config {
	return a.cfg
}
