package sword

import "github.com/samdwyer/linguaquest/internal/geom"

// WaveConfig holds sword wave tuning.
type WaveConfig struct {
	EnergyCost int     `yaml:"energyCost"`
	Speed      float64 `yaml:"speed"`
	Range      float64 `yaml:"range"` // Distance travelled before the wave dissipates
	Radius     float64 `yaml:"radius"`
}

// DefaultWaveConfig returns the stock wave tuning.
func DefaultWaveConfig() WaveConfig {
	return WaveConfig{
		EnergyCost: 10,
		Speed:      12,
		Range:      16,
		Radius:     0.8,
	}
}

// EnergyPool pays for waves.
type EnergyPool interface {
	HasEnergy(cost int) bool
	UseEnergy(amount int)
}

// Wave is a projectile that slices every block it touches once, claiming
// the shown label is correct (Intent true) or wrong.
type Wave struct {
	Position  geom.Vec
	Direction geom.Vec
	Intent    bool

	traveled float64
	hit      map[*Block]bool
	done     bool
}

// Done reports whether the wave has dissipated.
func (w *Wave) Done() bool { return w.done }

// Hits returns the number of blocks this wave sliced.
func (w *Wave) Hits() int { return len(w.hit) }

// Waves tracks the player's active waves.
type Waves struct {
	cfg     WaveConfig
	pool    EnergyPool
	spawner *Spawner
	active  []*Wave
}

// NewWaves creates a wave launcher. pool may be nil for free waves.
func NewWaves(cfg WaveConfig, pool EnergyPool, spawner *Spawner) *Waves {
	return &Waves{cfg: cfg, pool: pool, spawner: spawner}
}

// Launch fires a wave from origin along dir. Returns false when there is
// not enough energy or no direction.
func (ws *Waves) Launch(origin, dir geom.Vec, intent bool) bool {
	d := geom.Normalize(dir)
	if geom.IsZero(d) {
		return false
	}
	if ws.pool != nil {
		if !ws.pool.HasEnergy(ws.cfg.EnergyCost) {
			return false
		}
		ws.pool.UseEnergy(ws.cfg.EnergyCost)
	}

	ws.active = append(ws.active, &Wave{
		Position:  origin,
		Direction: d,
		Intent:    intent,
		hit:       make(map[*Block]bool),
	})
	return true
}

// Tick moves every wave and slices the blocks it overlaps.
func (ws *Waves) Tick(dt float64) {
	if dt <= 0 {
		return
	}

	kept := ws.active[:0]
	for _, w := range ws.active {
		step := ws.cfg.Speed * dt
		w.Position = w.Position.Add(w.Direction.Mul(step))
		w.traveled += step

		if ws.spawner != nil {
			for _, b := range ws.spawner.Blocks() {
				if w.hit[b] || !b.Sliceable() {
					continue
				}
				if geom.Dist(w.Position, b.Position) <= ws.cfg.Radius+b.Radius() {
					w.hit[b] = true
					ws.spawner.Slice(b, w.Intent)
				}
			}
		}

		if w.traveled >= ws.cfg.Range {
			w.done = true
			continue
		}
		kept = append(kept, w)
	}
	for i := len(kept); i < len(ws.active); i++ {
		ws.active[i] = nil
	}
	ws.active = kept
}

// Active returns the waves in flight.
func (ws *Waves) Active() []*Wave {
	return ws.active
}

// Clear removes every wave.
func (ws *Waves) Clear() {
	ws.active = nil
}
