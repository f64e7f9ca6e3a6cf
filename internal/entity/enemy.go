package entity

import (
	"math"
	"math/rand"

	"github.com/samdwyer/linguaquest/internal/geom"
)

// EnemyConfig holds winter creature tuning.
type EnemyConfig struct {
	Name  string  `yaml:"name"`
	Glyph string  `yaml:"glyph"`
	Color string  `yaml:"color"` // Hex color
	Count int     `yaml:"count"` // Creatures placed in the arena
	Speed float64 `yaml:"speed"`

	MoveDuration  float64 `yaml:"moveDuration"`  // Seconds of each inchworm lunge
	PauseDuration float64 `yaml:"pauseDuration"` // Seconds of rest between lunges
	ChaseRadius   float64 `yaml:"chaseRadius"`
	AttackRadius  float64 `yaml:"attackRadius"`
	WanderRadius  float64 `yaml:"wanderRadius"` // Distance from home while idle

	ContactSlipDuration float64 `yaml:"contactSlipDuration"` // Slip imposed on the player
	ContactCooldown     float64 `yaml:"contactCooldown"`
	ContactDamage       int     `yaml:"contactDamage"` // Round health lost when a push lands
}

// DefaultEnemyConfig returns the stock creature tuning.
func DefaultEnemyConfig() EnemyConfig {
	return EnemyConfig{
		Name:                "Snow Imp",
		Glyph:               "w",
		Color:               "#8fd3ff",
		Count:               3,
		Speed:               2,
		MoveDuration:        0.5,
		PauseDuration:       1.0,
		ChaseRadius:         5,
		AttackRadius:        0.6,
		WanderRadius:        3,
		ContactSlipDuration: 1.5,
		ContactCooldown:     1.0,
		ContactDamage:       1,
	}
}

// EnemyMode is what a creature is currently doing.
type EnemyMode int

const (
	ModeWander EnemyMode = iota
	ModeChase
)

// String returns the mode name.
func (m EnemyMode) String() string {
	switch m {
	case ModeWander:
		return "wander"
	case ModeChase:
		return "chase"
	default:
		return "unknown"
	}
}

// Enemy is a winter creature that moves in lunges and shoves the player.
type Enemy struct {
	Name     string
	Symbol   rune
	Position geom.Vec
	Home     geom.Vec

	cfg  EnemyConfig
	rng  *rand.Rand
	mode EnemyMode

	moving   bool // In a lunge rather than a pause
	phase    float64
	heading  geom.Vec
	sinceHit float64
	hasHit   bool
}

// NewEnemy creates a creature resting at home.
func NewEnemy(cfg EnemyConfig, home geom.Vec, rng *rand.Rand) *Enemy {
	symbol := 'w'
	for _, r := range cfg.Glyph {
		symbol = r
		break
	}
	return &Enemy{
		Name:     cfg.Name,
		Symbol:   symbol,
		Position: home,
		Home:     home,
		cfg:      cfg,
		rng:      rng,
	}
}

// Tick advances the lunge rhythm and returns the displacement to apply.
func (e *Enemy) Tick(dt float64, target geom.Vec) geom.Vec {
	if dt <= 0 {
		return geom.Zero
	}
	e.sinceHit += dt

	dist := geom.Dist(e.Position, target)
	if dist <= e.cfg.ChaseRadius {
		e.mode = ModeChase
	} else {
		e.mode = ModeWander
	}

	e.phase -= dt
	if e.phase <= 0 {
		e.moving = !e.moving
		if e.moving {
			e.phase = e.cfg.MoveDuration
			e.heading = e.pickHeading(target)
		} else {
			e.phase = e.cfg.PauseDuration
		}
	}

	if !e.moving {
		return geom.Zero
	}

	if e.mode == ModeChase {
		// Re-aim every tick while chasing; hold still once in reach.
		if dist <= e.cfg.AttackRadius {
			return geom.Zero
		}
		e.heading = geom.Normalize(target.Sub(e.Position))
	}
	return e.heading.Mul(e.cfg.Speed * dt)
}

func (e *Enemy) pickHeading(target geom.Vec) geom.Vec {
	if e.mode == ModeChase {
		return geom.Normalize(target.Sub(e.Position))
	}
	if geom.Dist(e.Position, e.Home) > e.cfg.WanderRadius {
		return geom.Normalize(e.Home.Sub(e.Position))
	}
	if e.rng == nil {
		return geom.Zero
	}
	angle := e.rng.Float64() * 2 * math.Pi
	return geom.V(math.Cos(angle), math.Sin(angle))
}

// Move applies a resolved displacement.
func (e *Enemy) Move(delta geom.Vec) {
	e.Position = e.Position.Add(delta)
}

// Blocked turns the creature around after bumping into something.
func (e *Enemy) Blocked() {
	e.heading = e.heading.Mul(-1)
}

// TryContact reports whether the creature touches target and may shove
// it. The returned direction points from the creature to the target.
func (e *Enemy) TryContact(target geom.Vec) (geom.Vec, bool) {
	offset := target.Sub(e.Position)
	if offset.Len() > e.cfg.AttackRadius {
		return geom.Zero, false
	}
	if e.hasHit && e.sinceHit < e.cfg.ContactCooldown {
		return geom.Zero, false
	}
	e.hasHit = true
	e.sinceHit = 0

	dir := geom.Normalize(offset)
	if geom.IsZero(dir) {
		dir = e.heading
	}
	return dir, true
}

// Mode returns whether the creature is wandering or chasing.
func (e *Enemy) Mode() EnemyMode { return e.mode }

// Lunging reports whether the creature is in the moving half of its rhythm.
func (e *Enemy) Lunging() bool { return e.moving }

// SlipDuration returns how long a shove makes the player slip.
func (e *Enemy) SlipDuration() float64 { return e.cfg.ContactSlipDuration }

// Damage returns the round health a landed shove costs.
func (e *Enemy) Damage() int { return e.cfg.ContactDamage }
