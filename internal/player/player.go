package player

import (
	"log"
	"math"

	"github.com/samdwyer/linguaquest/internal/events"
	"github.com/samdwyer/linguaquest/internal/geom"
	"github.com/samdwyer/linguaquest/internal/input"
)

// Config holds the player's movement and slip tuning.
type Config struct {
	Speed                  float64 `yaml:"speed"`                  // Walk speed in world units per second
	AttackDuration         float64 `yaml:"attackDuration"`         // Seconds the swing locks movement
	PushCooldown           float64 `yaml:"pushCooldown"`           // Seconds before the player can be pushed again
	TripCooldown           float64 `yaml:"tripCooldown"`           // Seconds before the player can trip again
	MaxSlipDuration        float64 `yaml:"maxSlipDuration"`        // Upper bound of the slip timer
	SlipInputInfluence     float64 `yaml:"slipInputInfluence"`     // How much input alignment adds or removes slip time
	SlipSteerRate          float64 `yaml:"slipSteerRate"`          // Lerp rate of the slip direction toward input, per second
	MaxSlipSpeedMultiplier float64 `yaml:"maxSlipSpeedMultiplier"` // Cap of the slip speed multiplier
	SlipBoostStep          float64 `yaml:"slipBoostStep"`          // Multiplier gained per push while already slipping
	WallBounceBonus        float64 `yaml:"wallBounceBonus"`        // Slip seconds added when bouncing off a wall
	FallSpeedMultiplier    float64 `yaml:"fallSpeedMultiplier"`    // Speed factor while falling
	StepSoundCooldown      float64 `yaml:"stepSoundCooldown"`      // Minimum seconds between footsteps
	MagicLevel             int     `yaml:"magicLevel"`             // 1 unlocks spell 1, 2 unlocks spell 2
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Speed:                  5,
		AttackDuration:         0.26,
		PushCooldown:           1.0,
		TripCooldown:           2.0,
		MaxSlipDuration:        3.0,
		SlipInputInfluence:     0.8,
		SlipSteerRate:          2.0,
		MaxSlipSpeedMultiplier: 2.0,
		SlipBoostStep:          0.25,
		WallBounceBonus:        0.5,
		FallSpeedMultiplier:    0.4,
		StepSoundCooldown:      0.5,
		MagicLevel:             1,
	}
}

// ActionEvent is published when the player swings or casts.
type ActionEvent struct {
	Kind     ActionKind
	Position geom.Vec
	Facing   geom.Vec
}

// Player is the controllable character.
type Player struct {
	cfg Config

	status   Status
	effects  Effects
	position geom.Vec
	facing   geom.Vec
	moving   bool

	// Slip
	slipDir   geom.Vec
	slipTimer float64
	slipSpeed float64

	attackTimer float64
	fallTimer   float64

	// Cooldowns, in simulation seconds
	now      float64
	lastPush float64
	lastTrip float64
	pushed   bool
	tripped  bool

	stepTimer  float64
	magicLevel int

	StatusChanged events.Bus[StatusChange]
	Actions       events.Bus[ActionEvent]
	Footsteps     events.Bus[geom.Vec] // Position of each stamped footprint
}

// New creates a walking player at pos facing down.
func New(cfg Config, pos geom.Vec) *Player {
	return &Player{
		cfg:        cfg,
		status:     StatusWalking,
		effects:    effectsFor(StatusWalking),
		position:   pos,
		facing:     geom.V(0, -1),
		slipSpeed:  1,
		magicLevel: cfg.MagicLevel,
	}
}

// Tick advances the player by dt and returns the displacement to apply.
// The caller resolves collisions and then calls Move.
func (p *Player) Tick(dt float64, src input.Source) geom.Vec {
	if dt <= 0 {
		return geom.Zero
	}
	p.now += dt
	p.stepTimer += dt
	if src == nil {
		src = input.None
	}

	switch p.status {
	case StatusInteracting:
		p.moving = false
		return geom.Zero
	case StatusSlipping:
		return p.tickSlip(dt, src)
	case StatusAttacking:
		p.attackTimer -= dt
		if p.attackTimer <= 0 {
			p.ChangeState(StatusWalking)
		}
		p.moving = false
		return geom.Zero
	case StatusFalling:
		return p.tickFall(dt, src)
	default:
		return p.tickWalk(dt, src)
	}
}

func (p *Player) tickWalk(dt float64, src input.Source) geom.Vec {
	switch {
	case src.IsActionPressed(input.ActionAttack):
		p.ChangeState(StatusAttacking)
		p.attackTimer = p.cfg.AttackDuration
		p.moving = false
		p.Actions.Publish(ActionEvent{Kind: ActionSwing, Position: p.position, Facing: p.facing})
		return geom.Zero
	case src.IsActionPressed(input.ActionSpell1) && p.magicLevel >= 1:
		p.Actions.Publish(ActionEvent{Kind: ActionFireball, Position: p.position, Facing: p.facing})
		return geom.Zero
	case src.IsActionPressed(input.ActionSpell2) && p.magicLevel >= 2:
		p.Actions.Publish(ActionEvent{Kind: ActionLightning, Position: p.position, Facing: p.facing})
		return geom.Zero
	}

	dir := input.Direction(src)
	if geom.IsZero(dir) {
		p.moving = false
		return geom.Zero
	}

	p.moving = true
	p.facing = dir
	p.step()
	return dir.Mul(p.cfg.Speed * dt)
}

func (p *Player) tickSlip(dt float64, src input.Source) geom.Vec {
	p.slipTimer -= dt

	in := input.Direction(src)
	if !geom.IsZero(p.slipDir) && !geom.IsZero(in) {
		// +1 same direction (coast longer), -1 opposite (brake)
		alignment := in.Dot(geom.Normalize(p.slipDir))
		p.slipTimer += alignment * p.cfg.SlipInputInfluence * dt

		// Braking does not turn the slide around.
		if alignment >= 0 {
			p.slipDir = geom.Normalize(geom.Lerp(p.slipDir, in, p.cfg.SlipSteerRate*dt))
		}
	}
	p.slipTimer = math.Min(p.slipTimer, p.cfg.MaxSlipDuration)

	if p.slipTimer <= 0 {
		p.ChangeState(StatusWalking)
		p.moving = false
		return geom.Zero
	}

	if geom.IsZero(p.slipDir) {
		p.moving = false
		return geom.Zero
	}

	p.moving = true
	p.facing = p.slipDir
	p.step()
	return p.slipDir.Mul(p.cfg.Speed * p.slipSpeed * dt)
}

func (p *Player) tickFall(dt float64, src input.Source) geom.Vec {
	p.fallTimer -= dt
	if p.fallTimer <= 0 {
		p.ChangeState(StatusWalking)
		p.moving = false
		return geom.Zero
	}

	dir := input.Direction(src)
	if geom.IsZero(dir) {
		p.moving = false
		return geom.Zero
	}
	p.moving = true
	p.facing = dir
	p.step()
	return dir.Mul(p.cfg.Speed * p.cfg.FallSpeedMultiplier * dt)
}

func (p *Player) step() {
	if !p.effects.FootprintsEnabled || p.stepTimer < p.cfg.StepSoundCooldown {
		return
	}
	p.stepTimer = 0
	p.Footsteps.Publish(p.position)
}

// ChangeState switches status, resetting the timers of the state being
// left and applying the effect flags of the new one.
func (p *Player) ChangeState(s Status) {
	old := p.status
	if old != s {
		switch old {
		case StatusSlipping:
			p.slipTimer = 0
			p.slipSpeed = 1
			p.slipDir = geom.Zero
		case StatusAttacking:
			p.attackTimer = 0
		case StatusFalling:
			p.fallTimer = 0
		}
	}

	p.effects = effectsFor(s)
	p.status = s

	if old != s {
		p.StatusChanged.Publish(StatusChange{From: old, To: s})
	}
}

// Push starts (or boosts) a slip along dir for duration seconds.
// Returns false when the push was dropped: cooldown active (unless
// ignoreCooldown), or the player is interacting or falling.
func (p *Player) Push(dir geom.Vec, duration float64, ignoreCooldown bool) bool {
	if p.status == StatusInteracting || p.status == StatusFalling {
		return false
	}
	if !ignoreCooldown && p.pushed && p.now < p.lastPush+p.cfg.PushCooldown {
		return false
	}

	p.lastPush = p.now
	p.pushed = true

	if p.status == StatusSlipping {
		p.slipSpeed = math.Min(p.slipSpeed+p.cfg.SlipBoostStep, p.cfg.MaxSlipSpeedMultiplier)
	} else {
		p.ChangeState(StatusSlipping)
		p.slipSpeed = 1
	}
	p.slipSpeed = geom.Clamp(p.slipSpeed, 1, math.Max(1, p.cfg.MaxSlipSpeedMultiplier))
	p.slipTimer = geom.Clamp(duration, 0, p.cfg.MaxSlipDuration)

	d := geom.Normalize(dir)
	if geom.IsZero(d) {
		d = p.facing
	}
	p.slipDir = d

	log.Printf("[Player] Pushed. Slipping for %.2fs (requested %.2fs)", p.slipTimer, duration)
	return true
}

// Trip knocks the player into Falling for duration seconds.
// Returns false while the trip cooldown is active.
func (p *Player) Trip(duration float64) bool {
	if duration <= 0 {
		return false
	}
	if p.tripped && p.now < p.lastTrip+p.cfg.TripCooldown {
		return false
	}

	p.lastTrip = p.now
	p.tripped = true
	p.ChangeState(StatusFalling)
	p.fallTimer = duration
	return true
}

// OnWallCollision reacts to hitting a wall with the given surface normal.
// While slipping, cancel stops the slide; otherwise it bounces and the
// slide is extended.
func (p *Player) OnWallCollision(normal geom.Vec, cancel bool) {
	if p.status != StatusSlipping {
		return
	}

	if cancel {
		log.Printf("[Player] Hit wall while slipping - recovering.")
		p.slipTimer = 0
		p.slipDir = geom.Zero
		p.ChangeState(StatusWalking)
		return
	}

	p.slipDir = geom.Normalize(geom.Reflect(p.slipDir, normal))
	p.slipTimer = math.Min(p.slipTimer+p.cfg.WallBounceBonus, p.cfg.MaxSlipDuration)
}

// EndSlip returns a slipping player to Walking.
func (p *Player) EndSlip() {
	if p.status == StatusSlipping {
		p.ChangeState(StatusWalking)
	}
}

// BeginInteract enters Interacting. Returns false if already interacting.
func (p *Player) BeginInteract() bool {
	if p.status == StatusInteracting {
		return false
	}
	p.moving = false
	p.ChangeState(StatusInteracting)
	return true
}

// EndInteract leaves Interacting. Returns false if not interacting.
func (p *Player) EndInteract() bool {
	if p.status != StatusInteracting {
		return false
	}
	p.ChangeState(StatusWalking)
	return true
}

// ToggleInteract raises or lowers an item.
func (p *Player) ToggleInteract() {
	if !p.BeginInteract() {
		p.EndInteract()
	}
}

// UpgradeMagicLevel raises the magic level.
func (p *Player) UpgradeMagicLevel(amount int) {
	p.magicLevel += amount
}

// Move applies a resolved displacement.
func (p *Player) Move(delta geom.Vec) {
	p.position = p.position.Add(delta)
}

// SetPosition teleports the player.
func (p *Player) SetPosition(pos geom.Vec) {
	p.position = pos
}

// Position returns the player's position.
func (p *Player) Position() geom.Vec { return p.position }

// Facing returns the last non-zero movement direction.
func (p *Player) Facing() geom.Vec { return p.facing }

// Status returns the current status.
func (p *Player) Status() Status { return p.status }

// Effects returns the current presentation flags.
func (p *Player) Effects() Effects { return p.effects }

// IsMoving reports whether the player moved on the last tick.
func (p *Player) IsMoving() bool { return p.moving }

// SlipTimer returns the remaining slip time.
func (p *Player) SlipTimer() float64 { return p.slipTimer }

// SlipSpeed returns the slip speed multiplier.
func (p *Player) SlipSpeed() float64 { return p.slipSpeed }

// SlipDirection returns the current slide direction.
func (p *Player) SlipDirection() geom.Vec { return p.slipDir }

// MagicLevel returns the magic level.
func (p *Player) MagicLevel() int { return p.magicLevel }

// Speed returns the base walk speed.
func (p *Player) Speed() float64 { return p.cfg.Speed }

// Now returns the player's simulation clock.
func (p *Player) Now() float64 { return p.now }
