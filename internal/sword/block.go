package sword

import (
	"github.com/google/uuid"

	"github.com/samdwyer/linguaquest/internal/gamedata"
	"github.com/samdwyer/linguaquest/internal/geom"
)

// BlockConfig holds word block tuning.
type BlockConfig struct {
	Lifetime      float64 `yaml:"lifetime"`     // Seconds before the block starts fading
	FadeDuration  float64 `yaml:"fadeDuration"` // Seconds to fade out; a faded block is missed
	DestroyDelay  float64 `yaml:"destroyDelay"` // Seconds an exploded block lingers
	CorrectPoints int     `yaml:"correctPoints"`
	WrongPoints   int     `yaml:"wrongPoints"`
	MissedPoints  int     `yaml:"missedPoints"`
	CanRegenerate bool    `yaml:"canRegenerate"` // Missed blocks go back in the queue

	MinBounds    geom.Vec `yaml:"minBounds"`
	MaxBounds    geom.Vec `yaml:"maxBounds"`
	BounceFactor float64  `yaml:"bounceFactor"`
	Radius       float64  `yaml:"radius"`

	ExplosionForce  float64 `yaml:"explosionForce"`
	ExplosionRadius float64 `yaml:"explosionRadius"`
}

// DefaultBlockConfig returns the stock block tuning.
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		Lifetime:        8,
		FadeDuration:    2,
		DestroyDelay:    0.05,
		CorrectPoints:   100,
		WrongPoints:     -50,
		MissedPoints:    -30,
		CanRegenerate:   true,
		MinBounds:       geom.V(-10, -6),
		MaxBounds:       geom.V(10, 6),
		BounceFactor:    0.5,
		Radius:          0.6,
		ExplosionForce:  5,
		ExplosionRadius: 2,
	}
}

// Resolver receives the result of a block.
type Resolver interface {
	AddScore(delta int)
	OnBlockResolvedCorrectly()
	OnBlockResolvedIncorrectly(e gamedata.Entry)
	OnBlockMissed()
}

// Block is a floating word with a shown label the player classifies.
type Block struct {
	ID       string
	Entry    gamedata.Entry
	Position geom.Vec
	Velocity geom.Vec

	cfg      BlockConfig
	resolver Resolver

	age          float64
	fading       bool
	fadeTimer    float64
	alpha        float64
	exploded     bool
	correct      bool
	missed       bool
	destroyTimer float64
	done         bool
}

// NewBlock creates a block for an entry. resolver may be nil.
func NewBlock(cfg BlockConfig, e gamedata.Entry, pos, vel geom.Vec, resolver Resolver) *Block {
	return &Block{
		ID:       uuid.NewString(),
		Entry:    e,
		Position: pos,
		Velocity: vel,
		cfg:      cfg,
		resolver: resolver,
		alpha:    1,
	}
}

// Explode slices the block with the player's claim about its label.
// intent true means "the shown label is correct". Returns false if the
// block was already exploded or is gone.
func (b *Block) Explode(intent bool) bool {
	if b.exploded || b.done {
		return false
	}
	b.exploded = true
	b.destroyTimer = b.cfg.DestroyDelay
	b.correct = intent == b.Entry.IsLabelCorrect

	if b.resolver == nil {
		return true
	}
	if b.correct {
		b.resolver.AddScore(b.cfg.CorrectPoints)
		b.resolver.OnBlockResolvedCorrectly()
	} else {
		b.resolver.AddScore(b.cfg.WrongPoints)
		b.resolver.OnBlockResolvedIncorrectly(b.Entry)
	}
	return true
}

// Tick moves, ages and fades the block.
func (b *Block) Tick(dt float64) {
	if b.done || dt <= 0 {
		return
	}

	if b.exploded {
		b.destroyTimer -= dt
		if b.destroyTimer <= 0 {
			b.done = true
		}
		return
	}

	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	b.keepInBounds()

	b.age += dt
	if !b.fading && b.age >= b.cfg.Lifetime {
		b.fading = true
		b.fadeTimer = 0
	}
	if !b.fading {
		return
	}

	b.fadeTimer += dt
	if b.cfg.FadeDuration > 0 {
		b.alpha = geom.Clamp(1-b.fadeTimer/b.cfg.FadeDuration, 0, 1)
	} else {
		b.alpha = 0
	}
	if b.fadeTimer >= b.cfg.FadeDuration {
		b.miss()
	}
}

func (b *Block) miss() {
	b.missed = true
	b.done = true
	b.alpha = 0
	if b.resolver == nil {
		return
	}
	b.resolver.AddScore(b.cfg.MissedPoints)
	if b.cfg.CanRegenerate {
		b.resolver.OnBlockResolvedIncorrectly(b.Entry)
		return
	}
	b.resolver.OnBlockMissed()
}

func (b *Block) keepInBounds() {
	lo, hi := b.cfg.MinBounds, b.cfg.MaxBounds
	for i := 0; i < 2; i++ {
		if b.Position[i] < lo[i] {
			b.Position[i] = lo[i]
			b.Velocity[i] = -b.Velocity[i] * b.cfg.BounceFactor
		} else if b.Position[i] > hi[i] {
			b.Position[i] = hi[i]
			b.Velocity[i] = -b.Velocity[i] * b.cfg.BounceFactor
		}
	}
}

// ApplyImpulse adds to the velocity of a live block.
func (b *Block) ApplyImpulse(v geom.Vec) {
	if b.exploded || b.done {
		return
	}
	b.Velocity = b.Velocity.Add(v)
}

// Sliceable reports whether a wave can still hit the block.
func (b *Block) Sliceable() bool { return !b.exploded && !b.done }

// Exploded reports whether the block has been sliced.
func (b *Block) Exploded() bool { return b.exploded }

// Correct reports whether the slice matched the label flag.
func (b *Block) Correct() bool { return b.correct }

// Missed reports whether the block faded out unsliced.
func (b *Block) Missed() bool { return b.missed }

// Fading reports whether the block is fading out.
func (b *Block) Fading() bool { return b.fading }

// Alpha returns the visibility in [0, 1].
func (b *Block) Alpha() float64 { return b.alpha }

// Done reports whether the block should be removed.
func (b *Block) Done() bool { return b.done }

// Radius returns the hit radius.
func (b *Block) Radius() float64 { return b.cfg.Radius }
