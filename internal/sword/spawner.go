package sword

import (
	"log"
	"math/rand"

	"github.com/samdwyer/linguaquest/internal/gamedata"
	"github.com/samdwyer/linguaquest/internal/geom"
)

// SpawnerConfig holds spawn timing and placement.
type SpawnerConfig struct {
	SpawnInterval   float64    `yaml:"spawnInterval"`
	SpawnPoint      geom.Vec   `yaml:"spawnPoint"`
	VerticalSpacing float64    `yaml:"verticalSpacing"` // Rise per spawn so blocks do not overlap
	MaxSpawnRise    float64    `yaml:"maxSpawnRise"`    // Rise resets once it passes this
	LeftSpeedRange  [2]float64 `yaml:"leftSpeedRange"`  // Horizontal velocity range
	UpSpeedRange    [2]float64 `yaml:"upSpeedRange"`    // Vertical velocity range
}

// DefaultSpawnerConfig returns the stock spawner tuning.
func DefaultSpawnerConfig() SpawnerConfig {
	return SpawnerConfig{
		SpawnInterval:   0.5,
		SpawnPoint:      geom.V(8, -4.5),
		VerticalSpacing: 1.5,
		MaxSpawnRise:    10,
		LeftSpeedRange:  [2]float64{-1.5, -0.6},
		UpSpeedRange:    [2]float64{0.05, 0.15},
	}
}

// RoundHooks is what the spawner needs from the round.
type RoundHooks interface {
	Resolver
	Started() bool
	Ended() bool
	OnSentenceCleared()
}

// Spawner turns queued entries into blocks at a fixed interval and tells
// the round when a sentence has been cleared.
type Spawner struct {
	cfg      SpawnerConfig
	blockCfg BlockConfig
	round    RoundHooks
	rng      *rand.Rand

	queue      SpawnQueue
	blocks     []*Block
	spawnTimer float64
	rise       float64
	notified   bool // Round told the sentence is cleared; reset when the queue refills

	noRoundLogged bool
}

// NewSpawner creates a spawner. round may be nil, in which case blocks
// still move but nothing is spawned or scored.
func NewSpawner(cfg SpawnerConfig, blockCfg BlockConfig, round RoundHooks, rng *rand.Rand) *Spawner {
	return &Spawner{
		cfg:      cfg,
		blockCfg: blockCfg,
		round:    round,
		rng:      rng,
	}
}

// Listen subscribes the spawner to a round's sentence and requeue events.
// The returned function unsubscribes both.
func (s *Spawner) Listen(r *Round) (stop func()) {
	unSentence := r.SentenceChanged.Subscribe(s.OnNewSentence)
	unRequeue := r.Requeue.Subscribe(s.Requeue)
	return func() {
		unSentence()
		unRequeue()
	}
}

// OnNewSentence rebuilds the queue from the sentence entries.
func (s *Spawner) OnNewSentence(sen gamedata.Sentence) {
	if len(sen.Entries) == 0 {
		log.Printf("[Spawner] Sentence %q has no entries, ignoring", sen.Key())
		return
	}
	s.queue.Rebuild(sen.Entries, s.rng)
	s.spawnTimer = 0
	s.rise = 0
	s.notified = false
	log.Printf("[Spawner] Queued %d entries for %q", s.queue.Len(), sen.Sentence)
}

// Requeue appends an entry to the back of the queue.
func (s *Spawner) Requeue(e gamedata.Entry) {
	s.queue.Enqueue(e)
	s.notified = false
}

// Tick advances live blocks and spawns the next entry when due.
func (s *Spawner) Tick(dt float64) {
	if dt <= 0 {
		return
	}

	for _, b := range s.blocks {
		b.Tick(dt)
	}
	s.prune()

	if s.round == nil {
		if !s.noRoundLogged {
			log.Printf("[Spawner] No round assigned, not spawning")
			s.noRoundLogged = true
		}
		return
	}
	if !s.round.Started() || s.round.Ended() {
		return
	}

	s.spawnTimer += dt
	if s.spawnTimer >= s.cfg.SpawnInterval {
		s.spawnTimer = 0
		if e, ok := s.queue.Dequeue(); ok {
			s.spawn(e)
		}
	}

	if s.queue.Len() == 0 && s.LiveBlocks() == 0 && !s.notified {
		s.notified = true
		s.round.OnSentenceCleared()
	}
}

func (s *Spawner) spawn(e gamedata.Entry) {
	pos := s.cfg.SpawnPoint.Add(geom.V(0, s.rise))
	s.rise += s.cfg.VerticalSpacing
	if s.rise > s.cfg.MaxSpawnRise {
		s.rise = 0
	}

	vel := geom.V(s.between(s.cfg.LeftSpeedRange), s.between(s.cfg.UpSpeedRange))
	var resolver Resolver
	if s.round != nil {
		resolver = s.round
	}
	s.blocks = append(s.blocks, NewBlock(s.blockCfg, e, pos, vel, resolver))
}

func (s *Spawner) between(r [2]float64) float64 {
	if s.rng == nil {
		return (r[0] + r[1]) / 2
	}
	return r[0] + s.rng.Float64()*(r[1]-r[0])
}

func (s *Spawner) prune() {
	kept := s.blocks[:0]
	for _, b := range s.blocks {
		if !b.Done() {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(s.blocks); i++ {
		s.blocks[i] = nil
	}
	s.blocks = kept
}

// Slice explodes a block with the given intent and pushes nearby blocks
// away from it. Returns false if the block was already exploded.
func (s *Spawner) Slice(b *Block, intent bool) bool {
	if !b.Explode(intent) {
		return false
	}
	s.blast(b.Position, b)
	return true
}

// blast applies a radial impulse that falls off linearly with distance.
func (s *Spawner) blast(center geom.Vec, source *Block) {
	r := s.blockCfg.ExplosionRadius
	if r <= 0 || s.blockCfg.ExplosionForce == 0 {
		return
	}
	for _, b := range s.blocks {
		if b == source || !b.Sliceable() {
			continue
		}
		offset := b.Position.Sub(center)
		d := offset.Len()
		if d >= r || d == 0 {
			continue
		}
		b.ApplyImpulse(geom.Normalize(offset).Mul(s.blockCfg.ExplosionForce * (1 - d/r)))
	}
}

// Clear removes all blocks and queued entries.
func (s *Spawner) Clear() {
	s.queue.Clear()
	s.blocks = nil
	s.spawnTimer = 0
	s.rise = 0
	s.notified = false
}

// Blocks returns the blocks still in play, including exploded ones that
// have not been removed yet.
func (s *Spawner) Blocks() []*Block {
	return s.blocks
}

// LiveBlocks returns the number of blocks not yet removed.
func (s *Spawner) LiveBlocks() int {
	return len(s.blocks)
}

// QueueLen returns the number of entries waiting to spawn.
func (s *Spawner) QueueLen() int {
	return s.queue.Len()
}

// Queue returns a copy of the queued entries.
func (s *Spawner) Queue() []gamedata.Entry {
	return s.queue.Items()
}
