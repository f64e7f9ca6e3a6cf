package sword

import (
	"context"
	"log"
	"math"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/linguaquest/internal/events"
	"github.com/samdwyer/linguaquest/internal/gamedata"
	"github.com/samdwyer/linguaquest/internal/schedule"
	"github.com/samdwyer/linguaquest/internal/telemetry"
)

// RoundConfig holds the round rules.
type RoundConfig struct {
	SentencesPerRound int    `yaml:"sentencesPerRound"`
	Topic             string `yaml:"topic"` // Empty matches every topic
	MinDifficulty     int    `yaml:"minDifficulty"`
	MaxDifficulty     int    `yaml:"maxDifficulty"`
	AvoidRepeats      bool   `yaml:"avoidRepeats"`

	MaxEnergy        int     `yaml:"maxEnergy"`
	StartEnergy      int     `yaml:"startEnergy"`
	EnergyRegenRate  float64 `yaml:"energyRegenRate"`  // Energy per second
	EnergyRegenDelay float64 `yaml:"energyRegenDelay"` // Seconds after the last use before regen starts
	MaxHealth        int     `yaml:"maxHealth"`

	WinScore        int `yaml:"winScore"`
	PerfectWinScore int `yaml:"perfectWinScore"`
	FlawlessBonus   int `yaml:"flawlessBonus"` // Added when every block was cleared without a mistake

	TimeLimit         float64 `yaml:"timeLimit"` // Seconds; 0 disables the countdown
	NextSentenceDelay float64 `yaml:"nextSentenceDelay"`
}

// DefaultRoundConfig returns the stock round rules.
func DefaultRoundConfig() RoundConfig {
	return RoundConfig{
		SentencesPerRound: 3,
		MinDifficulty:     1,
		MaxDifficulty:     5,
		AvoidRepeats:      true,
		MaxEnergy:         100,
		StartEnergy:       100,
		EnergyRegenRate:   5,
		EnergyRegenDelay:  1,
		MaxHealth:         3,
		WinScore:          1000,
		PerfectWinScore:   1500,
		FlawlessBonus:     250,
		TimeLimit:         60,
		NextSentenceDelay: 1,
	}
}

// SentenceSource is the sentence bank as seen by a round.
type SentenceSource interface {
	Loaded() bool
	Sentences() []gamedata.Sentence
}

// Round owns score, energy, health, the countdown and the sentence
// sequence of one sword-wave round.
type Round struct {
	cfg    RoundConfig
	bank   SentenceSource
	rng    *rand.Rand
	sched  *schedule.Scheduler
	tracer trace.Tracer

	selector *gamedata.Selector

	startRequested bool
	started        bool
	waitLogged     bool

	sentences []gamedata.Sentence
	index     int

	totalBlocks    int
	clearedBlocks  int
	incorrect      int
	sentenceTotal  int
	sentenceClears int

	score  int
	health int

	energy     int
	regenAccum float64
	sinceUse   float64

	remaining float64
	timeScale float64
	outcome   Outcome

	advanceTask *schedule.Task

	SentenceChanged events.Bus[gamedata.Sentence]
	Requeue         events.Bus[gamedata.Entry]
	Finished        events.Bus[Outcome]
	Commands        events.Bus[Command]
}

// NewRound creates an idle round. sched may be nil, in which case the
// next sentence follows a cleared one immediately.
func NewRound(cfg RoundConfig, bank SentenceSource, rng *rand.Rand, sched *schedule.Scheduler) *Round {
	if cfg.PerfectWinScore < cfg.WinScore {
		cfg.PerfectWinScore = cfg.WinScore
	}
	if cfg.StartEnergy > cfg.MaxEnergy || cfg.StartEnergy < 0 {
		cfg.StartEnergy = cfg.MaxEnergy
	}

	r := &Round{
		cfg:    cfg,
		bank:   bank,
		rng:    rng,
		sched:  sched,
		tracer: telemetry.Tracer("sword"),
	}
	r.reset()
	return r
}

func (r *Round) reset() {
	if r.advanceTask != nil {
		r.advanceTask.Cancel()
		r.advanceTask = nil
	}
	r.startRequested = false
	r.started = false
	r.waitLogged = false
	r.sentences = nil
	r.index = -1
	r.totalBlocks = 0
	r.clearedBlocks = 0
	r.incorrect = 0
	r.sentenceTotal = 0
	r.sentenceClears = 0
	r.score = 0
	r.health = r.cfg.MaxHealth
	r.energy = r.cfg.StartEnergy
	r.regenAccum = 0
	r.sinceUse = 0
	r.remaining = r.cfg.TimeLimit
	r.timeScale = 1
	r.outcome = OutcomeNone
}

// StartRound requests the round to start. If the bank has not finished
// loading the start is retried on every Tick.
func (r *Round) StartRound() {
	if r.started || r.Ended() {
		return
	}
	r.startRequested = true
	r.tryStart()
}

func (r *Round) tryStart() {
	if r.bank == nil {
		if !r.waitLogged {
			log.Printf("[SwordRound] No sentence bank assigned, cannot start round")
			r.waitLogged = true
		}
		return
	}
	if !r.bank.Loaded() {
		if !r.waitLogged {
			log.Printf("[SwordRound] Waiting for sentence bank to load...")
			r.waitLogged = true
		}
		return
	}

	if r.selector == nil {
		r.selector = gamedata.NewSelector(r.bank.Sentences(), r.rng)
	}
	set := r.selector.PickSet(r.cfg.SentencesPerRound, r.cfg.Topic,
		r.cfg.MinDifficulty, r.cfg.MaxDifficulty, r.cfg.AvoidRepeats)
	if len(set) == 0 {
		log.Printf("[SwordRound] No sentences match topic %q difficulty %d-%d, round not started",
			r.cfg.Topic, r.cfg.MinDifficulty, r.cfg.MaxDifficulty)
		r.startRequested = false
		return
	}

	_, span := r.tracer.Start(context.Background(), "round.start")
	total := gamedata.TotalEntries(set)
	span.SetAttributes(
		attribute.Int("round.sentences", len(set)),
		attribute.Int("round.blocks", total),
		attribute.String("round.topic", r.cfg.Topic),
	)
	span.End()

	r.sentences = set
	r.totalBlocks = total
	r.started = true
	r.startRequested = false
	r.remaining = r.cfg.TimeLimit
	r.index = -1

	log.Printf("[SwordRound] Round started: %d sentences, %d blocks", len(set), total)
	r.AdvanceSentence()
}

// AdvanceSentence moves to the next sentence, wrapping to the first after
// the last, and publishes it to SentenceChanged subscribers.
func (r *Round) AdvanceSentence() {
	r.advanceTask = nil
	if !r.started || r.Ended() || len(r.sentences) == 0 {
		return
	}

	r.index = (r.index + 1) % len(r.sentences)
	s := r.sentences[r.index]
	r.sentenceTotal = len(s.Entries)
	r.sentenceClears = 0

	_, span := r.tracer.Start(context.Background(), "round.sentence")
	span.SetAttributes(
		attribute.String("sentence.key", s.Key()),
		attribute.Int("sentence.index", r.index),
		attribute.Int("sentence.entries", len(s.Entries)),
	)
	span.End()

	r.SentenceChanged.Publish(s)
}

// OnBlockResolvedCorrectly records a correctly classified block.
func (r *Round) OnBlockResolvedCorrectly() {
	if !r.running() {
		return
	}
	r.clearedBlocks++
	r.sentenceClears++
}

// OnBlockResolvedIncorrectly records a wrong cut or a regenerating miss and
// asks the spawner to put the entry back in the queue.
func (r *Round) OnBlockResolvedIncorrectly(e gamedata.Entry) {
	if !r.running() {
		return
	}
	r.incorrect++
	r.Requeue.Publish(e)
}

// OnBlockMissed records a miss whose entry is not requeued.
func (r *Round) OnBlockMissed() {
	if !r.running() {
		return
	}
	r.incorrect++
}

// OnSentenceCleared schedules the next sentence. At most one advance is
// pending at a time.
func (r *Round) OnSentenceCleared() {
	if !r.running() {
		return
	}
	if r.advanceTask.Pending() {
		return
	}
	if r.sched == nil {
		r.AdvanceSentence()
		return
	}
	r.advanceTask = r.sched.After(r.cfg.NextSentenceDelay, r.AdvanceSentence)
}

// Tick runs the countdown and energy regeneration.
func (r *Round) Tick(dt float64) {
	if r.Ended() {
		return
	}
	if r.startRequested && !r.started {
		r.tryStart()
	}
	if !r.started || dt <= 0 {
		return
	}
	dt *= r.timeScale

	if r.cfg.TimeLimit > 0 {
		r.remaining -= dt
		if r.remaining <= 0 {
			r.remaining = 0
			log.Printf("[SwordRound] Time's up")
			r.Resolve()
			return
		}
	}

	r.regenerate(dt)
}

func (r *Round) regenerate(dt float64) {
	if r.energy >= r.cfg.MaxEnergy {
		r.regenAccum = 0
		return
	}

	r.sinceUse += dt
	if r.sinceUse < r.cfg.EnergyRegenDelay {
		return
	}

	r.regenAccum += r.cfg.EnergyRegenRate * dt
	if r.regenAccum >= 1 {
		whole := int(math.Floor(r.regenAccum))
		r.regenAccum -= float64(whole)
		r.RestoreEnergy(whole)
	}
}

// HasEnergy reports whether cost energy is available.
func (r *Round) HasEnergy(cost int) bool {
	return r.energy >= cost
}

// UseEnergy spends energy, clamping at zero, and restarts the regen delay.
func (r *Round) UseEnergy(amount int) {
	if amount <= 0 {
		return
	}
	r.energy = max(0, r.energy-amount)
	r.sinceUse = 0
	r.regenAccum = 0
}

// RestoreEnergy adds energy up to the maximum.
func (r *Round) RestoreEnergy(amount int) {
	if amount <= 0 {
		return
	}
	r.energy = min(r.cfg.MaxEnergy, r.energy+amount)
}

// TakeDamage removes health while the round runs. Reaching zero ends the
// round with a loss.
func (r *Round) TakeDamage(amount int) {
	if !r.running() || amount <= 0 {
		return
	}
	r.health = max(0, r.health-amount)
	log.Printf("[SwordRound] Took %d damage, health %d/%d", amount, r.health, r.cfg.MaxHealth)
	if r.health == 0 {
		r.end(OutcomeLose)
	}
}

// RestoreHealth adds health up to the maximum.
func (r *Round) RestoreHealth(amount int) {
	if !r.running() || amount <= 0 {
		return
	}
	r.health = min(r.cfg.MaxHealth, r.health+amount)
}

// AddScore changes the score. The score may go negative.
func (r *Round) AddScore(delta int) {
	if r.Ended() {
		return
	}
	r.score += delta
}

// Flawless reports whether every block was cleared without a mistake.
func (r *Round) Flawless() bool {
	return r.totalBlocks > 0 && r.incorrect == 0 && r.clearedBlocks >= r.totalBlocks
}

// Resolve ends the round, deciding the outcome from the score.
func (r *Round) Resolve() {
	if r.Ended() {
		return
	}
	if r.Flawless() && r.cfg.FlawlessBonus > 0 {
		r.score += r.cfg.FlawlessBonus
		log.Printf("[SwordRound] Flawless bonus +%d", r.cfg.FlawlessBonus)
	}
	r.end(DecideOutcome(r.score, r.cfg.WinScore, r.cfg.PerfectWinScore))
}

func (r *Round) end(o Outcome) {
	r.outcome = o
	r.timeScale = 0
	r.startRequested = false
	if r.advanceTask != nil {
		r.advanceTask.Cancel()
		r.advanceTask = nil
	}

	_, span := r.tracer.Start(context.Background(), "round.end")
	span.SetAttributes(
		attribute.String("round.outcome", o.String()),
		attribute.Int("round.score", r.score),
		attribute.Int("round.health", r.health),
		attribute.Int("round.cleared", r.clearedBlocks),
		attribute.Int("round.incorrect", r.incorrect),
	)
	span.End()

	log.Printf("[SwordRound] Round over: %s (score %d)", o, r.score)
	r.Finished.Publish(o)
}

// HandleCommand applies a post-game command. Commands are only accepted
// once the round has ended.
func (r *Round) HandleCommand(c Command) bool {
	if !r.Ended() {
		return false
	}
	r.Commands.Publish(c)
	if c == CommandRestart {
		r.Restart()
	}
	return true
}

// Restart resets the round and requests a new start.
func (r *Round) Restart() {
	r.reset()
	r.StartRound()
}

func (r *Round) running() bool {
	return r.started && !r.Ended()
}

// Started reports whether the round has a sentence set.
func (r *Round) Started() bool { return r.started }

// Pending reports whether a start was requested but has not happened yet.
func (r *Round) Pending() bool { return r.startRequested && !r.started }

// Ended reports whether the outcome is decided.
func (r *Round) Ended() bool { return r.outcome != OutcomeNone }

// Outcome returns the decided outcome, or OutcomeNone.
func (r *Round) Outcome() Outcome { return r.outcome }

// Score returns the current score.
func (r *Round) Score() int { return r.score }

// Energy returns the current energy.
func (r *Round) Energy() int { return r.energy }

// MaxEnergy returns the energy cap.
func (r *Round) MaxEnergy() int { return r.cfg.MaxEnergy }

// Health returns the current health.
func (r *Round) Health() int { return r.health }

// MaxHealth returns the health cap.
func (r *Round) MaxHealth() int { return r.cfg.MaxHealth }

// RemainingTime returns the countdown in seconds (0 when there is no limit).
func (r *Round) RemainingTime() float64 {
	if r.cfg.TimeLimit <= 0 {
		return 0
	}
	return r.remaining
}

// TimeLimit returns the configured limit.
func (r *Round) TimeLimit() float64 { return r.cfg.TimeLimit }

// TimeScale is 1 while running and 0 once the round has ended.
func (r *Round) TimeScale() float64 { return r.timeScale }

// Progress returns cleared and total block counts for the round.
func (r *Round) Progress() (cleared, total int) { return r.clearedBlocks, r.totalBlocks }

// SentenceProgress returns cleared and total blocks of the current sentence.
func (r *Round) SentenceProgress() (cleared, total int) {
	return r.sentenceClears, r.sentenceTotal
}

// IncorrectCuts returns the number of wrong cuts and misses.
func (r *Round) IncorrectCuts() int { return r.incorrect }

// WinScore returns the win threshold.
func (r *Round) WinScore() int { return r.cfg.WinScore }

// PerfectWinScore returns the perfect-win threshold.
func (r *Round) PerfectWinScore() int { return r.cfg.PerfectWinScore }

// CurrentSentence returns the active sentence.
func (r *Round) CurrentSentence() (gamedata.Sentence, bool) {
	if !r.started || r.index < 0 || r.index >= len(r.sentences) {
		return gamedata.Sentence{}, false
	}
	return r.sentences[r.index], true
}

// SentenceIndex returns the index of the active sentence and the set size.
func (r *Round) SentenceIndex() (index, count int) {
	return r.index, len(r.sentences)
}
