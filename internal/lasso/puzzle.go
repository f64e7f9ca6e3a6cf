package lasso

import (
	"context"
	"log"
	"math/rand"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/linguaquest/internal/events"
	"github.com/samdwyer/linguaquest/internal/input"
	"github.com/samdwyer/linguaquest/internal/schedule"
	"github.com/samdwyer/linguaquest/internal/telemetry"
)

// Config holds puzzle tuning.
type Config struct {
	UndoEnabled  bool    `yaml:"undoEnabled"`  // Allow putting the last collected word back
	SuccessDelay float64 `yaml:"successDelay"` // Seconds before the next question
	FailDelay    float64 `yaml:"failDelay"`    // Seconds before the same question resets
}

// DefaultConfig returns the stock puzzle tuning.
func DefaultConfig() Config {
	return Config{
		UndoEnabled:  false,
		SuccessDelay: 1.0,
		FailDelay:    1.5,
	}
}

// Phase is the feedback state of the puzzle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseSuccess
	PhaseFail
	PhaseComplete
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseSuccess:
		return "success"
	case PhaseFail:
		return "fail"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Word is a collectable sentence part. ID is its index in the question.
type Word struct {
	ID        int
	Text      string
	Collected bool
}

// Puzzle runs a sequence of ordering questions.
type Puzzle struct {
	cfg       Config
	questions []Question
	rng       *rand.Rand
	sched     *schedule.Scheduler
	tracer    trace.Tracer

	index     int
	words     []Word // Display order
	collected []int  // Word IDs in the order picked up
	cursor    int
	phase     Phase
	task      *schedule.Task

	solved   int
	failures int

	PhaseChanged events.Bus[Phase]
}

// NewPuzzle creates an idle puzzle. sched may be nil, in which case
// feedback phases resolve immediately.
func NewPuzzle(cfg Config, questions []Question, rng *rand.Rand, sched *schedule.Scheduler) *Puzzle {
	return &Puzzle{
		cfg:       cfg,
		questions: questions,
		rng:       rng,
		sched:     sched,
		tracer:    telemetry.Tracer("lasso"),
	}
}

// Start begins at the first question.
func (p *Puzzle) Start() {
	if p.task != nil {
		p.task.Cancel()
		p.task = nil
	}
	p.index = 0
	p.solved = 0
	p.failures = 0
	if len(p.questions) == 0 {
		log.Printf("[Lasso] No questions loaded")
		p.setPhase(PhaseComplete)
		return
	}
	p.setup()
}

func (p *Puzzle) setup() {
	q := p.questions[p.index]

	_, span := p.tracer.Start(context.Background(), "lasso.question")
	span.SetAttributes(
		attribute.Int("lasso.index", p.index),
		attribute.Int("lasso.parts", len(q.WordParts)),
	)
	span.End()

	p.words = p.words[:0]
	for i, text := range q.WordParts {
		p.words = append(p.words, Word{ID: i, Text: text})
	}
	if p.rng != nil {
		p.rng.Shuffle(len(p.words), func(i, j int) {
			p.words[i], p.words[j] = p.words[j], p.words[i]
		})
	}
	p.collected = p.collected[:0]
	p.cursor = 0
	p.setPhase(PhasePlaying)
}

// Collect picks up a word by ID. Returns false outside Playing or when
// the word is unknown or already collected.
func (p *Puzzle) Collect(id int) bool {
	if p.phase != PhasePlaying {
		return false
	}
	w := p.word(id)
	if w == nil || w.Collected {
		return false
	}
	w.Collected = true
	p.collected = append(p.collected, id)

	if len(p.collected) == len(p.words) {
		p.check()
	}
	return true
}

// PutBack returns the last collected word. Only available when undo is
// enabled.
func (p *Puzzle) PutBack() bool {
	if !p.cfg.UndoEnabled || p.phase != PhasePlaying || len(p.collected) == 0 {
		return false
	}
	last := p.collected[len(p.collected)-1]
	p.collected = p.collected[:len(p.collected)-1]
	if w := p.word(last); w != nil {
		w.Collected = false
	}
	return true
}

func (p *Puzzle) check() {
	order := p.questions[p.index].CorrectOrderIndices
	correct := len(order) == len(p.collected)
	for i := 0; correct && i < len(order); i++ {
		correct = order[i] == p.collected[i]
	}

	if correct {
		p.solved++
		log.Printf("[Lasso] Correct: %q", p.Assembled())
		p.setPhase(PhaseSuccess)
		p.after(p.cfg.SuccessDelay, p.next)
		return
	}

	p.failures++
	log.Printf("[Lasso] Wrong order: %q", p.Assembled())
	p.setPhase(PhaseFail)
	p.after(p.cfg.FailDelay, p.setup)
}

func (p *Puzzle) next() {
	p.index++
	if p.index >= len(p.questions) {
		p.index = len(p.questions) - 1
		log.Printf("[Lasso] All questions done: %d solved, %d failed attempts", p.solved, p.failures)
		p.setPhase(PhaseComplete)
		return
	}
	p.setup()
}

func (p *Puzzle) after(delay float64, fn func()) {
	if p.sched == nil {
		fn()
		return
	}
	p.task = p.sched.After(delay, func() {
		p.task = nil
		fn()
	})
}

func (p *Puzzle) setPhase(ph Phase) {
	if p.phase == ph {
		return
	}
	p.phase = ph
	p.PhaseChanged.Publish(ph)
}

func (p *Puzzle) word(id int) *Word {
	for i := range p.words {
		if p.words[i].ID == id {
			return &p.words[i]
		}
	}
	return nil
}

// HandleInput maps next/prev onto the cursor, interact onto Collect and
// undo onto PutBack.
func (p *Puzzle) HandleInput(src input.Source) {
	if src == nil || p.phase != PhasePlaying || len(p.words) == 0 {
		return
	}
	switch {
	case src.IsActionPressed(input.ActionNext):
		p.MoveCursor(1)
	case src.IsActionPressed(input.ActionPrev):
		p.MoveCursor(-1)
	case src.IsActionPressed(input.ActionInteract):
		p.Collect(p.words[p.cursor].ID)
	case src.IsActionPressed(input.ActionUndo):
		p.PutBack()
	}
}

// MoveCursor moves the selection, wrapping around.
func (p *Puzzle) MoveCursor(delta int) {
	n := len(p.words)
	if n == 0 {
		return
	}
	p.cursor = ((p.cursor+delta)%n + n) % n
}

// Assembled returns the collected words joined by spaces.
func (p *Puzzle) Assembled() string {
	parts := make([]string, 0, len(p.collected))
	for _, id := range p.collected {
		if w := p.word(id); w != nil {
			parts = append(parts, w.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Words returns the words in display order.
func (p *Puzzle) Words() []Word {
	out := make([]Word, len(p.words))
	copy(out, p.words)
	return out
}

// Cursor returns the selected display index.
func (p *Puzzle) Cursor() int { return p.cursor }

// Phase returns the current phase.
func (p *Puzzle) Phase() Phase { return p.phase }

// QuestionIndex returns the current question index and the total.
func (p *Puzzle) QuestionIndex() (index, count int) { return p.index, len(p.questions) }

// Solved returns the number of questions answered correctly.
func (p *Puzzle) Solved() int { return p.solved }

// Failures returns the number of wrong attempts.
func (p *Puzzle) Failures() int { return p.failures }

// UndoEnabled reports whether PutBack is available.
func (p *Puzzle) UndoEnabled() bool { return p.cfg.UndoEnabled }
