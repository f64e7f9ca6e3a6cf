package game

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/linguaquest/data"
	"github.com/samdwyer/linguaquest/internal/config"
	"github.com/samdwyer/linguaquest/internal/gamedata"
	"github.com/samdwyer/linguaquest/internal/lasso"
	"github.com/samdwyer/linguaquest/internal/save"
	"github.com/samdwyer/linguaquest/internal/telemetry"
	"github.com/samdwyer/linguaquest/internal/ui"
)

const (
	tickRate = 60
	// maxFrameTime caps dt after a stall so timers do not jump.
	maxFrameTime = 0.1
	lassoFile    = "word_order.json"
)

// Game hosts a Sim in the terminal.
type Game struct {
	cfg      Config
	tuning   config.Tuning
	store    *save.Store
	screen   *ui.Screen
	renderer *ui.Renderer
	keys     *ui.KeyMapper
	sim      *Sim
	running  bool
}

// New loads the tuning and creates the terminal screen.
func New(cfg Config, store *save.Store) (*Game, error) {
	tuning, err := config.Load(cfg.TuningPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tuning: %w", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	return &Game{
		cfg:      cfg,
		tuning:   tuning,
		store:    store,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		keys:     ui.NewKeyMapper(ui.DefaultHoldWindow),
		running:  true,
	}, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	tracer := telemetry.Tracer("game")

	// Initialize game (traced)
	ctx, initSpan := tracer.Start(ctx, "game.init")

	seed := g.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	bank := gamedata.NewBank(g.sentenceFS(), g.cfg.SentenceFiles...)
	bank.LoadAsync(ctx, func(n int) {
		log.Printf("[Game] Sentence bank ready: %d sentences from %v", n, bank.PackNames())
	})

	questions := lasso.LoadQuestions(data.Lasso(), lassoFile)
	g.sim = NewSim(ctx, g.tuning, bank, questions, g.store, rng)

	initSpan.SetAttributes(
		attribute.Int64("game.seed", seed),
		attribute.Int("arena.patches", len(g.sim.Arena().Patches)),
		attribute.Int("lasso.questions", len(questions)),
		attribute.Bool("save.persistent", g.sim.Store().Persistent()),
	)
	initSpan.End()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go g.pollEvents(events, done)

	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()
	last := time.Now()

	// Main game loop
	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ev)
		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), maxFrameTime)
			last = now

			g.sim.Step(dt, g.keys.Frame(now))
			g.keys.EndTick()
			g.renderer.Render(g.sim.Frame())

			if g.sim.Quit() {
				g.running = false
			}
		}
	}

	return nil
}

// pollEvents forwards terminal events until the screen is closed.
func (g *Game) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if g.keys.HandleKey(ev, time.Now()) {
			g.running = false
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

func (g *Game) sentenceFS() fs.FS {
	if g.cfg.SentenceDir != "" {
		return os.DirFS(g.cfg.SentenceDir)
	}
	return data.Sentences()
}
