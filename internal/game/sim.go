package game

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/samdwyer/linguaquest/internal/config"
	"github.com/samdwyer/linguaquest/internal/entity"
	"github.com/samdwyer/linguaquest/internal/events"
	"github.com/samdwyer/linguaquest/internal/geom"
	"github.com/samdwyer/linguaquest/internal/input"
	"github.com/samdwyer/linguaquest/internal/lasso"
	"github.com/samdwyer/linguaquest/internal/player"
	"github.com/samdwyer/linguaquest/internal/save"
	"github.com/samdwyer/linguaquest/internal/schedule"
	"github.com/samdwyer/linguaquest/internal/sword"
	"github.com/samdwyer/linguaquest/internal/ui"
	"github.com/samdwyer/linguaquest/internal/world"
)

const (
	footprintLifetime = 3.0
	noticeDuration    = 2.5
	lightningSpread   = math.Pi / 6
	endHints          = "[Q] quit  [E] next game  [R] play again"
	maxMagicLevel     = 2
)

type footprint struct {
	pos geom.Vec
	age float64
}

// Sim is the headless game session: every simulation package wired
// together and advanced by Step. It owns no goroutines.
type Sim struct {
	tuning config.Tuning
	rng    *rand.Rand
	sched  *schedule.Scheduler
	store  *save.Store

	arena   *world.Arena
	start   geom.Vec
	player  *player.Player
	party   *entity.Party
	enemies []*entity.Enemy

	round   *sword.Round
	spawner *sword.Spawner
	waves   *sword.Waves
	puzzle  *lasso.Puzzle

	briefing *Briefing
	features []Scene
	feature  int
	scene    Scene
	ended    Scene // Mini-game whose end screen is showing
	endTitle string
	paused   bool
	quit     bool

	patch   world.Patch
	inPatch bool

	footprints  []footprint
	notice      string
	noticeTimer float64

	SceneChanged events.Bus[Scene]
}

// NewSim builds a session. bank may still be loading; the sword round
// waits for it. store may be nil for a memory-only session.
func NewSim(ctx context.Context, tuning config.Tuning, bank sword.SentenceSource, questions []lasso.Question, store *save.Store, rng *rand.Rand) *Sim {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if store == nil {
		store = save.NewStore(nil)
	}

	s := &Sim{
		tuning: tuning,
		rng:    rng,
		sched:  schedule.New(),
		store:  store,
	}

	s.arena = world.NewArena(tuning.Arena, rng)
	s.arena.Generate(ctx)
	s.start = s.arena.CellCenter(s.arena.Width/2, s.arena.Height/2)

	s.player = player.New(tuning.Player, s.start)
	s.party = entity.NewParty(tuning.Party, s.start)
	for i := 0; i < tuning.Enemy.Count; i++ {
		home := s.arena.RandomFloor(s.start, tuning.Enemy.ChaseRadius+1)
		s.enemies = append(s.enemies, entity.NewEnemy(tuning.Enemy, home, rng))
	}

	s.round = sword.NewRound(tuning.Round, bank, rng, s.sched)
	s.spawner = sword.NewSpawner(tuning.Spawner, tuning.Block, s.round, rng)
	s.spawner.Listen(s.round)
	s.waves = sword.NewWaves(tuning.Wave, s.round, s.spawner)
	s.puzzle = lasso.NewPuzzle(tuning.LassoConfig(), questions, rng, s.sched)
	s.briefing = NewBriefing(tuning.Briefing)

	if tuning.Features.SwordWave {
		s.features = append(s.features, SceneSword)
	}
	if tuning.Features.WordLasso {
		if len(questions) > 0 {
			s.features = append(s.features, SceneLasso)
		} else {
			log.Printf("[Game] Word lasso enabled but no questions loaded")
		}
	}

	s.player.Actions.Subscribe(s.onAction)
	s.player.StatusChanged.Subscribe(s.onStatusChange)
	s.player.Footsteps.Subscribe(func(pos geom.Vec) {
		s.footprints = append(s.footprints, footprint{pos: pos})
	})
	s.round.Finished.Subscribe(s.onRoundFinished)
	s.round.Commands.Subscribe(s.onRoundCommand)
	s.puzzle.PhaseChanged.Subscribe(s.onPuzzlePhase)

	if s.briefing.Done() {
		s.enterFeature(0)
	} else {
		s.scene = SceneBriefing
	}
	return s
}

// Step advances the session by dt seconds with one tick of input.
func (s *Sim) Step(dt float64, in input.Source) {
	if dt <= 0 {
		return
	}
	if in == nil {
		in = input.None
	}

	if (s.scene == SceneSword || s.scene == SceneLasso) && in.IsActionPressed(input.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused {
		return
	}

	s.sched.Tick(dt)
	s.tickNotice(dt)

	switch s.scene {
	case SceneBriefing:
		if s.briefing.Tick(dt, in.IsActionPressed(input.ActionSkip)) {
			s.enterFeature(0)
		}
	case SceneSword:
		s.stepSword(dt, in)
	case SceneLasso:
		s.puzzle.HandleInput(in)
	case SceneEnded:
		s.stepEnded(in)
	}
}

func (s *Sim) stepSword(dt float64, in input.Source) {
	if in.IsActionPressed(input.ActionInteract) {
		switch s.player.Status() {
		case player.StatusWalking, player.StatusInteracting:
			s.player.ToggleInteract()
		}
	}

	s.round.Tick(dt)
	disp := s.player.Tick(dt, in)
	s.movePlayer(disp, in)
	s.party.Follow(dt, s.player.Position(), s.player.IsMoving())
	s.tickEnemies(dt)
	s.spawner.Tick(dt)
	s.waves.Tick(dt)
	s.tickFootprints(dt)
}

// movePlayer applies a displacement one axis at a time so the player
// slides along walls, reporting the blocked axes as the wall normal.
func (s *Sim) movePlayer(disp geom.Vec, in input.Source) {
	from := s.player.Position()
	pos := from
	var normal geom.Vec
	hit := false

	if dx := disp.X(); dx != 0 {
		next := pos.Add(geom.V(dx, 0))
		if s.arena.PassableAt(next) {
			pos = next
		} else {
			normal = normal.Add(geom.V(-math.Copysign(1, dx), 0))
			hit = true
		}
	}
	if dy := disp.Y(); dy != 0 {
		next := pos.Add(geom.V(0, dy))
		if s.arena.PassableAt(next) {
			pos = next
		} else {
			normal = normal.Add(geom.V(0, -math.Copysign(1, dy)))
			hit = true
		}
	}

	s.player.Move(pos.Sub(from))
	if hit {
		cancel := s.tuning.Arena.WallCancelsSlip || in.IsActionPressed(input.ActionInteract)
		s.player.OnWallCollision(geom.Normalize(normal), cancel)
	}
	s.checkHazards(disp)
}

// checkHazards fires patch entry and exit reactions.
func (s *Sim) checkHazards(disp geom.Vec) {
	patch, ok := s.arena.PatchAt(s.player.Position())
	same := ok && s.inPatch && patch == s.patch

	if s.inPatch && !same && s.patch.Kind == world.TileIce && s.tuning.Arena.IceReleasesOnExit {
		if !ok || patch.Kind != world.TileIce {
			s.player.EndSlip()
		}
	}

	if ok && !same {
		switch patch.Kind {
		case world.TileIce:
			dir := geom.Normalize(disp)
			if geom.IsZero(dir) {
				dir = s.player.Facing()
			}
			s.player.Push(dir, s.arena.IceSlipDuration(patch), true)
		case world.TileDrift:
			s.player.Trip(s.tuning.Arena.DriftTripDuration)
		}
	}

	s.patch, s.inPatch = patch, ok
}

func (s *Sim) tickEnemies(dt float64) {
	target := s.player.Position()
	for _, e := range s.enemies {
		d := e.Tick(dt, target)
		if !geom.IsZero(d) {
			if s.arena.PassableAt(e.Position.Add(d)) {
				e.Move(d)
			} else {
				e.Blocked()
			}
		}

		dir, ok := e.TryContact(target)
		if !ok {
			continue
		}
		if !s.player.Push(dir, e.SlipDuration(), false) {
			continue
		}
		s.setNotice(fmt.Sprintf("The %s shoved you!", e.Name))
		if s.round.Started() && !s.round.Ended() {
			s.round.TakeDamage(e.Damage())
		}
	}
}

func (s *Sim) tickFootprints(dt float64) {
	kept := s.footprints[:0]
	for _, fp := range s.footprints {
		fp.age += dt
		if fp.age < footprintLifetime {
			kept = append(kept, fp)
		}
	}
	s.footprints = kept
}

func (s *Sim) stepEnded(in input.Source) {
	switch {
	case in.IsActionPressed(input.ActionQuit):
		s.command(sword.CommandQuit)
	case in.IsActionPressed(input.ActionReturn):
		s.command(sword.CommandReturn)
	case in.IsActionPressed(input.ActionRestart):
		s.command(sword.CommandRestart)
	}
}

// command routes an end-screen command. The sword round handles its own
// commands and echoes them on its Commands bus.
func (s *Sim) command(c sword.Command) {
	if s.ended == SceneSword && s.round.HandleCommand(c) {
		return
	}
	s.applyCommand(c)
}

func (s *Sim) applyCommand(c sword.Command) {
	switch c {
	case sword.CommandQuit:
		s.quit = true
	case sword.CommandReturn:
		s.enterFeature(s.feature + 1)
	case sword.CommandRestart:
		s.enterFeature(s.feature)
	}
}

// enterFeature starts the i-th enabled mini-game, wrapping around.
func (s *Sim) enterFeature(i int) {
	if len(s.features) == 0 {
		s.showEnd(SceneEnded, "Nothing to play: every mini-game is switched off.")
		return
	}
	s.feature = i % len(s.features)
	s.resetPlayer()

	switch s.features[s.feature] {
	case SceneSword:
		s.spawner.Clear()
		s.waves.Clear()
		if s.round.Started() || s.round.Ended() {
			s.round.Restart()
		} else {
			s.round.StartRound()
		}
		s.setScene(SceneSword)
	case SceneLasso:
		s.setScene(SceneLasso)
		s.puzzle.Start()
	}
}

func (s *Sim) resetPlayer() {
	s.player.ChangeState(player.StatusWalking)
	s.player.SetPosition(s.start)
	for _, m := range s.party.Members {
		m.Position = s.start
	}
	s.inPatch = false
	s.footprints = s.footprints[:0]
}

func (s *Sim) setScene(sc Scene) {
	if s.scene == sc {
		return
	}
	s.scene = sc
	s.paused = false
	s.SceneChanged.Publish(sc)
}

func (s *Sim) showEnd(game Scene, title string) {
	s.ended = game
	s.endTitle = title
	s.setScene(SceneEnded)
}

func (s *Sim) onAction(ev player.ActionEvent) {
	if !s.round.Started() || s.round.Ended() {
		return
	}

	launched := false
	switch ev.Kind {
	case player.ActionSwing:
		launched = s.waves.Launch(ev.Position, ev.Facing, true)
	case player.ActionFireball:
		launched = s.waves.Launch(ev.Position, ev.Facing, false)
	case player.ActionLightning:
		// Fan of three label-wrong waves.
		for _, angle := range []float64{0, lightningSpread, -lightningSpread} {
			dir := mgl64.Rotate2D(angle).Mul2x1(ev.Facing)
			if !s.waves.Launch(ev.Position, dir, false) {
				break
			}
			launched = true
		}
	}
	if !launched {
		s.setNotice("Not enough energy.")
	}
}

func (s *Sim) onStatusChange(c player.StatusChange) {
	switch c.To {
	case player.StatusSlipping:
		s.setNotice("Whoa, black ice!")
	case player.StatusFalling:
		s.setNotice("You stumble into the snow drift.")
	}
}

func (s *Sim) onRoundFinished(o sword.Outcome) {
	best := s.store.RecordRound(o, s.round.Score())
	s.persist()

	title := fmt.Sprintf("%s Score %d", outcomeTitle(o), s.round.Score())
	if best {
		title += " (new best)"
	}
	s.showEnd(SceneSword, title)
}

func (s *Sim) onRoundCommand(c sword.Command) {
	switch c {
	case sword.CommandRestart:
		// The round restarts itself after publishing.
		s.resetPlayer()
		s.spawner.Clear()
		s.waves.Clear()
		s.setScene(SceneSword)
	default:
		s.applyCommand(c)
	}
}

func (s *Sim) onPuzzlePhase(ph lasso.Phase) {
	if ph != lasso.PhaseComplete || s.scene != SceneLasso {
		return
	}
	s.store.RecordLasso(s.puzzle.Solved())
	s.persist()

	title := fmt.Sprintf("Lasso complete! %d solved, %d misses.", s.puzzle.Solved(), s.puzzle.Failures())
	if s.puzzle.Solved() > 0 {
		s.party.Train(entity.StatSpeed, 1)
		if s.player.MagicLevel() < maxMagicLevel {
			s.player.UpgradeMagicLevel(1)
			title += fmt.Sprintf(" Magic level %d.", s.player.MagicLevel())
		}
	}
	s.showEnd(SceneLasso, title)
}

func outcomeTitle(o sword.Outcome) string {
	switch o {
	case sword.OutcomePerfectWin:
		return "Perfect victory!"
	case sword.OutcomeWin:
		return "Victory!"
	default:
		return "Defeat."
	}
}

func (s *Sim) persist() {
	if err := s.store.Save(); err != nil {
		log.Printf("[Game] Warning: %v", err)
	}
}

func (s *Sim) setNotice(msg string) {
	s.notice = msg
	s.noticeTimer = noticeDuration
}

func (s *Sim) tickNotice(dt float64) {
	if s.noticeTimer <= 0 {
		return
	}
	s.noticeTimer -= dt
	if s.noticeTimer <= 0 {
		s.notice = ""
	}
}

// Frame returns the renderer's view of the session.
func (s *Sim) Frame() ui.Frame {
	f := ui.Frame{
		Arena:      s.arena,
		Player:     s.player,
		Party:      s.party,
		Enemies:    s.enemies,
		EnemyColor: s.tuning.Enemy.Color,
		Notice:     s.notice,
		Records:    s.store.Records(),
		Paused:     s.paused,
	}
	for _, fp := range s.footprints {
		f.Footprints = append(f.Footprints, fp.pos)
	}

	switch s.scene {
	case SceneBriefing:
		f.Briefing, _ = s.briefing.Current()
	case SceneSword:
		s.swordFrame(&f)
	case SceneLasso:
		f.Puzzle = s.puzzle
	case SceneEnded:
		f.EndTitle, f.EndHints = s.endTitle, endHints
		if s.ended == SceneSword {
			s.swordFrame(&f)
		}
	}
	return f
}

func (s *Sim) swordFrame(f *ui.Frame) {
	f.Round = s.round
	f.Blocks = s.spawner.Blocks()
	f.Waves = s.waves.Active()
	f.QueueLen = s.spawner.QueueLen()
}

// Scene returns the current scene.
func (s *Sim) Scene() Scene { return s.scene }

// Paused reports whether the session is paused.
func (s *Sim) Paused() bool { return s.paused }

// Quit reports whether the player asked to leave.
func (s *Sim) Quit() bool { return s.quit }

// Notice returns the transient message line.
func (s *Sim) Notice() string { return s.notice }

// Arena returns the tile map.
func (s *Sim) Arena() *world.Arena { return s.arena }

// Player returns the player.
func (s *Sim) Player() *player.Player { return s.player }

// Party returns the companions.
func (s *Sim) Party() *entity.Party { return s.party }

// Enemies returns the winter creatures.
func (s *Sim) Enemies() []*entity.Enemy { return s.enemies }

// Round returns the sword-wave round.
func (s *Sim) Round() *sword.Round { return s.round }

// Spawner returns the block spawner.
func (s *Sim) Spawner() *sword.Spawner { return s.spawner }

// Waves returns the active sword waves.
func (s *Sim) Waves() *sword.Waves { return s.waves }

// Puzzle returns the word lasso.
func (s *Sim) Puzzle() *lasso.Puzzle { return s.puzzle }

// Records returns the persisted tallies.
func (s *Sim) Records() save.Records { return s.store.Records() }

// Store returns the record store.
func (s *Sim) Store() *save.Store { return s.store }
