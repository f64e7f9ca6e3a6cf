package sword

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/linguaquest/internal/gamedata"
	"github.com/samdwyer/linguaquest/internal/geom"
)

// fakeRound records what blocks and the spawner report.
type fakeRound struct {
	started, ended bool
	score          int
	correct        int
	incorrect      []gamedata.Entry
	cleared        int
	missed         int
}

func (f *fakeRound) AddScore(d int)                              { f.score += d }
func (f *fakeRound) OnBlockResolvedCorrectly()                   { f.correct++ }
func (f *fakeRound) OnBlockResolvedIncorrectly(e gamedata.Entry) { f.incorrect = append(f.incorrect, e) }
func (f *fakeRound) OnBlockMissed()                              { f.missed++ }
func (f *fakeRound) Started() bool                               { return f.started }
func (f *fakeRound) Ended() bool                                 { return f.ended }
func (f *fakeRound) OnSentenceCleared()                          { f.cleared++ }

func multiset(entries []gamedata.Entry) map[gamedata.Entry]int {
	m := make(map[gamedata.Entry]int)
	for _, e := range entries {
		m[e]++
	}
	return m
}

func sameMultiset(a, b []gamedata.Entry) bool {
	ma, mb := multiset(a), multiset(b)
	if len(ma) != len(mb) {
		return false
	}
	for k, v := range ma {
		if mb[k] != v {
			return false
		}
	}
	return true
}

func TestQueueRebuildIsPermutation(t *testing.T) {
	entries := []gamedata.Entry{
		{Word: "a", ShownLabel: "noun"},
		{Word: "b", ShownLabel: "verb", IsLabelCorrect: true},
		{Word: "c", ShownLabel: "noun"},
		{Word: "a", ShownLabel: "noun"},
		{Word: "d", ShownLabel: "adverb", IsLabelCorrect: true},
	}
	rng := rand.New(rand.NewSource(7))

	var q SpawnQueue
	for i := 0; i < 20; i++ {
		q.Rebuild(entries, rng)
		if q.Len() != len(entries) {
			t.Fatalf("queue length = %d, want %d", q.Len(), len(entries))
		}
		if !sameMultiset(q.Items(), entries) {
			t.Fatalf("rebuild %d is not a permutation: %v", i, q.Items())
		}
	}

	// The caller's slice is left alone.
	if entries[0].Word != "a" || entries[4].Word != "d" {
		t.Errorf("rebuild mutated the input: %v", entries)
	}
}

func TestQueueFIFO(t *testing.T) {
	var q SpawnQueue
	q.Enqueue(gamedata.Entry{Word: "one"})
	q.Enqueue(gamedata.Entry{Word: "two"})

	if e, _ := q.Dequeue(); e.Word != "one" {
		t.Errorf("dequeued %q, want one", e.Word)
	}
	if e, _ := q.Dequeue(); e.Word != "two" {
		t.Errorf("dequeued %q, want two", e.Word)
	}
	if _, ok := q.Dequeue(); ok {
		t.Error("dequeue from empty queue succeeded")
	}
}

func TestOnNewSentenceIgnoresEmpty(t *testing.T) {
	s := NewSpawner(DefaultSpawnerConfig(), DefaultBlockConfig(), &fakeRound{started: true}, nil)
	s.OnNewSentence(gamedata.Sentence{Sentence: "nothing"})
	if s.QueueLen() != 0 {
		t.Errorf("queue length = %d, want 0", s.QueueLen())
	}
}

func TestSpawnerSpawnsOnInterval(t *testing.T) {
	round := &fakeRound{started: true}
	cfg := DefaultSpawnerConfig()
	s := NewSpawner(cfg, DefaultBlockConfig(), round, rand.New(rand.NewSource(3)))
	s.OnNewSentence(testSentences()[1])

	s.Tick(0.25)
	if s.LiveBlocks() != 0 {
		t.Fatalf("spawned before the interval")
	}
	s.Tick(0.25)
	if s.LiveBlocks() != 1 || s.QueueLen() != 2 {
		t.Fatalf("blocks = %d queue = %d, want 1 and 2", s.LiveBlocks(), s.QueueLen())
	}
	s.Tick(0.5)
	s.Tick(0.5)

	blocks := s.Blocks()
	if len(blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(blocks))
	}
	for i, b := range blocks {
		lo, hi := cfg.LeftSpeedRange, cfg.UpSpeedRange
		if b.Velocity.X() < lo[0] || b.Velocity.X() > lo[1] || b.Velocity.Y() < hi[0] || b.Velocity.Y() > hi[1] {
			t.Errorf("block %d velocity %v out of range", i, b.Velocity)
		}
		if b.ID == "" {
			t.Errorf("block %d has no id", i)
		}
	}
	if blocks[1].Position.Y() <= blocks[0].Position.Y() {
		t.Errorf("second block not stacked above the first: %v %v", blocks[0].Position, blocks[1].Position)
	}
}

func TestSpawnerIdleBeforeRoundStarts(t *testing.T) {
	round := &fakeRound{}
	s := NewSpawner(DefaultSpawnerConfig(), DefaultBlockConfig(), round, nil)
	s.OnNewSentence(testSentences()[0])

	for i := 0; i < 10; i++ {
		s.Tick(0.5)
	}
	if s.LiveBlocks() != 0 || round.cleared != 0 {
		t.Errorf("spawner ran before the round started")
	}
}

func TestSentenceClearedNotifiedOnce(t *testing.T) {
	round := &fakeRound{started: true}
	s := NewSpawner(DefaultSpawnerConfig(), DefaultBlockConfig(), round, nil)
	s.OnNewSentence(testSentences()[0])

	for i := 0; i < 4; i++ {
		s.Tick(0.5)
	}
	for _, b := range s.Blocks() {
		s.Slice(b, b.Entry.IsLabelCorrect)
	}
	for i := 0; i < 5; i++ {
		s.Tick(0.5)
	}
	if round.cleared != 1 {
		t.Fatalf("cleared notifications = %d, want 1", round.cleared)
	}
	if round.correct != 2 || round.score != 200 {
		t.Errorf("correct = %d score = %d, want 2 and 200", round.correct, round.score)
	}

	// A requeued entry re-arms the notification.
	s.Requeue(gamedata.Entry{Word: "again"})
	s.Tick(0.5)
	for _, b := range s.Blocks() {
		s.Slice(b, b.Entry.IsLabelCorrect)
	}
	s.Tick(0.5)
	s.Tick(0.5)
	if round.cleared != 2 {
		t.Errorf("cleared notifications = %d, want 2", round.cleared)
	}
}

func TestRequeueKeepsEveryEntry(t *testing.T) {
	r, _, _ := newTestRound(DefaultRoundConfig())
	s := NewSpawner(DefaultSpawnerConfig(), DefaultBlockConfig(), r, rand.New(rand.NewSource(11)))
	stop := s.Listen(r)
	defer stop()

	r.StartRound()
	sen, ok := r.CurrentSentence()
	if !ok {
		t.Fatal("no current sentence")
	}
	if !sameMultiset(s.Queue(), sen.Entries) {
		t.Fatalf("queue %v is not a permutation of %v", s.Queue(), sen.Entries)
	}

	// Spawn everything, slice every block with the wrong claim.
	for s.QueueLen() > 0 {
		s.Tick(0.25)
	}
	for _, b := range s.Blocks() {
		s.Slice(b, !b.Entry.IsLabelCorrect)
	}

	var pending []gamedata.Entry
	pending = append(pending, s.Queue()...)
	for _, b := range s.Blocks() {
		if b.Sliceable() {
			pending = append(pending, b.Entry)
		}
	}
	if !sameMultiset(pending, sen.Entries) {
		t.Errorf("entries lost or duplicated: have %v, want %v", pending, sen.Entries)
	}
	if r.IncorrectCuts() != len(sen.Entries) {
		t.Errorf("incorrect = %d, want %d", r.IncorrectCuts(), len(sen.Entries))
	}
}

func TestSliceBlastsNeighbours(t *testing.T) {
	round := &fakeRound{started: true}
	bc := DefaultBlockConfig()
	s := NewSpawner(DefaultSpawnerConfig(), bc, round, nil)

	a := NewBlock(bc, gamedata.Entry{Word: "a"}, geom.V(0, 0), geom.Zero, round)
	near := NewBlock(bc, gamedata.Entry{Word: "b"}, geom.V(1, 0), geom.Zero, round)
	far := NewBlock(bc, gamedata.Entry{Word: "c"}, geom.V(5, 0), geom.Zero, round)
	s.blocks = []*Block{a, near, far}

	if !s.Slice(a, false) {
		t.Fatal("slice failed")
	}
	if s.Slice(a, false) {
		t.Error("second slice of the same block succeeded")
	}

	// force * (1 - 1/2) along +x
	if v := near.Velocity; v.X() < 2.49 || v.X() > 2.51 || v.Y() != 0 {
		t.Errorf("near velocity = %v, want (2.5, 0)", v)
	}
	if !geom.IsZero(far.Velocity) {
		t.Errorf("far block moved: %v", far.Velocity)
	}
	if !geom.IsZero(a.Velocity) {
		t.Errorf("exploded block pushed itself: %v", a.Velocity)
	}
}

func TestWaveSlicesOncePerBlock(t *testing.T) {
	round := &fakeRound{started: true}
	bc := DefaultBlockConfig()
	bc.ExplosionForce = 0
	s := NewSpawner(DefaultSpawnerConfig(), bc, round, nil)
	b1 := NewBlock(bc, gamedata.Entry{Word: "x", IsLabelCorrect: true}, geom.V(2, 0), geom.Zero, round)
	b2 := NewBlock(bc, gamedata.Entry{Word: "y", IsLabelCorrect: false}, geom.V(4, 0), geom.Zero, round)
	s.blocks = []*Block{b1, b2}

	pool := &fakePool{energy: 15}
	ws := NewWaves(DefaultWaveConfig(), pool, s)

	if !ws.Launch(geom.Zero, geom.V(1, 0), true) {
		t.Fatal("launch failed")
	}
	if ws.Launch(geom.Zero, geom.V(1, 0), true) {
		t.Error("launch without enough energy succeeded")
	}
	if ws.Launch(geom.Zero, geom.Zero, true) {
		t.Error("launch without direction succeeded")
	}

	for i := 0; i < 100 && len(ws.Active()) > 0; i++ {
		ws.Tick(0.02)
	}
	if len(ws.Active()) != 0 {
		t.Error("wave never dissipated")
	}
	if !b1.Exploded() || !b2.Exploded() {
		t.Fatal("wave missed a block in its path")
	}
	if !b1.Correct() || b2.Correct() {
		t.Errorf("classification wrong: b1=%v b2=%v", b1.Correct(), b2.Correct())
	}
	if round.score != 100-50 {
		t.Errorf("score = %d, want 50", round.score)
	}
}

type fakePool struct{ energy int }

func (p *fakePool) HasEnergy(c int) bool { return p.energy >= c }
func (p *fakePool) UseEnergy(a int)      { p.energy -= a }
