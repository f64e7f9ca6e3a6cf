package sword

import (
	"testing"

	"github.com/samdwyer/linguaquest/internal/gamedata"
	"github.com/samdwyer/linguaquest/internal/geom"
)

func TestExplodeIdempotent(t *testing.T) {
	tests := []struct {
		name       string
		flag       bool
		intent     bool
		wantScore  int
		wantGood   int
		wantQueued int
	}{
		{"correct label claimed correct", true, true, 100, 1, 0},
		{"wrong label claimed wrong", false, false, 100, 1, 0},
		{"correct label claimed wrong", true, false, -50, 0, 1},
		{"wrong label claimed correct", false, true, -50, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			round := &fakeRound{}
			b := NewBlock(DefaultBlockConfig(), gamedata.Entry{Word: "w", IsLabelCorrect: tt.flag}, geom.Zero, geom.Zero, round)

			if !b.Explode(tt.intent) {
				t.Fatal("first explode returned false")
			}
			for i := 0; i < 3; i++ {
				if b.Explode(!tt.intent) {
					t.Fatal("repeat explode returned true")
				}
			}

			if round.score != tt.wantScore {
				t.Errorf("score = %d, want %d", round.score, tt.wantScore)
			}
			if round.correct != tt.wantGood || len(round.incorrect) != tt.wantQueued {
				t.Errorf("correct = %d incorrect = %d", round.correct, len(round.incorrect))
			}
		})
	}
}

func TestExplodedBlockRemovedAfterDelay(t *testing.T) {
	b := NewBlock(DefaultBlockConfig(), gamedata.Entry{Word: "w"}, geom.Zero, geom.V(1, 0), nil)
	b.Explode(true)

	b.Tick(0.02)
	if b.Done() {
		t.Fatal("removed before destroy delay")
	}
	if b.Position.X() != 0 {
		t.Errorf("exploded block kept moving: %v", b.Position)
	}
	b.Tick(0.05)
	if !b.Done() {
		t.Error("not removed after destroy delay")
	}
}

func TestMissedBlock(t *testing.T) {
	for _, regen := range []bool{true, false} {
		cfg := DefaultBlockConfig()
		cfg.CanRegenerate = regen
		round := &fakeRound{}
		b := NewBlock(cfg, gamedata.Entry{Word: "w"}, geom.Zero, geom.Zero, round)

		for i := 0; i < 8*4; i++ {
			b.Tick(0.25)
		}
		if !b.Fading() || b.Done() {
			t.Fatalf("regen=%v: fading=%v done=%v after lifetime", regen, b.Fading(), b.Done())
		}
		b.Tick(1)
		if a := b.Alpha(); a <= 0 || a >= 1 {
			t.Errorf("regen=%v: alpha = %v mid-fade", regen, a)
		}
		b.Tick(1)

		if !b.Done() || !b.Missed() {
			t.Fatalf("regen=%v: done=%v missed=%v after fade", regen, b.Done(), b.Missed())
		}
		if round.score != cfg.MissedPoints {
			t.Errorf("regen=%v: score = %d, want %d", regen, round.score, cfg.MissedPoints)
		}
		wantQueued := 0
		if regen {
			wantQueued = 1
		}
		if len(round.incorrect) != wantQueued {
			t.Errorf("regen=%v: requeued %d, want %d", regen, len(round.incorrect), wantQueued)
		}
		if len(round.incorrect)+round.missed != 1 {
			t.Errorf("regen=%v: miss reported %d times, want 1", regen, len(round.incorrect)+round.missed)
		}
		if b.Explode(true) {
			t.Errorf("regen=%v: missed block exploded", regen)
		}
	}
}

func TestBlockBouncesOffBounds(t *testing.T) {
	cfg := DefaultBlockConfig()
	b := NewBlock(cfg, gamedata.Entry{Word: "w"}, geom.V(9.9, -5.9), geom.V(2, -2), nil)

	b.Tick(0.25)

	if b.Position.X() != cfg.MaxBounds.X() || b.Position.Y() != cfg.MinBounds.Y() {
		t.Errorf("position = %v, want clamped to (%v, %v)", b.Position, cfg.MaxBounds.X(), cfg.MinBounds.Y())
	}
	if b.Velocity.X() != -1 || b.Velocity.Y() != 1 {
		t.Errorf("velocity = %v, want (-1, 1)", b.Velocity)
	}
}
