package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	d := Defaults()
	if err := d.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestEmbeddedTuningMatchesDefaults(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()

	if got.Player != want.Player {
		t.Errorf("player = %+v, want %+v", got.Player, want.Player)
	}
	if got.Round != want.Round {
		t.Errorf("round = %+v, want %+v", got.Round, want.Round)
	}
	if got.Spawner != want.Spawner {
		t.Errorf("spawner = %+v, want %+v", got.Spawner, want.Spawner)
	}
	if got.Block != want.Block {
		t.Errorf("block = %+v, want %+v", got.Block, want.Block)
	}
	if got.Wave != want.Wave || got.Arena != want.Arena || got.Enemy != want.Enemy || got.Lasso != want.Lasso {
		t.Error("embedded tuning drifted from package defaults")
	}
	if len(got.Party.Members) != len(want.Party.Members) {
		t.Errorf("party members = %d, want %d", len(got.Party.Members), len(want.Party.Members))
	}
	if len(got.Briefing.Messages) == 0 {
		t.Error("embedded briefing has no messages")
	}
}

func TestParseKeepsMissingKeys(t *testing.T) {
	tuning, err := Parse([]byte(`
round:
  winScore: 800
  timeLimit: 0
spawner:
  leftSpeedRange: [-2, -1]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if tuning.Round.WinScore != 800 || tuning.Round.TimeLimit != 0 {
		t.Errorf("overrides not applied: %+v", tuning.Round)
	}
	if tuning.Round.PerfectWinScore != 1500 {
		t.Errorf("perfectWinScore = %d, want default 1500", tuning.Round.PerfectWinScore)
	}
	if tuning.Spawner.LeftSpeedRange != [2]float64{-2, -1} {
		t.Errorf("leftSpeedRange = %v", tuning.Spawner.LeftSpeedRange)
	}
	if tuning.Player.Speed != 5 {
		t.Errorf("player speed = %v, want default 5", tuning.Player.Speed)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"malformed", "round: [", "parse"},
		{"zero speed", "player:\n  speed: 0\n", "player.speed"},
		{"difficulty order", "round:\n  minDifficulty: 4\n  maxDifficulty: 2\n", "minDifficulty"},
		{"bad range", "spawner:\n  upSpeedRange: [1, 0]\n", "speed ranges"},
		{"small arena", "arena:\n  width: 4\n", "at least 8x8"},
		{"no features", "features:\n  swordWave: false\n  wordLasso: false\n", "features"},
		{"bounds", "block:\n  minBounds: [5, 0]\n  maxBounds: [1, 6]\n", "minBounds"},
		{"array length", "block:\n  minBounds: [1, 2, 3]\n", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("features:\n  lassoUndo: true\nenemy:\n  count: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tuning, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tuning.Enemy.Count != 0 {
		t.Errorf("enemy count = %d, want 0", tuning.Enemy.Count)
	}
	if !tuning.LassoConfig().UndoEnabled {
		t.Error("lassoUndo feature not applied to lasso config")
	}
	if tuning.Lasso.UndoEnabled {
		t.Error("LassoConfig mutated the tuning")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read tuning file") {
		t.Errorf("err = %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	want := Defaults()
	out, err := want.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Block != want.Block || got.Round != want.Round {
		t.Error("marshalled tuning did not parse back to the same values")
	}
}
