// Package config loads the game tuning: one YAML document composing the
// settings of every simulation package.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/linguaquest/data"
	"github.com/samdwyer/linguaquest/internal/entity"
	"github.com/samdwyer/linguaquest/internal/lasso"
	"github.com/samdwyer/linguaquest/internal/player"
	"github.com/samdwyer/linguaquest/internal/sword"
	"github.com/samdwyer/linguaquest/internal/world"
)

// Features switches the mini-games on and off.
type Features struct {
	SwordWave bool `yaml:"swordWave"`
	WordLasso bool `yaml:"wordLasso"`
	LassoUndo bool `yaml:"lassoUndo"` // Allow putting the last lasso word back
}

// Briefing is the message sequence shown before play.
type Briefing struct {
	Messages        []string `yaml:"messages"`
	MessageDuration float64  `yaml:"messageDuration"` // Seconds per message unless skipped
}

// Tuning is the full game configuration.
type Tuning struct {
	Player   player.Config       `yaml:"player"`
	Round    sword.RoundConfig   `yaml:"round"`
	Spawner  sword.SpawnerConfig `yaml:"spawner"`
	Block    sword.BlockConfig   `yaml:"block"`
	Wave     sword.WaveConfig    `yaml:"wave"`
	Arena    world.Config        `yaml:"arena"`
	Enemy    entity.EnemyConfig  `yaml:"enemy"`
	Party    entity.PartyConfig  `yaml:"party"`
	Lasso    lasso.Config        `yaml:"lasso"`
	Features Features            `yaml:"features"`
	Briefing Briefing            `yaml:"briefing"`
}

// Defaults returns the tuning built from each package's defaults.
func Defaults() Tuning {
	return Tuning{
		Player:   player.DefaultConfig(),
		Round:    sword.DefaultRoundConfig(),
		Spawner:  sword.DefaultSpawnerConfig(),
		Block:    sword.DefaultBlockConfig(),
		Wave:     sword.DefaultWaveConfig(),
		Arena:    world.DefaultConfig(),
		Enemy:    entity.DefaultEnemyConfig(),
		Party:    entity.DefaultPartyConfig(),
		Lasso:    lasso.DefaultConfig(),
		Features: Features{SwordWave: true, WordLasso: true},
		Briefing: Briefing{
			Messages: []string{
				"The winter spirits have scrambled the words of the valley.",
				"Slice each word: attack if its label is right, cast if it is wrong.",
			},
			MessageDuration: 3,
		},
	}
}

// Parse overlays a YAML document on the defaults and validates the result.
// Keys missing from the document keep their default values.
func Parse(content []byte) (Tuning, error) {
	t := Defaults()
	if err := t.overlay(content); err != nil {
		return Tuning{}, err
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("invalid tuning: %w", err)
	}
	return t, nil
}

// Load reads the embedded tuning and, when path is not empty, overlays the
// file at path on top of it.
func Load(path string) (Tuning, error) {
	t := Defaults()
	if err := t.overlay(data.Tuning()); err != nil {
		return Tuning{}, fmt.Errorf("embedded tuning: %w", err)
	}

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Tuning{}, fmt.Errorf("failed to read tuning file %s: %w", path, err)
		}
		if err := t.overlay(content); err != nil {
			return Tuning{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("invalid tuning: %w", err)
	}
	return t, nil
}

func (t *Tuning) overlay(content []byte) error {
	if err := yaml.Unmarshal(content, t); err != nil {
		return fmt.Errorf("failed to parse tuning YAML: %w", err)
	}
	return nil
}

// LassoConfig returns the lasso settings with the undo feature flag applied.
func (t Tuning) LassoConfig() lasso.Config {
	cfg := t.Lasso
	cfg.UndoEnabled = cfg.UndoEnabled || t.Features.LassoUndo
	return cfg
}

// Marshal renders the tuning as YAML.
func (t Tuning) Marshal() ([]byte, error) {
	return yaml.Marshal(t)
}

// Validate checks that the tuning can drive a game.
func (t *Tuning) Validate() error {
	p := t.Player
	if p.Speed <= 0 {
		return fmt.Errorf("player.speed must be positive, got %v", p.Speed)
	}
	if p.MaxSlipDuration <= 0 {
		return fmt.Errorf("player.maxSlipDuration must be positive, got %v", p.MaxSlipDuration)
	}
	if p.MaxSlipSpeedMultiplier < 1 {
		return fmt.Errorf("player.maxSlipSpeedMultiplier must be at least 1, got %v", p.MaxSlipSpeedMultiplier)
	}
	if p.PushCooldown < 0 || p.TripCooldown < 0 {
		return fmt.Errorf("player cooldowns cannot be negative")
	}

	r := t.Round
	if r.SentencesPerRound <= 0 {
		return fmt.Errorf("round.sentencesPerRound must be at least 1, got %d", r.SentencesPerRound)
	}
	if r.MinDifficulty > r.MaxDifficulty {
		return fmt.Errorf("round.minDifficulty %d exceeds maxDifficulty %d", r.MinDifficulty, r.MaxDifficulty)
	}
	if r.MaxEnergy <= 0 || r.MaxHealth <= 0 {
		return fmt.Errorf("round.maxEnergy and round.maxHealth must be positive")
	}
	if r.TimeLimit < 0 {
		return fmt.Errorf("round.timeLimit cannot be negative, got %v", r.TimeLimit)
	}

	s := t.Spawner
	if s.SpawnInterval <= 0 {
		return fmt.Errorf("spawner.spawnInterval must be positive, got %v", s.SpawnInterval)
	}
	if s.LeftSpeedRange[0] > s.LeftSpeedRange[1] || s.UpSpeedRange[0] > s.UpSpeedRange[1] {
		return fmt.Errorf("spawner speed ranges must be [min, max]")
	}

	b := t.Block
	if b.Lifetime <= 0 || b.FadeDuration < 0 {
		return fmt.Errorf("block.lifetime must be positive and block.fadeDuration non-negative")
	}
	if b.MinBounds.X() >= b.MaxBounds.X() || b.MinBounds.Y() >= b.MaxBounds.Y() {
		return fmt.Errorf("block.minBounds must be below block.maxBounds")
	}

	w := t.Wave
	if w.Speed <= 0 || w.Range <= 0 || w.EnergyCost < 0 {
		return fmt.Errorf("wave.speed and wave.range must be positive, wave.energyCost non-negative")
	}

	a := t.Arena
	if a.Width < 8 || a.Height < 8 {
		return fmt.Errorf("arena must be at least 8x8, got %dx%d", a.Width, a.Height)
	}
	if a.PatchMinSize > a.PatchMaxSize {
		return fmt.Errorf("arena.patchMinSize %d exceeds patchMaxSize %d", a.PatchMinSize, a.PatchMaxSize)
	}

	e := t.Enemy
	if e.MoveDuration <= 0 || e.PauseDuration < 0 {
		return fmt.Errorf("enemy.moveDuration must be positive and enemy.pauseDuration non-negative")
	}
	if e.Count < 0 {
		return fmt.Errorf("enemy.count cannot be negative, got %d", e.Count)
	}

	if t.Party.FollowSpeed <= 0 {
		return fmt.Errorf("party.followSpeed must be positive, got %v", t.Party.FollowSpeed)
	}

	if t.Lasso.SuccessDelay < 0 || t.Lasso.FailDelay < 0 {
		return fmt.Errorf("lasso delays cannot be negative")
	}

	if !t.Features.SwordWave && !t.Features.WordLasso {
		return fmt.Errorf("at least one of features.swordWave and features.wordLasso must be enabled")
	}

	if len(t.Briefing.Messages) > 0 && t.Briefing.MessageDuration <= 0 {
		return fmt.Errorf("briefing.messageDuration must be positive, got %v", t.Briefing.MessageDuration)
	}

	return nil
}
