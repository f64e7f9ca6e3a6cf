// Package save persists player records (best score, outcome tallies)
// across sessions.
package save

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/samdwyer/linguaquest/internal/sword"
)

// AppName is the gdata application name.
const AppName = "linguaquest"

const (
	recordsObject   = "records"
	recordsProperty = "player"
)

// Records are the persisted tallies.
type Records struct {
	BestScore   int    `yaml:"bestScore"`
	Plays       int    `yaml:"plays"`
	Wins        int    `yaml:"wins"`
	PerfectWins int    `yaml:"perfectWins"`
	Losses      int    `yaml:"losses"`
	LastOutcome string `yaml:"lastOutcome"`
	LastScore   int    `yaml:"lastScore"`
	LassoSolved int    `yaml:"lassoSolved"`
}

// Store holds records in memory and writes them through gdata. With a nil
// manager it keeps records in memory only.
type Store struct {
	manager *gdata.Manager
	records Records
}

// Open creates a gdata manager for the app and loads the stored records.
// If gdata cannot be opened the store still works, in memory only.
func Open() (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return NewStore(nil), fmt.Errorf("failed to open save data: %w", err)
	}
	return NewStore(m), nil
}

// NewStore creates a store over an existing manager (nil for memory only)
// and loads whatever is saved.
func NewStore(m *gdata.Manager) *Store {
	s := &Store{manager: m}
	if err := s.Load(); err != nil {
		log.Printf("[Save] Warning: %v (starting fresh)", err)
	}
	return s
}

// Load reads the records. Missing data leaves fresh records.
func (s *Store) Load() error {
	s.records = Records{}
	if s.manager == nil {
		return nil
	}
	if !s.manager.ObjectPropExists(recordsObject, recordsProperty) {
		return nil
	}

	content, err := s.manager.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	var loaded Records
	if err := yaml.Unmarshal(content, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal records: %w", err)
	}
	s.records = loaded
	return nil
}

// Save writes the records. A memory-only store does nothing.
func (s *Store) Save() error {
	if s.manager == nil {
		return nil
	}

	content, err := yaml.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := s.manager.SaveObjectProp(recordsObject, recordsProperty, content); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// RecordRound tallies a finished round and reports whether the score is a
// new best.
func (s *Store) RecordRound(outcome sword.Outcome, score int) bool {
	s.records.Plays++
	switch outcome {
	case sword.OutcomePerfectWin:
		s.records.Wins++
		s.records.PerfectWins++
	case sword.OutcomeWin:
		s.records.Wins++
	case sword.OutcomeLose:
		s.records.Losses++
	}
	s.records.LastOutcome = outcome.String()
	s.records.LastScore = score

	best := s.records.Plays == 1 || score > s.records.BestScore
	if best {
		s.records.BestScore = score
	}
	return best
}

// RecordLasso adds solved lasso questions.
func (s *Store) RecordLasso(solved int) {
	if solved > 0 {
		s.records.LassoSolved += solved
	}
}

// Records returns a copy of the current records.
func (s *Store) Records() Records {
	return s.records
}

// Persistent reports whether records are written to disk.
func (s *Store) Persistent() bool {
	return s.manager != nil
}
