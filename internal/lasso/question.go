// Package lasso implements the word-ordering puzzle: the player collects
// shuffled sentence parts in the right order.
package lasso

import (
	"fmt"
	"io/fs"
	"log"

	"github.com/samdwyer/linguaquest/internal/gamedata"
)

// Question is one sentence split into parts.
type Question struct {
	WordParts           []string `json:"wordParts"`
	CorrectOrderIndices []int    `json:"correctOrderIndices"`
}

// QuestionSet is the on-disk format of a question file.
type QuestionSet struct {
	Questions []Question `json:"questions"`
}

// Validate checks that the order is a permutation of the part indices.
func (q Question) Validate() error {
	if len(q.WordParts) == 0 {
		return fmt.Errorf("question has no word parts")
	}
	if len(q.CorrectOrderIndices) != len(q.WordParts) {
		return fmt.Errorf("order has %d indices for %d parts", len(q.CorrectOrderIndices), len(q.WordParts))
	}
	seen := make([]bool, len(q.WordParts))
	for _, idx := range q.CorrectOrderIndices {
		if idx < 0 || idx >= len(q.WordParts) {
			return fmt.Errorf("index %d out of range", idx)
		}
		if seen[idx] {
			return fmt.Errorf("index %d repeated", idx)
		}
		seen[idx] = true
	}
	return nil
}

// Answer returns the parts in the correct order.
func (q Question) Answer() []string {
	out := make([]string, 0, len(q.CorrectOrderIndices))
	for _, idx := range q.CorrectOrderIndices {
		out = append(out, q.WordParts[idx])
	}
	return out
}

// LoadQuestions reads a question file and drops invalid questions.
// A missing or malformed file yields no questions.
func LoadQuestions(fsys fs.FS, filename string) []Question {
	set, err := gamedata.Load[QuestionSet](fsys, filename)
	if err != nil {
		log.Printf("[Lasso] Failed to load %s: %v", filename, err)
		return nil
	}

	valid := set.Questions[:0]
	for i, q := range set.Questions {
		if err := q.Validate(); err != nil {
			log.Printf("[Lasso] Skipping question %d in %s: %v", i, filename, err)
			continue
		}
		valid = append(valid, q)
	}
	return valid
}
