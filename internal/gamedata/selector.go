package gamedata

import (
	"math/rand"
	"strings"
)

// Selector picks round sets from a pool of sentences.
type Selector struct {
	sentences []Sentence
	rng       *rand.Rand
	recent    map[string]bool // Keys of the previous pick, avoided by the next one
}

// NewSelector creates a selector over the given sentences.
func NewSelector(sentences []Sentence, rng *rand.Rand) *Selector {
	return &Selector{
		sentences: sentences,
		rng:       rng,
		recent:    make(map[string]bool),
	}
}

// Matching returns sentences with entries whose topic matches (empty topic
// matches all, case-insensitive) and whose difficulty is in [minDifficulty, maxDifficulty].
func (s *Selector) Matching(topic string, minDifficulty, maxDifficulty int) []Sentence {
	var out []Sentence
	for _, sen := range s.sentences {
		if len(sen.Entries) == 0 {
			continue
		}
		if topic != "" && !strings.EqualFold(sen.Topic, topic) {
			continue
		}
		if sen.Difficulty < minDifficulty || sen.Difficulty > maxDifficulty {
			continue
		}
		out = append(out, sen)
	}
	return out
}

// PickSet returns up to count distinct sentences in random order.
// With avoidRepeats, sentences from the previous pick are only used when
// there are not enough fresh ones to fill the set.
func (s *Selector) PickSet(count int, topic string, minDifficulty, maxDifficulty int, avoidRepeats bool) []Sentence {
	if count <= 0 {
		return nil
	}

	candidates := s.Matching(topic, minDifficulty, maxDifficulty)
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	var fresh, repeats []Sentence
	seen := make(map[string]bool)
	for _, c := range candidates {
		key := c.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		if avoidRepeats && s.recent[key] {
			repeats = append(repeats, c)
		} else {
			fresh = append(fresh, c)
		}
	}

	picked := append(fresh, repeats...)
	if len(picked) > count {
		picked = picked[:count]
	}

	s.recent = make(map[string]bool, len(picked))
	for i := range picked {
		s.recent[picked[i].Key()] = true
	}
	return picked
}
