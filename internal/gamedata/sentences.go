// Package gamedata loads the sentence packs that feed the word mini-games.
package gamedata

import (
	"errors"
	"io/fs"
	"log"
)

// Entry is one word of a sentence with the label shown to the player.
type Entry struct {
	Word           string `json:"word"`           // Word as displayed on the block
	ShownLabel     string `json:"shownLabel"`     // Label displayed next to the word (e.g., "Noun")
	IsLabelCorrect bool   `json:"isLabelCorrect"` // Whether ShownLabel is the true label of Word
}

// Sentence is a sentence record from a pack.
type Sentence struct {
	GUID       string  `json:"guid"`
	Sentence   string  `json:"sentence"`
	Topic      string  `json:"topic"`
	Subtopic   string  `json:"subtopic"`
	Difficulty int     `json:"difficulty"`
	Entries    []Entry `json:"entries"`
}

// Key identifies the sentence for repeat avoidance.
// Records without a guid fall back to their text.
func (s *Sentence) Key() string {
	if s.GUID != "" {
		return s.GUID
	}
	return s.Sentence
}

// Pack is the top-level structure of a sentence pack file.
type Pack struct {
	PackName  string     `json:"packName"`
	Language  string     `json:"language"`
	Sentences []Sentence `json:"sentences"`
}

// ReadPack reads a pack and reports any read or parse error.
func ReadPack(fsys fs.FS, filename string) (Pack, error) {
	return Load[Pack](fsys, filename)
}

// LoadPack reads a pack, degrading to an empty pack when the file is
// missing or malformed. Failures are logged, never returned.
func LoadPack(fsys fs.FS, filename string) Pack {
	pack, err := ReadPack(fsys, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("[SentenceLoader] File not found: %s", filename)
		} else {
			log.Printf("[SentenceLoader] Error loading %s: %v", filename, err)
		}
		return Pack{}
	}

	if len(pack.Sentences) == 0 {
		log.Printf("[SentenceLoader] No sentences found in %s", filename)
		return pack
	}

	log.Printf("[SentenceLoader] Loaded %d sentences from %s (Pack: %s)", len(pack.Sentences), filename, pack.PackName)
	return pack
}

// TotalEntries returns the number of word entries across sentences.
func TotalEntries(sentences []Sentence) int {
	total := 0
	for i := range sentences {
		total += len(sentences[i].Entries)
	}
	return total
}
