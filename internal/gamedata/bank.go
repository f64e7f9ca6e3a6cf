package gamedata

import (
	"context"
	"io/fs"
	"log"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/linguaquest/internal/telemetry"
)

// maxConcurrentLoads bounds how many pack files are read at once.
const maxConcurrentLoads = 4

// Bank holds every sentence loaded from a set of pack files.
//
// Loading may run on a background goroutine (LoadAsync); the simulation
// polls Loaded and defers anything that needs sentences until it is true.
type Bank struct {
	fsys  fs.FS
	files []string

	mu        sync.RWMutex
	loaded    bool
	sentences []Sentence
	packs     []string
}

// NewBank creates a bank reading the given files from fsys.
// With no files, every *.json at the root of fsys is loaded.
func NewBank(fsys fs.FS, files ...string) *Bank {
	return &Bank{
		fsys:  fsys,
		files: files,
	}
}

// NewLoadedBank creates an already-loaded bank from in-memory sentences.
func NewLoadedBank(sentences []Sentence) *Bank {
	return &Bank{
		loaded:    true,
		sentences: sentences,
	}
}

// Load reads all packs, blocking until done, and returns the sentence count.
// Missing or malformed packs contribute nothing.
func (b *Bank) Load(ctx context.Context) int {
	tracer := telemetry.Tracer("gamedata")
	ctx, span := tracer.Start(ctx, "bank.load")
	defer span.End()

	files := b.resolveFiles()
	packs := make([]Pack, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			packs[i] = LoadPack(b.fsys, file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("[SentenceBank] Load interrupted: %v", err)
	}

	var sentences []Sentence
	var names []string
	for _, p := range packs {
		sentences = append(sentences, p.Sentences...)
		if p.PackName != "" {
			names = append(names, p.PackName)
		}
	}

	b.mu.Lock()
	b.sentences = sentences
	b.packs = names
	b.loaded = true
	b.mu.Unlock()

	span.SetAttributes(
		attribute.Int("bank.files", len(files)),
		attribute.Int("bank.sentences", len(sentences)),
	)
	log.Printf("[SentenceBank] Total loaded: %d sentences from %d file(s).", len(sentences), len(files))
	return len(sentences)
}

// LoadAsync loads on a new goroutine and calls done with the sentence
// count once the bank is readable. done runs on the loading goroutine.
func (b *Bank) LoadAsync(ctx context.Context, done func(count int)) {
	go func() {
		n := b.Load(ctx)
		if done != nil {
			done(n)
		}
	}()
}

// Loaded reports whether a load has completed.
func (b *Bank) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loaded
}

// Sentences returns a copy of the loaded sentences.
func (b *Bank) Sentences() []Sentence {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Sentence, len(b.sentences))
	copy(out, b.sentences)
	return out
}

// PackNames returns the names of the packs that loaded.
func (b *Bank) PackNames() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.packs))
	copy(out, b.packs)
	return out
}

func (b *Bank) resolveFiles() []string {
	if len(b.files) > 0 || b.fsys == nil {
		return b.files
	}
	matches, err := fs.Glob(b.fsys, "*.json")
	if err != nil {
		log.Printf("[SentenceBank] Could not list packs: %v", err)
		return nil
	}
	return matches
}
