package game

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible arena
	// generation and spawn order. A seed of 0 means a random seed will be
	// generated.
	Seed int64

	// TuningPath is an optional YAML file overlaid on the embedded tuning.
	TuningPath string

	// SentenceDir replaces the embedded sentence packs when set.
	SentenceDir string

	// SentenceFiles limits loading to these pack files. Empty loads every
	// *.json pack.
	SentenceFiles []string
}
