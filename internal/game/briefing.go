package game

import "github.com/samdwyer/linguaquest/internal/config"

// Briefing steps through the intro messages, each shown for a fixed time
// unless skipped.
type Briefing struct {
	messages []string
	duration float64
	index    int
	timer    float64
}

// NewBriefing creates a briefing from the tuning.
func NewBriefing(cfg config.Briefing) *Briefing {
	return &Briefing{
		messages: cfg.Messages,
		duration: cfg.MessageDuration,
	}
}

// Tick advances the current message. skip moves to the next one at once.
// It returns true once every message has been shown.
func (b *Briefing) Tick(dt float64, skip bool) bool {
	if b.Done() {
		return true
	}
	b.timer += dt
	if skip || (b.duration > 0 && b.timer >= b.duration) {
		b.index++
		b.timer = 0
	}
	return b.Done()
}

// Current returns the message on screen.
func (b *Briefing) Current() (string, bool) {
	if b.Done() {
		return "", false
	}
	return b.messages[b.index], true
}

// Done reports whether the briefing is over.
func (b *Briefing) Done() bool {
	return b.index >= len(b.messages)
}

// Reset starts the briefing again.
func (b *Briefing) Reset() {
	b.index = 0
	b.timer = 0
}
