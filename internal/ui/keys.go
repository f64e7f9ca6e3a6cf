package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/linguaquest/internal/input"
)

// DefaultHoldWindow is how long a movement key counts as held after its
// last press or auto-repeat.
const DefaultHoldWindow = 150 * time.Millisecond

// KeyMapper translates tcell key events into an input.State. Terminals
// report no key releases, so a movement axis stays held until no press or
// repeat has arrived for the hold window.
type KeyMapper struct {
	state      *input.State
	holdWindow time.Duration

	x, y         float64
	xSeen, ySeen time.Time
}

// NewKeyMapper creates a mapper with the given hold window.
func NewKeyMapper(hold time.Duration) *KeyMapper {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &KeyMapper{
		state:      input.NewState(),
		holdWindow: hold,
	}
}

var runeActions = map[rune]input.Action{
	' ': input.ActionAttack,
	'j': input.ActionAttack,
	'k': input.ActionSpell1,
	'l': input.ActionSpell2,
	'f': input.ActionInteract,
	'p': input.ActionPause,
	'q': input.ActionQuit,
	'e': input.ActionReturn,
	'r': input.ActionRestart,
	'u': input.ActionUndo,
	']': input.ActionNext,
	'[': input.ActionPrev,
}

var keyActions = map[tcell.Key]input.Action{
	tcell.KeyEnter:      input.ActionSkip,
	tcell.KeyTab:        input.ActionNext,
	tcell.KeyBacktab:    input.ActionPrev,
	tcell.KeyBackspace:  input.ActionUndo,
	tcell.KeyBackspace2: input.ActionUndo,
}

// HandleKey records a key press. It returns true for the hard-quit keys
// (Escape, Ctrl-C), which the host handles itself.
func (k *KeyMapper) HandleKey(ev *tcell.EventKey, now time.Time) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		k.setY(1, now)
	case tcell.KeyDown:
		k.setY(-1, now)
	case tcell.KeyLeft:
		k.setX(-1, now)
	case tcell.KeyRight:
		k.setX(1, now)
	case tcell.KeyRune:
		k.handleRune(ev.Rune(), now)
	default:
		if a, ok := keyActions[ev.Key()]; ok {
			k.state.Press(a)
		}
	}
	return false
}

func (k *KeyMapper) handleRune(r rune, now time.Time) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	switch r {
	case 'w':
		k.setY(1, now)
	case 's':
		k.setY(-1, now)
	case 'a':
		k.setX(-1, now)
	case 'd':
		k.setX(1, now)
	default:
		if a, ok := runeActions[r]; ok {
			k.state.Press(a)
		}
	}
}

func (k *KeyMapper) setX(v float64, now time.Time) {
	k.x, k.xSeen = v, now
}

func (k *KeyMapper) setY(v float64, now time.Time) {
	k.y, k.ySeen = v, now
}

// Frame releases expired axes and returns the snapshot for this tick.
func (k *KeyMapper) Frame(now time.Time) *input.State {
	if now.Sub(k.xSeen) > k.holdWindow {
		k.x = 0
	}
	if now.Sub(k.ySeen) > k.holdWindow {
		k.y = 0
	}
	k.state.SetMove(k.x, k.y)
	return k.state
}

// EndTick clears the actions pressed during the tick.
func (k *KeyMapper) EndTick() {
	k.state.EndTick()
}
