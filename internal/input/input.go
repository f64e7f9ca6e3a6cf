// Package input defines the abstract input surface the simulation reads.
// Backends (the tcell keyboard, scripted test input) translate their own
// events into a State once per tick.
package input

import "github.com/samdwyer/linguaquest/internal/geom"

// Action is a discrete input the game reacts to.
type Action int

const (
	ActionAttack Action = iota
	ActionSpell1
	ActionSpell2
	ActionInteract
	ActionSkip
	ActionPause
	ActionQuit
	ActionReturn
	ActionRestart
	ActionUndo
	ActionNext
	ActionPrev
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionSpell1:
		return "spell1"
	case ActionSpell2:
		return "spell2"
	case ActionInteract:
		return "interact"
	case ActionSkip:
		return "skip"
	case ActionPause:
		return "pause"
	case ActionQuit:
		return "quit"
	case ActionReturn:
		return "return"
	case ActionRestart:
		return "restart"
	case ActionUndo:
		return "undo"
	case ActionNext:
		return "next"
	case ActionPrev:
		return "prev"
	default:
		return "unknown"
	}
}

// Axis names.
const (
	AxisHorizontal = "Horizontal"
	AxisVertical   = "Vertical"
)

// Source is queried by the simulation each tick.
type Source interface {
	// IsActionPressed reports whether the action was pressed this tick.
	IsActionPressed(a Action) bool
	// Axis returns the axis value in [-1, 1].
	Axis(name string) float64
}

// Direction returns the normalized movement vector of a source.
func Direction(src Source) geom.Vec {
	if src == nil {
		return geom.Zero
	}
	return geom.Normalize(geom.V(src.Axis(AxisHorizontal), src.Axis(AxisVertical)))
}

// None is a source with nothing pressed.
var None Source = noInput{}

type noInput struct{}

func (noInput) IsActionPressed(Action) bool { return false }
func (noInput) Axis(string) float64         { return 0 }

// State is a mutable per-tick snapshot implementing Source.
type State struct {
	pressed map[Action]bool
	axes    map[string]float64
}

// NewState creates an empty snapshot.
func NewState() *State {
	return &State{
		pressed: make(map[Action]bool),
		axes:    make(map[string]float64),
	}
}

// Press marks an action as pressed for the current tick.
func (s *State) Press(a Action) {
	s.pressed[a] = true
}

// SetAxis sets an axis value, clamped to [-1, 1].
func (s *State) SetAxis(name string, v float64) {
	s.axes[name] = geom.Clamp(v, -1, 1)
}

// SetMove sets both movement axes at once.
func (s *State) SetMove(x, y float64) {
	s.SetAxis(AxisHorizontal, x)
	s.SetAxis(AxisVertical, y)
}

// IsActionPressed implements Source.
func (s *State) IsActionPressed(a Action) bool {
	return s.pressed[a]
}

// Axis implements Source.
func (s *State) Axis(name string) float64 {
	return s.axes[name]
}

// EndTick clears pressed actions. Axes persist until changed.
func (s *State) EndTick() {
	clear(s.pressed)
}

// Reset clears actions and axes.
func (s *State) Reset() {
	clear(s.pressed)
	clear(s.axes)
}
