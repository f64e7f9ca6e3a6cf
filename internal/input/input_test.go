package input

import (
	"math"
	"testing"
)

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionAttack, "attack"},
		{ActionSpell1, "spell1"},
		{ActionSkip, "skip"},
		{ActionRestart, "restart"},
		{ActionUndo, "undo"},
		{Action(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("Action(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestStatePressClearsOnEndTick(t *testing.T) {
	s := NewState()
	s.Press(ActionAttack)
	s.SetMove(1, 0)

	if !s.IsActionPressed(ActionAttack) {
		t.Fatal("expected attack pressed")
	}
	s.EndTick()
	if s.IsActionPressed(ActionAttack) {
		t.Error("expected attack cleared after EndTick")
	}
	if s.Axis(AxisHorizontal) != 1 {
		t.Errorf("axis should persist across ticks, got %f", s.Axis(AxisHorizontal))
	}
}

func TestSetAxisClamps(t *testing.T) {
	s := NewState()
	s.SetAxis(AxisVertical, -4)
	if got := s.Axis(AxisVertical); got != -1 {
		t.Errorf("Axis = %f, want -1", got)
	}
}

func TestDirectionNormalizes(t *testing.T) {
	s := NewState()
	s.SetMove(1, 1)
	d := Direction(s)
	if math.Abs(d.Len()-1) > 1e-9 {
		t.Errorf("Direction length = %f, want 1", d.Len())
	}
	if got := Direction(None); got.Len() != 0 {
		t.Errorf("Direction(None) = %v, want zero", got)
	}
	if got := Direction(nil); got.Len() != 0 {
		t.Errorf("Direction(nil) = %v, want zero", got)
	}
}
