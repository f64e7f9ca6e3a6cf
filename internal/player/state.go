// Package player implements the player's locomotion/status state machine.
package player

// Status is the player's current locomotion mode.
type Status int

const (
	// StatusWalking is normal input-driven movement.
	StatusWalking Status = iota
	// StatusAttacking is the fixed-length sword swing; movement is locked.
	StatusAttacking
	// StatusInteracting suppresses movement and input (e.g. raising an item).
	StatusInteracting
	// StatusSlipping moves along an imposed direction that input can only steer.
	StatusSlipping
	// StatusFalling is the post-trip stumble at reduced speed.
	StatusFalling
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusWalking:
		return "walk"
	case StatusAttacking:
		return "attack"
	case StatusInteracting:
		return "interact"
	case StatusSlipping:
		return "slip"
	case StatusFalling:
		return "fall"
	default:
		return "unknown"
	}
}

// Effects are the presentation flags a status implies.
type Effects struct {
	TrailEmitting     bool // Slip trail lines
	FootprintsEnabled bool // Footprint decal stamping
}

// effectsFor returns the flags applied on entering s.
func effectsFor(s Status) Effects {
	switch s {
	case StatusSlipping:
		return Effects{TrailEmitting: true, FootprintsEnabled: false}
	default:
		// Walking and every other state: no trail, footprints stay on so old
		// prints can fade out (they only stamp while moving).
		return Effects{TrailEmitting: false, FootprintsEnabled: true}
	}
}

// StatusChange is published whenever the status changes.
type StatusChange struct {
	From, To Status
}

// ActionKind identifies an action the player performed.
type ActionKind int

const (
	ActionSwing ActionKind = iota
	ActionFireball
	ActionLightning
)

// String returns the action name.
func (k ActionKind) String() string {
	switch k {
	case ActionSwing:
		return "swing"
	case ActionFireball:
		return "fireball"
	case ActionLightning:
		return "lightning"
	default:
		return "unknown"
	}
}
