// Package sword implements the sword-wave word classification mini-game:
// the round controller, the block spawn queue, word blocks and the waves
// the player launches at them.
package sword

// Outcome is the terminal result of a round.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomePerfectWin
	OutcomeLose
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWin:
		return "win"
	case OutcomePerfectWin:
		return "perfect"
	case OutcomeLose:
		return "lose"
	default:
		return "unknown"
	}
}

// IsWin reports whether the outcome counts as a win.
func (o Outcome) IsWin() bool {
	return o == OutcomeWin || o == OutcomePerfectWin
}

// DecideOutcome maps a final score onto an outcome. The perfect threshold
// is checked first.
func DecideOutcome(score, winScore, perfectWinScore int) Outcome {
	switch {
	case score >= perfectWinScore:
		return OutcomePerfectWin
	case score >= winScore:
		return OutcomeWin
	default:
		return OutcomeLose
	}
}

// Command is a post-game choice on the end screen.
type Command int

const (
	CommandQuit Command = iota
	CommandReturn
	CommandRestart
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	case CommandReturn:
		return "return"
	case CommandRestart:
		return "restart"
	default:
		return "unknown"
	}
}
