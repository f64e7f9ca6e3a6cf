// Package game wires the simulation packages into a playable session and
// hosts it in the terminal.
package game

// Scene is what the session is currently showing.
type Scene int

const (
	// SceneBriefing shows the intro messages.
	SceneBriefing Scene = iota
	// SceneSword is the sword-wave word classification round.
	SceneSword
	// SceneLasso is the word-order lasso puzzle.
	SceneLasso
	// SceneEnded is the end screen of the last mini-game.
	SceneEnded
)

// String returns a human-readable scene name.
func (s Scene) String() string {
	switch s {
	case SceneBriefing:
		return "briefing"
	case SceneSword:
		return "sword"
	case SceneLasso:
		return "lasso"
	case SceneEnded:
		return "ended"
	default:
		return "unknown"
	}
}
