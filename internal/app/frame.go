package app

import (
	"fmt"

	"github.com/ayusman/rockpaper/internal/gesture"
	"github.com/ayusman/rockpaper/internal/round"
)

// Status lines shown under the game board.
const (
	StatusNoHand     = "No hand detected"
	StatusUnknown    = "Gesture not recognized"
	StatusReady      = "Show rock, paper or scissors"
	StatusHeld       = "Change your gesture to play again"
	StatusPressNext  = "Press Next Round to continue"
	StatusNextRoundF = "Next round in %d"
)

// Frame is one published tick: everything a renderer needs to draw the game.
type Frame struct {
	MatchID  string             `json:"match_id"`
	Tick     uint64             `json:"tick"`
	Observed gesture.Gesture    `json:"observed"`
	HasHand  bool               `json:"has_hand"`
	Display  round.DisplayState `json:"display"`
	Mode     round.AdvanceMode  `json:"mode"`
	// AdvanceIn counts down the ticks left in a timed round, 0 otherwise.
	AdvanceIn  int    `json:"advance_in,omitempty"`
	ShowPlayer bool   `json:"show_player"`
	Result     string `json:"result,omitempty"`
	Status     string `json:"status"`
}

// statusFor picks the status line for a tick.
func statusFor(f Frame) string {
	if f.Display.Phase == round.AwaitingAdvance {
		if f.Mode == round.AdvanceTimed && f.AdvanceIn > 0 {
			return fmt.Sprintf(StatusNextRoundF, f.AdvanceIn)
		}
		return StatusPressNext
	}

	switch {
	case !f.HasHand:
		return StatusNoHand
	case f.Observed == gesture.Unknown:
		return StatusUnknown
	case f.Display.Phase == round.Idle:
		// A recognized gesture that did not start a round is being held.
		return StatusHeld
	}
	return StatusReady
}
