// Package round implements the Rock-Paper-Scissors round state machine.
//
// An Engine consumes one classified gesture per tick. A change of gesture
// commits the player's move and draws the opponent's; the verdict is resolved
// in the same tick and the round then waits for an advance signal (a key
// press or an elapsed Countdown) before the next one can start.
package round

import (
	"fmt"

	"github.com/ayusman/rockpaper/internal/gesture"
)

// Phase is the round state.
type Phase int

const (
	// Idle: no opponent move committed, watching for a player gesture.
	Idle Phase = iota
	// Locked: the opponent move is drawn and the verdict is due.
	Locked
	// AwaitingAdvance: the verdict is shown until the advance signal fires.
	AwaitingAdvance
)

var phaseNames = [...]string{
	Idle:            "idle",
	Locked:          "locked",
	AwaitingAdvance: "awaiting_advance",
}

func (p Phase) String() string {
	if p < Idle || p > AwaitingAdvance {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Verdict is the outcome of a round from the player's side.
type Verdict int

const (
	Draw Verdict = iota
	PlayerWins
	OpponentWins
)

// Resolve decides a round.
func Resolve(player, opponent gesture.Move) Verdict {
	if !player.Valid() || !opponent.Valid() {
		panic(fmt.Sprintf("round: cannot resolve %v against %v", player, opponent))
	}

	switch {
	case player == opponent:
		return Draw
	case player.Beats(opponent):
		return PlayerWins
	default:
		return OpponentWins
	}
}

// Text is the message shown to the player.
func (v Verdict) Text() string {
	switch v {
	case Draw:
		return "Draw!"
	case PlayerWins:
		return "You Win!"
	case OpponentWins:
		return "You Lose!"
	}
	return ""
}

// Relation is the player-versus-opponent symbol: "==", ">" or "<".
func (v Verdict) Relation() string {
	switch v {
	case Draw:
		return "=="
	case PlayerWins:
		return ">"
	case OpponentWins:
		return "<"
	}
	return ""
}

func (v Verdict) String() string {
	switch v {
	case Draw:
		return "draw"
	case PlayerWins:
		return "player_wins"
	case OpponentWins:
		return "opponent_wins"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// MarshalText encodes the verdict by name.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Score is the running match score.
type Score struct {
	Player   int `json:"player"`
	Opponent int `json:"opponent"`
}

// DisplayState is a read-only snapshot of the round for renderers.
// Pointer fields are nil when unset and never alias engine state.
type DisplayState struct {
	Phase    Phase         `json:"phase"`
	Opponent *gesture.Move `json:"opponent,omitempty"`
	Player   *gesture.Move `json:"player,omitempty"`
	Verdict  *Verdict      `json:"verdict,omitempty"`
	Score    Score         `json:"score"`

	// Round counts completed rounds in this match.
	Round int `json:"round"`
}

// ResultText is the verdict message, or "" while no verdict stands.
func (d DisplayState) ResultText() string {
	if d.Verdict == nil {
		return ""
	}
	return d.Verdict.Text()
}
