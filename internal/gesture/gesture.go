package gesture

import (
	"fmt"
	"strings"
)

// Gesture is the classified hand shape for one frame.
type Gesture int

const (
	// Unknown means no hand, or a pose that is not a move.
	Unknown Gesture = iota
	Rock
	Paper
	Scissors
)

var gestureNames = [...]string{
	Unknown:  "Unknown",
	Rock:     "Rock",
	Paper:    "Paper",
	Scissors: "Scissors",
}

// String returns the display name of the gesture.
func (g Gesture) String() string {
	if !g.Valid() {
		return fmt.Sprintf("Gesture(%d)", int(g))
	}
	return gestureNames[g]
}

// Valid reports whether g is one of the declared gestures.
func (g Gesture) Valid() bool {
	return g >= Unknown && g <= Scissors
}

// IsMove reports whether g is Rock, Paper or Scissors.
func (g Gesture) IsMove() bool {
	return g == Rock || g == Paper || g == Scissors
}

// Move converts g to a Move. It panics if g is not a move.
func (g Gesture) Move() Move {
	if !g.IsMove() {
		panic(fmt.Sprintf("gesture: %v is not a move", g))
	}
	return Move(g)
}

// MarshalText encodes the gesture by name.
func (g Gesture) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid gesture %d", int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText decodes a gesture name.
func (g *Gesture) UnmarshalText(text []byte) error {
	parsed, err := ParseGesture(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseGesture parses a gesture name, ignoring case.
func ParseGesture(s string) (Gesture, error) {
	for i, name := range gestureNames {
		if strings.EqualFold(s, name) {
			return Gesture(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown gesture %q", s)
}

// Move is a committed Rock, Paper or Scissors, for either side.
type Move int

// Moves lists every playable move.
var Moves = [...]Move{MoveRock, MovePaper, MoveScissors}

const (
	MoveRock     = Move(Rock)
	MovePaper    = Move(Paper)
	MoveScissors = Move(Scissors)
)

// Valid reports whether m is a playable move.
func (m Move) Valid() bool {
	return Gesture(m).IsMove()
}

// String returns the display name of the move.
func (m Move) String() string {
	return Gesture(m).String()
}

// Beats reports whether m wins against other.
// Rock beats Scissors, Scissors beats Paper, Paper beats Rock.
func (m Move) Beats(other Move) bool {
	switch m {
	case MoveRock:
		return other == MoveScissors
	case MoveScissors:
		return other == MovePaper
	case MovePaper:
		return other == MoveRock
	}
	return false
}

// MarshalText encodes the move by name.
func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid move %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a move name.
func (m *Move) UnmarshalText(text []byte) error {
	g, err := ParseGesture(string(text))
	if err != nil {
		return err
	}
	if !g.IsMove() {
		return fmt.Errorf("%q is not a move", string(text))
	}
	*m = Move(g)
	return nil
}
