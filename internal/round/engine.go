package round

import (
	"fmt"

	"github.com/ayusman/rockpaper/internal/gesture"
)

// Engine tracks one match. It is not safe for concurrent use: a single
// goroutine must own it and hand DisplayState copies to everyone else.
type Engine struct {
	source MoveSource

	phase    Phase
	previous gesture.Gesture // edge detector; Unknown means nothing remembered
	player   gesture.Move
	opponent gesture.Move
	hasMove  bool // player and opponent are committed
	verdict  Verdict
	decided  bool
	score    Score
	rounds   int
}

// NewEngine creates an idle engine drawing opponent moves from source.
func NewEngine(source MoveSource) *Engine {
	if source == nil {
		panic("round: nil move source")
	}
	return &Engine{source: source}
}

// Advance processes one tick.
//
// observed is the gesture classified this tick (Unknown for no hand). advance
// releases a finished round back to Idle and is ignored in any other phase.
func (e *Engine) Advance(observed gesture.Gesture, advance bool) DisplayState {
	if !observed.Valid() {
		panic(fmt.Sprintf("round: invalid gesture %d", int(observed)))
	}

	if e.phase == AwaitingAdvance {
		if advance {
			e.reset()
		}
		return e.Snapshot()
	}

	if observed == gesture.Unknown {
		e.previous = gesture.Unknown
		if e.phase == Locked {
			e.reset()
		}
		return e.Snapshot()
	}

	if observed != e.previous {
		e.opponent = e.source.Next()
		if !e.opponent.Valid() {
			panic(fmt.Sprintf("round: move source returned invalid move %d", int(e.opponent)))
		}
		e.previous = observed
		e.player = observed.Move()
		e.hasMove = true
		e.phase = Locked
	}

	if e.phase == Locked && e.hasMove {
		e.verdict = Resolve(e.player, e.opponent)
		e.decided = true
		switch e.verdict {
		case PlayerWins:
			e.score.Player++
		case OpponentWins:
			e.score.Opponent++
		}
		e.rounds++
		e.phase = AwaitingAdvance
	}

	return e.Snapshot()
}

// reset returns to Idle and clears everything tied to the current round.
// The remembered gesture survives, so a held pose does not start a new round.
func (e *Engine) reset() {
	e.phase = Idle
	e.hasMove = false
	e.decided = false
}

// Snapshot returns the current state without advancing.
func (e *Engine) Snapshot() DisplayState {
	s := DisplayState{
		Phase: e.phase,
		Score: e.score,
		Round: e.rounds,
	}
	if e.hasMove {
		player, opponent := e.player, e.opponent
		s.Player = &player
		s.Opponent = &opponent
	}
	if e.decided {
		verdict := e.verdict
		s.Verdict = &verdict
	}
	return s
}

// Phase returns the current round phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Score returns the running score.
func (e *Engine) Score() Score {
	return e.score
}
