package app

import (
	"strings"

	"github.com/ayusman/rockpaper/internal/detector"
	"github.com/ayusman/rockpaper/internal/gesture"
	"github.com/ayusman/rockpaper/internal/hook"
	"github.com/ayusman/rockpaper/internal/round"
)

// Game holds one match and plays it a tick at a time. It is not safe for
// concurrent use.
type Game struct {
	matchID   string
	engine    *round.Engine
	countdown *round.Countdown
	settings  Settings
	tick      uint64
}

// NewGame creates a match with a fresh engine.
func NewGame(matchID string, source round.MoveSource, settings Settings) *Game {
	return &Game{
		matchID:   matchID,
		engine:    round.NewEngine(source),
		countdown: round.NewCountdown(settings.CountdownTicks),
		settings:  settings,
	}
}

// Apply switches mode and countdown length without touching the score.
func (g *Game) Apply(settings Settings) {
	if settings.CountdownTicks != g.settings.CountdownTicks {
		g.countdown = round.NewCountdown(settings.CountdownTicks)
	}
	g.settings = settings
}

// Step runs one tick. requested is a pending manual advance. The returned
// request is non-nil when this tick decided a round.
func (g *Game) Step(obs detector.Observation, requested bool) (Frame, *hook.Request, error) {
	observed, err := gesture.ClassifyHands(obs.Hands)
	if err != nil {
		return Frame{}, nil, err
	}

	prev := g.engine.Phase()
	rounds := g.engine.Snapshot().Round

	advance := requested || obs.Advance
	if g.settings.Mode == round.AdvanceTimed {
		if g.countdown.Tick(prev) {
			advance = true
		}
	}

	state := g.engine.Advance(observed, advance)
	g.tick++

	f := Frame{
		MatchID:    g.matchID,
		Tick:       g.tick,
		Observed:   observed,
		HasHand:    obs.HasHand(),
		Display:    state,
		Mode:       g.settings.Mode,
		ShowPlayer: g.settings.ShowPlayerMove,
		Result:     state.ResultText(),
	}
	if g.settings.Mode == round.AdvanceTimed && state.Phase == round.AwaitingAdvance {
		f.AdvanceIn = g.countdown.Remaining()
		if f.AdvanceIn == 0 {
			// The round was decided this tick; the countdown starts next tick.
			f.AdvanceIn = g.countdown.Ticks()
		}
	}
	if !f.ShowPlayer {
		f.Display.Player = nil
	}
	f.Status = statusFor(f)

	if state.Round == rounds {
		return f, nil, nil
	}
	return f, roundEvent(g.matchID, state), nil
}

// MatchID returns the match identifier stamped on every frame.
func (g *Game) MatchID() string {
	return g.matchID
}

// Ticks returns how many ticks have been played.
func (g *Game) Ticks() uint64 {
	return g.tick
}

// roundEvent builds the hook request for a decided round.
func roundEvent(matchID string, s round.DisplayState) *hook.Request {
	req := &hook.Request{
		Event:   hook.EventRoundComplete,
		MatchID: matchID,
		Round:   s.Round,
		Score:   hook.Score{Player: s.Score.Player, Opponent: s.Score.Opponent},
		Verdict: s.ResultText(),
	}
	if s.Player != nil {
		req.Player = strings.ToLower(s.Player.String())
	}
	if s.Opponent != nil {
		req.Opponent = strings.ToLower(s.Opponent.String())
	}
	return req
}
