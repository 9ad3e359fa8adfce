package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/rockpaper/internal/detector"
	"github.com/ayusman/rockpaper/internal/gesture"
	"github.com/ayusman/rockpaper/internal/round"
)

func TestGame_StepDecidesRound(t *testing.T) {
	g := NewGame("match-1", round.NewFixedSource(gesture.MoveScissors), DefaultSettings())

	f, event, err := g.Step(detector.Frame(detector.RockLandmarks()), false)
	require.NoError(t, err)

	assert.Equal(t, "match-1", f.MatchID)
	assert.Equal(t, uint64(1), f.Tick)
	assert.Equal(t, gesture.Rock, f.Observed)
	assert.True(t, f.HasHand)
	assert.Equal(t, round.AwaitingAdvance, f.Display.Phase)
	assert.Equal(t, "You Win!", f.Result)
	assert.Equal(t, StatusPressNext, f.Status)

	require.NotNil(t, event)
	assert.Equal(t, "round_complete", event.Event)
	assert.Equal(t, "match-1", event.MatchID)
	assert.Equal(t, 1, event.Round)
	assert.Equal(t, "rock", event.Player)
	assert.Equal(t, "scissors", event.Opponent)
	assert.Equal(t, "You Win!", event.Verdict)
	assert.Equal(t, 1, event.Score.Player)
}

func TestGame_HeldGestureEmitsOneEvent(t *testing.T) {
	g := NewGame("m", round.NewFixedSource(gesture.MoveRock), DefaultSettings())

	events := 0
	for i := 0; i < 5; i++ {
		_, event, err := g.Step(detector.Frame(detector.PaperLandmarks()), false)
		require.NoError(t, err)
		if event != nil {
			events++
		}
	}
	assert.Equal(t, 1, events)

	f, _, _ := g.Step(detector.Frame(detector.PaperLandmarks()), true)
	assert.Equal(t, round.Idle, f.Display.Phase)
	assert.Equal(t, StatusHeld, f.Status)
}

func TestGame_RecordedAdvanceFlag(t *testing.T) {
	g := NewGame("m", round.NewFixedSource(gesture.MoveRock), DefaultSettings())

	g.Step(detector.Frame(detector.PaperLandmarks()), false)

	obs := detector.NoHand()
	obs.Advance = true
	f, _, err := g.Step(obs, false)
	require.NoError(t, err)
	assert.Equal(t, round.Idle, f.Display.Phase)
	assert.Equal(t, StatusNoHand, f.Status)
}

func TestGame_StatusLines(t *testing.T) {
	g := NewGame("m", round.NewFixedSource(gesture.MoveRock), DefaultSettings())

	f, _, _ := g.Step(detector.NoHand(), false)
	assert.Equal(t, StatusNoHand, f.Status)

	f, _, _ = g.Step(detector.Frame(detector.PointLandmarks()), false)
	assert.Equal(t, gesture.Unknown, f.Observed)
	assert.Equal(t, StatusUnknown, f.Status)
}

func TestGame_TimedCountdown(t *testing.T) {
	settings := DefaultSettings()
	settings.Mode = round.AdvanceTimed
	settings.CountdownTicks = 3
	g := NewGame("m", round.NewFixedSource(gesture.MoveRock), settings)

	f, _, _ := g.Step(detector.Frame(detector.ScissorsLandmarks()), false)
	assert.Equal(t, round.AwaitingAdvance, f.Display.Phase)
	assert.Equal(t, 3, f.AdvanceIn)
	assert.Equal(t, "Next round in 3", f.Status)

	f, _, _ = g.Step(detector.NoHand(), false)
	assert.Equal(t, 2, f.AdvanceIn)
	f, _, _ = g.Step(detector.NoHand(), false)
	assert.Equal(t, 1, f.AdvanceIn)

	f, _, _ = g.Step(detector.NoHand(), false)
	assert.Equal(t, round.Idle, f.Display.Phase)
	assert.Equal(t, 0, f.AdvanceIn)
}

func TestGame_ApplySwitchesModeKeepsScore(t *testing.T) {
	g := NewGame("m", round.NewFixedSource(gesture.MoveScissors), DefaultSettings())

	g.Step(detector.Frame(detector.RockLandmarks()), false)

	timed := DefaultSettings()
	timed.Mode = round.AdvanceTimed
	timed.CountdownTicks = 1
	g.Apply(timed)

	f, _, _ := g.Step(detector.NoHand(), false)
	assert.Equal(t, round.Idle, f.Display.Phase)
	assert.Equal(t, round.Score{Player: 1}, f.Display.Score)
}

func TestGame_HidePlayerMove(t *testing.T) {
	settings := DefaultSettings()
	settings.ShowPlayerMove = false
	g := NewGame("m", round.NewFixedSource(gesture.MoveRock), settings)

	f, event, _ := g.Step(detector.Frame(detector.PaperLandmarks()), false)
	assert.False(t, f.ShowPlayer)
	assert.Nil(t, f.Display.Player)
	assert.NotNil(t, f.Display.Opponent)
	require.NotNil(t, event)
	assert.Equal(t, "paper", event.Player, "hooks still see the player's move")
}

func TestGame_InvalidInput(t *testing.T) {
	g := NewGame("m", round.NewFixedSource(gesture.MoveRock), DefaultSettings())

	short := detector.HandLandmarks{Points: make([]detector.Point, 5)}
	_, _, err := g.Step(detector.Frame(short), false)
	assert.True(t, errors.Is(err, gesture.ErrInvalidInput))
}
