// Package replay plays recorded landmark sessions through the game offline.
package replay

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ayusman/rockpaper/internal/app"
	"github.com/ayusman/rockpaper/internal/detector"
	"github.com/ayusman/rockpaper/internal/gesture"
	"github.com/ayusman/rockpaper/internal/round"
)

// MatchID is stamped on every replayed frame.
const MatchID = "replay"

// Options configure a replay.
type Options struct {
	Settings app.Settings
	// Source overrides the opponent. When nil a random source seeded with
	// Settings.Seed is used.
	Source round.MoveSource
	// OnFrame, when set, is called after every tick.
	OnFrame func(app.Frame)
}

// Result describes one decided round.
type Result struct {
	Round    int    `json:"round"`
	Tick     uint64 `json:"tick"`
	Player   string `json:"player"`
	Opponent string `json:"opponent"`
	Verdict  string `json:"verdict"`
}

// Summary is the outcome of a replay.
type Summary struct {
	Ticks        uint64      `json:"ticks"`
	NoHand       int         `json:"no_hand"`
	Unrecognized int         `json:"unrecognized"`
	Score        round.Score `json:"score"`
	Rounds       []Result    `json:"rounds"`
}

// Run reads JSONL landmark frames from r and plays each as one tick. A
// malformed line aborts the replay; the summary covers the ticks played so
// far.
func Run(ctx context.Context, r io.Reader, opts Options) (Summary, error) {
	if err := opts.Settings.Validate(); err != nil {
		return Summary{}, err
	}

	source := opts.Source
	if source == nil {
		source = round.NewRandomSource(opts.Settings.Seed)
	}

	tracker := detector.NewStreamTracker(r)
	defer tracker.Close()

	g := app.NewGame(MatchID, source, opts.Settings)
	var summary Summary

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		obs, err := tracker.Next(ctx)
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		if err != nil {
			return summary, fmt.Errorf("replay tick %d: %w", g.Ticks()+1, err)
		}

		frame, event, err := g.Step(obs, false)
		if err != nil {
			return summary, fmt.Errorf("replay tick %d: %w", g.Ticks()+1, err)
		}

		summary.Ticks = frame.Tick
		summary.Score = frame.Display.Score
		switch {
		case !frame.HasHand:
			summary.NoHand++
		case frame.Observed == gesture.Unknown:
			summary.Unrecognized++
		}
		if event != nil {
			summary.Rounds = append(summary.Rounds, Result{
				Round:    event.Round,
				Tick:     frame.Tick,
				Player:   event.Player,
				Opponent: event.Opponent,
				Verdict:  event.Verdict,
			})
		}

		if opts.OnFrame != nil {
			opts.OnFrame(frame)
		}
	}
}
