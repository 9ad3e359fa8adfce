package app

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/ayusman/rockpaper/internal/detector"
	"github.com/ayusman/rockpaper/internal/hook"
)

// run is the worker loop. The tracker paces it: every observation is one
// tick. It ends when ctx is cancelled, the tracker runs dry, or an
// observation cannot be classified.
func (a *App) run(ctx context.Context, g *Game, events chan<- *hook.Request) {
	defer close(events)

	for {
		obs, err := a.config.Tracker.Next(ctx)
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, io.EOF) || errors.Is(err, detector.ErrTrackerClosed) {
			log.Printf("Tracker stream ended after %d ticks", g.tick)
			return
		}
		if err != nil {
			log.Printf("Error reading landmarks: %v", err)
			obs = detector.Observation{}
		}

		select {
		case s := <-a.settingsCh:
			g.Apply(s)
		default:
		}

		requested := false
		select {
		case <-a.advanceCh:
			requested = true
		default:
		}

		frame, event, err := g.Step(obs, requested)
		if err != nil {
			log.Printf("Match %s stopped: %v", g.MatchID(), err)
			a.mu.Lock()
			a.err = err
			a.mu.Unlock()
			return
		}

		if event != nil {
			log.Printf("Round %d: %s vs %s, %s (%d-%d)", event.Round, event.Player, event.Opponent,
				event.Verdict, event.Score.Player, event.Score.Opponent)
			select {
			case events <- event:
			default:
				log.Printf("Hook queue full, dropping round %d event", event.Round)
			}
		}

		a.publish(frame)
	}
}

// publish records f as the latest frame and sends it without blocking,
// dropping the oldest unread frame when the consumer lags.
func (a *App) publish(f Frame) {
	a.mu.Lock()
	a.latest = f
	a.mu.Unlock()

	for {
		select {
		case a.frames <- f:
			return
		default:
		}
		select {
		case <-a.frames:
		default:
		}
	}
}

// runHooks runs every hook subscribed to each queued event, one at a time.
func (a *App) runHooks(ctx context.Context, events <-chan *hook.Request) {
	for event := range events {
		hooks := a.hooks.ForEvent(event.Event)
		for _, h := range hooks {
			req := *event
			resp, err := a.executor.Execute(ctx, h, &req)
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("Hook %s: %v", h.Manifest.Name, err)
				}
				continue
			}
			if !resp.Success {
				log.Printf("Hook %s reported failure: %s", h.Manifest.Name, resp.Error)
			}
		}
	}
}
