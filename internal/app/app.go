// Package app runs the game worker: it reads landmark observations from a
// tracker, classifies them, advances the round engine and publishes frames.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/ayusman/rockpaper/internal/detector"
	"github.com/ayusman/rockpaper/internal/hook"
	"github.com/ayusman/rockpaper/internal/round"
	"github.com/ayusman/rockpaper/internal/store"
)

// Worker sizing.
const (
	// FrameBufferSize is how many unread frames are kept before the oldest is dropped.
	FrameBufferSize = 4
	// HookQueueSize is how many round events may wait for hooks to run.
	HookQueueSize = 16
)

// ErrNoTracker is returned by Start when no tracker is configured.
var ErrNoTracker = errors.New("no tracker configured")

// Config holds configuration options for the application.
type Config struct {
	// Store persists settings. Optional.
	Store *store.Store
	// Tracker supplies landmark observations, one per tick.
	Tracker detector.Tracker
	// HookDir is scanned for round hooks on every Start. Optional.
	HookDir string
	// Settings overrides the stored settings when non-nil.
	Settings *Settings
	// Source overrides the random opponent. Used by tests and replays.
	Source round.MoveSource
}

// App owns the game worker.
type App struct {
	config   Config
	hooks    *hook.Manager
	executor *hook.Executor

	frames     chan Frame
	advanceCh  chan struct{}
	settingsCh chan Settings

	mu       sync.RWMutex
	settings Settings
	latest   Frame
	err      error
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates an App. Settings come from config.Settings, then the store,
// then the defaults.
func New(config Config) *App {
	settings := DefaultSettings()
	switch {
	case config.Settings != nil:
		settings = *config.Settings
	case config.Store != nil:
		loaded, err := LoadSettings(config.Store)
		if err != nil {
			log.Printf("Using default settings: %v", err)
		} else {
			settings = loaded
		}
	}

	return &App{
		config:     config,
		hooks:      hook.NewManager(config.HookDir),
		executor:   hook.NewExecutor(hook.DefaultTimeout),
		frames:     make(chan Frame, FrameBufferSize),
		advanceCh:  make(chan struct{}, 1),
		settingsCh: make(chan Settings, 1),
		settings:   settings,
		latest:     Frame{Mode: settings.Mode, ShowPlayer: settings.ShowPlayerMove, Status: StatusReady},
	}
}

// Start begins a new match. It is a no-op while a match is running.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// A Stop in progress has cleared cancel but its worker may still be
	// reading the tracker; wait for it before starting another.
	for a.cancel == nil && a.workerAlive() {
		done := a.done
		a.mu.Unlock()
		<-done
		a.mu.Lock()
	}
	if a.runningLocked() {
		return nil
	}
	if a.config.Tracker == nil {
		return ErrNoTracker
	}

	if err := a.hooks.Discover(); err != nil {
		log.Printf("Hook discovery failed: %v", err)
	} else if n := len(a.hooks.List()); n > 0 {
		log.Printf("Discovered %d hooks in %s", n, a.hooks.HookDir())
	}

	source := a.config.Source
	if source == nil {
		source = round.NewRandomSource(a.settings.Seed)
	}
	g := NewGame(uuid.NewString(), source, a.settings)

	// Drop requests left over from a previous match.
	select {
	case <-a.advanceCh:
	default:
	}
	select {
	case <-a.settingsCh:
	default:
	}

	if a.cancel != nil {
		// The previous worker already exited on its own.
		a.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	events := make(chan *hook.Request, HookQueueSize)

	a.err = nil
	a.cancel = cancel
	a.done = done
	a.latest = Frame{
		MatchID:    g.MatchID(),
		Mode:       g.settings.Mode,
		ShowPlayer: g.settings.ShowPlayerMove,
		Status:     StatusReady,
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.run(ctx, g, events)
	}()
	go func() {
		defer wg.Done()
		a.runHooks(ctx, events)
	}()
	go func() {
		wg.Wait()
		close(done)
	}()

	log.Printf("Match %s started (%s advance)", g.MatchID(), g.settings.Mode)
	return nil
}

// Stop ends the running match and waits for the worker to exit. The tracker
// stays open so a later Start can reuse it.
func (a *App) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel = nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Println("Match stopped")
}

// Close stops the match and releases the tracker.
func (a *App) Close() error {
	a.Stop()
	if a.config.Tracker == nil {
		return nil
	}
	return a.config.Tracker.Close()
}

// Advance requests the next round. Requests made while one is already
// pending collapse into it.
func (a *App) Advance() {
	select {
	case a.advanceCh <- struct{}{}:
	default:
	}
}

// ApplySettings validates s, persists it when a store is configured and hands
// it to the running worker. The seed takes effect at the next Start.
func (a *App) ApplySettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if a.config.Store != nil {
		if err := SaveSettings(a.config.Store, s); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
	}

	a.apply(s)
	return nil
}

// ResetSettings clears the stored settings and hands the defaults to the
// running worker.
func (a *App) ResetSettings() (Settings, error) {
	if a.config.Store != nil {
		if err := ResetSettings(a.config.Store); err != nil {
			return a.Settings(), err
		}
	}
	s := DefaultSettings()
	a.apply(s)
	return s, nil
}

func (a *App) apply(s Settings) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.settings = s
	// Replace any update the worker has not picked up yet.
	select {
	case <-a.settingsCh:
	default:
	}
	a.settingsCh <- s
}

// Settings returns the current settings.
func (a *App) Settings() Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings
}

// Frames returns the channel frames are published on. It is never closed.
func (a *App) Frames() <-chan Frame {
	return a.frames
}

// Latest returns the most recently published frame.
func (a *App) Latest() Frame {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.latest
}

// Err returns the error that stopped the last match, if any.
func (a *App) Err() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.err
}

// IsRunning reports whether a match is in progress.
func (a *App) IsRunning() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.runningLocked()
}

// runningLocked reports a live worker that has not been asked to stop.
func (a *App) runningLocked() bool {
	return a.cancel != nil && a.workerAlive()
}

func (a *App) workerAlive() bool {
	if a.done == nil {
		return false
	}
	select {
	case <-a.done:
		return false
	default:
		return true
	}
}

// Hooks returns the hook manager.
func (a *App) Hooks() *hook.Manager {
	return a.hooks
}
