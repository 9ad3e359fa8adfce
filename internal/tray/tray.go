// Package tray provides the system tray menu for the game.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/rockpaper/internal/round"
)

// Tray represents the system tray application.
type Tray struct {
	onStart    func()
	onNext     func()
	onMode     func(mode round.AdvanceMode)
	onSettings func()
	onQuit     func()
	mode       round.AdvanceMode
	mu         sync.RWMutex

	// Menu items stored for later updates
	menuMode   *systray.MenuItem
	menuScore  *systray.MenuItem
	menuStatus *systray.MenuItem
}

// New creates a Tray showing mode.
func New(mode round.AdvanceMode) *Tray {
	return &Tray{mode: mode}
}

// OnStart sets the callback for "Start Game".
func (t *Tray) OnStart(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onStart = fn
}

// OnNextRound sets the callback for "Next Round".
func (t *Tray) OnNextRound(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onNext = fn
}

// OnModeChange sets the callback called with the new mode when the mode item
// is clicked.
func (t *Tray) OnModeChange(fn func(mode round.AdvanceMode)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onMode = fn
}

// OnSettings sets the callback for "Open Settings...".
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettings = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit ends Run from outside the menu.
func (t *Tray) Quit() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("RPS")
	systray.SetTooltip("Rock Paper Scissors")

	menuStart := systray.AddMenuItem("Start Game", "Start a new match")
	menuNext := systray.AddMenuItem("Next Round", "Release the finished round")
	systray.AddSeparator()

	t.mu.Lock()
	t.menuMode = systray.AddMenuItem(ModeLabel(t.mode), "Switch between manual and timed rounds")
	systray.AddSeparator()

	t.menuScore = systray.AddMenuItem(ScoreLabel(round.Score{}, 0), "Current score")
	t.menuScore.Disable()
	t.menuStatus = systray.AddMenuItem("Not started", "Game status")
	t.menuStatus.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuSettings := systray.AddMenuItem("Open Settings...", "Open settings in browser")
	menuQuit := systray.AddMenuItem("Quit", "Quit the game")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-menuStart.ClickedCh:
				t.handle(func() func() { return t.onStart })
			case <-menuNext.ClickedCh:
				t.handle(func() func() { return t.onNext })
			case <-t.menuMode.ClickedCh:
				t.handleMode()
			case <-menuSettings.ClickedCh:
				t.handle(func() func() { return t.onSettings })
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {}

// handle calls the callback picked under the read lock.
func (t *Tray) handle(pick func() func()) {
	t.mu.RLock()
	callback := pick()
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleMode flips the advance mode.
func (t *Tray) handleMode() {
	t.mu.Lock()
	if t.mode == round.AdvanceTimed {
		t.mode = round.AdvanceManual
	} else {
		t.mode = round.AdvanceTimed
	}
	mode := t.mode
	if t.menuMode != nil {
		t.menuMode.SetTitle(ModeLabel(mode))
	}
	callback := t.onMode
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(mode)
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.handle(func() func() { return t.onQuit })
	systray.Quit()
}

// SetMode updates the mode item without firing the callback.
func (t *Tray) SetMode(mode round.AdvanceMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.mode == mode {
		return
	}
	t.mode = mode
	if t.menuMode != nil {
		t.menuMode.SetTitle(ModeLabel(mode))
	}
}

// Mode returns the mode currently shown.
func (t *Tray) Mode() round.AdvanceMode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

// SetScore updates the score line.
func (t *Tray) SetScore(score round.Score, rounds int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuScore != nil {
		t.menuScore.SetTitle(ScoreLabel(score, rounds))
	}
}

// SetStatus updates the status line.
func (t *Tray) SetStatus(status string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuStatus != nil {
		t.menuStatus.SetTitle(status)
	}
}

// ModeLabel renders the mode menu title.
func ModeLabel(mode round.AdvanceMode) string {
	if mode == round.AdvanceTimed {
		return "Mode: Timed"
	}
	return "Mode: Manual"
}

// ScoreLabel renders the score menu title.
func ScoreLabel(score round.Score, rounds int) string {
	return fmt.Sprintf("You %d : %d CPU (round %d)", score.Player, score.Opponent, rounds)
}
