package tray

import (
	"testing"

	"github.com/ayusman/rockpaper/internal/round"
)

func TestModeLabel(t *testing.T) {
	if got := ModeLabel(round.AdvanceManual); got != "Mode: Manual" {
		t.Errorf("expected 'Mode: Manual', got %q", got)
	}
	if got := ModeLabel(round.AdvanceTimed); got != "Mode: Timed" {
		t.Errorf("expected 'Mode: Timed', got %q", got)
	}
}

func TestScoreLabel(t *testing.T) {
	got := ScoreLabel(round.Score{Player: 3, Opponent: 1}, 5)
	if want := "You 3 : 1 CPU (round 5)"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTray_HandleMode(t *testing.T) {
	tr := New(round.AdvanceManual)

	var got []round.AdvanceMode
	tr.OnModeChange(func(mode round.AdvanceMode) {
		got = append(got, mode)
	})

	tr.handleMode()
	tr.handleMode()

	if len(got) != 2 || got[0] != round.AdvanceTimed || got[1] != round.AdvanceManual {
		t.Errorf("expected [timed manual], got %v", got)
	}
	if tr.Mode() != round.AdvanceManual {
		t.Errorf("expected manual, got %s", tr.Mode())
	}
}

func TestTray_Callbacks(t *testing.T) {
	tr := New(round.AdvanceManual)

	started, advanced := 0, 0
	tr.OnStart(func() { started++ })
	tr.OnNextRound(func() { advanced++ })

	tr.handle(func() func() { return tr.onStart })
	tr.handle(func() func() { return tr.onNext })
	tr.handle(func() func() { return tr.onNext })
	tr.handle(func() func() { return tr.onSettings }) // unset, no-op

	if started != 1 || advanced != 2 {
		t.Errorf("expected 1 start and 2 advances, got %d and %d", started, advanced)
	}
}

func TestTray_SettersBeforeReady(t *testing.T) {
	tr := New(round.AdvanceManual)

	// Menu items do not exist until Run; setters must not panic.
	tr.SetScore(round.Score{Player: 1}, 1)
	tr.SetStatus("No hand detected")
	tr.SetMode(round.AdvanceTimed)

	if tr.Mode() != round.AdvanceTimed {
		t.Errorf("expected timed, got %s", tr.Mode())
	}
}

func TestTray_HandleModeAfterSetMode(t *testing.T) {
	tr := New(round.AdvanceManual)

	var got []round.AdvanceMode
	tr.OnModeChange(func(mode round.AdvanceMode) {
		got = append(got, mode)
	})

	// The mode was changed elsewhere; one click switches back.
	tr.SetMode(round.AdvanceTimed)
	tr.handleMode()

	if len(got) != 1 || got[0] != round.AdvanceManual {
		t.Errorf("expected [manual], got %v", got)
	}
	if tr.Mode() != round.AdvanceManual {
		t.Errorf("expected manual, got %s", tr.Mode())
	}
}
