package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ayusman/rockpaper/internal/round"
	"github.com/ayusman/rockpaper/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"timed", func(s *Settings) { s.Mode = round.AdvanceTimed }, false},
		{"unknown mode", func(s *Settings) { s.Mode = "sometimes" }, true},
		{"zero ticks", func(s *Settings) { s.CountdownTicks = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestLoadSettings_EmptyStoreUsesDefaults(t *testing.T) {
	s := newTestStore(t)

	got, err := LoadSettings(s)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("expected %+v, got %+v", DefaultSettings(), got)
	}
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := Settings{
		Mode:           round.AdvanceTimed,
		CountdownTicks: 45,
		ShowPlayerMove: false,
		Seed:           1234,
	}
	if err := SaveSettings(s, want); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	got, err := LoadSettings(s)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSaveSettings_RejectsInvalid(t *testing.T) {
	s := newTestStore(t)

	bad := DefaultSettings()
	bad.CountdownTicks = -1
	if err := SaveSettings(s, bad); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}

	if all, _ := s.Settings().All(); len(all) != 0 {
		t.Errorf("invalid settings should not be stored, got %v", all)
	}
}

func TestLoadSettings_Malformed(t *testing.T) {
	s := newTestStore(t)
	s.Settings().Set(KeyCountdownTicks, "soon")

	if _, err := LoadSettings(s); err == nil {
		t.Error("expected error for malformed countdown_ticks")
	}
}

func TestResetSettings(t *testing.T) {
	s := newTestStore(t)

	// Resetting an empty store is fine.
	if err := ResetSettings(s); err != nil {
		t.Fatalf("ResetSettings() on empty store error = %v", err)
	}

	if err := SaveSettings(s, Settings{Mode: round.AdvanceTimed, CountdownTicks: 5, Seed: 7}); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	if err := ResetSettings(s); err != nil {
		t.Fatalf("ResetSettings() error = %v", err)
	}

	if all, _ := s.Settings().All(); len(all) != 0 {
		t.Errorf("expected no stored settings, got %v", all)
	}
	got, err := LoadSettings(s)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("expected defaults, got %+v", got)
	}
}
