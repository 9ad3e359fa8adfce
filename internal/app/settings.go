package app

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ayusman/rockpaper/internal/round"
	"github.com/ayusman/rockpaper/internal/store"
)

// Setting keys persisted in the store.
const (
	KeyAdvanceMode    = "advance_mode"
	KeyCountdownTicks = "countdown_ticks"
	KeyShowPlayerMove = "show_player_move"
	KeySeed           = "seed"
)

// DefaultCountdownTicks is three seconds at 30 frames per second.
const DefaultCountdownTicks = 90

// ErrInvalidSettings is returned when settings fail validation.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the user-adjustable game options.
type Settings struct {
	Mode           round.AdvanceMode `json:"mode"`
	CountdownTicks int               `json:"countdown_ticks"`
	ShowPlayerMove bool              `json:"show_player_move"`
	// Seed fixes the opponent's move sequence for the next match. Zero
	// seeds from the clock.
	Seed uint64 `json:"seed"`
}

// DefaultSettings returns manual advance with the player's move shown.
func DefaultSettings() Settings {
	return Settings{
		Mode:           round.AdvanceManual,
		CountdownTicks: DefaultCountdownTicks,
		ShowPlayerMove: true,
	}
}

// Validate checks the mode and countdown length.
func (s Settings) Validate() error {
	if _, err := round.ParseAdvanceMode(string(s.Mode)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if s.CountdownTicks < 1 {
		return fmt.Errorf("%w: countdown_ticks must be at least 1, got %d", ErrInvalidSettings, s.CountdownTicks)
	}
	return nil
}

// LoadSettings reads settings from the store. Missing keys keep their
// defaults; malformed values are reported.
func LoadSettings(s *store.Store) (Settings, error) {
	settings := DefaultSettings()

	values, err := s.Settings().All()
	if err != nil {
		return settings, fmt.Errorf("load settings: %w", err)
	}

	if v, ok := values[KeyAdvanceMode]; ok {
		mode, err := round.ParseAdvanceMode(v)
		if err != nil {
			return settings, fmt.Errorf("load settings: %s: %w", KeyAdvanceMode, err)
		}
		settings.Mode = mode
	}
	if v, ok := values[KeyCountdownTicks]; ok {
		ticks, err := strconv.Atoi(v)
		if err != nil {
			return settings, fmt.Errorf("load settings: %s: %w", KeyCountdownTicks, err)
		}
		settings.CountdownTicks = ticks
	}
	if v, ok := values[KeyShowPlayerMove]; ok {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return settings, fmt.Errorf("load settings: %s: %w", KeyShowPlayerMove, err)
		}
		settings.ShowPlayerMove = show
	}
	if v, ok := values[KeySeed]; ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return settings, fmt.Errorf("load settings: %s: %w", KeySeed, err)
		}
		settings.Seed = seed
	}

	if err := settings.Validate(); err != nil {
		return DefaultSettings(), fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// ResetSettings removes every stored setting, so the next LoadSettings
// returns the defaults.
func ResetSettings(s *store.Store) error {
	for _, key := range []string{KeyAdvanceMode, KeyCountdownTicks, KeyShowPlayerMove, KeySeed} {
		if err := s.Settings().Delete(key); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("reset settings: %s: %w", key, err)
		}
	}
	return nil
}

// SaveSettings validates and writes every setting in one transaction.
func SaveSettings(s *store.Store, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	return s.Settings().SetAll(map[string]string{
		KeyAdvanceMode:    string(settings.Mode),
		KeyCountdownTicks: strconv.Itoa(settings.CountdownTicks),
		KeyShowPlayerMove: strconv.FormatBool(settings.ShowPlayerMove),
		KeySeed:           strconv.FormatUint(settings.Seed, 10),
	})
}
