package detector

import (
	"context"
	"errors"
)

// ErrTrackerClosed is returned by Next after Close.
var ErrTrackerClosed = errors.New("tracker closed")

// Tracker supplies one Observation per frame from an external hand tracker.
type Tracker interface {
	// Next blocks until the next frame is available.
	// It returns io.EOF when the stream has ended.
	Next(ctx context.Context) (Observation, error)

	// Close releases any resources held by the tracker.
	Close() error
}

// Config holds configuration options for the external hand tracker process.
type Config struct {
	// Command is the tracker executable followed by its arguments.
	Command []string

	// MaxHands is the maximum number of hands to track (default: 1).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with the thresholds the game was tuned for.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.7,
		MinTrackingConf: 0.7,
	}
}
