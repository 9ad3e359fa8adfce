// Package testdata embeds recorded landmark sessions for tests.
package testdata

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"path"
	"sort"
)

//go:embed sessions/*.jsonl
var sessionsFS embed.FS

// Recorded sessions.
const (
	// ThreeRounds wins three rounds against a scissors, rock, paper opponent,
	// advancing with recorded advance flags.
	ThreeRounds = "three_rounds.jsonl"
	// HeldGesture holds an open palm through an advance: one round only.
	HeldGesture = "held_gesture.jsonl"
)

// LoadSession returns the raw JSONL of a recorded session.
func LoadSession(name string) ([]byte, error) {
	data, err := sessionsFS.ReadFile(path.Join("sessions", name))
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", name, err)
	}
	return data, nil
}

// OpenSession returns a reader over a recorded session.
func OpenSession(name string) (io.Reader, error) {
	data, err := LoadSession(name)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Sessions lists the embedded session names.
func Sessions() []string {
	entries, err := sessionsFS.ReadDir("sessions")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}
