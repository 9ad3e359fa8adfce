// Package hook runs external programs when match events occur.
package hook

import "encoding/json"

// EventRoundComplete fires once per decided round.
const EventRoundComplete = "round_complete"

// Manifest describes a hook's metadata and the events it subscribes to.
type Manifest struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description"`
	Executable  string          `json:"executable"`
	Events      []string        `json:"events"`
	Config      json.RawMessage `json:"config,omitempty"`
}

// Handles reports whether the hook subscribes to event.
func (m Manifest) Handles(event string) bool {
	for _, e := range m.Events {
		if e == event {
			return true
		}
	}
	return false
}

// Request is written to a hook's stdin.
type Request struct {
	Event    string          `json:"event"`
	MatchID  string          `json:"match_id"`
	Round    int             `json:"round"`
	Player   string          `json:"player"`
	Opponent string          `json:"opponent"`
	Verdict  string          `json:"verdict"`
	Score    Score           `json:"score"`
	Config   json.RawMessage `json:"config,omitempty"`
}

// Score is the running match score at the time of the event.
type Score struct {
	Player   int `json:"player"`
	Opponent int `json:"opponent"`
}

// Response is read from a hook's stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Hook is a discovered hook with its manifest and location.
type Hook struct {
	Manifest   Manifest
	Path       string
	Executable string
}
