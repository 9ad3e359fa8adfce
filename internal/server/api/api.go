// Package api provides HTTP API handlers for controlling the game.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/rockpaper/internal/app"
)

// Controller is the part of the game worker the API drives.
type Controller interface {
	Start() error
	Stop()
	Advance()
	IsRunning() bool
	Latest() app.Frame
	Err() error
	Settings() app.Settings
	ApplySettings(app.Settings) error
	ResetSettings() (app.Settings, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
