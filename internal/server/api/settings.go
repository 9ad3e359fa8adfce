package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayusman/rockpaper/internal/app"
)

// SettingsHandler handles GET, PUT and DELETE /api/settings.
type SettingsHandler struct {
	game Controller
}

// NewSettingsHandler creates a SettingsHandler backed by game.
func NewSettingsHandler(game Controller) *SettingsHandler {
	return &SettingsHandler{game: game}
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.game.Settings())
	case http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		settings, err := h.game.ResetSettings()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to reset settings")
			return
		}
		writeJSON(w, http.StatusOK, settings)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// update applies a partial update: fields missing from the body keep their
// current values.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	settings := h.game.Settings()
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.game.ApplySettings(settings); err != nil {
		if errors.Is(err, app.ErrInvalidSettings) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
