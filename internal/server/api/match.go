package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/rockpaper/internal/app"
)

// MatchHandler handles /api/match and its start, stop and advance actions.
type MatchHandler struct {
	game Controller
}

// NewMatchHandler creates a MatchHandler driving game.
func NewMatchHandler(game Controller) *MatchHandler {
	return &MatchHandler{game: game}
}

type matchResponse struct {
	Running bool      `json:"running"`
	Error   string    `json:"error,omitempty"`
	Frame   app.Frame `json:"frame"`
}

// ServeHTTP routes GET /api/match and POST /api/match/{action}.
func (h *MatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := strings.TrimPrefix(r.URL.Path, "/api/match")
	action = strings.Trim(action, "/")

	if action == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.status(w)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch action {
	case "start":
		if err := h.game.Start(); err != nil {
			if errors.Is(err, app.ErrNoTracker) {
				writeError(w, http.StatusConflict, "No tracker configured")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to start match")
			return
		}
	case "stop":
		h.game.Stop()
	case "advance":
		if !h.game.IsRunning() {
			writeError(w, http.StatusConflict, "No match running")
			return
		}
		h.game.Advance()
	default:
		writeError(w, http.StatusNotFound, "Unknown match action")
		return
	}

	h.status(w)
}

func (h *MatchHandler) status(w http.ResponseWriter) {
	resp := matchResponse{
		Running: h.game.IsRunning(),
		Frame:   h.game.Latest(),
	}
	if err := h.game.Err(); err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}
