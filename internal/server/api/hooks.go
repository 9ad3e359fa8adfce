package api

import (
	"net/http"

	"github.com/ayusman/rockpaper/internal/hook"
)

// HookHandler lists discovered round hooks.
type HookHandler struct {
	hooks *hook.Manager
}

// NewHookHandler creates a HookHandler over m.
func NewHookHandler(m *hook.Manager) *HookHandler {
	return &HookHandler{hooks: m}
}

type hookResponse struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Events      []string `json:"events"`
}

type listHooksResponse struct {
	Hooks []hookResponse `json:"hooks"`
}

// ServeHTTP handles GET /api/hooks. POST rescans the hook directory first.
func (h *HookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		if err := h.hooks.Discover(); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to discover hooks")
			return
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hooks := h.hooks.List()
	resp := listHooksResponse{Hooks: make([]hookResponse, 0, len(hooks))}
	for _, hk := range hooks {
		events := hk.Manifest.Events
		if events == nil {
			events = []string{}
		}
		resp.Hooks = append(resp.Hooks, hookResponse{
			Name:        hk.Manifest.Name,
			Version:     hk.Manifest.Version,
			Description: hk.Manifest.Description,
			Events:      events,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
