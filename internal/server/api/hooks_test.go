package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/rockpaper/internal/hook"
)

func TestHookHandler(t *testing.T) {
	dir := t.TempDir()
	m := hook.NewManager(dir)
	h := NewHookHandler(m)

	list := func(method string) listHooksResponse {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, "/api/hooks", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp listHooksResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		return resp
	}

	assert.Empty(t, list(http.MethodGet).Hooks)

	hookDir := filepath.Join(dir, "announce")
	require.NoError(t, os.MkdirAll(hookDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(hookDir, hook.ManifestFile),
		[]byte(`{"name":"announce","version":"1.0.0","executable":"announce","events":["round_complete"]}`), 0644))

	// GET does not rescan.
	assert.Empty(t, list(http.MethodGet).Hooks)

	resp := list(http.MethodPost)
	require.Len(t, resp.Hooks, 1)
	assert.Equal(t, "announce", resp.Hooks[0].Name)
	assert.Equal(t, []string{hook.EventRoundComplete}, resp.Hooks[0].Events)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/hooks", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
