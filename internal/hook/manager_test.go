package hook

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeHook creates dir/name/hook.json from manifest.
func writeHook(t *testing.T, dir, name string, manifest Manifest) string {
	t.Helper()

	hookDir := filepath.Join(dir, name)
	if err := os.MkdirAll(hookDir, 0755); err != nil {
		t.Fatalf("failed to create hook dir: %v", err)
	}

	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(hookDir, ManifestFile), data, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return hookDir
}

func TestManager_Discover(t *testing.T) {
	tmpDir := t.TempDir()
	hookDir := writeHook(t, tmpDir, "announce", Manifest{
		Name:        "announce",
		Version:     "1.0.0",
		Description: "Prints round results",
		Executable:  "announce",
		Events:      []string{EventRoundComplete},
	})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	hooks := manager.List()
	if len(hooks) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(hooks))
	}

	h := hooks[0]
	if h.Manifest.Name != "announce" {
		t.Errorf("expected hook name 'announce', got %q", h.Manifest.Name)
	}
	if h.Path != hookDir {
		t.Errorf("expected path %q, got %q", hookDir, h.Path)
	}
	if want := filepath.Join(hookDir, "announce"); h.Executable != want {
		t.Errorf("expected executable %q, got %q", want, h.Executable)
	}
}

func TestManager_Discover_SkipsInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	writeHook(t, tmpDir, "good", Manifest{Name: "good", Executable: "run"})
	writeHook(t, tmpDir, "no-exec", Manifest{Name: "no-exec"})

	broken := filepath.Join(tmpDir, "broken")
	os.MkdirAll(broken, 0755)
	os.WriteFile(filepath.Join(broken, ManifestFile), []byte("{not json"), 0644)

	os.MkdirAll(filepath.Join(tmpDir, "empty"), 0755)
	os.WriteFile(filepath.Join(tmpDir, "stray-file"), []byte("x"), 0644)

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	hooks := manager.List()
	if len(hooks) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(hooks))
	}
	if hooks[0].Manifest.Name != "good" {
		t.Errorf("expected 'good', got %q", hooks[0].Manifest.Name)
	}
}

func TestManager_Discover_NonExistentDir(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "missing"))
	if err := manager.Discover(); err != nil {
		t.Errorf("Discover() on a missing dir should not fail: %v", err)
	}
	if len(manager.List()) != 0 {
		t.Error("expected no hooks")
	}

	if err := NewManager("").Discover(); err != nil {
		t.Errorf("Discover() with no dir should not fail: %v", err)
	}
}

func TestManager_Discover_Rescan(t *testing.T) {
	tmpDir := t.TempDir()
	writeHook(t, tmpDir, "a", Manifest{Name: "a", Executable: "run"})

	manager := NewManager(tmpDir)
	manager.Discover()

	os.RemoveAll(filepath.Join(tmpDir, "a"))
	writeHook(t, tmpDir, "b", Manifest{Name: "b", Executable: "run"})
	manager.Discover()

	if _, err := manager.Get("a"); !errors.Is(err, ErrHookNotFound) {
		t.Errorf("expected removed hook to be gone, got %v", err)
	}
	if _, err := manager.Get("b"); err != nil {
		t.Errorf("expected new hook to be found: %v", err)
	}
}

func TestManager_Get(t *testing.T) {
	tmpDir := t.TempDir()
	writeHook(t, tmpDir, "announce", Manifest{Name: "announce", Executable: "run"})

	manager := NewManager(tmpDir)
	manager.Discover()

	t.Run("found", func(t *testing.T) {
		h, err := manager.Get("announce")
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		if h.Manifest.Name != "announce" {
			t.Errorf("expected 'announce', got %q", h.Manifest.Name)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := manager.Get("missing"); !errors.Is(err, ErrHookNotFound) {
			t.Errorf("expected ErrHookNotFound, got %v", err)
		}
	})
}

func TestManager_ForEvent(t *testing.T) {
	tmpDir := t.TempDir()
	writeHook(t, tmpDir, "zeta", Manifest{Name: "zeta", Executable: "run", Events: []string{EventRoundComplete}})
	writeHook(t, tmpDir, "alpha", Manifest{Name: "alpha", Executable: "run", Events: []string{"other", EventRoundComplete}})
	writeHook(t, tmpDir, "quiet", Manifest{Name: "quiet", Executable: "run"})

	manager := NewManager(tmpDir)
	manager.Discover()

	hooks := manager.ForEvent(EventRoundComplete)
	if len(hooks) != 2 {
		t.Fatalf("expected 2 hooks, got %d", len(hooks))
	}
	if hooks[0].Manifest.Name != "alpha" || hooks[1].Manifest.Name != "zeta" {
		t.Errorf("expected [alpha zeta], got [%s %s]", hooks[0].Manifest.Name, hooks[1].Manifest.Name)
	}

	if got := manager.ForEvent("nobody-listens"); len(got) != 0 {
		t.Errorf("expected no hooks, got %d", len(got))
	}
}

func TestManager_HookDir(t *testing.T) {
	manager := NewManager("/some/path")
	if manager.HookDir() != "/some/path" {
		t.Errorf("expected /some/path, got %q", manager.HookDir())
	}
}
