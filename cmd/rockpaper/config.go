package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read at startup.
const (
	EnvAddr       = "ROCKPAPER_ADDR"
	EnvDataDir    = "ROCKPAPER_DATA_DIR"
	EnvTrackerCmd = "ROCKPAPER_TRACKER_CMD"
	EnvHookDir    = "ROCKPAPER_HOOK_DIR"
	EnvWebDir     = "ROCKPAPER_WEB_DIR"
	EnvTray       = "ROCKPAPER_TRAY"
)

// Config is the process configuration.
type Config struct {
	Addr       string
	DataDir    string
	TrackerCmd []string
	HookDir    string
	WebDir     string
	Tray       bool
}

// DefaultConfig returns the configuration used when no variables are set.
func DefaultConfig() Config {
	dataDir := ".rockpaper"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".rockpaper")
	}
	return Config{
		Addr:    ":8080",
		DataDir: dataDir,
		HookDir: filepath.Join(dataDir, "hooks"),
		Tray:    true,
	}
}

// LoadConfig reads the environment, after loading envFiles (default .env)
// when present. Variables already set in the environment win over the file.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("No .env file loaded, using environment variables")
	}

	cfg := DefaultConfig()

	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
		cfg.HookDir = filepath.Join(v, "hooks")
	}
	if v := os.Getenv(EnvHookDir); v != "" {
		cfg.HookDir = v
	}
	if v := os.Getenv(EnvTrackerCmd); v != "" {
		cfg.TrackerCmd = strings.Fields(v)
	}
	if v := os.Getenv(EnvWebDir); v != "" {
		cfg.WebDir = v
	}
	if v := os.Getenv(EnvTray); v != "" {
		tray, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTray, err)
		}
		cfg.Tray = tray
	}

	return cfg, nil
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and <data dir>/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	dataWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(dataWebDir); err == nil && info.IsDir() {
		return dataWebDir
	}

	return ""
}
