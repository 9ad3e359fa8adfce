// Command rockpaper plays Rock-Paper-Scissors against the computer using hand
// gestures reported by an external tracker.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ayusman/rockpaper/internal/app"
	"github.com/ayusman/rockpaper/internal/detector"
	"github.com/ayusman/rockpaper/internal/round"
	"github.com/ayusman/rockpaper/internal/server"
	"github.com/ayusman/rockpaper/internal/store"
	"github.com/ayusman/rockpaper/internal/tray"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if len(os.Args) > 1 && os.Args[1] == "replay" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err := runReplay(ctx, os.Args[2:], os.Stdout, os.Stderr)
		stop()
		if err != nil {
			log.Fatalf("replay: %v", err)
		}
		return
	}

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := serve(cfg); err != nil {
		log.Fatalf("rockpaper: %v", err)
	}
}

func serve(cfg Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "rockpaper.db")
	st, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	settings, err := app.LoadSettings(st)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	tracker, feed, err := openTracker(cfg, st)
	if err != nil {
		return err
	}

	game := app.New(app.Config{
		Store:    st,
		Tracker:  tracker,
		HookDir:  cfg.HookDir,
		Settings: &settings,
	})
	defer game.Close()

	webDir := cfg.WebDir
	if webDir == "" {
		webDir = findWebDir(cfg.DataDir)
	}
	if webDir != "" {
		log.Printf("Serving web UI from %s", webDir)
	} else {
		log.Println("Web directory not found, API only mode")
	}

	display := server.NewDisplayHub()
	srv := server.New(server.Config{
		StaticDir: webDir,
		Game:      game,
		Hooks:     game.Hooks(),
		Feed:      feed,
		Display:   display,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Starting server on %s", cfg.Addr)
		if err := srv.ListenAndServe(cfg.Addr); err != nil {
			log.Printf("Server error: %v", err)
			stop()
		}
	}()

	if err := game.Start(); err != nil {
		return fmt.Errorf("start match: %w", err)
	}

	var menu *tray.Tray
	if cfg.Tray {
		menu = newTray(game, cfg.Addr, stop)
	}
	go fanOut(ctx, game.Frames(), display, menu)

	if menu != nil {
		go func() {
			<-ctx.Done()
			menu.Quit()
		}()
		menu.Run()
		stop()
	} else {
		log.Println("Press Enter for the next round, q to quit")
		go readCommands(os.Stdin, game, stop)
		<-ctx.Done()
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	return nil
}

// openTracker picks the landmark source: the configured command, else the
// last recorded command, else browser clients on the landmark feed.
func openTracker(cfg Config, st *store.Store) (detector.Tracker, *server.LandmarkFeed, error) {
	command := cfg.TrackerCmd
	if len(command) == 0 {
		last, err := st.Trackers().Last()
		switch {
		case err == nil:
			command = last.Command
		case !errors.Is(err, store.ErrNotFound):
			return nil, nil, fmt.Errorf("load tracker: %w", err)
		}
	}

	if len(command) == 0 {
		log.Println("No tracker command configured, waiting for landmarks on /api/landmarks")
		feed := server.NewLandmarkFeed()
		return feed, feed, nil
	}

	trackerCfg := detector.DefaultConfig()
	trackerCfg.Command = command
	tracker, err := detector.NewMediaPipeTracker(trackerCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create tracker: %w", err)
	}
	if _, err := st.Trackers().Record(command); err != nil {
		log.Printf("Failed to record tracker command: %v", err)
	}
	log.Printf("Using tracker %s", strings.Join(command, " "))
	return tracker, nil, nil
}

func newTray(game *app.App, addr string, stop context.CancelFunc) *tray.Tray {
	t := tray.New(game.Settings().Mode)
	t.OnStart(func() {
		game.Stop()
		if err := game.Start(); err != nil {
			log.Printf("Failed to start match: %v", err)
		}
	})
	t.OnNextRound(game.Advance)
	t.OnModeChange(func(mode round.AdvanceMode) {
		s := game.Settings()
		s.Mode = mode
		if err := game.ApplySettings(s); err != nil {
			log.Printf("Failed to change mode: %v", err)
		}
	})
	t.OnSettings(func() {
		log.Printf("Settings are available at %s", settingsURL(addr))
	})
	t.OnQuit(stop)
	return t
}

func settingsURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/"
}

// fanOut forwards published frames to display clients and the tray.
func fanOut(ctx context.Context, frames <-chan app.Frame, display *server.DisplayHub, menu *tray.Tray) {
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-frames:
			if err := display.Broadcast(f); err != nil {
				log.Printf("Broadcast failed: %v", err)
			}
			if menu != nil {
				menu.SetMode(f.Mode)
				menu.SetScore(f.Display.Score, f.Display.Round)
				menu.SetStatus(f.Status)
			}
		}
	}
}

// readCommands handles console input: a blank line or "n" requests the next
// round and "q" quits.
func readCommands(r io.Reader, game *app.App, quit context.CancelFunc) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "", "n", "next":
			game.Advance()
		case "q", "quit":
			quit()
			return
		}
	}
}
