package detector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrNoCommand is returned when no tracker command is configured.
var ErrNoCommand = errors.New("no tracker command configured")

// shutdownGrace is how long Close waits for the tracker process to exit
// after its stdin is closed before killing it.
const shutdownGrace = 3 * time.Second

// MediaPipeTracker runs an external MediaPipe hand-tracking process that owns
// the camera and writes one JSON frame per line to stdout.
// The process is started lazily on the first Next, and again on the Next
// after its output ended.
type MediaPipeTracker struct {
	config  Config
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  *os.File
	stream  *StreamTracker
	exited  chan struct{}
	mu      sync.Mutex
	started bool
	closed  bool
}

// NewMediaPipeTracker creates a new tracker for the configured command.
func NewMediaPipeTracker(config Config) (*MediaPipeTracker, error) {
	if len(config.Command) == 0 || strings.TrimSpace(config.Command[0]) == "" {
		return nil, ErrNoCommand
	}

	return &MediaPipeTracker{
		config: config,
	}, nil
}

// Next returns the next frame reported by the tracker process.
func (t *MediaPipeTracker) Next(ctx context.Context) (Observation, error) {
	t.mu.Lock()
	if err := t.ensureStarted(); err != nil {
		t.mu.Unlock()
		return Observation{}, err
	}
	stream := t.stream
	t.mu.Unlock()

	obs, err := stream.Next(ctx)
	if errors.Is(err, io.EOF) {
		// The process is gone; the next call starts a fresh one.
		t.mu.Lock()
		if t.stream == stream {
			t.shutdown()
		}
		t.mu.Unlock()
	}
	return obs, err
}

// Close shuts down the tracker process.
func (t *MediaPipeTracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return t.shutdown()
}

func (t *MediaPipeTracker) ensureStarted() error {
	if t.closed {
		return ErrTrackerClosed
	}
	if t.started {
		return nil
	}

	name, args := t.commandLine()
	t.cmd = exec.Command(name, args...)

	stdin, err := t.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	// Wait must not close stdout while the stream is still reading it.
	stdout, writer, err := os.Pipe()
	if err != nil {
		stdin.Close()
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	t.cmd.Stdout = writer

	// Capture stderr for debugging
	t.cmd.Stderr = os.Stderr

	if err := t.cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		writer.Close()
		return fmt.Errorf("start tracker process: %w", err)
	}
	writer.Close()

	t.stdin = stdin
	t.stdout = stdout
	t.stream = NewStreamTracker(stdout)
	t.exited = make(chan struct{})
	t.started = true

	go func(cmd *exec.Cmd, exited chan struct{}) {
		cmd.Wait()
		close(exited)
	}(t.cmd, t.exited)

	return nil
}

// commandLine builds the process invocation, running Python scripts with the
// project's virtual environment interpreter when one exists.
func (t *MediaPipeTracker) commandLine() (string, []string) {
	args := append([]string(nil), t.config.Command[1:]...)
	if t.config.MaxHands > 0 {
		args = append(args, "--max-hands", strconv.Itoa(t.config.MaxHands))
	}
	if t.config.MinConfidence > 0 {
		args = append(args, "--min-detection-confidence", strconv.FormatFloat(t.config.MinConfidence, 'f', -1, 64))
	}
	if t.config.MinTrackingConf > 0 {
		args = append(args, "--min-tracking-confidence", strconv.FormatFloat(t.config.MinTrackingConf, 'f', -1, 64))
	}

	name := t.config.Command[0]
	if strings.HasSuffix(name, ".py") {
		pythonPath := findVenvPython()
		if pythonPath == "" {
			pythonPath = "python3"
		}
		return pythonPath, append([]string{name}, args...)
	}

	return name, args
}

func (t *MediaPipeTracker) shutdown() error {
	if !t.started {
		return nil
	}

	t.stream.Close()
	if t.stdin != nil {
		t.stdin.Close()
	}

	var err error
	select {
	case <-t.exited:
	case <-time.After(shutdownGrace):
		err = t.cmd.Process.Kill()
		<-t.exited
	}

	t.stdout.Close()

	t.started = false
	t.cmd = nil
	t.stdin = nil
	t.stdout = nil
	t.stream = nil

	return err
}

// findVenvPython looks for a Python interpreter in a virtual environment.
// It checks for venv/bin/python relative to the project directory.
func findVenvPython() string {
	// Get executable directory to find project root
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		"../../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".rockpaper/venv/bin/python"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}
