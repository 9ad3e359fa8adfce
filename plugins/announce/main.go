// Package main provides a round hook that announces each verdict.
// It speaks the result through the platform speech command when one is
// available and always echoes the announcement back in its response.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Request represents the input from the hook executor.
type Request struct {
	Event    string          `json:"event"`
	MatchID  string          `json:"match_id"`
	Round    int             `json:"round"`
	Player   string          `json:"player"`
	Opponent string          `json:"opponent"`
	Verdict  string          `json:"verdict"`
	Score    Score           `json:"score"`
	Config   json.RawMessage `json:"config"`
}

// Score is the running match score.
type Score struct {
	Player   int `json:"player"`
	Opponent int `json:"opponent"`
}

// Response represents the output to the hook executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Config is read from the manifest's config block.
type Config struct {
	Speak bool   `json:"speak"`
	Voice string `json:"voice"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	if req.Event != "round_complete" {
		writeErrorResponse(fmt.Sprintf("unknown event: %s", req.Event))
		return
	}

	var cfg Config
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &cfg); err != nil {
			writeErrorResponse(fmt.Sprintf("failed to parse config: %v", err))
			return
		}
	}

	text := buildAnnouncement(req)
	if cfg.Speak {
		if err := speak(text, cfg.Voice); err != nil {
			writeErrorResponse(fmt.Sprintf("speech failed: %v", err))
			return
		}
	}

	writeSuccessResponse(text)
}

// buildAnnouncement renders one line describing the round.
func buildAnnouncement(req Request) string {
	return fmt.Sprintf("Round %d: %s against %s. %s Score %d to %d.",
		req.Round, req.Player, req.Opponent, req.Verdict, req.Score.Player, req.Score.Opponent)
}

// speak runs the platform text-to-speech command.
func speak(text, voice string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		args := []string{text}
		if voice != "" {
			args = append([]string{"-v", voice}, args...)
		}
		cmd = exec.Command("say", args...)
	default:
		path, err := exec.LookPath("espeak")
		if err != nil {
			return fmt.Errorf("no speech command found")
		}
		args := []string{text}
		if voice != "" {
			args = append([]string{"-v", voice}, args...)
		}
		cmd = exec.Command(path, args...)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response carrying the announcement.
func writeSuccessResponse(text string) {
	data, _ := json.Marshal(map[string]string{"text": text})
	resp := Response{
		Success: true,
		Data:    data,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}
