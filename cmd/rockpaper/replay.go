package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/ayusman/rockpaper/internal/app"
	"github.com/ayusman/rockpaper/internal/replay"
	"github.com/ayusman/rockpaper/internal/round"
)

const progressTemplate = `{{ string . "prefix" }} {{counters . }} {{bar . }} {{percent . }} {{etime . "%s elapsed"}}`

// runReplay implements `rockpaper replay [flags] <session.jsonl>`.
func runReplay(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	seed := fs.Uint64("seed", 1, "opponent seed (0 seeds from the clock)")
	mode := fs.String("mode", string(round.AdvanceManual), "advance mode: manual or timed")
	countdown := fs.Int("countdown", app.DefaultCountdownTicks, "ticks before a timed round advances")
	asJSON := fs.Bool("json", false, "print the summary as JSON")
	quiet := fs.Bool("quiet", false, "hide the progress bar")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: rockpaper replay [flags] <session.jsonl>")
	}

	advance, err := round.ParseAdvanceMode(*mode)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	settings := app.DefaultSettings()
	settings.Mode = advance
	settings.CountdownTicks = *countdown
	settings.Seed = *seed

	opts := replay.Options{Settings: settings}
	if !*quiet {
		bar := pb.ProgressBarTemplate(progressTemplate).New(countFrames(data))
		bar.SetWriter(stderr)
		bar.Set("prefix", "Replaying")
		bar.Start()
		defer bar.Finish()
		opts.OnFrame = func(app.Frame) { bar.Increment() }
	}

	summary, err := replay.Run(ctx, bytes.NewReader(data), opts)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	printSummary(stdout, summary)
	return nil
}

// countFrames counts the non-blank lines of a session.
func countFrames(data []byte) int {
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}

func printSummary(w io.Writer, s replay.Summary) {
	for _, r := range s.Rounds {
		fmt.Fprintf(w, "Round %d (tick %d): %s vs %s, %s\n", r.Round, r.Tick, r.Player, r.Opponent, r.Verdict)
	}
	fmt.Fprintf(w, "%d ticks, %d without a hand, %d unrecognized\n", s.Ticks, s.NoHand, s.Unrecognized)
	fmt.Fprintf(w, "Final score: You %d : %d CPU over %d rounds\n", s.Score.Player, s.Score.Opponent, len(s.Rounds))
}
