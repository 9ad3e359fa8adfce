package round

import (
	"fmt"
	"strings"
)

// AdvanceMode selects what releases a finished round.
type AdvanceMode string

const (
	// AdvanceManual waits for an explicit next-round request.
	AdvanceManual AdvanceMode = "manual"
	// AdvanceTimed releases the round after a fixed number of ticks.
	AdvanceTimed AdvanceMode = "timed"
)

// ParseAdvanceMode parses "manual" or "timed".
func ParseAdvanceMode(s string) (AdvanceMode, error) {
	switch m := AdvanceMode(strings.ToLower(strings.TrimSpace(s))); m {
	case AdvanceManual, AdvanceTimed:
		return m, nil
	}
	return "", fmt.Errorf("unknown advance mode %q", s)
}

// Countdown produces the advance signal for timed mode. It counts ticks spent
// in AwaitingAdvance and fires once the configured number has elapsed.
type Countdown struct {
	ticks     int
	remaining int
	running   bool
}

// NewCountdown creates a countdown of ticks frames. Values below 1 are
// treated as 1.
func NewCountdown(ticks int) *Countdown {
	if ticks < 1 {
		ticks = 1
	}
	return &Countdown{ticks: ticks, remaining: ticks}
}

// Tick is called once per frame with the phase the previous tick ended in.
// It returns true on the tick the round should advance.
func (c *Countdown) Tick(phase Phase) bool {
	if phase != AwaitingAdvance {
		c.running = false
		c.remaining = c.ticks
		return false
	}

	c.running = true
	c.remaining--
	if c.remaining <= 0 {
		c.running = false
		c.remaining = c.ticks
		return true
	}
	return false
}

// Remaining returns the ticks left before the next advance, or 0 when no
// countdown is running.
func (c *Countdown) Remaining() int {
	if !c.running {
		return 0
	}
	return c.remaining
}

// Ticks returns the configured length.
func (c *Countdown) Ticks() int {
	return c.ticks
}
