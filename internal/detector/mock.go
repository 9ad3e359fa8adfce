package detector

import (
	"context"
	"io"
	"sync"
)

// MockTracker is a test implementation of the Tracker interface.
// It plays back a scripted sequence of observations.
type MockTracker struct {
	frames []Observation
	index  int
	loop   bool
	closed bool
	mu     sync.Mutex
}

// NewMockTracker creates a new MockTracker that plays frames once, then
// returns io.EOF. With loop set it restarts from the first frame instead.
func NewMockTracker(frames []Observation, loop bool) *MockTracker {
	return &MockTracker{
		frames: frames,
		loop:   loop,
	}
}

// Next returns the next scripted observation.
func (m *MockTracker) Next(ctx context.Context) (Observation, error) {
	if err := ctx.Err(); err != nil {
		return Observation{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Observation{}, ErrTrackerClosed
	}

	if m.index >= len(m.frames) {
		if !m.loop || len(m.frames) == 0 {
			return Observation{}, io.EOF
		}
		m.index = 0
	}

	obs := m.frames[m.index]
	m.index++

	return obs, nil
}

// Close marks the tracker closed.
func (m *MockTracker) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Frame wraps hands into a single observation.
func Frame(hands ...HandLandmarks) Observation {
	return Observation{Hands: hands}
}

// NoHand returns an observation with no tracked hand.
func NoHand() Observation {
	return Observation{}
}

// basePalm returns a right hand with the wrist, thumb and knuckles in place
// and every fingertip parked on its knuckle; presets then move the tips.
func basePalm() HandLandmarks {
	landmarks := HandLandmarks{
		Points:     make([]Point, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
	}

	// Wrist at base
	landmarks.Points[Wrist] = Point{X: 0.5, Y: 0.8}

	// Thumb resting across the palm
	landmarks.Points[ThumbCMC] = Point{X: 0.55, Y: 0.75}
	landmarks.Points[ThumbMCP] = Point{X: 0.58, Y: 0.70}
	landmarks.Points[ThumbIP] = Point{X: 0.56, Y: 0.66}
	landmarks.Points[ThumbTip] = Point{X: 0.53, Y: 0.64}

	landmarks.Points[IndexMCP] = Point{X: 0.55, Y: 0.68}
	landmarks.Points[MiddleMCP] = Point{X: 0.50, Y: 0.66}
	landmarks.Points[RingMCP] = Point{X: 0.45, Y: 0.68}
	landmarks.Points[PinkyMCP] = Point{X: 0.40, Y: 0.70}

	curl(&landmarks, IndexMCP)
	curl(&landmarks, MiddleMCP)
	curl(&landmarks, RingMCP)
	curl(&landmarks, PinkyMCP)

	return landmarks
}

// curl folds a finger so its tip sits below the index knuckle.
func curl(h *HandLandmarks, mcp int) {
	base := h.Points[mcp]
	h.Points[mcp+1] = Point{X: base.X, Y: base.Y - 0.02, Z: -0.05}
	h.Points[mcp+2] = Point{X: base.X - 0.03, Y: base.Y + 0.02, Z: -0.04}
	h.Points[mcp+3] = Point{X: base.X - 0.05, Y: base.Y + 0.05, Z: -0.02}
}

// extend raises a finger straight up from its knuckle.
func extend(h *HandLandmarks, mcp int, length float64) {
	base := h.Points[mcp]
	h.Points[mcp+1] = Point{X: base.X, Y: base.Y - length*0.4}
	h.Points[mcp+2] = Point{X: base.X, Y: base.Y - length*0.7}
	h.Points[mcp+3] = Point{X: base.X, Y: base.Y - length}
}

// RockLandmarks returns a closed fist: no finger above the index knuckle.
func RockLandmarks() HandLandmarks {
	return basePalm()
}

// PaperLandmarks returns an open palm with all four fingers extended.
func PaperLandmarks() HandLandmarks {
	landmarks := basePalm()

	// Thumb extended to the side
	landmarks.Points[ThumbIP] = Point{X: 0.68, Y: 0.65}
	landmarks.Points[ThumbTip] = Point{X: 0.73, Y: 0.60}

	extend(&landmarks, IndexMCP, 0.33)
	extend(&landmarks, MiddleMCP, 0.38)
	extend(&landmarks, RingMCP, 0.33)
	extend(&landmarks, PinkyMCP, 0.28)

	return landmarks
}

// ScissorsLandmarks returns a V sign: index and middle fingers extended.
func ScissorsLandmarks() HandLandmarks {
	landmarks := basePalm()

	extend(&landmarks, IndexMCP, 0.33)
	extend(&landmarks, MiddleMCP, 0.38)

	return landmarks
}

// PointLandmarks returns a pointing hand with only the index finger raised.
// It matches none of the three moves.
func PointLandmarks() HandLandmarks {
	landmarks := basePalm()

	extend(&landmarks, IndexMCP, 0.33)

	return landmarks
}
