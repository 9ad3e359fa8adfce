// Package detector provides hand landmark types and the trackers that supply them.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point is a single tracked landmark. X and Y are in frame coordinates
// (normalized [0,1] or pixels, consistent within a session); Y grows downward.
// Z is carried through when the tracker supplies it.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// HandLandmarks represents one tracked hand.
// Points is normally NumLandmarks long but is kept as reported by the tracker,
// so short observations can be rejected downstream instead of zero-filled.
type HandLandmarks struct {
	Points     []Point `json:"points"`
	Handedness string  `json:"handedness"` // "Left" or "Right"
	Score      float64 `json:"score"`
}

// Clone returns a deep copy of the hand.
func (h HandLandmarks) Clone() HandLandmarks {
	c := h
	c.Points = append([]Point(nil), h.Points...)
	return c
}

// Observation is everything a tracker reports for one frame.
type Observation struct {
	Hands     []HandLandmarks `json:"hands"`
	Timestamp int64           `json:"timestamp"`

	// Advance is set by recorded sessions when the next-round key was
	// pressed on this frame.
	Advance bool `json:"advance,omitempty"`
}

// HasHand reports whether at least one hand was tracked.
func (o Observation) HasHand() bool {
	return len(o.Hands) > 0
}
