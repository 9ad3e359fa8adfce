package detector

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// maxFrameSize bounds a single JSON frame line.
const maxFrameSize = 1 << 20

// StreamTracker decodes newline-delimited JSON frames from a reader.
// Each line is one frame:
//
//	{"hands":[{"points":[{"x":0.5,"y":0.8}, ...],"handedness":"Right","score":0.9}],"timestamp":1700000000000}
//
// The reader is consumed by a background goroutine started on the first Next.
type StreamTracker struct {
	r         io.Reader
	frames    chan streamResult
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

type streamResult struct {
	obs Observation
	err error
}

// NewStreamTracker creates a tracker reading frames from r.
func NewStreamTracker(r io.Reader) *StreamTracker {
	return &StreamTracker{
		r:      r,
		frames: make(chan streamResult),
		done:   make(chan struct{}),
	}
}

// Next returns the next decoded frame.
// A line that fails to decode is reported as an error for that frame only;
// the stream continues with the following line.
func (t *StreamTracker) Next(ctx context.Context) (Observation, error) {
	t.startOnce.Do(func() { go t.read() })

	select {
	case <-ctx.Done():
		return Observation{}, ctx.Err()
	case <-t.done:
		return Observation{}, ErrTrackerClosed
	case res, ok := <-t.frames:
		if !ok {
			return Observation{}, io.EOF
		}
		return res.obs, res.err
	}
}

// Close stops delivering frames. It does not close the underlying reader.
func (t *StreamTracker) Close() error {
	t.closeOnce.Do(func() { close(t.done) })
	return nil
}

func (t *StreamTracker) read() {
	defer close(t.frames)

	scanner := bufio.NewScanner(t.r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		obs, err := DecodeObservation(line)
		select {
		case t.frames <- streamResult{obs: obs, err: err}:
		case <-t.done:
			return
		}
	}

	if err := scanner.Err(); err != nil {
		select {
		case t.frames <- streamResult{err: fmt.Errorf("read frame: %w", err)}:
		case <-t.done:
		}
	}
}

// jsonFrame is the wire format shared by the tracker process, the
// websocket feed and recorded sessions.
type jsonFrame struct {
	Hands     []jsonHand `json:"hands"`
	Timestamp int64      `json:"timestamp"`
	Advance   bool       `json:"advance,omitempty"`
}

type jsonHand struct {
	Points     []jsonPoint `json:"points"`
	Handedness string      `json:"handedness"`
	Score      float64     `json:"score"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (h jsonHand) toHandLandmarks() HandLandmarks {
	n := len(h.Points)
	if n > NumLandmarks {
		n = NumLandmarks
	}

	lm := HandLandmarks{
		Points:     make([]Point, n),
		Handedness: h.Handedness,
		Score:      h.Score,
	}
	for i := 0; i < n; i++ {
		lm.Points[i] = Point{X: h.Points[i].X, Y: h.Points[i].Y, Z: h.Points[i].Z}
	}

	return lm
}

// DecodeObservation parses one JSON frame.
func DecodeObservation(data []byte) (Observation, error) {
	var frame jsonFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return Observation{}, fmt.Errorf("parse frame: %w", err)
	}

	obs := Observation{
		Timestamp: frame.Timestamp,
		Advance:   frame.Advance,
	}
	if len(frame.Hands) > 0 {
		obs.Hands = make([]HandLandmarks, len(frame.Hands))
		for i, h := range frame.Hands {
			obs.Hands[i] = h.toHandLandmarks()
		}
	}

	return obs, nil
}

// EncodeObservation renders an observation as one JSON frame line
// (without the trailing newline).
func EncodeObservation(obs Observation) ([]byte, error) {
	frame := jsonFrame{
		Hands:     make([]jsonHand, len(obs.Hands)),
		Timestamp: obs.Timestamp,
		Advance:   obs.Advance,
	}
	for i, h := range obs.Hands {
		jh := jsonHand{
			Points:     make([]jsonPoint, len(h.Points)),
			Handedness: h.Handedness,
			Score:      h.Score,
		}
		for j, p := range h.Points {
			jh.Points[j] = jsonPoint{X: p.X, Y: p.Y, Z: p.Z}
		}
		frame.Hands[i] = jh
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return data, nil
}
