// Package gesture classifies a tracked hand pose as a Rock-Paper-Scissors gesture.
package gesture

import (
	"errors"
	"fmt"

	"github.com/ayusman/rockpaper/internal/detector"
)

// ErrInvalidInput is returned when a hand does not carry every landmark the
// classifier reads.
var ErrInvalidInput = errors.New("invalid landmark input")

// minPoints is the shortest landmark slice Classify accepts: the pinky tip
// is the highest index it reads.
const minPoints = detector.PinkyTip + 1

// fingerTips are the landmarks counted as raised or folded.
// The thumb is not one of them.
var fingerTips = [...]int{
	detector.IndexTip,
	detector.MiddleTip,
	detector.RingTip,
	detector.PinkyTip,
}

// Classify maps one hand's landmarks to a gesture.
//
// A finger counts as extended when its tip is strictly above the index
// knuckle (smaller Y). Zero extended fingers is Rock, two is Scissors, four is
// Paper; one or three is Unknown. No smoothing or normalization is applied.
func Classify(points []detector.Point) (Gesture, error) {
	if len(points) < minPoints {
		return Unknown, fmt.Errorf("%w: need %d landmarks, got %d", ErrInvalidInput, minPoints, len(points))
	}

	// Read but unused: a thumb check could split the 1 and 3 finger cases.
	_ = points[detector.ThumbTip]

	knuckle := points[detector.IndexMCP].Y

	extended := 0
	for _, tip := range fingerTips {
		if points[tip].Y < knuckle {
			extended++
		}
	}

	switch extended {
	case 0:
		return Rock, nil
	case 2:
		return Scissors, nil
	case 4:
		return Paper, nil
	default:
		return Unknown, nil
	}
}

// ClassifyHands classifies every tracked hand in a frame.
// No hands is Unknown; with several hands the last one that resolves to a
// move wins.
func ClassifyHands(hands []detector.HandLandmarks) (Gesture, error) {
	result := Unknown
	for i := range hands {
		g, err := Classify(hands[i].Points)
		if err != nil {
			return Unknown, fmt.Errorf("hand %d: %w", i, err)
		}
		if g != Unknown {
			result = g
		}
	}
	return result, nil
}
