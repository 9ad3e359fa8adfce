package round

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ayusman/rockpaper/internal/gesture"
)

// MoveSource supplies opponent moves.
type MoveSource interface {
	Next() gesture.Move
}

// RandomSource draws moves uniformly at random.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a source seeded with seed. A zero seed draws one
// from the clock.
func NewRandomSource(seed uint64) *RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomSource{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next returns Rock, Paper or Scissors with equal probability.
func (s *RandomSource) Next() gesture.Move {
	return gesture.Moves[s.rng.IntN(len(gesture.Moves))]
}

// FixedSource replays a scripted sequence of moves, cycling when exhausted.
type FixedSource struct {
	moves []gesture.Move
	next  int
	drawn int
	mu    sync.Mutex
}

// NewFixedSource creates a source that returns moves in order.
func NewFixedSource(moves ...gesture.Move) *FixedSource {
	if len(moves) == 0 {
		panic("round: fixed source needs at least one move")
	}
	return &FixedSource{moves: moves}
}

// Next returns the next scripted move.
func (s *FixedSource) Next() gesture.Move {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.moves[s.next]
	s.next = (s.next + 1) % len(s.moves)
	s.drawn++
	return m
}

// Drawn returns how many moves have been handed out.
func (s *FixedSource) Drawn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawn
}
