package dither

import (
	"math/rand/v2"
	"time"
)

// ThresholdSource yields the per-pixel thresholds of random dithering,
// uniformly distributed in [0,255).
type ThresholdSource interface {
	NextThreshold() uint8
}

type RandSource struct {
	rng *rand.Rand
}

// NewRandSource returns a reproducible source for the given seed.
func NewRandSource(seed uint64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewPCG(seed, seed))}
}

// NewClockSource seeds a source from the wall clock. Two runs will not
// produce the same pattern.
func NewClockSource() *RandSource {
	return NewRandSource(uint64(time.Now().UnixNano()))
}

func (s *RandSource) NextThreshold() uint8 {
	return uint8(s.rng.IntN(255))
}

type randomThreshold struct {
	src ThresholdSource
}

func (t randomThreshold) Bump(_, _ int, v uint8) bool {
	return v >= t.src.NextThreshold()
}
