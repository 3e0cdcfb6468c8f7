package service

import (
	"math/rand/v2"
	"sync"
)

// Chooser picks an index in [0, n). Menu generation draws every dish through it.
type Chooser interface {
	IntN(n int) int
}

type RandomChooser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomChooser(seed1, seed2 uint64) *RandomChooser {
	return &RandomChooser{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (c *RandomChooser) IntN(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.IntN(n)
}
