package engine

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource is the only source of randomness the engines use. Tests inject
// a scripted or seeded source; production uses NewSource.
type RandomSource interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// Intn returns a value in [0,n). n must be > 0.
	Intn(n int) int
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededSource returns a deterministic source safe for concurrent use.
func NewSeededSource(seed int64) RandomSource {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

// NewSource returns a time-seeded source safe for concurrent use.
func NewSource() RandomSource {
	return NewSeededSource(time.Now().UnixNano())
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// chance reports a Bernoulli draw with probability p.
func chance(rng RandomSource, p float64) bool {
	return rng.Float64() < p
}
