// Package rng provides the random source used for room binding and clue
// ordering. Production code seeds ChaCha8 from the operating system; tests
// use fixed seeds.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// Shuffler reorders slices and picks indexes.
type Shuffler interface {
	// Shuffle permutes n items in place through swap, Fisher–Yates style.
	Shuffle(n int, swap func(i, j int))
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// Source is a Shuffler backed by math/rand/v2. It is safe for concurrent use.
type Source struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a Source seeded from crypto/rand.
func New() *Source {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand.Read does not fail on supported platforms.
		panic("rng: reading system entropy: " + err.Error())
	}
	return &Source{r: rand.New(rand.NewChaCha8(seed))}
}

// NewSeeded returns a deterministic Source.
func NewSeeded(seed uint64) *Source {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:8], seed)
	return &Source{r: rand.New(rand.NewChaCha8(s))}
}

func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.Shuffle(n, swap)
}

func (s *Source) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// ShuffleSlice permutes a slice in place.
func ShuffleSlice[T any](s Shuffler, items []T) {
	s.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// Identity is a Shuffler that never reorders and always picks 0.
type Identity struct{}

func (Identity) Shuffle(int, func(i, j int)) {}

func (Identity) IntN(int) int { return 0 }

// Reverse is a Shuffler that reverses order. Handy for asserting that a
// caller really shuffles.
type Reverse struct{}

func (Reverse) Shuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func (Reverse) IntN(n int) int { return n - 1 }
