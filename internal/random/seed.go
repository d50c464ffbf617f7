// Package random provides cryptographic seed generation and the
// pseudo-random sources dice are drawn from.
//
// Seeds come from crypto/rand so separate runs never repeat; a fixed seed
// can be supplied when a reproducible sequence is wanted.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a call-local generator. A zero seed is replaced by one from
// NewSeed. The returned seed is the one actually used.
func New(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			return nil, 0, err
		}
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}

// Locked is a generator safe for concurrent use. Every draw holds the mutex.
type Locked struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLocked returns a shared generator seeded like New.
func NewLocked(seed int64) (*Locked, error) {
	rng, _, err := New(seed)
	if err != nil {
		return nil, err
	}
	return &Locked{rng: rng}, nil
}

// Intn returns a value in [0, n).
func (l *Locked) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}
