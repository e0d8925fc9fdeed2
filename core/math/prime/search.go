package prime

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/apex/log"
	"github.com/mr-shifu/rsa-messenger/core/math/sample"
	"github.com/mr-shifu/rsa-messenger/core/pool"
)

// MaxAttempts bounds how many times a search is restarted after finding an
// empty result slot.
const MaxAttempts = 3

var (
	ErrInvalidParams     = errors.New("prime: bits must be >= 2 and count >= 1")
	ErrSearchConsistency = errors.New("prime: search left empty result slots")
)

// searchConfig is shared read-only by all workers of one search.
type searchConfig struct {
	bits   int
	count  int
	rounds int
}

// collector holds the result slots of one search. Slots are reserved with a
// single atomic increment, so no two workers ever write the same index.
type collector struct {
	mu      sync.Mutex
	slots   []*big.Int
	claimed atomic.Int64
}

func newCollector(count int) *collector {
	return &collector{slots: make([]*big.Int, count)}
}

// open reports whether unclaimed slots remain.
func (c *collector) open() bool {
	return c.claimed.Load() < int64(len(c.slots))
}

// claim stores p in the next free slot. It returns false if all slots were
// already taken, in which case p is discarded.
func (c *collector) claim(p *big.Int) bool {
	idx := c.claimed.Add(1) - 1
	if idx >= int64(len(c.slots)) {
		return false
	}
	c.mu.Lock()
	c.slots[idx] = p
	c.mu.Unlock()
	return true
}

// results returns the slots, or nil if any of them is empty.
func (c *collector) results() []*big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.slots {
		if p == nil {
			return nil
		}
	}
	out := make([]*big.Int, len(c.slots))
	copy(out, c.slots)
	return out
}

// Find returns `count` probable primes of exactly `bits` bits, searched by all
// workers of pl in parallel.
//
// The order of the returned primes reflects the order in which workers claimed
// a slot and carries no other meaning. The search has no timeout.
func Find(pl *pool.Pool, bits, count int) ([]*big.Int, error) {
	if bits < 2 || count < 1 {
		return nil, ErrInvalidParams
	}
	cfg := searchConfig{bits: bits, count: count, rounds: DefaultRounds}

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		c := newCollector(cfg.count)
		if err := pl.Run(pl.Workers(), func(int) error {
			return search(cfg, c)
		}); err != nil {
			return nil, err
		}

		if primes := c.results(); primes != nil {
			return primes, nil
		}
		log.WithFields(log.Fields{
			"bits":    cfg.bits,
			"count":   cfg.count,
			"attempt": attempt,
		}).Warn("prime search left empty slots, restarting")
	}
	return nil, ErrSearchConsistency
}

// FindOne returns a single probable prime of exactly `bits` bits.
func FindOne(pl *pool.Pool, bits int) (*big.Int, error) {
	primes, err := Find(pl, bits, 1)
	if err != nil {
		return nil, err
	}
	return primes[0], nil
}

func search(cfg searchConfig, c *collector) error {
	for c.open() {
		candidate, err := sample.Bits(rand.Reader, cfg.bits)
		if err != nil {
			return err
		}
		if IsProbablyPrime(candidate, cfg.rounds) {
			c.claim(candidate)
		}
	}
	return nil
}
