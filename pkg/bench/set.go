package bench

import (
	"encoding/binary"
	"math/rand/v2"
	"time"

	"slotbench/pkg/common"
)

// Set is the membership-check target. It is filled once by BuildSet and
// never mutated afterwards, so concurrent readers need no locking.
type Set struct {
	m map[common.Key]struct{}
}

func (s *Set) Contains(k common.Key) bool {
	_, ok := s.m[k]
	return ok
}

func (s *Set) Len() int {
	return len(s.m)
}

// BuildSet fills a set with exactly n distinct keys drawn from a
// ChaCha8 generator seeded with seed, and reports the fill time. Fill
// cost and query cost are separate questions, so the caller prints the
// duration apart from the check results.
func BuildSet(n int, seed uint64) (*Set, time.Duration) {
	t0 := time.Now()
	rng := newKeyRNG(seed)
	m := make(map[common.Key]struct{}, n)
	for len(m) < n {
		m[rng.next()] = struct{}{}
	}
	return &Set{m: m}, time.Since(t0)
}

type keyRNG struct {
	rng *rand.ChaCha8
}

func newKeyRNG(seed uint64) *keyRNG {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:8], seed)
	return &keyRNG{rng: rand.NewChaCha8(s)}
}

func (r *keyRNG) next() common.Key {
	var k common.Key
	r.rng.Read(k[:])
	return k
}
