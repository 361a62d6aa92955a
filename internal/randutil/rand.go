// Package randutil builds the single explicit random source that a session
// threads through deck shuffles, dealer burn rolls and roulette draws.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Two sources
// built from the same seed produce identical rounds.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenRatio64)))
}

// Seed returns *seed when set, otherwise a time-derived seed. The chosen value
// is returned so callers can log it and replay the session later.
func Seed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return time.Now().UnixNano()
}

// Derive returns a child seed for the n-th independent session of a run.
func Derive(seed int64, n int) int64 {
	return int64(splitmix(uint64(seed) + uint64(n)*goldenRatio64))
}

// Chance reports true with probability p.
func Chance(rng *rand.Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
