package engine

import (
	"fmt"
	"math/rand/v2"
)

// Source supplies the three distributions the engine draws from. Any
// *rand.Rand from math/rand/v2 satisfies it; tests can plug in a scripted
// source to make generation deterministic.
type Source interface {
	Float64() float64     // Uniform in [0, 1)
	IntN(n int) int       // Uniform in [0, n)
	NormFloat64() float64 // Standard normal
}

// NewSource returns a seeded PCG-backed Source.
func NewSource(seed int64) Source {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// normal draws from N(mean, sigma). A non-positive sigma is a programming
// error: the generator formulas are only defined for balls_per_shot >= 1.
func normal(src Source, mean, sigma float64) float64 {
	if !(sigma > 0) {
		panic(fmt.Sprintf("engine: normal distribution needs sigma > 0, got %v", sigma))
	}
	return mean + sigma*src.NormFloat64()
}
