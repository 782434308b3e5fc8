// Package random provides seeded, partitionable randomness for the
// simulation. Each subsystem derives its own generator from the scenario
// seed so that adding draws to one subsystem does not perturb another.
package random

import (
	"hash/fnv"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Generator produces reproducible random draws from a dedicated PCG source.
type Generator struct {
	src rand.Source
}

// New returns a generator seeded with the given value.
func New(seed uint64) *Generator {
	return &Generator{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
}

// Split derives a subsystem seed from the scenario seed. Distinct subsystem
// names map to distinct, stable seeds.
func Split(seed uint64, subsystem string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(subsystem))
	return seed ^ h.Sum64()
}

// Normal draws from a normal distribution. A zero standard deviation
// returns the mean without consuming a draw.
func (g *Generator) Normal(mean, stddev float64) float64 {
	if stddev == 0 {
		return mean
	}
	return distuv.Normal{Mu: mean, Sigma: stddev, Src: g.src}.Rand()
}

// Uniform draws from a uniform distribution over [min, max).
func (g *Generator) Uniform(min, max float64) float64 {
	if min == max {
		return min
	}
	return distuv.Uniform{Min: min, Max: max, Src: g.src}.Rand()
}

// Float64 draws a uniform value in [0, 1).
func (g *Generator) Float64() float64 {
	return rand.New(g.src).Float64()
}
