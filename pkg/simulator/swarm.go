package simulator

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/picogrid/swarm-sim/pkg/config"
	"github.com/picogrid/swarm-sim/pkg/geometry"
	"github.com/picogrid/swarm-sim/pkg/random"
)

// sampleState draws an initial state from the swarm's per-axis Gaussian
// distribution.
func sampleState(dist config.StateDistribution, rng *random.Generator) geometry.State {
	return geometry.State{
		Position:     sampleVector(dist.Position, rng),
		Velocity:     sampleVector(dist.Velocity, rng),
		Acceleration: sampleVector(dist.Acceleration, rng),
	}
}

func sampleVector(dist config.VectorDistribution, rng *random.Generator) r3.Vec {
	return r3.Vec{
		X: rng.Normal(dist.Mean.X, dist.Stddev.X),
		Y: rng.Normal(dist.Mean.Y, dist.Stddev.Y),
		Z: rng.Normal(dist.Mean.Z, dist.Stddev.Z),
	}
}
