// Package control implements guidance laws that turn sensor observations
// into acceleration commands.
package control

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/picogrid/swarm-sim/pkg/geometry"
	"github.com/picogrid/swarm-sim/pkg/sensor"
)

// ProportionalNavigationGain is the dimensionless navigation constant.
const ProportionalNavigationGain = 3

// ProportionalNavigation computes an acceleration command proportional to
// the rate of change of the bearing to the target. The command lies in the
// pitch-yaw plane since a missile cannot accelerate along its roll axis.
func ProportionalNavigation(axes geometry.PrincipalAxes, observed sensor.Output) r3.Vec {
	closingVelocity := -observed.Velocity.Range
	bearingRate := r3.Add(
		r3.Scale(observed.Velocity.Azimuth, axes.Pitch),
		r3.Scale(observed.Velocity.Elevation, axes.Yaw),
	)
	return r3.Scale(ProportionalNavigationGain*closingVelocity, bearingRate)
}

// ClampToNorm limits a vector to the given magnitude, preserving direction.
func ClampToNorm(v r3.Vec, max float64) r3.Vec {
	n := r3.Norm(v)
	if n <= max || n == 0 {
		return v
	}
	return r3.Scale(max/n, v)
}
