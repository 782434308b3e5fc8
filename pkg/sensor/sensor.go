// Package sensor models onboard seekers that observe a target relative to
// the sensing agent's body frame.
package sensor

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/picogrid/swarm-sim/pkg/geometry"
)

// Spherical holds a measurement in the sensing agent's spherical frame. For
// a position measurement Range is in meters and the angles in radians; for a
// velocity measurement Range is the range rate in m/s and the angles are
// angular rates in rad/s.
type Spherical struct {
	Range     float64
	Azimuth   float64
	Elevation float64
}

// Output is a single observation of a target.
type Output struct {
	// PositionCartesian is the target position relative to the sensing
	// agent in world coordinates.
	PositionCartesian r3.Vec

	// Position is the target position in the sensing agent's spherical
	// frame.
	Position Spherical

	// Velocity is the target velocity in the sensing agent's spherical
	// frame.
	Velocity Spherical
}

// Sensor observes a target state from the perspective of an own state.
type Sensor interface {
	Sense(own, target geometry.State) Output
}

// Ideal is a noiseless sensor with unlimited range.
type Ideal struct{}

// NewIdeal returns an ideal sensor.
func NewIdeal() *Ideal {
	return &Ideal{}
}

// Sense observes the target relative to the sensing agent.
func (s *Ideal) Sense(own, target geometry.State) Output {
	var out Output
	axes := geometry.AxesFromVelocity(own.Velocity).Normalized()
	relPos := r3.Sub(target.Position, own.Position)

	out.PositionCartesian = relPos
	out.Position = sensePosition(relPos, axes)
	out.Velocity = senseVelocity(relPos, r3.Sub(target.Velocity, own.Velocity), axes)
	return out
}

func sensePosition(relPos r3.Vec, axes geometry.PrincipalAxes) Spherical {
	var sph Spherical
	sph.Range = r3.Norm(relPos)

	// Split the relative position into its component along the yaw axis
	// and its projection onto the roll-pitch plane.
	onYaw := r3.Scale(r3.Dot(relPos, axes.Yaw), axes.Yaw)
	onRollPitch := r3.Sub(relPos, onYaw)

	elevationSign := 1.0
	if r3.Dot(onYaw, axes.Yaw) < 0 {
		elevationSign = -1
	}
	sph.Elevation = elevationSign * math.Atan(r3.Norm(onYaw)/r3.Norm(onRollPitch))

	onRoll := r3.Scale(r3.Dot(onRollPitch, axes.Roll), axes.Roll)
	onPitch := r3.Sub(onRollPitch, onRoll)

	if r3.Norm(onPitch) > 0 || r3.Norm(onRoll) > 0 {
		azimuthSign := 1.0
		if r3.Dot(onPitch, axes.Pitch) < 0 {
			azimuthSign = -1
		}
		sph.Azimuth = azimuthSign * math.Atan(r3.Norm(onPitch)/r3.Norm(onRoll))
	}
	return sph
}

func senseVelocity(relPos, relVel r3.Vec, axes geometry.PrincipalAxes) Spherical {
	var sph Spherical
	rng := r3.Norm(relPos)

	// Project the relative velocity onto the line of sight.
	onLOS := r3.Scale(r3.Dot(relVel, relPos)/(rng*rng), relPos)

	rangeRateSign := 1.0
	if r3.Dot(onLOS, relPos) < 0 {
		rangeRateSign = -1
	}
	sph.Range = rangeRateSign * r3.Norm(onLOS)

	// The remainder of the relative velocity lies on the sphere passing
	// through the target.
	onSphere := r3.Sub(relVel, onLOS)

	// The azimuth direction points starboard of the target along the
	// sphere; the elevation direction points upwards. Either is undefined
	// when the line of sight is parallel to the yaw or pitch axis.
	azDir := r3.Cross(relPos, axes.Yaw)
	elDir := r3.Cross(axes.Pitch, relPos)
	if r3.Norm(azDir) == 0 {
		azDir = r3.Cross(relPos, elDir)
	} else if r3.Norm(elDir) == 0 {
		elDir = r3.Cross(azDir, relPos)
	}

	onAz := r3.Scale(r3.Dot(onSphere, azDir)/(r3.Norm(azDir)*r3.Norm(azDir)), azDir)
	azSign := 1.0
	if r3.Dot(onAz, azDir) < 0 {
		azSign = -1
	}
	sph.Azimuth = azSign * r3.Norm(onAz) / rng

	onEl := r3.Sub(onSphere, onAz)
	elSign := 1.0
	if r3.Dot(onEl, elDir) < 0 {
		elSign = -1
	}
	sph.Elevation = elSign * r3.Norm(onEl) / rng
	return sph
}
