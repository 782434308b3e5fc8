// Package geometry defines the kinematic primitives shared by the simulation:
// agent state vectors, body-frame principal axes, the standard-atmosphere
// model, and the per-agent state history.
package geometry

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// State is the kinematic state of an agent at a point in logical time.
type State struct {
	Position     r3.Vec `json:"position"`
	Velocity     r3.Vec `json:"velocity"`
	Acceleration r3.Vec `json:"acceleration"`
}

// Speed returns the magnitude of the velocity vector.
func (s State) Speed() float64 {
	return r3.Norm(s.Velocity)
}

// PrincipalAxes are the body-frame axes of an agent.
//
// The roll axis is assumed to be aligned with the agent's velocity vector,
// the pitch axis points to the agent's starboard, and the yaw axis points
// upwards relative to the roll-pitch plane.
type PrincipalAxes struct {
	Roll  r3.Vec
	Pitch r3.Vec
	Yaw   r3.Vec
}

// AxesFromVelocity derives the principal axes from a velocity vector.
func AxesFromVelocity(velocity r3.Vec) PrincipalAxes {
	roll := velocity
	pitch := r3.Vec{X: roll.Y, Y: -roll.X, Z: 0}
	yaw := r3.Cross(pitch, roll)
	return PrincipalAxes{Roll: roll, Pitch: pitch, Yaw: yaw}
}

// Normalized returns the principal axes scaled to unit length. Zero axes are
// left untouched so that a stationary agent does not produce NaNs.
func (a PrincipalAxes) Normalized() PrincipalAxes {
	return PrincipalAxes{
		Roll:  normalize(a.Roll),
		Pitch: normalize(a.Pitch),
		Yaw:   normalize(a.Yaw),
	}
}

func normalize(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 {
		return v
	}
	return r3.Scale(1/n, v)
}
