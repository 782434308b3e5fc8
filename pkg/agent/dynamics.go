package agent

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/picogrid/swarm-sim/pkg/control"
	"github.com/picogrid/swarm-sim/pkg/geometry"
)

// interceptorDynamics provides the ready and boost behavior shared by all
// interceptor types.
type interceptorDynamics struct{}

func (interceptorDynamics) UpdateReady(a *Agent, t float64) {
	// Subject to gravity and drag with no input acceleration.
	a.state.Acceleration = a.totalAcceleration(r3.Vec{}, false)
}

func (interceptorDynamics) UpdateBoost(a *Agent, t float64) {
	// The interceptor only accelerates along its roll axis.
	axes := geometry.AxesFromVelocity(a.state.Velocity).Normalized()
	boost := a.static.BoostAcceleration * geometry.StandardGravity
	input := r3.Scale(boost, axes.Roll)
	a.state.Acceleration = a.totalAcceleration(input, false)
}

// missileDynamics is a guided interceptor using proportional navigation
// against a tracked target model.
type missileDynamics struct {
	interceptorDynamics
}

func (missileDynamics) UpdateMidcourse(a *Agent, t float64) {
	input := r3.Vec{}
	if a.HasTarget() {
		// Extrapolate the target model to the current time.
		modelStep := t - a.targetModel.stateUpdateTime
		a.targetModel.Update(t)
		a.targetModel.Step(a.targetModel.stateUpdateTime, modelStep)

		// Resync the model with the true target state at the seeker
		// refresh rate.
		sensorUpdatePeriod := 1 / a.dynamic.SensorFrequency
		if t-a.sensorUpdateTime >= sensorUpdatePeriod {
			a.targetModel.SetState(a.target.State())
			a.sensorUpdateTime = t
		}

		if a.HasHitTarget() {
			killProbability := a.target.static.KillProbability
			if a.rng.Float64() < killProbability {
				a.MarkAsHit()
				a.target.MarkAsHit()
				return
			}
		}

		input = a.guidanceInput()
	}
	a.state.Acceleration = a.totalAcceleration(input, true)
}

// guidanceInput senses the target model and plans a proportional navigation
// command, clamped to the achievable lateral acceleration.
func (a *Agent) guidanceInput() r3.Vec {
	observed := a.seeker.Sense(a.state, a.targetModel.State())
	axes := geometry.AxesFromVelocity(a.state.Velocity).Normalized()
	input := control.ProportionalNavigation(axes, observed)
	return control.ClampToNorm(input, a.maxLateralAcceleration())
}

// carrierDynamics is an unguided interceptor that coasts under gravity and
// drag after boost. Submunition release is handled by Spawn.
type carrierDynamics struct {
	interceptorDynamics
}

func (carrierDynamics) UpdateMidcourse(a *Agent, t float64) {
	a.state.Acceleration = a.totalAcceleration(r3.Vec{}, false)
}

// dummyDynamics keeps whatever acceleration the boost phase left behind.
type dummyDynamics struct {
	interceptorDynamics
}

func (dummyDynamics) UpdateMidcourse(a *Agent, t float64) {}

// threatDynamics flies a fixed trajectory; the configured acceleration is
// never modified.
type threatDynamics struct{}

func (threatDynamics) UpdateReady(a *Agent, t float64)     {}
func (threatDynamics) UpdateBoost(a *Agent, t float64)     {}
func (threatDynamics) UpdateMidcourse(a *Agent, t float64) {}

// modelDynamics extrapolates a tracked target under its last known
// acceleration.
type modelDynamics struct{}

func (modelDynamics) UpdateReady(a *Agent, t float64)     {}
func (modelDynamics) UpdateBoost(a *Agent, t float64)     {}
func (modelDynamics) UpdateMidcourse(a *Agent, t float64) {}
