// Package agent implements the entities of an engagement: interceptors,
// threats, and the model agents interceptors use to track their targets.
// Behavior that varies by agent type is supplied by a Dynamics strategy.
package agent

import (
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/picogrid/swarm-sim/pkg/config"
	"github.com/picogrid/swarm-sim/pkg/geometry"
	"github.com/picogrid/swarm-sim/pkg/random"
	"github.com/picogrid/swarm-sim/pkg/sensor"
)

// integrationSubsteps is the number of constant-acceleration substeps per
// simulation step.
const integrationSubsteps = 10

// Dynamics supplies the phase-specific acceleration updates for an agent
// type.
type Dynamics interface {
	UpdateReady(a *Agent, t float64)
	UpdateBoost(a *Agent, t float64)
	UpdateMidcourse(a *Agent, t float64)
}

// Agent is a single entity in the simulation. Agents are not safe for
// concurrent mutation; the simulator serializes all cross-agent phases and
// only fans out the Step phase, which touches no other agent.
type Agent struct {
	id   uuid.UUID
	role Role
	typ  string

	tCreation       float64
	state           geometry.State
	stateUpdateTime float64
	phase           FlightPhase

	static       config.StaticConfig
	dynamic      config.DynamicConfig
	submunitions *config.SubmunitionConfig

	dynamics Dynamics
	seeker   sensor.Sensor

	// sensorUpdateTime is the time of the last seeker refresh. It starts
	// far in the past so the first guidance update always resyncs.
	sensorUpdateTime float64

	target      *Agent
	targetModel *Agent

	history *geometry.History
	hit     bool
	spawned bool

	rng *random.Generator
}

func newAgent(role Role, typ string, static config.StaticConfig, cfg config.AgentConfig,
	initial geometry.State, tCreation float64, ready bool, dynamics Dynamics,
	seeker sensor.Sensor, rng *random.Generator) *Agent {
	phase := PhaseUninitialized
	if ready {
		phase = PhaseReady
	}
	return &Agent{
		id:               uuid.New(),
		role:             role,
		typ:              typ,
		tCreation:        tCreation,
		state:            initial,
		stateUpdateTime:  tCreation,
		phase:            phase,
		static:           static,
		dynamic:          cfg.Dynamic,
		submunitions:     cfg.Submunitions,
		dynamics:         dynamics,
		seeker:           seeker,
		sensorUpdateTime: -math.MaxFloat64,
		history:          geometry.NewHistory(geometry.Record{T: tCreation, State: initial}),
		rng:              rng,
	}
}

// ID returns the agent's unique identifier.
func (a *Agent) ID() uuid.UUID { return a.id }

// Role returns whether the agent is an interceptor or a threat.
func (a *Agent) Role() Role { return a.role }

// Type returns the agent's type name.
func (a *Agent) Type() string { return a.typ }

// Phase returns the current flight phase.
func (a *Agent) Phase() FlightPhase { return a.phase }

// State returns the current kinematic state.
func (a *Agent) State() geometry.State { return a.state }

// Position returns the current position.
func (a *Agent) Position() r3.Vec { return a.state.Position }

// Velocity returns the current velocity.
func (a *Agent) Velocity() r3.Vec { return a.state.Velocity }

// Speed returns the current speed.
func (a *Agent) Speed() float64 { return a.state.Speed() }

// Static returns the agent's physical parameters.
func (a *Agent) Static() config.StaticConfig { return a.static }

// History returns the agent's state history.
func (a *Agent) History() *geometry.History { return a.history }

// Hit reports whether the agent has hit or been hit.
func (a *Agent) Hit() bool { return a.hit }

// HasLaunched reports whether the agent has left the ready phase.
func (a *Agent) HasLaunched() bool {
	return a.phase != PhaseUninitialized && a.phase != PhaseReady
}

// HasTerminated reports whether the agent's flight has ended.
func (a *Agent) HasTerminated() bool {
	return a.phase == PhaseTerminated
}

// Assignable reports whether the agent can accept a target. Only airborne
// interceptors without a target and with flight time remaining qualify.
func (a *Agent) Assignable() bool {
	return a.role == RoleInterceptor && a.HasLaunched() && !a.HasTarget() && !a.HasTerminated()
}

// SetState overwrites the agent's state and amends the latest history
// record to match.
func (a *Agent) SetState(state geometry.State) {
	a.state = state
	rec := a.history.Back()
	rec.State = state
	a.history.UpdateLast(rec)
}

// Target returns the agent's assigned target, or nil.
func (a *Agent) Target() *Agent { return a.target }

// HasTarget reports whether the agent has an assigned target.
func (a *Agent) HasTarget() bool { return a.target != nil }

// AssignTarget assigns a target and builds a fresh model of it from its
// current state.
func (a *Agent) AssignTarget(target *Agent) {
	a.target = target
	a.targetModel = newModelAgent(target.State(), a.rng)
}

// UnassignTarget clears the target and its model together.
func (a *Agent) UnassignTarget() {
	a.target = nil
	a.targetModel = nil
}

// CheckTarget releases the target if it has already been destroyed.
func (a *Agent) CheckTarget() {
	if a.HasTarget() && a.target.Hit() {
		a.UnassignTarget()
	}
}

// HasHitTarget reports whether the assigned target lies within the agent's
// hit radius.
func (a *Agent) HasHitTarget() bool {
	if !a.HasTarget() {
		return false
	}
	distance := r3.Norm(r3.Sub(a.target.Position(), a.Position()))
	return distance <= a.static.HitRadius
}

// MarkAsHit ends the agent's flight and records the hit in the latest
// history record.
func (a *Agent) MarkAsHit() {
	a.hit = true
	rec := a.history.Back()
	rec.Hit = true
	a.history.UpdateLast(rec)
	a.phase = PhaseTerminated
}

// Update advances the flight phase for the given time and delegates the
// acceleration update to the agent's dynamics. Terminated agents are left
// untouched.
func (a *Agent) Update(t float64) {
	if a.HasTerminated() {
		return
	}

	launch := a.tCreation + a.dynamic.LaunchTime
	if t >= launch && a.phase < PhaseBoost {
		a.phase = PhaseBoost
	}
	if t >= launch+a.static.BoostTime && a.phase < PhaseMidcourse {
		a.phase = PhaseMidcourse
	}

	switch a.phase {
	case PhaseUninitialized:
		return
	case PhaseReady:
		a.dynamics.UpdateReady(a, t)
	case PhaseBoost:
		a.dynamics.UpdateBoost(a, t)
	case PhaseMidcourse, PhaseTerminal:
		a.dynamics.UpdateMidcourse(a, t)
	}
}

// Step integrates the equations of motion over one simulation step using
// fixed constant-acceleration substeps. A zero step is a strict no-op. An
// agent that reaches the ground stops integrating for the remainder of the
// step.
func (a *Agent) Step(tStart, tStep float64) {
	if tStep == 0 {
		return
	}

	rec := a.history.Back()
	rec.T = tStart
	rec.State = a.state
	a.history.UpdateLast(rec)

	dt := tStep / integrationSubsteps
	for i := 0; i < integrationSubsteps; i++ {
		if a.state.Position.Z < 0 {
			break
		}
		displacement := r3.Add(
			r3.Scale(dt, a.state.Velocity),
			r3.Scale(dt*dt/2, a.state.Acceleration),
		)
		a.state.Position = r3.Add(a.state.Position, displacement)
		a.state.Velocity = r3.Add(a.state.Velocity, r3.Scale(dt, a.state.Acceleration))
	}

	tEnd := tStart + tStep
	a.history.Add(geometry.Record{T: tEnd, Hit: a.hit, State: a.state})
	a.stateUpdateTime = tEnd
}

// Spawn releases the agent's submunitions once the submunition launch time
// has passed. Submunitions inherit the parent's current state and role and
// launch immediately. At most one release ever occurs.
func (a *Agent) Spawn(t float64) ([]*Agent, error) {
	if a.spawned || a.submunitions == nil {
		return nil, nil
	}
	sub := a.submunitions
	if t < a.tCreation+a.dynamic.LaunchTime+sub.LaunchTime {
		return nil, nil
	}

	cfg := config.AgentConfig{Type: sub.Type, Dynamic: sub.Dynamic}
	children := make([]*Agent, 0, sub.NumSubmunitions)
	for i := 0; i < sub.NumSubmunitions; i++ {
		child, err := New(a.role, cfg, a.state, t, true, a.rng)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	a.spawned = true
	return children, nil
}

// gravity returns the gravitational acceleration vector at the agent's
// altitude.
func (a *Agent) gravity() r3.Vec {
	return r3.Vec{Z: -geometry.GravityAt(a.state.Position.Z)}
}

// dynamicPressure returns the dynamic pressure on the agent in Pa.
func (a *Agent) dynamicPressure() float64 {
	airDensity := geometry.AirDensityAt(a.state.Position.Z)
	flowSpeed := a.Speed()
	return airDensity * flowSpeed * flowSpeed / 2
}

// maxLateralAcceleration returns the agent's maximum lateral acceleration
// at its current speed. It scales with the squared speed.
func (a *Agent) maxLateralAcceleration() float64 {
	ratio := a.Speed() / a.static.ReferenceSpeed
	return ratio * ratio * a.static.MaxReferenceAcceleration * geometry.StandardGravity
}

// totalAcceleration combines an acceleration input with gravity and drag.
// With compensateForGravity set, the component of gravity orthogonal to the
// roll axis is cancelled by lift.
func (a *Agent) totalAcceleration(input r3.Vec, compensateForGravity bool) r3.Vec {
	gravity := a.gravity()
	axes := geometry.AxesFromVelocity(a.state.Velocity).Normalized()

	compensated := input
	if compensateForGravity {
		onPitch := r3.Scale(r3.Dot(gravity, axes.Pitch), axes.Pitch)
		onYaw := r3.Scale(r3.Dot(gravity, axes.Yaw), axes.Yaw)
		compensated = r3.Sub(compensated, r3.Add(onPitch, onYaw))
	}

	airDrag := a.airDrag()
	liftInducedDrag := a.liftInducedDrag(compensated)
	drag := r3.Scale(-(airDrag + liftInducedDrag), axes.Roll)

	return r3.Add(compensated, r3.Add(gravity, drag))
}

// airDrag returns the drag deceleration along the roll axis in m/s^2.
func (a *Agent) airDrag() float64 {
	dragForce := a.static.DragCoefficient * a.dynamicPressure() * a.static.CrossSectionalArea
	return dragForce / a.static.Mass
}

// liftInducedDrag returns the drag deceleration induced by the lateral
// component of the acceleration input.
func (a *Agent) liftInducedDrag(input r3.Vec) float64 {
	axes := geometry.AxesFromVelocity(a.state.Velocity).Normalized()
	lateral := r3.Sub(input, r3.Scale(r3.Dot(input, axes.Roll), axes.Roll))
	return math.Abs(r3.Norm(lateral) / a.static.LiftDragRatio)
}
