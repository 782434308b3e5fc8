// Package simulator orchestrates an engagement: it expands the scenario's
// swarms into agent rosters, then drives the fixed-step simulation loop.
package simulator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/picogrid/swarm-sim/pkg/agent"
	"github.com/picogrid/swarm-sim/pkg/assignment"
	"github.com/picogrid/swarm-sim/pkg/config"
	"github.com/picogrid/swarm-sim/pkg/logger"
	"github.com/picogrid/swarm-sim/pkg/random"
	"github.com/picogrid/swarm-sim/pkg/reporting"
	"github.com/picogrid/swarm-sim/pkg/workerpool"
)

// progressLogInterval is the number of ticks between progress log lines.
const progressLogInterval = 1000

// Simulator runs a single engagement scenario.
type Simulator struct {
	scenario *config.Scenario
	tStep    float64

	interceptors []*agent.Agent
	threats      []*agent.Agent

	strategy assignment.Strategy
	pool     *workerpool.Pool
	events   *reporting.EventLog
	log      logger.Logger

	// reported tracks threats whose destruction has been logged.
	reported map[uuid.UUID]bool
	// grounded tracks agents whose ground impact has been logged.
	grounded map[uuid.UUID]bool
}

// New builds the rosters from the scenario and starts the worker pool. The
// caller must call Close when done.
func New(scenario *config.Scenario) (*Simulator, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	strategy, err := assignment.New(scenario.Assignment)
	if err != nil {
		return nil, err
	}

	swarmRNG := random.New(random.Split(scenario.Seed, "swarm"))
	engagementRNG := random.New(random.Split(scenario.Seed, "engagement"))

	s := &Simulator{
		scenario: scenario,
		tStep:    scenario.StepTime,
		strategy: strategy,
		pool:     workerpool.New(workerpool.DefaultWorkers),
		events:   reporting.NewEventLog(false),
		log:      logger.WithPrefix("sim"),
		reported: make(map[uuid.UUID]bool),
		grounded: make(map[uuid.UUID]bool),
	}

	for i, swarm := range scenario.InterceptorSwarms {
		for n := 0; n < swarm.NumAgents; n++ {
			initial := sampleState(swarm.Agent.InitialState, swarmRNG)
			a, err := agent.New(agent.RoleInterceptor, swarm.Agent, initial, 0, false, engagementRNG)
			if err != nil {
				return nil, fmt.Errorf("interceptor swarm %d: %w", i, err)
			}
			s.interceptors = append(s.interceptors, a)
		}
	}
	for i, swarm := range scenario.ThreatSwarms {
		for n := 0; n < swarm.NumAgents; n++ {
			initial := sampleState(swarm.Agent.InitialState, swarmRNG)
			a, err := agent.New(agent.RoleThreat, swarm.Agent, initial, 0, false, engagementRNG)
			if err != nil {
				return nil, fmt.Errorf("threat swarm %d: %w", i, err)
			}
			s.threats = append(s.threats, a)
		}
	}

	s.pool.Start()
	return s, nil
}

// Run drives the simulation from t=0 until tEnd or until the context is
// cancelled.
func (s *Simulator) Run(ctx context.Context, tEnd float64) error {
	s.log.Infof("running scenario %q with %d interceptors and %d threats",
		s.scenario.Name, len(s.interceptors), len(s.threats))

	tick := 0
	for t := 0.0; t < tEnd; t += s.tStep {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("simulation interrupted at t=%.3f: %w", t, err)
		}
		if tick%progressLogInterval == 0 {
			s.log.Debugf("simulating t=%.3fs", t)
		}
		tick++

		if err := s.step(t); err != nil {
			return err
		}
	}
	return nil
}

// step advances the engagement by one tick. The cross-agent phases run
// sequentially; only the per-agent integration fans out to the pool.
func (s *Simulator) step(t float64) error {
	// Release targets that have already been destroyed.
	for _, interceptor := range s.interceptors {
		interceptor.CheckTarget()
	}

	if err := s.spawn(t); err != nil {
		return err
	}

	// Assign threats to interceptors.
	s.strategy.Assign(s.interceptors, s.threats)
	for _, pair := range s.strategy.Assignments() {
		interceptor := s.interceptors[pair.Interceptor]
		threat := s.threats[pair.Threat]
		interceptor.AssignTarget(threat)
		s.events.RecordAssignment(t, interceptor.ID(), threat.ID())
	}

	// Update the acceleration vector of each agent.
	for _, interceptor := range s.interceptors {
		if !interceptor.HasTerminated() {
			s.update(interceptor, t)
		}
	}
	for _, threat := range s.threats {
		if !threat.HasTerminated() {
			s.update(threat, t)
		}
	}
	s.recordInterceptions(t)

	// Step to the next time step.
	for _, a := range s.interceptors {
		if a.HasLaunched() && !a.HasTerminated() {
			a := a
			s.pool.QueueJob(func() { a.Step(t, s.tStep) })
		}
	}
	for _, a := range s.threats {
		if a.HasLaunched() && !a.HasTerminated() {
			a := a
			s.pool.QueueJob(func() { a.Step(t, s.tStep) })
		}
	}
	s.pool.Wait()
	s.recordGroundImpacts(t + s.tStep)
	return nil
}

// update advances an agent's phase and acceleration, logging the launch
// transition when it happens.
func (s *Simulator) update(a *agent.Agent, t float64) {
	wasLaunched := a.HasLaunched()
	a.Update(t)
	if !wasLaunched && a.HasLaunched() {
		s.events.RecordLaunch(t, a.ID(), a.Role().String(), a.Type())
	}
}

// spawn collects submunitions released this tick and appends them to the
// rosters.
func (s *Simulator) spawn(t float64) error {
	var spawnedInterceptors, spawnedThreats []*agent.Agent
	for _, interceptor := range s.interceptors {
		children, err := interceptor.Spawn(t)
		if err != nil {
			return err
		}
		if len(children) > 0 {
			s.events.RecordSpawn(t, interceptor.ID(), len(children))
			spawnedInterceptors = append(spawnedInterceptors, children...)
		}
	}
	for _, threat := range s.threats {
		children, err := threat.Spawn(t)
		if err != nil {
			return err
		}
		if len(children) > 0 {
			s.events.RecordSpawn(t, threat.ID(), len(children))
			spawnedThreats = append(spawnedThreats, children...)
		}
	}
	s.interceptors = append(s.interceptors, spawnedInterceptors...)
	s.threats = append(s.threats, spawnedThreats...)
	return nil
}

// recordInterceptions logs threats destroyed during this tick's updates.
func (s *Simulator) recordInterceptions(t float64) {
	for _, interceptor := range s.interceptors {
		target := interceptor.Target()
		if interceptor.Hit() && target != nil && target.Hit() && !s.reported[target.ID()] {
			s.reported[target.ID()] = true
			s.events.RecordInterception(t, interceptor.ID(), target.ID())
		}
	}
}

// recordGroundImpacts logs launched agents that ended this tick below the
// ground plane. Their state stays frozen where integration stopped.
func (s *Simulator) recordGroundImpacts(t float64) {
	for _, roster := range [][]*agent.Agent{s.interceptors, s.threats} {
		for _, a := range roster {
			if a.HasLaunched() && a.Position().Z < 0 && !s.grounded[a.ID()] {
				s.grounded[a.ID()] = true
				s.events.RecordGroundImpact(t, a.ID(), a.Role().String())
			}
		}
	}
}

// Interceptors returns the interceptor roster, including spawned
// submunitions.
func (s *Simulator) Interceptors() []*agent.Agent {
	return s.interceptors
}

// Threats returns the threat roster.
func (s *Simulator) Threats() []*agent.Agent {
	return s.threats
}

// Events returns the engagement event log.
func (s *Simulator) Events() *reporting.EventLog {
	return s.events
}

// Close shuts down the worker pool.
func (s *Simulator) Close() {
	s.pool.Stop()
}
