// Package config defines the scenario configuration for the simulation and
// its YAML loader.
package config

import (
	"fmt"
	"time"
)

// Scenario is the root configuration for a simulation run.
type Scenario struct {
	Name       string  `yaml:"name"`
	StepTime   float64 `yaml:"step_time"`
	EndTime    float64 `yaml:"end_time"`
	Seed       uint64  `yaml:"seed"`
	// Assignment names a strategy known to pkg/assignment; empty selects
	// the default. assignment.New rejects unknown names.
	Assignment string `yaml:"assignment,omitempty"`

	InterceptorSwarms []Swarm `yaml:"interceptor_swarms"`
	ThreatSwarms      []Swarm `yaml:"threat_swarms"`
}

// Swarm configures a homogeneous group of agents sharing a type and an
// initial state distribution.
type Swarm struct {
	NumAgents int         `yaml:"num_agents"`
	Agent     AgentConfig `yaml:"agent"`
}

// AgentConfig configures a single agent or a submunition template.
type AgentConfig struct {
	Type         string             `yaml:"type"`
	InitialState StateDistribution  `yaml:"initial_state"`
	Dynamic      DynamicConfig      `yaml:"dynamic_config"`
	Static       *StaticConfig      `yaml:"static_config,omitempty"`
	Submunitions *SubmunitionConfig `yaml:"submunitions,omitempty"`
}

// StateDistribution is a per-axis Gaussian over the initial kinematic state.
// Standard deviations of zero collapse to the mean.
type StateDistribution struct {
	Position     VectorDistribution `yaml:"position"`
	Velocity     VectorDistribution `yaml:"velocity"`
	Acceleration VectorDistribution `yaml:"acceleration,omitempty"`
}

// VectorDistribution is an independent Gaussian per vector component.
type VectorDistribution struct {
	Mean   Vector `yaml:"mean"`
	Stddev Vector `yaml:"stddev,omitempty"`
}

// Vector is a three-component vector in the YAML schema.
type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// DynamicConfig holds per-run behavioral parameters.
type DynamicConfig struct {
	// LaunchTime is the delay in seconds after creation before the agent
	// transitions out of the ready phase.
	LaunchTime float64 `yaml:"launch_time"`

	// SensorFrequency is the seeker refresh rate in Hz.
	SensorFrequency float64 `yaml:"sensor_frequency,omitempty"`
}

// StaticConfig holds physical parameters of an agent type. When present in
// a scenario it overrides the built-in values for the type.
type StaticConfig struct {
	Mass               float64 `yaml:"mass"`
	CrossSectionalArea float64 `yaml:"cross_sectional_area"`
	DragCoefficient    float64 `yaml:"drag_coefficient"`
	LiftDragRatio      float64 `yaml:"lift_drag_ratio"`

	// BoostTime is the duration of the boost phase in seconds.
	BoostTime float64 `yaml:"boost_time"`

	// BoostAcceleration is the boost-phase acceleration in multiples of
	// standard gravity.
	BoostAcceleration float64 `yaml:"boost_acceleration"`

	// MaxReferenceAcceleration is the maximum lateral acceleration at the
	// reference speed, in multiples of standard gravity.
	MaxReferenceAcceleration float64 `yaml:"max_reference_acceleration"`
	ReferenceSpeed           float64 `yaml:"reference_speed"`

	HitRadius       float64 `yaml:"hit_radius"`
	KillProbability float64 `yaml:"kill_probability"`
}

// SubmunitionConfig configures the payload a carrier releases mid-flight.
type SubmunitionConfig struct {
	NumSubmunitions int           `yaml:"num_submunitions"`
	Type            string        `yaml:"type"`
	LaunchTime      float64       `yaml:"launch_time"`
	Dynamic         DynamicConfig `yaml:"dynamic_config"`
}

// Validate checks the scenario for structural errors.
func (s *Scenario) Validate() error {
	if s.StepTime <= 0 {
		return fmt.Errorf("step_time must be positive, got %v", s.StepTime)
	}
	if s.EndTime <= 0 {
		return fmt.Errorf("end_time must be positive, got %v", s.EndTime)
	}
	if s.EndTime < s.StepTime {
		return fmt.Errorf("end_time %v is shorter than step_time %v", s.EndTime, s.StepTime)
	}
	if len(s.InterceptorSwarms) == 0 {
		return fmt.Errorf("scenario defines no interceptor swarms")
	}
	if len(s.ThreatSwarms) == 0 {
		return fmt.Errorf("scenario defines no threat swarms")
	}
	for i, swarm := range s.InterceptorSwarms {
		if err := swarm.validate(); err != nil {
			return fmt.Errorf("interceptor swarm %d: %w", i, err)
		}
	}
	for i, swarm := range s.ThreatSwarms {
		if err := swarm.validate(); err != nil {
			return fmt.Errorf("threat swarm %d: %w", i, err)
		}
	}
	return nil
}

func (sw *Swarm) validate() error {
	if sw.NumAgents <= 0 {
		return fmt.Errorf("num_agents must be positive, got %d", sw.NumAgents)
	}
	if sw.Agent.Type == "" {
		return fmt.Errorf("agent type is required")
	}
	if sw.Agent.Dynamic.LaunchTime < 0 {
		return fmt.Errorf("launch_time must be nonnegative, got %v", sw.Agent.Dynamic.LaunchTime)
	}
	if sub := sw.Agent.Submunitions; sub != nil {
		if sub.NumSubmunitions <= 0 {
			return fmt.Errorf("num_submunitions must be positive, got %d", sub.NumSubmunitions)
		}
		if sub.Type == "" {
			return fmt.Errorf("submunition type is required")
		}
	}
	return nil
}

// Duration converts the scenario end time to a time.Duration for display.
func (s *Scenario) Duration() time.Duration {
	return time.Duration(s.EndTime * float64(time.Second))
}
