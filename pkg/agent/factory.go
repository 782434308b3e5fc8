package agent

import (
	"fmt"

	"github.com/picogrid/swarm-sim/pkg/config"
	"github.com/picogrid/swarm-sim/pkg/geometry"
	"github.com/picogrid/swarm-sim/pkg/random"
	"github.com/picogrid/swarm-sim/pkg/sensor"
)

// Agent type names. Dummy agents exist on both rosters; the role
// disambiguates.
const (
	TypeMicromissile  = "micromissile"
	TypeHydra70       = "hydra-70"
	TypeDrone         = "drone"
	TypeThreatMissile = "missile"
	TypeDummy         = "dummy"
)

// Built-in physical parameters per interceptor type.
var interceptorStatics = map[string]config.StaticConfig{
	TypeMicromissile: {
		Mass:                     0.37,
		CrossSectionalArea:       7.85e-4,
		DragCoefficient:          0.7,
		LiftDragRatio:            5,
		BoostTime:                0.3,
		BoostAcceleration:        350,
		MaxReferenceAcceleration: 300,
		ReferenceSpeed:           1000,
		HitRadius:                1,
	},
	TypeHydra70: {
		Mass:               6.2,
		CrossSectionalArea: 3.9e-3,
		DragCoefficient:    0.4,
		LiftDragRatio:      5,
		BoostTime:          1,
		BoostAcceleration:  100,
		ReferenceSpeed:     700,
	},
	TypeDummy: {
		Mass:               1,
		CrossSectionalArea: 1e-3,
		DragCoefficient:    0.5,
		LiftDragRatio:      5,
		ReferenceSpeed:     100,
	},
}

// Built-in physical parameters per threat type.
var threatStatics = map[string]config.StaticConfig{
	TypeDrone: {
		Mass:               5,
		CrossSectionalArea: 0.1,
		DragCoefficient:    0.45,
		LiftDragRatio:      3,
		ReferenceSpeed:     50,
		KillProbability:    0.9,
	},
	TypeThreatMissile: {
		Mass:               100,
		CrossSectionalArea: 0.03,
		DragCoefficient:    0.5,
		LiftDragRatio:      5,
		ReferenceSpeed:     500,
		KillProbability:    0.6,
	},
	TypeDummy: {
		Mass:               1,
		CrossSectionalArea: 0.01,
		DragCoefficient:    0.5,
		LiftDragRatio:      1,
		ReferenceSpeed:     50,
	},
}

// guided reports whether an interceptor type steers toward a tracked
// target and therefore needs a seeker refresh rate.
func guided(typ string) bool {
	return typ == TypeMicromissile
}

// New creates an agent of the given role and type. The scenario may supply
// a static config that overrides the built-in parameters for the type.
func New(role Role, cfg config.AgentConfig, initial geometry.State,
	tCreation float64, ready bool, rng *random.Generator) (*Agent, error) {
	if role == RoleThreat {
		return NewThreat(cfg.Type, cfg, initial, tCreation, ready, rng)
	}
	return NewInterceptor(cfg.Type, cfg, initial, tCreation, ready, rng)
}

// NewInterceptor creates an interceptor of the given type.
func NewInterceptor(typ string, cfg config.AgentConfig, initial geometry.State,
	tCreation float64, ready bool, rng *random.Generator) (*Agent, error) {
	static, ok := interceptorStatics[typ]
	if !ok {
		return nil, fmt.Errorf("unknown interceptor type %q", typ)
	}
	if guided(typ) && cfg.Dynamic.SensorFrequency <= 0 {
		return nil, fmt.Errorf("interceptor type %q requires a positive sensor_frequency", typ)
	}
	if sub := cfg.Submunitions; sub != nil && guided(sub.Type) && sub.Dynamic.SensorFrequency <= 0 {
		return nil, fmt.Errorf("submunition type %q requires a positive sensor_frequency", sub.Type)
	}
	if cfg.Static != nil {
		static = *cfg.Static
	}

	var dynamics Dynamics
	switch typ {
	case TypeMicromissile:
		dynamics = missileDynamics{}
	case TypeHydra70:
		dynamics = carrierDynamics{}
	case TypeDummy:
		dynamics = dummyDynamics{}
	}

	return newAgent(RoleInterceptor, typ, static, cfg, initial, tCreation, ready,
		dynamics, sensor.NewIdeal(), rng), nil
}

// NewThreat creates a threat of the given type.
func NewThreat(typ string, cfg config.AgentConfig, initial geometry.State,
	tCreation float64, ready bool, rng *random.Generator) (*Agent, error) {
	static, ok := threatStatics[typ]
	if !ok {
		return nil, fmt.Errorf("unknown threat type %q", typ)
	}
	if cfg.Static != nil {
		static = *cfg.Static
	}

	return newAgent(RoleThreat, typ, static, cfg, initial, tCreation, ready,
		threatDynamics{}, nil, rng), nil
}

// newModelAgent creates the internal model of a tracked target. The model
// starts from the observed state and extrapolates under constant
// acceleration between seeker refreshes.
func newModelAgent(observed geometry.State, rng *random.Generator) *Agent {
	return newAgent(RoleThreat, "model", config.StaticConfig{}, config.AgentConfig{},
		observed, 0, true, modelDynamics{}, nil, rng)
}
