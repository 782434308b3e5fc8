package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/picogrid/swarm-sim/pkg/config"
	"github.com/picogrid/swarm-sim/pkg/geometry"
	"github.com/picogrid/swarm-sim/pkg/random"
)

func newTestThreat(t *testing.T, initial geometry.State) *Agent {
	t.Helper()
	threat, err := NewThreat(TypeDrone, config.AgentConfig{Type: TypeDrone},
		initial, 0, true, random.New(1))
	require.NoError(t, err)
	return threat
}

func newTestInterceptor(t *testing.T, cfg config.AgentConfig, initial geometry.State, ready bool) *Agent {
	t.Helper()
	if cfg.Type == "" {
		cfg.Type = TypeMicromissile
	}
	if cfg.Dynamic.SensorFrequency == 0 {
		cfg.Dynamic.SensorFrequency = 100
	}
	interceptor, err := NewInterceptor(cfg.Type, cfg, initial, 0, ready, random.New(1))
	require.NoError(t, err)
	return interceptor
}

func TestUnknownTypes(t *testing.T) {
	_, err := NewInterceptor("warp-drive", config.AgentConfig{}, geometry.State{}, 0, true, random.New(1))
	assert.Error(t, err)

	_, err = NewThreat("kraken", config.AgentConfig{}, geometry.State{}, 0, true, random.New(1))
	assert.Error(t, err)
}

func TestGuidedInterceptorRequiresSensorRate(t *testing.T) {
	cfg := config.AgentConfig{Type: TypeMicromissile}
	_, err := NewInterceptor(TypeMicromissile, cfg, geometry.State{}, 0, true, random.New(1))
	assert.ErrorContains(t, err, "sensor_frequency")

	// A carrier needs no seeker, but its guided submunitions do.
	carrierCfg := config.AgentConfig{
		Type: TypeHydra70,
		Submunitions: &config.SubmunitionConfig{
			NumSubmunitions: 3,
			Type:            TypeMicromissile,
		},
	}
	_, err = NewInterceptor(TypeHydra70, carrierCfg, geometry.State{}, 0, true, random.New(1))
	assert.ErrorContains(t, err, "sensor_frequency")

	carrierCfg.Submunitions.Dynamic = config.DynamicConfig{SensorFrequency: 100}
	_, err = NewInterceptor(TypeHydra70, carrierCfg, geometry.State{}, 0, true, random.New(1))
	assert.NoError(t, err)
}

func TestPhaseProgression(t *testing.T) {
	cfg := config.AgentConfig{
		Type:    TypeMicromissile,
		Dynamic: config.DynamicConfig{LaunchTime: 1, SensorFrequency: 100},
	}
	initial := geometry.State{Position: r3.Vec{Z: 100}, Velocity: r3.Vec{Y: 10}}
	a := newTestInterceptor(t, cfg, initial, true)

	assert.Equal(t, PhaseReady, a.Phase())
	assert.False(t, a.HasLaunched())

	a.Update(0.5)
	assert.Equal(t, PhaseReady, a.Phase())

	a.Update(1.0)
	assert.Equal(t, PhaseBoost, a.Phase())
	assert.True(t, a.HasLaunched())

	// Micromissile boost lasts 0.3 s after launch.
	a.Update(1.3)
	assert.Equal(t, PhaseMidcourse, a.Phase())
}

func TestUninitializedAgentStaysPutUntilLaunch(t *testing.T) {
	cfg := config.AgentConfig{
		Type:    TypeMicromissile,
		Dynamic: config.DynamicConfig{LaunchTime: 2},
	}
	a := newTestInterceptor(t, cfg, geometry.State{Position: r3.Vec{Z: 100}}, false)

	assert.Equal(t, PhaseUninitialized, a.Phase())
	a.Update(1)
	assert.Equal(t, PhaseUninitialized, a.Phase())
	assert.Equal(t, r3.Vec{}, a.State().Acceleration)

	a.Update(2)
	assert.Equal(t, PhaseBoost, a.Phase())
}

func TestStepConstantAcceleration(t *testing.T) {
	initial := geometry.State{
		Position:     r3.Vec{Z: 100},
		Velocity:     r3.Vec{X: 10},
		Acceleration: r3.Vec{X: 2, Z: -4},
	}
	a := newTestThreat(t, initial)

	a.Step(0, 1)

	// Constant-acceleration substeps compose exactly.
	assert.InDelta(t, 10+0.5*2, a.Position().X, 1e-9)
	assert.InDelta(t, 100-0.5*4, a.Position().Z, 1e-9)
	assert.InDelta(t, 12, a.Velocity().X, 1e-9)
	assert.InDelta(t, -4, a.Velocity().Z, 1e-9)

	assert.Equal(t, 2, a.History().Len())
	assert.Equal(t, 1.0, a.History().Back().T)
}

func TestStepZeroIsNoOp(t *testing.T) {
	initial := geometry.State{Position: r3.Vec{Z: 100}, Velocity: r3.Vec{X: 10}}
	a := newTestThreat(t, initial)

	before := a.State()
	records := a.History().Len()
	a.Step(5, 0)

	assert.Equal(t, before, a.State())
	assert.Equal(t, records, a.History().Len())
}

func TestStepFreezesBelowGround(t *testing.T) {
	initial := geometry.State{
		Position: r3.Vec{X: 3, Z: -1},
		Velocity: r3.Vec{X: 100},
	}
	a := newTestThreat(t, initial)

	a.Step(0, 1)

	assert.Equal(t, initial.Position, a.Position())
	assert.Equal(t, 2, a.History().Len())
}

func TestMarkAsHit(t *testing.T) {
	a := newTestThreat(t, geometry.State{Position: r3.Vec{Z: 100}})
	a.MarkAsHit()

	assert.True(t, a.Hit())
	assert.True(t, a.HasTerminated())
	assert.True(t, a.History().Back().Hit)

	// Terminated agents ignore further updates.
	a.Update(10)
	assert.Equal(t, PhaseTerminated, a.Phase())
}

func TestTargetAssignment(t *testing.T) {
	interceptor := newTestInterceptor(t, config.AgentConfig{}, geometry.State{Position: r3.Vec{Z: 100}}, true)
	threat := newTestThreat(t, geometry.State{Position: r3.Vec{X: 500, Z: 100}})

	assert.False(t, interceptor.HasTarget())

	interceptor.AssignTarget(threat)
	assert.True(t, interceptor.HasTarget())
	assert.Same(t, threat, interceptor.Target())
	require.NotNil(t, interceptor.targetModel)
	assert.Equal(t, threat.State(), interceptor.targetModel.State())

	interceptor.UnassignTarget()
	assert.False(t, interceptor.HasTarget())
	assert.Nil(t, interceptor.targetModel)
}

func TestMidcourseModelTracksAcrossSensorPeriod(t *testing.T) {
	threat := newTestThreat(t, geometry.State{
		Position: r3.Vec{X: 1000, Z: 100},
		Velocity: r3.Vec{X: -50},
	})

	// Zero boost time puts the interceptor in midcourse from launch.
	cfg := config.AgentConfig{
		Type:    TypeMicromissile,
		Dynamic: config.DynamicConfig{SensorFrequency: 4},
		Static: &config.StaticConfig{
			Mass:                     0.37,
			CrossSectionalArea:       7.85e-4,
			DragCoefficient:          0.7,
			LiftDragRatio:            5,
			MaxReferenceAcceleration: 300,
			ReferenceSpeed:           1000,
			HitRadius:                1,
		},
	}
	initial := geometry.State{Position: r3.Vec{Z: 100}, Velocity: r3.Vec{X: 100}}
	interceptor := newTestInterceptor(t, cfg, initial, true)
	interceptor.AssignTarget(threat)

	// The first midcourse update snaps the model to the true target state.
	interceptor.Update(0)
	require.Equal(t, PhaseMidcourse, interceptor.Phase())
	assert.Equal(t, threat.State().Position, interceptor.targetModel.State().Position)

	// The threat pulls up. At 4 Hz the seeker does not see the maneuver
	// until the refresh at t = 0.25.
	maneuvered := threat.State()
	maneuvered.Velocity = r3.Vec{X: -50, Z: 20}
	threat.SetState(maneuvered)

	threat.Step(0, 0.1)
	interceptor.Update(0.1)
	model := interceptor.targetModel.State()
	assert.InDelta(t, 995, model.Position.X, 1e-9)
	assert.InDelta(t, 100, model.Position.Z, 1e-9)
	assert.InDelta(t, 102, threat.Position().Z, 1e-9)

	threat.Step(0.1, 0.1)
	interceptor.Update(0.2)
	model = interceptor.targetModel.State()
	assert.InDelta(t, 990, model.Position.X, 1e-9)
	assert.InDelta(t, 100, model.Position.Z, 1e-9)

	// Crossing the refresh boundary resyncs the model with the maneuver.
	threat.Step(0.2, 0.1)
	interceptor.Update(0.3)
	model = interceptor.targetModel.State()
	assert.Equal(t, threat.State().Position, model.Position)
	assert.Equal(t, r3.Vec{X: -50, Z: 20}, model.Velocity)
}

func TestCheckTargetReleasesDestroyedTarget(t *testing.T) {
	interceptor := newTestInterceptor(t, config.AgentConfig{}, geometry.State{Position: r3.Vec{Z: 100}}, true)
	threat := newTestThreat(t, geometry.State{Position: r3.Vec{X: 500, Z: 100}})

	interceptor.AssignTarget(threat)
	interceptor.CheckTarget()
	assert.True(t, interceptor.HasTarget())

	threat.MarkAsHit()
	interceptor.CheckTarget()
	assert.False(t, interceptor.HasTarget())
}

func TestHasHitTarget(t *testing.T) {
	interceptor := newTestInterceptor(t, config.AgentConfig{}, geometry.State{Position: r3.Vec{Z: 100}}, true)
	threat := newTestThreat(t, geometry.State{Position: r3.Vec{X: 0.5, Z: 100}})

	assert.False(t, interceptor.HasHitTarget())

	interceptor.AssignTarget(threat)
	assert.True(t, interceptor.HasHitTarget(), "target within the 1 m hit radius")

	far := newTestThreat(t, geometry.State{Position: r3.Vec{X: 50, Z: 100}})
	interceptor.AssignTarget(far)
	assert.False(t, interceptor.HasHitTarget())
}

func TestAssignable(t *testing.T) {
	cfg := config.AgentConfig{Dynamic: config.DynamicConfig{LaunchTime: 1}}
	interceptor := newTestInterceptor(t, cfg, geometry.State{Position: r3.Vec{Z: 100}, Velocity: r3.Vec{Y: 10}}, true)
	threat := newTestThreat(t, geometry.State{Position: r3.Vec{X: 500, Z: 100}})

	assert.False(t, interceptor.Assignable(), "not launched yet")
	assert.False(t, threat.Assignable(), "threats are never assignable")

	interceptor.Update(1)
	assert.True(t, interceptor.Assignable())

	interceptor.AssignTarget(threat)
	assert.False(t, interceptor.Assignable(), "already has a target")

	interceptor.UnassignTarget()
	interceptor.MarkAsHit()
	assert.False(t, interceptor.Assignable(), "terminated")
}

func TestSpawnSubmunitions(t *testing.T) {
	cfg := config.AgentConfig{
		Type:    TypeHydra70,
		Dynamic: config.DynamicConfig{LaunchTime: 0.5},
		Submunitions: &config.SubmunitionConfig{
			NumSubmunitions: 3,
			Type:            TypeMicromissile,
			LaunchTime:      0.3,
			Dynamic:         config.DynamicConfig{SensorFrequency: 100},
		},
	}
	initial := geometry.State{Position: r3.Vec{Z: 500}, Velocity: r3.Vec{Y: 200}}
	carrier := newTestInterceptor(t, cfg, initial, true)

	children, err := carrier.Spawn(0.7)
	require.NoError(t, err)
	assert.Empty(t, children, "before the submunition launch time")

	children, err = carrier.Spawn(0.8)
	require.NoError(t, err)
	require.Len(t, children, 3)
	for _, child := range children {
		assert.Equal(t, TypeMicromissile, child.Type())
		assert.Equal(t, RoleInterceptor, child.Role())
		assert.Equal(t, PhaseReady, child.Phase())
		assert.Equal(t, carrier.State(), child.State())
	}

	children, err = carrier.Spawn(0.9)
	require.NoError(t, err)
	assert.Empty(t, children, "submunitions are released at most once")
}

func TestSpawnWithoutSubmunitions(t *testing.T) {
	a := newTestThreat(t, geometry.State{Position: r3.Vec{Z: 100}})
	children, err := a.Spawn(100)
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestStaticOverride(t *testing.T) {
	override := &config.StaticConfig{Mass: 2, HitRadius: 10, BoostTime: 5}
	cfg := config.AgentConfig{Type: TypeMicromissile, Static: override}
	a := newTestInterceptor(t, cfg, geometry.State{}, true)

	assert.Equal(t, 10.0, a.Static().HitRadius)
	assert.Equal(t, 5.0, a.Static().BoostTime)
}
