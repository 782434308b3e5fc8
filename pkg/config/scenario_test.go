package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validScenario() *Scenario {
	return &Scenario{
		Name:     "test",
		StepTime: 0.1,
		EndTime:  10,
		InterceptorSwarms: []Swarm{
			{NumAgents: 2, Agent: AgentConfig{Type: "micromissile"}},
		},
		ThreatSwarms: []Swarm{
			{NumAgents: 1, Agent: AgentConfig{Type: "drone"}},
		},
	}
}

func TestValidate(t *testing.T) {
	if err := validScenario().Validate(); err != nil {
		t.Errorf("valid scenario failed validation: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"zero step time", func(s *Scenario) { s.StepTime = 0 }},
		{"negative end time", func(s *Scenario) { s.EndTime = -1 }},
		{"end before step", func(s *Scenario) { s.EndTime = 0.01 }},
		{"no interceptors", func(s *Scenario) { s.InterceptorSwarms = nil }},
		{"no threats", func(s *Scenario) { s.ThreatSwarms = nil }},
		{"zero agents", func(s *Scenario) { s.InterceptorSwarms[0].NumAgents = 0 }},
		{"missing type", func(s *Scenario) { s.InterceptorSwarms[0].Agent.Type = "" }},
		{"negative launch time", func(s *Scenario) {
			s.ThreatSwarms[0].Agent.Dynamic.LaunchTime = -1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validScenario()
			tt.mutate(s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	content := `
name: smoke
step_time: 0.1
end_time: 5
seed: 7
assignment: distance
interceptor_swarms:
  - num_agents: 3
    agent:
      type: micromissile
      initial_state:
        position:
          mean: {x: 0, y: 0, z: 100}
      dynamic_config:
        launch_time: 0.5
        sensor_frequency: 100
threat_swarms:
  - num_agents: 2
    agent:
      type: drone
      initial_state:
        position:
          mean: {x: 0, y: 1000, z: 200}
          stddev: {x: 10, y: 10, z: 5}
        velocity:
          mean: {x: 0, y: -50, z: 0}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}
	if s.Name != "smoke" {
		t.Errorf("Name = %q, want smoke", s.Name)
	}
	if s.Seed != 7 {
		t.Errorf("Seed = %d, want 7", s.Seed)
	}
	if len(s.InterceptorSwarms) != 1 || s.InterceptorSwarms[0].NumAgents != 3 {
		t.Errorf("interceptor swarms parsed incorrectly: %+v", s.InterceptorSwarms)
	}
	if got := s.ThreatSwarms[0].Agent.InitialState.Position.Stddev.X; got != 10 {
		t.Errorf("position stddev X = %v, want 10", got)
	}
	if got := s.InterceptorSwarms[0].Agent.Dynamic.SensorFrequency; got != 100 {
		t.Errorf("sensor frequency = %v, want 100", got)
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	if _, err := LoadScenario("does-not-exist.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
