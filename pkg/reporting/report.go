package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/picogrid/swarm-sim/pkg/agent"
	"github.com/picogrid/swarm-sim/pkg/geometry"
)

// Report is the engagement summary written after a run.
type Report struct {
	Scenario    string    `json:"scenario"`
	GeneratedAt time.Time `json:"generated_at"`
	EndTime     float64   `json:"end_time"`
	Seed        uint64    `json:"seed"`

	Interceptors RosterSummary `json:"interceptors"`
	Threats      RosterSummary `json:"threats"`

	Events []Event `json:"events"`
}

// RosterSummary aggregates the outcome of one side of the engagement.
type RosterSummary struct {
	Total     int `json:"total"`
	Hit       int `json:"hit"`
	Surviving int `json:"surviving"`
}

// Trajectory is the sampled flight path of a single agent.
type Trajectory struct {
	AgentID uuid.UUID         `json:"agent_id"`
	Role    string            `json:"role"`
	Type    string            `json:"type"`
	Hit     bool              `json:"hit"`
	Samples []geometry.Record `json:"samples"`
}

// BuildReport assembles the engagement summary.
func BuildReport(scenario string, endTime float64, seed uint64,
	interceptors, threats []*agent.Agent, events *EventLog) *Report {
	return &Report{
		Scenario:     scenario,
		GeneratedAt:  time.Now(),
		EndTime:      endTime,
		Seed:         seed,
		Interceptors: summarize(interceptors),
		Threats:      summarize(threats),
		Events:       events.Events(),
	}
}

func summarize(roster []*agent.Agent) RosterSummary {
	summary := RosterSummary{Total: len(roster)}
	for _, a := range roster {
		if a.Hit() {
			summary.Hit++
		} else {
			summary.Surviving++
		}
	}
	return summary
}

// Write saves the report as JSON.
func (r *Report) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}

// WriteTrajectories saves the full state histories of both rosters as JSON.
func WriteTrajectories(path string, interceptors, threats []*agent.Agent) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	trajectories := make([]Trajectory, 0, len(interceptors)+len(threats))
	for _, roster := range [][]*agent.Agent{interceptors, threats} {
		for _, a := range roster {
			trajectories = append(trajectories, Trajectory{
				AgentID: a.ID(),
				Role:    a.Role().String(),
				Type:    a.Type(),
				Hit:     a.Hit(),
				Samples: a.History().Records(),
			})
		}
	}

	data, err := json.MarshalIndent(trajectories, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling trajectories: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing trajectories: %w", err)
	}
	return nil
}
