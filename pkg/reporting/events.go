// Package reporting records engagement events during a run and generates
// the post-run artifacts: an engagement summary and per-agent trajectories.
package reporting

import (
	"fmt"
	"sync"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/picogrid/swarm-sim/pkg/logger"
)

// EventType constants
const (
	EventTypeLaunch       = "launch"
	EventTypeAssignment   = "assignment"
	EventTypeSpawn        = "spawn"
	EventTypeInterception = "interception"
	EventTypeGroundImpact = "ground_impact"
)

// Color definitions
var (
	colorLaunch       = color.New(color.FgMagenta)
	colorAssignment   = color.New(color.FgCyan)
	colorSpawn        = color.New(color.FgBlue)
	colorInterception = color.New(color.FgGreen, color.Bold)
	colorImpact       = color.New(color.FgYellow)
)

// Event is a single engagement event at a simulation time.
type Event struct {
	T        float64    `json:"t"`
	Type     string     `json:"type"`
	AgentID  uuid.UUID  `json:"agent_id"`
	TargetID *uuid.UUID `json:"target_id,omitempty"`
	Message  string     `json:"message"`
}

// EventLog collects engagement events and echoes them to the console.
type EventLog struct {
	mu     sync.RWMutex
	events []Event
	quiet  bool
}

// NewEventLog creates an event log. With quiet set, events are collected
// but not echoed.
func NewEventLog(quiet bool) *EventLog {
	return &EventLog{quiet: quiet}
}

// RecordLaunch logs an agent leaving the ready phase.
func (l *EventLog) RecordLaunch(t float64, id uuid.UUID, role, agentType string) {
	l.record(Event{
		T:       t,
		Type:    EventTypeLaunch,
		AgentID: id,
		Message: fmt.Sprintf("%s %s (%s) launched", role, short(id), agentType),
	}, colorLaunch)
}

// RecordAssignment logs an interceptor-to-threat assignment.
func (l *EventLog) RecordAssignment(t float64, interceptor, threat uuid.UUID) {
	l.record(Event{
		T:        t,
		Type:     EventTypeAssignment,
		AgentID:  interceptor,
		TargetID: &threat,
		Message:  fmt.Sprintf("interceptor %s assigned to threat %s", short(interceptor), short(threat)),
	}, colorAssignment)
}

// RecordSpawn logs a submunition release.
func (l *EventLog) RecordSpawn(t float64, parent uuid.UUID, count int) {
	l.record(Event{
		T:       t,
		Type:    EventTypeSpawn,
		AgentID: parent,
		Message: fmt.Sprintf("carrier %s released %d submunitions", short(parent), count),
	}, colorSpawn)
}

// RecordInterception logs a successful intercept.
func (l *EventLog) RecordInterception(t float64, interceptor, threat uuid.UUID) {
	l.record(Event{
		T:        t,
		Type:     EventTypeInterception,
		AgentID:  interceptor,
		TargetID: &threat,
		Message:  fmt.Sprintf("interceptor %s destroyed threat %s", short(interceptor), short(threat)),
	}, colorInterception)
}

// RecordGroundImpact logs an agent reaching the ground intact.
func (l *EventLog) RecordGroundImpact(t float64, id uuid.UUID, role string) {
	l.record(Event{
		T:       t,
		Type:    EventTypeGroundImpact,
		AgentID: id,
		Message: fmt.Sprintf("%s %s hit the ground", role, short(id)),
	}, colorImpact)
}

func (l *EventLog) record(e Event, c *color.Color) {
	l.mu.Lock()
	l.events = append(l.events, e)
	quiet := l.quiet
	l.mu.Unlock()

	if !quiet {
		logger.Infof("t=%7.3fs %s", e.T, c.Sprint(e.Message))
	}
}

// Events returns a copy of the recorded events in order.
func (l *EventLog) Events() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	events := make([]Event, len(l.events))
	copy(events, l.events)
	return events
}

func short(id uuid.UUID) string {
	return id.String()[:8]
}
