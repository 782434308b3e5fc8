package agent

import "fmt"

// FlightPhase is the lifecycle phase of an agent. Phases only advance.
type FlightPhase int

const (
	PhaseUninitialized FlightPhase = iota
	PhaseReady
	PhaseBoost
	PhaseMidcourse
	PhaseTerminal
	PhaseTerminated
)

// String returns the lowercase name of the phase.
func (p FlightPhase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseReady:
		return "ready"
	case PhaseBoost:
		return "boost"
	case PhaseMidcourse:
		return "midcourse"
	case PhaseTerminal:
		return "terminal"
	case PhaseTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("FlightPhase(%d)", int(p))
	}
}

// Role distinguishes the two sides of an engagement.
type Role int

const (
	RoleInterceptor Role = iota
	RoleThreat
)

// String returns the lowercase name of the role.
func (r Role) String() string {
	if r == RoleThreat {
		return "threat"
	}
	return "interceptor"
}
