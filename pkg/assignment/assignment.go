// Package assignment matches threats to interceptors at the start of each
// simulation tick.
package assignment

import (
	"fmt"

	"github.com/picogrid/swarm-sim/pkg/agent"
)

// Pair maps an interceptor index to a threat index, both relative to the
// rosters passed to Assign.
type Pair struct {
	Interceptor int
	Threat      int
}

// Strategy computes interceptor-to-threat assignments. Implementations may
// keep state between calls; Assignments returns the pairs produced by the
// most recent Assign call.
type Strategy interface {
	Assign(interceptors, threats []*agent.Agent)
	Assignments() []Pair
}

// Strategy names accepted by New.
const (
	StrategyDistance   = "distance"
	StrategyRoundRobin = "round-robin"
)

// New creates an assignment strategy by name. An empty name selects the
// distance strategy.
func New(name string) (Strategy, error) {
	switch name {
	case "", StrategyDistance:
		return &Distance{}, nil
	case StrategyRoundRobin:
		return &RoundRobin{prevThreat: -1}, nil
	default:
		return nil, fmt.Errorf("unknown assignment strategy %q", name)
	}
}

// assignableIndices returns the indices of interceptors that can accept a
// target.
func assignableIndices(interceptors []*agent.Agent) []int {
	indices := make([]int, 0, len(interceptors))
	for i, interceptor := range interceptors {
		if interceptor.Assignable() {
			indices = append(indices, i)
		}
	}
	return indices
}

// activeIndices returns the indices of threats that have not been hit.
func activeIndices(threats []*agent.Agent) []int {
	indices := make([]int, 0, len(threats))
	for i, threat := range threats {
		if !threat.Hit() {
			indices = append(indices, i)
		}
	}
	return indices
}
