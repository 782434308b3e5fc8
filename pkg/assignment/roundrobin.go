package assignment

import (
	"sort"

	"github.com/picogrid/swarm-sim/pkg/agent"
)

// RoundRobin cycles interceptors through the active threats in index order,
// resuming after the last threat assigned on the previous call.
type RoundRobin struct {
	assignments []Pair
	prevThreat  int
}

// Assign computes the interceptor-to-threat pairs for this tick.
func (r *RoundRobin) Assign(interceptors, threats []*agent.Agent) {
	r.assignments = r.assignments[:0]

	assignable := assignableIndices(interceptors)
	if len(assignable) == 0 {
		return
	}
	active := activeIndices(threats)
	if len(active) == 0 {
		return
	}

	for _, interceptor := range assignable {
		// Find the first active threat past the previous one, wrapping
		// around when none remains.
		next := sort.SearchInts(active, r.prevThreat+1)
		if next == len(active) {
			next = 0
		}
		threat := active[next]
		r.assignments = append(r.assignments, Pair{Interceptor: interceptor, Threat: threat})
		r.prevThreat = threat
	}
}

// Assignments returns the pairs from the most recent Assign call.
func (r *RoundRobin) Assignments() []Pair {
	return r.assignments
}
