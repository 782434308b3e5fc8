package assignment

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/picogrid/swarm-sim/pkg/agent"
)

// Distance assigns each interceptor to its nearest threat, greedily by
// increasing distance. Threats are reused in later rounds once every threat
// has an interceptor, so a saturated defense spreads interceptors across
// all threats before doubling up.
type Distance struct {
	assignments []Pair
}

type candidate struct {
	interceptor int
	threat      int
	distance    float64
}

// Assign computes the interceptor-to-threat pairs for this tick.
func (d *Distance) Assign(interceptors, threats []*agent.Agent) {
	d.assignments = d.assignments[:0]

	assignable := assignableIndices(interceptors)
	if len(assignable) == 0 {
		return
	}
	active := activeIndices(threats)
	if len(active) == 0 {
		return
	}

	candidates := make([]candidate, 0, len(assignable)*len(active))
	for _, i := range assignable {
		for _, j := range active {
			distance := r3.Norm(r3.Sub(threats[j].Position(), interceptors[i].Position()))
			candidates = append(candidates, candidate{interceptor: i, threat: j, distance: distance})
		}
	}

	// Ties break on the lower interceptor index, then the lower threat
	// index, keeping the result deterministic.
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].distance != candidates[b].distance {
			return candidates[a].distance < candidates[b].distance
		}
		if candidates[a].interceptor != candidates[b].interceptor {
			return candidates[a].interceptor < candidates[b].interceptor
		}
		return candidates[a].threat < candidates[b].threat
	})

	// Each round pairs distinct interceptors with distinct threats. The
	// paired interceptors leave the pool; the threats stay for the next
	// round.
	for len(candidates) > 0 {
		usedInterceptors := make(map[int]bool, len(assignable))
		usedThreats := make(map[int]bool, len(active))
		for _, c := range candidates {
			if !usedInterceptors[c.interceptor] && !usedThreats[c.threat] {
				d.assignments = append(d.assignments, Pair{Interceptor: c.interceptor, Threat: c.threat})
				usedInterceptors[c.interceptor] = true
				usedThreats[c.threat] = true
			}
		}

		remaining := candidates[:0]
		for _, c := range candidates {
			if !usedInterceptors[c.interceptor] {
				remaining = append(remaining, c)
			}
		}
		candidates = remaining
	}
}

// Assignments returns the pairs from the most recent Assign call.
func (d *Distance) Assignments() []Pair {
	return d.assignments
}
