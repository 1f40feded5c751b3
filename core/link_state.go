package core

import (
	"slices"
	"time"

	"github.com/encodeous/routesim/state"
)

// LinkState runs Dijkstra's algorithm over the full cost matrix, the way a link-state router
// would once it has flooded the whole topology.
// Weights are assumed to be non-negative. This is not checked, results with negative weights are undefined.
type LinkState struct{}

func (LinkState) Algorithm() state.Algorithm {
	return state.LinkStateAlgorithm
}

func (LinkState) Run(g state.Graph, src state.NodeId) (*state.RunResult, error) {
	if err := checkSource(g, src); err != nil {
		return nil, err
	}
	start := time.Now()
	res := state.NewRunResult(state.LinkStateAlgorithm, src, g.N)
	dist, parent := res.Distance, res.Parent
	visited := make([]bool, g.N+1)

	// N-1 selection rounds, the source is always picked in the first one
	round := 0
	for i := 1; i <= g.N; i++ {
		if state.NodeId(i) == src {
			continue
		}
		round++
		nearest := nearestUnvisited(dist, visited)
		visited[nearest] = true
		if dist[nearest] != state.INF {
			for adj := 1; adj <= g.N; adj++ {
				w := g.Cost[nearest][adj]
				if visited[adj] || w == state.NoEdge {
					continue
				}
				if nd := dist[nearest] + w; nd < dist[adj] {
					dist[adj] = nd
					parent[adj] = nearest
				}
			}
		}
		res.Trace = append(res.Trace, state.Iteration{
			Round:    round,
			Selected: nearest,
			Distance: slices.Clone(dist),
		})
	}

	res.BuildRoutes()
	res.Elapsed = time.Since(start)
	return res, nil
}

// nearestUnvisited scans the nodes in increasing order and replaces its candidate whenever the
// distance is less than or equal to the best so far, so ties go to the highest node id.
func nearestUnvisited(dist []float64, visited []bool) state.NodeId {
	node, best := state.NodeId(1), state.INF
	for i := 1; i < len(dist); i++ {
		if !visited[i] && best >= dist[i] {
			node = state.NodeId(i)
			best = dist[i]
		}
	}
	return node
}
