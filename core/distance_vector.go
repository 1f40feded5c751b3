package core

import (
	"time"

	"github.com/encodeous/routesim/state"
)

// DistanceVector runs Bellman-Ford over the edge list, relaxing every directed edge in the order it
// was added. It always performs N-1 passes and does not look for negative cycles.
type DistanceVector struct{}

func (DistanceVector) Algorithm() state.Algorithm {
	return state.DistanceVectorAlgorithm
}

func (DistanceVector) Run(g state.Graph, src state.NodeId) (*state.RunResult, error) {
	if err := checkSource(g, src); err != nil {
		return nil, err
	}
	start := time.Now()
	res := state.NewRunResult(state.DistanceVectorAlgorithm, src, g.N)
	dist, parent := res.Distance, res.Parent

	for pass := 1; pass <= g.N-1; pass++ {
		for _, e := range g.Edges {
			u, v := e.V1, e.V2
			if dist[u] == state.INF {
				continue
			}
			if nd := dist[u] + g.Cost[u][v]; nd < dist[v] {
				dist[v] = nd
				parent[v] = u
			}
		}
	}

	res.BuildRoutes()
	res.Elapsed = time.Since(start)
	return res, nil
}
