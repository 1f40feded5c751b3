package core

import (
	"fmt"

	"github.com/encodeous/routesim/state"
)

// Engine computes the shortest paths from a single source over a topology snapshot.
// Engines are stateless, every call to Run starts from fresh distance and parent arrays.
type Engine interface {
	Algorithm() state.Algorithm
	Run(g state.Graph, src state.NodeId) (*state.RunResult, error)
}

func EngineFor(algo state.Algorithm) (Engine, error) {
	switch algo {
	case state.LinkStateAlgorithm:
		return LinkState{}, nil
	case state.DistanceVectorAlgorithm:
		return DistanceVector{}, nil
	}
	return nil, fmt.Errorf("%w: unknown algorithm %q", state.ErrInvalidOperation, algo)
}

// RunAll runs e once from every vertex of g, in increasing order
func RunAll(e Engine, g state.Graph) ([]*state.RunResult, error) {
	results := make([]*state.RunResult, 0)
	for _, v := range g.Vertices() {
		res, err := e.Run(g, v)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func checkSource(g state.Graph, src state.NodeId) error {
	if g.N == 0 {
		return fmt.Errorf("%w: the topology is empty", state.ErrInvalidOperation)
	}
	if src < 1 || int(src) > g.N {
		return fmt.Errorf("%w: source %d is not a node of the topology [1, %d]", state.ErrInvalidOperation, src, g.N)
	}
	return nil
}
