package state

import (
	"time"

	"github.com/google/uuid"
)

type Algorithm string

const (
	LinkStateAlgorithm      Algorithm = "lsrp"
	DistanceVectorAlgorithm Algorithm = "dvrp"
)

// Route is the outcome of a run for a single destination
type Route struct {
	Dest      NodeId
	Distance  float64
	Reachable bool
	Path      []NodeId
	NextHop   NodeId
}

// Iteration is the distance vector after one selection round of the link-state engine
type Iteration struct {
	Round    int
	Selected NodeId
	Distance []float64 // indexed by node id, index 0 is unused
}

type RunResult struct {
	Id        uuid.UUID
	Algorithm Algorithm
	Source    NodeId
	N         int
	Distance  []float64
	Parent    []NodeId
	Routes    []Route // every destination other than Source, in increasing order
	Trace     []Iteration
	Elapsed   time.Duration
}

func NewRunResult(algo Algorithm, src NodeId, n int) *RunResult {
	r := &RunResult{
		Id:        uuid.New(),
		Algorithm: algo,
		Source:    src,
		N:         n,
		Distance:  make([]float64, n+1),
		Parent:    make([]NodeId, n+1),
	}
	for i := range r.Distance {
		r.Distance[i] = INF
		r.Parent[i] = NoParent
	}
	r.Distance[src] = 0
	return r
}

// BuildRoutes derives the route of every destination from the distance and parent arrays
func (r *RunResult) BuildRoutes() {
	r.Routes = make([]Route, 0, r.N)
	for d := NodeId(1); int(d) <= r.N; d++ {
		if d == r.Source {
			continue
		}
		route := Route{
			Dest:     d,
			Distance: r.Distance[d],
			NextHop:  NoNode,
		}
		if r.Distance[d] != INF {
			route.Path, route.Reachable = BuildPath(r.Parent, r.Source, d)
			route.NextHop = NextHop(route.Path)
		}
		r.Routes = append(r.Routes, route)
	}
}

// Route returns the route to dst, false if dst is the source or not a node of the run
func (r *RunResult) Route(dst NodeId) (Route, bool) {
	for _, route := range r.Routes {
		if route.Dest == dst {
			return route, true
		}
	}
	return Route{}, false
}
