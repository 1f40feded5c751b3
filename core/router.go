package core

import (
	"time"

	"github.com/encodeous/routesim/perf"
	"github.com/encodeous/routesim/state"
	"github.com/jellydator/ttlcache/v3"
)

type runKey struct {
	Algorithm state.Algorithm
	Source    state.NodeId
	Revision  uint64
}

// Run is a routing result handed to the dispatcher. Result is shared with the cache and must not be modified.
type Run struct {
	Result *state.RunResult
	Cached bool
}

// Router owns the routing engines and memoizes their results per topology revision
type Router struct {
	*state.State
	// Results is nil when caching is disabled
	Results *ttlcache.Cache[runKey, *state.RunResult]
}

func (r *Router) Init(s *state.State) error {
	s.Log.Debug("init router")
	r.State = s
	ttl, err := s.GetCacheTTL()
	if err != nil {
		return err
	}
	if ttl > 0 {
		r.Results = ttlcache.New[runKey, *state.RunResult](
			ttlcache.WithTTL[runKey, *state.RunResult](ttl),
			ttlcache.WithDisableTouchOnHit[runKey, *state.RunResult](),
		)
	}
	return nil
}

func (r *Router) Cleanup(s *state.State) error {
	if r.Results != nil {
		r.Results.DeleteAll()
	}
	return nil
}

// Route runs algo from src against the current topology
func (r *Router) Route(algo state.Algorithm, src state.NodeId) (Run, error) {
	e, err := EngineFor(algo)
	if err != nil {
		return Run{}, err
	}
	key := runKey{Algorithm: algo, Source: src, Revision: r.Topology.Revision()}
	if r.Results != nil {
		r.Results.DeleteExpired()
		if item := r.Results.Get(key); item != nil {
			res := item.Value()
			r.Log.Debug("cached run", "algorithm", algo, "src", src, "run", res.Id)
			perf.ObserveRun(string(algo), res.Elapsed, true)
			return Run{Result: res, Cached: true}, nil
		}
	}

	res, err := e.Run(r.Topology.Snapshot(), src)
	if err != nil {
		return Run{}, err
	}
	r.Log.Debug("routing run complete", "algorithm", algo, "src", src, "run", res.Id, "elapsed", res.Elapsed)
	perf.ObserveRun(string(algo), res.Elapsed, false)
	if r.Results != nil {
		r.Results.Set(key, res, ttlcache.DefaultTTL)
	}
	return Run{Result: res}, nil
}

// RouteAll runs algo once from every vertex of the topology in increasing order.
// Each run starts from fresh state, nothing carries over between sources.
func (r *Router) RouteAll(algo state.Algorithm) ([]Run, time.Duration, error) {
	start := time.Now()
	runs := make([]Run, 0)
	for _, v := range r.Topology.Vertices() {
		run, err := r.Route(algo, v)
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, run)
	}
	return runs, time.Since(start), nil
}
