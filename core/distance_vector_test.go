package core

import (
	"testing"

	"github.com/encodeous/routesim/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceVector_Triangle(t *testing.T) {
	res, err := DistanceVector{}.Run(triangle(t), 1)
	require.NoError(t, err)

	assert.Equal(t, state.DistanceVectorAlgorithm, res.Algorithm)
	assert.Equal(t, []float64{inf, 0, 5, 8}, res.Distance)
	assert.Empty(t, res.Trace)

	route, ok := res.Route(3)
	require.True(t, ok)
	assert.Equal(t, []state.NodeId{1, 2, 3}, route.Path)
	assert.Equal(t, state.NodeId(2), route.NextHop)

	route, ok = res.Route(2)
	require.True(t, ok)
	assert.Equal(t, state.NodeId(2), route.NextHop)
}

func TestDistanceVector_FractionalWeights(t *testing.T) {
	g := graphOf(t,
		state.Link{U: 1, V: 2, Weight: 0.5},
		state.Link{U: 2, V: 3, Weight: 0.75},
		state.Link{U: 1, V: 3, Weight: 1.5},
	)
	res, err := DistanceVector{}.Run(g, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, res.Distance[2])
	assert.Equal(t, 1.25, res.Distance[3])
	assert.Equal(t, state.NodeId(2), res.Parent[3])
}

func TestDistanceVector_Unreachable(t *testing.T) {
	topo := state.NewTopology(0)
	require.NoError(t, topo.Define([]state.Link{{U: 1, V: 2, Weight: 1}, {U: 4, V: 5, Weight: 1}}))

	res, err := DistanceVector{}.Run(topo.Snapshot(), 1)
	require.NoError(t, err)
	for _, d := range []state.NodeId{3, 4, 5} {
		route, ok := res.Route(d)
		require.True(t, ok)
		assert.False(t, route.Reachable, "node %d", d)
		assert.Equal(t, state.NoNode, route.NextHop)
	}
}

func TestDistanceVector_NegativeCycle(t *testing.T) {
	// every undirected negative link is a negative cycle, the run must still terminate
	g := graphOf(t, state.Link{U: 1, V: 2, Weight: -1})
	res, err := DistanceVector{}.Run(g, 1)
	require.NoError(t, err)
	assert.Equal(t, -1.0, res.Distance[2])
	assert.Equal(t, -2.0, res.Distance[1])

	route, ok := res.Route(2)
	require.True(t, ok)
	assert.False(t, route.Reachable)
	assert.Nil(t, route.Path)
}

func TestDistanceVector_InvalidSource(t *testing.T) {
	_, err := DistanceVector{}.Run(triangle(t), 9)
	assert.ErrorIs(t, err, state.ErrInvalidOperation)
	_, err = DistanceVector{}.Run(state.Graph{}, 1)
	assert.ErrorIs(t, err, state.ErrInvalidOperation)
}
