package state

import (
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGraph_SimpleGraph(t *testing.T) {
	input := `1, 2
3, 4
1,3,5`
	pairs, err := ParseGraph(strings.Split(input, "\n"))
	assert.NoError(t, err)
	assert.ElementsMatch(t, pairs, []Pair[NodeId, NodeId]{
		{1, 2},
		{3, 4},
		{1, 3},
		{3, 5},
		{1, 5},
	})
}

func TestParseGraph_Groups(t *testing.T) {
	input := `a = 1,2
b=3,,,4
c=5,6
d=a,b
# comments are ignored
d,d
7,d`
	pairs, err := ParseGraph(strings.Split(input, "\n"))
	assert.NoError(t, err)
	assert.ElementsMatch(t, pairs, []Pair[NodeId, NodeId]{
		// d,d
		{1, 2},
		{1, 3},
		{1, 4},
		{2, 3},
		{2, 4},
		{3, 4},
		// 7,d
		{1, 7},
		{2, 7},
		{3, 7},
		{4, 7},
	})
}

func TestParseGraph_Cycle(t *testing.T) {
	input := `a = b
b = c
c = a`
	_, err := ParseGraph(strings.Split(input, "\n"))
	assert.ErrorContains(t, err, "cycle detected in graph: [a b c]")
}

func TestParseGraph_DupGroupName(t *testing.T) {
	input := `a = b
a = b
b = b`
	_, err := ParseGraph(strings.Split(input, "\n"))
	assert.ErrorContains(t, err, "duplicate group name: a")
}

func TestParseGraph_SymbolError(t *testing.T) {
	input := `a = 1
b = x`
	_, err := ParseGraph(strings.Split(input, "\n"))
	assert.ErrorContains(t, err, "x is not a valid node/group")
}

func TestParseGraph_EmptyGroup(t *testing.T) {
	input := `a =`
	_, err := ParseGraph(strings.Split(input, "\n"))
	assert.ErrorContains(t, err, "node/group list must not be empty")
}

func TestParseGraph_GroupNameIsNodeId(t *testing.T) {
	input := `1 = 1`
	_, err := ParseGraph(strings.Split(input, "\n"))
	assert.ErrorContains(t, err, "group name must not be a node id: 1")
}

func TestParseGraph_InvalidGroupDefinition(t *testing.T) {
	input := `a = 1 = b`
	_, err := ParseGraph(strings.Split(input, "\n"))
	assert.ErrorContains(t, err, ". group definition must contain one '='")
}

func TestParseGraph_Single(t *testing.T) {
	input := `1`
	_, err := ParseGraph(strings.Split(input, "\n"))
	assert.ErrorContains(t, err, "invalid pairing, [1]")
}

func TestParseGraph_None(t *testing.T) {
	pairs, err := ParseGraph(strings.Split("", "\n"))
	assert.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestParseGraph_GroupsDeep(t *testing.T) {
	input := `a = 1,2
b = a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a
c = a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a
d = a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a
e = a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a
f = a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a
g = a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a
h = a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a
i = a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a
j = a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a
k = a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a,a
k,k,3`
	pairs, err := ParseGraph(strings.Split(input, "\n"))
	assert.NoError(t, err)
	assert.ElementsMatch(t, pairs, []Pair[NodeId, NodeId]{
		{1, 2},
		{1, 3},
		{2, 3},
	})
}

func failGraph(t *testing.T, graph string) {
	_, err := ParseGraph(strings.Split(graph, "\n"))
	assert.Error(t, err, graph)
}

func TestParseGraph_InvalidGraph(t *testing.T) {
	failGraph(t, `this graph is a baddie`)
	failGraph(t, `=========,,,,`)
	failGraph(t, `\n\n\n\n\n\n`)
	failGraph(t, `1`)
	failGraph(t, `1,2,3,4,5,6,a`)
	failGraph(t, `,,,,,,,,,,,,,,,,`)
	failGraph(t, `a=a`)
}

func TestSimCfg_Defaults(t *testing.T) {
	cfg := SimCfg{}
	assert.Equal(t, DefaultMaxNodes, cfg.GetMaxNodes())
	ttl, err := cfg.GetCacheTTL()
	assert.NoError(t, err)
	assert.Equal(t, DefaultCacheTTL, ttl)

	cfg.CacheTTL = "0"
	ttl, err = cfg.GetCacheTTL()
	assert.NoError(t, err)
	assert.Zero(t, ttl)

	cfg.CacheTTL = "soon"
	_, err = cfg.GetCacheTTL()
	assert.ErrorContains(t, err, "invalid cache_ttl")
}

func TestSimCfg_GetLinks(t *testing.T) {
	cfg := SimCfg{
		Graph:         []string{"core = 1, 2, 3", "core, core"},
		DefaultWeight: 2,
		Links:         []string{"3-1-7.5", "3-4-1"},
	}
	links, err := cfg.GetLinks()
	require.NoError(t, err)
	assert.Equal(t, []Link{
		{1, 2, 2},
		{2, 3, 2},
		{3, 1, 7.5},
		{3, 4, 1},
	}, links)
}

func TestSimCfg_GetLinksMalformed(t *testing.T) {
	cfg := SimCfg{Links: []string{"1-2"}}
	_, err := cfg.GetLinks()
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestSimCfg_Deserialize(t *testing.T) {
	input := `max_nodes: 20
graph:
  - a = 1, 2
  - a, 3
links:
  - 1-2-4
default_weight: 1.5
prefixes:
  1:
    - 10.0.1.0/24
  3:
    - 10.0.3.0/24
    - fd00::/64
cache_ttl: 1m
`
	cfg := SimCfg{}
	require.NoError(t, yaml.Unmarshal([]byte(input), &cfg))
	assert.Equal(t, 20, cfg.GetMaxNodes())
	ttl, err := cfg.GetCacheTTL()
	assert.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)
	assert.Equal(t, []NodeId{1, 3}, cfg.GetPrefixNodes())
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.3.0/24"),
		netip.MustParsePrefix("fd00::/64"),
	}, cfg.Prefixes[3])

	links, err := cfg.GetLinks()
	require.NoError(t, err)
	assert.Equal(t, []Link{
		{1, 3, 1.5},
		{2, 3, 1.5},
		{1, 2, 4},
	}, links)
	assert.NoError(t, SimConfigValidator(&cfg))

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	again := SimCfg{}
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.EqualValues(t, cfg, again)
}

func TestSimCfg_DeserializeInvalid(t *testing.T) {
	input := `max_nodes: lots
`
	cfg := SimCfg{}
	err := yaml.Unmarshal([]byte(input), &cfg)
	assert.ErrorContains(t, err, "cannot unmarshal string")
}
