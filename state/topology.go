package state

import (
	"fmt"
	"math"
	"slices"
)

type NodeId int

// Edge is a single directed entry (u -> v) of the edge list
type Edge = Pair[NodeId, NodeId]

// Link is an undirected link with a weight, as written by the operator (u-v-weight)
type Link struct {
	U      NodeId
	V      NodeId
	Weight float64
}

func (l Link) String() string {
	return fmt.Sprintf("%d-%d-%s", l.U, l.V, FormatWeight(l.Weight))
}

// Graph is a read-only copy of the topology handed to the routing engines.
// Cost is indexed by node id, index 0 is unused.
type Graph struct {
	N     int
	Cost  [][]float64
	Edges []Edge
}

// Vertices returns the distinct source endpoints of the edge list in increasing order.
// Nodes without an incident link are not included.
func (g Graph) Vertices() []NodeId {
	vertices := make([]NodeId, 0)
	for _, e := range g.Edges {
		vertices = append(vertices, e.V1)
	}
	slices.Sort(vertices)
	return slices.Compact(vertices)
}

// Topology holds the cost matrix and the duplicated directed edge list.
// Every link is stored twice (u -> v and v -> u) and the matrix is kept symmetric.
// Topology access must be done only on a single Goroutine.
type Topology struct {
	maxNodes int
	n        int
	cost     [][]float64
	edges    []Edge
	revision uint64
}

func NewTopology(maxNodes int) *Topology {
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	t := &Topology{maxNodes: maxNodes}
	t.Reinitialize()
	return t
}

// Reinitialize drops every link and resets the node count to 0
func (t *Topology) Reinitialize() {
	t.n = 0
	t.cost = [][]float64{{0}}
	t.edges = nil
	t.revision++
}

// Define replaces the whole topology with the given links.
// All links are validated before anything is changed.
func (t *Topology) Define(links []Link) error {
	for _, l := range links {
		if err := t.checkLink(l.U, l.V); err != nil {
			return err
		}
		if err := checkWeight(l.Weight); err != nil {
			return err
		}
	}
	t.Reinitialize()
	for _, l := range links {
		t.grow(max(int(l.U), int(l.V)))
		if t.cost[l.U][l.V] == NoEdge {
			t.edges = append(t.edges, Edge{l.U, l.V}, Edge{l.V, l.U})
		}
		t.cost[l.U][l.V] = l.Weight
		t.cost[l.V][l.U] = l.Weight
	}
	return nil
}

// Modify sets the weight of the link u-v, creating it if it does not exist.
// Updating an existing link leaves the edge list untouched.
func (t *Topology) Modify(u, v NodeId, weight float64) error {
	if err := t.checkLink(u, v); err != nil {
		return err
	}
	if err := checkWeight(weight); err != nil {
		return err
	}
	t.grow(max(int(u), int(v)))
	if t.cost[u][v] == NoEdge {
		t.edges = append(t.edges, Edge{u, v}, Edge{v, u})
		t.cost[u][u] = 0
		t.cost[v][v] = 0
	}
	t.cost[u][v] = weight
	t.cost[v][u] = weight
	t.revision++
	return nil
}

// Remove deletes the link u-v. The node count is not reduced.
func (t *Topology) Remove(u, v NodeId) error {
	if err := t.checkLink(u, v); err != nil {
		return err
	}
	if !t.HasLink(u, v) {
		return fmt.Errorf("%w: link %d-%d does not exist", ErrNotFound, u, v)
	}
	t.cost[u][v] = NoEdge
	t.cost[v][u] = NoEdge
	t.edges = slices.DeleteFunc(t.edges, func(e Edge) bool {
		return e == Edge{u, v} || e == Edge{v, u}
	})
	t.revision++
	return nil
}

func (t *Topology) checkLink(u, v NodeId) error {
	if u == v {
		return fmt.Errorf("%w: source and destination cannot be the same (%d)", ErrInvalidOperation, u)
	}
	if err := t.CheckNode(u); err != nil {
		return err
	}
	return t.CheckNode(v)
}

// CheckNode returns an error if id can never be a node of this topology
func (t *Topology) CheckNode(id NodeId) error {
	if id < 1 || int(id) > t.maxNodes {
		return fmt.Errorf("%w: node %d is outside [1, %d]", ErrInvalidOperation, id, t.maxNodes)
	}
	return nil
}

func checkWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("%w: weight %v is not a finite number", ErrInvalidOperation, w)
	}
	if w == NoEdge {
		return fmt.Errorf("%w: weight %s marks a missing link in the cost matrix and cannot be used as a link weight", ErrInvalidOperation, FormatWeight(NoEdge))
	}
	return nil
}

// grow extends the matrix so that node n is addressable
func (t *Topology) grow(n int) {
	if n <= t.n {
		return
	}
	for i := range t.cost {
		for len(t.cost[i]) <= n {
			t.cost[i] = append(t.cost[i], NoEdge)
		}
	}
	for i := len(t.cost); i <= n; i++ {
		row := make([]float64, n+1)
		for j := range row {
			row[j] = NoEdge
		}
		row[i] = 0
		t.cost = append(t.cost, row)
	}
	t.n = n
}

func (t *Topology) N() int {
	return t.n
}

func (t *Topology) MaxNodes() int {
	return t.maxNodes
}

// Revision changes every time the topology is mutated
func (t *Topology) Revision() uint64 {
	return t.revision
}

// Cost returns the weight of u -> v, NoEdge if there is no such link
func (t *Topology) Cost(u, v NodeId) float64 {
	if u < 1 || v < 1 || int(u) > t.n || int(v) > t.n {
		return NoEdge
	}
	return t.cost[u][v]
}

func (t *Topology) HasLink(u, v NodeId) bool {
	return u != v && t.Cost(u, v) != NoEdge
}

func (t *Topology) Edges() []Edge {
	return slices.Clone(t.edges)
}

// Links returns every undirected link once, with U < V, sorted
func (t *Topology) Links() []Link {
	pairs := make([]Pair[NodeId, NodeId], 0, len(t.edges)/2)
	for _, e := range t.edges {
		if e.V1 < e.V2 {
			pairs = append(pairs, e)
		}
	}
	SortPairs(pairs)
	links := make([]Link, 0, len(pairs))
	for _, p := range pairs {
		links = append(links, Link{U: p.V1, V: p.V2, Weight: t.cost[p.V1][p.V2]})
	}
	return links
}

// Matrix returns a copy of the cost matrix, indexed by node id
func (t *Topology) Matrix() [][]float64 {
	m := make([][]float64, len(t.cost))
	for i, row := range t.cost {
		m[i] = slices.Clone(row)
	}
	return m
}

func (t *Topology) Vertices() []NodeId {
	return Graph{Edges: t.edges}.Vertices()
}

// Snapshot copies the topology so that a routing run is isolated from later edits
func (t *Topology) Snapshot() Graph {
	return Graph{
		N:     t.n,
		Cost:  t.Matrix(),
		Edges: t.Edges(),
	}
}
