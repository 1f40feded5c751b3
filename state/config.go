package state

import (
	"fmt"
	"maps"
	"net/netip"
	"slices"
	"strconv"
	"strings"
	"time"
)

// SimCfg is the topology file loaded by the cli
type SimCfg struct {
	MaxNodes      int                       `yaml:"max_nodes,omitempty"`      // upper bound of node ids, DefaultMaxNodes if 0
	Links         []string                  `yaml:"links,omitempty"`          // u-v-weight triples
	Graph         []string                  `yaml:"graph,omitempty"`          // group syntax, see ParseGraph. links get DefaultWeight
	DefaultWeight float64                   `yaml:"default_weight,omitempty"` // weight of links created from Graph, DefaultLinkWeight if 0
	Prefixes      map[NodeId][]netip.Prefix `yaml:"prefixes,omitempty"`       // address plan, used by lookup
	CacheTTL      string                    `yaml:"cache_ttl,omitempty"`      // how long routing results are kept, "0" disables the cache
	LogPath       string                    `yaml:"log_path,omitempty"`       // if not empty, routesim will also write logs to this file
}

func (c *SimCfg) GetMaxNodes() int {
	if c.MaxNodes <= 0 {
		return DefaultMaxNodes
	}
	return c.MaxNodes
}

func (c *SimCfg) GetCacheTTL() (time.Duration, error) {
	if c.CacheTTL == "" {
		return DefaultCacheTTL, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache_ttl %q: %w", c.CacheTTL, err)
	}
	return d, nil
}

// GetLinks expands Graph and Links into a single link list.
// Links listed explicitly override the weight of the same link from Graph.
func (c *SimCfg) GetLinks() ([]Link, error) {
	weight := c.DefaultWeight
	if weight == 0 {
		weight = DefaultLinkWeight
	}
	pairs, err := ParseGraph(c.Graph)
	if err != nil {
		return nil, err
	}
	links := make([]Link, 0, len(pairs)+len(c.Links))
	for _, p := range pairs {
		links = append(links, Link{U: p.V1, V: p.V2, Weight: weight})
	}
	explicit, err := ParseLinks(c.Links)
	if err != nil {
		return nil, err
	}
	for _, l := range explicit {
		links = slices.DeleteFunc(links, func(o Link) bool {
			return MakeSortedPair(o.U, o.V) == MakeSortedPair(l.U, l.V)
		})
		links = append(links, l)
	}
	return links, nil
}

func (c *SimCfg) GetPrefixNodes() []NodeId {
	return slices.Sorted(maps.Keys(c.Prefixes))
}

func isNodeSymbol(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func parseSymbolList(s string, groups []string) ([]string, error) {
	spl := strings.Split(strings.TrimSpace(s), ",")
	line := make([]string, 0)
	for _, s := range spl {
		x := strings.TrimSpace(s)
		if x == "" {
			continue
		}
		if !isNodeSymbol(x) && !slices.Contains(groups, x) {
			return nil, fmt.Errorf(`%s is not a valid node/group`, x)
		}
		line = append(line, x)
	}
	if len(line) == 0 {
		return nil, fmt.Errorf(`node/group list must not be empty`)
	}
	slices.Sort(line)
	return line, nil
}

/*
ParseGraph Graph syntax is something like this:

core = 1, 2, 3

edge = 4, 5

core, edge, 6 // core, edge and 6 will all be interconnected, but not within core or edge

core, core // every node in core is connected to every other node in core

8, 9 // 8 and 9 will be connected

Node ids are integers, every other symbol must be a group defined somewhere in graph.
Blank lines and lines starting with # are ignored.
*/
func ParseGraph(graph []string) ([]Pair[NodeId, NodeId], error) {
	parsedPairings := make([]Pair[string, string], 0)

	groups := make(map[string][]string)

	symbols := make([]string, 0)

	// pass 0, collect all group names

	for _, line := range graph {
		line = strings.ToLower(strings.TrimSpace(line))
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "=") {
			spl := strings.Split(line, "=")
			if len(spl) != 2 {
				return nil, fmt.Errorf("invalid graph: %s. group definition must contain one '='", line)
			}
			grp := strings.TrimSpace(spl[0])
			if grp == "" {
				return nil, fmt.Errorf("invalid graph: %s. group name must not be empty", line)
			}
			if isNodeSymbol(grp) {
				return nil, fmt.Errorf("group name must not be a node id: %s", grp)
			}
			symbols = append(symbols, grp)
		}
	}
	slices.Sort(symbols)
	symbols = slices.Compact(symbols)

	// used for topological sorting
	// map: group -> []<groups that the group depends on>
	topo := make(map[string][]string)
	expansion := make(map[string][]string)

	// pass 1, parse graph
	for _, line := range graph {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "=") {
			spl := strings.Split(line, "=")
			grp := strings.TrimSpace(spl[0])
			if _, ok := groups[grp]; ok {
				return nil, fmt.Errorf("duplicate group name: %s", grp)
			}
			lst, err := parseSymbolList(spl[1], symbols)
			if err != nil {
				return nil, err
			}
			deps := make([]string, 0)
			for _, l := range lst {
				if isNodeSymbol(l) {
					expansion[grp] = append(expansion[grp], l)
				} else {
					deps = append(deps, l)
				}
			}
			slices.Sort(deps)
			deps = slices.Compact(deps)

			topo[grp] = deps
			groups[grp] = lst
		} else {
			names, err := parseSymbolList(line, symbols)
			if err != nil {
				return nil, err
			}
			if len(names) < 2 {
				return nil, fmt.Errorf("invalid pairing, %v", names)
			}
			for i, name := range names {
				for _, prev := range names[:i] {
					parsedPairings = append(parsedPairings, MakeSortedPair(prev, name))
				}
			}
		}
	}
	SortPairs(parsedPairings)
	parsedPairings = slices.Compact(parsedPairings)

	// pass 2, expand group names
	// just topological sorting
	for len(topo) > 0 {
		var group string
		for _, k := range slices.Sorted(maps.Keys(topo)) {
			if len(topo[k]) == 0 {
				group = k
				break
			}
		}
		if group == "" {
			cycleNodes := slices.Sorted(maps.Keys(topo))
			return nil, fmt.Errorf("cycle detected in graph: %v", cycleNodes)
		}
		delete(topo, group)

		// remove and expand the group for every dependent
		for k, deps := range topo {
			if slices.Contains(deps, group) {
				expansion[k] = append(expansion[k], expansion[group]...)
				slices.Sort(expansion[k])
				expansion[k] = slices.Compact(expansion[k])
				topo[k] = slices.DeleteFunc(deps, func(dep string) bool {
					return dep == group
				})
			}
		}
	}

	expand := func(sym string) []NodeId {
		if isNodeSymbol(sym) {
			id, _ := strconv.Atoi(sym)
			return []NodeId{NodeId(id)}
		}
		ids := make([]NodeId, 0, len(expansion[sym]))
		for _, exp := range expansion[sym] {
			id, _ := strconv.Atoi(exp)
			ids = append(ids, NodeId(id))
		}
		return ids
	}

	// pass 3, rewrite pairings
	pairings := make([]Pair[NodeId, NodeId], 0)
	for _, pair := range parsedPairings {
		for _, x := range expand(pair.V1) {
			for _, y := range expand(pair.V2) {
				if x != y {
					pairings = append(pairings, MakeSortedPair(x, y))
				}
			}
		}
	}
	SortPairs(pairings)
	return slices.Compact(pairings), nil
}
