package state

import (
	"slices"
	"strconv"
	"strings"
)

// BuildPath walks the parent pointers from dst back to the root and returns the nodes in
// forward order (src first). ok is false if dst was not reached from src.
func BuildPath(parent []NodeId, src, dst NodeId) (path []NodeId, ok bool) {
	if src == dst {
		return []NodeId{src}, true
	}
	if dst < 1 || int(dst) >= len(parent) {
		return nil, false
	}
	cur := dst
	for steps := 0; steps < len(parent); steps++ {
		path = append(path, cur)
		next := parent[cur]
		if next == NoParent {
			if cur != src {
				return nil, false
			}
			slices.Reverse(path)
			return path, true
		}
		cur = next
	}
	// parent pointers form a cycle, only possible with a negative cycle
	return nil, false
}

// NextHop is the node right after the source on path
func NextHop(path []NodeId) NodeId {
	if len(path) < 2 {
		return NoNode
	}
	return path[1]
}

func FormatPath(path []NodeId) string {
	if len(path) == 0 {
		return "-"
	}
	sb := strings.Builder{}
	for i, n := range path {
		if i != 0 {
			sb.WriteString(" -> ")
		}
		sb.WriteString(strconv.Itoa(int(n)))
	}
	return sb.String()
}
