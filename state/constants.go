package state

import (
	"math"
	"time"
)

const (
	// INF is the distance of a destination that has not been reached. It is never added to.
	INF = math.MaxFloat64
	// NoEdge marks a missing link in the cost matrix.
	NoEdge = -1.0
	// NoParent marks the root of a parent-pointer tree, or a node that was never reached.
	NoParent NodeId = -1
	// NoNode is used where a node is absent, e.g. the next hop of an unreachable destination.
	NoNode NodeId = 0
)

var (
	DefaultMaxNodes      = 100
	DefaultCacheTTL      = 30 * time.Second
	DefaultLinkWeight    = 1.0
	SlowCommandThreshold = 50 * time.Millisecond

	// DefaultConfigPath is used by the cli when --config is not given
	DefaultConfigPath = "routesim.yaml"
)

// rotation of the log file
var (
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28
)
