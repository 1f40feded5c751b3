package core

import (
	"fmt"
	"maps"
	"net/netip"
	"slices"
	"strings"

	"github.com/encodeous/routesim/perf"
	"github.com/encodeous/routesim/state"
	"github.com/pterm/pterm"
)

type command struct {
	usage string
	help  string
	run   func(d *Dispatcher, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"topology":  {"topology [u-v-weight ...]", "replace the topology with the given links", (*Dispatcher).defineTopology},
		"show":      {"show", "print the cost matrix", (*Dispatcher).show},
		"links":     {"links", "list every link once", (*Dispatcher).links},
		"lsrp":      {"lsrp [src]", "run link-state routing from src, or from every node", (*Dispatcher).linkState},
		"dvrp":      {"dvrp [src]", "run distance-vector routing from src, or from every node", (*Dispatcher).distanceVector},
		"modify":    {"modify u-v-weight", "add a link or change its weight", (*Dispatcher).modify},
		"remove":    {"remove u-v", "remove a link", (*Dispatcher).remove},
		"advertise": {"advertise node prefix [prefix ...]", "assign prefixes to a node", (*Dispatcher).advertise},
		"prefixes":  {"prefixes", "list the advertised prefixes", (*Dispatcher).prefixes},
		"lookup":    {"lookup src addr", "find the next hop from src towards addr", (*Dispatcher).lookup},
		"help":      {"help", "list commands", (*Dispatcher).help},
	}
}

// Dispatcher executes operator commands against the state, one at a time on the main loop
type Dispatcher struct {
	*state.State
}

func (d *Dispatcher) Init(s *state.State) error {
	s.Log.Debug("init dispatcher")
	d.State = s
	return nil
}

func (d *Dispatcher) Cleanup(s *state.State) error {
	return nil
}

// Exec runs a single command line. A command that fails leaves the topology unchanged.
func (d *Dispatcher) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := fields[0], fields[1:]
	cmd, ok := commands[name]
	if !ok {
		perf.ObserveCommand("unknown", state.ErrUnknownCommand)
		return fmt.Errorf("%w: %s, try help", state.ErrUnknownCommand, name)
	}
	d.Log.Debug("exec", "command", name, "args", args)
	err := cmd.run(d, args)
	perf.ObserveCommand(name, err)
	return err
}

// Handle runs line and reports any error to the operator instead of returning it
func (d *Dispatcher) Handle(line string) {
	if err := d.Exec(line); err != nil {
		d.Log.Warn("command failed", "line", line, "error", err)
		_, _ = fmt.Fprintf(d.Out, "ERROR: %s\n", err)
	}
}

func usageError(name string) error {
	return fmt.Errorf("%w: usage: %s", state.ErrMalformedInput, commands[name].usage)
}

func (d *Dispatcher) defineTopology(args []string) error {
	links, err := state.ParseLinks(args)
	if err != nil {
		return err
	}
	if err := d.Topology.Define(links); err != nil {
		return err
	}
	d.Log.Info("topology defined", "links", len(links), "nodes", d.Topology.N())
	return nil
}

func (d *Dispatcher) show(args []string) error {
	if len(args) != 0 {
		return usageError("show")
	}
	return RenderMatrix(d.Out, d.Topology)
}

func (d *Dispatcher) links(args []string) error {
	if len(args) != 0 {
		return usageError("links")
	}
	return RenderLinks(d.Out, d.Topology.Links())
}

func (d *Dispatcher) linkState(args []string) error {
	return d.route(state.LinkStateAlgorithm, "lsrp", args)
}

func (d *Dispatcher) distanceVector(args []string) error {
	return d.route(state.DistanceVectorAlgorithm, "dvrp", args)
}

func (d *Dispatcher) route(algo state.Algorithm, name string, args []string) error {
	r := Get[*Router](d.State)
	switch len(args) {
	case 0:
		runs, elapsed, err := r.RouteAll(algo)
		if err != nil {
			return err
		}
		for _, run := range runs {
			if err := RenderRun(d.Out, run); err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(d.Out, "%d sources routed in %s\n", len(runs), elapsed)
		return err
	case 1:
		src, err := state.ParseNode(args[0])
		if err != nil {
			return err
		}
		run, err := r.Route(algo, src)
		if err != nil {
			return err
		}
		return RenderRun(d.Out, run)
	}
	return usageError(name)
}

func (d *Dispatcher) modify(args []string) error {
	if len(args) != 1 {
		return usageError("modify")
	}
	l, err := state.ParseLink(args[0])
	if err != nil {
		return err
	}
	return d.Topology.Modify(l.U, l.V, l.Weight)
}

func (d *Dispatcher) remove(args []string) error {
	if len(args) != 1 {
		return usageError("remove")
	}
	u, v, err := state.ParseEdge(args[0])
	if err != nil {
		return err
	}
	return d.Topology.Remove(u, v)
}

func (d *Dispatcher) advertise(args []string) error {
	if len(args) < 2 {
		return usageError("advertise")
	}
	node, err := state.ParseNode(args[0])
	if err != nil {
		return err
	}
	if err := d.Topology.CheckNode(node); err != nil {
		return err
	}
	prefixes := make([]netip.Prefix, 0, len(args)-1)
	for _, arg := range args[1:] {
		pfx, err := netip.ParsePrefix(arg)
		if err != nil {
			return fmt.Errorf("%w: %q is not a prefix", state.ErrMalformedInput, arg)
		}
		prefixes = append(prefixes, pfx)
	}
	return d.Plan.Advertise(node, prefixes...)
}

func (d *Dispatcher) prefixes(args []string) error {
	if len(args) != 0 {
		return usageError("prefixes")
	}
	return RenderPlan(d.Out, d.Plan)
}

func (d *Dispatcher) lookup(args []string) error {
	if len(args) != 2 {
		return usageError("lookup")
	}
	src, err := state.ParseNode(args[0])
	if err != nil {
		return err
	}
	addr, err := netip.ParseAddr(args[1])
	if err != nil {
		return fmt.Errorf("%w: %q is not an address", state.ErrMalformedInput, args[1])
	}
	dst, ok := d.Plan.Resolve(addr)
	if !ok {
		return fmt.Errorf("%w: no node advertises a prefix containing %s", state.ErrNotFound, addr)
	}
	run, err := Get[*Router](d.State).Route(state.DistanceVectorAlgorithm, src)
	if err != nil {
		return err
	}
	route, _ := run.Result.Route(dst)
	return RenderLookup(d.Out, addr, dst, route, src)
}

func (d *Dispatcher) help(args []string) error {
	data := pterm.TableData{{"Command", "Description"}}
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		data = append(data, []string{commands[name].usage, commands[name].help})
	}
	return renderTable(d.Out, data)
}
