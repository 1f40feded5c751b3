package core

import (
	"fmt"
	"io"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/encodeous/routesim/state"
	"github.com/pterm/pterm"
)

func FormatDistance(d float64) string {
	if d == state.INF {
		return "unreachable"
	}
	return state.FormatWeight(d)
}

func formatNode(n state.NodeId) string {
	if n == state.NoNode {
		return "-"
	}
	return strconv.Itoa(int(n))
}

func renderTable(w io.Writer, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func RenderMatrix(w io.Writer, t *state.Topology) error {
	if t.N() == 0 {
		_, err := fmt.Fprintln(w, "topology is empty")
		return err
	}
	m := t.Matrix()
	header := []string{"u|v"}
	for i := 1; i <= t.N(); i++ {
		header = append(header, strconv.Itoa(i))
	}
	data := pterm.TableData{header}
	for i := 1; i <= t.N(); i++ {
		row := []string{strconv.Itoa(i)}
		for j := 1; j <= t.N(); j++ {
			row = append(row, state.FormatWeight(m[i][j]))
		}
		data = append(data, row)
	}
	return renderTable(w, data)
}

func RenderLinks(w io.Writer, links []state.Link) error {
	if len(links) == 0 {
		_, err := fmt.Fprintln(w, "no links")
		return err
	}
	data := pterm.TableData{{"u", "v", "weight"}}
	for _, l := range links {
		data = append(data, []string{formatNode(l.U), formatNode(l.V), state.FormatWeight(l.Weight)})
	}
	return renderTable(w, data)
}

// RenderTrace prints the distance vector after every selection round. Unreachable nodes are shown as "-".
func RenderTrace(w io.Writer, res *state.RunResult) error {
	for _, it := range res.Trace {
		if _, err := fmt.Fprintf(w, "Iter: %d (selected %d)\n", it.Round, it.Selected); err != nil {
			return err
		}
		dest := []string{"Dest"}
		cost := []string{"Cost"}
		for n := 1; n <= res.N; n++ {
			dest = append(dest, strconv.Itoa(n))
			if it.Distance[n] == state.INF {
				cost = append(cost, "-")
			} else {
				cost = append(cost, state.FormatWeight(it.Distance[n]))
			}
		}
		if err := renderTable(w, pterm.TableData{dest, cost}); err != nil {
			return err
		}
	}
	return nil
}

func RenderLinkState(w io.Writer, res *state.RunResult) error {
	data := pterm.TableData{{"Path: [s] -> [d]", "Min-Cost", "Shortest Path"}}
	for _, r := range res.Routes {
		data = append(data, []string{
			fmt.Sprintf("%d -> %d", res.Source, r.Dest),
			FormatDistance(r.Distance),
			state.FormatPath(r.Path),
		})
	}
	return renderTable(w, data)
}

func RenderDistanceVector(w io.Writer, res *state.RunResult) error {
	data := pterm.TableData{{"Dest", "Next Hop", "Dist", "Shortest Path"}}
	for _, r := range res.Routes {
		data = append(data, []string{
			strconv.Itoa(int(r.Dest)),
			formatNode(r.NextHop),
			FormatDistance(r.Distance),
			state.FormatPath(r.Path),
		})
	}
	return renderTable(w, data)
}

func RenderConvergence(w io.Writer, algo state.Algorithm, elapsed time.Duration, cached bool) error {
	suffix := ""
	if cached {
		suffix = " (cached)"
	}
	ms := float64(elapsed.Nanoseconds()) / float64(time.Millisecond)
	_, err := fmt.Fprintf(w, "Convergence time of %s: %s ms%s\n", strings.ToUpper(string(algo)), strconv.FormatFloat(ms, 'f', 4, 64), suffix)
	return err
}

func RenderRun(w io.Writer, run Run) error {
	res := run.Result
	if _, err := fmt.Fprintf(w, "Source: %d\n", res.Source); err != nil {
		return err
	}
	switch res.Algorithm {
	case state.LinkStateAlgorithm:
		if err := RenderTrace(w, res); err != nil {
			return err
		}
		if err := RenderLinkState(w, res); err != nil {
			return err
		}
	case state.DistanceVectorAlgorithm:
		if err := RenderDistanceVector(w, res); err != nil {
			return err
		}
	}
	return RenderConvergence(w, res.Algorithm, res.Elapsed, run.Cached)
}

func RenderPlan(w io.Writer, plan *state.AddressPlan) error {
	nodes := plan.Nodes()
	if len(nodes) == 0 {
		_, err := fmt.Fprintln(w, "no prefixes advertised")
		return err
	}
	data := pterm.TableData{{"Node", "Prefixes"}}
	for _, n := range nodes {
		pfxs := make([]string, 0)
		for _, p := range plan.Prefixes(n) {
			pfxs = append(pfxs, p.String())
		}
		data = append(data, []string{strconv.Itoa(int(n)), strings.Join(pfxs, ", ")})
	}
	return renderTable(w, data)
}

func RenderLookup(w io.Writer, addr netip.Addr, dst state.NodeId, route state.Route, src state.NodeId) error {
	if src == dst {
		_, err := fmt.Fprintf(w, "%s is local to node %d\n", addr, src)
		return err
	}
	if !route.Reachable {
		_, err := fmt.Fprintf(w, "%s belongs to node %d, which is unreachable from %d\n", addr, dst, src)
		return err
	}
	_, err := fmt.Fprintf(w, "%s via %d (dest %d, dist %s, path %s)\n",
		addr, route.NextHop, dst, FormatDistance(route.Distance), state.FormatPath(route.Path))
	return err
}
