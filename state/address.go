package state

import (
	"fmt"
	"maps"
	"net"
	"net/netip"
	"slices"

	"github.com/cilium/cilium/pkg/ip"
	"github.com/gaissmai/bart"
)

// AddressPlan maps the prefixes advertised by each node to that node.
// It is independent of the links, so redefining the topology keeps it.
type AddressPlan struct {
	prefixes map[NodeId][]netip.Prefix
	table    bart.Table[NodeId]
}

func NewAddressPlan() *AddressPlan {
	return &AddressPlan{
		prefixes: make(map[NodeId][]netip.Prefix),
	}
}

// NewAddressPlanFrom builds a plan from per-node prefixes, advertised in increasing node order
func NewAddressPlanFrom(prefixes map[NodeId][]netip.Prefix) (*AddressPlan, error) {
	p := NewAddressPlan()
	for _, node := range slices.Sorted(maps.Keys(prefixes)) {
		if err := p.Advertise(node, prefixes[node]...); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Advertise adds prefixes to node. Every address belongs to at most one node, so a prefix that
// overlaps a prefix of another node is rejected. Nothing is changed on error.
func (p *AddressPlan) Advertise(node NodeId, prefixes ...netip.Prefix) error {
	masked := make([]netip.Prefix, 0, len(prefixes))
	for _, pfx := range prefixes {
		if !pfx.IsValid() {
			return fmt.Errorf("%w: invalid prefix %s", ErrInvalidOperation, pfx)
		}
		pfx = pfx.Masked()
		if owner, owned, ok := p.overlapping(node, pfx); ok {
			return fmt.Errorf("%w: prefix %s overlaps %s, which is advertised by node %d", ErrInvalidOperation, pfx, owned, owner)
		}
		masked = append(masked, pfx)
	}
	p.prefixes[node] = CoalescePrefix(append(slices.Clone(p.prefixes[node]), masked...))
	p.rebuild()
	return nil
}

// overlapping finds a prefix of a node other than node that shares an address with pfx
func (p *AddressPlan) overlapping(node NodeId, pfx netip.Prefix) (NodeId, netip.Prefix, bool) {
	for _, owner := range p.Nodes() {
		if owner == node {
			continue
		}
		for _, owned := range p.prefixes[owner] {
			if owned.Overlaps(pfx) {
				return owner, owned, true
			}
		}
	}
	return NoNode, netip.Prefix{}, false
}

func (p *AddressPlan) rebuild() {
	p.table = bart.Table[NodeId]{}
	for _, node := range p.Nodes() {
		for _, pfx := range p.prefixes[node] {
			p.table.Insert(pfx, node)
		}
	}
}

// Resolve finds the node owning the longest prefix that contains addr
func (p *AddressPlan) Resolve(addr netip.Addr) (NodeId, bool) {
	return p.table.Lookup(addr.Unmap())
}

func (p *AddressPlan) Prefixes(node NodeId) []netip.Prefix {
	return slices.Clone(p.prefixes[node])
}

func (p *AddressPlan) Nodes() []NodeId {
	return slices.Sorted(maps.Keys(p.prefixes))
}

func toIPNets(prefixes []netip.Prefix) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(prefixes))
	for _, p := range prefixes {
		if p.IsValid() {
			p = p.Masked()
			nets = append(nets, &net.IPNet{
				IP:   p.Addr().AsSlice(),
				Mask: net.CIDRMask(p.Bits(), p.Addr().BitLen()),
			})
		}
	}
	return nets
}

func fromIPNets(nets []*net.IPNet) []netip.Prefix {
	output := make([]netip.Prefix, 0, len(nets))
	for _, n := range nets {
		if addr, ok := netip.AddrFromSlice(n.IP); ok {
			ones, _ := n.Mask.Size()
			output = append(output, netip.PrefixFrom(addr.Unmap(), ones))
		}
	}
	return output
}

// CoalescePrefix merges adjacent and overlapping prefixes
func CoalescePrefix(prefixes []netip.Prefix) []netip.Prefix {
	ipv4, ipv6 := ip.CoalesceCIDRs(toIPNets(prefixes))
	return fromIPNets(append(ipv4, ipv6...))
}
