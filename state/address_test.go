package state

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPlan_Resolve(t *testing.T) {
	plan := NewAddressPlan()
	require.NoError(t, plan.Advertise(1, netip.MustParsePrefix("10.0.0.0/16")))
	require.NoError(t, plan.Advertise(1, netip.MustParsePrefix("10.0.7.0/24")))
	require.NoError(t, plan.Advertise(2, netip.MustParsePrefix("10.1.0.0/16")))
	require.NoError(t, plan.Advertise(3, netip.MustParsePrefix("fd00::/64")))

	node, ok := plan.Resolve(netip.MustParseAddr("10.1.2.3"))
	assert.True(t, ok)
	assert.Equal(t, NodeId(2), node)

	node, ok = plan.Resolve(netip.MustParseAddr("10.0.7.1"))
	assert.True(t, ok)
	assert.Equal(t, NodeId(1), node)

	node, ok = plan.Resolve(netip.MustParseAddr("::ffff:10.1.0.1"))
	assert.True(t, ok)
	assert.Equal(t, NodeId(2), node)

	node, ok = plan.Resolve(netip.MustParseAddr("fd00::1"))
	assert.True(t, ok)
	assert.Equal(t, NodeId(3), node)

	_, ok = plan.Resolve(netip.MustParseAddr("192.168.0.1"))
	assert.False(t, ok)
}

func TestAddressPlan_Conflict(t *testing.T) {
	plan := NewAddressPlan()
	require.NoError(t, plan.Advertise(1, netip.MustParsePrefix("10.0.0.0/24")))
	err := plan.Advertise(2, netip.MustParsePrefix("10.0.0.5/24"))
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, []NodeId{1}, plan.Nodes())

	// the same node can advertise a prefix twice
	assert.NoError(t, plan.Advertise(1, netip.MustParsePrefix("10.0.0.0/24")))
	assert.Len(t, plan.Prefixes(1), 1)
}

func TestAddressPlan_ConflictAfterCoalesce(t *testing.T) {
	plan := NewAddressPlan()
	require.NoError(t, plan.Advertise(1,
		netip.MustParsePrefix("10.0.0.0/24"),
		netip.MustParsePrefix("10.0.1.0/24"),
	))
	require.Equal(t, []netip.Prefix{netip.MustParsePrefix("10.0.0.0/23")}, plan.Prefixes(1))

	// part of the space of node 1
	err := plan.Advertise(2, netip.MustParsePrefix("10.0.1.0/24"))
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.ErrorContains(t, err, "advertised by node 1")
	// covers the space of node 1
	err = plan.Advertise(2, netip.MustParsePrefix("10.0.0.0/16"))
	assert.ErrorIs(t, err, ErrInvalidOperation)

	assert.Equal(t, []NodeId{1}, plan.Nodes())
	node, ok := plan.Resolve(netip.MustParseAddr("10.0.1.9"))
	assert.True(t, ok)
	assert.Equal(t, NodeId(1), node)
}

func TestAddressPlan_FailedAdvertiseKeepsPlan(t *testing.T) {
	plan := NewAddressPlan()
	require.NoError(t, plan.Advertise(1, netip.MustParsePrefix("10.0.0.0/24")))
	err := plan.Advertise(2,
		netip.MustParsePrefix("10.5.0.0/24"),
		netip.MustParsePrefix("10.0.0.128/25"),
	)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Empty(t, plan.Prefixes(2))
	_, ok := plan.Resolve(netip.MustParseAddr("10.5.0.1"))
	assert.False(t, ok)
}

func TestAddressPlan_Masked(t *testing.T) {
	plan := NewAddressPlan()
	require.NoError(t, plan.Advertise(3, netip.MustParsePrefix("172.16.5.9/16")))
	assert.Equal(t, []netip.Prefix{netip.MustParsePrefix("172.16.0.0/16")}, plan.Prefixes(3))
}

func TestNewAddressPlanFrom(t *testing.T) {
	plan, err := NewAddressPlanFrom(map[NodeId][]netip.Prefix{
		2: {netip.MustParsePrefix("10.2.0.0/16")},
		1: {netip.MustParsePrefix("10.1.0.0/16")},
	})
	require.NoError(t, err)
	assert.Equal(t, []NodeId{1, 2}, plan.Nodes())

	_, err = NewAddressPlanFrom(map[NodeId][]netip.Prefix{
		1: {netip.MustParsePrefix("10.0.0.0/24"), netip.MustParsePrefix("10.0.1.0/24")},
		2: {netip.MustParsePrefix("10.0.0.0/23")},
	})
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestAddressPlan_Coalesce(t *testing.T) {
	plan := NewAddressPlan()
	require.NoError(t, plan.Advertise(4,
		netip.MustParsePrefix("10.0.0.0/25"),
		netip.MustParsePrefix("10.0.0.128/25"),
		netip.MustParsePrefix("10.0.0.7/32"),
	))
	assert.Equal(t, []netip.Prefix{netip.MustParsePrefix("10.0.0.0/24")}, plan.Prefixes(4))
}

func TestCoalescePrefix(t *testing.T) {
	out := CoalescePrefix([]netip.Prefix{
		netip.MustParsePrefix("192.168.0.0/24"),
		netip.MustParsePrefix("192.168.1.0/24"),
		netip.MustParsePrefix("fd00::/65"),
		netip.MustParsePrefix("fd00:0:0:0:8000::/65"),
	})
	assert.ElementsMatch(t, []netip.Prefix{
		netip.MustParsePrefix("192.168.0.0/23"),
		netip.MustParsePrefix("fd00::/64"),
	}, out)
}
