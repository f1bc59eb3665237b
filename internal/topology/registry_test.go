package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/pvegraph/models"
)

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry()

	first := r.GetOrCreate("vmbr0", models.NodeBridge, Seed{CIDR: "10.0.0.1/24", VLANAware: 1})
	again := r.GetOrCreate("vmbr0", models.NodeBridge, Seed{CIDR: "192.168.0.1/24"})

	assert.Same(t, first, again)
	assert.Equal(t, "10.0.0.1/24", again.Seed.CIDR, "seed of the first discovery is kept")
	assert.Equal(t, 1, r.Len())
	assert.Empty(t, first.Members)
	assert.NotNil(t, first.Members)
}

func TestRegistry_AddMember(t *testing.T) {
	r := NewRegistry()
	r.GetOrCreate("vlan-10", models.NodeVLAN, Seed{VLANID: "10"})

	assert.True(t, r.AddMember("vlan-10", "pve1"))
	assert.True(t, r.AddMember("vlan-10", "pve2"))
	assert.True(t, r.AddMember("vlan-10", "pve1"))
	assert.False(t, r.AddMember("vmbr9", "pve1"))

	e, ok := r.Get("vlan-10")
	require.True(t, ok)
	assert.Equal(t, []string{"pve1", "pve2", "pve1"}, e.Members)
	assert.False(t, r.Has("vmbr9"))
}

func TestRegistry_Flatten(t *testing.T) {
	r := NewRegistry()
	r.GetOrCreate("vmbr1", models.NodeBridge, Seed{CIDR: "10.1.0.1/24", Gateway: "10.1.0.254", VLANAware: 1})
	r.AddMember("vmbr1", "pve1")
	r.GetOrCreate("vlan-20", models.NodeVLAN, Seed{Label: "VLAN 20", CIDR: "10.20.0.1/24", VLANID: "20"})
	r.AddMember("vlan-20", "pve2")
	r.GetOrCreate("vmbr0", models.NodeBridge, Seed{})

	nodes := r.Flatten()
	require.Len(t, nodes, 3)

	assert.Equal(t, models.Node{
		ID:      "network-vmbr1",
		Label:   "vmbr1",
		Type:    models.NodeBridge,
		Segment: &models.Segment{CIDR: "10.1.0.1/24", Nodes: []string{"pve1"}},
		Bridge:  &models.Bridge{VLANAware: 1, Gateway: "10.1.0.254"},
	}, nodes[0])

	assert.Equal(t, models.Node{
		ID:      "vlan-20",
		Label:   "VLAN 20",
		Type:    models.NodeVLAN,
		Segment: &models.Segment{CIDR: "10.20.0.1/24", Nodes: []string{"pve2"}},
		VLAN:    &models.VLAN{VLANID: "20"},
	}, nodes[1])

	assert.Equal(t, "network-vmbr0", nodes[2].ID)
	assert.Equal(t, []string{}, nodes[2].Nodes)

	t.Run("flatten copies membership", func(t *testing.T) {
		r.AddMember("vmbr1", "pve3")
		assert.Equal(t, []string{"pve1"}, nodes[0].Nodes)
	})
}

func TestRegistry_Independent(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	a.GetOrCreate("vmbr0", models.NodeBridge, Seed{})

	assert.True(t, a.Has("vmbr0"))
	assert.False(t, b.Has("vmbr0"))
	assert.Zero(t, b.Len())
}
