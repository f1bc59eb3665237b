package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/pvegraph/internal/config"
	"evalgo.org/pvegraph/models"
)

func TestNew(t *testing.T) {
	v := New()
	assert.NotNil(t, v)
	assert.NotNil(t, v.structValidator)
}

func fieldsOf(r *ValidationResult) []string {
	var out []string
	for _, e := range r.Errors {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateProxmox(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		cfg    config.ProxmoxConfig
		valid  bool
		fields []string
	}{
		{
			name: "complete",
			cfg: config.ProxmoxConfig{
				Host:        "https://pve.example.com:8006",
				TokenID:     "root@pam!graph",
				TokenSecret: "s3cret",
			},
			valid: true,
		},
		{
			name:   "nothing set",
			cfg:    config.ProxmoxConfig{},
			fields: []string{"proxmox.host", "proxmox.token_id", "proxmox.token_secret"},
		},
		{
			name: "host is not a url",
			cfg: config.ProxmoxConfig{
				Host:        "not a url",
				TokenID:     "root@pam!graph",
				TokenSecret: "s3cret",
			},
			fields: []string{"proxmox.host"},
		},
		{
			name: "token id without token name",
			cfg: config.ProxmoxConfig{
				Host:        "https://10.0.0.2:8006",
				TokenID:     "root@pam",
				TokenSecret: "s3cret",
			},
			fields: []string{"proxmox.token_id"},
		},
		{
			name: "missing secret",
			cfg: config.ProxmoxConfig{
				Host:    "https://10.0.0.2:8006",
				TokenID: "root@pam!graph",
			},
			fields: []string{"proxmox.token_secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateProxmox(tt.cfg)
			require.NotNil(t, result)
			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, tt.fields, fieldsOf(result))
			if tt.valid {
				assert.Empty(t, result.String())
			} else {
				assert.NotEmpty(t, result.String())
			}
		})
	}
}

func TestValidateProxmox_DoesNotLeakSecret(t *testing.T) {
	v := New()

	result := v.ValidateProxmox(config.ProxmoxConfig{
		Host:        "nope",
		TokenID:     "root@pam",
		TokenSecret: "s3cret",
	})

	require.False(t, result.Valid)
	for _, e := range result.Errors {
		assert.NotEqual(t, "s3cret", e.Value)
		assert.NotContains(t, e.Message, "s3cret")
	}

	contains := result.Errors[len(result.Errors)-1]
	assert.Equal(t, "proxmox.token_id", contains.Field)
	assert.Equal(t, "root@pam", contains.Value)
	assert.Contains(t, contains.Message, `"!"`)
}

func TestValidateNodeName(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		node  string
		valid bool
	}{
		{"simple", "pve1", true},
		{"with dash", "pve-node-02", true},
		{"fqdn", "pve1.lab.example.com", true},
		{"empty", "", false},
		{"path traversal", "../etc", false},
		{"underscore", "pve_1", false},
		{"leading dash", "-pve", false},
		{"slash", "pve1/qemu", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateNodeName(tt.node)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				require.Len(t, result.Errors, 1)
				assert.Equal(t, "node", result.Errors[0].Field)
			}
		})
	}
}

func TestValidateTopology(t *testing.T) {
	v := New()

	valid := func() *models.Topology {
		return &models.Topology{
			Nodes: []models.Node{
				{ID: "node-pve1", Type: models.NodePhysical},
				{ID: "vm-pve1-100", Type: models.NodeVM},
				{ID: "vm-pve1-101", Type: models.NodeContainer},
				{ID: "network-vmbr0", Type: models.NodeBridge},
				{ID: "vlan-10", Type: models.NodeVLAN},
				{ID: "sdn-vnet1", Type: models.NodeSDNVnet},
			},
			Edges: []models.Edge{
				{Source: "node-pve1", Target: "network-vmbr0", Type: models.EdgePhysicalConnection},
				{Source: "node-pve1", Target: "vm-pve1-100", Type: models.EdgeHosts},
				{Source: "vm-pve1-100", Target: "network-vmbr0", Type: models.EdgeNetworkConnection},
			},
			Summary: models.Summary{TotalNodes: 1, TotalVMs: 2, TotalNetworks: 2, TotalSDN: 1},
		}
	}

	t.Run("valid", func(t *testing.T) {
		result := v.ValidateTopology(valid())
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
	})

	t.Run("nil", func(t *testing.T) {
		result := v.ValidateTopology(nil)
		assert.False(t, result.Valid)
	})

	t.Run("duplicate id", func(t *testing.T) {
		topo := valid()
		topo.Nodes = append(topo.Nodes, models.Node{ID: "vlan-10", Type: models.NodeVLAN})
		topo.Summary.TotalNetworks = 3

		result := v.ValidateTopology(topo)
		assert.False(t, result.Valid)
		assert.Equal(t, []string{"nodes[6].id"}, fieldsOf(result))
	})

	t.Run("dangling edge", func(t *testing.T) {
		topo := valid()
		topo.Edges = append(topo.Edges, models.Edge{Source: "vm-pve1-101", Target: "network-vmbr9"})

		result := v.ValidateTopology(topo)
		assert.Equal(t, []string{"edges[3].target"}, fieldsOf(result))
	})

	t.Run("summary mismatch", func(t *testing.T) {
		topo := valid()
		topo.Summary.TotalVMs = 5

		result := v.ValidateTopology(topo)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "summary.total_vms", result.Errors[0].Field)
		assert.Equal(t, 5, result.Errors[0].Value)
	})

	t.Run("unknown type", func(t *testing.T) {
		topo := valid()
		topo.Nodes[5].Type = "storage"
		topo.Summary.TotalSDN = 0

		result := v.ValidateTopology(topo)
		assert.Equal(t, []string{"nodes[5].type"}, fieldsOf(result))
	})
}
