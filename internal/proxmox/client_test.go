package proxmox

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "PVEAPIToken=root@pam!graph=s3cret" {
			http.Error(w, "authentication failure", http.StatusUnauthorized)
			return
		}
		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}
		body, ok := routes[key]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()

	c, err := New(Config{
		Host:        srv.URL + "/",
		TokenID:     "root@pam!graph",
		TokenSecret: "s3cret",
		Timeout:     2 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Run("requires host", func(t *testing.T) {
		_, err := New(Config{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	})

	t.Run("rejects relative host", func(t *testing.T) {
		_, err := New(Config{Host: "pve.local:8006"})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		c, err := New(Config{Host: "https://pve.local:8006/"})
		require.NoError(t, err)
		assert.Equal(t, "https://pve.local:8006", c.Host())
	})
}

func TestClient_Nodes(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/api2/json/cluster/resources?type=node": `{"data":[
			{"node":"pve1","status":"online","maxcpu":8,"maxmem":34359738368,"uptime":1200,"cpu":0.05},
			{"node":"pve2","status":"offline"}
		]}`,
	})
	c := newTestClient(t, srv)

	nodes, err := c.Nodes(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	assert.Equal(t, NodeResource{Node: "pve1", Status: "online", MaxCPU: 8, MaxMem: 34359738368, Uptime: 1200}, nodes[0])
	assert.Equal(t, "pve2", nodes[1].Node)
	assert.Zero(t, nodes[1].MaxCPU)
}

func TestClient_NodeNetwork(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/api2/json/nodes/pve1/network": `{"data":[
			{"iface":"vmbr0","type":"bridge","bridge_vlan_aware":1,"cidr":"192.168.1.10/24","gateway":"192.168.1.1","bridge_ports":"eno1","active":1},
			{"iface":"eno1.20","type":"vlan","cidr":"10.20.0.5/24"}
		]}`,
	})
	c := newTestClient(t, srv)

	ifaces, err := c.NodeNetwork(context.Background(), "pve1")
	require.NoError(t, err)
	require.Len(t, ifaces, 2)

	assert.Equal(t, "vmbr0", ifaces[0].Iface)
	assert.Equal(t, FlexInt(1), ifaces[0].BridgeVLANAware)
	assert.Equal(t, "192.168.1.1", ifaces[0].Gateway)
	assert.Equal(t, "eno1", ifaces[0].BridgePorts)
	assert.Equal(t, "eno1.20", ifaces[1].Iface)
	assert.Equal(t, FlexInt(0), ifaces[1].BridgeVLANAware)
}

func TestClient_Guests(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/api2/json/nodes/pve1/qemu": `{"data":[{"vmid":100,"name":"web1","status":"running","cpus":2,"maxmem":2147483648}]}`,
		"/api2/json/nodes/pve1/lxc":  `{"data":[{"vmid":"200","name":"dns","type":"lxc","status":"stopped","maxcpu":1}]}`,
	})
	c := newTestClient(t, srv)

	guests, err := c.Guests(context.Background(), "pve1")
	require.NoError(t, err)
	require.Len(t, guests, 2)

	assert.Equal(t, FlexInt(100), guests[0].VMID)
	assert.Equal(t, KindQemu, guests[0].Type)
	assert.Equal(t, 2, guests[0].CPU())

	assert.Equal(t, FlexInt(200), guests[1].VMID)
	assert.Equal(t, KindLXC, guests[1].Type)
	assert.Equal(t, 1, guests[1].CPU())
}

func TestClient_Guests_PartialFailure(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/api2/json/nodes/pve1/qemu": `{"data":[]}`,
	})
	c := newTestClient(t, srv)

	_, err := c.Guests(context.Background(), "pve1")
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Equal(t, "/nodes/pve1/lxc", reqErr.Path)
}

func TestClient_GuestConfig(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/api2/json/nodes/pve1/qemu/100/config": `{"data":{
			"name":"web1",
			"net1":"e1000=AA:BB:CC:DD:EE:01,bridge=vmbr1",
			"cores":2,
			"net0":"virtio=AA:BB:CC:DD:EE:00,bridge=vmbr0,tag=10",
			"ipconfig0":"ip=192.168.1.50/24,gw=192.168.1.1",
			"onboot":true
		}}`,
		"/api2/json/nodes/pve1/lxc/200/config": `{"data":{"hostname":"dns"}}`,
	})
	c := newTestClient(t, srv)

	t.Run("preserves key order", func(t *testing.T) {
		cfg, err := c.GuestConfig(context.Background(), "pve1", 100, KindQemu)
		require.NoError(t, err)

		assert.Equal(t, []string{"name", "net1", "cores", "net0", "ipconfig0", "onboot"}, cfg.Keys())

		net0, ok := cfg.String("net0")
		require.True(t, ok)
		assert.Equal(t, "virtio=AA:BB:CC:DD:EE:00,bridge=vmbr0,tag=10", net0)

		cores, ok := cfg.Get("cores")
		require.True(t, ok)
		assert.Equal(t, float64(2), cores)

		_, ok = cfg.String("cores")
		assert.False(t, ok, "numbers are not strings")
	})

	t.Run("uses container path", func(t *testing.T) {
		cfg, err := c.GuestConfig(context.Background(), "pve1", 200, KindLXC)
		require.NoError(t, err)
		assert.Equal(t, []string{"hostname"}, cfg.Keys())
	})

	t.Run("missing guest", func(t *testing.T) {
		_, err := c.GuestConfig(context.Background(), "pve1", 999, KindQemu)
		assert.Error(t, err)
	})
}

func TestClient_ClusterAndSDN(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/api2/json/cluster/status": `{"data":[
			{"type":"node","name":"pve1","id":"node/pve1","online":1,"ip":"192.168.1.10"},
			{"type":"cluster","name":"homelab","id":"cluster"}
		]}`,
		"/api2/json/cluster/sdn/vnets": `{"data":[{"vnet":"vnet1","zone":"zone1","tag":"100"},{"vnet":"vnet2","zone":"zone1"}]}`,
		"/api2/json/cluster/sdn/zones": `{"data":[{"zone":"zone1","type":"vlan"}]}`,
	})
	c := newTestClient(t, srv)
	ctx := context.Background()

	status, err := c.ClusterStatus(ctx)
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.Equal(t, "cluster", status[1].Type)
	assert.Equal(t, "homelab", status[1].Name)

	vnets, err := c.SDNVnets(ctx)
	require.NoError(t, err)
	require.Len(t, vnets, 2)
	assert.Equal(t, FlexInt(100), vnets[0].Tag)
	assert.Equal(t, FlexInt(0), vnets[1].Tag)

	zones, err := c.SDNZones(ctx)
	require.NoError(t, err)
	assert.Equal(t, []SDNZone{{Zone: "zone1", Type: "vlan"}}, zones)
}

func TestClient_EmptyAndMalformed(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/api2/json/cluster/status":    `{"data":null}`,
		"/api2/json/cluster/sdn/vnets": `{"data":{}}`,
		"/api2/json/cluster/sdn/zones": `not json`,
	})
	c := newTestClient(t, srv)
	ctx := context.Background()

	status, err := c.ClusterStatus(ctx)
	require.NoError(t, err)
	assert.Empty(t, status)

	vnets, err := c.SDNVnets(ctx)
	require.NoError(t, err)
	assert.Empty(t, vnets)

	_, err = c.SDNZones(ctx)
	assert.Error(t, err)
}

func TestClient_Unauthorized(t *testing.T) {
	srv := newTestServer(t, nil)

	c, err := New(Config{Host: srv.URL, TokenID: "root@pam!graph", TokenSecret: "wrong"})
	require.NoError(t, err)

	_, err = c.Nodes(context.Background())
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
	assert.Contains(t, err.Error(), "GET /cluster/resources")
}

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    FlexInt
		wantErr bool
	}{
		{in: `100`, want: 100},
		{in: `"100"`, want: 100},
		{in: `1.0`, want: 1},
		{in: `true`, want: 1},
		{in: `false`, want: 0},
		{in: `null`, want: 0},
		{in: `""`, want: 0},
		{in: `"abc"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got FlexInt
			err := got.UnmarshalJSON([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
