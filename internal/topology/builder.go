// Package topology turns the records of a Proxmox VE cluster into a graph of
// physical nodes, guests, bridges, VLANs and SDN vnets.
//
// A build is strictly sequential: nodes are visited in API order, guests of
// a node one at a time. Only the physical node list is required; every other
// call is best effort and its failure only removes the nodes and edges it
// would have produced.
package topology

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"evalgo.org/pvegraph/internal/logging"
	"evalgo.org/pvegraph/internal/proxmox"
	"evalgo.org/pvegraph/models"
)

// DefaultClusterName is used when the cluster status names no cluster.
const DefaultClusterName = "proxmox-cluster"

// Client is the subset of the Proxmox API a build reads.
type Client interface {
	Nodes(ctx context.Context) ([]proxmox.NodeResource, error)
	NodeNetwork(ctx context.Context, node string) ([]proxmox.NetworkInterface, error)
	Guests(ctx context.Context, node string) ([]proxmox.Guest, error)
	GuestConfig(ctx context.Context, node string, vmid int, kind string) (proxmox.GuestConfig, error)
	ClusterStatus(ctx context.Context) ([]proxmox.ClusterStatusEntry, error)
	SDNVnets(ctx context.Context) ([]proxmox.SDNVnet, error)
}

// Builder builds topologies from one cluster. It keeps no state between
// builds and may be shared by concurrent requests.
type Builder struct {
	client Client
	logger *slog.Logger
}

// NewBuilder returns a Builder reading from client. A nil logger falls back
// to the logger of the build context.
func NewBuilder(client Client, logger *slog.Logger) *Builder {
	return &Builder{client: client, logger: logger}
}

// build is the state of one Build call.
type build struct {
	client   Client
	log      *slog.Logger
	registry *Registry
	nodes    []models.Node
	edges    []models.Edge
}

// Build queries the cluster and assembles its topology. It fails only when
// the builder has no client or the physical node list cannot be fetched.
func (b *Builder) Build(ctx context.Context) (*models.Topology, error) {
	if b == nil || b.client == nil {
		return nil, ErrNotConfigured
	}

	log := b.logger
	if log == nil {
		log = logging.FromContext(ctx)
	}
	log = log.With("build_id", uuid.NewString())

	st := &build{
		client:   b.client,
		log:      log,
		registry: NewRegistry(),
		nodes:    []models.Node{},
		edges:    []models.Edge{},
	}

	clusterName := st.clusterName(ctx)

	pveNodes, err := b.client.Nodes(ctx)
	if err != nil {
		log.Error("failed to list physical nodes", "error", err)
		return nil, &FatalFetchError{Call: "list physical nodes", Err: err}
	}

	physical := 0
	for _, n := range pveNodes {
		if n.Node == "" {
			log.Warn("skipping node entry without a name")
			continue
		}
		physical++
		st.addPhysicalNode(n)
		st.nodeNetwork(ctx, n.Node)
		st.guests(ctx, n.Node)
	}

	st.nodes = append(st.nodes, st.registry.Flatten()...)

	sdn := st.overlay(ctx)

	topo := &models.Topology{
		Nodes:       st.nodes,
		Edges:       st.edges,
		ClusterName: clusterName,
		Summary: models.Summary{
			TotalNodes:    physical,
			TotalVMs:      countGuests(st.nodes),
			TotalNetworks: st.registry.Len(),
			TotalSDN:      sdn,
		},
	}

	log.Info("topology built",
		"cluster", clusterName,
		"nodes", topo.Summary.TotalNodes,
		"guests", topo.Summary.TotalVMs,
		"networks", topo.Summary.TotalNetworks,
		"sdn", topo.Summary.TotalSDN,
		"edges", len(topo.Edges),
	)
	return topo, nil
}

func (st *build) clusterName(ctx context.Context) string {
	status, ok := attempt(ctx, st.log, slog.LevelWarn, "cluster status", st.client.ClusterStatus)
	if !ok {
		return DefaultClusterName
	}
	for _, e := range status {
		if e.Type == "cluster" && e.Name != "" {
			return e.Name
		}
	}
	return DefaultClusterName
}

func (st *build) addPhysicalNode(n proxmox.NodeResource) {
	status := n.Status
	if status == "" {
		status = "unknown"
	}

	st.nodes = append(st.nodes, models.Node{
		ID:       physicalID(n.Node),
		Label:    n.Node,
		Type:     models.NodePhysical,
		Compute:  &models.Compute{Status: status, CPU: n.MaxCPU, Mem: n.MaxMem},
		HostInfo: &models.HostInfo{Uptime: n.Uptime},
	})
}

// nodeNetwork registers the bridges and VLAN sub-interfaces of a node.
// Bridges get an edge from the node; VLAN sub-interfaces only a registry entry.
func (st *build) nodeNetwork(ctx context.Context, node string) {
	ifaces, ok := attempt(ctx, st.log, slog.LevelError, "node network",
		func(ctx context.Context) ([]proxmox.NetworkInterface, error) {
			return st.client.NodeNetwork(ctx, node)
		}, "node", node)
	if !ok {
		return
	}

	for _, iface := range ifaces {
		switch {
		case iface.Type == "bridge":
			entry := st.registry.GetOrCreate(iface.Iface, models.NodeBridge, Seed{
				CIDR:      iface.CIDR,
				Gateway:   iface.Gateway,
				VLANAware: int(iface.BridgeVLANAware),
			})
			st.registry.AddMember(iface.Iface, node)

			st.edges = append(st.edges, models.Edge{
				Source:    physicalID(node),
				Target:    entry.ID(),
				Type:      models.EdgePhysicalConnection,
				Interface: iface.Iface,
				Uplink:    &models.Uplink{CIDR: iface.CIDR, Gateway: iface.Gateway},
			})

		case strings.Contains(iface.Iface, "."):
			vlanID := iface.Iface[strings.LastIndex(iface.Iface, ".")+1:]
			key := "vlan-" + vlanID
			st.registry.GetOrCreate(key, models.NodeVLAN, Seed{
				Label:  "VLAN " + vlanID,
				CIDR:   iface.CIDR,
				VLANID: vlanID,
			})
			st.registry.AddMember(key, node)
		}
	}
}

func (st *build) guests(ctx context.Context, node string) {
	guests, ok := attempt(ctx, st.log, slog.LevelError, "list guests",
		func(ctx context.Context) ([]proxmox.Guest, error) {
			return st.client.Guests(ctx, node)
		}, "node", node)
	if !ok {
		return
	}

	for _, g := range guests {
		vmid := int(g.VMID)
		if vmid <= 0 {
			st.log.Warn("skipping guest without vmid", "node", node, "name", g.Name)
			continue
		}

		id := guestID(node, vmid)
		st.addGuest(node, id, g)

		cfg, ok := attempt(ctx, st.log, slog.LevelWarn, "guest config",
			func(ctx context.Context) (proxmox.GuestConfig, error) {
				return st.client.GuestConfig(ctx, node, vmid, g.Type)
			}, "node", node, "vmid", vmid)
		if !ok {
			continue
		}
		st.guestNetwork(node, id, cfg)
	}
}

func (st *build) addGuest(node, id string, g proxmox.Guest) {
	kind := models.NodeContainer
	if g.Type == proxmox.KindQemu {
		kind = models.NodeVM
	}

	name := g.Name
	if name == "" {
		name = "VM-" + strconv.Itoa(int(g.VMID))
	}
	status := g.Status
	if status == "" {
		status = "unknown"
	}

	st.nodes = append(st.nodes, models.Node{
		ID:      id,
		Label:   name,
		Type:    kind,
		Compute: &models.Compute{Status: status, CPU: g.CPU(), Mem: g.MaxMem},
		Guest:   &models.Guest{VMID: int(g.VMID), Node: node},
	})
	st.edges = append(st.edges, models.Edge{
		Source: physicalID(node),
		Target: id,
		Type:   models.EdgeHosts,
		Label:  "hosts",
	})
}

// guestNetwork links the NICs of a guest to their bridges. A bridge the node
// never reported is registered as a placeholder owned by this node only.
func (st *build) guestNetwork(node, guestID string, cfg proxmox.GuestConfig) {
	ips := ExtractIPs(cfg)

	for _, e := range cfg {
		if !strings.HasPrefix(e.Key, "net") {
			continue
		}
		raw, ok := e.Value.(string)
		if !ok {
			continue
		}

		nic := ParseNetConfig(raw)
		bridge := nic.Bridge()
		if bridge == "" {
			continue
		}

		entry, ok := st.registry.Get(bridge)
		if !ok {
			st.log.Warn("bridge not found in node network config, creating placeholder",
				"bridge", bridge, "node", node, "guest", guestID)
			entry = st.registry.GetOrCreate(bridge, models.NodeBridge, Seed{})
			st.registry.AddMember(bridge, node)
		}

		edge := models.Edge{
			Source:    guestID,
			Target:    entry.ID(),
			Type:      models.EdgeNetworkConnection,
			Interface: e.Key,
			Attachment: &models.Attachment{
				MAC:   nic.MAC(),
				Model: nic.Model(),
			},
		}
		if tag := nic.Tag(); tag != "" {
			edge.Attachment.VLAN = tag
			edge.Label = "VLAN " + tag
		}
		if len(ips) > 0 {
			edge.Attachment.IPs = ips
		}
		st.edges = append(st.edges, edge)
	}
}

// overlay appends one node per SDN vnet and returns how many were added.
// Vnets are not linked to bridges or zones.
func (st *build) overlay(ctx context.Context) int {
	vnets, ok := attempt(ctx, st.log, slog.LevelWarn, "sdn vnets", st.client.SDNVnets)
	if !ok {
		return 0
	}

	added := 0
	for _, v := range vnets {
		if v.Vnet == "" {
			continue
		}
		added++
		st.nodes = append(st.nodes, models.Node{
			ID:      "sdn-" + v.Vnet,
			Label:   v.Vnet,
			Type:    models.NodeSDNVnet,
			Overlay: &models.Overlay{Zone: v.Zone, Tag: int(v.Tag)},
		})
	}
	return added
}

func countGuests(nodes []models.Node) int {
	n := 0
	for _, node := range nodes {
		if node.Type.IsGuest() {
			n++
		}
	}
	return n
}

func physicalID(node string) string {
	return "node-" + node
}

func guestID(node string, vmid int) string {
	return "vm-" + node + "-" + strconv.Itoa(vmid)
}
