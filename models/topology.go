package models

// NodeType identifies the kind of entity a graph node represents.
type NodeType string

const (
	NodePhysical  NodeType = "physical_node"
	NodeVM        NodeType = "vm"
	NodeContainer NodeType = "container"
	NodeBridge    NodeType = "bridge"
	NodeVLAN      NodeType = "vlan"
	NodeSDNVnet   NodeType = "sdn_vnet"
)

// IsGuest reports whether the node type is a virtual machine or a container.
func (t NodeType) IsGuest() bool {
	return t == NodeVM || t == NodeContainer
}

// EdgeType identifies the relation an edge represents.
type EdgeType string

const (
	EdgePhysicalConnection EdgeType = "physical_connection"
	EdgeHosts              EdgeType = "hosts"
	EdgeNetworkConnection  EdgeType = "network_connection"
)

// Topology is the graph document returned for one cluster.
//
// Example JSON representation:
//
//	{
//	  "nodes": [{"id": "node-pve1", "label": "pve1", "type": "physical_node", ...}],
//	  "edges": [{"source": "node-pve1", "target": "network-vmbr0", "type": "physical_connection", ...}],
//	  "cluster_name": "homelab",
//	  "summary": {"total_nodes": 1, "total_vms": 0, "total_networks": 1, "total_sdn": 0}
//	}
type Topology struct {
	Nodes       []Node  `json:"nodes"`
	Edges       []Edge  `json:"edges"`
	ClusterName string  `json:"cluster_name"`
	Summary     Summary `json:"summary"`
}

// Summary holds the counters shown next to the rendered graph.
type Summary struct {
	TotalNodes    int `json:"total_nodes"`
	TotalVMs      int `json:"total_vms"`
	TotalNetworks int `json:"total_networks"`
	TotalSDN      int `json:"total_sdn"`
}

// Node is a visualizable entity. The embedded attribute groups are set
// according to Type; nil groups are left out of the JSON document.
type Node struct {
	// ID is unique within one topology (node-, vm-, network-, vlan-, sdn- prefix)
	ID string `json:"id"`

	// Label is the display name
	Label string `json:"label"`

	Type NodeType `json:"type"`

	// physical_node, vm, container
	*Compute

	// physical_node
	*HostInfo

	// vm, container
	*Guest

	// bridge, vlan
	*Segment

	// bridge
	*Bridge

	// vlan
	*VLAN

	// sdn_vnet
	*Overlay
}

// Compute carries the state and capacity of a physical node or a guest.
type Compute struct {
	Status string `json:"status"`
	CPU    int    `json:"cpu"`
	Mem    int64  `json:"mem"`
}

// HostInfo holds physical-node-only attributes. Uptime is in seconds.
type HostInfo struct {
	Uptime int64 `json:"uptime"`
}

// Guest identifies a guest on its owning node.
type Guest struct {
	VMID int    `json:"vmid"`
	Node string `json:"node"`
}

// Segment is a layer-2 segment (bridge or VLAN) seen on one or more nodes.
type Segment struct {
	CIDR string `json:"cidr,omitempty"`

	// Nodes lists the physical nodes the segment was discovered on, once per
	// discovery, so a name may repeat.
	Nodes []string `json:"nodes"`
}

// Bridge holds bridge-only attributes.
type Bridge struct {
	VLANAware int    `json:"vlan_aware"`
	Gateway   string `json:"gateway,omitempty"`
}

// VLAN holds the VLAN id parsed from a sub-interface name.
type VLAN struct {
	VLANID string `json:"vlan_id"`
}

// Overlay holds SDN vnet attributes.
type Overlay struct {
	Zone string `json:"zone"`
	Tag  int    `json:"tag,omitempty"`
}

// Edge is a directed relation between two nodes of the same topology.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`

	Label     string `json:"label,omitempty"`
	Interface string `json:"interface,omitempty"`

	// physical_connection
	*Uplink

	// network_connection
	*Attachment
}

// Uplink is the addressing of a bridge on a physical node.
type Uplink struct {
	CIDR    string `json:"cidr"`
	Gateway string `json:"gateway"`
}

// Attachment describes a guest NIC plugged into a bridge.
type Attachment struct {
	MAC   string   `json:"mac"`
	Model string   `json:"model"`
	VLAN  string   `json:"vlan,omitempty"`
	IPs   []string `json:"ips,omitempty"`
}
