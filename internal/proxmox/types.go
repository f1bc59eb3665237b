package proxmox

import (
	"fmt"
	"strconv"
	"strings"
)

// Guest kinds as used in API paths.
const (
	KindQemu = "qemu"
	KindLXC  = "lxc"
)

// NodeResource is one entry of /cluster/resources?type=node.
type NodeResource struct {
	Node   string `json:"node"`
	Status string `json:"status"`
	MaxCPU int    `json:"maxcpu"`
	MaxMem int64  `json:"maxmem"`
	Uptime int64  `json:"uptime"`
}

// NetworkInterface is one entry of /nodes/{node}/network.
type NetworkInterface struct {
	Iface           string  `json:"iface"`
	Type            string  `json:"type"`
	BridgeVLANAware FlexInt `json:"bridge_vlan_aware"`
	BridgePorts     string  `json:"bridge_ports,omitempty"`
	CIDR            string  `json:"cidr,omitempty"`
	Gateway         string  `json:"gateway,omitempty"`
	Address         string  `json:"address,omitempty"`
	Active          FlexInt `json:"active"`
}

// Guest is one entry of /nodes/{node}/qemu or /nodes/{node}/lxc.
type Guest struct {
	VMID   FlexInt `json:"vmid"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Status string  `json:"status"`
	MaxCPU int     `json:"maxcpu"`
	CPUs   int     `json:"cpus"`
	MaxMem int64   `json:"maxmem"`
}

// CPU returns maxcpu when reported, cpus otherwise.
func (g Guest) CPU() int {
	if g.MaxCPU != 0 {
		return g.MaxCPU
	}
	return g.CPUs
}

// ClusterStatusEntry is one entry of /cluster/status. The entry of type
// "cluster" carries the cluster name; the others describe member nodes.
type ClusterStatusEntry struct {
	Type   string  `json:"type"`
	Name   string  `json:"name"`
	ID     string  `json:"id"`
	IP     string  `json:"ip,omitempty"`
	Online FlexInt `json:"online"`
}

// SDNVnet is one entry of /cluster/sdn/vnets.
type SDNVnet struct {
	Vnet  string  `json:"vnet"`
	Zone  string  `json:"zone"`
	Tag   FlexInt `json:"tag"`
	Alias string  `json:"alias,omitempty"`
}

// SDNZone is one entry of /cluster/sdn/zones.
type SDNZone struct {
	Zone string `json:"zone"`
	Type string `json:"type"`
}

// ConfigEntry is one key of a guest configuration.
// Value holds the decoded JSON value: string, float64, bool, nil, or a
// composite for unusual keys.
type ConfigEntry struct {
	Key   string
	Value any
}

// GuestConfig is a guest configuration in the key order the API returned it.
type GuestConfig []ConfigEntry

// Get returns the value stored under key.
func (c GuestConfig) Get(key string) (any, bool) {
	for _, e := range c {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// String returns the value under key if it is a string.
func (c GuestConfig) String(key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Keys returns the configuration keys in order.
func (c GuestConfig) Keys() []string {
	keys := make([]string, 0, len(c))
	for _, e := range c {
		keys = append(keys, e.Key)
	}
	return keys
}

// FlexInt decodes integers that the API reports as numbers, numeric strings
// or booleans depending on the endpoint and version.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (i *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	switch s {
	case "", "null", "false":
		*i = 0
		return nil
	case "true":
		*i = 1
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("cannot decode %s as integer", b)
	}
	*i = FlexInt(f)
	return nil
}
