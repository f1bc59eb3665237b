package topology

import "strings"

// NetConfig is a parsed inline NIC definition such as
// "virtio=AA:BB:CC:DD:EE:FF,bridge=vmbr0,tag=10".
type NetConfig map[string]string

// ParseNetConfig splits a comma-separated list of key=value tokens. Only the
// first "=" of a token separates key from value. A bare token made of six
// colon-separated groups is stored under "mac"; other bare tokens are dropped.
// It never fails; an empty string yields an empty map.
func ParseNetConfig(s string) NetConfig {
	cfg := make(NetConfig)
	if s == "" {
		return cfg
	}

	for _, part := range strings.Split(s, ",") {
		if key, value, ok := strings.Cut(part, "="); ok {
			cfg[key] = value
			continue
		}
		if isMACToken(part) {
			cfg["mac"] = part
		}
	}
	return cfg
}

func isMACToken(s string) bool {
	return strings.Contains(s, ":") && len(strings.Split(s, ":")) == 6
}

// Bridge returns the bridge the NIC is plugged into.
func (c NetConfig) Bridge() string {
	return c["bridge"]
}

// Tag returns the VLAN tag, empty when untagged.
func (c NetConfig) Tag() string {
	return c["tag"]
}

// Model returns the value of the virtio key when present, else the e1000 key.
func (c NetConfig) Model() string {
	if v, ok := c["virtio"]; ok {
		return v
	}
	return c["e1000"]
}

// MAC returns the explicit mac entry. When there is none it falls back to
// the model key, whose value is the MAC address in the "virtio=<mac>" form.
func (c NetConfig) MAC() string {
	if v, ok := c["mac"]; ok {
		return v
	}
	return c.Model()
}
