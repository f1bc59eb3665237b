package topology

import (
	"regexp"
	"strings"

	"evalgo.org/pvegraph/internal/proxmox"
)

var ipConfigAddr = regexp.MustCompile(`ip=(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}/\d{1,2})`)

// ExtractIPs returns the static IPv4 address/prefix pairs found in the
// ipconfig* keys of a guest configuration, in configuration order.
// Keys without a literal address (ip=dhcp) contribute nothing.
func ExtractIPs(cfg proxmox.GuestConfig) []string {
	var ips []string
	for _, e := range cfg {
		if !strings.HasPrefix(e.Key, "ipconfig") {
			continue
		}
		s, ok := e.Value.(string)
		if !ok || !strings.Contains(s, "ip=") {
			continue
		}
		if m := ipConfigAddr.FindStringSubmatch(s); m != nil {
			ips = append(ips, m[1])
		}
	}
	return ips
}
