// Package pvegraph builds the network topology of a Proxmox VE cluster.
//
// # Overview
//
// pvegraph reads a cluster through the Proxmox VE REST API and assembles a
// graph for visualization front ends. Nodes are physical hosts, virtual
// machines, LXC containers, Linux bridges, VLANs and SDN vnets; edges link
// hosts to their bridges, hosts to their guests and guest NICs to bridges.
//
//	┌─────────────────┐
//	│  Front end      │
//	│  (HTTP / WS)    │
//	└────────┬────────┘
//	         │
//	┌────────▼────────┐       ┌─────────────────┐
//	│  API Server     │──────►│  Topology       │
//	│  (Echo REST)    │       │  Builder        │
//	└─────────────────┘       └────────┬────────┘
//	                                   │
//	                          ┌────────▼────────┐
//	                          │  Proxmox VE     │
//	                          │  /api2/json     │
//	                          └─────────────────┘
//
// A build is best effort: only the physical node list is required. A failed
// network, guest, config or SDN call removes what it would have produced and
// the rest of the graph is still returned.
//
// # Usage
//
// Start the API server:
//
//	pvegraph server --config configs/config.yaml
//
// Print the topology once:
//
//	pvegraph topology --format table
//
// # Configuration
//
// Configuration can be provided via:
//   - YAML file (config.yaml)
//   - Environment variables (PVEGRAPH_ prefix, or PROXMOX_HOST,
//     PROXMOX_TOKEN_ID, PROXMOX_TOKEN_SECRET, VERIFY_SSL, PORT, DEBUG)
//   - .env file
//
// Example configuration:
//
//	proxmox:
//	  host: https://192.168.1.100:8006
//	  token_id: root@pam!pvegraph
//	  token_secret: 00000000-0000-0000-0000-000000000000
//	  verify_ssl: false
//	topology:
//	  refresh_interval: 30s
//
// # API Endpoints
//
//   - GET /api/topology                - Full topology (?pretty=true to indent)
//   - GET /api/nodes                   - Physical nodes
//   - GET /api/nodes/:node/network     - Network interfaces of a node
//   - GET /api/nodes/:node/vms         - QEMU and LXC guests of a node
//   - GET /api/cluster/status          - Cluster status
//   - GET /api/cluster/sdn/vnets       - SDN vnets
//   - GET /api/cluster/sdn/zones       - SDN zones
//   - GET /api/health, /api/config     - Service state
//   - GET /api/ws/topology             - WebSocket topology push
//   - GET /docs/index.html             - Swagger UI
//
// # Development
//
// Run tests:
//
//	go test ./...
//
// Build the binary:
//
//	go build -o pvegraph ./cmd/pvegraph
package pvegraph
