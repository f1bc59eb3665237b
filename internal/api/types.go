package api

import "evalgo.org/pvegraph/models"

// ErrorResponse documents the error payload for swagger. Handlers return
// *APIError, which renders the same keys.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status            string `json:"status"`
	ProxmoxConfigured bool   `json:"proxmox_configured"`
	Version           string `json:"version"`
}

// ConfigResponse is the public part of the running configuration. It never
// contains credentials.
type ConfigResponse struct {
	ProxmoxHost string `json:"proxmox_host"`
	VerifySSL   bool   `json:"verify_ssl"`
	Configured  bool   `json:"configured"`
}

// WebSocketStats reports the state of the topology push.
type WebSocketStats struct {
	ConnectedClients int    `json:"connected_clients"`
	RefreshInterval  string `json:"refresh_interval"`
	Status           string `json:"status"`
}

// TopologyResponse is an alias used in swagger annotations.
type TopologyResponse = models.Topology
