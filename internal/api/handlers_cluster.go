package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/pvegraph/internal/logging"
	"evalgo.org/pvegraph/internal/proxmox"
)

// passThrough runs one Proxmox call and renders its records unchanged.
func passThrough[T any](s *Server, c echo.Context, call string, fn func(context.Context, Cluster) ([]T, error)) error {
	if s.cluster == nil {
		return NotConfiguredError()
	}

	ctx := c.Request().Context()
	records, err := fn(ctx, s.cluster)
	if err != nil {
		logging.FromContext(ctx).Error("proxmox request failed", "call", call, "error", err)
		return fromProxmoxError(err)
	}
	if records == nil {
		records = []T{}
	}
	return c.JSON(http.StatusOK, records)
}

// listNodes returns the physical nodes
// @Summary List nodes
// @Description Physical nodes as reported by /cluster/resources
// @Tags proxmox
// @Produce json
// @Success 200 {array} proxmox.NodeResource
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /nodes [get]
func (s *Server) listNodes(c echo.Context) error {
	return passThrough(s, c, "nodes", func(ctx context.Context, pc Cluster) ([]proxmox.NodeResource, error) {
		return pc.Nodes(ctx)
	})
}

// getNodeNetwork returns the network interfaces of a node
// @Summary Node network
// @Tags proxmox
// @Produce json
// @Param node path string true "Node name"
// @Success 200 {array} proxmox.NetworkInterface
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /nodes/{node}/network [get]
func (s *Server) getNodeNetwork(c echo.Context) error {
	node := c.Param("node")
	return passThrough(s, c, "node network", func(ctx context.Context, pc Cluster) ([]proxmox.NetworkInterface, error) {
		return pc.NodeNetwork(ctx, node)
	})
}

// getNodeGuests returns the virtual machines and containers of a node
// @Summary Node guests
// @Description QEMU virtual machines followed by LXC containers
// @Tags proxmox
// @Produce json
// @Param node path string true "Node name"
// @Success 200 {array} proxmox.Guest
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /nodes/{node}/vms [get]
func (s *Server) getNodeGuests(c echo.Context) error {
	node := c.Param("node")
	return passThrough(s, c, "list guests", func(ctx context.Context, pc Cluster) ([]proxmox.Guest, error) {
		return pc.Guests(ctx, node)
	})
}

// getClusterStatus returns the cluster status entries
// @Summary Cluster status
// @Tags proxmox
// @Produce json
// @Success 200 {array} proxmox.ClusterStatusEntry
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /cluster/status [get]
func (s *Server) getClusterStatus(c echo.Context) error {
	return passThrough(s, c, "cluster status", func(ctx context.Context, pc Cluster) ([]proxmox.ClusterStatusEntry, error) {
		return pc.ClusterStatus(ctx)
	})
}

// listSDNVnets returns the SDN vnets
// @Summary SDN vnets
// @Tags proxmox
// @Produce json
// @Success 200 {array} proxmox.SDNVnet
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /cluster/sdn/vnets [get]
func (s *Server) listSDNVnets(c echo.Context) error {
	return passThrough(s, c, "sdn vnets", func(ctx context.Context, pc Cluster) ([]proxmox.SDNVnet, error) {
		return pc.SDNVnets(ctx)
	})
}

// listSDNZones returns the SDN zones
// @Summary SDN zones
// @Tags proxmox
// @Produce json
// @Success 200 {array} proxmox.SDNZone
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /cluster/sdn/zones [get]
func (s *Server) listSDNZones(c echo.Context) error {
	return passThrough(s, c, "sdn zones", func(ctx context.Context, pc Cluster) ([]proxmox.SDNZone, error) {
		return pc.SDNZones(ctx)
	})
}
