package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"evalgo.org/pvegraph/internal/logging"
)

// GetTopology builds and returns the cluster topology
// @Summary Get topology
// @Description Builds the graph of physical nodes, guests, bridges, VLANs and SDN vnets.
// @Description Partial failures of the Proxmox API yield a smaller graph, not an error.
// @Tags topology
// @Produce json
// @Param pretty query bool false "Indent the JSON document"
// @Success 200 {object} TopologyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse "Proxmox client not configured"
// @Failure 502 {object} ErrorResponse "Physical node list could not be fetched"
// @Router /topology [get]
func (s *Server) GetTopology(c echo.Context) error {
	ctx := c.Request().Context()

	topo, err := s.builder.Build(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("failed to build topology", "error", err)
		return fromProxmoxError(err)
	}

	if pretty, _ := strconv.ParseBool(c.QueryParam("pretty")); pretty {
		return c.JSONPretty(http.StatusOK, topo, "  ")
	}
	return c.JSON(http.StatusOK, topo)
}
