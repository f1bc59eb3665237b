package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/pvegraph/internal/version"
)

// healthCheck handles health check requests.
// @Summary Health check
// @Description Reports whether the service runs and has a Proxmox client
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:            "healthy",
		ProxmoxConfigured: s.cluster != nil,
		Version:           version.Version,
	})
}

// getConfig returns the public configuration.
// @Summary Current configuration
// @Description Proxmox host and TLS setting in use; credentials are never returned
// @Tags system
// @Produce json
// @Success 200 {object} ConfigResponse
// @Router /config [get]
func (s *Server) getConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, ConfigResponse{
		ProxmoxHost: s.config.Proxmox.Host,
		VerifySSL:   s.config.Proxmox.VerifySSL,
		Configured:  s.cluster != nil,
	})
}
