// Package api provides the HTTP API server for pvegraph.
// It uses the Echo framework to serve the topology, a read-only view of the
// underlying Proxmox records and a WebSocket that pushes fresh topologies.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "evalgo.org/pvegraph/docs" // Import generated docs
	"evalgo.org/pvegraph/internal/config"
	"evalgo.org/pvegraph/internal/proxmox"
	"evalgo.org/pvegraph/internal/topology"
	"evalgo.org/pvegraph/internal/validation"
)

// Cluster is the Proxmox API surface used by the server.
type Cluster interface {
	topology.Client
	SDNZones(ctx context.Context) ([]proxmox.SDNZone, error)
}

// Server represents the pvegraph API server.
type Server struct {
	echo      *echo.Echo
	config    *config.Config
	cluster   Cluster
	builder   *topology.Builder
	validator *validation.Validator
	wsHub     *Hub
	logger    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new API server instance. cluster may be nil, in which case
// every Proxmox backed route answers with a configuration error.
func New(cfg *config.Config, cluster Cluster, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()

	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Server.Debug
	e.HTTPErrorHandler = HTTPErrorHandler

	hub := NewHub(logger.With("component", "websocket"))

	server := &Server{
		echo:      e,
		config:    cfg,
		cluster:   cluster,
		validator: validation.New(),
		wsHub:     hub,
		logger:    logger,
	}
	if cluster != nil {
		server.builder = topology.NewBuilder(cluster, nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	server.cancel = cancel

	server.wg.Add(2)
	go func() {
		defer server.wg.Done()
		hub.Run()
	}()
	go func() {
		defer server.wg.Done()
		server.runTopologyPush(ctx)
	}()

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.RequestID())

	s.echo.Use(RequestLogger(s.logger))

	s.echo.Use(middleware.Recover())

	s.echo.Use(SecurityHeaders)

	if len(s.config.Security.AllowedOrigins) > 0 {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.config.Security.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	if s.config.Security.RateLimit > 0 {
		s.echo.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
			rate.Limit(s.config.Security.RateLimit),
		)))
	}

	s.echo.Use(ValidateAcceptHeader)
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)

	s.echo.GET("/docs/*", echoSwagger.WrapHandler)

	api := s.echo.Group("/api")
	api.GET("/health", s.healthCheck)
	api.GET("/config", s.getConfig)

	api.GET("/topology", s.GetTopology, ValidateQueryParams)

	nodes := api.Group("/nodes")
	nodes.GET("", s.listNodes)
	nodes.GET("/:node/network", s.getNodeNetwork, ValidateNodeParam(s.validator))
	nodes.GET("/:node/vms", s.getNodeGuests, ValidateNodeParam(s.validator))

	cluster := api.Group("/cluster")
	cluster.GET("/status", s.getClusterStatus)
	cluster.GET("/sdn/vnets", s.listSDNVnets)
	cluster.GET("/sdn/zones", s.listSDNZones)

	ws := api.Group("/ws")
	ws.GET("/topology", s.HandleWebSocket)
	ws.GET("/stats", s.GetWebSocketStats)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := s.config.Server.Addr()

	s.logger.Info("starting API server",
		"address", "http://"+addr,
		"proxmox_host", s.config.Proxmox.Host,
		"proxmox_configured", s.cluster != nil,
		"debug", s.config.Server.Debug,
	)

	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout

	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server and its background workers.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	s.stopWorkers()

	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// stopWorkers stops the hub and the topology push and waits for both.
func (s *Server) stopWorkers() {
	s.cancel()
	s.wsHub.Stop()
	s.wg.Wait()
}

// ServeHTTP allows Server to implement http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
