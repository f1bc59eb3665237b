// Package client is a Go client for the pvegraph HTTP API.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"evalgo.org/pvegraph/internal/version"
	"evalgo.org/pvegraph/models"
)

// DefaultTimeout bounds each request when no timeout is given.
const DefaultTimeout = 60 * time.Second

// Client talks to one pvegraph server.
type Client struct {
	baseURL string
	http    *resty.Client
}

// Health is the answer of /api/health.
type Health struct {
	Status            string `json:"status"`
	ProxmoxConfigured bool   `json:"proxmox_configured"`
	Version           string `json:"version"`
}

// Error is a non-2xx answer of the server.
type Error struct {
	StatusCode int    `json:"code"`
	Message    string `json:"error"`
	Details    string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("pvegraph: %d %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("pvegraph: %d %s", e.StatusCode, e.Message)
}

// New returns a client for the server at baseURL, e.g. http://localhost:5000.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, errors.New("baseURL is required")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rc := resty.New().
		SetBaseURL(baseURL+"/api").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", version.UserAgent()).
		SetTimeout(timeout)

	return &Client{baseURL: baseURL, http: rc}, nil
}

// BaseURL returns the server URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Topology fetches a freshly built topology.
func (c *Client) Topology(ctx context.Context) (*models.Topology, error) {
	var topo models.Topology
	if err := c.get(ctx, "/topology", &topo); err != nil {
		return nil, err
	}
	return &topo, nil
}

// Health fetches the server health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.get(ctx, "/health", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	apiErr := &Error{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(out).
		SetError(apiErr).
		Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}

	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = resp.Status()
		}
		return apiErr
	}
	return nil
}
