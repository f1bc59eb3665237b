// Package proxmox is a small read-only client for the Proxmox VE REST API.
//
// It authenticates with an API token, unwraps the {"data": ...} envelope of
// every response and decodes the records the topology builder needs. Guest
// configurations are decoded in document order so that callers can iterate
// net* and ipconfig* keys the way the API lists them.
package proxmox

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"evalgo.org/pvegraph/internal/version"
)

// DefaultTimeout bounds every API call when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Config holds the connection settings of a Client.
type Config struct {
	// Host is the API endpoint, e.g. https://192.168.1.100:8006
	Host string

	// TokenID is the API token id, e.g. user@pam!tokenname
	TokenID string

	// TokenSecret is the API token secret
	TokenSecret string

	// VerifySSL enables TLS certificate verification
	VerifySSL bool

	// Timeout bounds each API call
	Timeout time.Duration
}

// Client talks to one Proxmox VE cluster. It is safe for concurrent use.
type Client struct {
	http *resty.Client
	host string
}

// New creates a Client. It does not contact the API.
func New(cfg Config) (*Client, error) {
	host := strings.TrimRight(cfg.Host, "/")
	if host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidConfig)
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("%w: host %q: %v", ErrInvalidConfig, cfg.Host, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: host %q must be an http(s) URL", ErrInvalidConfig, cfg.Host)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rc := resty.New().
		SetBaseURL(host+"/api2/json").
		SetHeader("Authorization", fmt.Sprintf("PVEAPIToken=%s=%s", cfg.TokenID, cfg.TokenSecret)).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", version.UserAgent()).
		SetTimeout(timeout).
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: !cfg.VerifySSL}) //nolint:gosec // self-signed PVE certs are the norm

	return &Client{http: rc, host: host}, nil
}

// Host returns the configured API host.
func (c *Client) Host() string {
	return c.host
}

// Nodes lists the physical nodes of the cluster.
func (c *Client) Nodes(ctx context.Context) ([]NodeResource, error) {
	var out []NodeResource
	if err := c.getInto(ctx, "/cluster/resources", map[string]string{"type": "node"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NodeNetwork lists the network interfaces configured on a node.
func (c *Client) NodeNetwork(ctx context.Context, node string) ([]NetworkInterface, error) {
	var out []NetworkInterface
	if err := c.getInto(ctx, "/nodes/"+url.PathEscape(node)+"/network", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Guests lists the virtual machines followed by the containers of a node.
// Entries lacking a type are tagged with the kind of the listing they came from.
func (c *Client) Guests(ctx context.Context, node string) ([]Guest, error) {
	var guests []Guest
	for _, kind := range []string{KindQemu, KindLXC} {
		var list []Guest
		if err := c.getInto(ctx, "/nodes/"+url.PathEscape(node)+"/"+kind, nil, &list); err != nil {
			return nil, err
		}
		for i := range list {
			if list[i].Type == "" {
				list[i].Type = kind
			}
		}
		guests = append(guests, list...)
	}
	return guests, nil
}

// GuestConfig fetches the configuration of one guest. kind is "qemu" or
// "lxc"; anything else is treated as "qemu".
func (c *Client) GuestConfig(ctx context.Context, node string, vmid int, kind string) (GuestConfig, error) {
	if kind != KindLXC {
		kind = KindQemu
	}

	path := "/nodes/" + url.PathEscape(node) + "/" + kind + "/" + strconv.Itoa(vmid) + "/config"
	data, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	if !data.IsObject() {
		return GuestConfig{}, nil
	}

	cfg := make(GuestConfig, 0, 32)
	data.ForEach(func(key, value gjson.Result) bool {
		cfg = append(cfg, ConfigEntry{Key: key.String(), Value: value.Value()})
		return true
	})
	return cfg, nil
}

// ClusterStatus returns the cluster status entries.
func (c *Client) ClusterStatus(ctx context.Context) ([]ClusterStatusEntry, error) {
	var out []ClusterStatusEntry
	if err := c.getInto(ctx, "/cluster/status", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SDNVnets lists the SDN vnets. Clusters without SDN answer with an error.
func (c *Client) SDNVnets(ctx context.Context) ([]SDNVnet, error) {
	var out []SDNVnet
	if err := c.getInto(ctx, "/cluster/sdn/vnets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SDNZones lists the SDN zones.
func (c *Client) SDNZones(ctx context.Context) ([]SDNZone, error) {
	var out []SDNZone
	if err := c.getInto(ctx, "/cluster/sdn/zones", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// get performs a GET and returns the data member of the response envelope.
func (c *Client) get(ctx context.Context, path string, query map[string]string) (gjson.Result, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("GET %s: %w", path, err)
	}
	if !resp.IsSuccess() {
		return gjson.Result{}, &RequestError{
			Method:     http.MethodGet,
			Path:       path,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
		}
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("GET %s: response is not valid JSON", path)
	}
	return gjson.GetBytes(body, "data"), nil
}

func (c *Client) getInto(ctx context.Context, path string, query map[string]string, out any) error {
	data, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if !data.Exists() || data.Type == gjson.Null {
		return nil
	}
	if !data.IsArray() {
		// Some endpoints answer {} instead of [] when empty.
		if data.IsObject() && len(data.Map()) == 0 {
			return nil
		}
		return fmt.Errorf("GET %s: expected a list, got %s", path, data.Type)
	}
	if err := json.Unmarshal([]byte(data.Raw), out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}
