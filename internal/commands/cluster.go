package commands

import (
	"log/slog"

	"evalgo.org/pvegraph/internal/config"
	"evalgo.org/pvegraph/internal/proxmox"
	"evalgo.org/pvegraph/internal/validation"
)

// newProxmoxClient returns a client for the configured cluster, or nil when
// the credentials are incomplete. Every problem is logged.
func newProxmoxClient(pc config.ProxmoxConfig, logger *slog.Logger) *proxmox.Client {
	result := validation.New().ValidateProxmox(pc)
	if !result.Valid {
		for _, e := range result.Errors {
			logger.Warn("invalid proxmox configuration", "field", e.Field, "error", e.Message)
		}
		return nil
	}

	client, err := proxmox.New(proxmox.Config{
		Host:        pc.Host,
		TokenID:     pc.TokenID,
		TokenSecret: pc.TokenSecret,
		VerifySSL:   pc.VerifySSL,
		Timeout:     pc.Timeout,
	})
	if err != nil {
		logger.Error("failed to create proxmox client", "error", err)
		return nil
	}

	logger.Info("proxmox client configured", "host", client.Host(), "verify_ssl", pc.VerifySSL)
	return client
}
