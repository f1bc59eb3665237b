package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Print the effective configuration as YAML. The token id and secret are masked.`,
	RunE:  runShowConfig,
}

var initConfigCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	RunE:  runInitConfig,
}

func init() {
	initConfigCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config.yaml")

	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(initConfigCmd)
}

func runShowConfig(cmd *cobra.Command, args []string) error {
	data, err := yaml.Marshal(cfg.Masked())
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

const defaultConfig = `# pvegraph configuration

server:
  host: 0.0.0.0
  port: 5000
  read_timeout: 30s
  write_timeout: 60s
  shutdown_timeout: 10s
  debug: false

proxmox:
  host: https://localhost:8006
  # API token, e.g. root@pam!pvegraph; PROXMOX_TOKEN_ID works as well
  token_id: ""
  token_secret: ""
  verify_ssl: false
  timeout: 10s

topology:
  refresh_interval: 30s

logging:
  level: info
  format: json

security:
  rate_limit: 100
  allowed_origins:
    - "*"
`

func runInitConfig(cmd *cobra.Command, args []string) error {
	const path = "config.yaml"

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o600); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
