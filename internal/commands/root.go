package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"evalgo.org/pvegraph/internal/config"
	"evalgo.org/pvegraph/internal/logging"
	"evalgo.org/pvegraph/internal/version"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pvegraph",
	Short: "Network topology of a Proxmox VE cluster",
	Long: `pvegraph reads a Proxmox VE cluster through its REST API and turns it
into a graph of physical nodes, virtual machines, containers, bridges,
VLANs and SDN vnets.

Serve the graph over HTTP and WebSocket for a visualization front end, or
print it once from the command line.`,
	Version: version.Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json, text)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(topologyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "%s" .Version}}
`)
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// flags win over file and environment
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Println(info.String())

		if cmd.Flag("verbose").Changed {
			fmt.Printf("\nDetails:\n")
			fmt.Printf("  Version:    %s\n", info.Version)
			fmt.Printf("  Git Commit: %s\n", info.GitCommit)
			fmt.Printf("  Built:      %s\n", info.BuildTime)
			fmt.Printf("  Go Version: %s\n", info.GoVersion)
			fmt.Printf("  Platform:   %s\n", info.Platform)
		}
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "verbose version output")
}
