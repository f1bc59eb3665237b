package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"evalgo.org/pvegraph/internal/logging"
	"evalgo.org/pvegraph/internal/topology"
	"evalgo.org/pvegraph/internal/validation"
	"evalgo.org/pvegraph/models"
	"evalgo.org/pvegraph/pkg/pvegraph/client"
)

var (
	topologyFormat  string
	topologyServer  string
	topologyTimeout time.Duration
)

var topologyCmd = &cobra.Command{
	Use:   "topology",
	Short: "Build the cluster topology once and print it",
	Long: `Build the topology of the configured Proxmox VE cluster and print it.

With --server the topology is fetched from a running pvegraph server
instead of querying Proxmox directly.

Examples:
  pvegraph topology
  pvegraph topology --format json
  pvegraph topology --server http://localhost:5000`,
	RunE: runTopology,
}

func init() {
	topologyCmd.Flags().StringVar(&topologyFormat, "format", "table", "output format (table, json)")
	topologyCmd.Flags().StringVar(&topologyServer, "server", "", "pvegraph server URL")
	topologyCmd.Flags().DurationVar(&topologyTimeout, "timeout", 2*time.Minute, "time allowed for the whole build")
}

func runTopology(cmd *cobra.Command, args []string) error {
	if topologyFormat != "table" && topologyFormat != "json" {
		return fmt.Errorf("unknown format %q (use 'table' or 'json')", topologyFormat)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), topologyTimeout)
	defer cancel()

	logger := slog.Default()
	ctx = logging.WithLogger(ctx, logger)

	topo, err := fetchTopology(ctx, logger)
	if err != nil {
		return err
	}

	if result := validation.New().ValidateTopology(topo); !result.Valid {
		for _, e := range result.Errors {
			logger.Warn("inconsistent topology", "field", e.Field, "error", e.Message)
		}
	}

	out := cmd.OutOrStdout()
	if topologyFormat == "json" {
		return printTopologyJSON(out, topo)
	}
	return printTopologyTable(out, topo)
}

func fetchTopology(ctx context.Context, logger *slog.Logger) (*models.Topology, error) {
	if topologyServer != "" {
		c, err := client.New(topologyServer, topologyTimeout)
		if err != nil {
			return nil, err
		}
		return c.Topology(ctx)
	}

	pve := newProxmoxClient(cfg.Proxmox, logger)
	if pve == nil {
		return nil, topology.ErrNotConfigured
	}
	return topology.NewBuilder(pve, nil).Build(ctx)
}

func printTopologyJSON(w io.Writer, topo *models.Topology) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(topo)
}

func printTopologyTable(w io.Writer, topo *models.Topology) error {
	fmt.Fprintf(w, "Cluster: %s\n\n", topo.ClusterName)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tLABEL\tDETAILS")
	for _, n := range topo.Nodes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Type, n.Label, nodeDetails(n))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tTARGET\tTYPE\tINTERFACE\tLABEL")
	for _, e := range topo.Edges {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Source, e.Target, e.Type, e.Interface, e.Label)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := topo.Summary
	fmt.Fprintf(w, "\nSummary: %d nodes, %d guests, %d networks, %d sdn vnets, %d edges\n",
		s.TotalNodes, s.TotalVMs, s.TotalNetworks, s.TotalSDN, len(topo.Edges))
	return nil
}

func nodeDetails(n models.Node) string {
	var parts []string
	if n.Compute != nil {
		parts = append(parts, "status="+n.Status)
	}
	if n.Guest != nil {
		parts = append(parts, fmt.Sprintf("vmid=%d", n.VMID), "node="+n.Node)
	}
	if n.Segment != nil {
		if n.CIDR != "" {
			parts = append(parts, "cidr="+n.CIDR)
		}
		members := append([]string(nil), n.Nodes...)
		sort.Strings(members)
		parts = append(parts, "nodes="+strings.Join(members, ","))
	}
	if n.Overlay != nil {
		parts = append(parts, "zone="+n.Zone)
		if n.Tag != 0 {
			parts = append(parts, fmt.Sprintf("tag=%d", n.Tag))
		}
	}
	return strings.Join(parts, " ")
}
