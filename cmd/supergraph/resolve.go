package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/buildbuildio/supergraph"
	"github.com/buildbuildio/supergraph/config"
	"github.com/buildbuildio/supergraph/introspection"
	"github.com/buildbuildio/supergraph/registry"
)

const (
	flagConfig      = "config"
	flagOutput      = "output"
	flagFailFast    = "fail-fast"
	flagRegistryURL = "registry-url"
	flagAPIKey      = "api-key"
	flagConcurrency = "concurrency"

	apiKeyEnv = "APOLLO_KEY"
)

var outputFormats = []string{"yaml", "json", "table"}

func newResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve every subgraph of a supergraph config into inline SDL",
		Long: `Resolve reads a supergraph config, resolves the schema of every subgraph
from its file, introspection endpoint, registry entry or inline SDL and prints
the config back with every schema inline.`,
		Example: `  supergraph resolve --config supergraph.yaml
  supergraph resolve --config supergraph.yaml --output table
  APOLLO_KEY=service:my-graph:key supergraph resolve --config supergraph.yaml --fail-fast`,
		Args: cobra.NoArgs,
		RunE: runResolve,
	}

	cmd.Flags().StringP(flagConfig, "c", "supergraph.yaml", "path to the supergraph config")
	cmd.Flags().StringP(flagOutput, "o", "yaml", "output format (yaml, json, table)")
	cmd.Flags().Bool(flagFailFast, false, "stop at the first subgraph that fails to resolve")
	cmd.Flags().String(flagRegistryURL, registry.DefaultEndpoint, "registry GraphQL endpoint")
	cmd.Flags().String(flagAPIKey, "", "registry API key, defaults to $"+apiKeyEnv)
	cmd.Flags().Int(flagConcurrency, 0, "maximum number of subgraphs resolved at once, 0 for no limit")

	return cmd
}

func runResolve(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString(flagOutput)
	if !lo.Contains(outputFormats, output) {
		return fmt.Errorf("invalid output format %q, expected one of %v", output, outputFormats)
	}

	path, _ := cmd.Flags().GetString(flagConfig)
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return err
	}

	apiKey, _ := cmd.Flags().GetString(flagAPIKey)
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnv)
	}
	registryURL, _ := cmd.Flags().GetString(flagRegistryURL)
	concurrency, _ := cmd.Flags().GetInt(flagConcurrency)
	failFast, _ := cmd.Flags().GetBool(flagFailFast)

	logger := slog.Default()
	r := supergraph.NewResolver(
		supergraph.WithLogger(logger),
		supergraph.WithConcurrency(concurrency),
		supergraph.WithIntrospectionFactory(introspection.NewFactory(introspection.WithLogger(logger))),
		supergraph.WithFetchFactory(registry.NewFactory(registryURL, apiKey, registry.WithLogger(logger))),
	)

	logger.InfoContext(cmd.Context(), "resolving supergraph",
		slog.String("config", path),
		slog.Int("subgraphs", len(cfg.Subgraphs)),
		slog.Bool("fail_fast", failFast),
	)

	var resolved *supergraph.ResolvedSupergraph
	if failFast {
		resolved, err = r.Resolve(cmd.Context(), cfg, root)
	} else {
		resolved, err = supergraph.FromResults(cfg.FederationVersion, r.ResolveAll(cmd.Context(), cfg, root))
	}
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), output, resolved)
}

func render(w io.Writer, output string, resolved *supergraph.ResolvedSupergraph) error {
	switch output {
	case "json":
		b, err := json.MarshalIndent(resolved.Config(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "table":
		renderTable(w, resolved)
		return nil
	default:
		b, err := resolved.Config().Marshal()
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
}

func renderTable(w io.Writer, resolved *supergraph.ResolvedSupergraph) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Subgraph", "Source", "Routing URL", "Federation"})
	for _, s := range resolved.Subgraphs {
		t.AppendRow(table.Row{
			s.Name(),
			supergraph.SourceKind(s.SchemaSource()),
			lo.FromPtr(s.RoutingURL()),
			lo.Ternary(s.IsFedTwo(), "2", "1"),
		})
	}
	t.AppendFooter(table.Row{"", "", "federation_version", resolved.FederationVersion.String()})

	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
}
