package config

import (
	"fmt"
	"path/filepath"
)

// UnresolvedSubgraph is a configured subgraph whose schema has not been
// acquired yet. It is immutable.
type UnresolvedSubgraph struct {
	name   string
	config SubgraphConfig
}

func NewUnresolvedSubgraph(name string, config SubgraphConfig) UnresolvedSubgraph {
	return UnresolvedSubgraph{name: name, config: config}
}

func (u UnresolvedSubgraph) Name() string {
	return u.name
}

func (u UnresolvedSubgraph) Schema() SchemaSource {
	return u.config.Schema
}

// RoutingURL returns a copy of the configured routing URL, nil when undeclared
func (u UnresolvedSubgraph) RoutingURL() *string {
	if u.config.RoutingURL == nil {
		return nil
	}
	routingURL := *u.config.RoutingURL
	return &routingURL
}

// ResolveFilePath resolves path against the supergraph config root and
// returns the canonical location of the file. Absolute paths ignore root.
func (u UnresolvedSubgraph) ResolveFilePath(root, path string) (string, error) {
	joined := path
	if !filepath.IsAbs(path) {
		joined = filepath.Join(root, path)
	}

	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("unable to resolve %s: %w", joined, err)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("could not find schema file %s (resolved to %s): %w", path, joined, err)
	}

	return canonical, nil
}
