package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// SubgraphConfig is a single entry of the subgraphs section
type SubgraphConfig struct {
	RoutingURL *string
	Schema     SchemaSource
}

type subgraphConfigWire struct {
	RoutingURL *string          `yaml:"routing_url,omitempty" json:"routing_url,omitempty"`
	Schema     schemaSourceWire `yaml:"schema" json:"schema"`
}

func (c *SubgraphConfig) UnmarshalYAML(value *yaml.Node) error {
	var wire subgraphConfigWire
	if err := value.Decode(&wire); err != nil {
		return err
	}

	source, err := wire.Schema.toSchemaSource()
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}

	c.RoutingURL = wire.RoutingURL
	c.Schema = source
	return nil
}

func (c SubgraphConfig) wire() (subgraphConfigWire, error) {
	source, err := fromSchemaSource(c.Schema)
	if err != nil {
		return subgraphConfigWire{}, err
	}
	return subgraphConfigWire{RoutingURL: c.RoutingURL, Schema: source}, nil
}

func (c SubgraphConfig) MarshalYAML() (interface{}, error) {
	return c.wire()
}

func (c SubgraphConfig) MarshalJSON() ([]byte, error) {
	wire, err := c.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(wire)
}

// SupergraphConfig is the parsed supergraph.yaml
type SupergraphConfig struct {
	FederationVersion *FederationVersion        `yaml:"federation_version,omitempty" json:"federation_version,omitempty"`
	Subgraphs         map[string]SubgraphConfig `yaml:"subgraphs" json:"subgraphs"`
}

var ErrNoSubgraphs = errors.New("supergraph config contains no subgraphs")

// Parse decodes a supergraph config from YAML
func Parse(data []byte) (*SupergraphConfig, error) {
	var cfg SupergraphConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse supergraph config: %w", err)
	}

	if len(cfg.Subgraphs) == 0 {
		return nil, ErrNoSubgraphs
	}

	return &cfg, nil
}

// Load reads and decodes the supergraph config at path
func Load(path string) (*SupergraphConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read supergraph config: %w", err)
	}

	return Parse(data)
}

// Marshal encodes the config as YAML
func (c *SupergraphConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// UnresolvedSubgraphs returns every configured subgraph ordered by name
func (c *SupergraphConfig) UnresolvedSubgraphs() []UnresolvedSubgraph {
	names := lo.Keys(c.Subgraphs)
	sort.Strings(names)

	return lo.Map(names, func(name string, _ int) UnresolvedSubgraph {
		return NewUnresolvedSubgraph(name, c.Subgraphs[name])
	})
}
