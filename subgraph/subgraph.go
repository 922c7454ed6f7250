package subgraph

import (
	"github.com/buildbuildio/supergraph/config"
	"github.com/buildbuildio/supergraph/federation"
)

// FullyResolvedSubgraph is a subgraph reduced to its SDL
type FullyResolvedSubgraph struct {
	name         string
	routingURL   *string
	schema       string
	schemaSource config.SchemaSource
	isFedTwo     bool
}

type Option func(*FullyResolvedSubgraph)

// WithRoutingURL sets the URL the router sends requests for this subgraph to
func WithRoutingURL(routingURL string) Option {
	return func(s *FullyResolvedSubgraph) {
		s.routingURL = &routingURL
	}
}

// New is the only way to build a FullyResolvedSubgraph. It decides once,
// from schema, whether the subgraph is a federation 2 subgraph.
func New(name, schema string, source config.SchemaSource, options ...Option) *FullyResolvedSubgraph {
	s := &FullyResolvedSubgraph{
		name:         name,
		schema:       schema,
		schemaSource: source,
	}

	for _, optionFunc := range options {
		optionFunc(s)
	}

	s.isFedTwo = federation.IsFedTwo(schema)

	return s
}

func (s *FullyResolvedSubgraph) Name() string {
	return s.name
}

func (s *FullyResolvedSubgraph) Schema() string {
	return s.schema
}

func (s *FullyResolvedSubgraph) SchemaSource() config.SchemaSource {
	return s.schemaSource
}

// RoutingURL returns a copy of the routing URL, nil when there is none
func (s *FullyResolvedSubgraph) RoutingURL() *string {
	if s.routingURL == nil {
		return nil
	}
	routingURL := *s.routingURL
	return &routingURL
}

func (s *FullyResolvedSubgraph) IsFedTwo() bool {
	return s.isFedTwo
}

// UpdateSchema replaces the schema text. IsFedTwo keeps the value computed
// by New; callers that swap in a schema with a different federation version
// must build a new subgraph instead.
func (s *FullyResolvedSubgraph) UpdateSchema(schema string) {
	s.schema = schema
}

// Config converts the subgraph into a config entry carrying the schema
// inline. The name, origin and federation version are dropped.
func (s *FullyResolvedSubgraph) Config() config.SubgraphConfig {
	return config.SubgraphConfig{
		RoutingURL: s.RoutingURL(),
		Schema:     config.SdlSource{Sdl: s.schema},
	}
}
