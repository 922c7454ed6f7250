package subgraph

import (
	"context"

	"github.com/buildbuildio/supergraph/config"
)

// IntrospectResolver reads the schema of a running subgraph
type IntrospectResolver struct {
	request IntrospectRequest
	source  config.SchemaSource
	inner   Introspector
}

func (*IntrospectResolver) resolver() {}

func (r *IntrospectResolver) Ready(ctx context.Context) error {
	if err := r.inner.Ready(ctx); err != nil {
		return &ResolveError{Kind: ServiceReady, SubgraphName: r.request.SubgraphName, Err: err}
	}
	return nil
}

func (r *IntrospectResolver) Resolve(ctx context.Context) (*FullyResolvedSubgraph, error) {
	sdl, err := r.inner.Introspect(ctx)
	if err != nil {
		return nil, &ResolveError{Kind: IntrospectionFailed, SubgraphName: r.request.SubgraphName, Err: err}
	}

	var options []Option
	if r.request.RoutingURL != nil {
		options = append(options, WithRoutingURL(*r.request.RoutingURL))
	}

	return New(r.request.SubgraphName, sdl, r.source, options...), nil
}
