package subgraph

import (
	"context"

	"github.com/buildbuildio/supergraph/config"
	"github.com/buildbuildio/supergraph/graphref"
)

// RemoteResolver reads a subgraph published to a registry graph variant.
// The configured routing URL wins over the one stored in the registry.
type RemoteResolver struct {
	name         string
	graphRef     graphref.GraphRef
	subgraphName string
	routingURL   *string
	source       config.SchemaSource
	inner        Fetcher
}

func (*RemoteResolver) resolver() {}

func (r *RemoteResolver) Ready(ctx context.Context) error {
	if err := r.inner.Ready(ctx); err != nil {
		return &ResolveError{Kind: ServiceReady, SubgraphName: r.name, GraphRef: r.graphRef.String(), Err: err}
	}
	return nil
}

func (r *RemoteResolver) Resolve(ctx context.Context) (*FullyResolvedSubgraph, error) {
	remote, err := r.inner.Fetch(ctx, FetchRequest{
		GraphRef:     r.graphRef,
		SubgraphName: r.subgraphName,
	})
	if err != nil {
		return nil, &ResolveError{
			Kind:         FetchRemoteSdl,
			SubgraphName: r.name,
			GraphRef:     r.graphRef.String(),
			Err:          err,
		}
	}

	var options []Option
	switch {
	case r.routingURL != nil:
		options = append(options, WithRoutingURL(*r.routingURL))
	case remote.RoutingURL != "":
		options = append(options, WithRoutingURL(remote.RoutingURL))
	}

	return New(r.name, remote.Schema, r.source, options...), nil
}
