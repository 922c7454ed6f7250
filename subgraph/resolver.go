package subgraph

import (
	"context"

	"github.com/buildbuildio/supergraph/graphref"
)

// Resolver turns one configured subgraph into a FullyResolvedSubgraph.
//
// Ready must return nil before Resolve is called; Drive does both in order.
// Resolvers are immutable once built and may be shared between goroutines,
// every Resolve call is independent and yields a fresh result. Cancelling ctx
// abandons the call.
//
// The implementations are FileResolver, IntrospectResolver, RemoteResolver
// and SdlResolver.
type Resolver interface {
	Ready(ctx context.Context) error
	Resolve(ctx context.Context) (*FullyResolvedSubgraph, error)

	resolver()
}

var (
	_ Resolver = &FileResolver{}
	_ Resolver = &IntrospectResolver{}
	_ Resolver = &RemoteResolver{}
	_ Resolver = &SdlResolver{}
)

// Drive waits for r to be ready and resolves it once
func Drive(ctx context.Context, r Resolver) (*FullyResolvedSubgraph, error) {
	if err := r.Ready(ctx); err != nil {
		return nil, err
	}
	return r.Resolve(ctx)
}

// IntrospectRequest describes the subgraph endpoint to introspect
type IntrospectRequest struct {
	Endpoint     string
	Headers      map[string]string
	RoutingURL   *string
	SubgraphName string
}

// Introspector reads the SDL of a single running subgraph
type Introspector interface {
	Ready(ctx context.Context) error
	Introspect(ctx context.Context) (string, error)
}

// IntrospectionFactory builds an Introspector per endpoint. It is shared by
// every subgraph of a resolution pass and must be safe for concurrent use.
type IntrospectionFactory interface {
	Ready(ctx context.Context) error
	Make(ctx context.Context, req IntrospectRequest) (Introspector, error)
}

// FetchRequest identifies a subgraph published in the registry
type FetchRequest struct {
	GraphRef     graphref.GraphRef
	SubgraphName string
}

// RemoteSubgraph is a subgraph as published in the registry
type RemoteSubgraph struct {
	Name       string
	RoutingURL string
	Schema     string
}

// Fetcher reads published subgraphs from the registry
type Fetcher interface {
	Ready(ctx context.Context) error
	Fetch(ctx context.Context, req FetchRequest) (*RemoteSubgraph, error)
}

// FetchFactory builds Fetchers. It is shared by every subgraph of a
// resolution pass and must be safe for concurrent use.
type FetchFactory interface {
	Ready(ctx context.Context) error
	Make(ctx context.Context) (Fetcher, error)
}
