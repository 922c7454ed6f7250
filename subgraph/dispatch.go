package subgraph

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/buildbuildio/supergraph/common"
	"github.com/buildbuildio/supergraph/config"
	"github.com/buildbuildio/supergraph/graphref"
	"github.com/samber/lo"
)

// NewResolver picks and builds the resolver for the schema source of
// unresolved. File paths are interpreted relative to configRoot.
func NewResolver(
	ctx context.Context,
	introspection IntrospectionFactory,
	fetch FetchFactory,
	configRoot string,
	unresolved config.UnresolvedSubgraph,
) (Resolver, error) {
	name := unresolved.Name()

	switch source := unresolved.Schema().(type) {
	case config.FileSource:
		if err := validatePath(source.File); err != nil {
			return nil, &ResolveError{Kind: MalformedPath, SubgraphName: name, Path: source.File, Err: err}
		}
		return NewFileResolver(configRoot, source.File, unresolved), nil

	case config.IntrospectionSource:
		request := IntrospectRequest{
			Endpoint:     source.SubgraphURL,
			Headers:      lo.Assign(source.IntrospectionHeaders),
			RoutingURL:   unresolved.RoutingURL(),
			SubgraphName: name,
		}

		if err := introspection.Ready(ctx); err != nil {
			return nil, &ResolveError{Kind: ServiceReady, SubgraphName: name, Err: err}
		}

		introspector, err := introspection.Make(ctx, request)
		if err != nil {
			return nil, &ResolveError{Kind: IntrospectionFailed, SubgraphName: name, Err: err}
		}

		return &IntrospectResolver{request: request, source: source, inner: introspector}, nil

	case config.RegistrySource:
		ref, err := graphref.Parse(source.GraphRef)
		if err != nil {
			return nil, &ResolveError{Kind: InvalidGraphRef, SubgraphName: name, GraphRef: source.GraphRef, Err: err}
		}

		if err := fetch.Ready(ctx); err != nil {
			return nil, &ResolveError{Kind: ServiceReady, SubgraphName: name, GraphRef: source.GraphRef, Err: err}
		}

		fetcher, err := fetch.Make(ctx)
		if err != nil {
			return nil, &ResolveError{Kind: FetchRemoteSdl, SubgraphName: name, GraphRef: source.GraphRef, Err: err}
		}

		return &RemoteResolver{
			name:         name,
			graphRef:     ref,
			subgraphName: source.Subgraph,
			routingURL:   unresolved.RoutingURL(),
			source:       source,
			inner:        fetcher,
		}, nil

	case config.SdlSource:
		return NewSdlResolver(source.Sdl, unresolved), nil

	default:
		return nil, fmt.Errorf("subgraph %q: %w", name, config.ErrNoSchemaSource)
	}
}

// validatePath checks that path can name a file without touching the disk
func validatePath(path string) error {
	switch {
	case path == "":
		return errEmptyPath
	case !utf8.ValidString(path):
		return errInvalidUTF8Path
	case strings.ContainsRune(path, 0):
		return errNulInPath
	}
	return nil
}

// Result is the outcome of resolving one subgraph
type Result struct {
	Subgraph *FullyResolvedSubgraph
	Err      error
}

// ResolveAll resolves every subgraph concurrently. The results are in the
// order of unresolved and a failure never stops the other subgraphs.
func ResolveAll(
	ctx context.Context,
	introspection IntrospectionFactory,
	fetch FetchFactory,
	configRoot string,
	unresolved []config.UnresolvedSubgraph,
) []Result {
	type indexed struct {
		index  int
		result Result
	}

	results, _ := common.AsyncMapReduce(
		lo.Range(len(unresolved)),
		make([]Result, len(unresolved)),
		func(i int) (*indexed, error) {
			resolved, err := resolveOne(ctx, introspection, fetch, configRoot, unresolved[i])
			return &indexed{index: i, result: Result{Subgraph: resolved, Err: err}}, nil
		},
		func(acc []Result, value *indexed) []Result {
			acc[value.index] = value.result
			return acc
		},
	)

	return results
}

func resolveOne(
	ctx context.Context,
	introspection IntrospectionFactory,
	fetch FetchFactory,
	configRoot string,
	unresolved config.UnresolvedSubgraph,
) (*FullyResolvedSubgraph, error) {
	r, err := NewResolver(ctx, introspection, fetch, configRoot, unresolved)
	if err != nil {
		return nil, err
	}
	return Drive(ctx, r)
}
