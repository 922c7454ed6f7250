package supergraph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/buildbuildio/supergraph/config"
	"github.com/buildbuildio/supergraph/introspection"
	"github.com/buildbuildio/supergraph/registry"
	"github.com/buildbuildio/supergraph/subgraph"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Resolver resolves every subgraph of a supergraph config
type Resolver struct {
	introspection subgraph.IntrospectionFactory
	fetch         subgraph.FetchFactory
	logger        *slog.Logger
	concurrency   int
}

type Option func(*Resolver)

func WithIntrospectionFactory(f subgraph.IntrospectionFactory) Option {
	return func(r *Resolver) {
		r.introspection = f
	}
}

func WithFetchFactory(f subgraph.FetchFactory) Option {
	return func(r *Resolver) {
		r.fetch = f
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithConcurrency limits how many subgraphs are resolved at once, n <= 0
// means no limit
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		r.concurrency = n
	}
}

func NewResolver(options ...Option) *Resolver {
	r := new(Resolver)

	for _, optionFunc := range options {
		optionFunc(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	if r.introspection == nil {
		r.introspection = introspection.NewFactory(introspection.WithLogger(r.logger))
	}

	// without an API key every registry subgraph fails as not ready
	if r.fetch == nil {
		r.fetch = registry.NewFactory(registry.DefaultEndpoint, "", registry.WithLogger(r.logger))
	}

	return r
}

// ResolveAll resolves every subgraph of cfg, file paths relative to root.
// A failing subgraph never stops the others, results are ordered by
// subgraph name.
func (r *Resolver) ResolveAll(ctx context.Context, cfg *config.SupergraphConfig, root string) []subgraph.Result {
	unresolved := cfg.UnresolvedSubgraphs()

	var results []subgraph.Result
	if r.concurrency <= 0 {
		results = subgraph.ResolveAll(ctx, r.introspection, r.fetch, root, unresolved)
	} else {
		results = make([]subgraph.Result, len(unresolved))

		var g errgroup.Group
		g.SetLimit(r.concurrency)
		for i, u := range unresolved {
			i, u := i, u
			g.Go(func() error {
				resolved, err := r.resolveOne(ctx, root, u)
				results[i] = subgraph.Result{Subgraph: resolved, Err: err}
				return nil
			})
		}
		_ = g.Wait()
	}

	for i, res := range results {
		r.logResult(ctx, unresolved[i], res.Subgraph, res.Err)
	}

	return results
}

// Resolve resolves every subgraph of cfg and stops at the first failure,
// cancelling the subgraphs still in flight
func (r *Resolver) Resolve(ctx context.Context, cfg *config.SupergraphConfig, root string) (*ResolvedSupergraph, error) {
	unresolved := cfg.UnresolvedSubgraphs()
	resolved := make([]*subgraph.FullyResolvedSubgraph, len(unresolved))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lo.Ternary(r.concurrency > 0, r.concurrency, -1))

	for i, u := range unresolved {
		i, u := i, u
		g.Go(func() error {
			s, err := r.resolveOne(gctx, root, u)
			r.logResult(gctx, u, s, err)
			if err != nil {
				return err
			}
			resolved[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newResolvedSupergraph(cfg.FederationVersion, resolved)
}

func (r *Resolver) resolveOne(ctx context.Context, root string, u config.UnresolvedSubgraph) (*subgraph.FullyResolvedSubgraph, error) {
	resolver, err := subgraph.NewResolver(ctx, r.introspection, r.fetch, root, u)
	if err != nil {
		return nil, err
	}
	return subgraph.Drive(ctx, resolver)
}

func (r *Resolver) logResult(ctx context.Context, u config.UnresolvedSubgraph, s *subgraph.FullyResolvedSubgraph, err error) {
	attrs := []any{
		slog.String("subgraph", u.Name()),
		slog.String("source", SourceKind(u.Schema())),
	}

	if err != nil {
		r.logger.ErrorContext(ctx, "subgraph failed to resolve", append(attrs, slog.Any("error", err))...)
		return
	}

	r.logger.DebugContext(ctx, "subgraph resolved", append(attrs, slog.Bool("fed_two", s.IsFedTwo()))...)
}

// SourceKind names the kind of a schema source
func SourceKind(source config.SchemaSource) string {
	switch source.(type) {
	case config.FileSource:
		return "file"
	case config.IntrospectionSource:
		return "introspection"
	case config.RegistrySource:
		return "registry"
	case config.SdlSource:
		return "sdl"
	default:
		return "unknown"
	}
}

// FederationVersionMismatchError is returned when the config pins federation
// 1 while some subgraphs declare federation 2
type FederationVersionMismatchError struct {
	Declared  config.FederationVersion
	Subgraphs []string
}

func (e *FederationVersionMismatchError) Error() string {
	return fmt.Sprintf(
		"federation_version %s is set but subgraphs %s are federation 2 subgraphs",
		e.Declared, strings.Join(e.Subgraphs, ", "),
	)
}

// ResolvedSupergraph is a supergraph config whose subgraphs are all resolved
type ResolvedSupergraph struct {
	FederationVersion config.FederationVersion
	Subgraphs         []*subgraph.FullyResolvedSubgraph
}

// FromResults builds a ResolvedSupergraph out of ResolveAll results. Every
// failure is reported in the returned error.
func FromResults(declared *config.FederationVersion, results []subgraph.Result) (*ResolvedSupergraph, error) {
	errs := lo.FilterMap(results, func(res subgraph.Result, _ int) (error, bool) {
		return res.Err, res.Err != nil
	})
	if len(errs) != 0 {
		return nil, errors.Join(errs...)
	}

	return newResolvedSupergraph(declared, lo.Map(results, func(res subgraph.Result, _ int) *subgraph.FullyResolvedSubgraph {
		return res.Subgraph
	}))
}

func newResolvedSupergraph(declared *config.FederationVersion, subgraphs []*subgraph.FullyResolvedSubgraph) (*ResolvedSupergraph, error) {
	subgraphs = slices.Clone(subgraphs)
	slices.SortStableFunc(subgraphs, func(a, b *subgraph.FullyResolvedSubgraph) bool {
		return a.Name() < b.Name()
	})

	version, err := federationVersion(declared, subgraphs)
	if err != nil {
		return nil, err
	}

	return &ResolvedSupergraph{FederationVersion: version, Subgraphs: subgraphs}, nil
}

// federationVersion keeps the declared version when there is one, otherwise
// picks the latest federation 2 as soon as one subgraph is a federation 2
// subgraph
func federationVersion(declared *config.FederationVersion, subgraphs []*subgraph.FullyResolvedSubgraph) (config.FederationVersion, error) {
	fedTwo := lo.FilterMap(subgraphs, func(s *subgraph.FullyResolvedSubgraph, _ int) (string, bool) {
		return s.Name(), s.IsFedTwo()
	})

	if declared != nil {
		if !declared.IsFedTwo() && len(fedTwo) != 0 {
			return config.FederationVersion{}, &FederationVersionMismatchError{Declared: *declared, Subgraphs: fedTwo}
		}
		return *declared, nil
	}

	if len(fedTwo) != 0 {
		return config.LatestFedTwo, nil
	}
	return config.LatestFedOne, nil
}

// Config converts the supergraph back into a config where every subgraph
// carries its schema inline
func (s *ResolvedSupergraph) Config() *config.SupergraphConfig {
	version := s.FederationVersion
	subgraphs := lo.SliceToMap(s.Subgraphs, func(sg *subgraph.FullyResolvedSubgraph) (string, config.SubgraphConfig) {
		return sg.Name(), sg.Config()
	})

	return &config.SupergraphConfig{FederationVersion: &version, Subgraphs: subgraphs}
}
