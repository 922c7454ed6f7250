package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/buildbuildio/supergraph/gqlerrors"
	"github.com/buildbuildio/supergraph/queryer"
	"github.com/buildbuildio/supergraph/requests"
	"github.com/buildbuildio/supergraph/subgraph"
	"github.com/samber/lo"
)

const (
	DefaultEndpoint      = "https://api.apollographql.com/graphql"
	DefaultClientName    = "supergraph"
	DefaultClientVersion = "dev"
)

var (
	ErrMissingAPIKey         = errors.New("no registry API key found, set one with --api-key or the APOLLO_KEY environment variable")
	ErrUnauthenticated       = errors.New("the registry rejected the API key")
	ErrGraphNotFound         = errors.New("graph not found in the registry")
	ErrUnexpectedVariantType = errors.New("the registry returned an unexpected variant type")
)

// SubgraphNotFoundError is returned when the variant exists but has no
// subgraph with the requested name
type SubgraphNotFoundError struct {
	GraphRef  string
	Name      string
	Available []string
}

func (e *SubgraphNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("subgraph %q not found in %s, the variant has no subgraphs", e.Name, e.GraphRef)
	}
	return fmt.Sprintf("subgraph %q not found in %s, available subgraphs: %s", e.Name, e.GraphRef, strings.Join(e.Available, ", "))
}

// Factory builds registry clients. All clients share the endpoint, the API
// key and the HTTP client of the factory.
type Factory struct {
	endpoint      string
	apiKey        string
	clientName    string
	clientVersion string
	client        *http.Client
	logger        *slog.Logger
}

var _ subgraph.FetchFactory = &Factory{}

type Option func(*Factory)

func WithHTTPClient(client *http.Client) Option {
	return func(f *Factory) {
		f.client = client
	}
}

// WithClientIdentity sets the client name and version reported to the registry
func WithClientIdentity(name, version string) Option {
	return func(f *Factory) {
		f.clientName = name
		f.clientVersion = version
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// NewFactory returns a Factory for the registry at endpoint, DefaultEndpoint
// when empty
func NewFactory(endpoint, apiKey string, opts ...Option) *Factory {
	f := &Factory{
		endpoint:      lo.Ternary(endpoint == "", DefaultEndpoint, endpoint),
		apiKey:        apiKey,
		clientName:    DefaultClientName,
		clientVersion: DefaultClientVersion,
		client:        http.DefaultClient,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *Factory) Ready(ctx context.Context) error {
	if f.apiKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (f *Factory) Make(ctx context.Context) (subgraph.Fetcher, error) {
	if err := f.Ready(ctx); err != nil {
		return nil, err
	}

	q := queryer.NewHTTPQueryer(f.endpoint).
		WithHTTPClient(f.client).
		WithMiddlewares(queryer.HeaderMiddleware(map[string]string{
			"x-api-key":                    f.apiKey,
			"apollographql-client-name":    f.clientName,
			"apollographql-client-version": f.clientVersion,
		}))

	return &Client{queryer: q, logger: f.logger}, nil
}

// Client fetches published subgraphs
type Client struct {
	queryer queryer.Queryer
	logger  *slog.Logger
}

var _ subgraph.Fetcher = &Client{}

func (c *Client) Ready(ctx context.Context) error {
	return nil
}

func (c *Client) Fetch(ctx context.Context, req subgraph.FetchRequest) (*subgraph.RemoteSubgraph, error) {
	ref := req.GraphRef.String()

	c.logger.DebugContext(ctx, "fetching subgraph from the registry",
		slog.String("graph_ref", ref),
		slog.String("subgraph", req.SubgraphName),
	)

	data, err := c.queryer.Query(ctx, requests.NewRequest(fetchQuery).
		WithOperationName(fetchQueryName).
		WithVariables(map[string]interface{}{
			"graph_ref":     ref,
			"subgraph_name": req.SubgraphName,
		}))
	if err != nil {
		var list gqlerrors.ErrorList
		if errors.As(err, &list) && list.HasCode(gqlerrors.UnauthenticatedError) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		return nil, err
	}

	var res fetchResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}

	if res.Variant == nil {
		return nil, fmt.Errorf("%w: %s", ErrGraphNotFound, ref)
	}

	if res.Variant.Typename != graphVariantTypename {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedVariantType, res.Variant.Typename)
	}

	if res.Variant.Subgraph == nil {
		available := lo.Map(res.Variant.Subgraphs, func(s subgraphName, _ int) string {
			return s.Name
		})
		return nil, &SubgraphNotFoundError{GraphRef: ref, Name: req.SubgraphName, Available: available}
	}

	return &subgraph.RemoteSubgraph{
		Name:       req.SubgraphName,
		RoutingURL: lo.FromPtr(res.Variant.Subgraph.URL),
		Schema:     res.Variant.Subgraph.ActivePartialSchema.SDL,
	}, nil
}
