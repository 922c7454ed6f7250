package introspection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/buildbuildio/supergraph/gqlerrors"
	"github.com/buildbuildio/supergraph/queryer"
	"github.com/buildbuildio/supergraph/requests"
	"github.com/buildbuildio/supergraph/subgraph"
)

var (
	ErrInvalidEndpoint = errors.New("introspection endpoint must be an absolute http or https URL")
	errEmptyServiceSDL = errors.New("_service.sdl is empty")
)

// Factory builds introspectors talking GraphQL over HTTP
type Factory struct {
	client *http.Client
	logger *slog.Logger
}

var _ subgraph.IntrospectionFactory = &Factory{}

type Option func(*Factory)

// WithHTTPClient sets the client used for every introspection request
func WithHTTPClient(client *http.Client) Option {
	return func(f *Factory) {
		f.client = client
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		client: http.DefaultClient,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Ready always succeeds, the factory holds no connections
func (f *Factory) Ready(ctx context.Context) error {
	return nil
}

func (f *Factory) Make(ctx context.Context, req subgraph.IntrospectRequest) (subgraph.Introspector, error) {
	u, err := url.Parse(req.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidEndpoint, req.Endpoint)
	}

	q := queryer.NewHTTPQueryer(u.String()).
		WithHTTPClient(f.client).
		WithMiddlewares(queryer.HeaderMiddleware(req.Headers))

	return &Introspector{
		queryer: q,
		logger:  f.logger.With(slog.String("subgraph", req.SubgraphName), slog.String("endpoint", u.String())),
	}, nil
}

// Introspector reads the SDL of one subgraph. Federated services answer
// _service { sdl } and their SDL is returned verbatim, other servers are
// introspected and their schema printed.
type Introspector struct {
	queryer queryer.Queryer
	logger  *slog.Logger
}

var _ subgraph.Introspector = &Introspector{}

func (i *Introspector) Ready(ctx context.Context) error {
	return nil
}

func (i *Introspector) Introspect(ctx context.Context) (string, error) {
	sdl, err := i.introspectService(ctx)
	if err == nil {
		return sdl, nil
	}

	if !canFallback(err) {
		return "", err
	}

	i.logger.DebugContext(ctx, "service introspection unavailable, falling back to schema introspection", slog.Any("error", err))

	return i.introspectSchema(ctx)
}

func (i *Introspector) introspectService(ctx context.Context) (string, error) {
	data, err := i.queryer.Query(ctx, requests.NewRequest(serviceQuery).WithOperationName(serviceQueryName))
	if err != nil {
		return "", err
	}

	var res serviceResult
	if err := json.Unmarshal(data, &res); err != nil {
		return "", err
	}

	if res.Service == nil || res.Service.SDL == "" {
		return "", errEmptyServiceSDL
	}

	return res.Service.SDL, nil
}

func (i *Introspector) introspectSchema(ctx context.Context) (string, error) {
	data, err := i.queryer.Query(ctx, requests.NewRequest(schemaQuery).WithOperationName(schemaQueryName))
	if err != nil {
		return "", err
	}

	var res schemaResult
	if err := json.Unmarshal(data, &res); err != nil {
		return "", err
	}

	return printSchema(res.Schema)
}

// canFallback reports whether the server answered but does not support
// federated introspection
func canFallback(err error) bool {
	var list gqlerrors.ErrorList
	var status *queryer.StatusError

	return errors.As(err, &list) ||
		errors.As(err, &status) ||
		errors.Is(err, queryer.ErrNoData) ||
		errors.Is(err, errEmptyServiceSDL)
}
