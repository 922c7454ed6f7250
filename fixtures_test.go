package supergraph

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/buildbuildio/supergraph/subgraph"
)

const (
	fedOneSDL = `type Query { me: User } type User { id: ID! }`
	fedTwoSDL = `extend schema @link(url: "https://specs.apollo.dev/federation/v2.3", import: ["@key"])

type Product @key(fields: "upc") { upc: String! }`
)

var errUnknownEndpoint = errors.New("unknown endpoint")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockIntrospectionFactory serves SDL per endpoint and records how many
// introspections run at the same time
type MockIntrospectionFactory struct {
	Sdls  map[string]string
	Block map[string]bool
	Delay time.Duration

	inflight    atomic.Int32
	MaxInflight atomic.Int32
}

func (mf *MockIntrospectionFactory) Ready(context.Context) error {
	return nil
}

func (mf *MockIntrospectionFactory) Make(_ context.Context, req subgraph.IntrospectRequest) (subgraph.Introspector, error) {
	return &mockIntrospector{factory: mf, endpoint: req.Endpoint}, nil
}

type mockIntrospector struct {
	factory  *MockIntrospectionFactory
	endpoint string
}

func (mi *mockIntrospector) Ready(context.Context) error {
	return nil
}

func (mi *mockIntrospector) Introspect(ctx context.Context) (string, error) {
	n := mi.factory.inflight.Add(1)
	defer mi.factory.inflight.Add(-1)

	for {
		m := mi.factory.MaxInflight.Load()
		if n <= m || mi.factory.MaxInflight.CompareAndSwap(m, n) {
			break
		}
	}

	if mi.factory.Block[mi.endpoint] {
		<-ctx.Done()
		return "", ctx.Err()
	}

	if mi.factory.Delay > 0 {
		time.Sleep(mi.factory.Delay)
	}

	sdl, ok := mi.factory.Sdls[mi.endpoint]
	if !ok {
		return "", errUnknownEndpoint
	}
	return sdl, nil
}
