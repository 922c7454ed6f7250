package subgraph

import (
	"context"
	"sync"
	"sync/atomic"
)

type MockIntrospector struct {
	Sdl        string
	Error      error
	ReadyError error
	Calls      atomic.Int32
}

func (mi *MockIntrospector) Ready(context.Context) error {
	return mi.ReadyError
}

func (mi *MockIntrospector) Introspect(context.Context) (string, error) {
	mi.Calls.Add(1)
	return mi.Sdl, mi.Error
}

type MockIntrospectionFactory struct {
	Res        *MockIntrospector
	Error      error
	ReadyError error
	Requests   []IntrospectRequest

	mu sync.Mutex
}

func (mf *MockIntrospectionFactory) Ready(context.Context) error {
	return mf.ReadyError
}

func (mf *MockIntrospectionFactory) Make(_ context.Context, req IntrospectRequest) (Introspector, error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	mf.Requests = append(mf.Requests, req)
	if mf.Error != nil {
		return nil, mf.Error
	}
	return mf.Res, nil
}

type MockFetcher struct {
	Res        map[string]*RemoteSubgraph
	Error      error
	ReadyError error
	Requests   []FetchRequest

	mu sync.Mutex
}

func (mf *MockFetcher) Ready(context.Context) error {
	return mf.ReadyError
}

func (mf *MockFetcher) Fetch(_ context.Context, req FetchRequest) (*RemoteSubgraph, error) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	mf.Requests = append(mf.Requests, req)
	if mf.Error != nil {
		return nil, mf.Error
	}
	return mf.Res[req.SubgraphName], nil
}

type MockFetchFactory struct {
	Res        *MockFetcher
	Error      error
	ReadyError error
	Calls      atomic.Int32
}

func (mf *MockFetchFactory) Ready(context.Context) error {
	return mf.ReadyError
}

func (mf *MockFetchFactory) Make(context.Context) (Fetcher, error) {
	mf.Calls.Add(1)
	if mf.Error != nil {
		return nil, mf.Error
	}
	return mf.Res, nil
}

// panicking factories prove that a code path never reaches the network layer
type PanicIntrospectionFactory struct{}

func (PanicIntrospectionFactory) Ready(context.Context) error {
	panic("introspection factory must not be used")
}

func (PanicIntrospectionFactory) Make(context.Context, IntrospectRequest) (Introspector, error) {
	panic("introspection factory must not be used")
}

type PanicFetchFactory struct{}

func (PanicFetchFactory) Ready(context.Context) error {
	panic("fetch factory must not be used")
}

func (PanicFetchFactory) Make(context.Context) (Fetcher, error) {
	panic("fetch factory must not be used")
}

const (
	fedOneSDL = `type Query { a: String }`
	fedTwoSDL = `extend schema @link(url: "https://specs.apollo.dev/federation/v2.0") { query: Query } type Query { a: String }`
)
