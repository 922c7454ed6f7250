package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/buildbuildio/supergraph/config"
	"github.com/buildbuildio/supergraph/graphref"
	"github.com/buildbuildio/supergraph/requests"
	"github.com/buildbuildio/supergraph/subgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reviewsSDL = `extend schema @link(url: "https://specs.apollo.dev/federation/v2.0", import: ["@key"])

type Review @key(fields: "id") {
	id: ID!
}
`

type recorded struct {
	header    http.Header
	variables map[string]interface{}
	operation string
}

func newRegistry(t *testing.T, status int, body string) (*httptest.Server, chan recorded) {
	seen := make(chan recorded, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req requests.Request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		rec := recorded{header: r.Header.Clone(), variables: req.Variables}
		if req.OperationName != nil {
			rec.operation = *req.OperationName
		}
		seen <- rec

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, seen
}

func fetch(t *testing.T, endpoint string, req subgraph.FetchRequest) (*subgraph.RemoteSubgraph, error) {
	f := NewFactory(endpoint, "service:graph:key", WithClientIdentity("supergraph", "1.2.3"))
	require.NoError(t, f.Ready(context.Background()))

	fetcher, err := f.Make(context.Background())
	require.NoError(t, err)
	require.NoError(t, fetcher.Ready(context.Background()))

	return fetcher.Fetch(context.Background(), req)
}

func mustParseRef(t *testing.T, s string) graphref.GraphRef {
	ref, err := graphref.Parse(s)
	require.NoError(t, err)
	return ref
}

func TestFetch(t *testing.T) {
	body, err := json.Marshal(map[string]interface{}{
		"data": map[string]interface{}{
			"variant": map[string]interface{}{
				"__typename": "GraphVariant",
				"subgraph": map[string]interface{}{
					"url":                 "https://reviews.example.com/graphql",
					"activePartialSchema": map[string]interface{}{"sdl": reviewsSDL},
				},
				"subgraphs": []interface{}{map[string]interface{}{"name": "reviews"}},
			},
		},
	})
	require.NoError(t, err)

	server, seen := newRegistry(t, http.StatusOK, string(body))

	res, err := fetch(t, server.URL, subgraph.FetchRequest{
		GraphRef:     mustParseRef(t, "my-graph@prod"),
		SubgraphName: "reviews",
	})
	require.NoError(t, err)

	assert.Equal(t, &subgraph.RemoteSubgraph{
		Name:       "reviews",
		RoutingURL: "https://reviews.example.com/graphql",
		Schema:     reviewsSDL,
	}, res)

	rec := <-seen
	assert.Equal(t, fetchQueryName, rec.operation)
	assert.Equal(t, map[string]interface{}{"graph_ref": "my-graph@prod", "subgraph_name": "reviews"}, rec.variables)
	assert.Equal(t, "service:graph:key", rec.header.Get("x-api-key"))
	assert.Equal(t, "supergraph", rec.header.Get("apollographql-client-name"))
	assert.Equal(t, "1.2.3", rec.header.Get("apollographql-client-version"))
}

func TestFetchWithoutRoutingURL(t *testing.T) {
	server, _ := newRegistry(t, http.StatusOK, `{"data": {"variant": {
		"__typename": "GraphVariant",
		"subgraph": {"url": null, "activePartialSchema": {"sdl": "type Query { a: Int }"}},
		"subgraphs": [{"name": "reviews"}]
	}}}`)

	res, err := fetch(t, server.URL, subgraph.FetchRequest{GraphRef: mustParseRef(t, "my-graph"), SubgraphName: "reviews"})
	require.NoError(t, err)

	assert.Empty(t, res.RoutingURL)
	assert.Equal(t, "type Query { a: Int }", res.Schema)
}

func TestFetchErrors(t *testing.T) {
	ref := mustParseRef(t, "my-graph@prod")

	t.Run("graph not found", func(t *testing.T) {
		server, _ := newRegistry(t, http.StatusOK, `{"data": {"variant": null}}`)

		_, err := fetch(t, server.URL, subgraph.FetchRequest{GraphRef: ref, SubgraphName: "reviews"})
		assert.ErrorIs(t, err, ErrGraphNotFound)
		assert.ErrorContains(t, err, "my-graph@prod")
	})

	t.Run("unexpected variant type", func(t *testing.T) {
		server, _ := newRegistry(t, http.StatusOK, `{"data": {"variant": {"__typename": "InvalidRefFormat"}}}`)

		_, err := fetch(t, server.URL, subgraph.FetchRequest{GraphRef: ref, SubgraphName: "reviews"})
		assert.ErrorIs(t, err, ErrUnexpectedVariantType)
	})

	t.Run("subgraph not found", func(t *testing.T) {
		server, _ := newRegistry(t, http.StatusOK, `{"data": {"variant": {
			"__typename": "GraphVariant",
			"subgraph": null,
			"subgraphs": [{"name": "products"}, {"name": "users"}]
		}}}`)

		_, err := fetch(t, server.URL, subgraph.FetchRequest{GraphRef: ref, SubgraphName: "reviews"})

		var notFound *SubgraphNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, []string{"products", "users"}, notFound.Available)
		assert.EqualError(t, err, `subgraph "reviews" not found in my-graph@prod, available subgraphs: products, users`)
	})

	t.Run("variant without subgraphs", func(t *testing.T) {
		server, _ := newRegistry(t, http.StatusOK, `{"data": {"variant": {"__typename": "GraphVariant", "subgraph": null, "subgraphs": []}}}`)

		_, err := fetch(t, server.URL, subgraph.FetchRequest{GraphRef: ref, SubgraphName: "reviews"})
		assert.EqualError(t, err, `subgraph "reviews" not found in my-graph@prod, the variant has no subgraphs`)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		server, _ := newRegistry(t, http.StatusOK, `{"errors": [{"message": "Invalid API key", "extensions": {"code": "UNAUTHENTICATED"}}]}`)

		_, err := fetch(t, server.URL, subgraph.FetchRequest{GraphRef: ref, SubgraphName: "reviews"})
		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.ErrorContains(t, err, "Invalid API key")
	})

	t.Run("server error", func(t *testing.T) {
		server, _ := newRegistry(t, http.StatusInternalServerError, `oops`)

		_, err := fetch(t, server.URL, subgraph.FetchRequest{GraphRef: ref, SubgraphName: "reviews"})
		assert.Error(t, err)
	})
}

func TestFactoryMissingAPIKey(t *testing.T) {
	f := NewFactory("", "")

	assert.Equal(t, DefaultEndpoint, f.endpoint)
	assert.ErrorIs(t, f.Ready(context.Background()), ErrMissingAPIKey)

	_, err := f.Make(context.Background())
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestFactoryIsUsableByResolver(t *testing.T) {
	server, _ := newRegistry(t, http.StatusOK, `{"data": {"variant": {
		"__typename": "GraphVariant",
		"subgraph": {"url": "https://reviews.example.com/graphql", "activePartialSchema": {"sdl": "type Query { a: Int }"}},
		"subgraphs": [{"name": "reviews-upstream"}]
	}}}`)

	unresolved := config.NewUnresolvedSubgraph("reviews", config.SubgraphConfig{
		Schema: config.RegistrySource{GraphRef: "my-graph@prod", Subgraph: "reviews-upstream"},
	})

	r, err := subgraph.NewResolver(context.Background(), nil, NewFactory(server.URL, "key"), t.TempDir(), unresolved)
	require.NoError(t, err)

	res, err := subgraph.Drive(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, "reviews", res.Name())
	assert.Equal(t, "https://reviews.example.com/graphql", *res.RoutingURL())
	assert.False(t, res.IsFedTwo())
}

func TestResolverReportsMissingAPIKey(t *testing.T) {
	unresolved := config.NewUnresolvedSubgraph("reviews", config.SubgraphConfig{
		Schema: config.RegistrySource{GraphRef: "my-graph@prod", Subgraph: "reviews"},
	})

	_, err := subgraph.NewResolver(context.Background(), nil, NewFactory("", ""), t.TempDir(), unresolved)
	assert.True(t, subgraph.IsKind(err, subgraph.ServiceReady))
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
