package queryer

import (
	"context"
	"encoding/json"

	"github.com/buildbuildio/supergraph/requests"
)

// Queryer sends GraphQL operations to a single endpoint and returns the raw
// data of successful responses
type Queryer interface {
	Query(context.Context, *requests.Request) (json.RawMessage, error)
	URL() string
}
