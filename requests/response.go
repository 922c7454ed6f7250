package requests

import (
	"encoding/json"

	"github.com/buildbuildio/supergraph/gqlerrors"
)

// Response is the body of a GraphQL response. Data is kept raw so callers
// can decode it into their own types.
type Response struct {
	Errors gqlerrors.ErrorList `json:"errors,omitempty"`
	Data   json.RawMessage     `json:"data"`
}

// HasData reports whether data is present and not null
func (r *Response) HasData() bool {
	return len(r.Data) > 0 && string(r.Data) != "null"
}
