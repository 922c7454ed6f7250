package queryer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/buildbuildio/supergraph/requests"
)

// ErrNoData is returned when a response has neither errors nor data
var ErrNoData = errors.New("the response from the server was malformed: there was no data found in the response body")

// StatusError is returned for responses outside of the 2xx range
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("response was not successful with status code: %d", e.StatusCode)
}

// RequestMiddleware are functions can be passed to Queryer to affect its internal behavior
type RequestMiddleware func(*http.Request) error

// HeaderMiddleware sets every header of headers on outgoing requests
func HeaderMiddleware(headers map[string]string) RequestMiddleware {
	return func(r *http.Request) error {
		for k, v := range headers {
			r.Header.Set(k, v)
		}
		return nil
	}
}

// HTTPQueryer posts single GraphQL operations as JSON
type HTTPQueryer struct {
	url     string
	client  *http.Client
	mdwares []RequestMiddleware
}

var _ Queryer = &HTTPQueryer{}

// NewHTTPQueryer returns a HTTPQueryer for url using http.DefaultClient
func NewHTTPQueryer(url string) *HTTPQueryer {
	return &HTTPQueryer{
		url:    url,
		client: http.DefaultClient,
	}
}

// WithMiddlewares lets the user assign middlewares to the queryer
func (q *HTTPQueryer) WithMiddlewares(mwares ...RequestMiddleware) *HTTPQueryer {
	q.mdwares = append(q.mdwares, mwares...)
	return q
}

// WithHTTPClient lets the user configure the client to use when making network requests
func (q *HTTPQueryer) WithHTTPClient(client *http.Client) *HTTPQueryer {
	if client != nil {
		q.client = client
	}
	return q
}

func (q *HTTPQueryer) URL() string {
	return q.url
}

func (q *HTTPQueryer) Query(ctx context.Context, input *requests.Request) (json.RawMessage, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	body, err := q.send(ctx, payload)
	if err != nil {
		return nil, err
	}

	var resp requests.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unable to decode response from %s: %w", q.url, err)
	}

	if len(resp.Errors) != 0 {
		return nil, resp.Errors
	}

	if !resp.HasData() {
		return nil, ErrNoData
	}

	return resp.Data, nil
}

func (q *HTTPQueryer) send(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, q.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	// we could have any number of middlewares that we have to go through so
	for _, mdware := range q.mdwares {
		if err := mdware(req); err != nil {
			return nil, err
		}
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// GraphQL servers commonly answer validation failures with 400 and
		// a regular errors body
		var gqlResp requests.Response
		if json.Unmarshal(body, &gqlResp) == nil && len(gqlResp.Errors) != 0 {
			return nil, fmt.Errorf("%w: %w", &StatusError{StatusCode: resp.StatusCode, Body: body}, gqlResp.Errors)
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}
