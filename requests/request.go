package requests

// Request is a single GraphQL operation sent over HTTP
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
	OperationName *string                `json:"operationName,omitempty"`
}

// NewRequest returns a request for query. When query holds a single named
// operation, pass its name with WithOperationName.
func NewRequest(query string) *Request {
	return &Request{Query: query}
}

func (r *Request) WithOperationName(name string) *Request {
	r.OperationName = &name
	return r
}

func (r *Request) WithVariables(variables map[string]interface{}) *Request {
	r.Variables = variables
	return r
}
