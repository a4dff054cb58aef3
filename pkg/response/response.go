// Package response holds the envelope returned for every completed request.
package response

// Response is the outcome of one HTTP round trip. It holds the status line
// plus either the mapped result or the error detail reported by the API,
// depending on IsError.
type Response[T any] struct {
	status       int
	statusText   string
	results      T
	errorDetails string
}

// New creates an envelope for the given status line.
func New[T any](status int, statusText string) *Response[T] {
	return &Response[T]{status: status, statusText: statusText}
}

// Status returns the HTTP status code.
func (r *Response[T]) Status() int { return r.status }

// StatusText returns the HTTP reason phrase.
func (r *Response[T]) StatusText() string { return r.statusText }

// IsError reports whether the status code denotes a client or server error.
func (r *Response[T]) IsError() bool {
	return r.status >= 400
}

// Results returns the mapped result. It is the zero value for error responses.
func (r *Response[T]) Results() T { return r.results }

// SetResults records the mapped result of a successful response.
func (r *Response[T]) SetResults(results T) {
	r.results = results
}

// ErrorDetails returns the API's explanation for an error response, or "".
func (r *Response[T]) ErrorDetails() string { return r.errorDetails }

// SetErrorDetails records the explanation extracted from an error response.
func (r *Response[T]) SetErrorDetails(details string) {
	r.errorDetails = details
}
