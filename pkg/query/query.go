// Package query describes Freesound API requests independently of how they
// are sent. A query knows its HTTP method, its path template, the route and
// request parameters to fill in, and how to turn the raw response into a
// response.Response.
//
// Queries are built, handed to a client and executed once (or once per page
// for paged queries). They are not safe for concurrent mutation.
package query

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/me/freesound/pkg/mapping"
	"github.com/me/freesound/pkg/model"
	"github.com/me/freesound/pkg/response"
)

// ErrInvalidArgument is wrapped by every error reporting a rejected parameter
// value.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrMissingRouteParameter is returned by ExpandPath when a placeholder of the
// path template has no value.
var ErrMissingRouteParameter = errors.New("missing route parameter")

// Query is a request whose raw response body has type S and whose mapped
// result has type R.
type Query[S, R any] interface {
	// Method returns the HTTP method, e.g. http.MethodGet.
	Method() string

	// PathTemplate returns the endpoint path relative to the API root, with
	// {name} placeholders for route parameters.
	PathTemplate() string

	// RouteParameters supplies a value for every placeholder of PathTemplate.
	RouteParameters() map[string]string

	// QueryParameters returns the request parameters, sent in the query
	// string for GET requests and in the body otherwise.
	QueryParameters() map[string]any

	// ProcessResponse builds the envelope for a completed round trip.
	ProcessResponse(status int, statusText string, body S) *response.Response[R]
}

// JSONQuery is a query whose response body is a JSON object.
type JSONQuery[R any] interface {
	Query[mapping.Object, R]
}

// BinaryQuery is a query whose successful response body is passed through as
// a stream. The caller must close the stream of a successful response.
type BinaryQuery interface {
	Query[io.ReadCloser, io.ReadCloser]
}

// Credentialed is implemented by queries that act on behalf of a user and
// must be sent with an OAuth2 bearer token.
type Credentialed interface {
	BearerToken() string
}

// PagedQuery is a JSON query over a paginated list.
type PagedQuery[I any] interface {
	JSONQuery[model.Page[I]]

	Page() int
	SetPage(page int) error
	HasNextPage() bool
	HasPreviousPage() bool
}

// Process builds the envelope for a completed round trip: error responses get
// their detail from extract, all others get their result from mapper. An
// error response without a detail gets the status text, so the detail is
// never empty.
func Process[S, R any](status int, statusText string, body S, mapper mapping.Mapper[S, R], extract func(S) string) *response.Response[R] {
	resp := response.New[R](status, statusText)
	if resp.IsError() {
		detail := extract(body)
		if detail == "" {
			detail = statusText
		}
		if detail == "" {
			detail = http.StatusText(status)
		}
		resp.SetErrorDetails(detail)
	} else {
		resp.SetResults(mapper.Map(body))
	}
	return resp
}

// ExpandPath substitutes the route parameters into a path template. Values
// are path-escaped.
func ExpandPath(template string, route map[string]string) (string, error) {
	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("unterminated placeholder in %q", template)
		}
		name := rest[open+1 : open+end]
		value, ok := route[name]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingRouteParameter, name)
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(value))
		rest = rest[open+end+1:]
	}
}
