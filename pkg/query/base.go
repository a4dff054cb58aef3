package query

import (
	"io"
	"net/http"

	"github.com/me/freesound/pkg/mapping"
	"github.com/me/freesound/pkg/response"
)

// Base holds the parts shared by every query. Endpoint types embed one of
// JSON, Binary, Paging or SoundPaging and override RouteParameters and
// QueryParameters as needed.
type Base[S, R any] struct {
	method  string
	path    string
	mapper  mapping.Mapper[S, R]
	extract func(S) string
}

// Method implements Query.
func (b *Base[S, R]) Method() string { return b.method }

// PathTemplate implements Query.
func (b *Base[S, R]) PathTemplate() string { return b.path }

// RouteParameters implements Query. It returns no parameters.
func (b *Base[S, R]) RouteParameters() map[string]string { return map[string]string{} }

// QueryParameters implements Query. It returns no parameters.
func (b *Base[S, R]) QueryParameters() map[string]any { return map[string]any{} }

// ProcessResponse implements Query.
func (b *Base[S, R]) ProcessResponse(status int, statusText string, body S) *response.Response[R] {
	return Process(status, statusText, body, b.mapper, b.extract)
}

// JSON is the base of queries answered with a JSON object. Error details are
// read from the "detail" field.
type JSON[R any] struct {
	Base[mapping.Object, R]
}

// NewJSON returns a JSON base for the given endpoint.
func NewJSON[R any](method, path string, mapper mapping.Mapper[mapping.Object, R]) JSON[R] {
	return JSON[R]{Base[mapping.Object, R]{
		method:  method,
		path:    path,
		mapper:  mapper,
		extract: DetailMessage,
	}}
}

// Binary is the base of queries answered with a file. The response body is
// returned unread; see BinaryErrorMessage for error responses.
type Binary struct {
	Base[io.ReadCloser, io.ReadCloser]
}

// NewBinary returns a GET Binary base for the given endpoint.
func NewBinary(path string) Binary {
	return Binary{Base[io.ReadCloser, io.ReadCloser]{
		method:  http.MethodGet,
		path:    path,
		mapper:  mapping.Stream{},
		extract: func(body io.ReadCloser) string { return BinaryErrorMessage(body) },
	}}
}

// Bearer is embedded by queries sent on behalf of a user. It implements
// Credentialed.
type Bearer string

// BearerToken implements Credentialed.
func (b Bearer) BearerToken() string { return string(b) }
