package query

import (
	"fmt"
	"net/http"

	"github.com/me/freesound/pkg/mapping"
	"github.com/me/freesound/pkg/model"
	"github.com/me/freesound/pkg/response"
)

// Page size limits. The API rejects larger pages.
const (
	DefaultPageSize = 15
	MaxPageSize     = 150
)

// Paging is the base of GET queries over paginated lists. It adds the page
// and page_size parameters to those returned by the endpoint's params hook
// and remembers the last response so the caller can tell whether more pages
// exist.
type Paging[I any] struct {
	JSON[model.Page[I]]

	page     int
	pageSize int
	params   func() map[string]any
	last     *response.Response[model.Page[I]]
}

// NewPaging returns a Paging base for the endpoint at path. params, when not
// nil, supplies the endpoint's own request parameters.
func NewPaging[I any](path string, item mapping.Mapper[mapping.Object, I], params func() map[string]any) Paging[I] {
	return Paging[I]{
		JSON:     NewJSON[model.Page[I]](http.MethodGet, path, mapping.NewPageMapper(item)),
		page:     1,
		pageSize: DefaultPageSize,
		params:   params,
	}
}

// Page returns the page that will be requested.
func (p *Paging[I]) Page() int { return p.page }

// SetPage selects the page to request. Pages are numbered from 1.
func (p *Paging[I]) SetPage(page int) error {
	if page < 1 {
		return fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidArgument, page)
	}
	p.page = page
	return nil
}

// PageSize returns the number of results requested per page.
func (p *Paging[I]) PageSize() int { return p.pageSize }

// SetPageSize sets the number of results per page. Sizes above MaxPageSize
// are reduced to MaxPageSize.
func (p *Paging[I]) SetPageSize(size int) error {
	if size < 1 {
		return fmt.Errorf("%w: page size must be at least 1, got %d", ErrInvalidArgument, size)
	}
	p.pageSize = min(size, MaxPageSize)
	return nil
}

// QueryParameters implements Query. The paging keys overwrite any endpoint
// parameter of the same name.
func (p *Paging[I]) QueryParameters() map[string]any {
	out := map[string]any{}
	if p.params != nil {
		for k, v := range p.params() {
			out[k] = v
		}
	}
	out["page"] = p.page
	out["page_size"] = p.pageSize
	return out
}

// ProcessResponse implements Query and records the envelope.
func (p *Paging[I]) ProcessResponse(status int, statusText string, body mapping.Object) *response.Response[model.Page[I]] {
	p.last = p.JSON.ProcessResponse(status, statusText, body)
	return p.last
}

// LastResponse returns the envelope of the latest execution, or nil.
func (p *Paging[I]) LastResponse() *response.Response[model.Page[I]] { return p.last }

// HasNextPage reports whether the latest response advertised a following
// page. It is false before the query has been executed and after an error.
func (p *Paging[I]) HasNextPage() bool {
	return p.last != nil && !p.last.IsError() && p.last.Results().HasNextPage()
}

// HasPreviousPage reports whether the latest response advertised a preceding
// page. It is false before the query has been executed and after an error.
func (p *Paging[I]) HasPreviousPage() bool {
	return p.last != nil && !p.last.IsError() && p.last.Results().HasPreviousPage()
}

// SoundPaging is a Paging base over sounds that also lets the caller choose
// which sound fields the API returns.
type SoundPaging struct {
	Paging[model.Sound]

	fields Set
}

// NewSoundPaging returns a SoundPaging base for the endpoint at path.
func NewSoundPaging(path string, params func() map[string]any) SoundPaging {
	return SoundPaging{Paging: NewPaging[model.Sound](path, mapping.SoundMapper{}, params)}
}

// IncludeField asks for field to be present in every returned sound.
func (s *SoundPaging) IncludeField(field string) {
	s.fields.Add(field)
}

// IncludeFields is IncludeField for several fields.
func (s *SoundPaging) IncludeFields(fields ...string) {
	s.fields.Add(fields...)
}

// Fields returns the requested fields in the order they were first added.
func (s *SoundPaging) Fields() []string { return s.fields.Values() }

// QueryParameters implements Query. The fields parameter is sent only when at
// least one field was requested.
func (s *SoundPaging) QueryParameters() map[string]any {
	out := s.Paging.QueryParameters()
	if s.fields.Len() > 0 {
		out["fields"] = s.fields.Join(",")
	}
	return out
}
