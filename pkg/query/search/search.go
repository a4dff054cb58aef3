// Package search holds the sound search endpoints.
package search

import (
	"fmt"

	"github.com/me/freesound/pkg/model"
	"github.com/me/freesound/pkg/query"
)

var _ query.PagedQuery[model.Sound] = (*Text)(nil)

// Filter restricts search results to sounds whose field matches value, using
// the API's field:value filter syntax.
type Filter struct {
	Field string
	Value string
}

func (f Filter) String() string {
	return fmt.Sprintf("%s:%s", f.Field, f.Value)
}

// Text is a full-text search over sounds.
type Text struct {
	query.SoundPaging

	searchString string
	sort         query.SortOrder
	groupByPack  *bool
	filters      query.Set
}

// NewText returns a text search for searchString. An empty search string
// matches every sound.
func NewText(searchString string) *Text {
	q := &Text{searchString: searchString}
	q.SoundPaging = query.NewSoundPaging("/search/text/", q.requestParameters)
	return q
}

// SearchString replaces the text being searched for.
func (q *Text) SearchString(s string) *Text {
	q.searchString = s
	return q
}

// SortOrder sets the ordering of the results.
func (q *Text) SortOrder(order query.SortOrder) *Text {
	q.sort = order
	return q
}

// GroupByPack collapses sounds of the same pack into a single result.
func (q *Text) GroupByPack(group bool) *Text {
	q.groupByPack = &group
	return q
}

// Filter adds a field:value filter. Adding the same filter twice has no
// further effect.
func (q *Text) Filter(f Filter) *Text {
	q.filters.Add(f.String())
	return q
}

func (q *Text) requestParameters() map[string]any {
	params := map[string]any{}
	if q.searchString != "" {
		params["query"] = q.searchString
	}
	if q.sort != "" {
		params["sort"] = string(q.sort)
	}
	if q.groupByPack != nil {
		params["group_by_pack"] = query.FormatValue(*q.groupByPack)
	}
	if q.filters.Len() > 0 {
		params["filter"] = q.filters.Join(" ")
	}
	return params
}
