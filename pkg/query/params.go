package query

import (
	"fmt"
	"strconv"
	"strings"
)

// SortOrder is the ordering of search results.
type SortOrder string

// Sort orders accepted by the search endpoints.
const (
	SortScore         SortOrder = "score"
	SortDurationDesc  SortOrder = "duration_desc"
	SortDurationAsc   SortOrder = "duration_asc"
	SortCreatedDesc   SortOrder = "created_desc"
	SortCreatedAsc    SortOrder = "created_asc"
	SortDownloadsDesc SortOrder = "downloads_desc"
	SortDownloadsAsc  SortOrder = "downloads_asc"
	SortRatingDesc    SortOrder = "rating_desc"
	SortRatingAsc     SortOrder = "rating_asc"
)

// File is a request parameter naming a local file to upload. Requests
// carrying a File are sent as multipart/form-data.
type File string

// Set is a set of strings that remembers insertion order.
type Set struct {
	values []string
	seen   map[string]struct{}
}

// Add inserts values not already present.
func (s *Set) Add(values ...string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	for _, v := range values {
		if _, ok := s.seen[v]; ok {
			continue
		}
		s.seen[v] = struct{}{}
		s.values = append(s.values, v)
	}
}

// Values returns the members in insertion order.
func (s *Set) Values() []string {
	return append([]string(nil), s.values...)
}

// Len returns the number of members.
func (s *Set) Len() int { return len(s.values) }

// Join returns the members joined with sep.
func (s *Set) Join(sep string) string {
	return strings.Join(s.values, sep)
}

// FormatValue renders a request parameter value as sent on the wire.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case File:
		return string(x)
	case SortOrder:
		return string(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
