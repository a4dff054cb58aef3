package sound

import (
	"fmt"
	"net/http"

	"github.com/me/freesound/pkg/mapping"
	"github.com/me/freesound/pkg/query"
)

// Rating bounds accepted by the rate endpoint.
const (
	MinRating = 0
	MaxRating = 5
)

var (
	_ query.JSONQuery[string] = (*Bookmark)(nil)
	_ query.JSONQuery[string] = (*Rate)(nil)
	_ query.JSONQuery[string] = (*Comment)(nil)
	_ query.Credentialed      = (*Rate)(nil)
)

// Bookmark adds a sound to the user's bookmarks.
type Bookmark struct {
	query.JSON[string]
	query.Bearer

	id       int
	name     string
	category string
}

// NewBookmark returns a bookmark query for the sound with the given id.
func NewBookmark(id int, token string) *Bookmark {
	return &Bookmark{
		JSON:   query.NewJSON[string](http.MethodPost, "/sounds/{sound_id}/bookmark/", mapping.DetailString{}),
		Bearer: query.Bearer(token),
		id:     id,
	}
}

// Name sets the bookmark's name. The sound's name is used when unset.
func (q *Bookmark) Name(name string) *Bookmark { q.name = name; return q }

// Category files the bookmark under the named category, creating it when
// needed.
func (q *Bookmark) Category(category string) *Bookmark { q.category = category; return q }

// RouteParameters implements query.Query.
func (q *Bookmark) RouteParameters() map[string]string { return soundRoute(q.id) }

// QueryParameters implements query.Query.
func (q *Bookmark) QueryParameters() map[string]any {
	params := map[string]any{}
	if q.name != "" {
		params["name"] = q.name
	}
	if q.category != "" {
		params["category"] = q.category
	}
	return params
}

// Rate rates a sound.
type Rate struct {
	query.JSON[string]
	query.Bearer

	id     int
	rating int
}

// NewRate returns a query rating the sound with the given id. The rating must
// be between MinRating and MaxRating inclusive.
func NewRate(id, rating int, token string) (*Rate, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d, got %d",
			query.ErrInvalidArgument, MinRating, MaxRating, rating)
	}
	return &Rate{
		JSON:   query.NewJSON[string](http.MethodPost, "/sounds/{sound_id}/rate/", mapping.DetailString{}),
		Bearer: query.Bearer(token),
		id:     id,
		rating: rating,
	}, nil
}

// RouteParameters implements query.Query.
func (q *Rate) RouteParameters() map[string]string { return soundRoute(q.id) }

// QueryParameters implements query.Query.
func (q *Rate) QueryParameters() map[string]any {
	return map[string]any{"rating": query.FormatValue(q.rating)}
}

// Comment posts a comment on a sound.
type Comment struct {
	query.JSON[string]
	query.Bearer

	id      int
	comment string
}

// NewComment returns a query posting comment on the sound with the given id.
func NewComment(id int, comment, token string) *Comment {
	return &Comment{
		JSON:    query.NewJSON[string](http.MethodPost, "/sounds/{sound_id}/comment/", mapping.DetailString{}),
		Bearer:  query.Bearer(token),
		id:      id,
		comment: comment,
	}
}

// RouteParameters implements query.Query.
func (q *Comment) RouteParameters() map[string]string { return soundRoute(q.id) }

// QueryParameters implements query.Query.
func (q *Comment) QueryParameters() map[string]any {
	return map[string]any{"comment": q.comment}
}
