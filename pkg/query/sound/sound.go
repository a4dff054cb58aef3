// Package sound holds the endpoints that read or act on individual sounds.
package sound

import (
	"net/http"
	"strconv"

	"github.com/me/freesound/pkg/mapping"
	"github.com/me/freesound/pkg/model"
	"github.com/me/freesound/pkg/query"
)

const soundIDParam = "sound_id"

func soundRoute(id int) map[string]string {
	return map[string]string{soundIDParam: strconv.Itoa(id)}
}

var (
	_ query.JSONQuery[model.Sound]            = (*Instance)(nil)
	_ query.PagedQuery[model.Sound]           = (*Similar)(nil)
	_ query.PagedQuery[model.Comment]         = (*Comments)(nil)
	_ query.JSONQuery[model.AudioDescriptors] = (*Descriptors)(nil)
)

// Instance retrieves a single sound.
type Instance struct {
	query.JSON[model.Sound]

	id int
}

// NewInstance returns a query for the sound with the given id.
func NewInstance(id int) *Instance {
	return &Instance{
		JSON: query.NewJSON[model.Sound](http.MethodGet, "/sounds/{sound_id}/", mapping.SoundMapper{}),
		id:   id,
	}
}

// RouteParameters implements query.Query.
func (q *Instance) RouteParameters() map[string]string { return soundRoute(q.id) }

// Similar lists sounds acoustically similar to a given sound.
type Similar struct {
	query.SoundPaging

	id int
}

// NewSimilar returns a query for sounds similar to the sound with the given id.
func NewSimilar(id int) *Similar {
	return &Similar{
		SoundPaging: query.NewSoundPaging("/sounds/{sound_id}/similar/", nil),
		id:          id,
	}
}

// RouteParameters implements query.Query.
func (q *Similar) RouteParameters() map[string]string { return soundRoute(q.id) }

// Comments lists the comments left on a sound.
type Comments struct {
	query.Paging[model.Comment]

	id int
}

// NewComments returns a query for the comments on the sound with the given id.
func NewComments(id int) *Comments {
	return &Comments{
		Paging: query.NewPaging[model.Comment]("/sounds/{sound_id}/comments/", mapping.CommentMapper{}, nil),
		id:     id,
	}
}

// RouteParameters implements query.Query.
func (q *Comments) RouteParameters() map[string]string { return soundRoute(q.id) }

// Descriptors lists the audio analysis descriptors the API can return.
type Descriptors struct {
	query.JSON[model.AudioDescriptors]
}

// NewDescriptors returns a query for the available audio descriptors.
func NewDescriptors() *Descriptors {
	return &Descriptors{
		JSON: query.NewJSON[model.AudioDescriptors](http.MethodGet, "/descriptors/", mapping.AudioDescriptorsMapper{}),
	}
}
