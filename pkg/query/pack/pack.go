// Package pack holds the endpoints for sound packs.
package pack

import (
	"net/http"
	"strconv"

	"github.com/me/freesound/pkg/mapping"
	"github.com/me/freesound/pkg/model"
	"github.com/me/freesound/pkg/query"
)

var (
	_ query.JSONQuery[model.Pack]   = (*Instance)(nil)
	_ query.PagedQuery[model.Sound] = (*Sounds)(nil)
	_ query.BinaryQuery             = (*Download)(nil)
	_ query.Credentialed            = (*Download)(nil)
)

func packRoute(id int) map[string]string {
	return map[string]string{"pack_id": strconv.Itoa(id)}
}

// Instance retrieves a single pack.
type Instance struct {
	query.JSON[model.Pack]

	id int
}

// NewInstance returns a query for the pack with the given id.
func NewInstance(id int) *Instance {
	return &Instance{
		JSON: query.NewJSON[model.Pack](http.MethodGet, "/packs/{pack_id}/", mapping.PackMapper{}),
		id:   id,
	}
}

// RouteParameters implements query.Query.
func (q *Instance) RouteParameters() map[string]string { return packRoute(q.id) }

// Sounds lists the sounds in a pack.
type Sounds struct {
	query.SoundPaging

	id int
}

// NewSounds returns a query for the sounds in the pack with the given id.
func NewSounds(id int) *Sounds {
	return &Sounds{
		SoundPaging: query.NewSoundPaging("/packs/{pack_id}/sounds/", nil),
		id:          id,
	}
}

// RouteParameters implements query.Query.
func (q *Sounds) RouteParameters() map[string]string { return packRoute(q.id) }

// Download fetches every sound of a pack as a zip archive. The response stream
// must be closed by the caller.
type Download struct {
	query.Binary
	query.Bearer

	id int
}

// NewDownload returns a download query for the pack with the given id,
// authorised by token.
func NewDownload(id int, token string) *Download {
	return &Download{
		Binary: query.NewBinary("/packs/{pack_id}/download/"),
		Bearer: query.Bearer(token),
		id:     id,
	}
}

// RouteParameters implements query.Query.
func (q *Download) RouteParameters() map[string]string { return packRoute(q.id) }
