package sound

import "github.com/me/freesound/pkg/query"

var (
	_ query.BinaryQuery  = (*Download)(nil)
	_ query.Credentialed = (*Download)(nil)
)

// Download fetches the original audio file of a sound. The response stream
// must be closed by the caller.
type Download struct {
	query.Binary
	query.Bearer

	id int
}

// NewDownload returns a download query for the sound with the given id,
// authorised by token.
func NewDownload(id int, token string) *Download {
	return &Download{
		Binary: query.NewBinary("/sounds/{sound_id}/download/"),
		Bearer: query.Bearer(token),
		id:     id,
	}
}

// RouteParameters implements query.Query.
func (q *Download) RouteParameters() map[string]string { return soundRoute(q.id) }
