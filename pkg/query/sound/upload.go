package sound

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/me/freesound/pkg/mapping"
	"github.com/me/freesound/pkg/model"
	"github.com/me/freesound/pkg/query"
)

var (
	_ query.JSONQuery[model.UploadedSoundDetails] = (*Upload)(nil)
	_ query.JSONQuery[model.UploadedSoundDetails] = (*Describe)(nil)
	_ query.JSONQuery[string]                     = (*EditDescription)(nil)
	_ query.JSONQuery[model.PendingUploads]       = (*PendingUploads)(nil)
	_ query.Credentialed                          = (*Upload)(nil)
)

// AudioFileParam is the multipart field carrying the uploaded audio.
const AudioFileParam = "audiofile"

var whitespace = regexp.MustCompile(`\s`)

// Geotag places a sound on the map.
type Geotag struct {
	Latitude  float64
	Longitude float64
	Zoom      int
}

func (g Geotag) String() string {
	return strconv.FormatFloat(g.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(g.Longitude, 'f', -1, 64) + "," +
		strconv.Itoa(g.Zoom)
}

// Details is the descriptive metadata shared by the upload, describe and edit
// endpoints. Unset fields are not sent.
type Details struct {
	name        string
	description string
	license     model.License
	tags        query.Set
	pack        string
	geotag      *Geotag
}

// Parameters returns the request parameters for the fields that were set.
// Whitespace inside a tag is replaced with "-" so each tag stays one word.
func (d *Details) Parameters() map[string]any {
	params := map[string]any{}
	if d.name != "" {
		params["name"] = d.name
	}
	if d.description != "" {
		params["description"] = d.description
	}
	if d.license != 0 {
		params["license"] = d.license.Description()
	}
	if d.tags.Len() > 0 {
		var tags query.Set
		for _, tag := range d.tags.Values() {
			tags.Add(whitespace.ReplaceAllString(tag, "-"))
		}
		params["tags"] = tags.Join(" ")
	}
	if d.pack != "" {
		params["pack"] = d.pack
	}
	if d.geotag != nil {
		params["geotag"] = d.geotag.String()
	}
	return params
}

// Upload sends a new audio file, optionally describing it in the same request.
type Upload struct {
	query.JSON[model.UploadedSoundDetails]
	query.Bearer
	Details

	file query.File
}

// NewUpload returns a query uploading the file at path, authorised by token.
func NewUpload(path, token string) *Upload {
	return &Upload{
		JSON:   query.NewJSON[model.UploadedSoundDetails](http.MethodPost, "/sounds/upload/", mapping.UploadedSoundDetailsMapper{}),
		Bearer: query.Bearer(token),
		file:   query.File(path),
	}
}

// Name sets the sound's name. The file name is used when unset.
func (q *Upload) Name(name string) *Upload { q.name = name; return q }

// Description sets the sound's description.
func (q *Upload) Description(description string) *Upload { q.description = description; return q }

// License sets the sound's license.
func (q *Upload) License(license model.License) *Upload { q.license = license; return q }

// Tags adds tags to the sound.
func (q *Upload) Tags(tags ...string) *Upload { q.tags.Add(tags...); return q }

// Pack puts the sound in the named pack, creating it when needed.
func (q *Upload) Pack(pack string) *Upload { q.pack = pack; return q }

// Geotag sets the sound's location.
func (q *Upload) Geotag(g Geotag) *Upload { q.geotag = &g; return q }

// QueryParameters implements query.Query.
func (q *Upload) QueryParameters() map[string]any {
	params := q.Parameters()
	params[AudioFileParam] = q.file
	return params
}

// Describe provides the metadata for a previously uploaded file.
type Describe struct {
	query.JSON[model.UploadedSoundDetails]
	query.Bearer
	Details

	uploadFilename string
}

// NewDescribe returns a query describing the upload named uploadFilename. The
// API requires a description, a license and at least one tag.
func NewDescribe(uploadFilename, description string, license model.License, tags []string, token string) *Describe {
	q := &Describe{
		JSON:           query.NewJSON[model.UploadedSoundDetails](http.MethodPost, "/sounds/describe/", mapping.UploadedSoundDetailsMapper{}),
		Bearer:         query.Bearer(token),
		uploadFilename: uploadFilename,
	}
	q.description = description
	q.license = license
	q.tags.Add(tags...)
	return q
}

// Name sets the sound's name.
func (q *Describe) Name(name string) *Describe { q.name = name; return q }

// Tags adds tags to the sound.
func (q *Describe) Tags(tags ...string) *Describe { q.tags.Add(tags...); return q }

// Pack puts the sound in the named pack.
func (q *Describe) Pack(pack string) *Describe { q.pack = pack; return q }

// Geotag sets the sound's location.
func (q *Describe) Geotag(g Geotag) *Describe { q.geotag = &g; return q }

// QueryParameters implements query.Query.
func (q *Describe) QueryParameters() map[string]any {
	params := q.Parameters()
	params["upload_filename"] = q.uploadFilename
	return params
}

// EditDescription changes the metadata of one of the user's sounds. Only the
// fields that are set are changed.
type EditDescription struct {
	query.JSON[string]
	query.Bearer
	Details

	id int
}

// NewEditDescription returns an edit query for the sound with the given id.
func NewEditDescription(id int, token string) *EditDescription {
	return &EditDescription{
		JSON:   query.NewJSON[string](http.MethodPost, "/sounds/{sound_id}/edit/", mapping.DetailString{}),
		Bearer: query.Bearer(token),
		id:     id,
	}
}

// Name sets the sound's name.
func (q *EditDescription) Name(name string) *EditDescription { q.name = name; return q }

// Description sets the sound's description.
func (q *EditDescription) Description(description string) *EditDescription {
	q.description = description
	return q
}

// License sets the sound's license.
func (q *EditDescription) License(license model.License) *EditDescription {
	q.license = license
	return q
}

// Tags adds tags to the sound.
func (q *EditDescription) Tags(tags ...string) *EditDescription { q.tags.Add(tags...); return q }

// Pack moves the sound into the named pack.
func (q *EditDescription) Pack(pack string) *EditDescription { q.pack = pack; return q }

// Geotag sets the sound's location.
func (q *EditDescription) Geotag(g Geotag) *EditDescription { q.geotag = &g; return q }

// RouteParameters implements query.Query.
func (q *EditDescription) RouteParameters() map[string]string { return soundRoute(q.id) }

// QueryParameters implements query.Query.
func (q *EditDescription) QueryParameters() map[string]any { return q.Parameters() }

// PendingUploads lists the user's uploads that are not yet public.
type PendingUploads struct {
	query.JSON[model.PendingUploads]
	query.Bearer
}

// NewPendingUploads returns a pending uploads query authorised by token.
func NewPendingUploads(token string) *PendingUploads {
	return &PendingUploads{
		JSON:   query.NewJSON[model.PendingUploads](http.MethodGet, "/sounds/pending_uploads/", mapping.PendingUploadsMapper{}),
		Bearer: query.Bearer(token),
	}
}
