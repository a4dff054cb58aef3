package model

import "time"

// Sound is a sound resource as returned by the sound instance, search and
// list endpoints. Fields the API did not return (or returned as null) are
// left at their zero value; numeric and time fields use pointers so that
// absence is distinguishable from zero.
type Sound struct {
	// ID is the sound identifier on freesound.org.
	ID *int `json:"id,omitempty"`

	// URL is the sound's page on freesound.org.
	URL string `json:"url,omitempty"`

	// Name is the name given to the sound by the uploader.
	Name string `json:"name,omitempty"`

	// Tags holds the sound's tags with duplicates removed.
	Tags []string `json:"tags,omitempty"`

	// Description is the uploader's textual description.
	Description string `json:"description,omitempty"`

	// Geotag is the "latitude longitude" location, if any.
	Geotag string `json:"geotag,omitempty"`

	// Created is when the sound was added.
	Created *time.Time `json:"created,omitempty"`

	// License is the sound's license; zero if unknown.
	License License `json:"license,omitempty"`

	// Type is the original file type (wav, aif, mp3, ...).
	Type string `json:"type,omitempty"`

	Channels   *int     `json:"channels,omitempty"`
	Filesize   *int64   `json:"filesize,omitempty"`
	Bitrate    *int     `json:"bitrate,omitempty"`
	Bitdepth   *int     `json:"bitdepth,omitempty"`
	Duration   *float32 `json:"duration,omitempty"`
	Samplerate *float32 `json:"samplerate,omitempty"`

	// Username is the uploader's username.
	Username string `json:"username,omitempty"`

	// Pack is the URI of the pack the sound belongs to.
	Pack string `json:"pack,omitempty"`

	DownloadURI string `json:"download,omitempty"`
	BookmarkURI string `json:"bookmark,omitempty"`

	// Previews maps preview names (preview-hq-mp3, ...) to URIs.
	Previews map[string]string `json:"previews,omitempty"`

	// Images maps waveform/spectrogram image names to URIs.
	Images map[string]string `json:"images,omitempty"`

	NumberOfDownloads *int     `json:"num_downloads,omitempty"`
	AverageRating     *float32 `json:"avg_rating,omitempty"`
	NumberOfRatings   *int     `json:"num_ratings,omitempty"`
	RatingURI         string   `json:"rate,omitempty"`
	CommentsURI       string   `json:"comments,omitempty"`
	NumberOfComments  *int     `json:"num_comments,omitempty"`
	CommentURI        string   `json:"comment,omitempty"`
	SimilarSoundsURI  string   `json:"similar_sounds,omitempty"`
}
