package mapping

import "github.com/me/freesound/pkg/model"

// SoundMapper maps a sound resource.
type SoundMapper struct{}

// Map implements Mapper.
func (SoundMapper) Map(source Object) model.Sound {
	var license model.License
	if l, ok := model.LicenseFromURI(String(source, "license")); ok {
		license = l
	}

	tags, _ := Field[Array](source, "tags")
	previews, _ := Field[Object](source, "previews")
	images, _ := Field[Object](source, "images")

	return model.Sound{
		ID:                Ptr[int](source, "id"),
		URL:               String(source, "url"),
		Name:              String(source, "name"),
		Tags:              uniqueInOrder(Strings(tags)),
		Description:       String(source, "description"),
		Geotag:            String(source, "geotag"),
		Created:           ParseDate(String(source, "created")),
		License:           license,
		Type:              String(source, "type"),
		Channels:          Ptr[int](source, "channels"),
		Filesize:          Ptr[int64](source, "filesize"),
		Bitrate:           Ptr[int](source, "bitrate"),
		Bitdepth:          Ptr[int](source, "bitdepth"),
		Duration:          Ptr[float32](source, "duration"),
		Samplerate:        Ptr[float32](source, "samplerate"),
		Username:          String(source, "username"),
		Pack:              String(source, "pack"),
		DownloadURI:       String(source, "download"),
		BookmarkURI:       String(source, "bookmark"),
		Previews:          Dictionary(previews),
		Images:            Dictionary(images),
		NumberOfDownloads: Ptr[int](source, "num_downloads"),
		AverageRating:     Ptr[float32](source, "avg_rating"),
		NumberOfRatings:   Ptr[int](source, "num_ratings"),
		RatingURI:         String(source, "rate"),
		CommentsURI:       String(source, "comments"),
		NumberOfComments:  Ptr[int](source, "num_comments"),
		CommentURI:        String(source, "comment"),
		SimilarSoundsURI:  String(source, "similar_sounds"),
	}
}
