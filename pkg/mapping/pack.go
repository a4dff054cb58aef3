package mapping

import "github.com/me/freesound/pkg/model"

// PackMapper maps a pack resource.
type PackMapper struct{}

// Map implements Mapper.
func (PackMapper) Map(source Object) model.Pack {
	return model.Pack{
		ID:                Ptr[int](source, "id"),
		URL:               String(source, "url"),
		Description:       String(source, "description"),
		Created:           ParseDate(String(source, "created")),
		Name:              String(source, "name"),
		Username:          String(source, "username"),
		NumberOfSounds:    Ptr[int](source, "num_sounds"),
		SoundsURI:         String(source, "sounds"),
		NumberOfDownloads: Ptr[int](source, "num_downloads"),
	}
}

// CommentMapper maps a sound comment.
type CommentMapper struct{}

// Map implements Mapper.
func (CommentMapper) Map(source Object) model.Comment {
	return model.Comment{
		Username: String(source, "username"),
		Comment:  String(source, "comment"),
		Created:  ParseDate(String(source, "created")),
	}
}

// BookmarkCategoryMapper maps a bookmark category.
type BookmarkCategoryMapper struct{}

// Map implements Mapper.
func (BookmarkCategoryMapper) Map(source Object) model.BookmarkCategory {
	return model.BookmarkCategory{
		URL:            String(source, "url"),
		Name:           String(source, "name"),
		NumberOfSounds: Ptr[int](source, "num_sounds"),
		SoundsURI:      String(source, "sounds"),
	}
}
