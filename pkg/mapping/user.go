package mapping

import "github.com/me/freesound/pkg/model"

// UserMapper maps a public user profile.
type UserMapper struct{}

// Map implements Mapper.
func (UserMapper) Map(source Object) model.User {
	avatar, _ := Field[Object](source, "avatar")

	return model.User{
		URL:                   String(source, "url"),
		Username:              String(source, "username"),
		About:                 String(source, "about"),
		Homepage:              String(source, "home_page"),
		AvatarURIs:            Dictionary(avatar),
		DateJoined:            ParseDate(String(source, "date_joined")),
		NumberOfSounds:        Ptr[int](source, "num_sounds"),
		SoundsURI:             String(source, "sounds"),
		NumberOfPacks:         Ptr[int](source, "num_packs"),
		PacksURI:              String(source, "packs"),
		NumberOfPosts:         Ptr[int](source, "num_posts"),
		NumberOfComments:      Ptr[int](source, "num_comments"),
		BookmarkCategoriesURI: String(source, "bookmark_categories"),
	}
}

// CurrentUserMapper maps the authorised user's own profile.
type CurrentUserMapper struct{}

// Map implements Mapper.
func (CurrentUserMapper) Map(source Object) model.CurrentUser {
	return model.CurrentUser{
		User:             UserMapper{}.Map(source),
		Email:            String(source, "email"),
		UniqueIdentifier: Ptr[int](source, "unique_id"),
	}
}
