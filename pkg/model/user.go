package model

import "time"

// User is the public profile of a freesound.org user.
type User struct {
	URL      string `json:"url,omitempty"`
	Username string `json:"username,omitempty"`
	About    string `json:"about,omitempty"`
	Homepage string `json:"home_page,omitempty"`

	// AvatarURIs maps avatar sizes (small, medium, large) to image URIs.
	AvatarURIs map[string]string `json:"avatar,omitempty"`

	DateJoined            *time.Time `json:"date_joined,omitempty"`
	NumberOfSounds        *int       `json:"num_sounds,omitempty"`
	SoundsURI             string     `json:"sounds,omitempty"`
	NumberOfPacks         *int       `json:"num_packs,omitempty"`
	PacksURI              string     `json:"packs,omitempty"`
	NumberOfPosts         *int       `json:"num_posts,omitempty"`
	NumberOfComments      *int       `json:"num_comments,omitempty"`
	BookmarkCategoriesURI string     `json:"bookmark_categories,omitempty"`
}

// CurrentUser is the authorised user's own profile, which carries the public
// profile plus private details.
type CurrentUser struct {
	User

	Email            string `json:"email,omitempty"`
	UniqueIdentifier *int   `json:"unique_id,omitempty"`
}
