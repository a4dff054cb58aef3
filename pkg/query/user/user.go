// Package user holds the endpoints that browse a user's profile and content.
package user

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/me/freesound/pkg/mapping"
	"github.com/me/freesound/pkg/model"
	"github.com/me/freesound/pkg/query"
)

// UncategorisedCategory is the bookmark category id holding bookmarks filed
// under no category.
const UncategorisedCategory = 0

var (
	_ query.JSONQuery[model.User]              = (*Instance)(nil)
	_ query.PagedQuery[model.Sound]            = (*Sounds)(nil)
	_ query.PagedQuery[model.Pack]             = (*Packs)(nil)
	_ query.PagedQuery[model.BookmarkCategory] = (*BookmarkCategories)(nil)
	_ query.PagedQuery[model.Sound]            = (*BookmarkCategorySounds)(nil)
	_ query.JSONQuery[model.CurrentUser]       = (*Me)(nil)
	_ query.Credentialed                       = (*Me)(nil)
)

func userRoute(username string) map[string]string {
	return map[string]string{"username": username}
}

// Instance retrieves a user's public profile.
type Instance struct {
	query.JSON[model.User]

	username string
}

// NewInstance returns a profile query for username, which must not be blank.
func NewInstance(username string) (*Instance, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: no username specified", query.ErrInvalidArgument)
	}
	return &Instance{
		JSON:     query.NewJSON[model.User](http.MethodGet, "/users/{username}/", mapping.UserMapper{}),
		username: username,
	}, nil
}

// RouteParameters implements query.Query.
func (q *Instance) RouteParameters() map[string]string { return userRoute(q.username) }

// Sounds lists the sounds uploaded by a user.
type Sounds struct {
	query.SoundPaging

	username string
}

// NewSounds returns a query for the sounds uploaded by username.
func NewSounds(username string) *Sounds {
	return &Sounds{
		SoundPaging: query.NewSoundPaging("/users/{username}/sounds/", nil),
		username:    username,
	}
}

// RouteParameters implements query.Query.
func (q *Sounds) RouteParameters() map[string]string { return userRoute(q.username) }

// Packs lists the packs created by a user.
type Packs struct {
	query.Paging[model.Pack]

	username string
}

// NewPacks returns a query for the packs created by username.
func NewPacks(username string) *Packs {
	return &Packs{
		Paging:   query.NewPaging[model.Pack]("/users/{username}/packs/", mapping.PackMapper{}, nil),
		username: username,
	}
}

// RouteParameters implements query.Query.
func (q *Packs) RouteParameters() map[string]string { return userRoute(q.username) }

// BookmarkCategories lists a user's bookmark categories.
type BookmarkCategories struct {
	query.Paging[model.BookmarkCategory]

	username string
}

// NewBookmarkCategories returns a query for the bookmark categories of username.
func NewBookmarkCategories(username string) *BookmarkCategories {
	return &BookmarkCategories{
		Paging: query.NewPaging[model.BookmarkCategory](
			"/users/{username}/bookmark_categories/", mapping.BookmarkCategoryMapper{}, nil),
		username: username,
	}
}

// RouteParameters implements query.Query.
func (q *BookmarkCategories) RouteParameters() map[string]string { return userRoute(q.username) }

// BookmarkCategorySounds lists the sounds in one of a user's bookmark
// categories.
type BookmarkCategorySounds struct {
	query.SoundPaging

	username   string
	categoryID int
}

// NewBookmarkCategorySounds returns a query for the sounds bookmarked by
// username under the given category.
func NewBookmarkCategorySounds(username string, categoryID int) *BookmarkCategorySounds {
	return &BookmarkCategorySounds{
		SoundPaging: query.NewSoundPaging("/users/{username}/bookmark_categories/{bookmark_category_id}/sounds/", nil),
		username:    username,
		categoryID:  categoryID,
	}
}

// NewUncategorisedBookmarks returns a query for the sounds bookmarked by
// username without a category.
func NewUncategorisedBookmarks(username string) *BookmarkCategorySounds {
	return NewBookmarkCategorySounds(username, UncategorisedCategory)
}

// RouteParameters implements query.Query.
func (q *BookmarkCategorySounds) RouteParameters() map[string]string {
	return map[string]string{
		"username":             q.username,
		"bookmark_category_id": strconv.Itoa(q.categoryID),
	}
}

// Me retrieves the profile of the user who authorised the token.
type Me struct {
	query.JSON[model.CurrentUser]
	query.Bearer
}

// NewMe returns a query for the profile of the token's owner.
func NewMe(token string) *Me {
	return &Me{
		JSON:   query.NewJSON[model.CurrentUser](http.MethodGet, "/me/", mapping.CurrentUserMapper{}),
		Bearer: query.Bearer(token),
	}
}
