package model

import "time"

// Pack is a named collection of sounds uploaded by one user.
type Pack struct {
	ID                *int       `json:"id,omitempty"`
	URL               string     `json:"url,omitempty"`
	Description       string     `json:"description,omitempty"`
	Created           *time.Time `json:"created,omitempty"`
	Name              string     `json:"name,omitempty"`
	Username          string     `json:"username,omitempty"`
	NumberOfSounds    *int       `json:"num_sounds,omitempty"`
	SoundsURI         string     `json:"sounds,omitempty"`
	NumberOfDownloads *int       `json:"num_downloads,omitempty"`
}

// Comment is a user comment left on a sound.
type Comment struct {
	Username string     `json:"username,omitempty"`
	Comment  string     `json:"comment,omitempty"`
	Created  *time.Time `json:"created,omitempty"`
}

// BookmarkCategory groups a user's bookmarked sounds.
type BookmarkCategory struct {
	URL            string `json:"url,omitempty"`
	Name           string `json:"name,omitempty"`
	NumberOfSounds *int   `json:"num_sounds,omitempty"`
	SoundsURI      string `json:"sounds,omitempty"`
}
