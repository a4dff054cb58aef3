package model

import (
	"time"

	"golang.org/x/oauth2"
)

// AccessTokenDetails is the response of the OAuth2 access token endpoint.
type AccessTokenDetails struct {
	AccessToken  string `json:"access_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
	ExpiresIn    *int   `json:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Expiry returns the instant the access token stops being valid, given when it
// was obtained. The zero time is returned when the lifetime is unknown.
func (d AccessTokenDetails) Expiry(obtainedAt time.Time) time.Time {
	if d.ExpiresIn == nil {
		return time.Time{}
	}
	return obtainedAt.Add(time.Duration(*d.ExpiresIn) * time.Second)
}

// OAuth2Token converts the details into an oauth2.Token so they can be used
// with oauth2.TokenSource based HTTP clients.
func (d AccessTokenDetails) OAuth2Token(obtainedAt time.Time) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  d.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: d.RefreshToken,
		Expiry:       d.Expiry(obtainedAt),
	}
	if d.Scope != "" {
		tok = tok.WithExtra(map[string]any{"scope": d.Scope})
	}
	return tok
}
