package freesound

import (
	"context"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/me/freesound/pkg/model"
	"github.com/me/freesound/pkg/query/token"
)

// OAuth2Config describes the Freesound OAuth2 endpoints and the application
// credentials of c in the form expected by golang.org/x/oauth2.
func (c Config) OAuth2Config() *oauth2.Config {
	base := strings.TrimRight(c.BaseURL, "/")
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:   base + "/oauth2/authorize/",
			TokenURL:  base + token.Path,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthorizationURL returns the page a user visits to grant the application
// access. state is echoed back to the redirect URL.
func (c *Client) AuthorizationURL(state string) string {
	return c.config.OAuth2Config().AuthCodeURL(state)
}

// AccessToken exchanges an authorization code for an access token.
func (c *Client) AccessToken(ctx context.Context, code string) (*oauth2.Token, error) {
	return c.exchange(ctx, token.NewAccessToken(c.config.ClientID, c.config.ClientSecret, code))
}

// RefreshAccessToken exchanges a refresh token for a new access token.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, ErrNoRefreshToken
	}
	return c.exchange(ctx, token.NewRefresh(c.config.ClientID, c.config.ClientSecret, refreshToken))
}

func (c *Client) exchange(ctx context.Context, q *token.Exchange) (*oauth2.Token, error) {
	obtainedAt := time.Now()
	resp, err := Execute[model.AccessTokenDetails](ctx, c, q)
	if err != nil {
		return nil, err
	}
	if err := CheckResponse(resp); err != nil {
		return nil, WrapError("oauth2 "+q.GrantType(), err)
	}
	c.logger.Debug("access token obtained", "grant_type", q.GrantType())
	return resp.Results().OAuth2Token(obtainedAt), nil
}
