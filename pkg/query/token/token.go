// Package token holds the OAuth2 token endpoint queries.
package token

import (
	"net/http"

	"github.com/me/freesound/pkg/mapping"
	"github.com/me/freesound/pkg/model"
	"github.com/me/freesound/pkg/query"
)

// Grant types accepted by the token endpoint.
const (
	GrantAuthorizationCode = "authorization_code"
	GrantRefreshToken      = "refresh_token"
)

// Path is the token endpoint, relative to the API root.
const Path = "/oauth2/access_token/"

var _ query.JSONQuery[model.AccessTokenDetails] = (*Exchange)(nil)

// Exchange trades a grant for an access token. It is sent with the client
// credentials in the body and no Authorization header.
type Exchange struct {
	query.JSON[model.AccessTokenDetails]

	clientID     string
	clientSecret string
	grantType    string
	grantParam   string
	grant        string
}

func newExchange(clientID, clientSecret, grantType, grantParam, grant string) *Exchange {
	return &Exchange{
		JSON:         query.NewJSON[model.AccessTokenDetails](http.MethodPost, Path, mapping.AccessTokenDetailsMapper{}),
		clientID:     clientID,
		clientSecret: clientSecret,
		grantType:    grantType,
		grantParam:   grantParam,
		grant:        grant,
	}
}

// NewAccessToken returns a query exchanging an authorization code for an
// access token.
func NewAccessToken(clientID, clientSecret, code string) *Exchange {
	return newExchange(clientID, clientSecret, GrantAuthorizationCode, "code", code)
}

// NewRefresh returns a query exchanging a refresh token for a new access
// token.
func NewRefresh(clientID, clientSecret, refreshToken string) *Exchange {
	return newExchange(clientID, clientSecret, GrantRefreshToken, "refresh_token", refreshToken)
}

// GrantType returns the OAuth2 grant type being exchanged.
func (q *Exchange) GrantType() string { return q.grantType }

// QueryParameters implements query.Query.
func (q *Exchange) QueryParameters() map[string]any {
	return map[string]any{
		"client_id":     q.clientID,
		"client_secret": q.clientSecret,
		"grant_type":    q.grantType,
		q.grantParam:    q.grant,
	}
}
