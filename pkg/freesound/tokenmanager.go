package freesound

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/me/freesound/internal/logging"
	"github.com/me/freesound/pkg/tokenstore"
)

// expiryMargin is how long before its expiry a token is treated as expired.
const expiryMargin = time.Minute

// TokenManager keeps users' OAuth2 tokens in a tokenstore.Store and refreshes
// them when they expire. Concurrent refreshes of the same key are collapsed
// into one request.
type TokenManager struct {
	client *Client
	store  tokenstore.Store
	group  singleflight.Group
	logger *slog.Logger
	now    func() time.Time
}

// NewTokenManager returns a TokenManager using c for token requests.
func NewTokenManager(c *Client, store tokenstore.Store, logger *slog.Logger) *TokenManager {
	logger = logging.OrDiscard(logger)
	return &TokenManager{
		client: c,
		store:  store,
		logger: logger.With("component", "token-manager"),
		now:    time.Now,
	}
}

// Authorize exchanges an authorization code and stores the token under key.
func (m *TokenManager) Authorize(ctx context.Context, key, code string) (*oauth2.Token, error) {
	tok, err := m.client.AccessToken(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := m.store.Save(ctx, key, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// Token returns a usable token for key, refreshing and storing it first when
// it has expired.
func (m *TokenManager) Token(ctx context.Context, key string) (*oauth2.Token, error) {
	tok, err := m.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, ErrTokenNotFound
	}
	if !m.expired(tok) {
		return tok, nil
	}

	// The shared refresh outlives any one caller's cancellation.
	ch := m.group.DoChan(key, func() (any, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.refreshTimeout())
		defer cancel()
		return m.refresh(refreshCtx, key, tok)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		m.logger.Debug("token refreshed", "key", key, "shared", res.Shared)
		return res.Val.(*oauth2.Token), nil
	}
}

// refreshTimeout bounds a refresh by the client's timeout for every attempt.
func (m *TokenManager) refreshTimeout() time.Duration {
	cfg := m.client.Config()
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return timeout * time.Duration(cfg.MaxRetries+1)
}

func (m *TokenManager) refresh(ctx context.Context, key string, tok *oauth2.Token) (*oauth2.Token, error) {
	// Another caller may have refreshed while this one waited.
	if current, err := m.store.Get(ctx, key); err == nil && current != nil && !m.expired(current) {
		return current, nil
	}
	if tok.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	fresh, err := m.client.RefreshAccessToken(ctx, tok.RefreshToken)
	if err != nil {
		return nil, err
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = tok.RefreshToken
	}
	if err := m.store.Save(ctx, key, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// Forget removes the token stored under key.
func (m *TokenManager) Forget(ctx context.Context, key string) error {
	return m.store.Delete(ctx, key)
}

// TokenSource adapts the manager to oauth2.TokenSource for the token of key.
func (m *TokenManager) TokenSource(ctx context.Context, key string) oauth2.TokenSource {
	return tokenSource(func() (*oauth2.Token, error) { return m.Token(ctx, key) })
}

func (m *TokenManager) expired(tok *oauth2.Token) bool {
	if tok.AccessToken == "" {
		return true
	}
	return !tok.Expiry.IsZero() && !m.now().Add(expiryMargin).Before(tok.Expiry)
}

type tokenSource func() (*oauth2.Token, error)

func (f tokenSource) Token() (*oauth2.Token, error) { return f() }
