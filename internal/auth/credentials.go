package auth

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/semmy-space/req/internal/secrets"
)

// ErrNoToken is returned by Token when no bearer token is stored
var ErrNoToken = errors.New("no bearer token stored")

// Credentials holds the single bearer token used to authenticate requests.
// It implements oauth2.TokenSource; the token is re-read from the store on every call.
type Credentials struct {
	store secrets.Store
	now   func() time.Time
}

// NewCredentials creates Credentials on top of store.
func NewCredentials(store secrets.Store) *Credentials {
	return &Credentials{store: store, now: time.Now}
}

// Store returns the backing store
func (c *Credentials) Store() secrets.Store {
	return c.store
}

// Load returns the stored token. Missing or unreadable storage reads as absent.
func (c *Credentials) Load() (string, bool) {
	token, err := c.store.Get(secrets.TokenKey)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Save replaces the stored token and reports its expiry.
// ok is false when the token has no decodable exp claim.
func (c *Credentials) Save(token string) (exp Expiry, ok bool, err error) {
	if !LooksLikeJWT(token) {
		return Expiry{}, false, ErrMalformedToken
	}
	if err := c.store.Set(secrets.TokenKey, token); err != nil {
		return Expiry{}, false, fmt.Errorf("failed to store token: %w", err)
	}
	exp, ok = ExpiryStatus(token, c.now())
	return exp, ok, nil
}

// Remove deletes the stored token; removing an absent token is not an error.
func (c *Credentials) Remove() error {
	if err := c.store.Delete(secrets.TokenKey); err != nil && !errors.Is(err, secrets.ErrNotFound) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// Status reports the stored token's expiry.
// present is false without a token; ok is false when it has no readable exp claim.
func (c *Credentials) Status() (exp Expiry, present, ok bool) {
	token, present := c.Load()
	if !present {
		return Expiry{}, false, false
	}
	exp, ok = ExpiryStatus(token, c.now())
	return exp, true, ok
}

// Token implements oauth2.TokenSource.Token().
// Expired tokens are still returned; the server decides whether to accept them.
func (c *Credentials) Token() (*oauth2.Token, error) {
	token, ok := c.Load()
	if !ok {
		return nil, ErrNoToken
	}

	tok := &oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}
	if claims, err := Decode(token); err == nil {
		if at, ok := claims.Expiry(); ok {
			tok.Expiry = at
		}
	}
	return tok, nil
}

var _ oauth2.TokenSource = (*Credentials)(nil)
