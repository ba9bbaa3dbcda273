package ws1

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/ws1importer/ws1importer/settings"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Authenticator applies one authentication scheme to outgoing requests.
// Exactly one implementation is constructed per run.
type Authenticator interface {
	Apply(req *http.Request) error
}

// NewAuthenticator builds the Authenticator for a resolved auth config.
func NewAuthenticator(ctx context.Context, cfg settings.AuthConfig) (Authenticator, error) {
	switch cfg.Mode {
	case settings.AuthOAuth:
		return NewOAuthAuthenticator(ctx, cfg.ClientID, cfg.ClientSecret, cfg.TokenURL), nil
	case settings.AuthBasic:
		return &BasicAuthenticator{Username: cfg.Username, Password: cfg.Password, APIKey: cfg.APIKey}, nil
	case settings.AuthEncoded:
		return &EncodedAuthenticator{Header: cfg.Encoded, APIKey: cfg.APIKey}, nil
	case settings.AuthAPIKeyOnly:
		return &APIKeyAuthenticator{APIKey: cfg.APIKey}, nil
	}
	return nil, errors.Errorf("unhandled auth mode %v", cfg.Mode)
}

// OAuthAuthenticator authenticates with a bearer token from an OAuth2
// client-credentials exchange. The token source caches the token and only
// goes back to the token endpoint when the cached token has expired.
type OAuthAuthenticator struct {
	source oauth2.TokenSource
}

// NewOAuthAuthenticator builds the client-credentials token source. No
// token is fetched until the first request needs one.
func NewOAuthAuthenticator(ctx context.Context, clientID, clientSecret, tokenURL string) *OAuthAuthenticator {
	cc := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	return &OAuthAuthenticator{source: cc.TokenSource(ctx)}
}

func (a *OAuthAuthenticator) Apply(req *http.Request) error {
	token, err := a.source.Token()
	if err != nil {
		// A failed token exchange almost always means bad client
		// credentials, so it is reported as a configuration problem.
		return &settings.ConfigError{Reason: "requesting OAuth access token: " + err.Error()}
	}
	token.SetAuthHeader(req)
	return nil
}

// BasicAuthenticator authenticates with username/password basic auth plus
// the aw-tenant-code API key header.
type BasicAuthenticator struct {
	Username string
	Password string
	APIKey   string
}

func (a *BasicAuthenticator) Apply(req *http.Request) error {
	req.SetBasicAuth(a.Username, a.Password)
	if a.APIKey != "" {
		req.Header.Set("aw-tenant-code", a.APIKey)
	}
	return nil
}

// EncodedAuthenticator sends a pre-encoded Authorization header value
// verbatim, plus the aw-tenant-code API key header.
type EncodedAuthenticator struct {
	Header string
	APIKey string
}

func (a *EncodedAuthenticator) Apply(req *http.Request) error {
	req.Header.Set("Authorization", a.Header)
	if a.APIKey != "" {
		req.Header.Set("aw-tenant-code", a.APIKey)
	}
	return nil
}

// APIKeyAuthenticator sends only the aw-tenant-code header.
type APIKeyAuthenticator struct {
	APIKey string
}

func (a *APIKeyAuthenticator) Apply(req *http.Request) error {
	req.Header.Set("aw-tenant-code", a.APIKey)
	return nil
}
