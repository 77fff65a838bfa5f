package client

import (
	"errors"
	"time"

	"golang.org/x/oauth2"

	"github.com/kndndrj/gqlbee/core"
)

// DefaultTokenLifetime is used for tokens produced by a command
const DefaultTokenLifetime = 5 * time.Minute

// StaticToken returns a source that always yields the same access token
func StaticToken(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}

type templateSource struct {
	template string
	lifetime time.Duration
}

func (s *templateSource) Token() (*oauth2.Token, error) {
	token, err := core.Expand(s.template)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, errors.New("token template produced an empty token")
	}

	return &oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(s.lifetime),
	}, nil
}

// TemplateToken returns a source that expands the template (e.g. {{ exec "az account get-access-token ..." }})
// whenever the previous token is older than lifetime.
func TemplateToken(template string, lifetime time.Duration) oauth2.TokenSource {
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return oauth2.ReuseTokenSource(nil, &templateSource{
		template: template,
		lifetime: lifetime,
	})
}
