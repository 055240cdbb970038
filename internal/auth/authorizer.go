package auth

import (
	"fmt"
	"net/http"
	"os"

	"github.com/omenfeed-io/omen/internal/constants"
	"github.com/omenfeed-io/omen/pkg/omen"
)

// Environment variables searched for a token when the configured token is
// "auto". OMENFEED_TOKEN is the legacy name.
const (
	EnvToken       = "OMEN_TOKEN"
	EnvTokenLegacy = "OMENFEED_TOKEN"
)

// TokenAuthorizer authenticates requests with a plain API token.
type TokenAuthorizer struct {
	token      string
	auto       bool
	apiVersion int
}

// NewTokenAuthorizer wraps a token and API version into an authorizer. The
// token value "auto" is resolved from the environment; resolution failure is
// deferred to the first request.
func NewTokenAuthorizer(token string, apiVersion int) *TokenAuthorizer {
	auto := token == "auto"
	if auto {
		token = findToken()
	}

	if apiVersion == 0 {
		apiVersion = constants.DefaultAPIVersion
	}

	return &TokenAuthorizer{token: token, auto: auto, apiVersion: apiVersion}
}

// Apply implements omen.Authorizer.
func (a *TokenAuthorizer) Apply(headers http.Header, method, pathAndQuery string, body []byte) error {
	if a.token == "" {
		if a.auto {
			return fmt.Errorf("%w: %w", omen.ErrMissingAuth, omen.ErrTokenNotFound)
		}

		return omen.ErrMissingAuth
	}

	switch a.apiVersion {
	case 2:
		headers.Set("X-OmenApi-Token", a.token)
	default:
		headers.Set("Authorization", fmt.Sprintf("OMEN-TOKEN token=%s", a.token))
	}

	return nil
}

// findToken searches the environment for an API token.
func findToken() string {
	if token := os.Getenv(EnvToken); token != "" {
		return token
	}

	return os.Getenv(EnvTokenLegacy)
}

// Resolve turns the Config auth fields into a single authorizer. A
// caller-supplied Authorizer wins over a plain token; with neither set the
// result is nil and the transport reports omen.ErrMissingAuth at request
// time.
func Resolve(config *omen.Config) omen.Authorizer {
	if config.Authorizer != nil {
		return config.Authorizer
	}

	if config.Token != "" {
		return NewTokenAuthorizer(config.Token, config.APIVersion)
	}

	return nil
}
