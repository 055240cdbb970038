package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omenfeed-io/omen/internal/auth"
	"github.com/omenfeed-io/omen/pkg/omen"
)

func TestTokenAuthorizer_Apply(t *testing.T) {
	t.Parallel()
	t.Run("v1 token header", func(t *testing.T) {
		t.Parallel()

		authorizer := auth.NewTokenAuthorizer("secret", 1)
		headers := http.Header{}

		err := authorizer.Apply(headers, "GET", "/status", nil)
		require.NoError(t, err)
		assert.Equal(t, "OMEN-TOKEN token=secret", headers.Get("Authorization"))
	})

	t.Run("v2 token header", func(t *testing.T) {
		t.Parallel()

		authorizer := auth.NewTokenAuthorizer("secret", 2)
		headers := http.Header{}

		err := authorizer.Apply(headers, "GET", "/status", nil)
		require.NoError(t, err)
		assert.Equal(t, "secret", headers.Get("X-OmenApi-Token"))
		assert.Empty(t, headers.Get("Authorization"))
	})

	t.Run("empty token reports missing auth", func(t *testing.T) {
		t.Parallel()

		authorizer := auth.NewTokenAuthorizer("", 1)

		err := authorizer.Apply(http.Header{}, "GET", "/status", nil)
		require.ErrorIs(t, err, omen.ErrMissingAuth)
	})
}

func TestTokenAuthorizer_AutoDiscovery(t *testing.T) {
	t.Run("from OMEN_TOKEN", func(t *testing.T) {
		t.Setenv(auth.EnvToken, "env-token")

		authorizer := auth.NewTokenAuthorizer("auto", 1)
		headers := http.Header{}

		err := authorizer.Apply(headers, "GET", "/status", nil)
		require.NoError(t, err)
		assert.Equal(t, "OMEN-TOKEN token=env-token", headers.Get("Authorization"))
	})

	t.Run("from legacy variable", func(t *testing.T) {
		t.Setenv(auth.EnvToken, "")
		t.Setenv(auth.EnvTokenLegacy, "legacy-token")

		authorizer := auth.NewTokenAuthorizer("auto", 1)
		headers := http.Header{}

		err := authorizer.Apply(headers, "GET", "/status", nil)
		require.NoError(t, err)
		assert.Equal(t, "OMEN-TOKEN token=legacy-token", headers.Get("Authorization"))
	})

	t.Run("nothing in environment defers to request time", func(t *testing.T) {
		t.Setenv(auth.EnvToken, "")
		t.Setenv(auth.EnvTokenLegacy, "")

		authorizer := auth.NewTokenAuthorizer("auto", 1)

		err := authorizer.Apply(http.Header{}, "GET", "/status", nil)
		require.ErrorIs(t, err, omen.ErrMissingAuth)
		// Failed discovery names the cause alongside the missing-auth error.
		require.ErrorIs(t, err, omen.ErrTokenNotFound)
	})
}

func TestTokenAuthorizer_DefaultsAPIVersion(t *testing.T) {
	t.Parallel()

	// Zero API version means v1 header placement.
	authorizer := auth.NewTokenAuthorizer("secret", 0)
	headers := http.Header{}

	err := authorizer.Apply(headers, "GET", "/status", nil)
	require.NoError(t, err)
	assert.Equal(t, "OMEN-TOKEN token=secret", headers.Get("Authorization"))
	assert.Empty(t, headers.Get("X-OmenApi-Token"))
}

func TestResolve(t *testing.T) {
	t.Parallel()
	t.Run("caller authorizer wins", func(t *testing.T) {
		t.Parallel()

		custom := auth.NewSignatureAuthorizer("user", "key")
		resolved := auth.Resolve(&omen.Config{Token: "ignored", Authorizer: custom})
		assert.Same(t, custom, resolved)
	})

	t.Run("token wraps into token authorizer", func(t *testing.T) {
		t.Parallel()

		resolved := auth.Resolve(&omen.Config{Token: "secret", APIVersion: 1})
		require.NotNil(t, resolved)

		headers := http.Header{}
		require.NoError(t, resolved.Apply(headers, "GET", "/", nil))
		assert.Equal(t, "OMEN-TOKEN token=secret", headers.Get("Authorization"))
	})

	t.Run("no credentials resolves to nil", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, auth.Resolve(&omen.Config{}))
	})
}
