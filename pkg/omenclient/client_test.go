package omenclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omenfeed-io/omen/pkg/omen"
	"github.com/omenfeed-io/omen/pkg/omenclient"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()
	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := omenclient.New(context.Background(), nil)
		require.ErrorIs(t, err, omen.ErrConfigRequired)
	})

	t.Run("missing base URL", func(t *testing.T) {
		t.Parallel()

		_, err := omenclient.New(context.Background(), &omen.Config{AppName: "app"})
		require.ErrorIs(t, err, omen.ErrBaseURLRequired)
	})

	t.Run("missing app name", func(t *testing.T) {
		t.Parallel()

		_, err := omenclient.New(context.Background(), &omen.Config{
			BaseURL: "https://api.omenfeed.io/v2",
			Token:   "secret",
		})
		require.ErrorIs(t, err, omen.ErrAppNameRequired)
	})
}

func TestNew_NormalizesBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "adds https scheme",
			input:    "api.omenfeed.io/v2",
			expected: "https://api.omenfeed.io/v2",
		},
		{
			name:     "trims trailing slash",
			input:    "https://api.omenfeed.io/v2/",
			expected: "https://api.omenfeed.io/v2",
		},
		{
			name:     "keeps http scheme",
			input:    "http://localhost:8080",
			expected: "http://localhost:8080",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			config := &omen.Config{
				BaseURL: testCase.input,
				Token:   "secret",
				AppName: "test-app",
			}

			client, err := omenclient.New(context.Background(), config)
			require.NoError(t, err)
			assert.NotNil(t, client)
			// Normalization happens on a copy, never on the caller's config.
			assert.Equal(t, testCase.input, config.BaseURL)
		})
	}
}

func TestNew_NormalizedURLReachesServer(t *testing.T) {
	t.Parallel()

	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version":"2.0","healthy":true}`))
	}))
	defer server.Close()

	// A trailing slash on the endpoint must not produce double-slash paths.
	client, err := omenclient.New(context.Background(), &omen.Config{
		BaseURL: server.URL + "/",
		Token:   "secret",
		AppName: "test-app",
	})
	require.NoError(t, err)

	_, err = client.GetStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/status", gotPath)
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := omenclient.NewWithToken(context.Background(),
		"https://api.omenfeed.io/v2", "test-app", "secret")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithSignature(t *testing.T) {
	t.Parallel()

	client, err := omenclient.NewWithSignature(context.Background(),
		"https://api.omenfeed.io/v2", "test-app", "alice", "shared-key")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNew_NoCredentialsStillConstructs(t *testing.T) {
	t.Parallel()

	client, err := omenclient.New(context.Background(), &omen.Config{
		BaseURL: "https://api.omenfeed.io/v2",
		AppName: "test-app",
	})
	require.NoError(t, err)

	// Missing credentials surface on the first request, not here.
	_, err = client.GetStatus(context.Background())
	require.Error(t, err)
	assert.True(t, omen.IsMissingAuth(err))
}
