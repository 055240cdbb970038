// Package omen provides the public types for the Omen threat-intelligence
// API client: configuration, typed errors, response wrappers, query
// parameters, and the cache backends.
//
// Use github.com/omenfeed-io/omen/pkg/omenclient to construct a client:
//
//	client, err := omenclient.New(ctx, &omen.Config{
//		BaseURL: "https://api.omenfeed.io/v2",
//		Token:   os.Getenv("OMEN_TOKEN"),
//		AppName: "my-integration",
//	})
//
// # Error handling
//
// Failed requests surface as one of four error kinds: omen.ErrMissingAuth
// when no credentials were resolved, *omen.JSONParseError when an expected
// JSON body does not decode, *omen.AuthenticationError for HTTP 401 with a
// structured error body, and *omen.HTTPError for other structured error
// responses. Responses whose body carries no structured error surface as the
// generic *omen.StatusError. All translated errors unwrap to the original
// StatusError, so errors.As and errors.Is work across the chain.
package omen
