package omen

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Client is the top-level interface for the Omen API.
type Client interface {
	// Entities accesses entity lookup and search endpoints.
	Entities() EntitiesClient
	// Alerts accesses alert and alert rule endpoints.
	Alerts() AlertsClient
	// Fusion accesses fusion flat-file endpoints.
	Fusion() FusionClient

	// GetStatus fetches API status information.
	GetStatus(ctx context.Context) (*Status, error)
	// GetUsage fetches quota usage for the authenticated token.
	GetUsage(ctx context.Context) (*Usage, error)

	// Query is the raw escape hatch: it sends a request to path and
	// interprets the response per expectJSON, returning one of the three
	// response wrappers.
	Query(ctx context.Context, method, path string, query url.Values, body any, expectJSON bool) (QueryResponse, error)
}

// EntitiesClient accesses entity endpoints.
type EntitiesClient interface {
	Lookup(ctx context.Context, kind, id string) (*Entity, error)
	Search(ctx context.Context, params *QueryParams) (*EntityList, error)
}

// AlertsClient accesses alert endpoints.
type AlertsClient interface {
	ListRules(ctx context.Context, params *QueryParams) (*AlertRuleList, error)
	Get(ctx context.Context, id string) (*Alert, error)
	Search(ctx context.Context, params *QueryParams) (*AlertList, error)
}

// FusionClient accesses fusion flat-file endpoints. Files are served as CSV
// or plain text depending on the path.
type FusionClient interface {
	GetFile(ctx context.Context, path string) (QueryResponse, error)
}

// Authorizer attaches credentials to an outgoing request. Implementations
// must not mutate anything but the request headers. The path and body are
// provided for signature-based schemes.
type Authorizer interface {
	Apply(headers http.Header, method, pathAndQuery string, body []byte) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an omen.Client.
//
// # Authentication
//
// Provide exactly one of Authorizer or Token. An Authorizer is used as-is;
// a Token is wrapped into the standard token authorizer together with
// APIVersion. The special token value "auto" discovers the token from the
// OMEN_TOKEN (or legacy OMENFEED_TOKEN) environment variable. Supplying
// neither is not a construction error: the client fails with ErrMissingAuth
// on the first request instead, so clients can be built before credentials
// are known.
//
// # Timeouts, retries, and TLS
//
// ConnectTimeout and ReadTimeout default to 10s and 120s. Retries are
// delegated to the underlying retrying transport and apply to connection
// errors, 429 and 5xx responses only; RetryMax defaults to 3. SkipTLSVerify
// disables certificate verification and must not be used in production.
type Config struct {
	// BaseURL is the API endpoint (e.g. "https://api.omenfeed.io/v2").
	BaseURL string

	// Token is a plain API token; ignored when Authorizer is set.
	Token string
	// Authorizer is a caller-supplied credential strategy.
	Authorizer Authorizer
	// APIVersion selects the token header version. Defaults to 1.
	APIVersion int

	// AppName identifies the calling application. Required.
	AppName string
	// AppVersion is the calling application's version. Defaults to "1.0.0".
	AppVersion string
	// PkgName and PkgVersion identify an intermediate integration package.
	PkgName    string
	PkgVersion string
	// PlatformID overrides the host platform descriptor in the identity
	// string. Defaults to the runtime OS/arch and Go version.
	PlatformID string

	// DisableGzip turns off gzip content negotiation.
	DisableGzip bool

	// Proxy is an optional proxy URL applied to all requests.
	Proxy string
	// ConnectTimeout bounds establishing the connection.
	ConnectTimeout time.Duration
	// ReadTimeout bounds the full request/response exchange.
	ReadTimeout time.Duration
	// SkipTLSVerify disables TLS certificate verification.
	SkipTLSVerify bool

	// RetryMax is the maximum number of retries for transient failures.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables verbose request/response logging when a Logger is set.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger

	// ValidateJSON is an optional hook run against every decoded JSON
	// response body before it is returned.
	ValidateJSON JSONValidator

	// Cache configures the entity lookup cache. Nil disables caching.
	Cache *CacheConfig
}

// Status represents the API status endpoint response.
type Status struct {
	Version string `json:"version" yaml:"version"`
	Healthy bool   `json:"healthy" yaml:"healthy"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Usage represents quota usage for the authenticated token.
type Usage struct {
	DailyLimit int `json:"daily_limit" yaml:"daily_limit"`
	Used       int `json:"used"        yaml:"used"`
	Remaining  int `json:"remaining"   yaml:"remaining"`
}
