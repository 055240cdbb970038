package transport

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/omenfeed-io/omen/internal/constants"
	"github.com/omenfeed-io/omen/pkg/omen"
)

// Request represents an API request before preparation.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string
}

// Client is the request/response pipeline shared by all resource clients:
// it prepares requests (identity injection, headers, auth), sends them over
// a retrying transport, and translates failures into typed errors.
type Client struct {
	baseURL    string
	identity   string
	authorizer omen.Authorizer
	httpClient *retryablehttp.Client
	validate   omen.JSONValidator

	disableGzip bool
	logger      omen.Logger
	debug       bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets a logger for the client.
func WithLogger(logger omen.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig overrides the retry policy.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// NewClient builds a transport client from config. The authorizer may be
// nil; its absence is reported as omen.ErrMissingAuth on the first request
// rather than here, so clients can be constructed before credentials are
// known.
func NewClient(config *omen.Config, authorizer omen.Authorizer, opts ...Option) (*Client, error) {
	if config.BaseURL == "" {
		return nil, omen.ErrBaseURLRequired
	}

	identity, err := BuildIdentity(config)
	if err != nil {
		return nil, err
	}

	httpClient, err := newRetryingClient(config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		baseURL:     strings.TrimSuffix(config.BaseURL, "/"),
		identity:    identity,
		authorizer:  authorizer,
		httpClient:  httpClient,
		validate:    config.ValidateJSON,
		disableGzip: config.DisableGzip,
		logger:      config.Logger,
		debug:       config.Debug,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// newRetryingClient assembles the pooled, retrying HTTP client. The pool is
// bounded per host and blocks when exhausted, which backpressures callers
// instead of opening unbounded connections.
func newRetryingClient(config *omen.Config) (*retryablehttp.Client, error) {
	connectTimeout := config.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = constants.DefaultConnectTimeout
	}

	readTimeout := config.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = constants.DefaultReadTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		MaxIdleConnsPerHost: constants.PoolMaxIdlePerHost,
		MaxConnsPerHost:     constants.PoolMaxIdlePerHost,
		DisableCompression:  config.DisableGzip,
	}

	if config.Proxy != "" {
		proxyURL, err := url.Parse(config.Proxy)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", omen.ErrInvalidProxyURL, err)
		}

		transport.Proxy = http.ProxyURL(proxyURL)
	}

	if config.SkipTLSVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- explicit opt-in via config
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   readTimeout,
	}
	retryClient.Logger = nil
	// Hand the final response back even when retries are exhausted so the
	// error translator can inspect its body.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	retryClient.RetryMax = constants.DefaultRetryMax
	if config.RetryMax > 0 {
		retryClient.RetryMax = config.RetryMax
	}

	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	if config.RetryWaitMin > 0 {
		retryClient.RetryWaitMin = config.RetryWaitMin
	}

	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	if config.RetryWaitMax > 0 {
		retryClient.RetryWaitMax = config.RetryWaitMax
	}

	return retryClient, nil
}

// Identity returns the rendered client identity string.
func (c *Client) Identity() string {
	return c.identity
}

// prepareQuery copies the caller's query values and adds the app_id
// identity parameter. The input is never mutated.
func (c *Client) prepareQuery(query url.Values) url.Values {
	prepared := url.Values{}

	for key, values := range query {
		copied := make([]string, len(values))
		copy(copied, values)
		prepared[key] = copied
	}

	prepared.Set("app_id", c.identity)

	return prepared
}

// prepareHeaders returns the base headers carried by every request.
func (c *Client) prepareHeaders() http.Header {
	headers := http.Header{}
	headers.Set("X-Omen-User-Agent", c.identity)
	headers.Set("User-Agent", c.identity)
	headers.Set("Accept", "application/json")

	if c.disableGzip {
		// Explicitly opt out of compression negotiation.
		headers.Set("Accept-Encoding", "")
	}

	return headers
}

// Do sends a request and returns the buffered response. Non-2xx statuses
// return a non-nil error alongside the response; the error is translated
// per the structured-error decision tree.
func (c *Client) Do(ctx context.Context, req *Request) (*omen.Response, error) {
	if c.authorizer == nil {
		return nil, omen.ErrMissingAuth
	}

	var bodyBytes []byte

	if req.Body != nil {
		var err error

		bodyBytes, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	pathAndQuery := req.Path
	if encoded := c.prepareQuery(req.Query).Encode(); encoded != "" {
		pathAndQuery += "?" + encoded
	}

	headers := c.prepareHeaders()
	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	if bodyBytes != nil {
		headers.Set("Content-Type", "application/json")
	}

	err := c.authorizer.Apply(headers, req.Method, pathAndQuery, bodyBytes)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, c.baseURL+pathAndQuery, bodyBytes)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// An explicitly set Accept-Encoding (even empty) disables Go's
	// transparent gzip, which is exactly the opt-out contract.
	for key, values := range headers {
		httpReq.Header[key] = values
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    c.baseURL + req.Path,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &omen.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         c.baseURL + req.Path,
			"status_code": resp.StatusCode,
		})
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, translateError(resp)
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*omen.Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*omen.Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*omen.Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// Interpret wraps a successful response per the caller's declared
// expectation: parsed JSON when expectJSON is set, otherwise CSV or plain
// text depending on the content type.
func (c *Client) Interpret(resp *omen.Response, expectJSON bool) (omen.QueryResponse, error) {
	if expectJSON {
		var data any

		err := json.Unmarshal(resp.Body, &data)
		if err != nil {
			return nil, omen.NewJSONParseError(resp, err)
		}

		if c.validate != nil {
			err = c.validate(data)
			if err != nil {
				return nil, fmt.Errorf("validating JSON response: %w", err)
			}
		}

		return omen.NewJSONResponse(data, resp), nil
	}

	if strings.Contains(resp.ContentType(), "csv") {
		return omen.NewCSVResponse(string(resp.Body), resp), nil
	}

	return omen.NewTextResponse(string(resp.Body), resp), nil
}

// Query sends a request and interprets its response in one step.
func (c *Client) Query(ctx context.Context, req *Request, expectJSON bool) (omen.QueryResponse, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	return c.Interpret(resp, expectJSON)
}

// translateError enriches the generic status error with the structured
// error body, when one is present. The decision tree is strict and ordered:
// JSON content type, then best-effort parse, then the error field; 401
// becomes an AuthenticationError, any other structured message an
// HTTPError, and everything else surfaces as the status error unchanged.
func translateError(resp *omen.Response) error {
	statusErr := &omen.StatusError{StatusCode: resp.StatusCode, Response: resp}

	if !strings.Contains(resp.ContentType(), "application/json") {
		return statusErr
	}

	var body struct {
		Error string `json:"error"`
	}

	err := json.Unmarshal(resp.Body, &body)
	if err != nil {
		// Best-effort enrichment only; fall back to the original error.
		return statusErr
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return omen.NewAuthenticationError(body.Error, resp, statusErr)
	}

	if body.Error != "" {
		return omen.NewHTTPError(body.Error, resp, statusErr)
	}

	return statusErr
}
