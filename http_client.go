package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// DefaultTimeout matches the fixed request deadline of the original client.
const DefaultTimeout = 10 * time.Second

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"

	authScheme = "Bearer"
)

// DefaultAuthWhitelist lists the endpoints that never receive a bearer
// token. Matching is a case-sensitive substring check against the request
// path.
var DefaultAuthWhitelist = []string{"/Auth/login", "/Auth/register"}

// Client issues JSON requests against the city-services API, injecting the
// stored bearer token per request through its transport. Transport and
// timeout failures surface as network errors; no retries happen here.
type Client struct {
	base      *url.URL
	http      *http.Client
	whitelist []string
	logger    Logger
}

type ClientOption func(*Client)

// WithTimeout overrides the fixed request deadline.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithClientLogger overrides the logger used for request diagnostics.
func WithClientLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAuthWhitelist replaces the set of paths exempt from credential
// injection.
func WithAuthWhitelist(whitelist []string) ClientOption {
	return func(c *Client) {
		c.whitelist = whitelist
		if transport, ok := c.http.Transport.(*authTransport); ok {
			transport.whitelist = whitelist
		}
	}
}

// WithBaseTransport sets the RoundTripper wrapped by the credential
// injector (useful for tests and instrumentation).
func WithBaseTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		if transport, ok := c.http.Transport.(*authTransport); ok && rt != nil {
			transport.next = rt
		}
	}
}

// NewClient builds a Client for the given base URL. The tokens reader is
// consulted on every request; it is never cached.
func NewClient(baseURL string, tokens TokenReader, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid base URL")
	}

	c := &Client{
		base:      base,
		whitelist: DefaultAuthWhitelist,
		logger:    defLogger{},
		http: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &authTransport{
				next:      http.DefaultTransport,
				tokens:    tokens,
				whitelist: DefaultAuthWhitelist,
			},
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c, nil
}

// authTransport attaches the bearer token to outbound requests, reading the
// store at call time so a token change made by the session manager is
// visible to the very next request. Whitelisted auth endpoints are skipped.
type authTransport struct {
	next      http.RoundTripper
	tokens    TokenReader
	whitelist []string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if clone.Header.Get(HeaderRequestID) == "" {
		clone.Header.Set(HeaderRequestID, uuid.NewString())
	}

	if t.tokens != nil && !pathWhitelisted(clone.URL.Path, t.whitelist) {
		token, err := t.tokens.Get(clone.Context())
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read stored token")
		}
		if token != "" {
			clone.Header.Set(HeaderAuthorization, authScheme+" "+token)
		}
	}

	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(clone)
}

func pathWhitelisted(path string, whitelist []string) bool {
	for _, endpoint := range whitelist {
		if endpoint != "" && strings.Contains(path, endpoint) {
			return true
		}
	}
	return false
}

// Get issues a GET request, decoding the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	payload, contentType, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, payload, contentType, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	payload, contentType, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, nil, payload, contentType, out)
}

// Upload sends a single file as a multipart form under the given field name.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	buf := &bytes.Buffer{}
	form := multipart.NewWriter(buf)

	part, err := form.CreateFormFile(field, filename)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build multipart form")
	}
	if _, err := io.Copy(part, r); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read upload content")
	}
	if err := form.Close(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to finalize multipart form")
	}

	return c.do(ctx, http.MethodPost, path, nil, buf, form.FormDataContentType(), out)
}

func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to encode request body")
	}
	return bytes.NewReader(payload), "application/json", nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	endpoint := c.resolve(path, query)

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to build request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("%s %s transport error: %v", method, path, err)
		return wrapNetworkError(err, fmt.Sprintf("%s %s failed", method, path))
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return c.statusError(res, method, path)
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("failed to decode %s %s response", method, path))
	}
	return nil
}

func (c *Client) resolve(path string, query url.Values) string {
	endpoint := c.base.String() + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

// apiMessage is the error envelope the backend returns on failures.
type apiMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// statusError maps HTTP failures onto the client error taxonomy. Auth
// endpoints translate rejections into credential errors; everywhere else a
// 401 means the stored token is no longer valid.
func (c *Client) statusError(res *http.Response, method, path string) error {
	payload := apiMessage{}
	_ = json.NewDecoder(io.LimitReader(res.Body, 4096)).Decode(&payload)

	message := payload.Message
	if message == "" {
		message = payload.Error
	}

	metadata := map[string]any{
		"status": res.StatusCode,
		"method": method,
		"path":   path,
	}

	if pathWhitelisted(path, c.whitelist) {
		switch res.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized:
			return apiError(ErrInvalidCredentials, message, metadata)
		case http.StatusConflict:
			return apiError(ErrConflict, message, metadata)
		}
	} else if res.StatusCode == http.StatusUnauthorized {
		return apiError(ErrUnauthorized, message, metadata)
	}

	if message == "" {
		message = fmt.Sprintf("%s %s failed with status %d", method, path, res.StatusCode)
	}

	switch {
	case res.StatusCode == http.StatusNotFound:
		return goerrors.New(message, goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound).
			WithMetadata(metadata)
	case res.StatusCode == http.StatusConflict:
		return apiError(ErrConflict, message, metadata)
	case res.StatusCode >= http.StatusInternalServerError:
		return goerrors.New(message, goerrors.CategoryInternal).WithMetadata(metadata)
	default:
		return goerrors.New(message, goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest).
			WithMetadata(metadata)
	}
}
