package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/common"
	"github.com/dmitrijs2005/tixgo/internal/logging"
	"github.com/google/uuid"
)

// TokenSource is the part of the session store the client needs.
type TokenSource interface {
	Get(ctx context.Context) (string, bool)
	Clear(ctx context.Context)
}

type HTTPClient struct {
	baseURL      string
	http         *http.Client
	tokens       TokenSource
	logger       logging.Logger
	timeout      time.Duration
	newRequestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.logger = l }
}

// WithTimeout bounds each call. Zero means no bound beyond the context.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.timeout = d }
}

func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	if _, err := common.OriginOf(baseURL); err != nil {
		return nil, err
	}

	c := &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         http.DefaultClient,
		tokens:       tokens,
		logger:       logging.Nop(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "api")
	return c, nil
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Do sends one request and wraps whatever the server answered in an
// Envelope. A non-2xx status is not an error here; only a missing
// response is (*TransportError).
//
// body, when non-nil, is sent as JSON. The session token, if any, is
// attached as a bearer token, and a 401 from any endpoint clears it
// before Do returns.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := c.newRequestID()
	req.Header.Set(common.AcceptHeaderName, common.JSONContentType)
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if body != nil {
		req.Header.Set(common.ContentTypeHeaderName, common.JSONContentType)
	}
	if token, ok := c.tokens.Get(ctx); ok {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	log := c.logger.With("request_id", requestID, "method", method, "path", path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err, "duration", time.Since(start))
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Clear(context.WithoutCancel(ctx))
		log.Info(ctx, "session rejected, token cleared")
	}

	env := &Envelope{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
		Body:   ParseBody(raw),
	}
	log.Debug(ctx, "request done", "status", env.Status, "body", env.Body.Kind, "duration", time.Since(start))
	return env, nil
}

// Request is Do for callers that only care about success: a 2xx body is
// returned as is, any other status becomes a *RequestFailedError.
func (c *HTTPClient) Request(ctx context.Context, method, path string, body any) (Body, error) {
	env, err := c.Do(ctx, method, path, body)
	if err != nil {
		return Body{}, err
	}
	if err := env.Err(); err != nil {
		return env.Body, err
	}
	return env.Body, nil
}
